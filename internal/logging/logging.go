// Package logging owns the shared converter logger. Progress and the final
// report go to stdout; everything here goes to stderr so redirecting one
// does not swallow the other.
package logging

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once sync.Once
	std  *log.Logger
)

func logger() *log.Logger {
	once.Do(func() {
		std = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
			Prefix:          "csl2glb",
			Level:           log.InfoLevel,
		})
	})
	return std
}

// SetVerbose drops the threshold to debug so per-line parse diagnostics
// show up.
func SetVerbose(v bool) {
	if v {
		logger().SetLevel(log.DebugLevel)
	} else {
		logger().SetLevel(log.InfoLevel)
	}
}

func Debugf(format string, args ...any) { logger().Debugf(format, args...) }

func Infof(format string, args ...any) { logger().Infof(format, args...) }

func Warnf(format string, args ...any) { logger().Warnf(format, args...) }

func Errorf(format string, args ...any) { logger().Errorf(format, args...) }
