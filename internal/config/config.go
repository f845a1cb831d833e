// Package config holds the converter's paths and batch settings, merged
// from a JSON file, CLI flags and auto-detected defaults in that order.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and conversion settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Conversion settings
	Workers     int  `json:"workers"`
	Previews    bool `json:"previews"`
	PreviewSize int  `json:"preview_size"`
	Verbose     bool `json:"verbose"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir  string
	OutputDir string
	Workers   int
	Previews  bool
	Verbose   bool
}

// Resolve merges flags over the file values and fills what is still empty
// with auto-detected defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Previews {
		c.Previews = true
	}
	if flags.Verbose {
		c.Verbose = true
	}

	if c.InputDir == "" {
		c.InputDir = detectInputDir()
	}
	if c.InputDir != "" {
		c.InputDir = filepath.Clean(c.InputDir)
	}

	// The conventional layout keeps converted assets in a model/ directory
	// next to the package tree.
	if c.OutputDir == "" && c.InputDir != "" {
		c.OutputDir = filepath.Join(filepath.Dir(c.InputDir), "model")
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
}

// detectInputDir looks for the conventional planeModel package tree near
// the working directory and the executable.
func detectInputDir() string {
	var bases []string
	if cwd, err := os.Getwd(); err == nil {
		bases = append(bases, cwd, filepath.Dir(cwd))
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		bases = append(bases, dir, filepath.Dir(dir))
	}

	for _, base := range bases {
		for _, cand := range []string{
			filepath.Join(base, "planeModel"),
			filepath.Join(base, "static", "planeModel"),
		} {
			if info, err := os.Stat(cand); err == nil && info.IsDir() {
				return cand
			}
		}
	}
	return ""
}
