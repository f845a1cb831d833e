// Package batch assembles every livery of a CSL package through a worker
// pool and writes the lookup table that maps livery ids to the finished
// assets.
package batch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"csl2glb/internal/diag"
	"csl2glb/internal/texture"
	"csl2glb/internal/xsb"
)

// Config holds the shared resources for one package run.
type Config struct {
	PackageDir  string
	OutputDir   string
	Textures    texture.Resolver
	Previews    bool
	PreviewSize int
	Workers     int
}

// Result holds the outcome of assembling one livery.
type Result struct {
	LiveryID     string
	AircraftType string
	DisplayName  string
	ModelFile    string
	PreviewFile  string
	Vertices     int
	Triangles    int
	Success      bool
	Superseded   bool
	Error        string
	Diags        diag.List
}

// Summary buckets one package's results by outcome. Superseded duplicates
// and interrupted liveries are not failures: nothing the input promised is
// missing from the output.
type Summary struct {
	Succeeded   int
	Failed      int
	Interrupted int
	Superseded  int
}

// Add folds another package's counts into s.
func (s *Summary) Add(o Summary) {
	s.Succeeded += o.Succeeded
	s.Failed += o.Failed
	s.Interrupted += o.Interrupted
	s.Superseded += o.Superseded
}

// Summarize classifies results for the end-of-run report.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Success:
			s.Succeeded++
		case r.Superseded:
			s.Superseded++
		case r.Error == "interrupted":
			s.Interrupted++
		default:
			s.Failed++
		}
	}
	return s
}

// Run assembles all livery groups using a worker pool. Closing stop halts
// dispatch: liveries already being assembled finish, everything not yet
// started is reported as interrupted. stop may be nil.
func Run(cfg Config, groups []xsb.Group, stop <-chan struct{}) []Result {
	groups, superseded := dedupe(groups)

	total := len(groups)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f liveries/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if stopped(stop) {
					results[idx] = interrupted(groups[idx])
				} else {
					results[idx] = assemble(cfg, groups[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work until told to stop.
dispatch:
	for i := range groups {
		select {
		case <-stop:
			for j := i; j < len(groups); j++ {
				results[j] = interrupted(groups[j])
				processed.Add(1)
			}
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)

	wg.Wait()
	close(done)

	return append(results, superseded...)
}

func stopped(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}

func interrupted(g xsb.Group) Result {
	return Result{
		LiveryID:     g.LiveryID,
		AircraftType: g.AircraftType,
		DisplayName:  g.DisplayName(),
		Error:        "interrupted",
	}
}

// dedupe drops earlier declarations when two groups share a livery id.
// Their output files would collide, and keeping the later one mirrors what
// sequential overwrites would have produced anyway.
func dedupe(groups []xsb.Group) ([]xsb.Group, []Result) {
	last := make(map[string]int, len(groups))
	for i, g := range groups {
		last[g.LiveryID] = i
	}

	kept := make([]xsb.Group, 0, len(groups))
	var superseded []Result
	for i, g := range groups {
		if last[g.LiveryID] != i {
			r := Result{
				LiveryID:     g.LiveryID,
				AircraftType: g.AircraftType,
				DisplayName:  g.DisplayName(),
				Superseded:   true,
				Error:        "superseded by a later group with the same livery id",
			}
			r.Diags.Addf(diag.DuplicateLivery, g.LiveryID, 0,
				"livery id %s declared more than once, keeping the last declaration", g.LiveryID)
			superseded = append(superseded, r)
			continue
		}
		kept = append(kept, g)
	}
	return kept, superseded
}
