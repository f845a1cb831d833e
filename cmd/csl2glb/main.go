package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"csl2glb/internal/batch"
	"csl2glb/internal/config"
	"csl2glb/internal/diag"
	"csl2glb/internal/logging"
	"csl2glb/internal/texture"
	"csl2glb/internal/xsb"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory of CSL package directories (default: auto-detect planeModel)")
	outputDir := flag.String("output", "", "Output directory (default: model/ next to the input)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	previews := flag.Bool("previews", false, "Write a WebP texture preview next to each asset")
	only := flag.String("only", "", "Convert only the named package directory")
	testN := flag.Int("test", 0, "Convert only the first N liveries of each package")
	verbose := flag.Bool("v", false, "Log per-line parse diagnostics")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Workers:   *workers,
		Previews:  *previews,
		Verbose:   *verbose,
	})
	logging.SetVerbose(cfg.Verbose)

	if cfg.InputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find a package directory. Use -input or config.json.")
		os.Exit(1)
	}

	pkgs, err := findPackages(cfg.InputDir, *only)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", cfg.InputDir, err)
		os.Exit(1)
	}
	if len(pkgs) == 0 {
		fmt.Println("No CSL packages to convert.")
		os.Exit(0)
	}

	// First interrupt stops dispatching new liveries; in-flight ones finish.
	// A second one falls back to the default handler and kills the run.
	stop := make(chan struct{})
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		fmt.Println("\nInterrupt: finishing liveries already in flight...")
		close(stop)
		signal.Stop(sigc)
	}()

	mode := ""
	if *only != "" {
		mode = fmt.Sprintf(" (only %s)", *only)
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d per package)", *testN)
	}

	fmt.Printf("CSL livery packages → GLB%s\n", mode)
	fmt.Printf("Packages: %d, Workers: %d\n", len(pkgs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	var total batch.Summary
	var failures []batch.Result
	for _, pkg := range pkgs {
		results, err := convertPackage(cfg, pkg, *testN, stop)
		if err != nil {
			logging.Errorf("package %s: %v", filepath.Base(pkg), err)
			total.Failed++
			continue
		}
		total.Add(batch.Summarize(results))
		for _, r := range results {
			if !r.Success && !r.Superseded && r.Error != "interrupted" {
				failures = append(failures, r)
			}
		}
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())
	fmt.Printf("Converted: %d liveries\n", total.Succeeded)
	if total.Superseded > 0 {
		fmt.Printf("Superseded duplicates: %d\n", total.Superseded)
	}

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", total.Failed)
		limit := 20
		if len(failures) < limit {
			limit = len(failures)
		}
		for _, r := range failures[:limit] {
			fmt.Printf("  %s: %s\n", r.DisplayName, r.Error)
		}
	}

	switch {
	case total.Interrupted > 0:
		fmt.Printf("Interrupted: %d liveries not assembled\n", total.Interrupted)
		os.Exit(130)
	case total.Failed > 0:
		os.Exit(1)
	}
}

// findPackages lists the aircraft directories one level under root, i.e.
// the subdirectories that carry a package index.
func findPackages(root, only string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var pkgs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if only != "" && e.Name() != only {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, xsb.IndexFileName)); err != nil {
			logging.Debugf("skipping %s: no %s", e.Name(), xsb.IndexFileName)
			continue
		}
		pkgs = append(pkgs, dir)
	}
	return pkgs, nil
}

// convertPackage runs one aircraft directory end to end: parse the index,
// assemble every livery, write the lookup table. The returned error means
// the package as a whole could not be processed; per-livery problems live
// in the results.
func convertPackage(cfg config.Config, pkgDir string, testN int, stop <-chan struct{}) ([]batch.Result, error) {
	name := filepath.Base(pkgDir)

	groups, pdiags, err := xsb.ParseFile(
		filepath.Join(pkgDir, xsb.IndexFileName),
		xsb.Options{DefaultAircraftType: name},
	)
	if err != nil {
		return nil, err
	}
	logDiags(pdiags)

	if testN > 0 && testN < len(groups) {
		groups = groups[:testN]
	}
	if len(groups) == 0 {
		logging.Warnf("%s: index declares no usable liveries", name)
	}

	texIndex := texture.BuildIndex(pkgDir)
	logging.Debugf("%s: %d textures indexed", name, texIndex.Len())

	outDir := filepath.Join(cfg.OutputDir, name)
	fmt.Printf("Package %s: %d liveries\n", name, len(groups))

	results := batch.Run(batch.Config{
		PackageDir:  pkgDir,
		OutputDir:   outDir,
		Textures:    texture.NewCache(pkgDir, texIndex),
		Previews:    cfg.Previews,
		PreviewSize: cfg.PreviewSize,
		Workers:     cfg.Workers,
	}, groups, stop)

	for _, r := range results {
		logDiags(r.Diags)
		if !r.Success && !r.Superseded && r.Error != "interrupted" {
			logging.Warnf("%s: %s", r.DisplayName, r.Error)
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return results, err
	}
	lookupPath := filepath.Join(outDir, batch.LookupFileName)
	n, err := batch.WriteLookup(lookupPath, results)
	if err != nil {
		return results, err
	}
	logging.Infof("%s: %d liveries in %s", name, n, lookupPath)

	return results, nil
}

// logDiags surfaces collected diagnostics. Line-level noise stays at debug
// so a normal run reports only what changed the output.
func logDiags(list diag.List) {
	for _, ev := range list {
		switch ev.Kind {
		case diag.LineSkipped, diag.IndexFieldSkipped:
			logging.Debugf("%s", ev)
		default:
			logging.Warnf("%s", ev)
		}
	}
}
