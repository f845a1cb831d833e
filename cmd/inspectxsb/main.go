package main

import (
	"fmt"
	"os"
	"path/filepath"

	"csl2glb/internal/xsb"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspectxsb <package-dir> [...]")
		os.Exit(2)
	}

	for _, arg := range os.Args[1:] {
		pkgDir := filepath.Clean(arg)
		indexPath := filepath.Join(pkgDir, xsb.IndexFileName)

		data, err := os.ReadFile(indexPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		groups, diags := xsb.Parse(data, xsb.IndexFileName,
			xsb.Options{DefaultAircraftType: filepath.Base(pkgDir)})

		fmt.Printf("\n=== %s ===\n", pkgDir)
		fmt.Printf("Dialect: %s, Groups: %d\n", xsb.DialectName(data), len(groups))
		for i, g := range groups {
			fmt.Printf("  Group[%d] %s (type=%s livery=%s)\n", i, g.DisplayName(), g.AircraftType, g.LiveryID)
			for _, ref := range g.FragmentRefs {
				marker := ""
				if _, err := os.Stat(filepath.Join(pkgDir, filepath.FromSlash(ref))); err != nil {
					marker = "  MISSING"
				}
				fmt.Printf("    %s%s\n", ref, marker)
			}
		}
		if len(diags) > 0 {
			fmt.Printf("Diagnostics (%d):\n", len(diags))
			for _, ev := range diags {
				fmt.Printf("  [%s] %s\n", ev.Kind, ev)
			}
		}
	}
}
