package main

import (
	"fmt"
	"math"
	"os"

	"csl2glb/internal/obj8"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspectobj <fragment.obj> [...]")
		os.Exit(2)
	}

	for _, arg := range os.Args[1:] {
		frag, diags, err := obj8.ParseFile(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			continue
		}
		fmt.Printf("\n=== %s ===\n", arg)
		fmt.Printf("  Vertices: %d, Triangles: %d, Texture: %q\n",
			len(frag.Vertices), frag.TriangleCount(), frag.Texture)

		if len(frag.Vertices) > 0 {
			minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
			maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
			for _, v := range frag.Vertices {
				x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
				if x < minX { minX = x }
				if y < minY { minY = y }
				if z < minZ { minZ = z }
				if x > maxX { maxX = x }
				if y > maxY { maxY = y }
				if z > maxZ { maxZ = z }
			}
			fmt.Printf("  BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n",
				minX, maxX, minY, maxY, minZ, maxZ)
			fmt.Printf("  Size: %.2f x %.2f x %.2f\n", maxX-minX, maxY-minY, maxZ-minZ)
		}

		// UV coverage tells whether the fragment actually maps a texture
		// or just repeats one tile.
		if len(frag.UVs) > 0 {
			minU, minV := math.Inf(1), math.Inf(1)
			maxU, maxV := math.Inf(-1), math.Inf(-1)
			for _, uv := range frag.UVs {
				u, v := float64(uv[0]), float64(uv[1])
				if u < minU { minU = u }
				if v < minV { minV = v }
				if u > maxU { maxU = u }
				if v > maxV { maxV = v }
			}
			fmt.Printf("  UV: U[%.3f, %.3f] V[%.3f, %.3f]\n", minU, maxU, minV, maxV)
		}

		if len(diags) > 0 {
			fmt.Printf("  Diagnostics (%d):\n", len(diags))
			for _, ev := range diags {
				fmt.Printf("    [%s] %s\n", ev.Kind, ev)
			}
		}
	}
}
