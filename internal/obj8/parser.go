// Package obj8 parses the X-Plane OBJ8 text format down to what a livery
// asset needs: vertex positions, texture coordinates, triangle indices and
// the texture reference. Animation, attribute and lighting directives are
// passed over without comment.
package obj8

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"csl2glb/internal/diag"
)

const (
	tokVertex  = "VT"
	tokIndex   = "IDX"
	tokIndex10 = "IDX10"
	tokTexture = "TEXTURE"
)

// A VT line is "VT x y z nx ny nz s t". Position and UV sit at fixed
// columns; the normal in between is not carried into the fragment.
const (
	vtFieldCount = 8
	vtUVColumn   = 6
)

// Parse reads one OBJ8 stream. It does not fail: malformed content costs at
// most the directive it appeared in, and everything dropped comes back in
// the diagnostic list. name labels the diagnostics, normally the file name.
func Parse(r io.Reader, name string) (*Fragment, diag.List) {
	frag := &Fragment{Name: name}
	var diags diag.List

	// Index values accumulate across IDX/IDX10 lines and are grouped into
	// triangles only once the vertex count is known.
	var pending []int64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case tokVertex:
			pos, uv, err := parseVertex(fields[1:])
			if err != nil {
				diags.Addf(diag.LineSkipped, name, lineNo, "vertex line skipped: %v", err)
				continue
			}
			frag.Vertices = append(frag.Vertices, pos)
			frag.UVs = append(frag.UVs, uv)
		case tokIndex, tokIndex10:
			if len(fields) < 2 {
				diags.Addf(diag.LineSkipped, name, lineNo, "index directive without values")
				continue
			}
			for _, tok := range fields[1:] {
				n, err := strconv.ParseInt(tok, 10, 64)
				if err != nil {
					diags.Addf(diag.IndexFieldSkipped, name, lineNo, "index %q is not an integer", tok)
					continue
				}
				pending = append(pending, n)
			}
		case tokTexture:
			if len(fields) < 2 {
				diags.Addf(diag.LineSkipped, name, lineNo, "TEXTURE directive without a path")
				continue
			}
			frag.Texture = strings.ReplaceAll(fields[1], `\`, "/")
		}
	}
	if err := sc.Err(); err != nil {
		diags.Addf(diag.ReadAborted, name, lineNo, "read aborted: %v", err)
	}

	var dropped int
	frag.Indices, dropped = collectTriangles(pending, len(frag.Vertices))
	if dropped > 0 {
		diags.Tally(diag.TrianglesDropped, name, dropped,
			"dropped %d triangles with indices outside [0,%d)", dropped, len(frag.Vertices))
	}
	return frag, diags
}

// ParseFile opens and parses one mesh-source file. The error covers only
// the open; content problems come back as diagnostics.
func ParseFile(path string) (*Fragment, diag.List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("obj8: open %s: %w", path, err)
	}
	defer f.Close()

	frag, diags := Parse(f, filepath.Base(path))
	return frag, diags, nil
}

func parseVertex(fields []string) ([3]float32, [2]float32, error) {
	var pos [3]float32
	var uv [2]float32
	if len(fields) < vtFieldCount {
		return pos, uv, fmt.Errorf("has %d fields, need %d", len(fields), vtFieldCount)
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return pos, uv, fmt.Errorf("bad position value %q", fields[i])
		}
		pos[i] = float32(v)
	}
	for i := 0; i < 2; i++ {
		v, err := strconv.ParseFloat(fields[vtUVColumn+i], 32)
		if err != nil {
			return pos, uv, fmt.Errorf("bad uv value %q", fields[vtUVColumn+i])
		}
		uv[i] = float32(v)
	}
	return pos, uv, nil
}

// collectTriangles groups the accumulated indices into triples and keeps
// the ones whose corners all land inside the vertex buffer. A rejected
// triple is dropped whole. A trailing remainder of one or two values never
// formed a triangle and is discarded.
func collectTriangles(pending []int64, vertexCount int) ([]uint32, int) {
	kept := make([]uint32, 0, len(pending)/3*3)
	dropped := 0
	for i := 0; i+3 <= len(pending); i += 3 {
		a, b, c := pending[i], pending[i+1], pending[i+2]
		if !inRange(a, vertexCount) || !inRange(b, vertexCount) || !inRange(c, vertexCount) {
			dropped++
			continue
		}
		kept = append(kept, uint32(a), uint32(b), uint32(c))
	}
	return kept, dropped
}

func inRange(v int64, n int) bool {
	return v >= 0 && v < int64(n)
}
