// Package xsb parses xsb_aircraft.txt, the index that declares which mesh
// fragments make up each livery of a CSL package. Two dialects exist in the
// wild and the parser detects which one it is looking at before walking the
// document.
package xsb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"csl2glb/internal/diag"
)

// Parse reads one index document and returns its livery groups in
// declaration order. Groups missing a livery id or any fragment reference
// are dropped with a diagnostic. name labels diagnostics, normally the
// file name.
func Parse(data []byte, name string, opts Options) ([]Group, diag.List) {
	p := &parser{name: name, defType: opts.DefaultAircraftType}
	text := string(data)
	det := sniff(text)
	_, p.sectionKeyed = det.(sectionBoundary)

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if det.starts(line) {
			p.flush()
			if p.sectionKeyed {
				p.cur = &Group{AircraftType: p.aircraftTypeOf(line)}
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p.content(line, lineNo+1)
	}
	p.flush()
	return p.groups, p.diags
}

// ParseFile reads and parses the package index. A read failure is the one
// condition that makes the whole package unprocessable, so it comes back as
// an error rather than a diagnostic.
func ParseFile(path string, opts Options) ([]Group, diag.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("xsb: read %s: %w", path, err)
	}
	groups, diags := Parse(data, filepath.Base(path), opts)
	return groups, diags, nil
}

type parser struct {
	name         string
	defType      string
	sectionKeyed bool
	cur          *Group
	groups       []Group
	diags        diag.List
}

// ensure returns the group under construction, opening one when content
// shows up before any boundary. The blank-line dialect has no opening
// token, so its first group always starts this way.
func (p *parser) ensure() *Group {
	if p.cur == nil {
		p.cur = &Group{AircraftType: p.defType}
	}
	return p.cur
}

func (p *parser) content(line string, lineNo int) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "OBJ8":
		if len(fields) < 2 || fields[1] != "SOLID" {
			// GLASS, LIGHTS and friends carry no geometry we keep.
			return
		}
		if len(fields) < 4 {
			p.diags.Addf(diag.LineSkipped, p.name, lineNo, "fragment line without a file reference")
			return
		}
		ref := cleanFragmentRef(fields[len(fields)-1])
		if ref == "" {
			p.diags.Addf(diag.LineSkipped, p.name, lineNo, "fragment reference is empty after cleaning")
			return
		}
		g := p.ensure()
		g.FragmentRefs = append(g.FragmentRefs, ref)
	case "AIRLINE", "LIVERY":
		if len(fields) < 2 {
			p.diags.Addf(diag.LineSkipped, p.name, lineNo, "livery line without an id")
			return
		}
		g := p.ensure()
		g.LiveryID = fields[len(fields)-1]
		if !p.sectionKeyed && len(fields) >= 3 {
			g.AircraftType = fields[1]
		}
	}
}

// aircraftTypeOf extracts the type from a section line: the first token
// after the keyword, cut at its first underscore, so "OBJ8_AIRCRAFT
// A320_DAL" and "OBJ8_AIRCRAFT A320" both key as "A320".
func (p *parser) aircraftTypeOf(line string) string {
	fields := strings.Fields(line[len(sectionToken):])
	if len(fields) == 0 {
		return p.defType
	}
	t, _, _ := strings.Cut(fields[0], "_")
	if t == "" {
		return p.defType
	}
	return t
}

// flush finishes the group under construction, keeping it only when it can
// actually produce an asset.
func (p *parser) flush() {
	g := p.cur
	p.cur = nil
	switch {
	case g == nil:
	case g.LiveryID == "" && len(g.FragmentRefs) == 0:
		// boundary noise, nothing was lost
	case g.LiveryID == "":
		p.diags.Addf(diag.GroupSkipped, p.name, 0, "group with %d fragment refs has no livery id", len(g.FragmentRefs))
	case len(g.FragmentRefs) == 0:
		p.diags.Addf(diag.GroupSkipped, p.name, 0, "livery %s declares no fragments", g.LiveryID)
	default:
		p.groups = append(p.groups, *g)
	}
}

// cleanFragmentRef reduces an index file reference to a path under the
// package directory. The library prefix up to the last colon and any
// backslash directory prefix are stripped; forward-slash sub-paths are
// genuine and survive.
func cleanFragmentRef(tok string) string {
	if i := strings.LastIndexByte(tok, ':'); i >= 0 {
		tok = tok[i+1:]
	}
	if i := strings.LastIndexByte(tok, '\\'); i >= 0 {
		tok = tok[i+1:]
	}
	return strings.TrimSpace(tok)
}
