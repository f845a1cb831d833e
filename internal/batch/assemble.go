package batch

import (
	"image"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"

	"csl2glb/internal/diag"
	"csl2glb/internal/geometry"
	"csl2glb/internal/glb"
	"csl2glb/internal/obj8"
	"csl2glb/internal/texture"
	"csl2glb/internal/xsb"
)

// assemble converts one livery group end to end: parse its fragments, merge
// them, resolve a texture and write the GLB (plus an optional preview).
// Every failure stays local to the livery.
func assemble(cfg Config, g xsb.Group) Result {
	res := Result{
		LiveryID:     g.LiveryID,
		AircraftType: g.AircraftType,
		DisplayName:  g.DisplayName(),
	}

	frags := make([]*obj8.Fragment, 0, len(g.FragmentRefs))
	for _, ref := range g.FragmentRefs {
		path := filepath.Join(cfg.PackageDir, filepath.FromSlash(ref))
		frag, fdiags, err := obj8.ParseFile(path)
		if err != nil {
			res.Diags.Addf(diag.FragmentMissing, ref, 0, "fragment unreadable: %v", err)
			continue
		}
		res.Diags = append(res.Diags, fdiags...)
		frags = append(frags, frag)
	}

	merged, mdiags := geometry.Merge(frags)
	res.Diags = append(res.Diags, mdiags...)
	if merged.Empty() {
		res.Diags.Addf(diag.LiveryEmpty, g.DisplayName(), 0, "no fragment contributed usable geometry")
		res.Error = "no usable geometry"
		return res
	}
	res.Vertices = len(merged.Vertices)
	res.Triangles = merged.TriangleCount()

	tex := resolveTexture(cfg, merged, &res)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	res.ModelFile = g.LiveryID + ".glb"
	outPath := filepath.Join(cfg.OutputDir, res.ModelFile)
	if err := glb.Write(outPath, g.DisplayName(), merged, tex); err != nil {
		res.Diags.Addf(diag.WriteFailed, outPath, 0,
			"%d vertices, %d triangles: %v", res.Vertices, res.Triangles, err)
		res.ModelFile = ""
		res.Error = err.Error()
		return res
	}

	if cfg.Previews && tex != nil {
		name, err := writePreview(cfg, g.LiveryID, tex)
		if err != nil {
			// The asset itself landed; a lost preview is only a diagnostic.
			res.Diags.Addf(diag.WriteFailed, name, 0, "preview: %v", err)
		} else {
			res.PreviewFile = name
		}
	}

	res.Success = true
	return res
}

// resolveTexture picks the livery texture: the first fragment-declared
// reference that resolves to a decodable file wins.
func resolveTexture(cfg Config, merged *geometry.Merged, res *Result) *image.NRGBA {
	if cfg.Textures == nil {
		return nil
	}
	for _, ref := range merged.Textures {
		if img := cfg.Textures.Resolve(ref); img != nil {
			return img
		}
	}
	if len(merged.Textures) > 0 {
		res.Diags.Addf(diag.TextureMissing, res.DisplayName, 0,
			"none of %d texture references resolved", len(merged.Textures))
	}
	return nil
}

func writePreview(cfg Config, liveryID string, tex *image.NRGBA) (string, error) {
	name := liveryID + ".webp"
	small := texture.FitPreview(tex, cfg.PreviewSize)

	f, err := os.Create(filepath.Join(cfg.OutputDir, name))
	if err != nil {
		return name, err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, small, nil); err != nil {
		return name, err
	}
	return name, nil
}
