// Package glb serializes a merged livery mesh into a binary glTF container.
package glb

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"csl2glb/internal/geometry"
)

// Write serializes one merged mesh into a GLB file at path. name labels the
// mesh, node and material inside the container. tex may be nil: the mesh is
// then emitted untextured with a plain white base color. Normals are not
// written; viewers compute them.
func Write(path, name string, m *geometry.Merged, tex *image.NRGBA) error {
	if m.Empty() {
		return fmt.Errorf("glb: %s has no geometry to write", name)
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "csl2glb"

	positions := modeler.WritePosition(doc, m.Vertices)
	texcoords := modeler.WriteTextureCoord(doc, m.UVs)
	indices := modeler.WriteIndices(doc, m.Indices)

	material := &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
		DoubleSided: true,
	}

	if tex != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, tex); err != nil {
			return fmt.Errorf("glb: encode texture for %s: %w", name, err)
		}
		imgIdx, err := modeler.WriteImage(doc, name, "image/png", &buf)
		if err != nil {
			return fmt.Errorf("glb: embed texture for %s: %w", name, err)
		}
		doc.Samplers = []*gltf.Sampler{{WrapS: gltf.WrapRepeat, WrapT: gltf.WrapRepeat}}
		doc.Textures = []*gltf.Texture{{Sampler: gltf.Index(0), Source: gltf.Index(imgIdx)}}
		material.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: 0}
	}

	doc.Materials = []*gltf.Material{material}
	doc.Meshes = []*gltf.Mesh{{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]uint32{
				gltf.POSITION:   positions,
				gltf.TEXCOORD_0: texcoords,
			},
			Indices:  gltf.Index(indices),
			Material: gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("glb: write %s: %w", path, err)
	}
	return nil
}
