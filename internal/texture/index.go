package texture

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// formatRank orders the decodable formats for a stem collision. Alpha-capable
// formats win, so a package shipping both DAL.png and DAL.jpg keys to the png.
var formatRank = map[string]int{
	".png":  4,
	".tga":  3,
	".bmp":  2,
	".jpg":  1,
	".jpeg": 1,
}

// Index maps lowercase texture stems to filesystem paths under one package
// directory.
type Index struct {
	entries map[string]string
}

// BuildIndex walks a package directory and indexes every decodable image
// file by its lowercase stem.
func BuildIndex(pkgDir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(pkgDir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(p))
		rank, ok := formatRank[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)))
		if existing, exists := idx.entries[stem]; exists {
			if formatRank[strings.ToLower(filepath.Ext(existing))] >= rank {
				return nil
			}
		}
		idx.entries[stem] = p
		return nil
	})

	return idx
}

// ResolvePath maps a texture reference to an indexed file by stem. The
// reference may be Windows-style and may name a format the package does not
// ship ("liveries\DAL.dds" finds DAL.png if that is what exists).
func (idx *Index) ResolvePath(ref string) (string, bool) {
	ref = strings.ReplaceAll(ref, `\`, "/")
	base := path.Base(ref)
	stem := strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))

	p, ok := idx.entries[stem]
	return p, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
