package texture

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestIndexResolvesByStem(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "liveries"), 0755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "liveries", "A320_DAL.png"), color.NRGBA{A: 255})
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	idx := BuildIndex(dir)
	if idx.Len() != 1 {
		t.Fatalf("indexed = %d, want 1", idx.Len())
	}

	cases := []struct {
		name string
		ref  string
	}{
		{"exact", "liveries/A320_DAL.png"},
		{"windows path", `liveries\A320_DAL.png`},
		{"wrong case", "a320_dal.PNG"},
		{"undecodable extension", "A320_DAL.dds"},
	}
	want := filepath.Join(dir, "liveries", "A320_DAL.png")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := idx.ResolvePath(tc.ref)
			if !ok || got != want {
				t.Errorf("ResolvePath(%q) = %q, %v; want %q", tc.ref, got, ok, want)
			}
		})
	}

	if _, ok := idx.ResolvePath("missing.png"); ok {
		t.Error("ResolvePath must miss for an unindexed stem")
	}
}

func TestIndexPrefersAlphaCapableFormats(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "body.png"), color.NRGBA{A: 255})
	// The jpg only needs to exist to compete for the stem.
	if err := os.WriteFile(filepath.Join(dir, "body.jpg"), []byte("jpg"), 0644); err != nil {
		t.Fatal(err)
	}

	idx := BuildIndex(dir)
	got, ok := idx.ResolvePath("body.jpg")
	if !ok {
		t.Fatal("stem must resolve")
	}
	if filepath.Ext(got) != ".png" {
		t.Errorf("resolved %q, want the png to win over the jpg", got)
	}
}
