package texture

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, path string, c color.NRGBA, encode func(*os.File, image.Image) error) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func writePNG(t *testing.T, path string, c color.NRGBA) {
	writeImage(t, path, c, func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	})
}

func TestLoadPNGKeepsAlpha(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tail.png")
	writePNG(t, path, color.NRGBA{R: 200, G: 16, B: 32, A: 128})

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := img.NRGBAAt(0, 0)
	if got != (color.NRGBA{R: 200, G: 16, B: 32, A: 128}) {
		t.Errorf("pixel = %+v, want straight-alpha source value", got)
	}
}

func TestLoadJPEGPromotesToOpaqueNRGBA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.jpg")
	writeImage(t, path, color.NRGBA{R: 120, G: 130, B: 140, A: 255}, func(f *os.File, img image.Image) error {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	})

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := img.NRGBAAt(1, 1).A; got != 255 {
		t.Errorf("alpha = %d, want 255 for an opaque source", got)
	}
}

func TestLoadBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wing.bmp")
	writeImage(t, path, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, func(f *os.File, img image.Image) error {
		return bmp.Encode(f, img)
	})

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := img.NRGBAAt(0, 1)
	if got.R != 10 || got.G != 20 || got.B != 30 || got.A != 255 {
		t.Errorf("pixel = %+v, want {10 20 30 255}", got)
	}
}

// One image per supported format, round-tripped through Load. TGA has no
// magic bytes, so the decoders must never be picked by content sniffing;
// this pins the per-extension dispatch.
func TestLoadEverySupportedFormat(t *testing.T) {
	fill := color.NRGBA{R: 60, G: 120, B: 180, A: 255}
	cases := []struct {
		name   string
		encode func(*os.File, image.Image) error
		lossy  bool
	}{
		{"tail.png", func(f *os.File, img image.Image) error { return png.Encode(f, img) }, false},
		{"tail.jpg", func(f *os.File, img image.Image) error {
			return jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
		}, true},
		{"tail.bmp", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }, false},
		{"tail.tga", func(f *os.File, img image.Image) error { return tga.Encode(f, img) }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name)
			writeImage(t, path, fill, tc.encode)

			img, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			got := img.NRGBAAt(1, 1)
			if got.A != 255 {
				t.Errorf("alpha = %d, want 255", got.A)
			}
			if !tc.lossy && got != fill {
				t.Errorf("pixel = %+v, want %+v", got, fill)
			}
		})
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tail.dds")
	if err := os.WriteFile(path, []byte("DDS "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an extension without a decoder")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected a read error")
	}
}
