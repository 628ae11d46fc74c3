package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/driftline/veldt/pkg/shading"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestLoadImageArray(t *testing.T) {
	dir := t.TempDir()

	colors := []color.RGBA{
		{40, 170, 0, 255},
		{127, 127, 255, 255},
		{98, 59, 15, 255},
		{127, 127, 255, 255},
	}
	paths := make([]string, shading.TerrainLayers)
	for i, c := range colors {
		paths[i] = filepath.Join(dir, "layer"+string(rune('a'+i))+".png")
		writePNG(t, paths[i], 4, 4, c)
	}

	arr, err := LoadImageArray(paths)
	if err != nil {
		t.Fatalf("LoadImageArray: %v", err)
	}

	if w, h := arr.Size(); w != 4 || h != 4 {
		t.Errorf("size = %dx%d, want 4x4", w, h)
	}
	if arr.Layers() != shading.TerrainLayers {
		t.Errorf("layers = %d, want %d", arr.Layers(), shading.TerrainLayers)
	}

	// Spot-check the first texel of each layer.
	for i, c := range colors {
		px := arr.Pixels(i)
		if px[0] != c.R || px[1] != c.G || px[2] != c.B || px[3] != c.A {
			t.Errorf("layer %d texel = [%d %d %d %d], want [%d %d %d %d]",
				i, px[0], px[1], px[2], px[3], c.R, c.G, c.B, c.A)
		}
	}
}

func TestLoadImageArrayWrongCount(t *testing.T) {
	if _, err := LoadImageArray([]string{"a.png"}); err == nil {
		t.Error("expected error for wrong path count")
	}
}

func TestLoadImageArrayMismatchedSizes(t *testing.T) {
	dir := t.TempDir()

	paths := make([]string, shading.TerrainLayers)
	for i := range paths {
		paths[i] = filepath.Join(dir, "layer"+string(rune('a'+i))+".png")
		size := 4
		if i == 2 {
			size = 8
		}
		writePNG(t, paths[i], size, size, color.RGBA{255, 0, 0, 255})
	}

	if _, err := LoadImageArray(paths); err == nil {
		t.Error("expected error for mismatched layer sizes")
	}
}

func TestLoadImageArrayMissingFile(t *testing.T) {
	paths := make([]string, shading.TerrainLayers)
	for i := range paths {
		paths[i] = "/nonexistent/layer.png"
	}
	if _, err := LoadImageArray(paths); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImageToRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(0, 0, color.Gray{Y: 200})

	rgba := ImageToRGBA(gray)
	if got := rgba.RGBAAt(0, 0); got.R != 200 || got.G != 200 || got.B != 200 || got.A != 255 {
		t.Errorf("converted texel = %v, want gray 200", got)
	}

	// Already-RGBA images pass through without copying.
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if ImageToRGBA(src) != src {
		t.Error("RGBA input should be returned as-is")
	}
}
