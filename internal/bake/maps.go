package bake

import (
	"image"
	"image/color"

	"github.com/driftline/veldt/pkg/math"
	"github.com/driftline/veldt/pkg/shading"
	"github.com/driftline/veldt/pkg/terrain"
)

// MapConfig controls rasterized map exports. Pixel (0, 0) samples the world
// origin and the last pixel samples (WorldSize, WorldSize), matching the
// corner-aligned vertex grid.
type MapConfig struct {
	WorldSize  float32
	Resolution int
	Workers    int
}

func (c MapConfig) step() float32 {
	if c.Resolution <= 1 {
		return 0
	}
	return c.WorldSize / float32(c.Resolution-1)
}

// HeightmapImage rasterizes the height field into 16-bit grayscale,
// normalized so the generator's maximum height maps to full white.
func HeightmapImage(g *terrain.Generator, cfg MapConfig) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, cfg.Resolution, cfg.Resolution))
	step := cfg.step()
	maxH := g.MaxHeight()

	forEachRow(cfg.Resolution, cfg.Workers, func(py int) {
		z := float32(py) * step
		for px := 0; px < cfg.Resolution; px++ {
			h := g.HeightAt(float32(px)*step, z) / maxH
			img.SetGray16(px, py, color.Gray16{Y: quantize16(h)})
		}
	})

	return img
}

// NormalImage rasterizes world-space surface normals with the debug color
// mapping (normal * 0.5 + 0.5).
func NormalImage(g *terrain.Generator, cfg MapConfig) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Resolution, cfg.Resolution))
	step := cfg.step()

	forEachRow(cfg.Resolution, cfg.Workers, func(py int) {
		z := float32(py) * step
		for px := 0; px < cfg.Resolution; px++ {
			n := g.NormalAt(float32(px)*step, z)
			setRGB(img, px, py, shading.NormalColor(n))
		}
	})

	return img
}

// ShadedImage renders the surface through the CPU triplanar shader and
// encodes the result to sRGB.
func ShadedImage(g *terrain.Generator, tex shading.TextureArray, p shading.Params, light shading.Lighting, cfg MapConfig) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Resolution, cfg.Resolution))
	step := cfg.step()

	forEachRow(cfg.Resolution, cfg.Workers, func(py int) {
		z := float32(py) * step
		for px := 0; px < cfg.Resolution; px++ {
			x := float32(px) * step
			c := shading.Shade(tex, p, light, g.PointAt(x, z), g.NormalAt(x, z))
			setRGB(img, px, py, math.Vec3{
				X: shading.LinearToSRGB(c.X),
				Y: shading.LinearToSRGB(c.Y),
				Z: shading.LinearToSRGB(c.Z),
			})
		}
	})

	return img
}

func setRGB(img *image.RGBA, x, y int, c math.Vec3) {
	img.SetRGBA(x, y, color.RGBA{
		R: quantize8(c.X),
		G: quantize8(c.Y),
		B: quantize8(c.Z),
		A: 255,
	})
}

func quantize8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func quantize16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 65535
	}
	return uint16(v*65535 + 0.5)
}
