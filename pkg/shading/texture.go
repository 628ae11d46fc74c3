package shading

import (
	"fmt"
	gomath "math"
)

// Layer indices into the terrain texture array. Each albedo layer is paired
// with its tangent-space normal map at the next index.
const (
	LayerFlat        = 0
	LayerFlatNormal  = 1
	LayerCliff       = 2
	LayerCliffNormal = 3

	// TerrainLayers is the layer count the terrain shader expects.
	TerrainLayers = 4
)

// TextureArray provides filtered RGBA samples from a layered texture.
// Albedo layers hold sRGB-encoded color; normal-map layers hold linear
// tangent-space vectors. Channels are returned in [0, 1].
type TextureArray interface {
	Sample(u, v float32, layer int) [4]float32
	Layers() int
}

// ImageArray is a CPU texture array of equally sized RGBA layers with
// repeat wrapping and bilinear filtering.
type ImageArray struct {
	width  int
	height int
	layers [][]uint8
}

// NewImageArray returns an array of layers zeroed RGBA images.
func NewImageArray(width, height, layers int) *ImageArray {
	a := &ImageArray{
		width:  width,
		height: height,
		layers: make([][]uint8, layers),
	}
	for i := range a.layers {
		a.layers[i] = make([]uint8, width*height*4)
	}
	return a
}

// SetLayer replaces one layer with row-major RGBA pixel data.
func (a *ImageArray) SetLayer(layer int, pixels []uint8) error {
	if layer < 0 || layer >= len(a.layers) {
		return fmt.Errorf("layer %d out of range (%d layers)", layer, len(a.layers))
	}
	if len(pixels) != a.width*a.height*4 {
		return fmt.Errorf("layer %d: got %d bytes, want %d", layer, len(pixels), a.width*a.height*4)
	}
	copy(a.layers[layer], pixels)
	return nil
}

// Layers returns the layer count.
func (a *ImageArray) Layers() int {
	return len(a.layers)
}

// Size returns the pixel dimensions shared by all layers.
func (a *ImageArray) Size() (width, height int) {
	return a.width, a.height
}

// Pixels returns the raw RGBA data of one layer for GPU upload.
func (a *ImageArray) Pixels(layer int) []uint8 {
	return a.layers[layer]
}

// Sample returns the bilinearly filtered texel at (u, v) with repeat
// wrapping. The layer index must be valid.
func (a *ImageArray) Sample(u, v float32, layer int) [4]float32 {
	px := a.layers[layer]

	// Wrap into [0, 1), then address texel centers.
	uf := float64(u) - gomath.Floor(float64(u))
	vf := float64(v) - gomath.Floor(float64(v))
	x := uf*float64(a.width) - 0.5
	y := vf*float64(a.height) - 0.5

	x0 := int(gomath.Floor(x))
	y0 := int(gomath.Floor(y))
	tx := float32(x - float64(x0))
	ty := float32(y - float64(y0))

	x0w := wrapIndex(x0, a.width)
	x1w := wrapIndex(x0+1, a.width)
	y0w := wrapIndex(y0, a.height)
	y1w := wrapIndex(y0+1, a.height)

	t00 := a.texel(px, x0w, y0w)
	t10 := a.texel(px, x1w, y0w)
	t01 := a.texel(px, x0w, y1w)
	t11 := a.texel(px, x1w, y1w)

	var out [4]float32
	for c := 0; c < 4; c++ {
		top := t00[c] + (t10[c]-t00[c])*tx
		bottom := t01[c] + (t11[c]-t01[c])*tx
		out[c] = top + (bottom-top)*ty
	}
	return out
}

func (a *ImageArray) texel(px []uint8, x, y int) [4]float32 {
	o := (y*a.width + x) * 4
	return [4]float32{
		float32(px[o+0]) / 255,
		float32(px[o+1]) / 255,
		float32(px[o+2]) / 255,
		float32(px[o+3]) / 255,
	}
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// DefaultTerrainArray returns the built-in 1x1 four-layer array: grass and
// dirt albedo, each paired with a flat normal map.
func DefaultTerrainArray() *ImageArray {
	a := NewImageArray(1, 1, TerrainLayers)
	a.SetLayer(LayerFlat, []uint8{0x28, 0xaa, 0x00, 0xff})
	a.SetLayer(LayerFlatNormal, []uint8{127, 127, 255, 255})
	a.SetLayer(LayerCliff, []uint8{0x62, 0x3b, 0x0f, 0xff})
	a.SetLayer(LayerCliffNormal, []uint8{127, 127, 255, 255})
	return a
}
