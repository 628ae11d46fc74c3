// Package texture loads terrain texture layers and uploads them to OpenGL.
package texture

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	_ "golang.org/x/image/bmp" // BMP decoder registration

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/driftline/veldt/pkg/shading"
)

// LoadImageArray decodes the given image files into a texture array, one
// file per layer in shading layer order. All images must share the same
// dimensions.
func LoadImageArray(paths []string) (*shading.ImageArray, error) {
	if len(paths) != shading.TerrainLayers {
		return nil, fmt.Errorf("need %d texture paths, got %d", shading.TerrainLayers, len(paths))
	}

	var arr *shading.ImageArray
	for layer, path := range paths {
		img, err := loadImage(path)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", layer, err)
		}

		b := img.Bounds()
		if arr == nil {
			arr = shading.NewImageArray(b.Dx(), b.Dy(), shading.TerrainLayers)
		}

		if w, h := arr.Size(); b.Dx() != w || b.Dy() != h {
			return nil, fmt.Errorf("layer %d (%s): size %dx%d does not match %dx%d",
				layer, path, b.Dx(), b.Dy(), w, h)
		}

		if err := arr.SetLayer(layer, ImageToRGBA(img).Pix); err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", layer, path, err)
		}
	}

	return arr, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ImageToRGBA converts any image to tightly packed RGBA.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Bounds().Dx()*4 {
		return rgba
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// UploadArray uploads a CPU texture array as a GL_TEXTURE_2D_ARRAY with
// mipmaps and repeat wrapping. Returns the texture ID.
func UploadArray(arr *shading.ImageArray) uint32 {
	width, height := arr.Size()
	layers := arr.Layers()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, tex)

	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA8,
		int32(width), int32(height), int32(layers),
		0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	for layer := 0; layer < layers; layer++ {
		gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0,
			0, 0, int32(layer),
			int32(width), int32(height), 1,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(arr.Pixels(layer)))
	}

	gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)

	return tex
}
