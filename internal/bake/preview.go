package bake

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Preview downscales an exported map so the larger side is at most maxDim
// pixels, preserving aspect ratio. Images already small enough are copied
// unchanged.
func Preview(src image.Image, maxDim int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w > h {
		if w > maxDim {
			h = h * maxDim / w
			w = maxDim
		}
	} else {
		if h > maxDim {
			w = w * maxDim / h
			h = maxDim
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
