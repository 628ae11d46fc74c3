// Package scene draws baked terrain tiles, either straight into the window
// or into an offscreen framebuffer for embedding in a UI.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/driftline/veldt/internal/engine/framebuffer"
	"github.com/driftline/veldt/internal/engine/lighting"
	"github.com/driftline/veldt/internal/engine/texture"
	"github.com/driftline/veldt/pkg/math"
	"github.com/driftline/veldt/pkg/shading"
)

// Projection parameters shared by every view of the terrain.
const (
	fovY  = 0.785398 // 45 degrees
	zNear = 0.1
	zFar  = 10000.0
)

// Projection returns the perspective matrix used for terrain views.
func Projection(aspect float32) math.Mat4 {
	return math.Perspective(fovY, aspect, zNear, zFar)
}

// Config contains scene configuration options.
type Config struct {
	Width  int32
	Height int32
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:  1280,
		Height: 720,
	}
}

// Scene owns the terrain renderer, the terrain texture set and the sun, and
// provides the two render paths.
type Scene struct {
	config Config

	// Framebuffer for offscreen rendering
	framebuffer *framebuffer.Framebuffer

	terrain      *TerrainRenderer
	textureArray uint32

	// Lighting
	Sun *lighting.Sun

	// Surface shading parameters
	Shading shading.Params

	// DebugView switches the terrain to a diagnostic rendering.
	DebugView shading.DebugView
}

// New creates a scene with the built-in texture set and a default sun.
func New(cfg Config) (*Scene, error) {
	s := &Scene{
		config:  cfg,
		Sun:     lighting.NewSun(45, 50, 0.1),
		Shading: shading.DefaultParams(),
	}

	var err error
	s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	s.terrain, err = NewTerrainRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating terrain renderer: %w", err)
	}

	s.SetTextures(shading.DefaultTerrainArray())

	return s, nil
}

// Terrain returns the tile renderer for streaming meshes in and out.
func (s *Scene) Terrain() *TerrainRenderer {
	return s.terrain
}

// SetTextures replaces the terrain texture set with an uploaded copy of the
// image array.
func (s *Scene) SetTextures(arr *shading.ImageArray) {
	if s.textureArray != 0 {
		gl.DeleteTextures(1, &s.textureArray)
	}
	s.textureArray = texture.UploadArray(arr)
	s.terrain.SetTextureArray(s.textureArray)
}

// Render draws the terrain into the offscreen framebuffer and returns its
// color texture, ready to show in a UI image widget.
func (s *Scene) Render(view math.Mat4) uint32 {
	aspect := float32(s.config.Width) / float32(s.config.Height)
	viewProj := Projection(aspect).Mul(view)

	restore := s.framebuffer.BindWithViewport()
	defer restore()

	s.framebuffer.Clear(0.1, 0.2, 0.3, 1.0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	s.terrain.Render(viewProj, s.Sun.Direction(), s.Sun.Ambient, s.Shading, s.DebugView)

	return s.framebuffer.ColorTexture()
}

// RenderDirect draws the terrain into whatever framebuffer is bound, sized
// width x height. The caller clears and sets the viewport.
func (s *Scene) RenderDirect(view math.Mat4, width, height int32) {
	if height == 0 {
		return
	}
	aspect := float32(width) / float32(height)
	viewProj := Projection(aspect).Mul(view)

	s.terrain.Render(viewProj, s.Sun.Direction(), s.Sun.Ambient, s.Shading, s.DebugView)
}

// Resize updates the offscreen framebuffer dimensions.
func (s *Scene) Resize(width, height int32) {
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
	s.framebuffer.Resize(width, height)
}

// Size returns the offscreen framebuffer dimensions.
func (s *Scene) Size() (width, height int32) {
	return s.config.Width, s.config.Height
}

// ColorTexture returns the offscreen color texture.
func (s *Scene) ColorTexture() uint32 {
	return s.framebuffer.ColorTexture()
}

// CaptureImage reads back the offscreen framebuffer as RGBA pixels in
// top-to-bottom row order.
func (s *Scene) CaptureImage() ([]byte, int32, int32) {
	width, height := s.framebuffer.Size()
	pixels := s.framebuffer.ReadPixels()

	// Flip vertically (OpenGL has origin at bottom-left, we need top-left)
	rowSize := int(width) * 4
	flipped := make([]byte, len(pixels))
	for y := 0; y < int(height); y++ {
		srcRow := (int(height) - 1 - y) * rowSize
		dstRow := y * rowSize
		copy(flipped[dstRow:dstRow+rowSize], pixels[srcRow:srcRow+rowSize])
	}

	return flipped, width, height
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.terrain != nil {
		s.terrain.Destroy()
	}
	if s.textureArray != 0 {
		gl.DeleteTextures(1, &s.textureArray)
		s.textureArray = 0
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}
