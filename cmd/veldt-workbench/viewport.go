package main

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/driftline/veldt/internal/engine/picking"
	"github.com/driftline/veldt/internal/engine/scene"
	"github.com/driftline/veldt/pkg/math"
)

// lastMousePos tracks the previous mouse position for drag deltas.
var lastMousePos imgui.Vec2

// renderViewport draws the offscreen scene into the panel and routes mouse
// input to the orbit camera and the terrain probe.
func (app *App) renderViewport() {
	const hintHeight = 22

	avail := imgui.ContentRegionAvail()
	avail.Y -= hintHeight
	if avail.X < 16 || avail.Y < 16 {
		imgui.TextDisabled("Viewport too small")
		return
	}

	// Match the framebuffer to the panel so image pixels map 1:1 to the
	// render, which keeps the click probe exact.
	app.scene.Resize(int32(avail.X), int32(avail.Y))

	view := app.cam.ViewMatrix()
	texID := app.scene.Render(view)

	imagePos := imgui.CursorScreenPos()
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texID))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(avail.X, avail.Y),
		imgui.NewVec2(0, 1), // framebuffer rows start at the bottom
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.1, 0.2, 0.3, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()

		if imgui.IsItemClicked() {
			app.probe(mousePos.X-imagePos.X, mousePos.Y-imagePos.Y, avail.X, avail.Y, view)
		}

		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.cam.HandleDrag(mousePos.X-lastMousePos.X, mousePos.Y-lastMousePos.Y)
		}
		if imgui.IsMouseDragging(imgui.MouseButtonMiddle) {
			app.cam.HandlePan(mousePos.X-lastMousePos.X, mousePos.Y-lastMousePos.Y)
		}
		lastMousePos = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.cam.HandleZoom(wheel)
		}
	}

	imgui.TextDisabled("Drag to orbit, middle-drag to pan, scroll to zoom, click to probe")
}

// probe casts a ray through the clicked pixel and samples the terrain where
// it first crosses the surface.
func (app *App) probe(px, py, width, height float32, view math.Mat4) {
	if app.grid == nil {
		return
	}

	viewProj := scene.Projection(width/height).Mul(view)
	ray := picking.ScreenToRay(px, py, width, height, viewProj.Inverse())

	hit, ok := picking.HeightFieldHit(app.grid.Generator(), ray, app.grid.Bounds())
	if !ok {
		app.probeHit = false
		return
	}

	gen := app.grid.Generator()
	app.probeHit = true
	app.probePoint = hit
	app.probeNormal = gen.NormalAt(hit.X, hit.Z)
	app.probeWeights = gen.BiomeWeightsAt(hit.X, hit.Z)
}
