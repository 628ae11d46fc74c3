// Veldt Workbench - a graphical tool for tuning terrain parameters and
// exporting the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"

	"github.com/driftline/veldt/internal/bake"
	"github.com/driftline/veldt/internal/engine/camera"
	"github.com/driftline/veldt/internal/engine/debug"
	"github.com/driftline/veldt/internal/engine/scene"
	"github.com/driftline/veldt/internal/engine/ui"
	"github.com/driftline/veldt/pkg/math"
	"github.com/driftline/veldt/pkg/terrain"
)

func main() {
	runtime.LockOSThread()

	seed := flag.Int("seed", 0, "initial terrain seed")
	profile := flag.String("profile", "", "initial biome profile (mountains or dune-basin)")
	flag.Parse()

	app, err := NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting workbench: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if *seed != 0 {
		app.seed = int32(*seed)
	}
	if *profile != "" {
		p, ok := terrain.ParseProfile(*profile)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown profile %q (want mountains or dune-basin)\n", *profile)
			os.Exit(1)
		}
		app.profile = int32(p)
	}
	app.rebake()

	app.Run()
}

// App holds the workbench state: the edited parameter set, the baked grid
// shown in the viewport, and pending file dialog results.
type App struct {
	backend *ui.Backend

	scene  *scene.Scene
	cam    *camera.OrbitCamera
	grid   *terrain.TileGrid
	meshes []*terrain.TileMesh

	// Editor fields; Rebake copies them into a terrain.Params. Widget types
	// force int32 here, the bake converts.
	seed           int32
	gridSize       int32
	tileSize       int32
	profile        int32
	octaves        int32
	frequency      float32
	lacunarity     float32
	persistence    float32
	mountainHeight float32
	duneHeight     float32
	biomeCenterX   float32
	biomeCenterZ   float32
	biomeRadius    float32
	biomeFalloff   float32
	duneFrequency  float32
	duneSharpness  float32
	warpFrequency  float32
	warpStrength   float32
	mountainEps    float32
	duneEps        float32

	bakeTook time.Duration

	// Probe readout for the last viewport click.
	probeHit     bool
	probePoint   math.Vec3
	probeNormal  math.Vec3
	probeWeights terrain.BiomeWeights

	// File dialog results, processed on the main thread.
	pendingOBJPath  string
	pendingShotPath string

	screenshots *debug.ScreenshotCapture

	statusMsg  string
	statusTime time.Time
}

// NewApp creates the window, the GL scene and the initial parameter set.
// The first bake happens in main so CLI overrides apply.
func NewApp() (*App, error) {
	app := &App{
		cam:         camera.NewOrbitCamera(),
		screenshots: debug.NewScreenshotCapture("screenshots", "workbench"),
	}
	app.resetParams()

	var err error
	app.backend, err = ui.NewBackend("Veldt Workbench", 1600, 900)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	app.scene, err = scene.New(scene.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	return app, nil
}

// resetParams loads the editor fields from the terrain defaults, scaled
// down to a footprint the workbench can rebake interactively.
func (app *App) resetParams() {
	p := terrain.DefaultParams()
	app.gridSize = 8
	app.tileSize = 64

	// Center the basin on the workbench footprint rather than the
	// viewer-sized default.
	half := float32(app.gridSize*(app.tileSize-1)) / 2

	app.seed = int32(p.Seed)
	app.profile = int32(p.Profile)
	app.octaves = int32(p.Octaves)
	app.frequency = p.Frequency
	app.lacunarity = p.Lacunarity
	app.persistence = p.Persistence
	app.mountainHeight = p.MountainHeight
	app.duneHeight = p.DuneHeight
	app.biomeCenterX = half
	app.biomeCenterZ = half
	app.biomeRadius = p.BiomeRadius
	app.biomeFalloff = p.BiomeFalloff
	app.duneFrequency = p.DuneFrequency
	app.duneSharpness = p.DuneSharpness
	app.warpFrequency = p.WarpFrequency
	app.warpStrength = p.WarpStrength
	app.mountainEps = p.MountainEps
	app.duneEps = p.DuneEps
}

// editedParams assembles a terrain.Params from the editor fields.
func (app *App) editedParams() terrain.Params {
	p := terrain.DefaultParams()
	p.Seed = uint32(app.seed)
	p.Profile = terrain.Profile(app.profile)
	p.TileSize = int(app.tileSize)
	p.Octaves = int(app.octaves)
	p.Frequency = app.frequency
	p.Lacunarity = app.lacunarity
	p.Persistence = app.persistence
	p.MountainHeight = app.mountainHeight
	p.DuneHeight = app.duneHeight
	p.BiomeCenter = math.Vec2{X: app.biomeCenterX, Y: app.biomeCenterZ}
	p.BiomeRadius = app.biomeRadius
	p.BiomeFalloff = app.biomeFalloff
	p.DuneFrequency = app.duneFrequency
	p.DuneSharpness = app.duneSharpness
	p.WarpFrequency = app.warpFrequency
	p.WarpStrength = app.warpStrength
	p.MountainEps = app.mountainEps
	p.DuneEps = app.duneEps
	return p
}

// Close cleans up GL resources.
func (app *App) Close() {
	if app.scene != nil {
		app.scene.Destroy()
		app.scene = nil
	}
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// render is called each frame to draw the UI.
func (app *App) render() {
	app.processPendingExports()

	// F12 captures the viewport framebuffer to the screenshots directory.
	if ui.IsKeyPressed(imgui.KeyF12) {
		if path, err := app.screenshots.CaptureFromImage(app.captureViewport()); err != nil {
			app.setStatus(fmt.Sprintf("Screenshot failed: %v", err))
		} else {
			app.setStatus("Saved " + path)
		}
	}

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Export OBJ...") {
				app.exportOBJDialog()
			}
			if imgui.MenuItemBool("Save Screenshot...") {
				app.screenshotDialog()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	paramsPanelWidth := float32(340)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(paramsPanelWidth, contentHeight))
	if imgui.BeginV("Parameters", nil, flags) {
		app.renderParamsPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+paramsPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-paramsPanelWidth, contentHeight))
	if imgui.BeginV("Viewport", nil, flags) {
		app.renderViewport()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()
}

// rebake rebuilds the generator and grid from the editor fields, bakes every
// tile and reuploads the meshes.
func (app *App) rebake() {
	grid := terrain.NewTileGrid(terrain.NewGenerator(app.editedParams()), int(app.gridSize))

	start := time.Now()
	meshes, err := grid.BakeAll(context.Background(), 0)
	if err != nil {
		app.setStatus(fmt.Sprintf("Bake failed: %v", err))
		return
	}
	app.bakeTook = time.Since(start)

	app.grid = grid
	app.meshes = meshes
	app.probeHit = false

	tr := app.scene.Terrain()
	tr.Clear()
	for _, m := range meshes {
		tr.AddTile(m)
	}

	b := grid.Bounds()
	app.cam.FitToBounds(b.Min, b.Max)

	app.backend.SetWindowTitle(fmt.Sprintf("Veldt Workbench | %dx%d tiles | seed %d", grid.Size(), grid.Size(), app.seed))
	app.setStatus(fmt.Sprintf("Baked %d tiles in %s", len(meshes), app.bakeTook.Round(time.Millisecond)))
}

// exportOBJDialog asks for a target path in a goroutine; the write happens
// on the main thread once the dialog returns.
func (app *App) exportOBJDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Title("Export OBJ").
			Save()
		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			}
			return
		}
		app.pendingOBJPath = filename
	}()
}

// screenshotDialog asks for a PNG path in a goroutine.
func (app *App) screenshotDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("PNG Image", "png").
			Title("Save Screenshot").
			Save()
		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			}
			return
		}
		app.pendingShotPath = filename
	}()
}

// processPendingExports runs queued file dialog results. GL reads and mesh
// walks stay on the main thread.
func (app *App) processPendingExports() {
	if app.pendingOBJPath != "" {
		path := app.pendingOBJPath
		app.pendingOBJPath = ""
		if err := bake.SaveOBJ(path, app.meshes); err != nil {
			app.setStatus(fmt.Sprintf("Export failed: %v", err))
		} else {
			app.setStatus("Exported " + path)
		}
	}

	if app.pendingShotPath != "" {
		path := app.pendingShotPath
		app.pendingShotPath = ""
		if err := bake.SavePNG(path, app.captureViewport()); err != nil {
			app.setStatus(fmt.Sprintf("Screenshot failed: %v", err))
		} else {
			app.setStatus("Saved " + path)
		}
	}
}

// captureViewport reads back the offscreen scene framebuffer.
func (app *App) captureViewport() *image.RGBA {
	pixels, width, height := app.scene.CaptureImage()
	return &image.RGBA{
		Pix:    pixels,
		Stride: int(width) * 4,
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}
}

func (app *App) setStatus(msg string) {
	app.statusMsg = msg
	app.statusTime = time.Now()
}

// renderStatusBar shows bake stats and the last probe or export result.
func (app *App) renderStatusBar() {
	tiles := 0
	if app.grid != nil {
		tiles = app.grid.Size() * app.grid.Size()
	}
	status := fmt.Sprintf("%d tiles | bake %s", tiles, app.bakeTook.Round(time.Millisecond))
	if app.statusMsg != "" && time.Since(app.statusTime) < 4*time.Second {
		status += " | " + app.statusMsg
	}
	imgui.Text(status)
}
