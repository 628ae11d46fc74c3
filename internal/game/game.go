// Package game implements the viewer main loop: input, camera movement,
// tile streaming and rendering.
package game

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/driftline/veldt/internal/config"
	"github.com/driftline/veldt/internal/engine/camera"
	"github.com/driftline/veldt/internal/engine/debug"
	"github.com/driftline/veldt/internal/engine/framebuffer"
	"github.com/driftline/veldt/internal/engine/input"
	"github.com/driftline/veldt/internal/engine/lighting"
	"github.com/driftline/veldt/internal/engine/renderer"
	"github.com/driftline/veldt/internal/engine/scene"
	"github.com/driftline/veldt/internal/engine/texture"
	"github.com/driftline/veldt/internal/engine/window"
	"github.com/driftline/veldt/internal/logger"
	"github.com/driftline/veldt/pkg/math"
	"github.com/driftline/veldt/pkg/shading"
	"github.com/driftline/veldt/pkg/terrain"
)

const windowTitle = "Veldt"

// statsWindow is the number of frames per FPS measurement.
const statsWindow = 100

// maxUploadsPerFrame caps tile uploads so a burst of freshly baked tiles
// does not stall a frame.
const maxUploadsPerFrame = 8

// Game is the viewer instance.
type Game struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	camera   *camera.FlyCamera
	grid     *terrain.TileGrid

	screenshots    *debug.ScreenshotCapture
	wantScreenshot bool

	// Tile streaming
	requests chan terrain.TileID
	results  chan *terrain.TileMesh
	pending  map[terrain.TileID]bool
	workers  sync.WaitGroup
	lastTile terrain.TileID
	streamed bool
}

// New creates the viewer: window, GL state, scene and terrain generator.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Uint32("seed", cfg.Terrain.Seed),
		zap.String("profile", cfg.Terrain.Profile),
	)

	g := &Game{
		cfg:     cfg,
		pending: make(map[terrain.TileID]bool),
	}

	// Window first: it owns the OpenGL context.
	var err error
	g.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	g.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()

	g.scene, err = scene.New(scene.Config{
		Width:  int32(cfg.Window.Width),
		Height: int32(cfg.Window.Height),
	})
	if err != nil {
		g.renderer.Close()
		g.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	g.scene.Sun = lighting.NewSun(cfg.Shading.SunLongitude, cfg.Shading.SunLatitude, cfg.Shading.Ambient)
	g.scene.Shading = shading.Params{
		UVScale:        cfg.Shading.UVScale,
		SlopeThreshold: cfg.Shading.SlopeThreshold,
		NormalMapping:  cfg.Shading.NormalMapping,
	}
	if cfg.Debug.DebugMode {
		g.scene.DebugView = shading.DebugNormals
	}
	if len(cfg.Shading.TexturePaths) > 0 {
		arr, err := texture.LoadImageArray(cfg.Shading.TexturePaths)
		if err != nil {
			logger.Warn("falling back to built-in textures", zap.Error(err))
		} else {
			g.scene.SetTextures(arr)
		}
	}

	gen := terrain.NewGenerator(cfg.Terrain.Params())
	g.grid = terrain.NewTileGrid(gen, cfg.Terrain.TerrainSize)

	g.camera = g.spawnCamera(gen)
	g.camera.MoveSpeed = cfg.Camera.MoveSpeed
	g.camera.Sensitivity = cfg.Camera.Sensitivity

	g.screenshots = debug.NewScreenshotCapture("screenshots", "veldt")

	g.startStreaming()

	logger.Info("viewer initialized")
	return g, nil
}

// spawnCamera places the camera above the world center, looking out across
// the terrain.
func (g *Game) spawnCamera(gen *terrain.Generator) *camera.FlyCamera {
	half := float32(g.cfg.Terrain.TerrainSize*(g.cfg.Terrain.TileSize-1)) / 2
	ground := gen.HeightAt(half, half)

	cam := camera.NewFlyCamera(math.Vec3{X: half, Y: ground + 30, Z: half})
	cam.Pitch = -0.3
	return cam
}

// startStreaming launches the background tile bakers. Channel capacity
// covers every tile of the grid, so workers never block on shutdown.
func (g *Game) startStreaming() {
	total := g.grid.Size() * g.grid.Size()
	g.requests = make(chan terrain.TileID, total)
	g.results = make(chan *terrain.TileMesh, total)

	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	for i := 0; i < workers; i++ {
		g.workers.Add(1)
		go func() {
			defer g.workers.Done()
			for id := range g.requests {
				g.results <- g.grid.Mesh(id)
			}
		}()
	}
	logger.Debug("tile streaming started", zap.Int("workers", workers))
}

// Run starts the main loop and blocks until the viewer quits.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	frameTime := 0.0

	logger.Info("starting main loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()
		g.handleLook()

		g.update(float32(dt))
		g.render()

		if g.wantScreenshot {
			g.wantScreenshot = false
			g.captureScreenshot()
		}

		g.window.SwapBuffers()

		frameCount++
		frameTime += dt
		if frameCount == statsWindow {
			avg := frameTime / statsWindow
			fps := 1.0 / avg
			hits, misses := g.grid.Stats()
			g.window.SetTitle(fmt.Sprintf("%s | %.0f fps | %.2f ms | %d tiles",
				windowTitle, fps, avg*1000, g.scene.Terrain().TileCount()))
			logger.Debug("frame stats",
				zap.Float64("fps", fps),
				zap.Float64("frame_ms", avg*1000),
				zap.Int("tiles", g.scene.Terrain().TileCount()),
				zap.Int("bake_hits", hits),
				zap.Int("bake_misses", misses),
			)
			frameCount = 0
			frameTime = 0
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.renderer.Resize(event.Width, event.Height)

		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_F:
				if err := g.window.SetFullscreen(!g.window.Fullscreen()); err != nil {
					logger.Warn("fullscreen toggle failed", zap.Error(err))
				}
			case sdl.SCANCODE_0, sdl.SCANCODE_KP_0:
				g.cycleDebugView()
			case sdl.SCANCODE_N:
				g.scene.Shading.NormalMapping = !g.scene.Shading.NormalMapping
				logger.Info("normal mapping", zap.Bool("enabled", g.scene.Shading.NormalMapping))
			case sdl.SCANCODE_F12:
				g.wantScreenshot = true
			}

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				g.window.GrabMouse(true)
			}

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT {
				g.window.GrabMouse(false)
			}
		}
	}

	if wheel := g.input.WheelDelta(); wheel != 0 {
		g.camera.MoveSpeed *= 1 + 0.1*wheel
		if g.camera.MoveSpeed < 1 {
			g.camera.MoveSpeed = 1
		}
		if g.camera.MoveSpeed > 500 {
			g.camera.MoveSpeed = 500
		}
	}
}

func (g *Game) cycleDebugView() {
	switch g.scene.DebugView {
	case shading.DebugOff:
		g.scene.DebugView = shading.DebugNormals
	case shading.DebugNormals:
		g.scene.DebugView = shading.DebugTiles
	default:
		g.scene.DebugView = shading.DebugOff
	}
	logger.Info("debug view", zap.String("mode", g.scene.DebugView.String()))
}

// handleLook applies mouse motion to the camera while the left button holds
// the pointer grabbed.
func (g *Game) handleLook() {
	if !g.window.MouseGrabbed() {
		return
	}
	dx, dy := g.input.MouseDelta()
	if dx != 0 || dy != 0 {
		g.camera.HandleMouse(float32(dx), float32(dy))
	}
}

func (g *Game) update(dt float32) {
	g.uploadBakedTiles()
	g.refreshTiles()
	g.moveCamera(dt)
}

// uploadBakedTiles moves finished meshes from the bake workers to the GPU.
func (g *Game) uploadBakedTiles() {
	for i := 0; i < maxUploadsPerFrame; i++ {
		select {
		case mesh := <-g.results:
			delete(g.pending, mesh.Tile)
			g.scene.Terrain().AddTile(mesh)
		default:
			return
		}
	}
}

// refreshTiles requests bakes for tiles entering the chunk radius and drops
// GPU copies one ring beyond it. Runs only when the camera crosses into a
// new tile.
func (g *Game) refreshTiles() {
	tile := g.grid.TileAt(g.camera.Position.XZ())
	if g.streamed && tile == g.lastTile {
		return
	}
	g.lastTile = tile
	g.streamed = true

	radius := g.cfg.Terrain.ChunkRadius
	for _, id := range g.grid.VisibleFrom(g.camera.Position, radius) {
		if !g.scene.Terrain().HasTile(id) && !g.pending[id] {
			g.pending[id] = true
			g.requests <- id
		}
	}

	keep := make(map[terrain.TileID]bool)
	for _, id := range g.grid.VisibleFrom(g.camera.Position, radius+1) {
		keep[id] = true
	}
	for _, id := range g.scene.Terrain().TileIDs() {
		if !keep[id] {
			g.scene.Terrain().RemoveTile(id)
		}
	}
}

func (g *Game) moveCamera(dt float32) {
	var forward, right, up float32
	if g.input.IsKeyDown(sdl.SCANCODE_W) {
		forward++
	}
	if g.input.IsKeyDown(sdl.SCANCODE_S) {
		forward--
	}
	if g.input.IsKeyDown(sdl.SCANCODE_D) {
		right++
	}
	if g.input.IsKeyDown(sdl.SCANCODE_A) {
		right--
	}
	if g.input.IsKeyDown(sdl.SCANCODE_SPACE) {
		up++
	}
	if g.input.IsKeyDown(sdl.SCANCODE_LSHIFT) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		g.camera.Move(forward, right, up, dt)
	}
}

func (g *Game) render() {
	g.renderer.Begin()
	w, h := g.window.GetSize()
	g.scene.RenderDirect(g.camera.ViewMatrix(), int32(w), int32(h))
	g.renderer.End()
}

// captureScreenshot reads back the frame just drawn, before the swap.
func (g *Game) captureScreenshot() {
	w, h := g.window.GetSize()
	pixels := framebuffer.ReadDefault(w, h)
	path, err := g.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// saveSettings writes the toggles changed at runtime back to the config
// file.
func (g *Game) saveSettings() {
	g.cfg.Camera.MoveSpeed = g.camera.MoveSpeed
	g.cfg.Shading.NormalMapping = g.scene.Shading.NormalMapping
	g.cfg.Debug.DebugMode = g.scene.DebugView != shading.DebugOff
	g.cfg.Window.Fullscreen = g.window.Fullscreen()

	if err := g.cfg.Save(); err != nil {
		logger.Warn("saving settings failed", zap.Error(err))
		return
	}
	logger.Info("settings saved")
}

// Close stops the bake workers, persists settings and releases resources.
func (g *Game) Close() {
	logger.Info("closing viewer")

	if g.requests != nil {
		close(g.requests)
		g.workers.Wait()
	}

	g.saveSettings()

	if g.scene != nil {
		g.scene.Destroy()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
