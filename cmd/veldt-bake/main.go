// veldt-bake bakes terrain to files without opening a window: tile meshes
// as a Wavefront OBJ and heightmap, albedo and normal maps as PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/driftline/veldt/internal/bake"
	"github.com/driftline/veldt/internal/engine/lighting"
	"github.com/driftline/veldt/internal/logger"
	"github.com/driftline/veldt/pkg/math"
	"github.com/driftline/veldt/pkg/shading"
	"github.com/driftline/veldt/pkg/terrain"
)

const (
	mapResolution = 1024
	sunLongitude  = 45
	sunLatitude   = 50
	sunAmbient    = 0.1
)

func main() {
	var (
		seed     = flag.Uint("seed", 0, "terrain seed")
		size     = flag.Int("size", 16, "grid size in tiles per side")
		tileSize = flag.Int("tile-size", 256, "vertices per tile edge")
		profile  = flag.String("profile", terrain.ProfileMountains.String(), "biome profile: mountains or dune-basin")
		out      = flag.String("out", "bake", "output directory")
		workers  = flag.Int("workers", 0, "bake workers (0 = one per CPU)")
		obj      = flag.Bool("obj", true, "write terrain.obj")
		maps     = flag.Bool("maps", true, "write heightmap.png, albedo.png and normals.png")
		preview  = flag.Int("preview", 0, "write preview.png with this max dimension (0 = off)")
	)
	flag.Parse()

	prof, ok := terrain.ParseProfile(*profile)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown profile %q (want mountains or dune-basin)\n", *profile)
		os.Exit(1)
	}

	if err := logger.Init("info", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	params := terrain.DefaultParams()
	params.Seed = uint32(*seed)
	params.TileSize = *tileSize
	params.Profile = prof

	// Keep the dune basin in the middle of whatever footprint was asked for.
	half := float32(*size*(*tileSize-1)) / 2
	params.BiomeCenter = math.Vec2{X: half, Y: half}

	gen := terrain.NewGenerator(params)
	grid := terrain.NewTileGrid(gen, *size)

	logger.Info("baking terrain",
		zap.Uint32("seed", params.Seed),
		zap.String("profile", prof.String()),
		zap.Int("tiles", *size**size),
		zap.Float32("world_size", grid.WorldSize()),
	)

	start := time.Now()
	meshes, err := grid.BakeAll(context.Background(), *workers)
	if err != nil {
		logger.Fatal("bake failed", zap.Error(err))
	}
	logger.Info("bake complete", zap.Duration("took", time.Since(start)))

	if *obj {
		path := filepath.Join(*out, "terrain.obj")
		if err := bake.SaveOBJ(path, meshes); err != nil {
			logger.Fatal("obj export failed", zap.Error(err))
		}
		logger.Info("wrote meshes", zap.String("path", path))
	}

	if *maps || *preview > 0 {
		writeMaps(gen, grid.WorldSize(), *out, *workers, *maps, *preview)
	}
}

// writeMaps rasterizes the requested map set. The shaded albedo is computed
// whenever a preview is wanted, even with -maps=false, since the preview
// downsamples it.
func writeMaps(gen *terrain.Generator, worldSize float32, out string, workers int, maps bool, preview int) {
	cfg := bake.MapConfig{
		WorldSize:  worldSize,
		Resolution: mapResolution,
		Workers:    workers,
	}

	if maps {
		start := time.Now()
		if err := bake.SavePNG(filepath.Join(out, "heightmap.png"), bake.HeightmapImage(gen, cfg)); err != nil {
			logger.Fatal("heightmap export failed", zap.Error(err))
		}
		if err := bake.SavePNG(filepath.Join(out, "normals.png"), bake.NormalImage(gen, cfg)); err != nil {
			logger.Fatal("normal map export failed", zap.Error(err))
		}
		logger.Info("wrote height and normal maps",
			zap.Int("resolution", mapResolution),
			zap.Duration("took", time.Since(start)),
		)
	}

	light := shading.Lighting{
		Direction: lighting.SunDirection(sunLongitude, sunLatitude),
		Ambient:   sunAmbient,
	}
	start := time.Now()
	albedo := bake.ShadedImage(gen, shading.DefaultTerrainArray(), shading.DefaultParams(), light, cfg)
	if maps {
		if err := bake.SavePNG(filepath.Join(out, "albedo.png"), albedo); err != nil {
			logger.Fatal("albedo export failed", zap.Error(err))
		}
	}
	if preview > 0 {
		if err := bake.SavePNG(filepath.Join(out, "preview.png"), bake.Preview(albedo, preview)); err != nil {
			logger.Fatal("preview export failed", zap.Error(err))
		}
	}
	logger.Info("wrote shaded maps", zap.String("dir", out), zap.Duration("took", time.Since(start)))
}
