package terrain

import (
	"context"
	gomath "math"
	"runtime"
	"sync"

	"github.com/driftline/veldt/pkg/math"
)

// TileGrid tracks the tile layout of a terrain, baking tile meshes on demand
// and caching them for the renderer. The cache never evicts; a full 16x16
// grid of 256-vertex tiles is small next to the GPU copies.
type TileGrid struct {
	gen  *Generator
	size int

	mu     sync.Mutex
	meshes map[TileID]*TileMesh
	hits   int
	misses int
}

// NewTileGrid returns a grid of size x size tiles over the generator.
func NewTileGrid(gen *Generator, size int) *TileGrid {
	return &TileGrid{
		gen:    gen,
		size:   size,
		meshes: make(map[TileID]*TileMesh),
	}
}

// Generator returns the height-field generator backing the grid.
func (t *TileGrid) Generator() *Generator {
	return t.gen
}

// Size returns the tile count per grid side.
func (t *TileGrid) Size() int {
	return t.size
}

// Contains reports whether the tile lies inside the grid.
func (t *TileGrid) Contains(id TileID) bool {
	return id.X >= 0 && id.X < t.size && id.Z >= 0 && id.Z < t.size
}

// WorldSize returns the world-space extent of the grid along each axis.
func (t *TileGrid) WorldSize() float32 {
	return float32(t.size * (t.gen.Params().TileSize - 1))
}

// Bounds returns the axis-aligned box enclosing the whole grid's terrain.
func (t *TileGrid) Bounds() Bounds {
	s := t.WorldSize()
	return Bounds{
		Max: math.Vec3{X: s, Y: t.gen.MaxHeight(), Z: s},
	}
}

// TileAt returns the tile under a world-space XZ point, clamped to the grid.
func (t *TileGrid) TileAt(p math.Vec2) TileID {
	step := float64(t.gen.Params().TileSize - 1)
	return TileID{
		X: clampInt(int(gomath.Floor(float64(p.X)/step)), 0, t.size-1),
		Z: clampInt(int(gomath.Floor(float64(p.Y)/step)), 0, t.size-1),
	}
}

// Mesh returns the baked mesh for a tile, building it on first use. The bake
// runs outside the lock; if two callers race on the same tile, the first
// stored mesh wins so callers share one copy.
func (t *TileGrid) Mesh(id TileID) *TileMesh {
	t.mu.Lock()
	if m, ok := t.meshes[id]; ok {
		t.hits++
		t.mu.Unlock()
		return m
	}
	t.misses++
	t.mu.Unlock()

	m := BuildTileMesh(t.gen, id)

	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.meshes[id]; ok {
		return prev
	}
	t.meshes[id] = m
	return m
}

// Cached returns the mesh for a tile if it has already been baked.
func (t *TileGrid) Cached(id TileID) (*TileMesh, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.meshes[id]
	return m, ok
}

// Stats returns the cache hit and miss counts.
func (t *TileGrid) Stats() (hits, misses int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hits, t.misses
}

// VisibleFrom returns the tiles within radius tiles (Chebyshev distance) of
// the tile under the eye point, clamped to the grid.
func (t *TileGrid) VisibleFrom(eye math.Vec3, radius int) []TileID {
	c := t.TileAt(eye.XZ())
	minX := clampInt(c.X-radius, 0, t.size-1)
	maxX := clampInt(c.X+radius, 0, t.size-1)
	minZ := clampInt(c.Z-radius, 0, t.size-1)
	maxZ := clampInt(c.Z+radius, 0, t.size-1)

	ids := make([]TileID, 0, (maxX-minX+1)*(maxZ-minZ+1))
	for z := minZ; z <= maxZ; z++ {
		for x := minX; x <= maxX; x++ {
			ids = append(ids, TileID{X: x, Z: z})
		}
	}
	return ids
}

// BakeAll bakes every tile of the grid with a bounded worker pool, storing
// each mesh in the cache. workers <= 0 uses one worker per CPU.
func (t *TileGrid) BakeAll(ctx context.Context, workers int) ([]*TileMesh, error) {
	total := t.size * t.size
	if total <= 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type bakeResult struct {
		mesh *TileMesh
		err  error
	}

	tasks := make(chan TileID, workers)
	results := make(chan bakeResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range tasks {
				if err := ctx.Err(); err != nil {
					select {
					case results <- bakeResult{err: err}:
					default:
					}
					return
				}
				select {
				case results <- bakeResult{mesh: BuildTileMesh(t.gen, id)}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(tasks)
		for z := 0; z < t.size; z++ {
			for x := 0; x < t.size; x++ {
				select {
				case <-ctx.Done():
					return
				case tasks <- TileID{X: x, Z: z}:
				}
			}
		}
	}()

	meshes := make([]*TileMesh, 0, total)
	for r := range results {
		if r.err != nil {
			cancel()
			return nil, r.err
		}
		t.store(r.mesh)
		meshes = append(meshes, r.mesh)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return meshes, nil
}

func (t *TileGrid) store(m *TileMesh) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.meshes[m.Tile]; !ok {
		t.meshes[m.Tile] = m
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
