package terrain

import (
	"github.com/driftline/veldt/pkg/math"
)

// Vertex is one displaced grid point of a tile mesh. The layout matches the
// GPU vertex buffer: position at offset 0, normal at offset 12.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
}

// Extend grows the bounds to include p.
func (b *Bounds) Extend(p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the bounds along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// TileID addresses a tile by its integer grid coordinates.
type TileID struct {
	X, Z int
}

// Offset returns the world-space origin of the tile. Tiles step by
// TileSize-1 units so edge vertices coincide with the neighboring tile.
func (id TileID) Offset(tileSize int) math.Vec2 {
	return math.Vec2{
		X: float32(id.X * (tileSize - 1)),
		Y: float32(id.Z * (tileSize - 1)),
	}
}

// TileMesh is a baked tile: displaced vertices and triangle indices.
type TileMesh struct {
	Tile     TileID
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// BuildTileMesh displaces a TileSize x TileSize vertex grid through the
// generator and triangulates it with two counter-clockwise triangles per
// grid cell.
func BuildTileMesh(g *Generator, id TileID) *TileMesh {
	ts := g.Params().TileSize
	origin := id.Offset(ts)

	mesh := &TileMesh{
		Tile:     id,
		Vertices: make([]Vertex, 0, ts*ts),
		Indices:  make([]uint32, 0, (ts-1)*(ts-1)*6),
	}

	first := g.VertexAt(origin.X, origin.Y)
	mesh.Bounds = Bounds{Min: first.Position, Max: first.Position}

	for z := 0; z < ts; z++ {
		for x := 0; x < ts; x++ {
			v := g.VertexAt(origin.X+float32(x), origin.Y+float32(z))
			mesh.Bounds.Extend(v.Position)
			mesh.Vertices = append(mesh.Vertices, v)
		}
	}

	stride := uint32(ts)
	for z := 0; z < ts-1; z++ {
		for x := 0; x < ts-1; x++ {
			i := uint32(x) + uint32(z)*stride
			mesh.Indices = append(mesh.Indices,
				i, i+1+stride, i+1,
				i, i+stride, i+1+stride,
			)
		}
	}

	return mesh
}
