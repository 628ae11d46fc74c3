package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/driftline/veldt/internal/engine/scene/shaders"
	"github.com/driftline/veldt/internal/engine/shader"
	"github.com/driftline/veldt/pkg/math"
	"github.com/driftline/veldt/pkg/shading"
	"github.com/driftline/veldt/pkg/terrain"
)

// tileBuffers is the GPU copy of one baked tile.
type tileBuffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// TerrainRenderer draws baked terrain tiles with the triplanar surface
// shader. Each tile keeps its own vertex buffers so tiles can stream in and
// out independently as the camera moves.
type TerrainRenderer struct {
	program uint32

	locViewProj       int32
	locLightDir       int32
	locAmbient        int32
	locUVScale        int32
	locSlopeThreshold int32
	locNormalMapping  int32
	locTextureArray   int32

	debugProgram      uint32
	locDebugViewProj  int32
	locDebugView      int32
	locDebugTileColor int32

	textureArray uint32

	tiles     map[terrain.TileID]*tileBuffers
	bounds    terrain.Bounds
	hasBounds bool
}

// NewTerrainRenderer compiles the surface and debug programs.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	tr := &TerrainRenderer{
		tiles: make(map[terrain.TileID]*tileBuffers),
	}

	program, err := shader.CompileProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tr.program = program

	tr.locViewProj = shader.MustGetUniform(program, "uViewProj")
	tr.locLightDir = shader.GetUniform(program, "uLightDir")
	tr.locAmbient = shader.GetUniform(program, "uAmbient")
	tr.locUVScale = shader.GetUniform(program, "uUVScale")
	tr.locSlopeThreshold = shader.GetUniform(program, "uSlopeThreshold")
	tr.locNormalMapping = shader.GetUniform(program, "uNormalMapping")
	tr.locTextureArray = shader.GetUniform(program, "uTextureArray")

	debugProgram, err := shader.CompileProgram(shaders.TerrainVertexShader, shaders.DebugFragmentShader)
	if err != nil {
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("debug shader: %w", err)
	}
	tr.debugProgram = debugProgram

	tr.locDebugViewProj = shader.MustGetUniform(debugProgram, "uViewProj")
	tr.locDebugView = shader.GetUniform(debugProgram, "uDebugView")
	tr.locDebugTileColor = shader.GetUniform(debugProgram, "uTileColor")

	return tr, nil
}

// SetTextureArray points the surface shader at a GL_TEXTURE_2D_ARRAY with
// the four terrain layers. The renderer does not own the texture.
func (tr *TerrainRenderer) SetTextureArray(tex uint32) {
	tr.textureArray = tex
}

// AddTile uploads a baked tile mesh, replacing any previous upload for the
// same tile.
func (tr *TerrainRenderer) AddTile(mesh *terrain.TileMesh) {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return
	}
	tr.RemoveTile(mesh.Tile)

	buf := &tileBuffers{indexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)

	gl.GenBuffers(1, &buf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &buf.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	tr.tiles[mesh.Tile] = buf

	if !tr.hasBounds {
		tr.bounds = mesh.Bounds
		tr.hasBounds = true
	} else {
		tr.bounds.Extend(mesh.Bounds.Min)
		tr.bounds.Extend(mesh.Bounds.Max)
	}
}

// RemoveTile releases the GPU buffers of a tile. Removing a tile that was
// never added is a no-op.
func (tr *TerrainRenderer) RemoveTile(id terrain.TileID) {
	buf, ok := tr.tiles[id]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &buf.vao)
	gl.DeleteBuffers(1, &buf.vbo)
	gl.DeleteBuffers(1, &buf.ebo)
	delete(tr.tiles, id)
}

// HasTile reports whether the tile is resident on the GPU.
func (tr *TerrainRenderer) HasTile(id terrain.TileID) bool {
	_, ok := tr.tiles[id]
	return ok
}

// TileCount returns the number of resident tiles.
func (tr *TerrainRenderer) TileCount() int {
	return len(tr.tiles)
}

// TileIDs returns the resident tiles in map order.
func (tr *TerrainRenderer) TileIDs() []terrain.TileID {
	ids := make([]terrain.TileID, 0, len(tr.tiles))
	for id := range tr.tiles {
		ids = append(ids, id)
	}
	return ids
}

// Bounds returns the union of the bounds of every tile added so far. The
// second result is false until the first tile arrives.
func (tr *TerrainRenderer) Bounds() (terrain.Bounds, bool) {
	return tr.bounds, tr.hasBounds
}

// Render draws every resident tile. A debug view other than DebugOff swaps
// in the debug program, which skips texturing entirely.
func (tr *TerrainRenderer) Render(viewProj math.Mat4, lightDir math.Vec3, ambient float32, p shading.Params, view shading.DebugView) {
	if len(tr.tiles) == 0 {
		return
	}

	if view != shading.DebugOff {
		tr.renderDebug(viewProj, view)
		return
	}

	gl.UseProgram(tr.program)

	gl.UniformMatrix4fv(tr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(tr.locLightDir, lightDir.X, lightDir.Y, lightDir.Z)
	gl.Uniform1f(tr.locAmbient, ambient)
	gl.Uniform1f(tr.locUVScale, p.UVScale)
	gl.Uniform1f(tr.locSlopeThreshold, p.SlopeThreshold)
	if p.NormalMapping {
		gl.Uniform1i(tr.locNormalMapping, 1)
	} else {
		gl.Uniform1i(tr.locNormalMapping, 0)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, tr.textureArray)
	gl.Uniform1i(tr.locTextureArray, 0)

	for _, buf := range tr.tiles {
		gl.BindVertexArray(buf.vao)
		gl.DrawElements(gl.TRIANGLES, buf.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

func (tr *TerrainRenderer) renderDebug(viewProj math.Mat4, view shading.DebugView) {
	gl.UseProgram(tr.debugProgram)

	gl.UniformMatrix4fv(tr.locDebugViewProj, 1, false, &viewProj[0])
	gl.Uniform1i(tr.locDebugView, int32(view))

	for id, buf := range tr.tiles {
		c := shading.HashColor(id.X, id.Z)
		gl.Uniform3f(tr.locDebugTileColor, c.X, c.Y, c.Z)
		gl.BindVertexArray(buf.vao)
		gl.DrawElements(gl.TRIANGLES, buf.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// Clear removes every resident tile.
func (tr *TerrainRenderer) Clear() {
	for id := range tr.tiles {
		tr.RemoveTile(id)
	}
	tr.hasBounds = false
	tr.bounds = terrain.Bounds{}
}

// Destroy releases all GPU resources.
func (tr *TerrainRenderer) Destroy() {
	tr.Clear()
	if tr.program != 0 {
		gl.DeleteProgram(tr.program)
		tr.program = 0
	}
	if tr.debugProgram != 0 {
		gl.DeleteProgram(tr.debugProgram)
		tr.debugProgram = 0
	}
}
