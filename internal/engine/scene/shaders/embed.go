// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader shared by the surface and debug
// passes.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the triplanar surface shader.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// DebugFragmentShader visualizes normals or tile ownership instead of the
// textured surface.
//
//go:embed debug.frag
var DebugFragmentShader string
