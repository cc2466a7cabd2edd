// Package shaders embeds the GLSL sources of the demo scenes. Sources carry
// no #version line; the renderer prepends one.
package shaders

import "embed"

// FS holds cube.vert, cube.frag, points.vert and points.frag.
//
//go:embed *.vert *.frag
var FS embed.FS
