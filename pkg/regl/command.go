package regl

import "math"

// Command is a sparse patch over the ambient state. Every field has an unset
// value and only set fields override what the enclosing scope resolved.
//
// Uniforms and Attributes are merged key by key. Indices is unset when nil,
// Vert and Frag when empty, Primitive when PrimitiveUnset. A ClearColor with
// a NaN channel, a NaN ClearDepth and a Viewport with negative size are
// treated as unset.
type Command struct {
	Uniforms   Uniforms
	Attributes Attributes
	Indices    *IndexBuffer
	Count      Opt[int]

	Viewport   Opt[Rect]
	ClearColor Opt[[4]float32]
	ClearDepth Opt[float32]
	DepthTest  Opt[bool]

	Vert      string
	Frag      string
	Primitive Primitive
}

func (c *Command) clearColor() ([4]float32, bool) {
	col, ok := c.ClearColor.Get()
	if !ok {
		return col, false
	}
	for _, ch := range col {
		if math.IsNaN(float64(ch)) {
			return col, false
		}
	}
	return col, true
}

func (c *Command) clearDepth() (float32, bool) {
	d, ok := c.ClearDepth.Get()
	return d, ok && !math.IsNaN(float64(d))
}

func (c *Command) viewport() (Rect, bool) {
	r, ok := c.Viewport.Get()
	return r, ok && r.Width >= 0 && r.Height >= 0
}
