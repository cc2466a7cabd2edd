package regl

import "maps"

// State is the fully resolved rendering state at one stack depth.
type State struct {
	Uniforms   Uniforms
	Attributes Attributes
	Indices    *IndexBuffer
	Count      Opt[int]

	Viewport   Opt[Rect]
	ClearColor Opt[[4]float32]
	ClearDepth Opt[float32]
	DepthTest  bool

	Vert      string
	Frag      string
	Primitive Primitive
}

// DefaultState is the root of every frame: nothing set, depth test on.
func DefaultState() State {
	return State{
		Uniforms:   Uniforms{},
		Attributes: Attributes{},
		DepthTest:  true,
	}
}

// Clone returns a deep copy of the maps in s. Textures and buffers are still
// shared references.
func (s State) Clone() State {
	s.Uniforms = maps.Clone(s.Uniforms)
	s.Attributes = maps.Clone(s.Attributes)
	if s.Uniforms == nil {
		s.Uniforms = Uniforms{}
	}
	if s.Attributes == nil {
		s.Attributes = Attributes{}
	}
	return s
}

// Merge returns a copy of s with every field set in cmd overriding it.
// s itself is never modified.
func (s State) Merge(cmd Command) State {
	out := s.Clone()

	if cmd.Indices != nil {
		out.Indices = cmd.Indices
	}
	if cmd.Count.IsSet() {
		out.Count = cmd.Count
	}
	for name, buf := range cmd.Attributes {
		out.Attributes[name] = buf
	}
	for name, val := range cmd.Uniforms {
		out.Uniforms[name] = val
	}
	if v, ok := cmd.DepthTest.Get(); ok {
		out.DepthTest = v
	}
	if cmd.Vert != "" {
		out.Vert = cmd.Vert
	}
	if cmd.Frag != "" {
		out.Frag = cmd.Frag
	}
	if cmd.Primitive != PrimitiveUnset {
		out.Primitive = cmd.Primitive
	}
	if col, ok := cmd.clearColor(); ok {
		out.ClearColor = Some(col)
	}
	if d, ok := cmd.clearDepth(); ok {
		out.ClearDepth = Some(d)
	}
	if r, ok := cmd.viewport(); ok {
		out.Viewport = Some(r)
	}
	return out
}
