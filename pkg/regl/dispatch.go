package regl

import (
	"slices"

	"go.uber.org/zap"
)

// dispatch validates a resolved state and issues it to the device.
func (c *Context) dispatch(s State) error {
	vp, ok := s.Viewport.Get()
	if !ok {
		return &ConfigError{Resource: "command", Field: "viewport", Reason: "you need to specify a viewport for your command"}
	}
	c.dev.Viewport(vp)

	col, hasColor := s.ClearColor.Get()
	depth, hasDepth := s.ClearDepth.Get()
	if hasColor && hasDepth {
		c.dev.Clear(col, depth)
	}

	count, ok := s.Count.Get()
	if !ok {
		return nil
	}
	if count < 0 {
		return &ConfigError{Resource: "command", Field: "count", Value: count, Reason: "must not be negative"}
	}
	if s.Vert == "" {
		return &ConfigError{Resource: "command", Field: "vert", Reason: "please specify a vertex shader"}
	}
	if s.Frag == "" {
		return &ConfigError{Resource: "command", Field: "frag", Reason: "please specify a fragment shader"}
	}
	mode, err := resolvePrimitive(s.Primitive)
	if err != nil {
		return err
	}

	p, err := c.Program(s.Vert, s.Frag)
	if err != nil {
		return err
	}

	c.dev.ApplyPipeline(baselinePipeline(s.DepthTest))
	c.dev.UseProgram(p.Program)

	if err := c.bindUniforms(p, s.Uniforms); err != nil {
		return err
	}
	if err := c.bindAttributes(p, s.Attributes); err != nil {
		return err
	}

	if s.Indices != nil {
		if !s.Indices.Ready() {
			return notReady("index buffer", s.Indices.Name())
		}
		c.dev.DrawElements(mode, s.Indices.Handle(), count)
	} else {
		c.dev.DrawArrays(mode, 0, count)
	}

	if ce := c.log.Check(zap.DebugLevel, "draw"); ce != nil {
		ce.Write(
			zap.Uint32("program", p.Program),
			zap.Stringer("primitive", mode),
			zap.Int("count", count),
			zap.Bool("indexed", s.Indices != nil),
		)
	}
	return nil
}

// bindUniforms uploads every state uniform the program declares. Names the
// program does not use are skipped. Samplers take texture units in name
// order.
func (c *Context) bindUniforms(p *ProgramInfo, uniforms Uniforms) error {
	names := make([]string, 0, len(uniforms))
	for name := range uniforms {
		names = append(names, name)
	}
	slices.Sort(names)

	unit := 0
	for _, name := range names {
		loc, ok := p.Uniforms[name]
		if !ok {
			continue
		}
		u := uniforms[name]
		switch u.Kind() {
		case UniformFloat:
			c.dev.Uniform1f(loc, u.vec[0])
		case UniformVec2:
			c.dev.Uniform2f(loc, u.vec[0], u.vec[1])
		case UniformVec3:
			c.dev.Uniform3f(loc, u.vec[0], u.vec[1], u.vec[2])
		case UniformVec4:
			c.dev.Uniform4f(loc, u.vec[0], u.vec[1], u.vec[2], u.vec[3])
		case UniformMat4:
			c.dev.UniformMatrix4fv(loc, u.mat)
		case UniformSampler:
			tex := u.Texture()
			if tex == nil {
				return &ConfigError{Resource: "uniform", Name: name, Field: "texture", Reason: "sampler references no texture"}
			}
			if !tex.Ready() {
				return notReady("texture", tex.Name())
			}
			c.dev.ActiveTexture(unit)
			c.dev.BindTexture(tex.Handle())
			c.dev.Uniform1i(loc, int32(unit))
			unit++
		default:
			return &ConfigError{Resource: "uniform", Name: name, Field: "value", Reason: "uniform value is unset"}
		}
	}
	return nil
}

// bindAttributes binds a buffer for every attribute the program declares.
func (c *Context) bindAttributes(p *ProgramInfo, attrs Attributes) error {
	names := make([]string, 0, len(p.Attributes))
	for name := range p.Attributes {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		buf := attrs[name]
		if buf == nil {
			return &ConfigError{Resource: "attribute", Name: name, Field: "buffer", Reason: "program declares an attribute no command provided"}
		}
		if !buf.Ready() {
			return notReady("vertex buffer", buf.Name())
		}
		c.dev.BindVertexBuffer(p.Attributes[name], buf.Handle(), buf.Components())
	}
	return nil
}

func resolvePrimitive(p Primitive) (Primitive, error) {
	switch p {
	case PrimitiveUnset:
		return PrimitiveTriangles, nil
	case PrimitiveTriangles, PrimitivePoints, PrimitiveLines, PrimitiveLineStrip, PrimitiveTriangleStrip:
		return p, nil
	}
	return 0, &ConfigError{Resource: "command", Field: "primitive", Value: p, Reason: "unsupported primitive type"}
}
