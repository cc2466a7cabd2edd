package regl

import "go.uber.org/zap"

// ProgramInfo is a linked program and its reflected bindings.
type ProgramInfo struct {
	Program    uint32
	Vert       string
	Frag       string
	Attributes map[string]int32
	Uniforms   map[string]int32
}

type programKey struct {
	vert, frag string
}

// Program returns the cached program for the source pair, compiling,
// linking and reflecting it on first use. Entries are never evicted.
func (c *Context) Program(vert, frag string) (*ProgramInfo, error) {
	key := programKey{vert, frag}
	if p, ok := c.programs[key]; ok {
		return p, nil
	}

	vs, err := c.dev.CompileShader(VertexStage, c.preamble+vert)
	if err != nil {
		return nil, &ShaderError{Stage: VertexStage.String(), Log: err.Error(), Err: err}
	}
	fs, err := c.dev.CompileShader(FragmentStage, c.preamble+frag)
	if err != nil {
		c.dev.DeleteShader(vs)
		return nil, &ShaderError{Stage: FragmentStage.String(), Log: err.Error(), Err: err}
	}
	prog, err := c.dev.LinkProgram(vs, fs)
	if err != nil {
		return nil, &ShaderError{Stage: "link", Log: err.Error(), Err: err}
	}

	p := &ProgramInfo{
		Program:    prog,
		Vert:       vert,
		Frag:       frag,
		Attributes: c.dev.ActiveAttributes(prog),
		Uniforms:   c.dev.ActiveUniforms(prog),
	}
	c.programs[key] = p

	c.log.Debug("program linked",
		zap.Uint32("program", prog),
		zap.Int("attributes", len(p.Attributes)),
		zap.Int("uniforms", len(p.Uniforms)),
		zap.Int("cached", len(c.programs)),
	)
	return p, nil
}

// Programs returns the number of cached programs.
func (c *Context) Programs() int {
	return len(c.programs)
}
