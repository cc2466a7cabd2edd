// Package regltest provides a recording regl.Device for tests.
//
// The device keeps no GPU state. It assigns handles, records every call in
// order and reflects programs by scanning shader source for attribute and
// uniform declarations.
package regltest

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Faultbox/regl/pkg/regl"
)

// Call is one recorded device call.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// Device is an in-memory regl.Device.
type Device struct {
	// CompileError, when it returns a non-nil error for a stage and source,
	// makes CompileShader fail with it.
	CompileError func(stage regl.ShaderStage, source string) error
	// LinkError makes every LinkProgram call fail when set.
	LinkError error

	Compiles int
	Links    int

	calls    []Call
	next     uint32
	buffers  map[uint32][]byte
	textures map[uint32]regl.TextureSpec
	shaders  map[uint32]shaderObj
	programs map[uint32]program
	pixels   []byte
}

type shaderObj struct {
	stage  regl.ShaderStage
	source string
}

type program struct {
	attributes map[string]int32
	uniforms   map[string]int32
}

var _ regl.Device = (*Device)(nil)
var _ regl.PixelReader = (*Device)(nil)

// New returns an empty device.
func New() *Device {
	return &Device{
		buffers:  make(map[uint32][]byte),
		textures: make(map[uint32]regl.TextureSpec),
		shaders:  make(map[uint32]shaderObj),
		programs: make(map[uint32]program),
	}
}

func (d *Device) record(op string, args ...any) {
	d.calls = append(d.calls, Call{Op: op, Args: args})
}

func (d *Device) alloc() uint32 {
	d.next++
	return d.next
}

// Calls returns the recorded calls, filtered to the given ops when any are
// passed.
func (d *Device) Calls(ops ...string) []Call {
	if len(ops) == 0 {
		return slices.Clone(d.calls)
	}
	var out []Call
	for _, c := range d.calls {
		if slices.Contains(ops, c.Op) {
			out = append(out, c)
		}
	}
	return out
}

// Ops returns the recorded op names in order.
func (d *Device) Ops() []string {
	ops := make([]string, len(d.calls))
	for i, c := range d.calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset forgets recorded calls. Objects and counters are kept.
func (d *Device) Reset() {
	d.calls = d.calls[:0]
}

// LiveBuffers returns the number of buffers not yet deleted.
func (d *Device) LiveBuffers() int { return len(d.buffers) }

// LiveTextures returns the number of textures not yet deleted.
func (d *Device) LiveTextures() int { return len(d.textures) }

// LivePrograms returns the number of programs not yet deleted.
func (d *Device) LivePrograms() int { return len(d.programs) }

// Texture returns the upload spec of a live texture.
func (d *Device) Texture(handle uint32) (regl.TextureSpec, bool) {
	spec, ok := d.textures[handle]
	return spec, ok
}

// SetPixels sets what ReadPixels returns.
func (d *Device) SetPixels(p []byte) { d.pixels = p }

func (d *Device) CreateVertexBuffer(data []float32, usage regl.Usage) (uint32, error) {
	h := d.alloc()
	d.buffers[h] = make([]byte, 4*len(data))
	d.record("CreateVertexBuffer", h, len(data), usage)
	return h, nil
}

func (d *Device) CreateIndexBuffer(data []uint32, usage regl.Usage) (uint32, error) {
	h := d.alloc()
	d.buffers[h] = make([]byte, 4*len(data))
	d.record("CreateIndexBuffer", h, len(data), usage)
	return h, nil
}

func (d *Device) DeleteBuffer(handle uint32) {
	delete(d.buffers, handle)
	d.record("DeleteBuffer", handle)
}

func (d *Device) CreateTexture(spec regl.TextureSpec) (uint32, error) {
	h := d.alloc()
	d.textures[h] = spec
	d.record("CreateTexture", h, spec.Width, spec.Height, spec.Mipmaps)
	return h, nil
}

func (d *Device) DeleteTexture(handle uint32) {
	delete(d.textures, handle)
	d.record("DeleteTexture", handle)
}

func (d *Device) CompileShader(stage regl.ShaderStage, source string) (uint32, error) {
	d.Compiles++
	if d.CompileError != nil {
		if err := d.CompileError(stage, source); err != nil {
			return 0, err
		}
	}
	h := d.alloc()
	d.shaders[h] = shaderObj{stage: stage, source: source}
	d.record("CompileShader", h, stage)
	return h, nil
}

func (d *Device) LinkProgram(vs, fs uint32) (uint32, error) {
	d.Links++
	v, okv := d.shaders[vs]
	f, okf := d.shaders[fs]
	delete(d.shaders, vs)
	delete(d.shaders, fs)
	if d.LinkError != nil {
		return 0, d.LinkError
	}
	if !okv || !okf {
		return 0, errors.New("link: unknown shader object")
	}
	h := d.alloc()
	d.programs[h] = program{
		attributes: locations(declared(v.source, "attribute", "in")),
		uniforms:   locations(append(declared(v.source, "uniform"), declared(f.source, "uniform")...)),
	}
	d.record("LinkProgram", h)
	return h, nil
}

func (d *Device) DeleteShader(shader uint32) {
	delete(d.shaders, shader)
	d.record("DeleteShader", shader)
}

func (d *Device) DeleteProgram(p uint32) {
	delete(d.programs, p)
	d.record("DeleteProgram", p)
}

func (d *Device) ActiveAttributes(p uint32) map[string]int32 {
	return clone(d.programs[p].attributes)
}

func (d *Device) ActiveUniforms(p uint32) map[string]int32 {
	return clone(d.programs[p].uniforms)
}

func (d *Device) Viewport(r regl.Rect) { d.record("Viewport", r) }

func (d *Device) Clear(color [4]float32, depth float32) { d.record("Clear", color, depth) }

func (d *Device) ApplyPipeline(p regl.PipelineState) { d.record("ApplyPipeline", p) }

func (d *Device) UseProgram(p uint32) { d.record("UseProgram", p) }

func (d *Device) Uniform1f(loc int32, x float32) { d.record("Uniform1f", loc, x) }

func (d *Device) Uniform2f(loc int32, x, y float32) { d.record("Uniform2f", loc, x, y) }

func (d *Device) Uniform3f(loc int32, x, y, z float32) { d.record("Uniform3f", loc, x, y, z) }

func (d *Device) Uniform4f(loc int32, x, y, z, w float32) {
	d.record("Uniform4f", loc, x, y, z, w)
}

func (d *Device) Uniform1i(loc int32, v int32) { d.record("Uniform1i", loc, v) }

func (d *Device) UniformMatrix4fv(loc int32, m [16]float32) { d.record("UniformMatrix4fv", loc, m) }

func (d *Device) ActiveTexture(unit int) { d.record("ActiveTexture", unit) }

func (d *Device) BindTexture(handle uint32) { d.record("BindTexture", handle) }

func (d *Device) BindVertexBuffer(loc int32, handle uint32, components int) {
	d.record("BindVertexBuffer", loc, handle, components)
}

func (d *Device) DrawArrays(mode regl.Primitive, first, count int) {
	d.record("DrawArrays", mode, first, count)
}

func (d *Device) DrawElements(mode regl.Primitive, indices uint32, count int) {
	d.record("DrawElements", mode, indices, count)
}

func (d *Device) ReadPixels(r regl.Rect) ([]byte, error) {
	if len(d.pixels) != r.Width*r.Height*4 {
		return nil, fmt.Errorf("read pixels: have %d bytes, want %d", len(d.pixels), r.Width*r.Height*4)
	}
	d.record("ReadPixels", r)
	return slices.Clone(d.pixels), nil
}

// declared returns the names declared with any of the given qualifiers, e.g.
// "uniform mat4 uModel;" or "in vec3 aPos;".
func declared(source string, qualifiers ...string) []string {
	var names []string
	for _, line := range strings.Split(source, "\n") {
		fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		if len(fields) < 3 || !slices.Contains(qualifiers, fields[0]) {
			continue
		}
		name := fields[len(fields)-1]
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		names = append(names, name)
	}
	return names
}

func locations(names []string) map[string]int32 {
	slices.Sort(names)
	names = slices.Compact(names)
	locs := make(map[string]int32, len(names))
	for i, n := range names {
		locs[n] = int32(i)
	}
	return locs
}

func clone(m map[string]int32) map[string]int32 {
	out := make(map[string]int32, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
