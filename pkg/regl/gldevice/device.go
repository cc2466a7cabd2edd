// Package gldevice implements regl.Device on OpenGL 4.1 core.
//
// All methods must be called on the thread that owns the GL context.
package gldevice

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/regl/pkg/regl"
)

// Preamble matches the context version this package targets.
const Preamble = "#version 410 core\n"

// Config holds device options.
type Config struct {
	// CheckErrors queries glGetError after each call and logs failures.
	// Costs a driver round trip per call; meant for debugging.
	CheckErrors bool
}

// Device drives the current OpenGL context.
type Device struct {
	cfg Config
	log *zap.Logger
	vao uint32
}

var (
	_ regl.Device      = (*Device)(nil)
	_ regl.PixelReader = (*Device)(nil)
)

// New loads GL function pointers and prepares the state the engine relies on.
// IMPORTANT: Must be called AFTER the OpenGL context is created and made current.
func New(cfg Config, log *zap.Logger) (*Device, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	d := &Device{cfg: cfg, log: log}

	// Core profile refuses attribute pointers without a bound VAO. One VAO
	// is enough since every draw respecifies its attributes.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	d.check("init")

	return d, nil
}

// Close releases the device's own objects.
func (d *Device) Close() {
	if d.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func (d *Device) check(op string) {
	if !d.cfg.CheckErrors {
		return
	}
	for e := gl.GetError(); e != gl.NO_ERROR; e = gl.GetError() {
		d.log.Error("OpenGL error", zap.String("op", op), zap.String("code", fmt.Sprintf("0x%04x", e)))
	}
}

func (d *Device) CreateVertexBuffer(data []float32, usage regl.Usage) (uint32, error) {
	return d.createBuffer(gl.ARRAY_BUFFER, ptr(data), 4*len(data), usage)
}

func (d *Device) CreateIndexBuffer(data []uint32, usage regl.Usage) (uint32, error) {
	return d.createBuffer(gl.ELEMENT_ARRAY_BUFFER, ptr(data), 4*len(data), usage)
}

func (d *Device) createBuffer(target uint32, data unsafe.Pointer, size int, usage regl.Usage) (uint32, error) {
	glUsage, err := bufferUsage(usage)
	if err != nil {
		return 0, err
	}
	var buf uint32
	gl.GenBuffers(1, &buf)
	if buf == 0 {
		return 0, fmt.Errorf("glGenBuffers returned no buffer")
	}
	gl.BindBuffer(target, buf)
	gl.BufferData(target, size, data, glUsage)
	gl.BindBuffer(target, 0)
	d.check("BufferData")
	return buf, nil
}

func (d *Device) DeleteBuffer(handle uint32) {
	gl.DeleteBuffers(1, &handle)
}

func (d *Device) CreateTexture(spec regl.TextureSpec) (uint32, error) {
	if spec.Format != regl.FormatRGBA8 {
		return 0, fmt.Errorf("unsupported pixel format %s", spec.Format)
	}
	minF, err := textureFilter(spec.Min)
	if err != nil {
		return 0, err
	}
	magF, err := textureFilter(spec.Mag)
	if err != nil {
		return 0, err
	}
	wrapS, err := textureWrap(spec.WrapS)
	if err != nil {
		return 0, err
	}
	wrapT, err := textureWrap(spec.WrapT)
	if err != nil {
		return 0, err
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, fmt.Errorf("glGenTextures returned no texture")
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(spec.Width), int32(spec.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, ptr(spec.Pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minF)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magF)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapS)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapT)
	if spec.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	d.check("TexImage2D")
	return tex, nil
}

func (d *Device) DeleteTexture(handle uint32) {
	gl.DeleteTextures(1, &handle)
}

func (d *Device) Viewport(r regl.Rect) {
	gl.Viewport(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height))
}

func (d *Device) Clear(color [4]float32, depth float32) {
	gl.ClearDepth(float64(depth))
	gl.ClearColor(color[0], color[1], color[2], color[3])
	// Depth writes must be on for the depth clear to take effect.
	gl.DepthMask(true)
	gl.ColorMask(true, true, true, true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	d.check("Clear")
}

func (d *Device) ApplyPipeline(p regl.PipelineState) {
	enable(gl.DEPTH_TEST, p.DepthTest)
	gl.DepthMask(p.DepthWrite)
	gl.DepthFunc(depthFunc(p.DepthFunc))
	enable(gl.BLEND, p.Blend)
	gl.ColorMask(p.ColorMask[0], p.ColorMask[1], p.ColorMask[2], p.ColorMask[3])
	enable(gl.CULL_FACE, p.CullBack)
	gl.CullFace(gl.BACK)
	if p.FrontFaceCCW {
		gl.FrontFace(gl.CCW)
	} else {
		gl.FrontFace(gl.CW)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, p.Framebuffer)
	d.check("ApplyPipeline")
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) Uniform1f(loc int32, x float32)          { gl.Uniform1f(loc, x) }
func (d *Device) Uniform2f(loc int32, x, y float32)       { gl.Uniform2f(loc, x, y) }
func (d *Device) Uniform3f(loc int32, x, y, z float32)    { gl.Uniform3f(loc, x, y, z) }
func (d *Device) Uniform4f(loc int32, x, y, z, w float32) { gl.Uniform4f(loc, x, y, z, w) }
func (d *Device) Uniform1i(loc int32, v int32)            { gl.Uniform1i(loc, v) }

func (d *Device) UniformMatrix4fv(loc int32, m [16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *Device) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (d *Device) BindTexture(handle uint32) {
	gl.BindTexture(gl.TEXTURE_2D, handle)
}

func (d *Device) BindVertexBuffer(loc int32, handle uint32, components int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, handle)
	gl.VertexAttribPointer(uint32(loc), int32(components), gl.FLOAT, false, int32(4*components), nil)
	gl.EnableVertexAttribArray(uint32(loc))
	d.check("VertexAttribPointer")
}

func (d *Device) DrawArrays(mode regl.Primitive, first, count int) {
	gl.DrawArrays(drawMode(mode), int32(first), int32(count))
	d.check("DrawArrays")
}

func (d *Device) DrawElements(mode regl.Primitive, indices uint32, count int) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, indices)
	gl.DrawElements(drawMode(mode), int32(count), gl.UNSIGNED_INT, nil)
	d.check("DrawElements")
}

// ReadPixels reads the default framebuffer as RGBA8, bottom row first.
func (d *Device) ReadPixels(r regl.Rect) ([]byte, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("read pixels: empty rectangle %dx%d", r.Width, r.Height)
	}
	pixels := make([]byte, r.Width*r.Height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if e := gl.GetError(); e != gl.NO_ERROR {
		return nil, fmt.Errorf("glReadPixels: 0x%04x", e)
	}
	return pixels, nil
}

func enable(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// ptr returns a pointer to the first element, or nil for empty slices.
func ptr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}
