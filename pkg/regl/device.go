package regl

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint8

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	if s == FragmentStage {
		return "fragment"
	}
	return "vertex"
}

// DepthFunc is the depth comparison function.
type DepthFunc uint8

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
	DepthAlways
)

// Rect is a viewport rectangle in framebuffer pixels.
type Rect struct {
	X, Y, Width, Height int
}

// PipelineState is the fixed-function state applied before each draw.
type PipelineState struct {
	DepthTest    bool
	DepthWrite   bool
	DepthFunc    DepthFunc
	Blend        bool
	ColorMask    [4]bool
	CullBack     bool
	FrontFaceCCW bool
	Framebuffer  uint32
}

// baselinePipeline returns the state every draw starts from. Only the depth
// test is controlled by commands.
func baselinePipeline(depthTest bool) PipelineState {
	return PipelineState{
		DepthTest:    depthTest,
		DepthWrite:   true,
		DepthFunc:    DepthLess,
		Blend:        false,
		ColorMask:    [4]bool{true, true, true, true},
		CullBack:     true,
		FrontFaceCCW: true,
		Framebuffer:  0,
	}
}

// TextureSpec is a validated texture upload request.
type TextureSpec struct {
	Width, Height int
	Format        PixelFormat
	Pixels        []byte
	Min, Mag      Filter
	WrapS, WrapT  Wrap
	Mipmaps       bool
}

// Device is the capability set the engine needs from a graphics backend.
// Handles are backend object names; zero is never a valid handle. Locations
// are the values reported by reflection.
type Device interface {
	CreateVertexBuffer(data []float32, usage Usage) (uint32, error)
	CreateIndexBuffer(data []uint32, usage Usage) (uint32, error)
	DeleteBuffer(handle uint32)
	CreateTexture(spec TextureSpec) (uint32, error)
	DeleteTexture(handle uint32)

	// CompileShader returns an error carrying the compiler log on failure.
	CompileShader(stage ShaderStage, source string) (uint32, error)
	// LinkProgram links and releases both shader objects. The error carries
	// the linker log on failure.
	LinkProgram(vs, fs uint32) (uint32, error)
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
	ActiveAttributes(program uint32) map[string]int32
	ActiveUniforms(program uint32) map[string]int32

	Viewport(r Rect)
	Clear(color [4]float32, depth float32)
	ApplyPipeline(p PipelineState)
	UseProgram(program uint32)

	Uniform1f(loc int32, x float32)
	Uniform2f(loc int32, x, y float32)
	Uniform3f(loc int32, x, y, z float32)
	Uniform4f(loc int32, x, y, z, w float32)
	Uniform1i(loc int32, v int32)
	UniformMatrix4fv(loc int32, m [16]float32)
	ActiveTexture(unit int)
	BindTexture(handle uint32)

	BindVertexBuffer(loc int32, handle uint32, components int)
	DrawArrays(mode Primitive, first, count int)
	DrawElements(mode Primitive, indices uint32, count int)
}

// PixelReader is implemented by devices that can read back the default
// framebuffer as tightly packed RGBA8, bottom row first.
type PixelReader interface {
	ReadPixels(r Rect) ([]byte, error)
}
