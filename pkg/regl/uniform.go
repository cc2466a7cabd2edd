package regl

import "fmt"

// UniformKind tags the active variant of a UniformValue.
type UniformKind uint8

const (
	UniformUnset UniformKind = iota
	UniformFloat
	UniformVec2
	UniformVec3
	UniformVec4
	UniformMat4
	UniformSampler
)

func (k UniformKind) String() string {
	switch k {
	case UniformFloat:
		return "float"
	case UniformVec2:
		return "vec2"
	case UniformVec3:
		return "vec3"
	case UniformVec4:
		return "vec4"
	case UniformMat4:
		return "mat4"
	case UniformSampler:
		return "sampler2D"
	}
	return "unset"
}

// UniformValue is the payload bound to a named uniform. The payload can only
// be written through the constructors below, so Kind always matches it. The
// zero value is unset.
type UniformValue struct {
	kind UniformKind
	vec  [4]float32
	mat  [16]float32
	tex  *Texture2D
}

// Float returns a scalar uniform.
func Float(x float32) UniformValue {
	return UniformValue{kind: UniformFloat, vec: [4]float32{x}}
}

// Vec2 returns a two component uniform.
func Vec2(x, y float32) UniformValue {
	return UniformValue{kind: UniformVec2, vec: [4]float32{x, y}}
}

// Vec3 returns a three component uniform.
func Vec3(x, y, z float32) UniformValue {
	return UniformValue{kind: UniformVec3, vec: [4]float32{x, y, z}}
}

// Vec4 returns a four component uniform.
func Vec4(x, y, z, w float32) UniformValue {
	return UniformValue{kind: UniformVec4, vec: [4]float32{x, y, z, w}}
}

// Mat4 returns a 4x4 matrix uniform. m is column-major.
func Mat4(m [16]float32) UniformValue {
	return UniformValue{kind: UniformMat4, mat: m}
}

// Sampler returns a texture uniform. The texture is referenced, not owned.
func Sampler(t *Texture2D) UniformValue {
	return UniformValue{kind: UniformSampler, tex: t}
}

// Kind returns the active variant.
func (u UniformValue) Kind() UniformKind {
	return u.kind
}

// Floats returns the vector components for scalar and vector variants.
func (u UniformValue) Floats() []float32 {
	switch u.kind {
	case UniformFloat:
		return u.vec[:1]
	case UniformVec2:
		return u.vec[:2]
	case UniformVec3:
		return u.vec[:3]
	case UniformVec4:
		return u.vec[:4]
	}
	return nil
}

// Matrix returns the matrix payload. ok is false for other variants.
func (u UniformValue) Matrix() (m [16]float32, ok bool) {
	return u.mat, u.kind == UniformMat4
}

// Texture returns the referenced texture, or nil for other variants.
func (u UniformValue) Texture() *Texture2D {
	if u.kind != UniformSampler {
		return nil
	}
	return u.tex
}

func (u UniformValue) String() string {
	switch u.kind {
	case UniformMat4:
		return fmt.Sprintf("mat4%v", u.mat)
	case UniformSampler:
		if u.tex == nil {
			return "sampler2D(nil)"
		}
		return fmt.Sprintf("sampler2D(%s)", u.tex.Name())
	case UniformUnset:
		return "unset"
	}
	return fmt.Sprintf("%s%v", u.kind, u.Floats())
}

// Uniforms maps uniform names to values.
type Uniforms map[string]UniformValue

// Attributes maps attribute names to vertex buffers.
type Attributes map[string]*VertexBuffer
