package gldevice

import (
	"errors"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/regl/pkg/regl"
)

// maxNameLen bounds reflected attribute and uniform names.
const maxNameLen = 256

// CompileShader compiles one stage. The returned error is the compiler log.
func (d *Device) CompileShader(stage regl.ShaderStage, source string) (uint32, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == regl.FragmentStage {
		kind = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, errors.New(log)
	}
	return shader, nil
}

// LinkProgram links both stages and deletes the shader objects.
func (d *Device) LinkProgram(vs, fs uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, errors.New(log)
	}
	return program, nil
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

// ActiveAttributes reflects the program's active vertex inputs.
func (d *Device) ActiveAttributes(program uint32) map[string]int32 {
	return reflect(program, gl.ACTIVE_ATTRIBUTES,
		func(i uint32, length, size *int32, xtype *uint32, name *uint8) {
			gl.GetActiveAttrib(program, i, maxNameLen, length, size, xtype, name)
		},
		func(name *uint8) int32 { return gl.GetAttribLocation(program, name) },
	)
}

// ActiveUniforms reflects the program's active uniforms. Array uniforms are
// reported without their "[0]" suffix.
func (d *Device) ActiveUniforms(program uint32) map[string]int32 {
	return reflect(program, gl.ACTIVE_UNIFORMS,
		func(i uint32, length, size *int32, xtype *uint32, name *uint8) {
			gl.GetActiveUniform(program, i, maxNameLen, length, size, xtype, name)
		},
		func(name *uint8) int32 { return gl.GetUniformLocation(program, name) },
	)
}

func reflect(
	program uint32,
	pname uint32,
	active func(i uint32, length, size *int32, xtype *uint32, name *uint8),
	location func(name *uint8) int32,
) map[string]int32 {
	var count int32
	gl.GetProgramiv(program, pname, &count)

	out := make(map[string]int32, count)
	buf := make([]uint8, maxNameLen)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		active(i, &length, &size, &xtype, &buf[0])

		name := string(buf[:length])
		loc := location(gl.Str(name + "\x00"))
		if loc < 0 {
			// Built-ins such as gl_VertexID are active but have no location.
			continue
		}
		out[strings.TrimSuffix(name, "[0]")] = loc
	}
	return out
}

func infoLog(n int32, get func(buf *uint8)) string {
	if n <= 0 {
		return "no info log"
	}
	buf := make([]uint8, n)
	get(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}
