package regl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/regl/pkg/regl"
	"github.com/Faultbox/regl/pkg/regl/regltest"
)

func TestIndexedTriangle(t *testing.T) {
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")
	idx, err := ctx.CreateIndexBuffer(regl.IndexBufferConfig{Name: "tri", Data: []uint32{0, 1, 2}})
	require.NoError(t, err)
	dev.Reset()

	err = ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			Vert:       posVert,
			Frag:       flatFrag,
			Attributes: regl.Attributes{"aPos": pos},
			Indices:    idx,
			Count:      regl.Some(3),
		})
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Viewport",
		"CompileShader", "CompileShader", "LinkProgram",
		"ApplyPipeline", "UseProgram",
		"BindVertexBuffer",
		"DrawElements",
	}, dev.Ops())

	draw := dev.Calls("DrawElements")[0]
	assert.Equal(t, []any{regl.PrimitiveTriangles, idx.Handle(), 3}, draw.Args)

	bind := dev.Calls("BindVertexBuffer")[0]
	assert.Equal(t, []any{int32(0), pos.Handle(), 3}, bind.Args)
}

func TestArraysDrawAndProgramReuse(t *testing.T) {
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")

	cmd := regl.Command{
		Vert:       posVert,
		Frag:       flatFrag,
		Attributes: regl.Attributes{"aPos": pos},
		Count:      regl.Some(3),
	}
	for range 3 {
		err := ctx.Frame(func() error {
			return ctx.SubmitScope(regl.Command{Viewport: screen}, func() error {
				return ctx.Submit(cmd)
			})
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, dev.Compiles)
	assert.Equal(t, 1, dev.Links)
	draws := dev.Calls("DrawArrays")
	require.Len(t, draws, 3)
	assert.Equal(t, []any{regl.PrimitiveTriangles, 0, 3}, draws[0].Args)
}

func TestClearOnly(t *testing.T) {
	ctx, dev := newContext(t)

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			ClearColor: regl.Some([4]float32{0.1, 0.2, 0.3, 1}),
			ClearDepth: regl.Some(float32(1)),
		})
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Viewport", "Clear"}, dev.Ops())
	assert.Equal(t, []any{[4]float32{0.1, 0.2, 0.3, 1}, float32(1)}, dev.Calls("Clear")[0].Args)
}

func TestClearNeedsColorAndDepth(t *testing.T) {
	ctx, dev := newContext(t)

	err := ctx.Frame(func() error {
		if err := ctx.Submit(regl.Command{Viewport: screen, ClearColor: regl.Some([4]float32{0, 0, 0, 1})}); err != nil {
			return err
		}
		return ctx.Submit(regl.Command{Viewport: screen, ClearDepth: regl.Some(float32(1))})
	})
	require.NoError(t, err)
	assert.Empty(t, dev.Calls("Clear"))
}

func TestInheritedClear(t *testing.T) {
	ctx, dev := newContext(t)

	err := ctx.Frame(func() error {
		return ctx.SubmitScope(regl.Command{
			Viewport:   screen,
			ClearColor: regl.Some([4]float32{0, 0, 0, 1}),
		}, func() error {
			return ctx.Submit(regl.Command{ClearDepth: regl.Some(float32(1))})
		})
	})
	require.NoError(t, err)
	assert.Len(t, dev.Calls("Clear"), 1)
}

func TestMissingViewport(t *testing.T) {
	ctx, dev := newContext(t)

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{Count: regl.Some(3)})
	})
	var cfgErr *regl.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "viewport", cfgErr.Field)
	assert.Empty(t, dev.Calls())
}

func TestMissingShaders(t *testing.T) {
	tests := []struct {
		name  string
		cmd   regl.Command
		field string
	}{
		{"no vertex shader", regl.Command{Frag: flatFrag}, "vert"},
		{"no fragment shader", regl.Command{Vert: posVert}, "frag"},
		{"no shaders", regl.Command{}, "vert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, dev := newContext(t)
			tt.cmd.Viewport = screen
			tt.cmd.Count = regl.Some(3)

			err := ctx.Frame(func() error { return ctx.Submit(tt.cmd) })
			var cfgErr *regl.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Zero(t, dev.Compiles)
			assert.Empty(t, dev.Calls("DrawArrays", "DrawElements"))
		})
	}
}

func TestNegativeCount(t *testing.T) {
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			Vert:       posVert,
			Frag:       flatFrag,
			Attributes: regl.Attributes{"aPos": pos},
			Count:      regl.Some(-1),
		})
	})
	var cfgErr *regl.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "count", cfgErr.Field)
	assert.Empty(t, dev.Calls("DrawArrays"))
}

func TestZeroCountStillDraws(t *testing.T) {
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			Vert:       posVert,
			Frag:       flatFrag,
			Attributes: regl.Attributes{"aPos": pos},
			Count:      regl.Some(0),
		})
	})
	require.NoError(t, err)
	require.Len(t, dev.Calls("DrawArrays"), 1)
	assert.Equal(t, []any{regl.PrimitiveTriangles, 0, 0}, dev.Calls("DrawArrays")[0].Args)
}

func TestUnreadyResources(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, ctx *regl.Context) regl.Command
		resource string
		resName  string
	}{
		{
			name: "unfinished vertex buffer",
			setup: func(t *testing.T, ctx *regl.Context) regl.Command {
				vb := ctx.NewVertexBuffer(regl.VertexBufferConfig{Name: "lazy", Data: []float32{0, 0, 0}, Components: 3})
				return regl.Command{Attributes: regl.Attributes{"aPos": vb}}
			},
			resource: "vertex buffer",
			resName:  "lazy",
		},
		{
			name: "disposed vertex buffer",
			setup: func(t *testing.T, ctx *regl.Context) regl.Command {
				vb := triangle(t, ctx, "gone")
				vb.Dispose()
				return regl.Command{Attributes: regl.Attributes{"aPos": vb}}
			},
			resource: "vertex buffer",
			resName:  "gone",
		},
		{
			name: "unfinished index buffer",
			setup: func(t *testing.T, ctx *regl.Context) regl.Command {
				ib := ctx.NewIndexBuffer(regl.IndexBufferConfig{Name: "idx", Data: []uint32{0, 1, 2}})
				return regl.Command{
					Attributes: regl.Attributes{"aPos": triangle(t, ctx, "positions")},
					Indices:    ib,
				}
			},
			resource: "index buffer",
			resName:  "idx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, dev := newContext(t)
			cmd := tt.setup(t, ctx)
			cmd.Viewport = screen
			cmd.Vert = posVert
			cmd.Frag = flatFrag
			cmd.Count = regl.Some(3)

			err := ctx.Frame(func() error { return ctx.Submit(cmd) })
			require.Error(t, err)
			assert.ErrorIs(t, err, regl.ErrNotReady)

			var resErr *regl.ResourceError
			require.ErrorAs(t, err, &resErr)
			assert.Equal(t, tt.resource, resErr.Resource)
			assert.Equal(t, tt.resName, resErr.Name)
			assert.Contains(t, err.Error(), tt.resName)
			assert.Empty(t, dev.Calls("DrawArrays", "DrawElements"))
		})
	}
}

func TestMissingAttribute(t *testing.T) {
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			Vert:       litVert,
			Frag:       flatFrag,
			Attributes: regl.Attributes{"aPos": pos},
			Count:      regl.Some(3),
		})
	})
	var cfgErr *regl.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "attribute", cfgErr.Resource)
	assert.Equal(t, "aNormal", cfgErr.Name)
	assert.Empty(t, dev.Calls("DrawArrays"))
}

func TestUnusedAttributeIgnored(t *testing.T) {
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")
	extra := triangle(t, ctx, "extra")

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			Vert:       posVert,
			Frag:       flatFrag,
			Attributes: regl.Attributes{"aPos": pos, "aColor": extra},
			Count:      regl.Some(3),
		})
	})
	require.NoError(t, err)
	assert.Len(t, dev.Calls("BindVertexBuffer"), 1)
}

func TestUniformBinding(t *testing.T) {
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")
	normals := triangle(t, ctx, "normals")
	tex := checker(t, ctx, "checker")

	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	dev.Reset()

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			Vert:       litVert,
			Frag:       texFrag,
			Attributes: regl.Attributes{"aPos": pos, "aNormal": normals},
			Uniforms: regl.Uniforms{
				"uViewProj": regl.Mat4(identity),
				"uModel":    regl.Mat4(identity),
				"uColor":    regl.Vec4(1, 0.5, 0.25, 1),
				"uTex":      regl.Sampler(tex),
				"uUnused":   regl.Float(3),
			},
			Count: regl.Some(3),
		})
	})
	require.NoError(t, err)

	// Locations follow sorted declaration order in the fake device.
	assert.Equal(t, []string{
		"Uniform4f",
		"UniformMatrix4fv",
		"ActiveTexture", "BindTexture", "Uniform1i",
		"UniformMatrix4fv",
	}, opsOf(dev.Calls("Uniform1f", "Uniform4f", "UniformMatrix4fv", "ActiveTexture", "BindTexture", "Uniform1i")))

	assert.Equal(t, []any{int32(0), float32(1), float32(0.5), float32(0.25), float32(1)}, dev.Calls("Uniform4f")[0].Args)
	assert.Equal(t, []any{0}, dev.Calls("ActiveTexture")[0].Args)
	assert.Equal(t, []any{tex.Handle()}, dev.Calls("BindTexture")[0].Args)
	assert.Equal(t, []any{int32(2), int32(0)}, dev.Calls("Uniform1i")[0].Args)
	assert.Empty(t, dev.Calls("Uniform1f"))

	binds := dev.Calls("BindVertexBuffer")
	require.Len(t, binds, 2)
	assert.Equal(t, []any{int32(0), normals.Handle(), 3}, binds[0].Args)
	assert.Equal(t, []any{int32(1), pos.Handle(), 3}, binds[1].Args)
}

func TestSamplersTakeConsecutiveUnits(t *testing.T) {
	const twoTex = `
uniform sampler2D uA;
uniform sampler2D uB;
out vec4 fragColor;
void main() { fragColor = texture(uA, vec2(0.0)) + texture(uB, vec2(0.0)); }
`
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")
	a, b := checker(t, ctx, "a"), checker(t, ctx, "b")

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			Vert:       posVert,
			Frag:       twoTex,
			Attributes: regl.Attributes{"aPos": pos},
			Uniforms:   regl.Uniforms{"uB": regl.Sampler(b), "uA": regl.Sampler(a)},
			Count:      regl.Some(3),
		})
	})
	require.NoError(t, err)

	units := dev.Calls("ActiveTexture")
	require.Len(t, units, 2)
	assert.Equal(t, []any{0}, units[0].Args)
	assert.Equal(t, []any{1}, units[1].Args)

	bound := dev.Calls("BindTexture")
	assert.Equal(t, []any{a.Handle()}, bound[0].Args)
	assert.Equal(t, []any{b.Handle()}, bound[1].Args)
}

func TestUnfinishedTexture(t *testing.T) {
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")
	normals := triangle(t, ctx, "normals")
	tex := ctx.NewTexture(regl.TextureConfig{Name: "pending", Data: make([]byte, 16), Width: 2, Height: 2})

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			Vert:       litVert,
			Frag:       texFrag,
			Attributes: regl.Attributes{"aPos": pos, "aNormal": normals},
			Uniforms:   regl.Uniforms{"uTex": regl.Sampler(tex)},
			Count:      regl.Some(3),
		})
	})
	assert.ErrorIs(t, err, regl.ErrNotReady)
	assert.Contains(t, err.Error(), "pending")
	assert.Empty(t, dev.Calls("DrawArrays"))
}

func TestUnsetUniformValue(t *testing.T) {
	ctx, _ := newContext(t)
	pos := triangle(t, ctx, "positions")
	normals := triangle(t, ctx, "normals")

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			Vert:       litVert,
			Frag:       texFrag,
			Attributes: regl.Attributes{"aPos": pos, "aNormal": normals},
			Uniforms:   regl.Uniforms{"uColor": {}},
			Count:      regl.Some(3),
		})
	})
	var cfgErr *regl.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "uColor", cfgErr.Name)
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		prim    regl.Primitive
		want    regl.Primitive
		wantErr bool
	}{
		{regl.PrimitiveUnset, regl.PrimitiveTriangles, false},
		{regl.PrimitiveTriangles, regl.PrimitiveTriangles, false},
		{regl.PrimitivePoints, regl.PrimitivePoints, false},
		{regl.PrimitiveLines, regl.PrimitiveLines, false},
		{regl.PrimitiveLineStrip, regl.PrimitiveLineStrip, false},
		{regl.PrimitiveTriangleStrip, regl.PrimitiveTriangleStrip, false},
		{regl.Primitive(42), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.prim.String(), func(t *testing.T) {
			ctx, dev := newContext(t)
			pos := triangle(t, ctx, "positions")

			err := ctx.Frame(func() error {
				return ctx.Submit(regl.Command{
					Viewport:   screen,
					Vert:       posVert,
					Frag:       flatFrag,
					Attributes: regl.Attributes{"aPos": pos},
					Primitive:  tt.prim,
					Count:      regl.Some(3),
				})
			})
			if tt.wantErr {
				var cfgErr *regl.ConfigError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, "primitive", cfgErr.Field)
				assert.Zero(t, dev.Compiles)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dev.Calls("DrawArrays")[0].Args[0])
		})
	}
}

func TestPipelineDepthTest(t *testing.T) {
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")
	draw := regl.Command{
		Vert:       posVert,
		Frag:       flatFrag,
		Attributes: regl.Attributes{"aPos": pos},
		Count:      regl.Some(3),
	}

	err := ctx.Frame(func() error {
		return ctx.SubmitScope(regl.Command{Viewport: screen}, func() error {
			if err := ctx.Submit(draw); err != nil {
				return err
			}
			return ctx.SubmitScope(regl.Command{DepthTest: regl.Some(false)}, func() error {
				return ctx.Submit(draw)
			})
		})
	})
	require.NoError(t, err)

	pipes := dev.Calls("ApplyPipeline")
	require.Len(t, pipes, 2)
	on := pipes[0].Args[0].(regl.PipelineState)
	off := pipes[1].Args[0].(regl.PipelineState)

	assert.True(t, on.DepthTest)
	assert.False(t, off.DepthTest)
	for _, p := range []regl.PipelineState{on, off} {
		assert.True(t, p.DepthWrite)
		assert.Equal(t, regl.DepthLess, p.DepthFunc)
		assert.False(t, p.Blend)
		assert.Equal(t, [4]bool{true, true, true, true}, p.ColorMask)
		assert.True(t, p.CullBack)
		assert.True(t, p.FrontFaceCCW)
		assert.Zero(t, p.Framebuffer)
	}
}

func TestShaderErrorAbortsDraw(t *testing.T) {
	ctx, dev := newContext(t)
	pos := triangle(t, ctx, "positions")
	dev.LinkError = errors.New("link failed")

	err := ctx.Frame(func() error {
		return ctx.Submit(regl.Command{
			Viewport:   screen,
			Vert:       posVert,
			Frag:       flatFrag,
			Attributes: regl.Attributes{"aPos": pos},
			Count:      regl.Some(3),
		})
	})
	var shErr *regl.ShaderError
	require.ErrorAs(t, err, &shErr)
	assert.Equal(t, "link", shErr.Stage)
	assert.Empty(t, dev.Calls("UseProgram", "DrawArrays"))
}

func opsOf(calls []regltest.Call) []string {
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	return ops
}
