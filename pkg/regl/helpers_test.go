package regl_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/regl/pkg/regl"
	"github.com/Faultbox/regl/pkg/regl/regltest"
)

const (
	posVert = `
in vec3 aPos;
void main() { gl_Position = vec4(aPos, 1.0); }
`
	flatFrag = `
out vec4 fragColor;
void main() { fragColor = vec4(1.0); }
`
	litVert = `
in vec3 aPos;
in vec3 aNormal;
uniform mat4 uModel;
uniform mat4 uViewProj;
void main() { gl_Position = uViewProj * uModel * vec4(aPos, 1.0); }
`
	texFrag = `
uniform vec4 uColor;
uniform sampler2D uTex;
out vec4 fragColor;
void main() { fragColor = uColor * texture(uTex, vec2(0.5)); }
`
)

var screen = regl.Some(regl.Rect{X: 0, Y: 0, Width: 640, Height: 480})

func newContext(t *testing.T) (*regl.Context, *regltest.Device) {
	t.Helper()
	dev := regltest.New()
	return regl.New(dev), dev
}

func triangle(t *testing.T, ctx *regl.Context, name string) *regl.VertexBuffer {
	t.Helper()
	vb, err := ctx.CreateVertexBuffer(regl.VertexBufferConfig{
		Name:       name,
		Data:       []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Components: 3,
	})
	require.NoError(t, err)
	return vb
}

func checker(t *testing.T, ctx *regl.Context, name string) *regl.Texture2D {
	t.Helper()
	tex, err := ctx.CreateTexture(regl.TextureConfig{
		Name:   name,
		Data:   []byte{255, 255, 255, 255, 0, 0, 0, 255, 0, 0, 0, 255, 255, 255, 255, 255},
		Width:  2,
		Height: 2,
	})
	require.NoError(t, err)
	return tex
}
