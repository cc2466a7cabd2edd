package regl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/Faultbox/regl/pkg/regl"
)

func TestVertexBufferValidation(t *testing.T) {
	tests := []struct {
		name   string
		cfg    regl.VertexBufferConfig
		fields []string
	}{
		{
			name:   "missing data",
			cfg:    regl.VertexBufferConfig{Components: 3},
			fields: []string{"data"},
		},
		{
			name:   "components out of range",
			cfg:    regl.VertexBufferConfig{Data: []float32{1}, Components: 5},
			fields: []string{"components"},
		},
		{
			name:   "everything wrong",
			cfg:    regl.VertexBufferConfig{Components: 0, Length: -1, Usage: regl.Usage(9)},
			fields: []string{"usage", "components", "length", "data"},
		},
		{
			name:   "data shorter than length",
			cfg:    regl.VertexBufferConfig{Data: []float32{0, 0, 0}, Length: 2, Components: 3},
			fields: []string{"data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, dev := newContext(t)
			_, err := ctx.CreateVertexBuffer(tt.cfg)
			require.Error(t, err)
			assert.Equal(t, tt.fields, configFields(t, err))
			assert.Zero(t, dev.LiveBuffers())
		})
	}
}

func TestIndexBufferValidation(t *testing.T) {
	ctx, _ := newContext(t)

	_, err := ctx.CreateIndexBuffer(regl.IndexBufferConfig{Name: "bad", Length: -1, Usage: regl.Usage(7)})
	require.Error(t, err)
	assert.Equal(t, []string{"usage", "length", "data"}, configFields(t, err))
	assert.Contains(t, err.Error(), `index buffer "bad"`)

	_, err = ctx.CreateIndexBuffer(regl.IndexBufferConfig{Data: []uint32{0, 1}, Length: 3})
	assert.Equal(t, []string{"data"}, configFields(t, err))
}

func TestVertexBufferLifecycle(t *testing.T) {
	ctx, dev := newContext(t)

	vb := ctx.NewVertexBuffer(regl.VertexBufferConfig{
		Data:       []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Components: 2,
		Usage:      regl.UsageDynamic,
	})
	assert.False(t, vb.Ready())
	assert.Equal(t, "unnamed", vb.Name())
	assert.Zero(t, vb.Handle())

	require.NoError(t, vb.Finish())
	assert.True(t, vb.Ready())
	assert.Equal(t, 4, vb.Len())
	assert.Equal(t, 2, vb.Components())
	assert.Equal(t, 1, dev.LiveBuffers())

	create := dev.Calls("CreateVertexBuffer")[0]
	assert.Equal(t, []any{vb.Handle(), 8, regl.UsageDynamic}, create.Args)

	// Finishing again replaces the backend object.
	old := vb.Handle()
	require.NoError(t, vb.Finish())
	assert.NotEqual(t, old, vb.Handle())
	assert.Equal(t, 1, dev.LiveBuffers())

	vb.Dispose()
	assert.False(t, vb.Ready())
	assert.Zero(t, dev.LiveBuffers())
	vb.Dispose()
	assert.Len(t, dev.Calls("DeleteBuffer"), 2)
}

func TestVertexBufferUploadsLengthPrefix(t *testing.T) {
	ctx, dev := newContext(t)

	vb, err := ctx.CreateVertexBuffer(regl.VertexBufferConfig{
		Name:       "prefix",
		Data:       []float32{0, 0, 0, 1, 1, 1, 2, 2, 2},
		Length:     2,
		Components: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, vb.Len())
	assert.Equal(t, 6, dev.Calls("CreateVertexBuffer")[0].Args[1])
}

func TestIndexBufferLifecycle(t *testing.T) {
	ctx, dev := newContext(t)

	ib, err := ctx.CreateIndexBuffer(regl.IndexBufferConfig{Name: "quad", Data: []uint32{0, 1, 2, 2, 3, 0}})
	require.NoError(t, err)
	assert.True(t, ib.Ready())
	assert.Equal(t, "quad", ib.Name())
	assert.Equal(t, 6, ib.Len())
	assert.Equal(t, 1, dev.LiveBuffers())

	ib.Dispose()
	assert.False(t, ib.Ready())
	assert.Zero(t, ib.Handle())
	assert.Zero(t, dev.LiveBuffers())
}

func configFields(t *testing.T, err error) []string {
	t.Helper()
	var fields []string
	for _, e := range multierr.Errors(err) {
		cfgErr, ok := e.(*regl.ConfigError)
		require.True(t, ok, "unexpected error %T: %v", e, e)
		fields = append(fields, cfgErr.Field)
	}
	return fields
}
