package shaderwatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"cube.vert":   {Data: []byte("in vec3 aPosition;")},
		"cube.frag":   {Data: []byte("out vec4 fragColor;")},
		"README.md":   {Data: []byte("not a shader")},
		"sub/x.vert":  {Data: []byte("nested")},
		"points.frag": {Data: []byte("points")},
	}

	s, err := Load(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"cube.frag", "cube.vert", "points.frag"}, s.Names())

	v, f, err := s.Pair("cube.vert", "cube.frag")
	require.NoError(t, err)
	assert.Equal(t, "in vec3 aPosition;", v)
	assert.Equal(t, "out vec4 fragColor;", f)

	_, _, err = s.Pair("cube.vert", "missing.frag")
	assert.ErrorContains(t, err, "missing.frag")
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(fstest.MapFS{"notes.txt": {Data: []byte("x")}})
	assert.Error(t, err)
}

func TestSetVersion(t *testing.T) {
	s := NewStore()
	assert.True(t, s.Set("a.vert", "one"))
	assert.Equal(t, uint64(1), s.Version())

	assert.False(t, s.Set("a.vert", "one"))
	assert.Equal(t, uint64(1), s.Version())

	assert.True(t, s.Set("a.vert", "two"))
	assert.Equal(t, uint64(2), s.Version())
}

func TestIsShader(t *testing.T) {
	assert.True(t, IsShader("cube.vert"))
	assert.True(t, IsShader("/tmp/shaders/cube.frag"))
	assert.False(t, IsShader("cube.glsl"))
	assert.False(t, IsShader("cube.vert.swp"))
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.frag")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	s, err := Load(os.DirFS(dir))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 4)
	require.NoError(t, Watch(ctx, s, dir, nil, func(name string) { changed <- name }))

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))

	select {
	case name := <-changed:
		assert.Equal(t, "cube.frag", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
	src, err := s.Get("cube.frag")
	require.NoError(t, err)
	assert.Equal(t, "v2", src)
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), NewStore(), filepath.Join(t.TempDir(), "nope"), nil, nil)
	assert.Error(t, err)
}
