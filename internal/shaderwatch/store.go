// Package shaderwatch holds the GLSL sources the demo draws with. Sources
// come from an fs.FS (the embedded set or a directory) and can be reloaded
// from disk while the demo runs.
//
// The renderer caches programs by source text, so a reloaded shader compiles
// into a new program on its next draw without any invalidation.
package shaderwatch

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sync"
)

// Extensions of files treated as shader sources.
var Extensions = []string{".vert", ".frag"}

// Store maps shader file names such as "cube.vert" to their source. It is
// safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	sources map[string]string
	version uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{sources: make(map[string]string)}
}

// Load reads every shader file at the top level of fsys.
func Load(fsys fs.FS) (*Store, error) {
	s := NewStore()
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing shaders: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !IsShader(e.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading shader %s: %w", e.Name(), err)
		}
		s.Set(e.Name(), string(data))
	}
	if len(s.sources) == 0 {
		return nil, fmt.Errorf("no shader sources found")
	}
	return s, nil
}

// IsShader reports whether name has a shader extension.
func IsShader(name string) bool {
	return slices.Contains(Extensions, path.Ext(name))
}

// Get returns the source stored under name.
func (s *Store) Get(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.sources[name]
	if !ok {
		return "", fmt.Errorf("shader %q not found", name)
	}
	return src, nil
}

// Pair returns the vertex and fragment sources of a program.
func (s *Store) Pair(vert, frag string) (string, string, error) {
	v, err := s.Get(vert)
	if err != nil {
		return "", "", err
	}
	f, err := s.Get(frag)
	if err != nil {
		return "", "", err
	}
	return v, f, nil
}

// Set stores src under name and reports whether it changed.
func (s *Store) Set(name, src string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.sources[name]; ok && old == src {
		return false
	}
	s.sources[name] = src
	s.version++
	return true
}

// Names returns the stored names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Version increases every time a source changes.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
