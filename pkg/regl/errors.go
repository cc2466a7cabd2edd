package regl

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFrame is returned when a command is submitted outside Frame.
	ErrNoFrame = errors.New("regl: submit outside of frame")

	// ErrFrameActive is returned when Frame is called from inside a frame.
	ErrFrameActive = errors.New("regl: frame already active")

	// ErrUnbalancedStack is returned when a frame ends with scopes still pushed.
	ErrUnbalancedStack = errors.New("regl: unbalanced state stack")

	// ErrNotReady is wrapped by ResourceError when a resource has not been
	// finished or was disposed.
	ErrNotReady = errors.New("resource not ready")
)

// ConfigError reports an invalid or missing configuration value.
type ConfigError struct {
	Resource string // "vertex buffer", "texture", "command", ...
	Name     string // configured resource name, if any
	Field    string
	Value    any
	Reason   string
}

func (e *ConfigError) Error() string {
	where := e.Resource
	if e.Name != "" {
		where = fmt.Sprintf("%s %q", e.Resource, e.Name)
	}
	if e.Value == nil {
		return fmt.Sprintf("%s: %s: %s", where, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s %v: %s", where, e.Field, e.Value, e.Reason)
}

// ResourceError reports a draw referencing a resource that cannot be used.
type ResourceError struct {
	Resource string
	Name     string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %q: %v (forgot to call Finish?)", e.Resource, e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ShaderError carries the backend compiler or linker log.
type ShaderError struct {
	Stage string // "vertex", "fragment" or "link"
	Log   string
	Err   error
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, e.Log)
}

func (e *ShaderError) Unwrap() error {
	return e.Err
}

func notReady(resource, name string) error {
	return &ResourceError{Resource: resource, Name: name, Err: ErrNotReady}
}
