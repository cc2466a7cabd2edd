// Package window creates the OS window and OpenGL 4.1 core context the demo
// renders into. SDL2 and GLFW backends share one interface.
package window

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backend names.
const (
	SDL  = "sdl"
	GLFW = "glfw"
)

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window is an open window with a current OpenGL context.
type Window interface {
	// Poll drains pending OS events into q.
	Poll(q *Queue)
	SwapBuffers()
	// Size returns the window size in screen coordinates.
	Size() (width, height int)
	// FramebufferSize returns the drawable size in pixels. It differs from
	// Size on high-DPI displays.
	FramebufferSize() (width, height int)
	SetTitle(title string)
	Close()
}

// New opens a window with the named backend.
func New(backend string, cfg Config, log *zap.Logger) (Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch backend {
	case SDL, "":
		return newSDL(cfg, log)
	case GLFW:
		return newGLFW(cfg, log)
	}
	return nil, fmt.Errorf("unknown window backend %q", backend)
}
