package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var glfwKeys = map[glfw.Key]Key{
	glfw.KeyEscape: KeyEscape,
	glfw.KeySpace:  KeySpace,
	glfw.KeyF12:    KeyF12,
	glfw.Key1:      Key1,
	glfw.Key2:      Key2,
	glfw.KeyR:      KeyR,
	glfw.KeyLeft:   KeyLeft,
	glfw.KeyRight:  KeyRight,
	glfw.KeyUp:     KeyUp,
	glfw.KeyDown:   KeyDown,
}

var glfwButtons = map[glfw.MouseButton]uint8{
	glfw.MouseButtonLeft:   ButtonLeft,
	glfw.MouseButtonMiddle: ButtonMiddle,
	glfw.MouseButtonRight:  ButtonRight,
}

// glfwWindow buffers callback events until the next Poll.
type glfwWindow struct {
	log     *zap.Logger
	win     *glfw.Window
	pending []Event
}

func newGLFW(cfg Config, log *zap.Logger) (*glfwWindow, error) {
	log.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window failed: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{log: log, win: win}
	w.installCallbacks()

	fbw, fbh := w.FramebufferSize()
	log.Info("window created",
		zap.String("backend", GLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("fb_width", fbw),
		zap.Int("fb_height", fbh),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *glfwWindow) installCallbacks() {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pending = append(w.pending, Event{Type: EventResize, Width: width, Height: height})
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			w.pending = append(w.pending, Event{Type: EventKeyDown, Key: glfwKeys[key]})
		case glfw.Release:
			w.pending = append(w.pending, Event{Type: EventKeyUp, Key: glfwKeys[key]})
		}
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.pending = append(w.pending, Event{Type: EventMouseMove, MouseX: int(x), MouseY: int(y)})
	})
	w.win.SetMouseButtonCallback(func(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := gw.GetCursorPos()
		typ := EventMouseDown
		if action == glfw.Release {
			typ = EventMouseUp
		}
		w.pending = append(w.pending, Event{Type: typ, MouseX: int(x), MouseY: int(y), Button: glfwButtons[button]})
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.pending = append(w.pending, Event{Type: EventScroll, Scroll: float32(yoff)})
	})
}

func (w *glfwWindow) Poll(q *Queue) {
	glfw.PollEvents()
	for _, e := range w.pending {
		q.Push(e)
	}
	w.pending = w.pending[:0]
	if w.win.ShouldClose() {
		q.Push(Event{Type: EventQuit})
	}
}

func (w *glfwWindow) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *glfwWindow) Size() (int, int) {
	return w.win.GetSize()
}

func (w *glfwWindow) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *glfwWindow) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *glfwWindow) Close() {
	w.log.Info("closing window")
	w.win.Destroy()
	glfw.Terminate()
}
