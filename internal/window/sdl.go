package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

var sdlKeys = map[sdl.Scancode]Key{
	sdl.SCANCODE_ESCAPE: KeyEscape,
	sdl.SCANCODE_SPACE:  KeySpace,
	sdl.SCANCODE_F12:    KeyF12,
	sdl.SCANCODE_1:      Key1,
	sdl.SCANCODE_2:      Key2,
	sdl.SCANCODE_R:      KeyR,
	sdl.SCANCODE_LEFT:   KeyLeft,
	sdl.SCANCODE_RIGHT:  KeyRight,
	sdl.SCANCODE_UP:     KeyUp,
	sdl.SCANCODE_DOWN:   KeyDown,
}

type sdlWindow struct {
	log       *zap.Logger
	win       *sdl.Window
	glContext sdl.GLContext
}

func newSDL(cfg Config, log *zap.Logger) (*sdlWindow, error) {
	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 core is the newest profile macOS provides.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	win, err := sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	glContext, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	w := &sdlWindow{log: log, win: win, glContext: glContext}
	fbw, fbh := w.FramebufferSize()
	log.Info("window created",
		zap.String("backend", SDL),
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

func (w *sdlWindow) Poll(q *Queue) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			q.Push(Event{Type: EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				fbw, fbh := w.FramebufferSize()
				q.Push(Event{Type: EventResize, Width: fbw, Height: fbh})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			typ := EventKeyDown
			if e.Type == sdl.KEYUP {
				typ = EventKeyUp
			}
			q.Push(Event{Type: typ, Key: sdlKeys[e.Keysym.Scancode]})

		case *sdl.MouseMotionEvent:
			q.Push(Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)})

		case *sdl.MouseButtonEvent:
			typ := EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				typ = EventMouseUp
			}
			q.Push(Event{Type: typ, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button})

		case *sdl.MouseWheelEvent:
			q.Push(Event{Type: EventScroll, Scroll: float32(e.Y)})
		}
	}
}

func (w *sdlWindow) SwapBuffers() {
	w.win.GLSwap()
}

func (w *sdlWindow) Size() (int, int) {
	width, height := w.win.GetSize()
	return int(width), int(height)
}

func (w *sdlWindow) FramebufferSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

func (w *sdlWindow) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *sdlWindow) Close() {
	w.log.Info("closing window")
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.win != nil {
		w.win.Destroy()
	}
	sdl.Quit()
}
