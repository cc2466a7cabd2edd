// Package demo runs the sample scenes: a window, an OpenGL device and a regl
// context driven by a fixed loop of poll, draw, present.
package demo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/regl/internal/camera"
	"github.com/Faultbox/regl/internal/capture"
	"github.com/Faultbox/regl/internal/config"
	"github.com/Faultbox/regl/internal/demo/shaders"
	"github.com/Faultbox/regl/internal/logger"
	"github.com/Faultbox/regl/internal/shaderwatch"
	"github.com/Faultbox/regl/internal/window"
	"github.com/Faultbox/regl/pkg/regl"
	"github.com/Faultbox/regl/pkg/regl/gldevice"
)

const (
	cameraDistance = 6
	keyRotateStep  = 0.05
)

// App is a running demo.
type App struct {
	cfg *config.Config
	log *zap.Logger

	win     window.Window
	dev     *gldevice.Device
	ctx     *regl.Context
	shaders *shaderwatch.Store
	stop    context.CancelFunc

	scenes []Scene
	scene  int

	camera  *camera.Orbit
	shots   *capture.Screenshots
	limiter *Limiter
	fps     fpsCounter
	events  window.Queue

	width, height int // framebuffer pixels
	elapsed       float32
	paused        bool
	screenshot    bool
	shaderErrAt   uint64 // store version of the last reported shader error
}

// New opens the window, creates the GL device and initialises every scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:     cfg,
		log:     logger.Named("demo"),
		camera:  camera.NewOrbit(cameraDistance),
		shots:   capture.New(cfg.Demo.ScreenshotDir, "regl"),
		limiter: NewLimiter(cfg.Window.FPSLimit),
	}

	var err error
	a.win, err = window.New(cfg.Window.Backend, window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	a.width, a.height = a.win.FramebufferSize()

	// The device needs the context the window just made current.
	a.dev, err = gldevice.New(gldevice.Config{CheckErrors: cfg.Render.CheckErrors}, logger.Named("gl"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}
	a.ctx = regl.New(a.dev,
		regl.WithLogger(logger.Named("regl")),
		regl.WithPreamble(gldevice.Preamble),
	)

	if err := a.loadShaders(); err != nil {
		a.Close()
		return nil, err
	}

	scenes := Scenes(cfg, a.shaders, a.log)
	if err := initScenes(a.ctx, scenes); err != nil {
		a.Close()
		return nil, err
	}
	a.scenes = scenes
	a.scene = sceneIndex(scenes, cfg.Demo.Scene)

	a.log.Info("demo initialized",
		zap.String("backend", cfg.Window.Backend),
		zap.String("scene", a.scenes[a.scene].Name()),
		zap.Int("width", a.width),
		zap.Int("height", a.height),
	)
	return a, nil
}

// loadShaders reads the embedded sources, or the configured directory which
// is then watched when enabled.
func (a *App) loadShaders() error {
	dir := a.cfg.Shaders.Dir
	var err error
	if dir == "" {
		a.shaders, err = shaderwatch.Load(shaders.FS)
	} else {
		a.shaders, err = shaderwatch.Load(os.DirFS(dir))
	}
	if err != nil {
		return fmt.Errorf("failed to load shaders: %w", err)
	}
	if dir == "" || !a.cfg.Shaders.Watch {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := shaderwatch.Watch(ctx, a.shaders, dir, logger.Named("shaders"), nil); err != nil {
		cancel()
		return err
	}
	a.stop = cancel
	return nil
}

func sceneIndex(scenes []Scene, name string) int {
	for i, s := range scenes {
		if s.Name() == name {
			return i
		}
	}
	return 0
}

// Run loops until the window is closed or Escape is pressed.
func (a *App) Run() error {
	a.log.Info("starting render loop")
	last := time.Now()

	for {
		a.events.Reset()
		a.win.Poll(&a.events)
		if a.handleEvents() {
			return nil
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		if !a.paused {
			a.elapsed += dt
		}

		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if a.screenshot {
			a.screenshot = false
			a.takeScreenshot()
		}
		a.win.SwapBuffers()
		a.limiter.Wait()

		if fps, ok := a.fps.tick(time.Now()); ok {
			a.win.SetTitle(fmt.Sprintf("%s - %s - %.0f fps", a.cfg.Window.Title, a.scenes[a.scene].Name(), fps))
			a.log.Debug("fps", zap.Float64("fps", fps), zap.Int("programs", a.ctx.Programs()))
		}
	}
}

// handleEvents applies this frame's input. It reports whether the demo
// should quit.
func (a *App) handleEvents() bool {
	if a.events.Quit() {
		return true
	}
	for _, e := range a.events.Events() {
		switch e.Type {
		case window.EventResize:
			a.width, a.height = e.Width, e.Height
		case window.EventKeyDown:
			if a.handleKey(e.Key) {
				return true
			}
		case window.EventMouseDown:
			if e.Button == window.ButtonLeft {
				a.camera.BeginDrag(e.MouseX, e.MouseY)
			}
		case window.EventMouseUp:
			if e.Button == window.ButtonLeft {
				a.camera.EndDrag()
			}
		case window.EventMouseMove:
			a.camera.MoveTo(e.MouseX, e.MouseY)
		case window.EventScroll:
			a.camera.Zoom(e.Scroll)
		}
	}
	return false
}

func (a *App) handleKey(k window.Key) bool {
	switch k {
	case window.KeyEscape:
		return true
	case window.Key1, window.Key2:
		a.switchScene(int(k - window.Key1))
	case window.KeySpace:
		a.paused = !a.paused
	case window.KeyR:
		a.camera = camera.NewOrbit(cameraDistance)
	case window.KeyF12:
		a.screenshot = true
	case window.KeyLeft:
		a.camera.Rotate(-keyRotateStep, 0)
	case window.KeyRight:
		a.camera.Rotate(keyRotateStep, 0)
	case window.KeyUp:
		a.camera.Rotate(0, keyRotateStep)
	case window.KeyDown:
		a.camera.Rotate(0, -keyRotateStep)
	}
	return false
}

func (a *App) switchScene(i int) {
	if i < 0 || i >= len(a.scenes) || i == a.scene {
		return
	}
	a.scene = i
	a.log.Info("scene switched", zap.String("scene", a.scenes[i].Name()))
}

func (a *App) viewport() regl.Rect {
	return regl.Rect{Width: a.width, Height: a.height}
}

// render draws the current scene in one frame. A shader error drops the
// frame and is logged once per store version.
func (a *App) render() error {
	view := View{
		Viewport: a.viewport(),
		ViewProj: a.camera.ViewProjection(a.width, a.height),
		Time:     a.elapsed,
	}
	scene := a.scenes[a.scene]
	err := a.ctx.Frame(func() error {
		return scene.Draw(a.ctx, view)
	})

	var se *regl.ShaderError
	if errors.As(err, &se) {
		if v := a.shaders.Version(); v != a.shaderErrAt {
			a.shaderErrAt = v
			a.log.Warn("shader failed, waiting for a fix",
				zap.String("scene", scene.Name()),
				zap.String("stage", se.Stage),
				zap.String("log", se.Log),
			)
		}
		return nil
	}
	return err
}

func (a *App) takeScreenshot() {
	path, err := a.shots.Capture(a.ctx.Device(), a.viewport())
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases scenes, the device and the window.
func (a *App) Close() {
	a.log.Info("closing demo")

	if a.stop != nil {
		a.stop()
	}
	for _, s := range a.scenes {
		s.Dispose()
	}
	if a.ctx != nil {
		if err := a.ctx.Dispose(); err != nil {
			a.log.Warn("disposing context", zap.Error(err))
		}
	}
	if a.dev != nil {
		a.dev.Close()
	}
	if a.win != nil {
		a.win.Close()
	}
}
