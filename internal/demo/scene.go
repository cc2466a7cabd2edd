package demo

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/regl/internal/config"
	"github.com/Faultbox/regl/internal/imageio"
	"github.com/Faultbox/regl/internal/mesh"
	"github.com/Faultbox/regl/internal/shaderwatch"
	"github.com/Faultbox/regl/pkg/math"
	"github.com/Faultbox/regl/pkg/regl"
)

// maxTextureSize bounds loaded images on either side.
const maxTextureSize = 2048

// View is what a scene needs to know about the current frame.
type View struct {
	Viewport regl.Rect
	ViewProj math.Mat4
	Time     float32 // seconds since start
}

// Scene owns its GPU resources and draws itself with regl commands.
type Scene interface {
	Name() string
	// Init creates the scene resources. It is called once with a current
	// GL context.
	Init(ctx *regl.Context) error
	// Draw issues the commands of one frame. It must run inside a Frame.
	Draw(ctx *regl.Context, v View) error
	Dispose()
}

// background runs body in the outermost scope of every scene. The clear is
// a leaf so the draws inside do not inherit it.
func background(ctx *regl.Context, cfg *config.Config, v View, body func() error) error {
	scope := regl.Command{
		Viewport:  regl.Some(v.Viewport),
		DepthTest: regl.Some(cfg.Render.DepthTest),
	}
	return ctx.SubmitScope(scope, func() error {
		err := ctx.Submit(regl.Command{
			ClearColor: regl.Some(cfg.Render.ClearColor),
			ClearDepth: regl.Some[float32](1),
		})
		if err != nil {
			return err
		}
		return body()
	})
}

// CubeScene draws a row of textured cubes sharing one scope for shaders,
// buffers and camera, each with its own model matrix.
type CubeScene struct {
	cfg     *config.Config
	shaders *shaderwatch.Store
	log     *zap.Logger

	position *regl.VertexBuffer
	normal   *regl.VertexBuffer
	uv       *regl.VertexBuffer
	indices  *regl.IndexBuffer
	texture  *regl.Texture2D
	count    int
}

// NewCubeScene returns an uninitialised cube scene.
func NewCubeScene(cfg *config.Config, shaders *shaderwatch.Store, log *zap.Logger) *CubeScene {
	if log == nil {
		log = zap.NewNop()
	}
	return &CubeScene{cfg: cfg, shaders: shaders, log: log}
}

// Name implements Scene.
func (s *CubeScene) Name() string { return config.SceneCube }

// Init implements Scene.
func (s *CubeScene) Init(ctx *regl.Context) error {
	m := mesh.Cube(4)
	s.count = len(m.Indices)

	var err error
	if s.position, err = ctx.CreateVertexBuffer(regl.VertexBufferConfig{Name: "cube.position", Data: m.Positions, Components: 3}); err != nil {
		return err
	}
	if s.normal, err = ctx.CreateVertexBuffer(regl.VertexBufferConfig{Name: "cube.normal", Data: m.Normals, Components: 3}); err != nil {
		return err
	}
	if s.uv, err = ctx.CreateVertexBuffer(regl.VertexBufferConfig{Name: "cube.uv", Data: m.UVs, Components: 2}); err != nil {
		return err
	}
	if s.indices, err = ctx.CreateIndexBuffer(regl.IndexBufferConfig{Name: "cube.indices", Data: m.Indices}); err != nil {
		return err
	}

	texCfg, err := s.textureConfig()
	if err != nil {
		return err
	}
	if s.texture, err = ctx.CreateTexture(texCfg); err != nil {
		return err
	}
	w, h := s.texture.Size()
	s.log.Info("cube scene ready",
		zap.Int("indices", s.count),
		zap.Int("texture_width", w),
		zap.Int("texture_height", h),
	)
	return nil
}

// textureConfig loads the configured image, or falls back to a 2x2
// checkerboard.
func (s *CubeScene) textureConfig() (regl.TextureConfig, error) {
	r := s.cfg.Render
	var tc regl.TextureConfig
	if path := s.cfg.Demo.Texture; path != "" {
		img, err := imageio.Load(path)
		if err != nil {
			return tc, fmt.Errorf("loading cube texture: %w", err)
		}
		rgba := imageio.Fit(img, maxTextureSize)
		imageio.FlipY(rgba)
		tc = regl.TextureConfigFromImage(path, rgba)
	} else {
		tc = regl.TextureConfig{
			Name:   "checker",
			Data:   mesh.Checkerboard(2, 1, [4]byte{255, 255, 255, 255}, [4]byte{60, 60, 60, 255}),
			Width:  2,
			Height: 2,
			Format: regl.FormatRGBA8,
		}
	}
	tc.Min, tc.Mag, tc.Wrap = r.TextureMin, r.TextureMag, r.TextureWrap
	return tc, nil
}

// Draw implements Scene.
func (s *CubeScene) Draw(ctx *regl.Context, v View) error {
	vert, frag, err := s.shaders.Pair("cube.vert", "cube.frag")
	if err != nil {
		return err
	}
	return background(ctx, s.cfg, v, func() error {
		shared := regl.Command{
			Vert: vert,
			Frag: frag,
			Attributes: regl.Attributes{
				"aPosition": s.position,
				"aNormal":   s.normal,
				"aUV":       s.uv,
			},
			Indices: s.indices,
			Uniforms: regl.Uniforms{
				"uViewProj": regl.Mat4(v.ViewProj.Array()),
				"uTexture":  regl.Sampler(s.texture),
				"uLightDir": regl.Vec3(0.4, 1, 0.6),
				"uTint":     regl.Vec4(1, 1, 1, 1),
			},
		}
		return ctx.SubmitScope(shared, func() error {
			for i, model := range cubeModels(v.Time) {
				cmd := regl.Command{
					Count:    regl.Some(s.count),
					Uniforms: regl.Uniforms{"uModel": regl.Mat4(model.Array())},
				}
				if i == 1 {
					cmd.Uniforms["uTint"] = regl.Vec4(1, 0.6, 0.4, 1)
				}
				if err := ctx.Submit(cmd); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// cubeModels places three cubes along X, each spinning at its own rate.
func cubeModels(t float32) [3]math.Mat4 {
	var models [3]math.Mat4
	for i := range models {
		x := float32(i-1) * 1.8
		spin := t * (0.5 + 0.25*float32(i))
		models[i] = math.Translate(x, 0, 0).
			Mul(math.RotateY(spin)).
			Mul(math.RotateX(spin * 0.5))
	}
	return models
}

// Dispose implements Scene.
func (s *CubeScene) Dispose() {
	for _, b := range []*regl.VertexBuffer{s.position, s.normal, s.uv} {
		if b != nil {
			b.Dispose()
		}
	}
	if s.indices != nil {
		s.indices.Dispose()
	}
	if s.texture != nil {
		s.texture.Dispose()
	}
}

// PointsScene draws a pulsing sphere of points.
type PointsScene struct {
	cfg     *config.Config
	shaders *shaderwatch.Store
	log     *zap.Logger

	position *regl.VertexBuffer
	count    int
}

// NewPointsScene returns an uninitialised points scene.
func NewPointsScene(cfg *config.Config, shaders *shaderwatch.Store, log *zap.Logger) *PointsScene {
	if log == nil {
		log = zap.NewNop()
	}
	return &PointsScene{cfg: cfg, shaders: shaders, log: log}
}

// Name implements Scene.
func (s *PointsScene) Name() string { return config.ScenePoints }

// Init implements Scene.
func (s *PointsScene) Init(ctx *regl.Context) error {
	m := mesh.Sphere(s.cfg.Demo.Points, 1.5)
	s.count = m.Vertices()

	var err error
	s.position, err = ctx.CreateVertexBuffer(regl.VertexBufferConfig{
		Name:       "points.position",
		Data:       m.Positions,
		Components: 3,
		Usage:      regl.UsageStatic,
	})
	if err != nil {
		return err
	}
	s.log.Info("points scene ready", zap.Int("points", s.count))
	return nil
}

// Draw implements Scene.
func (s *PointsScene) Draw(ctx *regl.Context, v View) error {
	vert, frag, err := s.shaders.Pair("points.vert", "points.frag")
	if err != nil {
		return err
	}
	return background(ctx, s.cfg, v, func() error {
		return ctx.Submit(regl.Command{
			Vert:       vert,
			Frag:       frag,
			Primitive:  regl.PrimitivePoints,
			Count:      regl.Some(s.count),
			Attributes: regl.Attributes{"aPosition": s.position},
			Uniforms: regl.Uniforms{
				"uViewProj":  regl.Mat4(v.ViewProj.Array()),
				"uTime":      regl.Float(v.Time),
				"uPointSize": regl.Float(2 + math32.Abs(math32.Sin(v.Time))),
				"uColor":     regl.Vec4(1, 0, 0, 1),
			},
		})
	})
}

// Dispose implements Scene.
func (s *PointsScene) Dispose() {
	if s.position != nil {
		s.position.Dispose()
	}
}

// Scenes builds every demo scene in switch order.
func Scenes(cfg *config.Config, shaders *shaderwatch.Store, log *zap.Logger) []Scene {
	return []Scene{
		NewCubeScene(cfg, shaders, log.Named(config.SceneCube)),
		NewPointsScene(cfg, shaders, log.Named(config.ScenePoints)),
	}
}

// initScenes initialises every scene, disposing all of them if any fails.
func initScenes(ctx *regl.Context, scenes []Scene) error {
	var err error
	for _, s := range scenes {
		if e := s.Init(ctx); e != nil {
			err = multierr.Append(err, fmt.Errorf("scene %s: %w", s.Name(), e))
		}
	}
	if err != nil {
		for _, s := range scenes {
			s.Dispose()
		}
	}
	return err
}
