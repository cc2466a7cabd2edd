package regl

import (
	"image"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// TextureConfig describes a 2D texture. Data is borrowed until Finish
// returns. Wrap, when set, applies to whichever of WrapS and WrapT are left
// at their zero value.
type TextureConfig struct {
	Name          string
	Data          []byte
	FloatData     []float32
	Width, Height int
	Mag, Min      Filter
	Wrap          Wrap
	WrapS, WrapT  Wrap
	Format        PixelFormat
}

// Texture2D is a sampled 2D texture.
type Texture2D struct {
	cfg    TextureConfig
	dev    Device
	log    *zap.Logger
	handle uint32
	ready  bool
}

// NewTexture returns an unfinished texture.
func (c *Context) NewTexture(cfg TextureConfig) *Texture2D {
	if cfg.Name == "" {
		cfg.Name = unnamed
	}
	if cfg.WrapS == WrapClamp {
		cfg.WrapS = cfg.Wrap
	}
	if cfg.WrapT == WrapClamp {
		cfg.WrapT = cfg.Wrap
	}
	return &Texture2D{cfg: cfg, dev: c.dev, log: c.log}
}

// CreateTexture creates and finishes a texture.
func (c *Context) CreateTexture(cfg TextureConfig) (*Texture2D, error) {
	t := c.NewTexture(cfg)
	if err := t.Finish(); err != nil {
		return nil, err
	}
	return t, nil
}

// TextureConfigFromImage returns an RGBA8 configuration holding a tightly
// packed copy of img.
func TextureConfigFromImage(name string, img image.Image) TextureConfig {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return TextureConfig{
		Name:   name,
		Data:   rgba.Pix,
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: FormatRGBA8,
	}
}

func (cfg *TextureConfig) validate() error {
	bad := func(field string, v any, reason string) error {
		return &ConfigError{Resource: "texture", Name: cfg.Name, Field: field, Value: v, Reason: reason}
	}
	var err error
	if cfg.Width < 0 {
		err = multierr.Append(err, bad("width", cfg.Width, "not a valid texture width"))
	}
	if cfg.Height < 0 {
		err = multierr.Append(err, bad("height", cfg.Height, "not a valid texture height"))
	}
	if !cfg.WrapS.Valid() {
		err = multierr.Append(err, bad("wrapS", cfg.WrapS, "not a valid wrap mode"))
	}
	if !cfg.WrapT.Valid() {
		err = multierr.Append(err, bad("wrapT", cfg.WrapT, "not a valid wrap mode"))
	}
	if cfg.Mag != FilterNearest && cfg.Mag != FilterLinear {
		err = multierr.Append(err, bad("mag", cfg.Mag, "not a valid mag filter"))
	}
	if !cfg.Min.Valid() {
		err = multierr.Append(err, bad("min", cfg.Min, "not a valid min filter"))
	}
	switch cfg.Format {
	case FormatRGBA8:
		if cfg.Data == nil {
			err = multierr.Append(err, bad("data", nil, "need to specify byte data for pixel format rgba8"))
		}
	default:
		err = multierr.Append(err, bad("format", cfg.Format, "unsupported pixel format"))
	}
	if err != nil {
		return err
	}
	if need := cfg.Width * cfg.Height * 4; len(cfg.Data) < need {
		return bad("data", len(cfg.Data), "holds fewer bytes than width*height*4")
	}
	return nil
}

// Finish validates the configuration and uploads the pixels. Mipmapped min
// filters generate the mipmap chain.
func (t *Texture2D) Finish() error {
	if err := t.cfg.validate(); err != nil {
		return err
	}
	t.Dispose()

	spec := TextureSpec{
		Width:   t.cfg.Width,
		Height:  t.cfg.Height,
		Format:  t.cfg.Format,
		Pixels:  t.cfg.Data[:t.cfg.Width*t.cfg.Height*4],
		Min:     t.cfg.Min,
		Mag:     t.cfg.Mag,
		WrapS:   t.cfg.WrapS,
		WrapT:   t.cfg.WrapT,
		Mipmaps: t.cfg.Min.Mipmapped(),
	}
	handle, err := t.dev.CreateTexture(spec)
	if err != nil {
		return &ResourceError{Resource: "texture", Name: t.cfg.Name, Err: err}
	}
	t.handle, t.ready = handle, true

	t.log.Debug("texture finished",
		zap.String("name", t.cfg.Name),
		zap.Uint32("handle", handle),
		zap.Int("width", t.cfg.Width),
		zap.Int("height", t.cfg.Height),
		zap.Bool("mipmaps", spec.Mipmaps),
	)
	return nil
}

// Dispose releases the backend texture. It is a no-op on unready textures.
func (t *Texture2D) Dispose() {
	if !t.ready {
		return
	}
	t.dev.DeleteTexture(t.handle)
	t.handle, t.ready = 0, false
}

// Ready reports whether the texture has been uploaded and not disposed.
func (t *Texture2D) Ready() bool { return t.ready }

// Name returns the diagnostic name.
func (t *Texture2D) Name() string { return t.cfg.Name }

// Size returns the texture dimensions.
func (t *Texture2D) Size() (width, height int) { return t.cfg.Width, t.cfg.Height }

// Handle returns the backend texture name, zero when not ready.
func (t *Texture2D) Handle() uint32 { return t.handle }
