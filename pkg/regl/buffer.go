package regl

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const unnamed = "unnamed"

// VertexBufferConfig describes a vertex attribute buffer.
//
// Data is borrowed: it must stay valid until Finish returns. Length is the
// element count; zero derives it from len(Data)/Components.
type VertexBufferConfig struct {
	Name       string
	Data       []float32
	Length     int
	Components int
	Usage      Usage
}

// IndexBufferConfig describes a buffer of 32-bit unsigned indices.
type IndexBufferConfig struct {
	Name   string
	Data   []uint32
	Length int
	Usage  Usage
}

// VertexBuffer is a vertex attribute buffer. It is unusable in a draw until
// Finish succeeds.
type VertexBuffer struct {
	cfg    VertexBufferConfig
	dev    Device
	log    *zap.Logger
	handle uint32
	ready  bool
}

// IndexBuffer is an element buffer. It is unusable in a draw until Finish
// succeeds.
type IndexBuffer struct {
	cfg    IndexBufferConfig
	dev    Device
	log    *zap.Logger
	handle uint32
	ready  bool
}

// NewVertexBuffer returns an unfinished vertex buffer.
func (c *Context) NewVertexBuffer(cfg VertexBufferConfig) *VertexBuffer {
	if cfg.Name == "" {
		cfg.Name = unnamed
	}
	return &VertexBuffer{cfg: cfg, dev: c.dev, log: c.log}
}

// CreateVertexBuffer creates and finishes a vertex buffer.
func (c *Context) CreateVertexBuffer(cfg VertexBufferConfig) (*VertexBuffer, error) {
	b := c.NewVertexBuffer(cfg)
	if err := b.Finish(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewIndexBuffer returns an unfinished index buffer.
func (c *Context) NewIndexBuffer(cfg IndexBufferConfig) *IndexBuffer {
	if cfg.Name == "" {
		cfg.Name = unnamed
	}
	return &IndexBuffer{cfg: cfg, dev: c.dev, log: c.log}
}

// CreateIndexBuffer creates and finishes an index buffer.
func (c *Context) CreateIndexBuffer(cfg IndexBufferConfig) (*IndexBuffer, error) {
	b := c.NewIndexBuffer(cfg)
	if err := b.Finish(); err != nil {
		return nil, err
	}
	return b, nil
}

func (cfg *VertexBufferConfig) validate() error {
	bad := func(field string, v any, reason string) error {
		return &ConfigError{Resource: "vertex buffer", Name: cfg.Name, Field: field, Value: v, Reason: reason}
	}
	var err error
	if !cfg.Usage.Valid() {
		err = multierr.Append(err, bad("usage", cfg.Usage, "not a valid usage"))
	}
	if cfg.Components < 1 || cfg.Components > 4 {
		err = multierr.Append(err, bad("components", cfg.Components, "must be between 1 and 4"))
	}
	if cfg.Length < 0 {
		err = multierr.Append(err, bad("length", cfg.Length, "must not be negative"))
	}
	if cfg.Data == nil {
		err = multierr.Append(err, bad("data", nil, "need to specify data"))
	}
	if err != nil {
		return err
	}
	if cfg.Length == 0 {
		cfg.Length = len(cfg.Data) / cfg.Components
	}
	if need := cfg.Length * cfg.Components; len(cfg.Data) < need {
		return bad("data", len(cfg.Data), "holds fewer floats than length*components")
	}
	return nil
}

func (cfg *IndexBufferConfig) validate() error {
	bad := func(field string, v any, reason string) error {
		return &ConfigError{Resource: "index buffer", Name: cfg.Name, Field: field, Value: v, Reason: reason}
	}
	var err error
	if !cfg.Usage.Valid() {
		err = multierr.Append(err, bad("usage", cfg.Usage, "not a valid usage"))
	}
	if cfg.Length < 0 {
		err = multierr.Append(err, bad("length", cfg.Length, "must not be negative"))
	}
	if cfg.Data == nil {
		err = multierr.Append(err, bad("data", nil, "need to specify data"))
	}
	if err != nil {
		return err
	}
	if cfg.Length == 0 {
		cfg.Length = len(cfg.Data)
	}
	if len(cfg.Data) < cfg.Length {
		return bad("data", len(cfg.Data), "holds fewer indices than length")
	}
	return nil
}

// Finish validates the configuration and uploads the data. Finishing a ready
// buffer replaces its backend object.
func (b *VertexBuffer) Finish() error {
	if err := b.cfg.validate(); err != nil {
		return err
	}
	b.Dispose()

	data := b.cfg.Data[:b.cfg.Length*b.cfg.Components]
	handle, err := b.dev.CreateVertexBuffer(data, b.cfg.Usage)
	if err != nil {
		return &ResourceError{Resource: "vertex buffer", Name: b.cfg.Name, Err: err}
	}
	b.handle, b.ready = handle, true

	b.log.Debug("vertex buffer finished",
		zap.String("name", b.cfg.Name),
		zap.Uint32("handle", handle),
		zap.Int("length", b.cfg.Length),
		zap.Int("components", b.cfg.Components),
		zap.Stringer("usage", b.cfg.Usage),
	)
	return nil
}

// Dispose releases the backend buffer. It is a no-op on unready buffers.
func (b *VertexBuffer) Dispose() {
	if !b.ready {
		return
	}
	b.dev.DeleteBuffer(b.handle)
	b.handle, b.ready = 0, false
}

// Ready reports whether the buffer has been uploaded and not disposed.
func (b *VertexBuffer) Ready() bool { return b.ready }

// Name returns the diagnostic name.
func (b *VertexBuffer) Name() string { return b.cfg.Name }

// Len returns the element count.
func (b *VertexBuffer) Len() int { return b.cfg.Length }

// Components returns the number of floats per element.
func (b *VertexBuffer) Components() int { return b.cfg.Components }

// Handle returns the backend buffer name, zero when not ready.
func (b *VertexBuffer) Handle() uint32 { return b.handle }

// Finish validates the configuration and uploads the indices.
func (b *IndexBuffer) Finish() error {
	if err := b.cfg.validate(); err != nil {
		return err
	}
	b.Dispose()

	handle, err := b.dev.CreateIndexBuffer(b.cfg.Data[:b.cfg.Length], b.cfg.Usage)
	if err != nil {
		return &ResourceError{Resource: "index buffer", Name: b.cfg.Name, Err: err}
	}
	b.handle, b.ready = handle, true

	b.log.Debug("index buffer finished",
		zap.String("name", b.cfg.Name),
		zap.Uint32("handle", handle),
		zap.Int("length", b.cfg.Length),
	)
	return nil
}

// Dispose releases the backend buffer. It is a no-op on unready buffers.
func (b *IndexBuffer) Dispose() {
	if !b.ready {
		return
	}
	b.dev.DeleteBuffer(b.handle)
	b.handle, b.ready = 0, false
}

// Ready reports whether the buffer has been uploaded and not disposed.
func (b *IndexBuffer) Ready() bool { return b.ready }

// Name returns the diagnostic name.
func (b *IndexBuffer) Name() string { return b.cfg.Name }

// Len returns the index count.
func (b *IndexBuffer) Len() int { return b.cfg.Length }

// Handle returns the backend buffer name, zero when not ready.
func (b *IndexBuffer) Handle() uint32 { return b.handle }
