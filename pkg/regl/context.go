package regl

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultPreamble is prepended to every shader stage before compilation.
const DefaultPreamble = "#version 410 core\n"

// Context owns the state stack and the program cache for one Device.
type Context struct {
	dev      Device
	log      *zap.Logger
	preamble string

	programs map[programKey]*ProgramInfo
	stack    []State
	inFrame  bool
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger for diagnostics. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// WithPreamble replaces DefaultPreamble.
func WithPreamble(preamble string) Option {
	return func(c *Context) {
		c.preamble = preamble
	}
}

// New creates a Context drawing through dev.
func New(dev Device, opts ...Option) *Context {
	c := &Context{
		dev:      dev,
		log:      zap.NewNop(),
		preamble: DefaultPreamble,
		programs: make(map[programKey]*ProgramInfo),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Device returns the backend the context draws through.
func (c *Context) Device() Device {
	return c.dev
}

// Frame starts a rendering scope with a fresh default state and runs body.
// Every scope pushed inside body must be popped by the time it returns.
func (c *Context) Frame(body func() error) error {
	if c.inFrame {
		return ErrFrameActive
	}
	c.inFrame = true
	c.stack = append(c.stack[:0], DefaultState())
	defer func() {
		clear(c.stack)
		c.stack = c.stack[:0]
		c.inFrame = false
	}()

	if err := body(); err != nil {
		return err
	}
	if len(c.stack) != 1 {
		return fmt.Errorf("%w: depth %d at end of frame", ErrUnbalancedStack, len(c.stack))
	}
	return nil
}

// Submit merges cmd onto the current state and dispatches the result. The
// stack is left unchanged.
func (c *Context) Submit(cmd Command) error {
	top, err := c.top()
	if err != nil {
		return err
	}
	return c.dispatch(top.Merge(cmd))
}

// SubmitScope merges cmd onto the current state, pushes the result for the
// duration of body and pops it afterwards, also when body fails.
func (c *Context) SubmitScope(cmd Command, body func() error) error {
	top, err := c.top()
	if err != nil {
		return err
	}
	depth := len(c.stack)
	c.stack = append(c.stack, top.Merge(cmd))
	defer func() {
		clear(c.stack[depth:])
		c.stack = c.stack[:depth]
	}()
	return body()
}

// Current returns a copy of the state at the top of the stack.
func (c *Context) Current() (State, error) {
	top, err := c.top()
	if err != nil {
		return State{}, err
	}
	return top.Clone(), nil
}

// Depth returns the number of states on the stack, zero outside a frame.
func (c *Context) Depth() int {
	return len(c.stack)
}

// Dispose deletes every cached program. Buffers and textures are owned by
// the caller and are not released.
func (c *Context) Dispose() error {
	if c.inFrame {
		return ErrFrameActive
	}
	for key, p := range c.programs {
		c.dev.DeleteProgram(p.Program)
		delete(c.programs, key)
	}
	c.log.Debug("context disposed")
	return nil
}

func (c *Context) top() (*State, error) {
	if !c.inFrame || len(c.stack) == 0 {
		return nil, ErrNoFrame
	}
	return &c.stack[len(c.stack)-1], nil
}
