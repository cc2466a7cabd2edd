// Package camera provides the orbit camera the demo scenes view through.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/regl/pkg/math"
)

// Orbit circles a target point at a fixed distance.
type Orbit struct {
	Target math.Vec3

	Distance float32
	Pitch    float32 // radians above the XZ plane
	Yaw      float32 // radians around Y

	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32

	DragSensitivity float32
	ZoomSensitivity float32

	FovY      float32
	Near, Far float32
	lastX     int
	lastY     int
	dragging  bool
}

// NewOrbit returns a camera looking at the origin from distance.
func NewOrbit(distance float32) *Orbit {
	return &Orbit{
		Distance:        distance,
		Pitch:           0.4,
		MinDistance:     distance / 4,
		MaxDistance:     distance * 8,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.01,
		ZoomSensitivity: 0.1,
		FovY:            math32.Pi / 4,
		Near:            0.1,
		Far:             100,
	}
}

// Eye returns the camera position in world space.
func (c *Orbit) Eye() math.Vec3 {
	return c.Target.Add(math.Spherical(c.Distance, c.Yaw, c.Pitch))
}

// View returns the view matrix.
func (c *Orbit) View() math.Mat4 {
	return math.LookAt(c.Eye(), c.Target, math.Vec3{Y: 1})
}

// Projection returns the perspective matrix for a framebuffer of the given
// size.
func (c *Orbit) Projection(width, height int) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Orbit) ViewProjection(width, height int) math.Mat4 {
	return c.Projection(width, height).Mul(c.View())
}

// Rotate turns the camera by yaw and pitch deltas in radians.
func (c *Orbit) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// Drag rotates by a mouse movement in pixels.
func (c *Orbit) Drag(dx, dy float32) {
	c.Rotate(-dx*c.DragSensitivity, dy*c.DragSensitivity)
}

// Zoom moves toward the target for positive delta.
func (c *Orbit) Zoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// BeginDrag starts tracking the mouse at x, y.
func (c *Orbit) BeginDrag(x, y int) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// EndDrag stops tracking the mouse.
func (c *Orbit) EndDrag() {
	c.dragging = false
}

// MoveTo rotates by the mouse movement since the last call while dragging.
func (c *Orbit) MoveTo(x, y int) {
	if !c.dragging {
		return
	}
	c.Drag(float32(x-c.lastX), float32(y-c.lastY))
	c.lastX, c.lastY = x, y
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
