package demo

import "time"

// Limiter caps the frame rate by sleeping out the rest of each frame
// interval. A zero Limiter never sleeps.
type Limiter struct {
	interval time.Duration
	next     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewLimiter returns a limiter for fps frames per second; fps <= 0 means
// unlimited.
func NewLimiter(fps int) *Limiter {
	l := &Limiter{now: time.Now, sleep: time.Sleep}
	if fps > 0 {
		l.interval = time.Second / time.Duration(fps)
	}
	return l
}

// Wait blocks until the next frame is due. A frame that overran its slot
// restarts the schedule instead of bursting to catch up.
func (l *Limiter) Wait() {
	if l.interval <= 0 {
		return
	}
	now := l.now()
	if l.next.IsZero() || now.After(l.next) {
		l.next = now.Add(l.interval)
		return
	}
	l.sleep(l.next.Sub(now))
	l.next = l.next.Add(l.interval)
}

// fpsCounter counts frames over one second windows.
type fpsCounter struct {
	start  time.Time
	frames int
}

// tick records a frame. It returns the frame rate of the window that just
// closed, or false while the window is still open.
func (c *fpsCounter) tick(now time.Time) (fps float64, ok bool) {
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++
	elapsed := now.Sub(c.start)
	if elapsed < time.Second {
		return 0, false
	}
	fps = float64(c.frames) / elapsed.Seconds()
	c.start, c.frames = now, 0
	return fps, true
}
