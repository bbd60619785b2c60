package app

import "time"

// fpsCounter measures frames per second over one-second windows.
type fpsCounter struct {
	now    func() time.Time
	start  time.Time
	frames int
	rate   float64
}

// tick counts one frame and reports whether the rate was updated.
func (c *fpsCounter) tick() bool {
	now := time.Now()
	if c.now != nil {
		now = c.now()
	}
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++
	elapsed := now.Sub(c.start)
	if elapsed < time.Second {
		return false
	}
	c.rate = float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.start = now
	return true
}
