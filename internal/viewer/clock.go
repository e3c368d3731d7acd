package viewer

import "time"

// Clock simulates media playback: a position in seconds that advances with
// wall time while playing.
type Clock struct {
	position float64
	rate     float64
	playing  bool
	last     time.Time
}

// NewClock returns a paused clock at zero. A non-positive rate means 1.
func NewClock(rate float64) *Clock {
	if rate <= 0 {
		rate = 1
	}
	return &Clock{rate: rate}
}

// Position is the current playback timestamp.
func (c *Clock) Position() float64 { return c.position }

// Playing reports whether the clock advances.
func (c *Clock) Playing() bool { return c.playing }

// Play starts advancing from now.
func (c *Clock) Play(now time.Time) {
	c.playing = true
	c.last = now
}

// Pause stops the clock at its current position.
func (c *Clock) Pause() { c.playing = false }

// Toggle flips between playing and paused.
func (c *Clock) Toggle(now time.Time) {
	if c.playing {
		c.Pause()
		return
	}
	c.Play(now)
}

// Seek jumps to ts, clamped at zero.
func (c *Clock) Seek(ts float64) {
	c.position = max(ts, 0)
}

// Advance moves the position by the wall time elapsed since the previous
// call and returns it.
func (c *Clock) Advance(now time.Time) float64 {
	if !c.playing {
		return c.position
	}
	if elapsed := now.Sub(c.last); elapsed > 0 {
		c.position += elapsed.Seconds() * c.rate
	}
	c.last = now
	return c.position
}
