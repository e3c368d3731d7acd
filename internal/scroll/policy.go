// Package scroll decides when the transcript panel follows the playhead.
package scroll

import (
	"time"

	"transcriptview/internal/config"
	"transcriptview/internal/layout"

	"golang.org/x/time/rate"
)

// Input is the panel state at one tick.
type Input struct {
	// Word is the active word's rect in document rows. Active is false
	// when no word is under the playhead.
	Word   layout.Rect
	Active bool

	ScrollTop   int
	PanelHeight int
	Playing     bool
	Now         time.Time
}

// Decision tells the host what to do with the panel.
type Decision struct {
	Scroll   bool
	ScrollTo int

	// ShowButton asks for a "scroll to current word" button, above the
	// panel when ButtonOnTop is set.
	ShowButton  bool
	ButtonOnTop bool
}

// Policy tracks the manual-scroll cool-down and the auto-scroll limiter.
// It is not safe for concurrent use.
type Policy struct {
	lineHeight  int
	safetyLines int
	padding     int
	cooldown    time.Duration

	limiter         *rate.Limiter
	suppressedUntil time.Time
	forced          bool
}

// New returns a policy using the given geometry and timings.
func New(s config.ScrollSettings, t config.TimingSettings) *Policy {
	return &Policy{
		lineHeight:  max(s.LineHeight, 1),
		safetyLines: s.SafetyLines,
		padding:     s.Padding,
		cooldown:    t.ManualScrollCooldown,
		limiter:     rate.NewLimiter(rate.Every(t.AutoScrollCooldown), 1),
	}
}

// Wheel records a wheel movement. Scrolling up starts or restarts the
// manual-scroll cool-down.
func (p *Policy) Wheel(deltaY int, now time.Time) {
	if deltaY < 0 {
		p.suppressedUntil = now.Add(p.cooldown)
	}
}

// Suppressed reports whether a recent manual scroll holds auto-scroll off.
func (p *Policy) Suppressed(now time.Time) bool {
	return now.Before(p.suppressedUntil)
}

// Force makes the next decision with an active word scroll to it.
func (p *Policy) Force() { p.forced = true }

// Resume ends the manual-scroll cool-down, e.g. after a word is clicked.
func (p *Policy) Resume() { p.suppressedUntil = time.Time{} }

// Decide evaluates one tick.
func (p *Policy) Decide(in Input) Decision {
	if !in.Active {
		return Decision{}
	}
	target := p.Target(in.Word)

	if p.forced {
		p.forced = false
		p.limiter.AllowN(in.Now, 1)
		return Decision{Scroll: true, ScrollTo: target}
	}

	bottom := in.ScrollTop + in.PanelHeight
	visible := in.Word.Bottom() > in.ScrollTop && in.Word.Y < bottom
	margin := bottom - p.safetyLines*p.lineHeight

	if in.Playing && !p.Suppressed(in.Now) && in.Word.Y > margin && p.limiter.AllowN(in.Now, 1) {
		return Decision{Scroll: true, ScrollTo: target}
	}
	if visible {
		return Decision{}
	}
	return Decision{ShowButton: true, ButtonOnTop: in.Word.Bottom() <= in.ScrollTop}
}

// Target is the scroll offset that brings r into view.
func (p *Policy) Target(r layout.Rect) int {
	return max(r.Y-p.padding, 0)
}
