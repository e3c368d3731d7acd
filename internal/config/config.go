package config

import "time"

// TimingSettings holds the deferred-work intervals of the viewer.
type TimingSettings struct {
	Tick                 time.Duration
	ResizeDebounce       time.Duration
	ManualScrollCooldown time.Duration
	AutoScrollCooldown   time.Duration
}

// ScrollSettings holds the auto-scroll geometry, in text rows.
type ScrollSettings struct {
	LineHeight  int
	SafetyLines int
	Padding     int
}

// LayoutSettings holds the cell-grid layout parameters.
type LayoutSettings struct {
	Width         int // 0 means "use the terminal width"
	LeftMargin    int
	SentenceInset int
	MaxTextWidth  int
}

// Config holds the full application configuration.
type Config struct {
	Timing TimingSettings
	Scroll ScrollSettings
	Layout LayoutSettings

	PlaybackRate float64
	ReadOnly     bool
}

// Default returns a Config with the widget's stock values.
func Default() *Config {
	return &Config{
		Timing: TimingSettings{
			Tick:                 100 * time.Millisecond,
			ResizeDebounce:       500 * time.Millisecond,
			ManualScrollCooldown: 2 * time.Second,
			AutoScrollCooldown:   2 * time.Second,
		},
		Scroll: ScrollSettings{
			LineHeight:  1,
			SafetyLines: 3,
			Padding:     2,
		},
		Layout: LayoutSettings{
			LeftMargin:    2,
			SentenceInset: 2,
			MaxTextWidth:  90,
		},
		PlaybackRate: 1.0,
	}
}
