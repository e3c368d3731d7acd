package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by LoadEnv.
const EnvPrefix = "TRANSCRIPTVIEW_"

// LoadEnv loads the given .env files (missing files are skipped) into the
// process environment and applies TRANSCRIPTVIEW_* overrides to cfg.
// Variables already set in the environment win over .env files.
func LoadEnv(cfg *Config, paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	durations := map[string]*time.Duration{
		"TICK":                   &cfg.Timing.Tick,
		"RESIZE_DEBOUNCE":        &cfg.Timing.ResizeDebounce,
		"MANUAL_SCROLL_COOLDOWN": &cfg.Timing.ManualScrollCooldown,
		"AUTO_SCROLL_COOLDOWN":   &cfg.Timing.AutoScrollCooldown,
	}
	for key, dst := range durations {
		v, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = d
	}

	ints := map[string]*int{
		"SAFETY_LINES":   &cfg.Scroll.SafetyLines,
		"SCROLL_PADDING": &cfg.Scroll.Padding,
		"WIDTH":          &cfg.Layout.Width,
		"MAX_TEXT_WIDTH": &cfg.Layout.MaxTextWidth,
	}
	for key, dst := range ints {
		v, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
	}

	if v, ok := lookup(EnvPrefix + "PLAYBACK_RATE"); ok && strings.TrimSpace(v) != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%sPLAYBACK_RATE: %w", EnvPrefix, err)
		}
		cfg.PlaybackRate = f
	}
	if v, ok := lookup(EnvPrefix + "READ_ONLY"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sREAD_ONLY: %w", EnvPrefix, err)
		}
		cfg.ReadOnly = b
	}
	return nil
}
