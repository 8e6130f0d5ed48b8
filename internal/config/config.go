package config

import (
	"time"
)

const (
	DefaultSpeed    = 50
	DefaultRepeat   = false
	DefaultCursor   = true
	DefaultColor    = "black"
	DefaultInterval = 1000

	MinSpeed = 0
	MaxSpeed = 100
)

// Config is a fully resolved animation configuration.
type Config struct {
	Speed    int    `yaml:"speed"`
	Repeat   bool   `yaml:"repeat"`
	Cursor   bool   `yaml:"cursor"`
	Color    string `yaml:"color"`
	Interval int    `yaml:"interval"`
}

// Options is the caller supplied partial configuration. Nil fields fall back
// to the defaults.
type Options struct {
	Speed    *int    `yaml:"speed,omitempty"`
	Repeat   *bool   `yaml:"repeat,omitempty"`
	Cursor   *bool   `yaml:"cursor,omitempty"`
	Color    *string `yaml:"color,omitempty"`
	Interval *int    `yaml:"interval,omitempty"`
}

func Defaults() Config {
	return Config{
		Speed:    DefaultSpeed,
		Repeat:   DefaultRepeat,
		Cursor:   DefaultCursor,
		Color:    DefaultColor,
		Interval: DefaultInterval,
	}
}

// Resolve merges o over the defaults. Speed is clamped to [MinSpeed, MaxSpeed]
// and a negative interval becomes zero.
func Resolve(o Options) Config {
	return o.Over(Defaults())
}

// Over merges o over base, applying the same clamping as Resolve.
func (o Options) Over(base Config) Config {
	cfg := base
	if o.Speed != nil {
		cfg.Speed = *o.Speed
	}
	if o.Repeat != nil {
		cfg.Repeat = *o.Repeat
	}
	if o.Cursor != nil {
		cfg.Cursor = *o.Cursor
	}
	// an empty colour counts as absent
	if o.Color != nil && *o.Color != "" {
		cfg.Color = *o.Color
	}
	if o.Interval != nil {
		cfg.Interval = *o.Interval
	}
	cfg.Speed = clamp(cfg.Speed, MinSpeed, MaxSpeed)
	if cfg.Interval < 0 {
		cfg.Interval = 0
	}
	return cfg
}

// Merge returns o with every field set in other taking precedence.
func (o Options) Merge(other Options) Options {
	if other.Speed != nil {
		o.Speed = other.Speed
	}
	if other.Repeat != nil {
		o.Repeat = other.Repeat
	}
	if other.Cursor != nil {
		o.Cursor = other.Cursor
	}
	if other.Color != nil {
		o.Color = other.Color
	}
	if other.Interval != nil {
		o.Interval = other.Interval
	}
	return o
}

// Options converts a resolved config back into a fully populated Options.
func (c Config) Options() Options {
	return Options{
		Speed:    Int(c.Speed),
		Repeat:   Bool(c.Repeat),
		Cursor:   Bool(c.Cursor),
		Color:    String(c.Color),
		Interval: Int(c.Interval),
	}
}

// StepDelay is the pause between two consecutive characters.
func (c Config) StepDelay() time.Duration {
	return time.Duration(MaxSpeed-clamp(c.Speed, MinSpeed, MaxSpeed)) * time.Millisecond
}

// IntervalDelay is the pause after a full pass when repeating.
func (c Config) IntervalDelay() time.Duration {
	if c.Interval < 0 {
		return 0
	}
	return time.Duration(c.Interval) * time.Millisecond
}

func Int(v int) *int          { return &v }
func Bool(v bool) *bool       { return &v }
func String(v string) *string { return &v }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
