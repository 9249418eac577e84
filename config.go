package orrery

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
)

// Config holds the tuning values shared by the focus resolver, gesture
// classifier and dialogue player.
type Config struct {
	// Gestures
	EnableGestures    bool    `json:"enableGestures"`
	MovementThreshold float64 `json:"movementThreshold"` // pixels
	MaxTapDuration    float64 `json:"maxTapDuration"`    // seconds

	// Probing
	TraceMode        TraceMode `json:"traceMode"`
	MaxProbeDistance float64   `json:"maxProbeDistance"`
	ProbeLayers      LayerMask `json:"probeLayers"`

	// Dialogue
	TextDisplaySpeed float64 `json:"textDisplaySpeed"` // characters per second, 0 = instant
	DialogueInterval float64 `json:"dialogueInterval"` // seconds between chained entries
	AutoPlayNext     bool    `json:"autoPlayNext"`
	AllowSkip        bool    `json:"allowSkip"`
	Language         string  `json:"language"` // BCP 47

	Debug bool `json:"debug"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		EnableGestures:    true,
		MovementThreshold: 20,
		MaxTapDuration:    0.3,
		TraceMode:         TraceScreenCenter,
		MaxProbeDistance:  5000,
		ProbeLayers:       LayerInteraction,
		TextDisplaySpeed:  20,
		DialogueInterval:  0.5,
		AutoPlayNext:      true,
		AllowSkip:         true,
		Language:          "zh",
	}
}

// ParseConfig decodes JSON over DefaultConfig, so omitted fields keep their
// defaults, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and the language tag.
func (c Config) Validate() error {
	switch {
	case c.MovementThreshold < 0:
		return fmt.Errorf("%w: negative movement threshold", ErrInvalidConfig)
	case c.MaxTapDuration <= 0:
		return fmt.Errorf("%w: max tap duration must be positive", ErrInvalidConfig)
	case c.MaxProbeDistance <= 0:
		return fmt.Errorf("%w: max probe distance must be positive", ErrInvalidConfig)
	case c.TextDisplaySpeed < 0:
		return fmt.Errorf("%w: negative text display speed", ErrInvalidConfig)
	case c.DialogueInterval < 0:
		return fmt.Errorf("%w: negative dialogue interval", ErrInvalidConfig)
	case c.TraceMode > TraceTouch:
		return fmt.Errorf("%w: unknown trace mode %d", ErrInvalidConfig, c.TraceMode)
	}
	if _, err := c.LanguageTag(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LanguageTag parses Language. An empty string yields language.Und.
func (c Config) LanguageTag() (language.Tag, error) {
	if c.Language == "" {
		return language.Und, nil
	}
	return language.Parse(c.Language)
}

// FocusConfig extracts the focus resolver settings.
func (c Config) FocusConfig() FocusConfig {
	return FocusConfig{
		TraceMode:   c.TraceMode,
		MaxDistance: c.MaxProbeDistance,
		Layers:      c.ProbeLayers,
	}
}

// GestureConfig extracts the gesture classifier settings.
func (c Config) GestureConfig() GestureConfig {
	return GestureConfig{
		Enabled:           c.EnableGestures,
		MovementThreshold: c.MovementThreshold,
		MaxTapDuration:    c.MaxTapDuration,
		MaxDistance:       c.MaxProbeDistance,
		Layers:            c.ProbeLayers,
	}
}

// DialogueConfig extracts the dialogue player settings. An unparsable
// language falls back to language.Und; call Validate first to reject it.
func (c Config) DialogueConfig() DialogueConfig {
	tag, _ := c.LanguageTag()
	return DialogueConfig{
		TextDisplaySpeed: c.TextDisplaySpeed,
		Interval:         c.DialogueInterval,
		AutoPlayNext:     c.AutoPlayNext,
		AllowSkip:        c.AllowSkip,
		Language:         tag,
	}
}

var traceModeNames = [...]string{"screen_center", "pointer", "touch"}

func (m TraceMode) String() string {
	if int(m) < len(traceModeNames) {
		return traceModeNames[m]
	}
	return "unknown"
}

// MarshalText encodes the mode by name.
func (m TraceMode) MarshalText() ([]byte, error) {
	if int(m) >= len(traceModeNames) {
		return nil, fmt.Errorf("unknown trace mode %d", m)
	}
	return []byte(traceModeNames[m]), nil
}

// UnmarshalText decodes a mode name.
func (m *TraceMode) UnmarshalText(b []byte) error {
	for i, n := range traceModeNames {
		if n == string(b) {
			*m = TraceMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown trace mode %q", b)
}
