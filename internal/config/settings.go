package config

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/keymap"
	"github.com/dshills/vtkeys/internal/input/mouse"
)

// Settings is the typed view of the merged configuration.
type Settings struct {
	Logging  LoggingConfig
	Input    InputConfig
	Bindings BindingsConfig
	Terminal TerminalConfig
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is a zerolog level name.
	Level string
	// Format is "console" or "json".
	Format string
}

// InputConfig contains modifier and click settings.
type InputConfig struct {
	// IgnoreMod is removed from key modifiers before matching.
	IgnoreMod key.Modifier
	// ForceMouseMod forces a selection when held with the primary button.
	ForceMouseMod key.Modifier
	// DoubleClick is the double click timeout.
	DoubleClick time.Duration
	// TripleClick is the triple click timeout.
	TripleClick time.Duration
}

// BindingsConfig lists the bindings files applied over the defaults.
type BindingsConfig struct {
	Files []string
	// Merge is the default merge mode for files that do not set one.
	Merge keymap.MergeMode
}

// TerminalConfig contains the initial terminal state.
type TerminalConfig struct {
	FontSize  float64
	KeypadApp bool
	CursorApp bool
	// OSC52 enables copying through the hosting terminal when the system
	// clipboard is unavailable.
	OSC52 bool
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Input: InputConfig{
			IgnoreMod:     keymap.DefaultIgnoreMod,
			ForceMouseMod: keymap.DefaultForceMouseMod,
			DoubleClick:   mouse.DefaultDoubleClickTimeout,
			TripleClick:   mouse.DefaultTripleClickTimeout,
		},
		Bindings: BindingsConfig{Merge: keymap.MergePrepend},
		Terminal: TerminalConfig{FontSize: 12, OSC52: true},
	}
}

// Settings decodes the merged configuration. Every bad setting is
// reported. A setting that fails to decode keeps its default; one that
// decodes but fails Validate keeps the value read.
func (c *Config) Settings() (Settings, error) {
	s := Default()
	var errs []error
	collect := func(err error) {
		if err != nil && !errors.Is(err, ErrSettingNotFound) {
			errs = append(errs, err)
		}
	}

	if v, err := c.GetString("logging.level"); err == nil {
		s.Logging.Level = v
	} else {
		collect(err)
	}
	if v, err := c.GetString("logging.format"); err == nil {
		s.Logging.Format = v
	} else {
		collect(err)
	}

	if v, err := c.modifier("input.ignore_mod"); err == nil {
		s.Input.IgnoreMod = v
	} else {
		collect(err)
	}
	if v, err := c.modifier("input.force_mouse_mod"); err == nil {
		s.Input.ForceMouseMod = v
	} else {
		collect(err)
	}
	if v, err := c.GetDuration("input.double_click"); err == nil {
		s.Input.DoubleClick = v
	} else {
		collect(err)
	}
	if v, err := c.GetDuration("input.triple_click"); err == nil {
		s.Input.TripleClick = v
	} else {
		collect(err)
	}

	if v, err := c.GetStringSlice("bindings.files"); err == nil {
		for i := range v {
			v[i] = ExpandPath(v[i])
		}
		s.Bindings.Files = v
	} else {
		collect(err)
	}
	if v, err := c.GetString("bindings.merge"); err == nil {
		mode, perr := keymap.ParseMergeMode(v)
		if perr != nil {
			collect(&ValidationError{Path: "bindings.merge", Message: "must be prepend or replace", Value: v})
		} else {
			s.Bindings.Merge = mode
		}
	} else {
		collect(err)
	}

	if v, err := c.GetFloat("terminal.font_size"); err == nil {
		s.Terminal.FontSize = v
	} else {
		collect(err)
	}
	if v, err := c.GetBool("terminal.keypad_app"); err == nil {
		s.Terminal.KeypadApp = v
	} else {
		collect(err)
	}
	if v, err := c.GetBool("terminal.cursor_app"); err == nil {
		s.Terminal.CursorApp = v
	} else {
		collect(err)
	}
	if v, err := c.GetBool("terminal.osc52"); err == nil {
		s.Terminal.OSC52 = v
	} else {
		collect(err)
	}

	collect(s.Validate())
	return s, errors.Join(errs...)
}

// modifier reads a modifier set such as "shift+control". "none" is the
// empty set; "any" is rejected.
func (c *Config) modifier(path string) (key.Modifier, error) {
	v, err := c.GetString(path)
	if err != nil {
		return key.ModNone, err
	}
	mask, err := key.ParseMask(v)
	if err != nil {
		return key.ModNone, &ValidationError{Path: path, Message: err.Error(), Value: v}
	}
	if mask.IsAny() {
		return key.ModNone, &ValidationError{Path: path, Message: "must name modifiers, not any", Value: v}
	}
	return mask.Modifiers(), nil
}

// Validate checks values that decode but make no sense.
func (s Settings) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(strings.ToLower(s.Logging.Level)); err != nil {
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "unknown level", Value: s.Logging.Level})
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, &ValidationError{Path: "logging.format", Message: "must be console or json", Value: s.Logging.Format})
	}

	if s.Input.DoubleClick <= 0 {
		errs = append(errs, &ValidationError{Path: "input.double_click", Message: "must be positive", Value: s.Input.DoubleClick})
	}
	if s.Input.TripleClick < s.Input.DoubleClick {
		errs = append(errs, &ValidationError{Path: "input.triple_click", Message: "must not be shorter than double_click", Value: s.Input.TripleClick})
	}

	if s.Terminal.FontSize < 1 {
		errs = append(errs, &ValidationError{Path: "terminal.font_size", Message: "must be at least 1", Value: s.Terminal.FontSize})
	}

	return errors.Join(errs...)
}
