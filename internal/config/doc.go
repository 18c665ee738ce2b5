// Package config provides the layered vtkeys configuration.
//
// Settings come from four layers, lowest priority first:
//
//   - builtin defaults
//   - configuration files, TOML or YAML, in the order given
//   - environment variables prefixed with VTKEYS_
//   - command-line overrides applied with Set
//
// Each layer is a nested map; the merged map is read through typed
// getters or decoded at once with Settings.
//
//	cfg := config.New(config.WithFiles("~/.config/vtkeys/vtkeys.toml"))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	settings, err := cfg.Settings()
//
// A configuration file looks like:
//
//	[logging]
//	level = "debug"
//
//	[input]
//	ignore_mod = "none"
//	force_mouse_mod = "shift"
//	double_click = "300ms"
//
//	[bindings]
//	files = ["~/.config/vtkeys/bindings.toml"]
//	merge = "prepend"
//
//	[terminal]
//	font_size = 12.0
//	osc52 = true
//
// Environment variables use short names for common settings
// (VTKEYS_LOG_LEVEL, VTKEYS_IGNORE_MOD, VTKEYS_FORCE_MOUSE_MOD,
// VTKEYS_BINDINGS, VTKEYS_MERGE, VTKEYS_FONT_SIZE); any other
// VTKEYS_SECTION_SETTING variable sets section.setting.
package config
