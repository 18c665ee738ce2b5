package loader

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultEnvPrefix prefixes every environment variable the loader reads.
const DefaultEnvPrefix = "VTKEYS_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "VTKEYS_")
	mapping map[string]string // Env var -> config path
	lists   map[string]bool   // Config paths holding path lists
	lookup  func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "VTKEYS_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lists:   map[string]bool{"bindings.files": true},
		lookup:  os.Environ,
	}
}

// defaultEnvMapping returns the short variable names.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":       "logging.level",
		prefix + "LOG_FORMAT":      "logging.format",
		prefix + "IGNORE_MOD":      "input.ignore_mod",
		prefix + "FORCE_MOUSE_MOD": "input.force_mouse_mod",
		prefix + "BINDINGS":        "bindings.files",
		prefix + "MERGE":           "bindings.merge",
		prefix + "FONT_SIZE":       "terminal.font_size",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads environment variables and returns a configuration map.
// Mapped variables use their configured path; other prefixed variables
// map SECTION_SETTING_NAME to section.setting_name.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.lookup() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
			if path == "" {
				continue
			}
		}

		if l.lists[path] {
			SetByPath(config, path, splitList(value))
			continue
		}
		SetByPath(config, path, ParseValue(value))
	}

	return config, nil
}

// envToPath converts VTKEYS_INPUT_DOUBLE_CLICK to input.double_click.
// Names without a setting part yield "".
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok || section == "" || setting == "" {
		return ""
	}
	return section + "." + setting
}

// splitList splits an OS path list into elements, dropping empty ones.
func splitList(s string) []any {
	var out []any
	for _, p := range filepath.SplitList(s) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseValue attempts to parse the string value into an appropriate type.
// Durations stay strings; the config section parses them.
func ParseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only values with a decimal point, so integers stay integers.
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}
