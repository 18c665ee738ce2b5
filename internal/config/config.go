package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/vtkeys/internal/config/loader"
)

// Config is the layered vtkeys configuration: built-in defaults, then
// configuration files in order, then environment variables, then
// command-line overrides.
type Config struct {
	mu sync.RWMutex

	files      []string
	envPrefix  string
	fileLoader *loader.FileLoader
	logger     zerolog.Logger

	layers stack
	merged map[string]any
}

// Option configures a Config instance.
type Option func(*Config)

// WithFiles adds configuration files. Later files override earlier ones.
func WithFiles(paths ...string) Option {
	return func(c *Config) {
		for _, p := range paths {
			c.files = append(c.files, ExpandPath(p))
		}
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithFileSystem reads configuration files from fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fileLoader = loader.NewFileLoaderWithFS(fsys)
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

// New creates a Config holding only the built-in defaults. Call Load to
// read files and the environment.
func New(opts ...Option) *Config {
	c := &Config{
		envPrefix:  loader.DefaultEnvPrefix,
		fileLoader: loader.NewFileLoader(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.layers.add(&layer{
		name:     "defaults",
		source:   SourceBuiltin,
		priority: PriorityBuiltin,
		data:     defaultConfig(),
	})
	c.merged = c.layers.merge()
	return c
}

// Load reads every configuration file and the environment. Missing files
// are skipped. Values set with Set survive a reload.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var layers stack
	for _, l := range c.layers {
		if l.source == SourceBuiltin || l.source == SourceArgs {
			layers.add(l)
		}
	}

	for _, path := range c.files {
		data, err := c.fileLoader.Load(path)
		if err != nil {
			return err
		}
		if data == nil {
			c.logger.Debug().Str("path", path).Msg("config file not found")
			continue
		}
		layers.add(&layer{
			name:     "file:" + path,
			source:   SourceFile,
			priority: PriorityFile,
			path:     path,
			data:     data,
		})
		c.logger.Debug().Str("path", path).Msg("config file loaded")
	}

	if c.envPrefix != "" {
		data, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		if len(data) > 0 {
			layers.add(&layer{
				name:     "environment",
				source:   SourceEnv,
				priority: PriorityEnv,
				data:     data,
			})
		}
	}

	c.layers = layers
	c.merged = layers.merge()
	return nil
}

// Files returns the configuration files in load order.
func (c *Config) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.files...)
}

// Set overrides a value at the highest priority, as a command-line flag
// does.
func (c *Config) Set(path string, value any) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	args := c.layers.find("arguments")
	if args == nil {
		args = &layer{
			name:     "arguments",
			source:   SourceArgs,
			priority: PriorityArgs,
			data:     make(map[string]any),
		}
		c.layers.add(args)
	}
	loader.SetByPath(args.data, path, value)
	c.merged = c.layers.merge()
	return nil
}

// Get returns the effective value at a dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.GetByPath(c.merged, path)
}

// SourceOf returns the source of the effective value at path and the
// file it came from, if any.
func (c *Config) SourceOf(path string) (Source, string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l := c.layers.which(path)
	if l == nil {
		return 0, "", false
	}
	return l.source, l.path, true
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// GetString returns a string setting.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetBool returns a boolean setting.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetFloat returns a numeric setting as a float.
func (c *Config) GetFloat(path string) (float64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, &TypeError{Path: path, Expected: "number", Actual: typeName(v)}
	}
}

// GetDuration returns a duration setting written like "300ms".
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, &ValidationError{Path: path, Message: "invalid duration", Value: d}
		}
		return parsed, nil
	default:
		return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
	}
}

// GetStringSlice returns a list of strings. A single string is a list of
// one.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...), nil
	case string:
		return []string{s}, nil
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: "[]" + typeName(item)}
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// defaultConfig returns the built-in defaults layer.
func defaultConfig() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level":  "info",
			"format": "console",
		},
		"input": map[string]any{
			"ignore_mod":      "none",
			"force_mouse_mod": "shift",
			"double_click":    "300ms",
			"triple_click":    "600ms",
		},
		"bindings": map[string]any{
			"files": []any{},
			"merge": "prepend",
		},
		"terminal": map[string]any{
			"font_size":  12.0,
			"keypad_app": false,
			"cursor_app": false,
			"osc52":      true,
		},
	}
}

// typeName returns a short type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64:
		return "float"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
