package config

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"
	"time"

	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/keymap"
)

type memFS struct {
	fstest.MapFS
}

func (m memFS) ReadFile(path string) ([]byte, error) {
	return m.MapFS.ReadFile(path)
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	return m.MapFS.Stat(path)
}

const testPrefix = "VTKEYS_TEST_"

func TestDefaults(t *testing.T) {
	c := New(WithEnvPrefix(""))

	got, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	want := Default()
	want.Bindings.Files = []string{}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadLayers(t *testing.T) {
	fsys := memFS{fstest.MapFS{
		"base.toml": {Data: []byte(`
[logging]
level = "debug"

[input]
force_mouse_mod = "option"
double_click = "250ms"

[terminal]
font_size = 14
`)},
		"override.yaml": {Data: []byte(`
logging:
  level: warn
bindings:
  files: [one.toml, two.yaml]
  merge: replace
`)},
	}}
	t.Setenv(testPrefix+"IGNORE_MOD", "command")
	t.Setenv(testPrefix+"TERMINAL_CURSOR_APP", "true")

	c := New(
		WithFiles("base.toml", "override.yaml", "missing.toml"),
		WithFileSystem(fsys),
		WithEnvPrefix(testPrefix),
	)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}

	if s.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", s.Logging.Level)
	}
	if s.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", s.Logging.Format)
	}
	if s.Input.ForceMouseMod != key.ModOption {
		t.Errorf("ForceMouseMod = %v, want Option", s.Input.ForceMouseMod)
	}
	if s.Input.IgnoreMod != key.ModCommand {
		t.Errorf("IgnoreMod = %v, want Command", s.Input.IgnoreMod)
	}
	if s.Input.DoubleClick != 250*time.Millisecond {
		t.Errorf("DoubleClick = %v, want 250ms", s.Input.DoubleClick)
	}
	if s.Terminal.FontSize != 14 {
		t.Errorf("FontSize = %v, want 14", s.Terminal.FontSize)
	}
	if !s.Terminal.CursorApp {
		t.Error("CursorApp = false, want true from the environment")
	}
	if !reflect.DeepEqual(s.Bindings.Files, []string{"one.toml", "two.yaml"}) {
		t.Errorf("Bindings.Files = %v", s.Bindings.Files)
	}
	if s.Bindings.Merge != keymap.MergeReplace {
		t.Errorf("Bindings.Merge = %v, want replace", s.Bindings.Merge)
	}

	src, path, ok := c.SourceOf("logging.level")
	if !ok || src != SourceFile || path != "override.yaml" {
		t.Errorf("SourceOf(logging.level) = %v, %q, %v", src, path, ok)
	}
	if src, _, _ := c.SourceOf("input.ignore_mod"); src != SourceEnv {
		t.Errorf("SourceOf(input.ignore_mod) = %v, want environment", src)
	}
	if src, _, _ := c.SourceOf("logging.format"); src != SourceBuiltin {
		t.Errorf("SourceOf(logging.format) = %v, want builtin", src)
	}
}

func TestLoadParseError(t *testing.T) {
	fsys := memFS{fstest.MapFS{"bad.toml": {Data: []byte("level = \n")}}}
	c := New(WithFiles("bad.toml"), WithFileSystem(fsys), WithEnvPrefix(""))

	if err := c.Load(context.Background()); err == nil {
		t.Fatal("Load() should fail on a malformed file")
	}
}

func TestSetSurvivesReload(t *testing.T) {
	fsys := memFS{fstest.MapFS{"a.toml": {Data: []byte("[logging]\nlevel = \"debug\"\n")}}}
	c := New(WithFiles("a.toml"), WithFileSystem(fsys), WithEnvPrefix(""))

	if err := c.Set("logging.level", "error"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v, _ := c.GetString("logging.level"); v != "error" {
		t.Errorf("logging.level = %q, want the override", v)
	}
	if src, _, _ := c.SourceOf("logging.level"); src != SourceArgs {
		t.Errorf("SourceOf() = %v, want arguments", src)
	}
	if err := c.Set("", 1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Set(\"\") error = %v, want ErrInvalidPath", err)
	}
}

func TestGetters(t *testing.T) {
	c := New(WithEnvPrefix(""))
	_ = c.Set("x.str", "s")
	_ = c.Set("x.int", int64(3))
	_ = c.Set("x.list", []any{"a", 1})

	if _, err := c.GetString("x.missing"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("GetString(missing) error = %v, want ErrSettingNotFound", err)
	}
	if _, err := c.GetBool("x.str"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetBool(string) error = %v, want ErrTypeMismatch", err)
	}
	if v, err := c.GetFloat("x.int"); err != nil || v != 3 {
		t.Errorf("GetFloat(int) = %v, %v, want 3", v, err)
	}
	if v, err := c.GetStringSlice("x.str"); err != nil || !reflect.DeepEqual(v, []string{"s"}) {
		t.Errorf("GetStringSlice(string) = %v, %v", v, err)
	}
	if _, err := c.GetStringSlice("x.list"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetStringSlice(mixed) error = %v, want ErrTypeMismatch", err)
	}
	if _, err := c.GetDuration("x.str"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("GetDuration(bad) error = %v, want ErrValidationFailed", err)
	}
}

func TestSettingsErrors(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value any
	}{
		{"unknown modifier", "input.ignore_mod", "hyper"},
		{"any modifier", "input.force_mouse_mod", "any"},
		{"bad merge", "bindings.merge", "append"},
		{"bad level", "logging.level", "loud"},
		{"bad format", "logging.format", "xml"},
		{"tiny font", "terminal.font_size", 0.5},
		{"wrong type", "terminal.osc52", "sometimes"},
		{"short triple", "input.triple_click", "10ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithEnvPrefix(""))
			_ = c.Set(tt.path, tt.value)

			if _, err := c.Settings(); err == nil {
				t.Errorf("Settings() with %s = %v should fail", tt.path, tt.value)
			}
		})
	}
}

func TestSettingsKeepsDefaultOnDecodeError(t *testing.T) {
	c := New(WithEnvPrefix(""))
	_ = c.Set("input.force_mouse_mod", "hyper")

	s, err := c.Settings()
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("Settings() error = %v, want ErrValidationFailed", err)
	}
	if s.Input.ForceMouseMod != keymap.DefaultForceMouseMod {
		t.Errorf("ForceMouseMod = %v, want the default", s.Input.ForceMouseMod)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/test")

	if got := ExpandPath("~/bindings.toml"); got != filepath.Join("/home/test", "bindings.toml") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/etc/vtkeys.toml"); got != "/etc/vtkeys.toml" {
		t.Errorf("ExpandPath() = %q, want unchanged", got)
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		s    Source
		want string
	}{
		{SourceBuiltin, "builtin"},
		{SourceFile, "file"},
		{SourceEnv, "environment"},
		{SourceArgs, "arguments"},
		{Source(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Source(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
