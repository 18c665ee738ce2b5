package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
)

// mapFS adapts fstest.MapFS to FileSystem.
type mapFS struct {
	fstest.MapFS
}

func (m mapFS) ReadFile(path string) ([]byte, error) {
	return m.MapFS.ReadFile(path)
}

func (m mapFS) Stat(path string) (fs.FileInfo, error) {
	return m.MapFS.Stat(path)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"vtkeys.toml", FormatTOML, false},
		{"vtkeys.YAML", FormatYAML, false},
		{"vtkeys.yml", FormatYAML, false},
		{"vtkeys.json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatOf() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileLoaderLoad(t *testing.T) {
	fsys := mapFS{fstest.MapFS{
		"a.toml":   {Data: []byte("[logging]\nlevel = \"debug\"\n\n[input]\nforce_mouse_mod = \"option\"\n")},
		"b.yaml":   {Data: []byte("logging:\n  format: json\nbindings:\n  files: [x.toml, y.yaml]\n")},
		"bad.toml": {Data: []byte("[logging\n")},
	}}
	l := NewFileLoaderWithFS(fsys)

	got, err := l.Load("a.toml")
	if err != nil {
		t.Fatalf("Load(a.toml) error = %v", err)
	}
	if v, _ := GetByPath(got, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}
	if v, _ := GetByPath(got, "input.force_mouse_mod"); v != "option" {
		t.Errorf("input.force_mouse_mod = %v, want option", v)
	}

	got, err = l.Load("b.yaml")
	if err != nil {
		t.Fatalf("Load(b.yaml) error = %v", err)
	}
	if v, _ := GetByPath(got, "bindings.files"); !reflect.DeepEqual(v, []any{"x.toml", "y.yaml"}) {
		t.Errorf("bindings.files = %#v", v)
	}

	got, err = l.Load("missing.toml")
	if err != nil || got != nil {
		t.Errorf("Load(missing) = %v, %v, want nil, nil", got, err)
	}

	_, err = l.Load("bad.toml")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load(bad) error = %v, want ParseError", err)
	}
	if perr.Line != 1 {
		t.Errorf("ParseError.Line = %d, want 1", perr.Line)
	}

	if _, err := l.Load("a.ini"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(a.ini) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadReaderEmpty(t *testing.T) {
	got, err := NewFileLoader().LoadReader(strings.NewReader("  \n"), FormatYAML)
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadReader() = %v, want empty", got)
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a", Line: 2, Column: 3, Message: "m"}, "parse error in a at line 2, column 3: m"},
		{ParseError{Path: "a", Line: 2, Message: "m"}, "parse error in a at line 2: m"},
		{ParseError{Path: "a", Message: "m"}, "parse error in a: m"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"logging": map[string]any{"level": "info", "format": "console"},
		"input":   map[string]any{"ignore_mod": "none"},
	}
	src := map[string]any{
		"logging":  map[string]any{"level": "debug"},
		"bindings": map[string]any{"merge": "replace"},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"logging":  map[string]any{"level": "debug", "format": "console"},
		"input":    map[string]any{"ignore_mod": "none"},
		"bindings": map[string]any{"merge": "replace"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge() = %v, want %v", got, want)
	}

	// The merged map must not alias src.
	SetByPath(got, "bindings.merge", "prepend")
	if v, _ := GetByPath(src, "bindings.merge"); v != "replace" {
		t.Errorf("src changed through merged map: %v", v)
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{"a": map[string]any{"b": []any{"x", map[string]any{"c": 1}}}}
	dst := Clone(src)
	if !reflect.DeepEqual(src, dst) {
		t.Fatalf("Clone() = %v, want %v", dst, src)
	}

	SetByPath(dst, "a.d", true)
	if _, ok := GetByPath(src, "a.d"); ok {
		t.Error("Clone() shares nested maps")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestGetSetByPath(t *testing.T) {
	data := map[string]any{}
	SetByPath(data, "a.b.c", 1)
	SetByPath(data, "a.x", "y")

	if v, ok := GetByPath(data, "a.b.c"); !ok || v != 1 {
		t.Errorf("GetByPath(a.b.c) = %v, %v", v, ok)
	}
	if _, ok := GetByPath(data, "a.x.z"); ok {
		t.Error("GetByPath through a scalar should fail")
	}
	if _, ok := GetByPath(data, "missing"); ok {
		t.Error("GetByPath(missing) should fail")
	}
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.lookup = func() []string {
		return []string{
			"VTKEYS_LOG_LEVEL=debug",
			"VTKEYS_FORCE_MOUSE_MOD=option",
			"VTKEYS_BINDINGS=/a.toml::/b.yaml",
			"VTKEYS_FONT_SIZE=13.5",
			"VTKEYS_INPUT_DOUBLE_CLICK=250ms",
			"VTKEYS_TERMINAL_OSC52=off",
			"VTKEYS_CONFIG=/etc/vtkeys.toml",
			"HOME=/root",
		}
	}

	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]any{
		"logging":  map[string]any{"level": "debug"},
		"input":    map[string]any{"force_mouse_mod": "option", "double_click": "250ms"},
		"bindings": map[string]any{"files": []any{"/a.toml", "/b.yaml"}},
		"terminal": map[string]any{"font_size": 13.5, "osc52": false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"yes", true},
		{"OFF", false},
		{"42", int64(42)},
		{"1", int64(1)},
		{"1.5", 1.5},
		{"300ms", "300ms"},
		{"shift+control", "shift+control"},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.in); got != tt.want {
			t.Errorf("ParseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
