package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/mouse"
)

// Format is a bindings file format.
type Format string

const (
	// FormatTOML is the TOML bindings format.
	FormatTOML Format = "toml"
	// FormatYAML is the YAML bindings format.
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// MergeMode controls how loaded entries combine with a base table.
type MergeMode uint8

const (
	// MergePrepend places loaded entries before the base entries, so they
	// win by position.
	MergePrepend MergeMode = iota
	// MergeReplace discards the base entries of every table the file sets.
	MergeReplace
)

// String returns "prepend" or "replace".
func (m MergeMode) String() string {
	if m == MergeReplace {
		return "replace"
	}
	return "prepend"
}

// ParseMergeMode parses "prepend" or "replace". The empty string is prepend.
func ParseMergeMode(s string) (MergeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prepend":
		return MergePrepend, nil
	case "replace":
		return MergeReplace, nil
	default:
		return MergePrepend, fmt.Errorf("unknown merge mode %q", s)
	}
}

// Bindings holds the entries decoded from one bindings file. A nil table
// means the file did not name it; an empty non-nil one means the file named
// it with no entries, which clears the base table under MergeReplace.
type Bindings struct {
	// Source is the path the bindings were read from.
	Source string
	// Merge is the merge mode requested by the file.
	Merge     MergeMode
	Shortcuts []Shortcut
	Keys      []EscapeBinding
	Mouse     []MouseShortcut
	// Selection holds the selection masks set by the file.
	Selection map[SelectionVariant]key.Mask
}

// Loader loads bindings files.
type Loader struct {
	// searchPaths are directories to search for bindings files.
	searchPaths []string
	merge       MergeMode
	logger      zerolog.Logger
}

// NewLoader creates a new bindings loader.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
		logger:      logger,
	}
}

// SetDefaultMerge sets the merge mode of files that do not name one.
func (l *Loader) SetDefaultMerge(m MergeMode) {
	l.merge = m
}

// AddSearchPath adds a directory to search for bindings files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads bindings from a TOML or YAML file.
func (l *Loader) LoadFile(path string) (*Bindings, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bindings file: %w", err)
	}

	return decode(path, data, format, l.merge)
}

// LoadReader loads bindings in the given format from a reader.
func (l *Loader) LoadReader(r io.Reader, format Format) (*Bindings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bindings: %w", err)
	}

	return decode("<reader>", data, format, l.merge)
}

// LoadAll loads every bindings file in the search paths, in lexical order
// per directory. Files that fail to load are logged and skipped.
func (l *Loader) LoadAll() []*Bindings {
	all := make([]*Bindings, 0)

	for _, dir := range l.searchPaths {
		var matches []string
		for _, pattern := range []string{"*.toml", "*.yaml", "*.yml"} {
			m, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				continue
			}
			matches = append(matches, m...)
		}
		sort.Strings(matches)

		for _, path := range matches {
			b, err := l.LoadFile(path)
			if err != nil {
				l.logger.Warn().Err(err).Str("path", path).Msg("skipping bindings file")
				continue
			}
			all = append(all, b)
		}
	}

	return all
}

// Apply layers the loaded bindings over base in order and returns the new
// tables. Each file is merged with its own merge mode, so a later file's
// prepended entries win over an earlier file's. Base is not modified; a nil
// base is treated as empty tables.
func Apply(base *Tables, files []*Bindings, opts ...Option) *Tables {
	if base == nil {
		base = &Tables{}
	}
	shortcuts := base.Shortcuts.All()
	keys := base.Keys.All()
	buttons := base.Mouse.All()
	selection := NewSelectionMasks(base.Selection.masks)

	for _, b := range files {
		if b == nil {
			continue
		}
		shortcuts = merge(shortcuts, b.Shortcuts, b.Merge)
		keys = merge(keys, b.Keys, b.Merge)
		buttons = merge(buttons, b.Mouse, b.Merge)

		if b.Selection != nil {
			if b.Merge == MergeReplace {
				selection = NewSelectionMasks(nil)
			}
			for v, mask := range b.Selection {
				selection = selection.With(v, mask)
			}
		}
	}

	return NewTables(shortcuts, keys, buttons, selection, opts...)
}

// merge combines a file's entries for one table with the base entries.
// A nil loaded slice leaves base untouched.
func merge[E any](base, loaded []E, mode MergeMode) []E {
	if loaded == nil {
		return base
	}
	if mode == MergeReplace {
		return append([]E(nil), loaded...)
	}
	out := make([]E, 0, len(loaded)+len(base))
	out = append(out, loaded...)
	return append(out, base...)
}

// bindingsFile is the on-disk structure shared by both formats.
// The table fields are pointers so a table named with no entries, like
// key = [], is told apart from one the file leaves out.
type bindingsFile struct {
	Merge     string             `toml:"merge,omitempty" yaml:"merge,omitempty"`
	Shortcuts *[]shortcutEntry   `toml:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	Keys      *[]keyEntry        `toml:"key,omitempty" yaml:"key,omitempty"`
	Mouse     *[]mouseEntry      `toml:"mouse,omitempty" yaml:"mouse,omitempty"`
	Selection *map[string]string `toml:"selection,omitempty" yaml:"selection,omitempty"`
}

type shortcutEntry struct {
	Mask   string   `toml:"mask" yaml:"mask"`
	Key    string   `toml:"key" yaml:"key"`
	Action string   `toml:"action" yaml:"action"`
	Int    *int64   `toml:"int,omitempty" yaml:"int,omitempty"`
	Float  *float64 `toml:"float,omitempty" yaml:"float,omitempty"`
	String *string  `toml:"string,omitempty" yaml:"string,omitempty"`
}

type keyEntry struct {
	Key    string `toml:"key" yaml:"key"`
	Mask   string `toml:"mask" yaml:"mask"`
	Output string `toml:"output" yaml:"output"`
	Keypad any    `toml:"keypad,omitempty" yaml:"keypad,omitempty"`
	Cursor any    `toml:"cursor,omitempty" yaml:"cursor,omitempty"`
}

type mouseEntry struct {
	Mask    string   `toml:"mask" yaml:"mask"`
	Button  string   `toml:"button" yaml:"button"`
	Action  string   `toml:"action" yaml:"action"`
	Int     *int64   `toml:"int,omitempty" yaml:"int,omitempty"`
	Float   *float64 `toml:"float,omitempty" yaml:"float,omitempty"`
	String  *string  `toml:"string,omitempty" yaml:"string,omitempty"`
	Release *bool    `toml:"release,omitempty" yaml:"release,omitempty"`
}

func decode(source string, data []byte, format Format, def MergeMode) (*Bindings, error) {
	var raw bindingsFile

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			perr := &ParseError{Path: source, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return nil, perr
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	b, err := raw.bindings(def)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}
	b.Source = source
	return b, nil
}

func (f *bindingsFile) bindings(def MergeMode) (*Bindings, error) {
	mode := def
	if f.Merge != "" {
		m, err := ParseMergeMode(f.Merge)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	b := &Bindings{Merge: mode}

	if f.Shortcuts != nil {
		b.Shortcuts = make([]Shortcut, 0, len(*f.Shortcuts))
		for i, e := range *f.Shortcuts {
			s, err := e.shortcut()
			if err != nil {
				return nil, &EntryError{Table: TableShortcuts, Index: i, Err: err}
			}
			b.Shortcuts = append(b.Shortcuts, s)
		}
	}

	if f.Keys != nil {
		b.Keys = make([]EscapeBinding, 0, len(*f.Keys))
		for i, e := range *f.Keys {
			k, err := e.binding()
			if err != nil {
				return nil, &EntryError{Table: TableKeys, Index: i, Err: err}
			}
			b.Keys = append(b.Keys, k)
		}
	}

	if f.Mouse != nil {
		b.Mouse = make([]MouseShortcut, 0, len(*f.Mouse))
		for i, e := range *f.Mouse {
			m, err := e.shortcut()
			if err != nil {
				return nil, &EntryError{Table: TableMouse, Index: i, Err: err}
			}
			b.Mouse = append(b.Mouse, m)
		}
	}

	if f.Selection != nil {
		b.Selection = make(map[SelectionVariant]key.Mask, len(*f.Selection))
		for name, spec := range *f.Selection {
			v, err := ParseSelectionVariant(name)
			if err != nil {
				return nil, &EntryError{Table: TableSelection, Index: len(b.Selection), Err: err}
			}
			mask, err := key.ParseMask(spec)
			if err != nil {
				return nil, &EntryError{Table: TableSelection, Index: int(v), Err: err}
			}
			if !mask.IsConcrete() {
				return nil, &EntryError{Table: TableSelection, Index: int(v), Err: fmt.Errorf("%w: %q", ErrInvalidSelectionMask, spec)}
			}
			b.Selection[v] = mask
		}
	}

	return b, nil
}

func (e shortcutEntry) shortcut() (Shortcut, error) {
	mask, err := key.ParseMask(e.Mask)
	if err != nil {
		return Shortcut{}, err
	}
	k, err := key.ParseKey(e.Key)
	if err != nil {
		return Shortcut{}, err
	}
	if strings.TrimSpace(e.Action) == "" {
		return Shortcut{}, ErrEmptyAction
	}
	arg, err := argument(e.Int, e.Float, e.String)
	if err != nil {
		return Shortcut{}, err
	}
	return Shortcut{Mask: mask, Key: k, Action: e.Action, Arg: arg}, nil
}

func (e keyEntry) binding() (EscapeBinding, error) {
	k, err := key.ParseKey(e.Key)
	if err != nil {
		return EscapeBinding{}, err
	}
	mask, err := key.ParseMask(e.Mask)
	if err != nil {
		return EscapeBinding{}, err
	}
	keypad, err := requirement(e.Keypad)
	if err != nil {
		return EscapeBinding{}, fmt.Errorf("keypad: %w", err)
	}
	cursor, err := requirement(e.Cursor)
	if err != nil {
		return EscapeBinding{}, fmt.Errorf("cursor: %w", err)
	}
	return EscapeBinding{Key: k, Mask: mask, Output: e.Output, Keypad: keypad, Cursor: cursor}, nil
}

func (e mouseEntry) shortcut() (MouseShortcut, error) {
	mask, err := key.ParseMask(e.Mask)
	if err != nil {
		return MouseShortcut{}, err
	}
	button, err := mouse.ParseButton(e.Button)
	if err != nil {
		return MouseShortcut{}, err
	}
	if strings.TrimSpace(e.Action) == "" {
		return MouseShortcut{}, ErrEmptyAction
	}
	arg, err := argument(e.Int, e.Float, e.String)
	if err != nil {
		return MouseShortcut{}, err
	}
	return MouseShortcut{
		Mask:   mask,
		Button: button,
		Action: e.Action,
		Arg:    arg,
		Phase:  mouse.PhaseFromRelease(e.Release),
	}, nil
}

func argument(i *int64, f *float64, s *string) (Argument, error) {
	set := 0
	for _, ok := range []bool{i != nil, f != nil, s != nil} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return Argument{}, ErrAmbiguousArgument
	}

	switch {
	case i != nil:
		return IntArg(int(*i)), nil
	case f != nil:
		return FloatArg(*f), nil
	case s != nil:
		return StringArg(*s), nil
	default:
		return Argument{}, nil
	}
}

// requirement accepts a name, a boolean or a signed integer.
func requirement(v any) (Requirement, error) {
	switch r := v.(type) {
	case nil:
		return Ignore, nil
	case string:
		return ParseRequirement(r)
	case bool:
		if r {
			return RequireOn, nil
		}
		return RequireOff, nil
	case int:
		return RequirementFromInt(r), nil
	case int64:
		return RequirementFromInt(int(r)), nil
	case uint64:
		return RequirementFromInt(int(r)), nil
	case float64:
		return RequirementFromInt(int(r)), nil
	default:
		return Ignore, fmt.Errorf("%w: %v", ErrInvalidRequirement, v)
	}
}

// Encode writes the tables as a bindings file that replaces every table.
func Encode(w io.Writer, t *Tables, format Format) error {
	raw := encodeTables(t)

	switch format {
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(raw)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(raw); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func encodeTables(t *Tables) bindingsFile {
	var (
		shortcuts = make([]shortcutEntry, 0, t.Shortcuts.Len())
		keys      = make([]keyEntry, 0, t.Keys.Len())
		buttons   = make([]mouseEntry, 0, t.Mouse.Len())
	)
	raw := bindingsFile{
		Merge:     MergeReplace.String(),
		Shortcuts: &shortcuts,
		Keys:      &keys,
		Mouse:     &buttons,
	}

	for _, s := range t.Shortcuts.All() {
		e := shortcutEntry{Mask: s.Mask.String(), Key: s.Key.String(), Action: s.Action}
		e.Int, e.Float, e.String = argumentFields(s.Arg)
		shortcuts = append(shortcuts, e)
	}

	for _, k := range t.Keys.All() {
		e := keyEntry{Key: k.Key.String(), Mask: k.Mask.String(), Output: k.Output}
		if k.Keypad != Ignore {
			e.Keypad = k.Keypad.String()
		}
		if k.Cursor != Ignore {
			e.Cursor = k.Cursor.String()
		}
		keys = append(keys, e)
	}

	for _, m := range t.Mouse.All() {
		e := mouseEntry{Mask: m.Mask.String(), Button: m.Button.String(), Action: m.Action}
		e.Int, e.Float, e.String = argumentFields(m.Arg)
		if m.Phase != mouse.PhaseBoth {
			release := m.Phase == mouse.PhaseRelease
			e.Release = &release
		}
		buttons = append(buttons, e)
	}

	if t.Selection.Len() > 0 {
		selection := make(map[string]string, t.Selection.Len())
		for _, v := range t.Selection.Variants() {
			mask, _ := t.Selection.Lookup(v)
			selection[v.String()] = mask.String()
		}
		raw.Selection = &selection
	}

	return raw
}

func argumentFields(a Argument) (*int64, *float64, *string) {
	switch a.Kind() {
	case ArgInt:
		i, _ := a.Int()
		v := int64(i)
		return &v, nil, nil
	case ArgFloat:
		f, _ := a.Float()
		return nil, &f, nil
	case ArgString:
		s, _ := a.Str()
		return nil, nil, &s
	default:
		return nil, nil, nil
	}
}
