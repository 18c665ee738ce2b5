package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(WithDebounce(100 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bindings.toml")
	if err := os.WriteFile(path, []byte("merge = \"prepend\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t)
	events := make(chan Event, 10)
	w.OnChange(func(ev Event) { events <- ev })

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Two quick writes coalesce into one event.
	_ = os.WriteFile(path, []byte("merge = \"replace\"\n"), 0o644)
	_ = os.WriteFile(path, []byte("merge = \"prepend\"\n"), 0o644)

	ev := waitEvent(t, events)
	if ev.Path != path {
		t.Errorf("Event.Path = %q, want %q", ev.Path, path)
	}
	if !ev.Op.Has(OpWrite) {
		t.Errorf("Event.Op = %v, want write", ev.Op)
	}

	select {
	case extra := <-events:
		t.Errorf("unexpected second event %+v", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vtkeys.toml")

	w := newTestWatcher(t)
	events := make(chan Event, 10)
	w.OnChange(func(ev Event) { events <- ev })

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() of a missing file error = %v", err)
	}

	_ = os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o644)
	_ = os.WriteFile(path, []byte("x = 1\n"), 0o644)

	ev := waitEvent(t, events)
	if ev.Path != path {
		t.Errorf("Event.Path = %q, want %q", ev.Path, path)
	}
	if !ev.Op.Has(OpCreate) {
		t.Errorf("Event.Op = %v, want create", ev.Op)
	}
}

func TestWatcherRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vtkeys.yaml")
	_ = os.WriteFile(path, []byte("a: 1\n"), 0o644)

	w := newTestWatcher(t)
	events := make(chan Event, 10)
	w.OnChange(func(ev Event) { events <- ev })
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Atomic save: write a temp file and rename it over the original.
	tmp := filepath.Join(dir, ".vtkeys.yaml.swp")
	_ = os.WriteFile(tmp, []byte("a: 2\n"), 0o644)
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	if ev := waitEvent(t, events); ev.Path != path {
		t.Errorf("Event.Path = %q, want %q", ev.Path, path)
	}
}

func TestWatcherUnwatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")

	w := newTestWatcher(t)
	_ = w.Watch(a)
	_ = w.Watch(b)
	_ = w.Watch(a)

	if got := w.WatchedFiles(); !reflect.DeepEqual(got, []string{a, b}) {
		t.Errorf("WatchedFiles() = %v", got)
	}

	if err := w.Unwatch(a); err != nil {
		t.Fatalf("Unwatch() error = %v", err)
	}
	if err := w.Unwatch(a); !errors.Is(err, ErrNotWatching) {
		t.Errorf("second Unwatch() error = %v, want ErrNotWatching", err)
	}
	if got := w.WatchedFiles(); !reflect.DeepEqual(got, []string{b}) {
		t.Errorf("WatchedFiles() = %v", got)
	}
}

func TestWatcherMissingDir(t *testing.T) {
	w := newTestWatcher(t)
	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "a.toml")); err == nil {
		t.Error("Watch() in a missing directory should fail")
	}
}

func TestWatcherClosed(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Watch("a.toml"); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Watch() after Close error = %v, want ErrWatcherClosed", err)
	}
}

func TestHandlerPanicRecovered(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.toml")

	w := newTestWatcher(t)
	events := make(chan Event, 1)
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(func(ev Event) { events <- ev })
	_ = w.Watch(path)

	_ = os.WriteFile(path, []byte("x = 1\n"), 0o644)
	waitEvent(t, events)
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Op
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write | fsnotify.Chmod, OpWrite},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Rename, OpRename},
		{fsnotify.Chmod, 0},
	}
	for _, tt := range tests {
		if got := convertOp(tt.in); got != tt.want {
			t.Errorf("convertOp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOpString(t *testing.T) {
	if got := (OpCreate | OpWrite).String(); got != "create|write" {
		t.Errorf("String() = %q, want create|write", got)
	}
	if got := Op(0).String(); got != "none" {
		t.Errorf("String() = %q, want none", got)
	}
}
