package app

import (
	"context"

	"github.com/dshills/vtkeys/internal/config"
	"github.com/dshills/vtkeys/internal/config/watcher"
	"github.com/dshills/vtkeys/internal/input/keymap"
	"github.com/dshills/vtkeys/internal/logging"
)

// bindingsFiles returns the bindings files named by the configuration
// followed by those given in Options.
func (app *Application) bindingsFiles(settings config.Settings) []string {
	files := append([]string(nil), settings.Bindings.Files...)
	for _, f := range app.opts.BindingsFiles {
		files = append(files, config.ExpandPath(f))
	}
	return files
}

// loadTables layers every bindings file over the built-in tables.
func (app *Application) loadTables(settings config.Settings) (*keymap.Tables, error) {
	log := logging.Subsystem(app.logger, "keymap")

	l := keymap.NewLoader(log)
	l.SetDefaultMerge(settings.Bindings.Merge)

	var loaded []*keymap.Bindings
	for _, path := range app.bindingsFiles(settings) {
		b, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug().
			Str("path", path).
			Stringer("merge", b.Merge).
			Int("shortcuts", len(b.Shortcuts)).
			Int("keys", len(b.Keys)).
			Int("mouse", len(b.Mouse)).
			Msg("bindings file loaded")
		loaded = append(loaded, b)
	}

	tables := keymap.Apply(keymap.DefaultTables(), loaded, keymap.WithLogger(log))
	for _, w := range tables.Selection.Unreachable(settings.Input.ForceMouseMod) {
		log.Warn().Str("table", w.Table).Ints("indices", w.Indices).Str("reason", string(w.Reason)).Msg("selection variant unreachable")
	}
	return tables, nil
}

// Reload rereads the configuration and the bindings files and replaces the
// bindings. Other settings keep their startup values. On error the current
// bindings stay in place.
func (app *Application) Reload(ctx context.Context) error {
	app.reload.Lock()
	defer app.reload.Unlock()

	if err := app.config.Load(ctx); err != nil {
		return &ComponentError{Component: "config", Action: "reload", Err: err}
	}
	fresh, err := app.config.Settings()
	if err != nil {
		return &ComponentError{Component: "config", Action: "reload", Err: err}
	}

	app.mu.Lock()
	app.settings.Bindings = fresh.Bindings
	settings := app.settings
	app.mu.Unlock()

	tables, err := app.loadTables(settings)
	if err != nil {
		return &ComponentError{Component: "bindings", Action: "reload", Err: err}
	}
	app.handler.SetResolver(app.newResolver(tables))
	app.watchFiles()
	return nil
}

// startWatcher reloads the bindings whenever a configuration or bindings
// file changes.
func (app *Application) startWatcher() error {
	w, err := watcher.New(watcher.WithLogger(logging.Subsystem(app.logger, "watcher")))
	if err != nil {
		return err
	}
	w.OnChange(func(ev watcher.Event) {
		app.logger.Info().Str("path", ev.Path).Stringer("op", ev.Op).Msg("reloading bindings")
		err := app.Reload(context.Background())
		if err != nil {
			app.logger.Error().Err(err).Msg("reload failed, keeping current bindings")
		}
		if app.opts.OnReload != nil {
			app.opts.OnReload(app.handler.Resolver().Tables(), err)
		}
	})

	app.mu.Lock()
	app.watcher = w
	app.mu.Unlock()

	app.watchFiles()
	return nil
}

// watchFiles adds every configuration and bindings file to the watcher.
// Files already watched are skipped.
func (app *Application) watchFiles() {
	app.mu.RLock()
	w := app.watcher
	settings := app.settings
	app.mu.RUnlock()
	if w == nil {
		return
	}

	for _, path := range append(app.config.Files(), app.bindingsFiles(settings)...) {
		if err := w.Watch(path); err != nil {
			app.logger.Warn().Err(err).Str("path", path).Msg("cannot watch file")
		}
	}
}

// WatchedFiles returns the files watched for changes.
func (app *Application) WatchedFiles() []string {
	app.mu.RLock()
	w := app.watcher
	app.mu.RUnlock()
	if w == nil {
		return nil
	}
	return w.WatchedFiles()
}
