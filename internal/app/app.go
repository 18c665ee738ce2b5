// Package app wires configuration, bindings, the resolver and the action
// handlers into a running input pipeline and manages its lifecycle.
package app

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/vtkeys/internal/config"
	"github.com/dshills/vtkeys/internal/config/watcher"
	"github.com/dshills/vtkeys/internal/input"
	"github.com/dshills/vtkeys/internal/input/action"
	"github.com/dshills/vtkeys/internal/input/keymap"
	"github.com/dshills/vtkeys/internal/input/mode"
	"github.com/dshills/vtkeys/internal/input/resolve"
	"github.com/dshills/vtkeys/internal/logging"
)

// Options configures the application.
type Options struct {
	// ConfigFiles are configuration files, later ones overriding earlier.
	ConfigFiles []string

	// BindingsFiles are applied after the files named by the configuration.
	BindingsFiles []string

	// Overrides are settings given on the command line, keyed by
	// dot-separated path.
	Overrides map[string]any

	// EnvPrefix overrides the environment variable prefix.
	EnvPrefix string

	// NoEnv disables the environment layer.
	NoEnv bool

	// LogOutput receives log output. Defaults to stderr.
	LogOutput io.Writer

	// TTY receives the bytes meant for the controlled process. Defaults
	// to discarding them.
	TTY io.Writer

	// Host is the hosting terminal, used for OSC 52 copies. Defaults to
	// stdout.
	Host io.Writer

	// Clipboard replaces the system clipboard.
	Clipboard action.Clipboard

	// Selection returns the current selection text.
	Selection action.SelectionSource

	// Watch reloads bindings when a configuration or bindings file
	// changes.
	Watch bool

	// Observer is called with the outcome of every terminal event.
	Observer func(Outcome)

	// Hooks are registered on the input handler in order, ahead of the
	// debug logging hook.
	Hooks []input.Hook

	// OnReload is called after each reload triggered by the watcher, with
	// the tables in effect and the reload error, if any.
	OnReload func(tables *keymap.Tables, err error)
}

// Application owns the input pipeline.
type Application struct {
	mu sync.RWMutex
	id string

	config   *config.Config
	settings config.Settings
	logger   zerolog.Logger

	flags     *mode.Flags
	zoom      *action.Zoom
	registry  *action.Registry
	handler   *input.Handler
	watcher   *watcher.Watcher
	bracketed atomic.Bool

	reload  sync.Mutex
	running atomic.Bool
	done    chan struct{}
	stop    sync.Once

	opts Options
}

// New creates an Application and loads its configuration and bindings.
func New(opts Options) (*Application, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.TTY == nil {
		opts.TTY = io.Discard
	}
	if opts.Host == nil {
		opts.Host = os.Stdout
	}

	app := &Application{
		id:     uuid.New().String(),
		opts:   opts,
		done:   make(chan struct{}),
		logger: zerolog.Nop(),
	}
	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration
	cfgOpts := []config.Option{config.WithFiles(app.opts.ConfigFiles...)}
	switch {
	case app.opts.NoEnv:
		cfgOpts = append(cfgOpts, config.WithEnvPrefix(""))
	case app.opts.EnvPrefix != "":
		cfgOpts = append(cfgOpts, config.WithEnvPrefix(app.opts.EnvPrefix))
	}
	app.config = config.New(cfgOpts...)
	for path, value := range app.opts.Overrides {
		if err := app.config.Set(path, value); err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}
	if err := app.config.Load(context.Background()); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	settings, err := app.config.Settings()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.settings = settings

	// 2. Logging
	logger, err := logging.New(app.opts.LogOutput, settings.Logging.Level, settings.Logging.Format)
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.logger = logger.With().Str("session", app.id).Logger()

	// 3. Terminal state and action handlers
	app.flags = mode.NewFlags()
	app.flags.Set(mode.FlagKeypad, settings.Terminal.KeypadApp)
	app.flags.Set(mode.FlagCursor, settings.Terminal.CursorApp)

	zoomLog := logging.Subsystem(app.logger, "zoom")
	app.zoom = action.NewZoom(settings.Terminal.FontSize, func(size float64) {
		zoomLog.Info().Float64("size", size).Msg("font size changed")
	})

	app.registry = action.NewRegistry(logging.Subsystem(app.logger, "action"))
	action.RegisterDefaults(app.registry, action.Env{
		TTY:       app.opts.TTY,
		Clipboard: app.clipboard(),
		Selection: app.opts.Selection,
		Bracketed: app.bracketed.Load,
		Zoom:      app.zoom,
		Flags:     app.flags,
	})

	// 4. Bindings and resolver
	tables, err := app.loadTables(settings)
	if err != nil {
		return &InitError{Component: "bindings", Err: err}
	}
	app.handler = input.NewHandler(
		input.Config{
			IgnoreMod:       settings.Input.IgnoreMod,
			ForceMouseMod:   settings.Input.ForceMouseMod,
			DoubleClickTime: settings.Input.DoubleClick,
			TripleClickTime: settings.Input.TripleClick,
		},
		app.newResolver(tables),
		input.WithState(app.flags),
		input.WithRegistry(app.registry),
		input.WithTTY(app.opts.TTY),
		input.WithLogger(logging.Subsystem(app.logger, "input")),
	)
	hooks := app.handler.Hooks()
	for _, h := range app.opts.Hooks {
		hooks.Register(h)
	}
	if app.logger.GetLevel() <= zerolog.DebugLevel {
		hooks.RegisterWithOptions(input.LoggingHook{
			Logger: logging.Subsystem(app.logger, "input"),
		}, "log", input.HookPriorityLowest)
	}

	// 5. Watcher
	if app.opts.Watch {
		if err := app.startWatcher(); err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
	}

	app.logger.Debug().
		Strs("config", app.config.Files()).
		Strs("bindings", app.bindingsFiles(settings)).
		Msg("application initialized")
	return nil
}

// clipboard returns the configured clipboard. With OSC 52 enabled, copies
// fall back to the hosting terminal when the system clipboard fails.
func (app *Application) clipboard() action.Clipboard {
	if app.opts.Clipboard != nil {
		return app.opts.Clipboard
	}
	if !app.settings.Terminal.OSC52 {
		return action.SystemClipboard{}
	}
	return action.FallbackClipboard{
		action.SystemClipboard{},
		action.OSC52Clipboard{
			W:    app.opts.Host,
			Term: os.Getenv("TERM"),
			Tmux: os.Getenv("TMUX") != "",
		},
	}
}

func (app *Application) newResolver(tables *keymap.Tables) *resolve.Resolver {
	return resolve.New(tables, resolve.WithLogger(logging.Subsystem(app.logger, "resolve")))
}

// Shutdown stops the event loop and the watcher. It is safe to call more
// than once.
func (app *Application) Shutdown() {
	app.stop.Do(func() {
		close(app.done)

		app.mu.Lock()
		w := app.watcher
		app.watcher = nil
		app.mu.Unlock()

		if w != nil {
			if err := w.Close(); err != nil {
				app.logger.Warn().Err(err).Msg("closing watcher")
			}
		}
	})
}

// ID identifies this application instance in log output.
func (app *Application) ID() string {
	return app.id
}

// IsRunning returns true while Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Settings returns the current settings. Reload updates only the
// bindings section.
func (app *Application) Settings() config.Settings {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.settings
}

// Handler returns the input handler.
func (app *Application) Handler() *input.Handler {
	return app.handler
}

// Flags returns the terminal mode flags. The VT interpreter sets them.
func (app *Application) Flags() *mode.Flags {
	return app.flags
}

// Zoom returns the font size tracker.
func (app *Application) Zoom() *action.Zoom {
	return app.zoom
}

// Registry returns the action registry.
func (app *Application) Registry() *action.Registry {
	return app.registry
}

// SetBracketedPaste records whether the controlled process enabled
// bracketed paste mode.
func (app *Application) SetBracketedPaste(on bool) {
	app.bracketed.Store(on)
}

// Logger returns the application logger.
func (app *Application) Logger() zerolog.Logger {
	return app.logger
}
