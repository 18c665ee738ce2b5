package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dshills/vtkeys/internal/app"
	"github.com/dshills/vtkeys/internal/backend"
	"github.com/dshills/vtkeys/internal/input"
	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/keymap"
	"github.com/dshills/vtkeys/internal/input/mouse"
	"github.com/dshills/vtkeys/internal/input/resolve"
)

// lint returns the defects that make entries unreachable.
func lint(tables *keymap.Tables, force key.Modifier) []keymap.Warning {
	problems := tables.Validate()
	return append(problems, tables.Selection.Unreachable(force)...)
}

func runLint(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("lint", stderr)
	var common commonFlags
	common.register(fs)
	watch := fs.Bool("watch", false, "Check again whenever a file changes")
	overrides := fs.Bool("overrides", false, "Also list key bindings hidden by shortcuts")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	opts, err := common.options(fs.Args(), io.Discard)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	var (
		mu    sync.Mutex
		force key.Modifier
	)
	report := func(tables *keymap.Tables) int {
		problems := lint(tables, force)
		for _, w := range problems {
			fmt.Fprintln(stdout, w)
		}
		if *overrides {
			for _, w := range tables.Overrides() {
				fmt.Fprintf(stdout, "note: %s\n", w)
			}
		}
		if len(problems) == 0 {
			fmt.Fprintln(stdout, "no problems found")
			return exitOK
		}
		fmt.Fprintf(stdout, "%d problem(s) found\n", len(problems))
		return exitProblems
	}

	if *watch {
		opts.Watch = true
		opts.OnReload = func(tables *keymap.Tables, err error) {
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(stdout, "Error: %v\n", err)
				return
			}
			report(tables)
		}
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer application.Shutdown()

	mu.Lock()
	force = application.Settings().Input.ForceMouseMod
	code := report(application.Handler().Resolver().Tables())
	mu.Unlock()
	if !*watch {
		return code
	}

	fmt.Fprintf(stderr, "watching %s (Ctrl-C to stop)\n", strings.Join(application.WatchedFiles(), ", "))
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	<-signals
	return exitOK
}

func runResolve(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("resolve", stderr)
	var common commonFlags
	common.register(fs)
	var bindings stringList
	fs.Var(&bindings, "bindings", "Bindings file (repeatable)")
	mods := fs.String("mods", "none", "Modifiers held, like shift+control")
	keypad := fs.Bool("keypad", false, "Application keypad mode (default from terminal.keypad_app)")
	cursor := fs.Bool("cursor", false, "Application cursor mode (default from terminal.cursor_app)")
	isMouse := fs.Bool("mouse", false, "Resolve a mouse button instead of a key")
	release := fs.Bool("release", false, "Resolve a button release")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: vtkeys resolve [options] <key|button>\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitError
	}

	mask, err := key.ParseMask(*mods)
	if err == nil && mask.IsAny() {
		err = fmt.Errorf("-mods must name modifiers, not %q", *mods)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	opts, err := common.options(bindings, io.Discard)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer application.Shutdown()

	// Mode flags given on the command line override the configured modes
	// either way; modes left unset keep the configured value.
	ctx := application.Handler().Context()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "keypad":
			ctx = ctx.WithKeypad(*keypad)
		case "cursor":
			ctx = ctx.WithCursor(*cursor)
		}
	})
	r := application.Handler().Resolver()

	var (
		event string
		res   resolve.Result
	)
	if *isMouse {
		b, err := mouse.ParseButton(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		ev := mouse.Event{Button: b, Modifiers: mask.Modifiers(), Release: *release}
		event = ev.String()
		res = r.HandleMouse(ev, ctx)
		if !res.IsHandled() && b == mouse.ButtonPrimary && !ev.Release {
			event += " (starts a " + r.Variant(ev, ctx).String() + " selection)"
		}
	} else {
		k, err := key.ParseKey(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		ev := key.Event{Key: k, Modifiers: mask.Modifiers()}
		event = ev.String()
		res = r.ResolveKey(ev, ctx)
	}

	fmt.Fprintf(stdout, "event:   %s\n", event)
	fmt.Fprintf(stdout, "context: %s\n", ctx)
	fmt.Fprintf(stdout, "result:  %s\n", res)
	return exitOK
}

func runDump(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("dump", stderr)
	var common commonFlags
	common.register(fs)
	format := fs.String("format", "toml", "Output format: toml or yaml")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	opts, err := common.options(fs.Args(), io.Discard)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer application.Shutdown()

	var buf bytes.Buffer
	if err := keymap.Encode(&buf, application.Handler().Resolver().Tables(), keymap.Format(*format)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if _, err := buf.WriteTo(stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func runCapture(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("capture", stderr)
	var common commonFlags
	common.register(fs)
	metricsAddr := fs.String("metrics", "", "Serve prometheus metrics on this address while capturing")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	opts, err := common.options(fs.Args(), io.Discard)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	var (
		application *app.Application
		lines       []string
	)
	opts.TTY = io.Discard
	opts.Hooks = []input.Hook{input.FuncHook{
		PreKeyEventFunc: func(ev *key.Event) bool {
			if !isQuit(*ev) {
				return false
			}
			application.Shutdown()
			return true
		},
	}}
	opts.Observer = func(o app.Outcome) {
		if o.Event.Type == backend.EventKey && isQuit(o.Event.Key) {
			return
		}
		lines = append(lines, describe(o)...)
	}

	application, err = app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer application.Shutdown()

	if *metricsAddr != "" {
		srv, err := serveMetrics(*metricsAddr, application.Handler().Metrics())
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		defer srv.Close()
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return exitError
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			application.Shutdown()
		}
	}()

	runErr := application.Run(context.Background(), term)
	for _, line := range lines {
		fmt.Fprintln(stdout, line)
	}
	if runErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return exitError
	}
	return exitOK
}

// metricsHandler serves m in the prometheus text format.
func metricsHandler(m *input.Metrics) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(input.NewCollector(m, "vtkeys")); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

// healthLatencyThreshold is the peak resolve latency above which the
// health endpoint reports a failure.
const healthLatencyThreshold = 10 * time.Millisecond

// healthHandler reports m.HealthCheck as JSON, with status 503 when
// unhealthy.
func healthHandler(m *input.Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		status := m.HealthCheck(healthLatencyThreshold)
		w.Header().Set("Content-Type", "application/json")
		if !status.Healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(status)
	})
}

// serveMetrics exposes m on addr at /metrics and its health at /healthz.
func serveMetrics(addr string, m *input.Metrics) (*http.Server, error) {
	h, err := metricsHandler(m)
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	mux.Handle("/healthz", healthHandler(m))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = srv.Serve(ln)
	}()
	return srv, nil
}

// isQuit reports whether ev is Ctrl-Q, which ends a capture.
func isQuit(ev key.Event) bool {
	return ev.Key == key.KeyQ && ev.Modifiers == key.ModControl
}

// describe formats an outcome as one line per resolved event.
func describe(o app.Outcome) []string {
	var lines []string
	switch o.Event.Type {
	case backend.EventKey:
		lines = append(lines, fmt.Sprintf("%-20s %s", o.Event.Key, o.Key))
	case backend.EventMouse:
		for i, m := range o.Mouse {
			line := fmt.Sprintf("%-20s %s", o.Event.Mouse[i], m.Result)
			if m.Click != 0 {
				line += " (" + m.Click.String() + ")"
			}
			lines = append(lines, line)
		}
	case backend.EventText:
		lines = append(lines, fmt.Sprintf("%-20q no key identifier", o.Event.Rune))
	default:
		return nil
	}
	if o.Err != nil && len(lines) > 0 {
		lines[len(lines)-1] += ": " + o.Err.Error()
	}
	return lines
}
