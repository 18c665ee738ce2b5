package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/vtkeys/internal/input/action"
	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/keymap"
	"github.com/dshills/vtkeys/internal/input/mode"
	"github.com/dshills/vtkeys/internal/input/mouse"
	"github.com/dshills/vtkeys/internal/input/resolve"
)

var (
	// ErrNoTTY is returned when a bytes result has nowhere to go.
	ErrNoTTY = errors.New("input: no tty attached")
	// ErrNoRegistry is returned when an action result has no registry.
	ErrNoRegistry = errors.New("input: no action registry")
)

// Config configures the input handler.
type Config struct {
	// IgnoreMod is removed from key modifiers before matching.
	IgnoreMod key.Modifier

	// ForceMouseMod forces a selection when held during a primary press.
	// Zero disables forced selection.
	ForceMouseMod key.Modifier

	// DoubleClickTime is the maximum time between presses of a double click.
	DoubleClickTime time.Duration

	// TripleClickTime is the maximum time across the presses of a triple click.
	TripleClickTime time.Duration
}

// DefaultConfig returns the stock modifier settings and click timeouts.
func DefaultConfig() Config {
	return Config{
		IgnoreMod:       keymap.DefaultIgnoreMod,
		ForceMouseMod:   keymap.DefaultForceMouseMod,
		DoubleClickTime: mouse.DefaultDoubleClickTimeout,
		TripleClickTime: mouse.DefaultTripleClickTimeout,
	}
}

// Handler runs input events through resolution and delivers the results:
// bytes go to the tty, actions go to the registry. Selection results are
// returned for the caller to act on.
type Handler struct {
	mu sync.RWMutex

	config   Config
	resolver *resolve.Resolver
	state    mode.State
	registry *action.Registry
	tty      io.Writer
	clicks   *mouse.ClickTracker
	hooks    *HookManager
	metrics  *Metrics
	logger   zerolog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithState sets the source of the terminal mode flags.
func WithState(state mode.State) Option {
	return func(h *Handler) {
		h.state = state
	}
}

// WithRegistry sets the registry action results are dispatched to.
func WithRegistry(r *action.Registry) Option {
	return func(h *Handler) {
		h.registry = r
	}
}

// WithTTY sets the writer bytes results are written to.
func WithTTY(w io.Writer) Option {
	return func(h *Handler) {
		h.tty = w
	}
}

// WithLogger sets the handler logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithMetrics shares a metrics tracker with the handler.
func WithMetrics(m *Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// NewHandler creates a handler resolving through r.
func NewHandler(config Config, r *resolve.Resolver, opts ...Option) *Handler {
	h := &Handler{
		config:   config,
		resolver: r,
		clicks:   mouse.NewClickTracker(config.DoubleClickTime, config.TripleClickTime),
		hooks:    NewHookManager(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.resolver == nil {
		h.resolver = resolve.New(nil)
	}
	if h.metrics == nil {
		h.metrics = NewMetrics()
	}
	return h
}

// Config returns the handler configuration.
func (h *Handler) Config() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.config
}

// Resolver returns the current resolver.
func (h *Handler) Resolver() *resolve.Resolver {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.resolver
}

// SetResolver replaces the resolver, typically after the bindings were
// reloaded. Events already being resolved finish with the old one.
func (h *Handler) SetResolver(r *resolve.Resolver) {
	if r == nil {
		return
	}
	h.mu.Lock()
	h.resolver = r
	h.mu.Unlock()
	h.logger.Info().Msg("bindings replaced")
}

// Hooks returns the hook manager.
func (h *Handler) Hooks() *HookManager {
	return h.hooks
}

// Metrics returns the metrics tracker.
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// Context snapshots the mode flags and modifier settings for one event.
func (h *Handler) Context() mode.Context {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return mode.Snapshot(h.state, h.config.IgnoreMod, h.config.ForceMouseMod)
}

// HandleKey resolves ev and delivers the result. A consumed event is
// returned as Unhandled.
func (h *Handler) HandleKey(ctx context.Context, ev key.Event) (resolve.Result, error) {
	if h.hooks.RunPreKeyEvent(&ev) {
		h.metrics.RecordHookConsumption()
		return resolve.Result{Index: -1}, nil
	}

	start := time.Now()
	res := h.Resolver().ResolveKey(ev, h.Context())
	h.metrics.RecordKeyEvent(res, time.Since(start))

	err := h.deliver(ctx, res)
	h.hooks.RunPostResolve(ev.String(), res)
	return res, err
}

// MouseResult is the outcome of a mouse event.
type MouseResult struct {
	resolve.Result

	// Click classifies primary presses that were not bound to an action.
	// It is zero for every other event.
	Click mouse.ClickType
}

// HandleMouse resolves ev and delivers the result. Presses of the primary
// button that start a selection are classified as single, double or
// triple clicks.
func (h *Handler) HandleMouse(ctx context.Context, ev mouse.Event) (MouseResult, error) {
	if h.hooks.RunPreMouseEvent(&ev) {
		h.metrics.RecordHookConsumption()
		return MouseResult{Result: resolve.Result{Index: -1}}, nil
	}

	start := time.Now()
	res := h.Resolver().HandleMouse(ev, h.Context())
	h.metrics.RecordMouseEvent(res, time.Since(start))

	out := MouseResult{Result: res}
	if ev.Button == mouse.ButtonPrimary && !ev.Release && res.Kind != resolve.Action {
		h.mu.Lock()
		out.Click = h.clicks.Record(ev.Timestamp)
		h.mu.Unlock()
	}

	err := h.deliver(ctx, res)
	h.hooks.RunPostResolve(ev.String(), res)
	return out, err
}

// Variant picks the selection variant for a selection started by ev
// without forcing it.
func (h *Handler) Variant(ev mouse.Event) keymap.SelectionVariant {
	return h.Resolver().Variant(ev, h.Context())
}

func (h *Handler) deliver(ctx context.Context, res resolve.Result) error {
	var err error
	switch res.Kind {
	case resolve.Bytes:
		err = h.write(res.Bytes)
	case resolve.Action:
		err = h.dispatch(ctx, res)
	default:
		return nil
	}
	if err != nil {
		h.metrics.RecordError()
		h.logger.Warn().Err(err).Str("result", res.String()).Msg("delivery failed")
	}
	return err
}

func (h *Handler) write(b []byte) error {
	if h.tty == nil {
		return ErrNoTTY
	}
	n, err := h.tty.Write(b)
	h.metrics.RecordWrite(n)
	if err != nil {
		return fmt.Errorf("writing to tty: %w", err)
	}
	return nil
}

func (h *Handler) dispatch(ctx context.Context, res resolve.Result) error {
	if h.registry == nil {
		return ErrNoRegistry
	}
	start := time.Now()
	err := h.registry.Dispatch(ctx, res)
	h.metrics.RecordAction(time.Since(start))
	return err
}
