package action

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/vtkeys/internal/input/keymap"
	"github.com/dshills/vtkeys/internal/input/resolve"
)

// Handler performs an action with the argument of the winning entry.
type Handler func(ctx context.Context, arg keymap.Argument) error

// Registry manages handlers by action name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	logger   zerolog.Logger
}

// NewRegistry creates an empty handler registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Register sets the handler for an action name, replacing any previous one.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Unregister removes the handler for an action name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Get returns the handler for an action name, or nil.
func (r *Registry) Get(name string) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name]
}

// Has returns true if a handler is registered for name.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// Names returns the registered action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler for an Action result.
func (r *Registry) Dispatch(ctx context.Context, res resolve.Result) error {
	if res.Kind != resolve.Action {
		return fmt.Errorf("%w: %s", ErrNotAction, res.Kind)
	}

	h := r.Get(res.Action)
	if h == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAction, res.Action)
	}

	err := r.execute(ctx, h, res)
	if err != nil {
		r.logger.Warn().Err(err).Str("action", res.Action).Msg("action failed")
		return err
	}
	r.logger.Debug().Str("action", res.Action).Str("arg", res.Arg.String()).Msg("action done")
	return nil
}

// execute runs a handler with panic recovery.
func (r *Registry) execute(ctx context.Context, h Handler, res resolve.Result) (err error) {
	defer func() {
		if p := recover(); p != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			r.logger.Error().Str("action", res.Action).Str("stack", string(stack[:n])).Msg("handler panic")
			err = fmt.Errorf("%w: %s: %v", ErrPanic, res.Action, p)
		}
	}()
	return h(ctx, res.Arg)
}
