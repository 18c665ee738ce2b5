package app

import (
	"context"

	"github.com/dshills/vtkeys/internal/backend"
	"github.com/dshills/vtkeys/internal/input"
	"github.com/dshills/vtkeys/internal/input/resolve"
)

// Outcome is what the application did with one terminal event.
type Outcome struct {
	Event backend.Event

	// Key is the resolution of an EventKey.
	Key resolve.Result

	// Mouse holds one result per button transition of an EventMouse.
	Mouse []input.MouseResult

	// Err is the first delivery error.
	Err error
}

// Run reads events from src until ctx is done, Shutdown is called or the
// source closes. It blocks.
func (app *Application) Run(ctx context.Context, src backend.Source) error {
	if src == nil {
		return ErrNoSource
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := src.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer src.Shutdown()

	// Wake the blocked poll when asked to stop.
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
		case <-app.done:
		case <-finished:
			return
		}
		src.Interrupt()
	}()

	app.logger.Info().Msg("event loop started")
	for {
		ev, ok := src.PollEvent()
		if !ok {
			app.logger.Info().Msg("input source closed")
			return nil
		}

		if ev.Type == backend.EventInterrupt {
			if app.stopping(ctx) {
				app.logger.Info().Msg("event loop stopped")
				return nil
			}
			continue
		}

		outcome := app.HandleEvent(ctx, ev)
		if app.opts.Observer != nil {
			app.opts.Observer(outcome)
		}
	}
}

func (app *Application) stopping(ctx context.Context) bool {
	select {
	case <-app.done:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// HandleEvent routes one terminal event through the input handler.
func (app *Application) HandleEvent(ctx context.Context, ev backend.Event) Outcome {
	out := Outcome{Event: ev, Key: resolve.Result{Index: -1}}

	switch ev.Type {
	case backend.EventKey:
		out.Key, out.Err = app.handler.HandleKey(ctx, ev.Key)

	case backend.EventMouse:
		for _, m := range ev.Mouse {
			res, err := app.handler.HandleMouse(ctx, m)
			out.Mouse = append(out.Mouse, res)
			if err != nil && out.Err == nil {
				out.Err = err
			}
		}

	case backend.EventResize:
		app.logger.Debug().Int("width", ev.Width).Int("height", ev.Height).Msg("terminal resized")

	case backend.EventPaste:
		app.logger.Debug().Bool("start", ev.Start).Msg("paste")

	case backend.EventFocus:
		app.logger.Debug().Bool("focused", ev.Focused).Msg("focus changed")
	}

	return out
}
