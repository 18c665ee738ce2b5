package input

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/mouse"
	"github.com/dshills/vtkeys/internal/input/resolve"
)

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHighest runs before all other hooks.
	HookPriorityHighest HookPriority = -1000
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
	// HookPriorityLowest runs after all other hooks.
	HookPriorityLowest HookPriority = 1000
)

// Hook intercepts events on their way through the handler.
type Hook interface {
	// PreKeyEvent is called before a key event is resolved.
	// Return true to consume the event.
	PreKeyEvent(ev *key.Event) bool

	// PreMouseEvent is called before a mouse event is resolved.
	// Return true to consume the event.
	PreMouseEvent(ev *mouse.Event) bool

	// PostResolve is called with the result of every resolved event.
	PostResolve(event string, res resolve.Result)
}

// HookID uniquely identifies a registered hook.
type HookID uint64

// HookRegistration holds metadata about a registered hook.
type HookRegistration struct {
	ID       HookID
	Name     string
	Priority HookPriority
	Hook     Hook
}

// HookManager runs hooks in priority order. Hooks of equal priority run in
// registration order.
type HookManager struct {
	mu      sync.RWMutex
	hooks   []HookRegistration
	nextID  HookID
	sorted  bool
	enabled bool
}

// NewHookManager creates a new hook manager.
func NewHookManager() *HookManager {
	return &HookManager{
		sorted:  true,
		enabled: true,
	}
}

// Register adds a hook with default priority.
func (m *HookManager) Register(hook Hook) HookID {
	return m.RegisterWithOptions(hook, "", HookPriorityNormal)
}

// RegisterWithOptions adds a named hook with the given priority.
func (m *HookManager) RegisterWithOptions(hook Hook, name string, priority HookPriority) HookID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.hooks = append(m.hooks, HookRegistration{
		ID:       m.nextID,
		Name:     name,
		Priority: priority,
		Hook:     hook,
	})
	m.sorted = false
	return m.nextID
}

// Unregister removes a hook by ID.
func (m *HookManager) Unregister(id HookID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.hooks {
		if m.hooks[i].ID == id {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// UnregisterByName removes the first hook registered under name.
func (m *HookManager) UnregisterByName(name string) bool {
	if name == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.hooks {
		if m.hooks[i].Name == name {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// SetEnabled enables or disables all hooks.
func (m *HookManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// Count returns the number of registered hooks.
func (m *HookManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// List returns all hook registrations in execution order.
func (m *HookManager) List() []HookRegistration {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureSorted()
	result := make([]HookRegistration, len(m.hooks))
	copy(result, m.hooks)
	return result
}

// ensureSorted sorts hooks by priority if needed. Callers hold m.mu.
func (m *HookManager) ensureSorted() {
	if m.sorted {
		return
	}
	sort.SliceStable(m.hooks, func(i, j int) bool {
		return m.hooks[i].Priority < m.hooks[j].Priority
	})
	m.sorted = true
}

// snapshot returns the hooks to run, or nil when hooks are disabled.
func (m *HookManager) snapshot() []Hook {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled || len(m.hooks) == 0 {
		return nil
	}
	m.ensureSorted()

	hooks := make([]Hook, len(m.hooks))
	for i := range m.hooks {
		hooks[i] = m.hooks[i].Hook
	}
	return hooks
}

// RunPreKeyEvent runs all PreKeyEvent hooks in priority order.
// Returns true if any hook consumed the event.
func (m *HookManager) RunPreKeyEvent(ev *key.Event) bool {
	for _, hook := range m.snapshot() {
		if hook.PreKeyEvent(ev) {
			return true
		}
	}
	return false
}

// RunPreMouseEvent runs all PreMouseEvent hooks in priority order.
// Returns true if any hook consumed the event.
func (m *HookManager) RunPreMouseEvent(ev *mouse.Event) bool {
	for _, hook := range m.snapshot() {
		if hook.PreMouseEvent(ev) {
			return true
		}
	}
	return false
}

// RunPostResolve runs all PostResolve hooks in priority order.
func (m *HookManager) RunPostResolve(event string, res resolve.Result) {
	for _, hook := range m.snapshot() {
		hook.PostResolve(event, res)
	}
}

// Clear removes all hooks.
func (m *HookManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hooks = nil
	m.sorted = true
}

// BaseHook provides a default implementation of the Hook interface.
// Embed this in custom hooks to only implement the methods you need.
type BaseHook struct{}

// PreKeyEvent is a no-op that does not consume events.
func (BaseHook) PreKeyEvent(*key.Event) bool {
	return false
}

// PreMouseEvent is a no-op that does not consume events.
func (BaseHook) PreMouseEvent(*mouse.Event) bool {
	return false
}

// PostResolve is a no-op.
func (BaseHook) PostResolve(string, resolve.Result) {}

// FuncHook wraps functions into a Hook interface implementation.
type FuncHook struct {
	PreKeyEventFunc   func(*key.Event) bool
	PreMouseEventFunc func(*mouse.Event) bool
	PostResolveFunc   func(string, resolve.Result)
}

// PreKeyEvent calls the PreKeyEventFunc if set.
func (h FuncHook) PreKeyEvent(ev *key.Event) bool {
	if h.PreKeyEventFunc != nil {
		return h.PreKeyEventFunc(ev)
	}
	return false
}

// PreMouseEvent calls the PreMouseEventFunc if set.
func (h FuncHook) PreMouseEvent(ev *mouse.Event) bool {
	if h.PreMouseEventFunc != nil {
		return h.PreMouseEventFunc(ev)
	}
	return false
}

// PostResolve calls the PostResolveFunc if set.
func (h FuncHook) PostResolve(event string, res resolve.Result) {
	if h.PostResolveFunc != nil {
		h.PostResolveFunc(event, res)
	}
}

// LoggingHook logs every resolution at debug level.
type LoggingHook struct {
	BaseHook
	Logger zerolog.Logger
}

// PostResolve logs the event and its result.
func (h LoggingHook) PostResolve(event string, res resolve.Result) {
	h.Logger.Debug().
		Str("event", event).
		Stringer("kind", res.Kind).
		Str("result", res.String()).
		Msg("input")
}
