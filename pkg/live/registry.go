package live

import (
	"errors"
	"fmt"
	"sync"

	"github.com/recera/vango-sigma/pkg/vango/vdom"
)

// ErrUnknownHandler is returned when no handler is bound for a hid/event pair.
var ErrUnknownHandler = errors.New("live: unknown handler")

// Registry maps hydration ids to the event handlers rendered under them.
// It satisfies html.HandlerSink.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]map[string]vdom.EventHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]map[string]vdom.EventHandler)}
}

// Add binds h to event on the node rendered with hid.
func (r *Registry) Add(hid, event string, h vdom.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byEvent, ok := r.handlers[hid]
	if !ok {
		byEvent = make(map[string]vdom.EventHandler)
		r.handlers[hid] = byEvent
	}
	byEvent[event] = h
}

// Dispatch calls the handler for hid/event with args. A panicking handler is
// reported as an error.
func (r *Registry) Dispatch(hid, event string, args []any) (err error) {
	r.mu.RLock()
	h, ok := r.handlers[hid][event]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownHandler, hid, event)
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("live: handler %s/%s panicked: %v", hid, event, rec)
		}
	}()
	h(args)
	return nil
}

// Len returns the number of bound handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, byEvent := range r.handlers {
		n += len(byEvent)
	}
	return n
}
