// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime"

	"cogentcore.org/core/base/errors"
)

// Handler is a function registered to receive change events from one
// feature.
type Handler func(ev *Event)

// ErrMissingHandler is returned by [Listeners.Remove] when the given
// handler was never registered.
var ErrMissingHandler = errors.New("event handler not registered")

// handler pairs a registered function with its identity, so that
// duplicates can be detected and removal and error reports can name
// the function.
type handler struct {
	fn   Handler
	ptr  uintptr
	name string
}

// Listeners is the ordered set of event handlers registered on one
// feature. Dispatch is synchronous and preserves registration order.
// The zero value is ready to use. Listeners is not safe for
// concurrent use; all mutation and dispatch happen on the single
// goroutine driving graphic updates.
type Listeners struct {

	// Block suppresses all dispatch while true, without
	// unregistering any handlers.
	Block bool

	handlers []handler
}

// funcName returns the package-qualified name of the function at the
// given code pointer, used to identify handlers in warnings and
// errors.
func funcName(ptr uintptr) string {
	f := runtime.FuncForPC(ptr)
	if f == nil {
		return "<unknown function>"
	}
	return f.Name()
}

// Add registers fn to be called on every event, after any handlers
// already registered. Adding a handler that is already registered is
// a no-op that logs a warning. A nil handler is an error.
func (ls *Listeners) Add(fn Handler) error {
	if fn == nil {
		return errors.New("events.Listeners.Add: handler must be non-nil")
	}
	ptr := reflect.ValueOf(fn).Pointer()
	name := funcName(ptr)
	for _, h := range ls.handlers {
		if h.ptr == ptr {
			slog.Warn("events.Listeners.Add: handler already registered, ignoring", "handler", name)
			return nil
		}
	}
	ls.handlers = append(ls.handlers, handler{fn: fn, ptr: ptr, name: name})
	return nil
}

// Remove unregisters fn. It returns an error wrapping
// [ErrMissingHandler], naming the function, if fn is not registered.
// The handler list is rebuilt rather than shifted in place so that a
// removal during dispatch does not disturb the in-flight iteration.
func (ls *Listeners) Remove(fn Handler) error {
	if fn == nil {
		return errors.New("events.Listeners.Remove: handler must be non-nil")
	}
	ptr := reflect.ValueOf(fn).Pointer()
	for i, h := range ls.handlers {
		if h.ptr != ptr {
			continue
		}
		nh := make([]handler, 0, len(ls.handlers)-1)
		nh = append(nh, ls.handlers[:i]...)
		nh = append(nh, ls.handlers[i+1:]...)
		ls.handlers = nh
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingHandler, funcName(ptr))
}

// Clear unregisters all handlers.
func (ls *Listeners) Clear() {
	ls.handlers = nil
}

// Len returns the number of registered handlers.
func (ls *Listeners) Len() int {
	return len(ls.handlers)
}

// Send dispatches ev to every registered handler in registration
// order, unless Block is set. A panic in one handler is recovered and
// logged with the event type and handler name, and does not prevent
// later handlers from running or propagate to the caller.
func (ls *Listeners) Send(ev *Event) {
	if ls.Block {
		return
	}
	hs := ls.handlers
	for i := range hs {
		ls.dispatch(&hs[i], ev)
	}
}

func (ls *Listeners) dispatch(h *handler, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("events: event handler panicked", "type", ev.Type, "handler", h.name, "graphic", fmt.Sprintf("%T", ev.Graphic), "panic", r)
		}
	}()
	h.fn(ev)
}
