// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package features implements the reactive attribute layer between
// user-facing graphics and the GPU engine. A feature wraps either a
// fixed-row-count [Buffer] of vertex data (positions, colors, sizes),
// a chunked [TextureArray] of image data, or a single [Uniform] value
// (a name, a color, a selection bound). Every mutation goes through
// an indexed Set path that computes the minimal contiguous upload
// region, forwards it to the engine's device handle, and dispatches a
// structured change event to registered listeners.
//
// Derived features write through their upstream feature's normal Set
// path so that upload marking and events keep firing: [VertexCmap]
// samples a named colormap into the vertex color buffer it shares,
// and alpha changes rewrite only the W column.
package features

import (
	"cogentcore.org/gfx/events"
)

// Base is the common state embedded in every feature: the event
// listener registry, the back-references stamped onto dispatched
// events, and the mutation-in-progress guard used by value setters.
type Base struct {

	// Listeners holds the event handlers registered on this
	// feature, in registration order. Its Block field suppresses
	// dispatch without unregistering.
	Listeners events.Listeners

	// Graphic is the owning graphic, stamped onto every event.
	// It is set by the graphic when it wires its features, and is
	// nil for free-standing features.
	Graphic any

	// Target is the graphic's underlying scene-graph object,
	// stamped onto every event alongside Graphic.
	Target any

	tag  string
	busy bool
}

// newBase returns a Base dispatching events with the given type tag.
func newBase(tag string) Base {
	return Base{tag: tag}
}

// EventType returns the type tag of the events this feature
// dispatches, such as "data", "colors", or "sizes".
func (b *Base) EventType() string {
	return b.tag
}

// SetGraphic sets the graphic and scene-object back-references
// stamped onto every event this feature dispatches.
func (b *Base) SetGraphic(graphic, target any) {
	b.Graphic = graphic
	b.Target = target
}

// OnChange registers fn to be called after every change to this
// feature. Handlers run synchronously, in registration order.
func (b *Base) OnChange(fn events.Handler) error {
	return b.Listeners.Add(fn)
}

// RemoveHandler unregisters fn, returning an error naming it if it
// was never registered.
func (b *Base) RemoveHandler(fn events.Handler) error {
	return b.Listeners.Remove(fn)
}

// ClearHandlers unregisters all handlers.
func (b *Base) ClearHandlers() {
	b.Listeners.Clear()
}

// BlockEvents suppresses (or restores) event dispatch from this
// feature without unregistering any handlers.
func (b *Base) BlockEvents(block bool) {
	b.Listeners.Block = block
}

// EventsBlocked returns whether dispatch is currently suppressed.
func (b *Base) EventsBlocked() bool {
	return b.Listeners.Block
}

// send constructs and dispatches one event with the given info,
// stamping the back-references. Nothing is built when no handlers are
// registered or dispatch is blocked.
func (b *Base) send(info map[string]any) {
	if b.Listeners.Block || b.Listeners.Len() == 0 {
		return
	}
	ev := events.NewEvent(b.tag, info)
	ev.Graphic = b.Graphic
	ev.Target = b.Target
	b.Listeners.Send(ev)
}

// enter acquires the mutation-in-progress guard, reporting false when
// a mutation is already executing, in which case the caller must
// return without doing anything. Value setters use this to turn
// re-entrant invocation from listener side effects into a silent
// no-op instead of unbounded recursion.
func (b *Base) enter() bool {
	if b.busy {
		return false
	}
	b.busy = true
	return true
}

// exit releases the guard. It must be deferred immediately after a
// successful enter so the guard is released on every exit path.
func (b *Base) exit() {
	b.busy = false
}
