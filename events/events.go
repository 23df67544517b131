// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events provides the change-notification machinery for
// reactive graphic features: a structured [Event] describing one
// mutation, and an ordered listener registry ([Listeners]) that
// dispatches synchronously with per-handler panic isolation.
package events

// Event describes one change to a graphic feature. It is constructed
// by the feature performing the write and delivered synchronously, in
// registration order, to every listener registered on that feature.
// Handlers must treat it as immutable.
type Event struct {

	// Type is the tag naming which feature changed, such as
	// "data", "colors", "sizes", or "cmap".
	Type string

	// Info holds feature-specific details of the change. Every
	// indexed write includes at least "key", the index used, and
	// "value", the value written.
	Info map[string]any

	// Graphic is the graphic that owns the feature, set by the
	// graphic when it wires its features, nil for free-standing
	// features.
	Graphic any

	// Target is the underlying scene-graph object of the graphic,
	// populated alongside Graphic.
	Target any
}

// NewEvent returns an event with the given type tag and info map.
// The graphic back-references are filled in by the dispatching
// feature.
func NewEvent(typ string, info map[string]any) *Event {
	return &Event{Type: typ, Info: info}
}

// Key returns the index key recorded in Info, or nil if the event did
// not come from an indexed write.
func (ev *Event) Key() any {
	return ev.Info["key"]
}

// Value returns the written value recorded in Info, or nil.
func (ev *Event) Value() any {
	return ev.Info["value"]
}
