// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graphics composes the reactive features into user-facing
// plot objects: [Line], [Scatter], [Image], and [Text]. A graphic owns
// one feature per mutable attribute, stamps itself and its scene
// object onto every event the features dispatch, and routes
// event-handler registration to the right feature by type tag. Attach
// wires the features to device resources through the engine package;
// afterwards every feature write accumulates the minimal upload range,
// transferred on Flush.
package graphics

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/gfx/engine"
	"cogentcore.org/gfx/events"
	"cogentcore.org/gfx/features"
)

// Base is the state common to every graphic: the identity and
// transform features, the scene-object back-reference, the registry
// routing event registration by type tag, and the attached device
// resources.
type Base struct {

	// Name is the graphic's user-assigned name ("name" events).
	Name *features.Name

	// Visible controls whether the graphic is drawn ("visible"
	// events).
	Visible *features.Visible

	// Deleted fires once when the graphic is torn down ("deleted"
	// events).
	Deleted *features.Deleted

	// Offset is the world-space translation ("offset" events).
	Offset *features.Offset

	// Rotation is the orientation quaternion ("rotation" events).
	Rotation *features.Rotation

	// Target is the scene-graph object this graphic renders through,
	// stamped onto every event next to the graphic itself.
	Target any

	registry map[string]*features.Base
	buffers  []*engine.Buffer
	textures []*engine.Texture
}

// newBase returns a Base with the shared features built and
// registered. self is the outermost graphic, stamped onto events.
func newBase(self any, name string) Base {
	gb := Base{
		Name:     features.NewName(name),
		Visible:  features.NewVisible(true),
		Deleted:  features.NewDeleted(),
		Offset:   features.NewOffset(math32.Vector3{}),
		Rotation: features.NewRotation(math32.Quat{W: 1}),
		registry: map[string]*features.Base{},
	}
	gb.register(self, &gb.Name.Base)
	gb.register(self, &gb.Visible.Base)
	gb.register(self, &gb.Deleted.Base)
	gb.register(self, &gb.Offset.Base)
	gb.register(self, &gb.Rotation.Base)
	return gb
}

// register adds fb to the event-routing registry and stamps the
// back-references onto it.
func (gb *Base) register(self any, fb *features.Base) {
	fb.SetGraphic(self, gb.Target)
	gb.registry[fb.EventType()] = fb
}

// SetTarget sets the scene-graph object stamped onto every event from
// every feature of this graphic.
func (gb *Base) SetTarget(target any) {
	gb.Target = target
	for _, fb := range gb.registry {
		fb.Target = target
	}
}

// EventTypes returns the sorted event type tags this graphic
// dispatches.
func (gb *Base) EventTypes() []string {
	return slices.Sorted(maps.Keys(gb.registry))
}

// AddEventHandler registers fn for events of the given type tag. It is
// an error when the graphic has no feature dispatching that type, or
// when fn is nil.
func (gb *Base) AddEventHandler(typ string, fn events.Handler) error {
	fb, ok := gb.registry[typ]
	if !ok {
		return fmt.Errorf("graphic has no %q events; available: %s", typ, strings.Join(gb.EventTypes(), ", "))
	}
	return fb.OnChange(fn)
}

// RemoveEventHandler unregisters fn from the given event type,
// returning an error naming fn if it was never registered there.
func (gb *Base) RemoveEventHandler(typ string, fn events.Handler) error {
	fb, ok := gb.registry[typ]
	if !ok {
		return fmt.Errorf("graphic has no %q events; available: %s", typ, strings.Join(gb.EventTypes(), ", "))
	}
	return fb.RemoveHandler(fn)
}

// BlockEvents suppresses (or restores) event dispatch from every
// feature of this graphic without unregistering any handlers.
func (gb *Base) BlockEvents(block bool) {
	for _, fb := range gb.registry {
		fb.BlockEvents(block)
	}
}

// Delete tears the graphic down: it fires one "deleted" event, then
// unregisters every handler on every feature and frees any attached
// device resources.
func (gb *Base) Delete() {
	gb.Deleted.Set(true)
	for _, fb := range gb.registry {
		fb.ClearHandlers()
	}
	gb.ReleaseGPU()
}

// Flush uploads every pending dirty range of the graphic's attached
// device resources. It is a no-op before Attach.
func (gb *Base) Flush() error {
	for _, b := range gb.buffers {
		if err := b.Flush(); err != nil {
			return err
		}
	}
	engine.FlushTextures(gb.textures)
	return nil
}

// ReleaseGPU frees every device resource created by Attach. The
// graphic stays usable host-side and can be attached again.
func (gb *Base) ReleaseGPU() {
	for _, b := range gb.buffers {
		b.Release()
	}
	gb.buffers = nil
	engine.ReleaseTextures(gb.textures)
	gb.textures = nil
}
