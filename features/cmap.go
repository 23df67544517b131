// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"
	"slices"

	"cogentcore.org/core/colors/colormap"
	"cogentcore.org/core/math32"
	"cogentcore.org/gfx/index"
)

// VertexCmap derives a graphic's per-vertex colors from a named
// colormap, dispatching "cmap" events. It shares the [VertexColors]
// buffer it writes into (the buffer is retained, not copied), and
// every write goes through [VertexColors.Set], so upload marking and
// "colors" events fire exactly as for a direct color write.
//
// The name is deliberately not invalidated when the color buffer is
// written through VertexColors directly: after such a write the name
// describes stale state. Whole-buffer replacement through a graphic's
// SetColors path is the one place that clears it, via
// [VertexCmap.ClearName].
type VertexCmap struct {
	Base
	colors    *VertexColors
	name      string
	transform []float32
	alpha     float32
}

// NewVertexCmap returns a colormap feature writing into colors. A
// non-empty name is applied immediately. transform, if non-nil, must
// have one value per vertex; it is copied. alpha is clamped to
// [0, 1].
func NewVertexCmap(colors *VertexColors, name string, transform []float32, alpha float32) (*VertexCmap, error) {
	if colors == nil {
		return nil, fmt.Errorf("%w: cmap needs a colors feature to write into", ErrConstruction)
	}
	f := &VertexCmap{Base: newBase("cmap"), colors: colors, alpha: math32.Clamp(alpha, 0, 1)}
	colors.Buffer.Retain()
	if transform != nil {
		if len(transform) != colors.Len() {
			return nil, fmt.Errorf("%w: %w: transform needs %d values, got %d", ErrConstruction, ErrShapeMismatch, colors.Len(), len(transform))
		}
		f.transform = slices.Clone(transform)
	}
	if name != "" {
		if err := f.SetName(name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
		}
	}
	return f, nil
}

// Name returns the current colormap name, empty when no colormap is
// associated. The name can be stale after direct color writes.
func (f *VertexCmap) Name() string {
	return f.name
}

// Alpha returns the alpha applied to sampled colors.
func (f *VertexCmap) Alpha() float32 {
	return f.alpha
}

// Transform returns a copy of the sampling transform, nil when colors
// are sampled evenly across the colormap.
func (f *VertexCmap) Transform() []float32 {
	return slices.Clone(f.transform)
}

// sample computes one color per vertex from the named colormap:
// evenly spaced positions by default, or the transform values
// normalized to [0, 1], with the current alpha in every W.
func (f *VertexCmap) sample(name string) ([]math32.Vector4, error) {
	cm, ok := colormap.AvailableMaps[name]
	if !ok {
		return nil, fmt.Errorf("colormap %q not found; see colormap.AvailableMapsList", name)
	}
	n := f.colors.Len()
	var mn, mx float32
	if f.transform != nil {
		mn, mx = f.transform[0], f.transform[0]
		for _, v := range f.transform[1:] {
			mn = math32.Min(mn, v)
			mx = math32.Max(mx, v)
		}
	}
	rows := make([]math32.Vector4, n)
	for i := range rows {
		var pos float32
		switch {
		case f.transform != nil && mx > mn:
			pos = (f.transform[i] - mn) / (mx - mn)
		case f.transform == nil && n > 1:
			pos = float32(i) / float32(n-1)
		}
		rows[i] = rgbaToVector4(cm.Map(pos))
		rows[i].W = f.alpha
	}
	return rows, nil
}

// apply samples the named colormap and writes the full result through
// the colors feature.
func (f *VertexCmap) apply(name string) error {
	rows, err := f.sample(name)
	if err != nil {
		return err
	}
	return f.colors.Set(index.Full(), rows)
}

// SetName associates the named colormap and recolors every vertex
// through the colors feature, then dispatches a "cmap" event. An
// empty name clears the association without touching the color
// buffer. An unknown name is an error and mutates nothing.
// Re-entrant calls are silent no-ops.
func (f *VertexCmap) SetName(name string) error {
	if !f.enter() {
		return nil
	}
	defer f.exit()
	if name == "" {
		f.name = ""
		f.send(map[string]any{"value": ""})
		return nil
	}
	if err := f.apply(name); err != nil {
		return err
	}
	f.name = name
	f.send(map[string]any{"value": name})
	return nil
}

// SetTransform replaces the sampling transform, which must have one
// value per vertex (nil restores even spacing), and resamples the
// current colormap if one is set.
func (f *VertexCmap) SetTransform(vals []float32) error {
	if !f.enter() {
		return nil
	}
	defer f.exit()
	if vals != nil && len(vals) != f.colors.Len() {
		return fmt.Errorf("%w: transform needs %d values, got %d", ErrShapeMismatch, f.colors.Len(), len(vals))
	}
	f.transform = slices.Clone(vals)
	if f.name != "" {
		if err := f.apply(f.name); err != nil {
			return err
		}
	}
	f.send(map[string]any{"value": f.name, "transform": vals})
	return nil
}

// SetAlpha clamps a to [0, 1] and rewrites only the alpha column of
// the color buffer through the component-write path, leaving RGB
// bit-identical, then dispatches a "cmap" event.
func (f *VertexCmap) SetAlpha(a float32) error {
	if !f.enter() {
		return nil
	}
	defer f.exit()
	a = math32.Clamp(a, 0, 1)
	f.alpha = a
	if err := f.colors.Set(index.Cell{Row: index.Full(), Col: index.At(3)}, a); err != nil {
		return err
	}
	f.send(map[string]any{"value": f.name, "alpha": a})
	return nil
}

// ClearName drops the colormap association without touching the color
// buffer or dispatching events. Graphics call it when the whole color
// buffer is replaced directly, after which the name no longer
// describes the visible colors.
func (f *VertexCmap) ClearName() {
	f.name = ""
}
