// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"cogentcore.org/core/colors/colormap"
	"cogentcore.org/core/math32"
)

// Uniform is a feature holding a single value instead of a buffer:
// one color for a whole line, a name, a visibility flag. Set replaces
// the value and dispatches one event carrying it under "value".
//
// Uniform setters are the designated re-entrancy boundary: a listener
// side effect that synchronously calls Set on the feature already
// executing it is a silent no-op, preventing unbounded mutual
// recursion in bidirectionally wired features.
type Uniform[T any] struct {
	Base
	validate func(T) error
	value    T
}

// NewUniform returns a value feature dispatching events with the
// given type tag, holding v.
func NewUniform[T any](tag string, v T) *Uniform[T] {
	return &Uniform[T]{Base: newBase(tag), value: v}
}

// newValidated is NewUniform with a value validator, applied to the
// initial value too so construction fails eagerly.
func newValidated[T any](tag string, v T, validate func(T) error) (*Uniform[T], error) {
	if err := validate(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	return &Uniform[T]{Base: newBase(tag), validate: validate, value: v}, nil
}

// Value returns the current value.
func (f *Uniform[T]) Value() T {
	return f.value
}

// Set replaces the value and dispatches one event. A re-entrant call
// from a listener is a silent no-op. Values rejected by the feature's
// validator leave the current value unchanged.
func (f *Uniform[T]) Set(v T) error {
	if !f.enter() {
		return nil
	}
	defer f.exit()
	if f.validate != nil {
		if err := f.validate(v); err != nil {
			return err
		}
	}
	f.value = v
	f.send(map[string]any{"value": v})
	return nil
}

// Common graphic attributes, all single-value features.
type (
	// Name is a graphic's user-assigned name ("name" events).
	Name = Uniform[string]

	// Visible controls whether a graphic is drawn ("visible").
	Visible = Uniform[bool]

	// Deleted fires when a graphic is torn down ("deleted").
	Deleted = Uniform[bool]

	// Offset is a graphic's world-space translation ("offset").
	Offset = Uniform[math32.Vector3]

	// Rotation is a graphic's orientation quaternion ("rotation").
	Rotation = Uniform[math32.Quat]

	// Thickness is a line's stroke width ("thickness").
	Thickness = Uniform[float32]

	// UniformSize is a scatter's shared point size ("sizes").
	UniformSize = Uniform[float32]

	// ImageVmin is the value mapped to the bottom of an image's
	// colormap ("vmin").
	ImageVmin = Uniform[float32]

	// ImageVmax is the value mapped to the top of an image's
	// colormap ("vmax").
	ImageVmax = Uniform[float32]

	// ImageCmap is the colormap name an image is rendered through
	// ("cmap"); empty means direct values.
	ImageCmap = Uniform[string]

	// ImageInterpolation is an image's sampling mode
	// ("interpolation"): "nearest" or "linear".
	ImageInterpolation = Uniform[string]
)

func NewName(name string) *Name {
	return NewUniform("name", name)
}

func NewVisible(v bool) *Visible {
	return NewUniform("visible", v)
}

func NewDeleted() *Deleted {
	return NewUniform("deleted", false)
}

func NewOffset(v math32.Vector3) *Offset {
	return NewUniform("offset", v)
}

func NewRotation(q math32.Quat) *Rotation {
	return NewUniform("rotation", q)
}

// NewThickness returns a line thickness feature; negative values are
// rejected.
func NewThickness(v float32) (*Thickness, error) {
	return newValidated("thickness", v, nonNegative("thickness"))
}

// NewUniformSize returns a shared point size feature; negative values
// are rejected.
func NewUniformSize(v float32) (*UniformSize, error) {
	return newValidated("sizes", v, nonNegative("size"))
}

func NewImageVmin(v float32) *ImageVmin {
	return NewUniform("vmin", v)
}

func NewImageVmax(v float32) *ImageVmax {
	return NewUniform("vmax", v)
}

// NewImageCmap returns an image colormap feature. The name must be
// empty or one of [colormap.AvailableMaps].
func NewImageCmap(name string) (*ImageCmap, error) {
	return newValidated("cmap", name, validCmapName)
}

// NewImageInterpolation returns an image interpolation feature, mode
// "nearest" or "linear".
func NewImageInterpolation(mode string) (*ImageInterpolation, error) {
	return newValidated("interpolation", mode, validInterpolation)
}

func nonNegative(what string) func(float32) error {
	return func(v float32) error {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative, got %g", what, v)
		}
		return nil
	}
}

func validCmapName(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := colormap.AvailableMaps[name]; !ok {
		return fmt.Errorf("colormap %q not found; see colormap.AvailableMapsList", name)
	}
	return nil
}

func validInterpolation(mode string) error {
	switch mode {
	case "nearest", "linear":
		return nil
	}
	return fmt.Errorf("interpolation must be %q or %q, got %q", "nearest", "linear", mode)
}
