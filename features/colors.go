// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/gfx/index"
)

// parseColor converts the accepted single-color forms to an RGBA
// vector with components in [0, 1]: a named color or #hex string, a
// [color.Color], a [math32.Vector4], a [math32.Vector3] (alpha 1), or
// a []float32 of 3 or 4 components.
func parseColor(val any) (math32.Vector4, error) {
	switch v := val.(type) {
	case string:
		var c color.RGBA
		var err error
		if strings.HasPrefix(v, "#") {
			c, err = colors.FromHex(v)
		} else {
			c, err = colors.FromName(v)
		}
		if err != nil {
			return math32.Vector4{}, err
		}
		return rgbaToVector4(c), nil
	case math32.Vector4:
		return v, nil
	case math32.Vector3:
		return math32.Vec4(v.X, v.Y, v.Z, 1), nil
	case []float32:
		switch len(v) {
		case 3:
			return math32.Vec4(v[0], v[1], v[2], 1), nil
		case 4:
			return math32.Vec4(v[0], v[1], v[2], v[3]), nil
		}
		return math32.Vector4{}, fmt.Errorf("%w: color slice must have 3 or 4 components, got %d", ErrShapeMismatch, len(v))
	case color.Color:
		return rgbaToVector4(colors.AsRGBA(v)), nil
	}
	return math32.Vector4{}, fmt.Errorf("color must be a name or #hex string, a color.Color, a math32.Vector3 or Vector4, or a []float32 of 3 or 4 components, not %T", val)
}

// parseColorRows converts the accepted color forms to RGBA rows: the
// multi-row forms []math32.Vector4, []string, and [][]float32 pass
// per element, anything else parses as one broadcastable color.
func parseColorRows(val any) ([]math32.Vector4, error) {
	switch v := val.(type) {
	case []math32.Vector4:
		return v, nil
	case []string:
		out := make([]math32.Vector4, len(v))
		for i, s := range v {
			c, err := parseColor(s)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case [][]float32:
		out := make([]math32.Vector4, len(v))
		for i, f := range v {
			c, err := parseColor(f)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}
	c, err := parseColor(val)
	if err != nil {
		return nil, err
	}
	return []math32.Vector4{c}, nil
}

func rgbaToVector4(c color.RGBA) math32.Vector4 {
	return math32.Vec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
}

// VertexColors is the per-vertex RGBA color feature of a graphic,
// dispatching "colors" events. Rows are [math32.Vector4] with
// components in [0, 1]. Writes accept the same color forms as
// [parseColor] plus the per-row forms of [parseColorRows], and a
// [index.Cell] key restricts the write to RGBA component columns,
// which is how alpha-only updates leave RGB bit-identical.
type VertexColors struct {
	Base

	// Buffer holds the RGBA rows and their device handle. It may
	// be shared with a derived [VertexCmap] feature.
	Buffer *Buffer[math32.Vector4]
}

// NewVertexColors returns a color feature over n vertices. initial is
// one broadcastable color or exactly n per-vertex colors; anything
// else fails with [ErrConstruction]. isolate deep-copies adopted
// []math32.Vector4 data; other forms always build fresh rows.
func NewVertexColors(initial any, n int, isolate bool) (*VertexColors, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: vertex count must be positive, got %d", ErrConstruction, n)
	}
	rows, err := parseColorRows(initial)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	f := &VertexColors{Base: newBase("colors")}
	switch len(rows) {
	case n:
		f.Buffer = NewBuffer(rows, isolate)
	case 1:
		data := make([]math32.Vector4, n)
		for i := range data {
			data[i] = rows[0]
		}
		f.Buffer = NewBuffer(data, false)
	default:
		return nil, fmt.Errorf("%w: %w: expected 1 or %d colors, got %d", ErrConstruction, ErrShapeMismatch, n, len(rows))
	}
	return f, nil
}

// Len returns the vertex count.
func (f *VertexColors) Len() int {
	return f.Buffer.Len()
}

// Value returns the live RGBA rows. Mutate through Set, not here.
func (f *VertexColors) Value() []math32.Vector4 {
	return f.Buffer.Value()
}

// At returns the color of vertex i.
func (f *VertexColors) At(i int) (math32.Vector4, error) {
	return f.Buffer.At(i)
}

// Set writes colors at the rows key selects, marks the minimal upload
// region, and dispatches one "colors" event with the key and value.
// A [index.Cell] key with a column component writes float32 values
// into the selected RGBA columns instead of whole rows.
func (f *VertexColors) Set(key index.Key, val any) error {
	if cell, ok := key.(index.Cell); ok && cell.Col != nil {
		return f.setComponents(cell, val)
	}
	rows, err := parseColorRows(val)
	if err != nil {
		return err
	}
	region, err := f.Buffer.Set(key, rows...)
	if err != nil {
		return err
	}
	if region.IsNil() {
		return nil
	}
	f.send(map[string]any{"key": keyInfo(key), "value": val})
	return nil
}

// SetAll replaces every row with val, the full-range form of Set.
// This is the path graphic-level color replacement goes through.
func (f *VertexColors) SetAll(val any) error {
	return f.Set(index.Full(), val)
}

// setComponents writes scalar values into the RGBA columns a Cell key
// selects: one float32 broadcasts; a []float32 of the touched row
// count applies per row across the selected columns; a []float32 of
// rows*columns applies elementwise in row-major order.
func (f *VertexColors) setComponents(cell index.Cell, val any) error {
	n := f.Buffer.Len()
	rowIdx, err := index.Indices(cell.Row, n)
	if err != nil {
		return err
	}
	comps, err := index.Indices(cell.Col, 4)
	if err != nil {
		return err
	}
	if len(rowIdx) == 0 || len(comps) == 0 {
		return nil
	}
	var vals []float32
	switch v := val.(type) {
	case float32:
		vals = []float32{v}
	case float64:
		vals = []float32{float32(v)}
	case int:
		vals = []float32{float32(v)}
	case []float32:
		vals = v
	default:
		return fmt.Errorf("%w: component write needs a float32 or []float32, not %T", ErrShapeMismatch, val)
	}
	nv := len(rowIdx) * len(comps)
	if len(vals) != 1 && len(vals) != len(rowIdx) && len(vals) != nv {
		return fmt.Errorf("%w: key selects %d rows x %d components, got %d values (want 1, %d, or %d)", ErrShapeMismatch, len(rowIdx), len(comps), len(vals), len(rowIdx), nv)
	}
	rows := f.Buffer.Value()
	for k, i := range rowIdx {
		for m, c := range comps {
			v := vals[0]
			switch len(vals) {
			case len(rowIdx):
				v = vals[k]
			case nv:
				v = vals[k*len(comps)+m]
			}
			rows[i].SetDim(math32.Dims(c), v)
		}
	}
	region, err := index.Resolve(cell.Row, n)
	if err != nil {
		return err
	}
	f.Buffer.MarkRange(region)
	f.send(map[string]any{"key": keyInfo(cell), "value": val})
	return nil
}

// UniformColor is the single shared color of a graphic that does not
// carry per-vertex colors, dispatching "colors" events. Set accepts
// the same forms as [parseColor].
type UniformColor struct {
	Uniform[math32.Vector4]
}

// NewUniformColor returns a uniform color feature initialized to the
// given color, in any form [parseColor] accepts.
func NewUniformColor(val any) (*UniformColor, error) {
	return NewUniformColorTag("colors", val)
}

// NewUniformColorTag is [NewUniformColor] with an explicit event type
// tag, for graphics carrying more than one color value.
func NewUniformColorTag(tag string, val any) (*UniformColor, error) {
	c, err := parseColor(val)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	f := &UniformColor{}
	f.Uniform = *NewUniform(tag, c)
	return f, nil
}

// Set parses val and replaces the color, dispatching one event under
// the feature's tag carrying the parsed RGBA vector.
func (f *UniformColor) Set(val any) error {
	c, err := parseColor(val)
	if err != nil {
		return err
	}
	return f.Uniform.Set(c)
}

// UniformAlpha is the opacity of a uniform-colored graphic,
// dispatching "alpha" events. Setting it recomposes the owning
// [UniformColor]'s tuple with the new alpha, so one Set fires a
// "colors" event from the color feature and then an "alpha" event
// from this one.
type UniformAlpha struct {
	Uniform[float32]
	color *UniformColor
}

// NewUniformAlpha returns an alpha feature writing through color.
// The initial value is clamped to [0, 1] and applied to the color.
func NewUniformAlpha(a float32, color *UniformColor) (*UniformAlpha, error) {
	f := &UniformAlpha{color: color}
	f.Uniform = *NewUniform("alpha", float32(1))
	if err := f.Set(a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	return f, nil
}

// Set clamps a to [0, 1], rewrites the color tuple's alpha, and
// dispatches an "alpha" event. Re-entrant calls are silent no-ops.
func (f *UniformAlpha) Set(a float32) error {
	if !f.enter() {
		return nil
	}
	defer f.exit()
	a = math32.Clamp(a, 0, 1)
	if f.color != nil {
		c := f.color.Value()
		c.W = a
		if err := f.color.Set(c); err != nil {
			return err
		}
	}
	f.value = a
	f.send(map[string]any{"value": a})
	return nil
}
