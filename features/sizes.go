// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"cogentcore.org/gfx/index"
)

// PointSizes is the per-vertex marker size of a scatter, dispatching
// "sizes" events. Sizes must be non-negative.
type PointSizes struct {
	Base

	// Buffer holds the size rows and their device handle.
	Buffer *Buffer[float32]
}

// NewPointSizes returns a size feature over n vertices. initial is
// one broadcast size or exactly n per-vertex sizes. isolate
// deep-copies adopted []float32 data.
func NewPointSizes(initial any, n int, isolate bool) (*PointSizes, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: vertex count must be positive, got %d", ErrConstruction, n)
	}
	var rows []float32
	adopt := false
	switch d := initial.(type) {
	case float32:
		rows = broadcastSizes(d, n)
	case float64:
		rows = broadcastSizes(float32(d), n)
	case int:
		rows = broadcastSizes(float32(d), n)
	case []float32:
		if len(d) != n {
			return nil, fmt.Errorf("%w: %w: expected 1 or %d sizes, got %d", ErrConstruction, ErrShapeMismatch, n, len(d))
		}
		rows = d
		adopt = true
	default:
		return nil, fmt.Errorf("%w: sizes must be a float32, float64, int, or []float32, not %T", ErrConstruction, initial)
	}
	if err := checkSizes(rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	f := &PointSizes{Base: newBase("sizes")}
	f.Buffer = NewBuffer(rows, adopt && isolate)
	return f, nil
}

func broadcastSizes(v float32, n int) []float32 {
	rows := make([]float32, n)
	for i := range rows {
		rows[i] = v
	}
	return rows
}

func checkSizes(sizes []float32) error {
	for i, s := range sizes {
		if s < 0 {
			return fmt.Errorf("point sizes must be non-negative, got %g at row %d", s, i)
		}
	}
	return nil
}

// Len returns the vertex count.
func (f *PointSizes) Len() int {
	return f.Buffer.Len()
}

// Value returns the live size rows. Mutate through Set, not here.
func (f *PointSizes) Value() []float32 {
	return f.Buffer.Value()
}

// At returns the size of vertex i.
func (f *PointSizes) At(i int) (float32, error) {
	return f.Buffer.At(i)
}

// Set writes sizes at the rows key selects, marks the minimal upload
// region, and dispatches one "sizes" event. One size broadcasts;
// otherwise the count must match the selected rows. Negative sizes
// are rejected before anything is written.
func (f *PointSizes) Set(key index.Key, sizes ...float32) error {
	if err := checkSizes(sizes); err != nil {
		return err
	}
	region, err := f.Buffer.Set(key, sizes...)
	if err != nil {
		return err
	}
	if region.IsNil() {
		return nil
	}
	var val any = sizes
	if len(sizes) == 1 {
		val = sizes[0]
	}
	f.send(map[string]any{"key": keyInfo(key), "value": val})
	return nil
}

// SetAll replaces every row; the count must equal the vertex count.
func (f *PointSizes) SetAll(sizes []float32) error {
	return f.Set(index.Full(), sizes...)
}
