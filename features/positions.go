// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/gfx/index"
)

// VertexPositions is the xyz vertex data of a graphic, dispatching
// "data" events. Rows are [math32.Vector3].
type VertexPositions struct {
	Base

	// Buffer holds the position rows and their device handle.
	Buffer *Buffer[math32.Vector3]
}

// NewVertexPositions returns a position feature from any of the
// accepted forms: []math32.Vector3 used directly, []math32.Vector2
// with z filled as 0, or a []float32 or []float64 of y values with x
// filled as the row index. float64 input is converted down with a
// debug-level notice. isolate deep-copies adopted []math32.Vector3
// data; the other forms always build fresh rows.
func NewVertexPositions(data any, isolate bool) (*VertexPositions, error) {
	var rows []math32.Vector3
	switch d := data.(type) {
	case []math32.Vector3:
		f := &VertexPositions{Base: newBase("data")}
		f.Buffer = NewBuffer(d, isolate)
		if f.Buffer.Len() == 0 {
			return nil, fmt.Errorf("%w: positions must have at least one vertex", ErrConstruction)
		}
		return f, nil
	case []math32.Vector2:
		rows = make([]math32.Vector3, len(d))
		for i, v := range d {
			rows[i] = math32.Vec3(v.X, v.Y, 0)
		}
	case []float32:
		rows = make([]math32.Vector3, len(d))
		for i, y := range d {
			rows[i] = math32.Vec3(float32(i), y, 0)
		}
	case []float64:
		slog.Debug("features.NewVertexPositions: converting float64 data to float32")
		rows = make([]math32.Vector3, len(d))
		for i, y := range d {
			rows[i] = math32.Vec3(float32(i), float32(y), 0)
		}
	default:
		return nil, fmt.Errorf("%w: positions must be []math32.Vector3, []math32.Vector2, []float32, or []float64, not %T", ErrConstruction, data)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: positions must have at least one vertex", ErrConstruction)
	}
	f := &VertexPositions{Base: newBase("data")}
	f.Buffer = NewBuffer(rows, false)
	return f, nil
}

// Len returns the vertex count.
func (f *VertexPositions) Len() int {
	return f.Buffer.Len()
}

// Value returns the live position rows. Mutate through Set, not here.
func (f *VertexPositions) Value() []math32.Vector3 {
	return f.Buffer.Value()
}

// At returns the position of vertex i.
func (f *VertexPositions) At(i int) (math32.Vector3, error) {
	return f.Buffer.At(i)
}

// Get returns copies of the positions key selects.
func (f *VertexPositions) Get(key index.Key) ([]math32.Vector3, error) {
	return f.Buffer.Get(key)
}

// Set writes positions at the rows key selects, marks the minimal
// upload region, and dispatches one "data" event with the key and
// value. One position broadcasts; otherwise the count must match the
// selected rows. For column writes use [VertexPositions.SetComponent].
func (f *VertexPositions) Set(key index.Key, pts ...math32.Vector3) error {
	region, err := f.Buffer.Set(key, pts...)
	if err != nil {
		return err
	}
	if region.IsNil() {
		return nil
	}
	var val any = pts
	if len(pts) == 1 {
		val = pts[0]
	}
	f.send(map[string]any{"key": keyInfo(key), "value": val})
	return nil
}

// SetAll replaces every row; the count must equal the vertex count,
// which is fixed for the graphic's lifetime.
func (f *VertexPositions) SetAll(pts []math32.Vector3) error {
	return f.Set(index.Full(), pts...)
}

// SetComponent writes scalar values into one xyz column at the rows
// key selects, the column-write form used for updating just the y
// values of a line. One value broadcasts; otherwise the count must
// match the selected rows.
func (f *VertexPositions) SetComponent(key index.Key, dim math32.Dims, vals ...float32) error {
	n := f.Buffer.Len()
	rowIdx, err := index.Indices(key, n)
	if err != nil {
		return err
	}
	if len(rowIdx) == 0 {
		return nil
	}
	if dim < math32.X || dim > math32.Z {
		return fmt.Errorf("%w: position component must be X, Y, or Z, got %v", index.ErrInvalidIndex, dim)
	}
	if len(vals) != 1 && len(vals) != len(rowIdx) {
		return fmt.Errorf("%w: key selects %d rows, got %d values (want 1 or %d)", ErrShapeMismatch, len(rowIdx), len(vals), len(rowIdx))
	}
	rows := f.Buffer.Value()
	for k, i := range rowIdx {
		v := vals[0]
		if len(vals) > 1 {
			v = vals[k]
		}
		rows[i].SetDim(dim, v)
	}
	region, err := index.Resolve(key, n)
	if err != nil {
		return err
	}
	f.Buffer.MarkRange(region)
	var val any = vals
	if len(vals) == 1 {
		val = vals[0]
	}
	f.send(map[string]any{"key": index.Cell{Row: key, Col: index.At(int(dim))}, "value": val})
	return nil
}
