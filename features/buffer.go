// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"
	"slices"

	"cogentcore.org/core/math32"
	"cogentcore.org/gfx/index"
)

// keyInfo is the event representation of an index key: plain ints
// for single-row keys, the key itself otherwise.
func keyInfo(key index.Key) any {
	if at, ok := key.(index.At); ok {
		return int(at)
	}
	return key
}

// Row is the set of row types a [Buffer] holds: bare float32 for
// scalar attributes such as point sizes, [math32.Vector3] for vertex
// positions, and [math32.Vector4] for RGBA colors.
type Row interface {
	float32 | math32.Vector3 | math32.Vector4
}

// Buffer is a change-tracked array of rows mirroring one device
// buffer. The row count is fixed for the lifetime of the owning
// graphic; only values mutate, through [Buffer.Set], which resolves
// the index, writes in place, and forwards the minimal contiguous
// upload region to the attached [DeviceBuffer]. Event dispatch is the
// owning feature's job, layered on top of Set.
//
// A Buffer may be shared between a primary feature and a derived one
// that manages the same storage; sharers call [Buffer.Retain] so the
// owner knows not to assume exclusive ownership.
type Buffer[T Row] struct {
	rows   []T
	shared int
	device DeviceBuffer
}

// NewBuffer returns a buffer over the given rows. When isolate is
// true the rows are deep-copied, protecting against aliasing with
// caller-owned memory; pass false to adopt the slice by reference,
// sharing storage with the caller.
func NewBuffer[T Row](data []T, isolate bool) *Buffer[T] {
	if isolate {
		data = slices.Clone(data)
	}
	return &Buffer[T]{rows: data}
}

// Len returns the fixed row count.
func (b *Buffer[T]) Len() int {
	return len(b.rows)
}

// Value returns the live row slice. It is the read surface of the
// buffer; writing through it bypasses upload tracking and events,
// which is exactly the bypass the derived-feature staleness rules are
// about, so external callers must mutate through Set instead.
func (b *Buffer[T]) Value() []T {
	return b.rows
}

// At returns the row at i, with negative values counting back from
// the end.
func (b *Buffer[T]) At(i int) (T, error) {
	var zero T
	idx, err := index.Indices(index.At(i), len(b.rows))
	if err != nil {
		return zero, err
	}
	return b.rows[idx[0]], nil
}

// Get returns copies of the rows key selects, in traversal order.
func (b *Buffer[T]) Get(key index.Key) ([]T, error) {
	idx, err := index.Indices(key, len(b.rows))
	if err != nil {
		return nil, err
	}
	out := make([]T, len(idx))
	for k, i := range idx {
		out[k] = b.rows[i]
	}
	return out, nil
}

// Set writes rows at the positions key selects and marks the
// resolved region for upload. One value broadcasts across every
// selected position; otherwise the value count must equal the
// selected count, applied in traversal order, or Set fails with
// [ErrShapeMismatch]. A key selecting nothing writes nothing and
// marks nothing. The returned region is what was marked.
func (b *Buffer[T]) Set(key index.Key, rows ...T) (index.Region, error) {
	n := len(b.rows)
	idx, err := index.Indices(key, n)
	if err != nil {
		return index.Region{}, err
	}
	if len(idx) == 0 {
		return index.Region{}, nil
	}
	region, err := index.Resolve(key, n)
	if err != nil {
		return index.Region{}, err
	}
	switch {
	case len(rows) == 1:
		for _, i := range idx {
			b.rows[i] = rows[0]
		}
	case len(rows) == len(idx):
		for k, i := range idx {
			b.rows[i] = rows[k]
		}
	default:
		return index.Region{}, fmt.Errorf("%w: key selects %d rows, got %d values (want 1 or %d)", ErrShapeMismatch, len(idx), len(rows), len(idx))
	}
	b.MarkRange(region)
	return region, nil
}

// MarkRange forwards a row span to the device handle, for owners in
// this package that write rows in place (component-column writes)
// and still honor the write-then-mark-then-notify order.
func (b *Buffer[T]) MarkRange(r index.Region) {
	if b.device != nil && !r.IsNil() {
		b.device.UpdateRange(r.Offset, r.Size)
	}
}

// SetDevice attaches the engine-side handle that receives upload
// regions. A nil device detaches; writes still apply to the rows.
func (b *Buffer[T]) SetDevice(d DeviceBuffer) {
	b.device = d
}

// Device returns the attached engine-side handle, or nil.
func (b *Buffer[T]) Device() DeviceBuffer {
	return b.device
}

// Retain records one more feature sharing this buffer's storage.
func (b *Buffer[T]) Retain() {
	b.shared++
}

// Release undoes one Retain.
func (b *Buffer[T]) Release() {
	if b.shared > 0 {
		b.shared--
	}
}

// Shared returns how many features beyond the owner reference this
// buffer.
func (b *Buffer[T]) Shared() int {
	return b.shared
}
