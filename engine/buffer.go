// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"log/slog"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/gpu"
	"cogentcore.org/gfx/features"
	"cogentcore.org/gfx/index"
	"github.com/cogentcore/webgpu/wgpu"
)

// span is a half-open dirty row interval.
type span struct {
	start, end int
}

// addSpan inserts s into the sorted, disjoint span list, merging
// overlapping and adjacent entries so the list stays sorted and
// disjoint. Empty spans are dropped.
func addSpan(spans []span, s span) []span {
	if s.end <= s.start {
		return spans
	}
	i := 0
	for i < len(spans) && spans[i].end < s.start {
		i++
	}
	j := i
	for j < len(spans) && spans[j].start <= s.end {
		s.start = min(s.start, spans[j].start)
		s.end = max(s.end, spans[j].end)
		j++
	}
	return slices.Replace(spans, i, j, s)
}

// Buffer is the engine adapter for one [features.Buffer]: a device
// buffer mirroring the feature's rows. It implements
// [features.DeviceBuffer], accumulating the row spans that feature
// writes dirty; [Buffer.Flush] uploads them from the feature's live
// storage, which the adapter aliases as bytes.
type Buffer struct {

	// Label is the diagnostic name of the device buffer.
	Label string

	device  gpu.Device
	buffer  *wgpu.Buffer
	data    []byte
	stride  int
	rows    int
	pending []span
}

// AttachBuffer creates a device buffer initialized with the feature
// buffer's current rows and registers the adapter as the feature's
// device handle, so subsequent feature writes accumulate upload spans
// here. usage is ORed with CopyDst, which Flush requires.
func AttachBuffer[T features.Row](dev *gpu.Device, fb *features.Buffer[T], label string, usage wgpu.BufferUsage) (*Buffer, error) {
	data := wgpu.ToBytes(fb.Value())
	buf, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: data,
		Usage:    usage | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	b := &Buffer{Label: label, device: *dev, buffer: buf, data: data, rows: fb.Len()}
	if b.rows > 0 {
		b.stride = len(data) / b.rows
	}
	fb.SetDevice(b)
	if Debug {
		slog.Info("engine.AttachBuffer", "label", label, "rows", b.rows, "bytes", len(data))
	}
	return b, nil
}

// UpdateRange implements [features.DeviceBuffer], marking rows
// [offset, offset+size) for the next [Buffer.Flush]. Marks are clipped
// to the buffer extents and coalesced; no transfer happens here.
func (b *Buffer) UpdateRange(offset, size int) {
	start := max(offset, 0)
	end := min(offset+size, b.rows)
	b.pending = addSpan(b.pending, span{start, end})
}

// Pending returns the accumulated dirty row spans as regions, sorted
// and disjoint.
func (b *Buffer) Pending() []index.Region {
	out := make([]index.Region, len(b.pending))
	for i, s := range b.pending {
		out[i] = index.Region{Offset: s.start, Size: s.end - s.start}
	}
	return out
}

// Rows returns the fixed row count of the mirrored buffer.
func (b *Buffer) Rows() int {
	return b.rows
}

// Device returns the underlying device buffer, for binding.
func (b *Buffer) Device() *wgpu.Buffer {
	return b.buffer
}

// Flush writes every pending span to the device buffer, one
// WriteBuffer per span, and clears the pending list. On a write error
// the failed span and everything after it stay pending.
func (b *Buffer) Flush() error {
	for i, s := range b.pending {
		err := b.device.Queue.WriteBuffer(b.buffer, uint64(s.start*b.stride), b.data[s.start*b.stride:s.end*b.stride])
		if errors.Log(err) != nil {
			b.pending = slices.Delete(b.pending, 0, i)
			return err
		}
	}
	b.pending = b.pending[:0]
	return nil
}

// Release frees the device buffer. The adapter must not be used after.
func (b *Buffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}
