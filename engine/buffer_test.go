// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"cogentcore.org/core/gpu"
	"cogentcore.org/gfx/features"
	"cogentcore.org/gfx/index"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSpan(t *testing.T) {
	tests := []struct {
		name string
		have []span
		add  span
		want []span
	}{
		{"into empty", nil, span{2, 5}, []span{{2, 5}}},
		{"disjoint after", []span{{2, 5}}, span{8, 9}, []span{{2, 5}, {8, 9}}},
		{"disjoint before", []span{{2, 5}}, span{0, 1}, []span{{0, 1}, {2, 5}}},
		{"disjoint middle", []span{{0, 1}, {8, 9}}, span{3, 5}, []span{{0, 1}, {3, 5}, {8, 9}}},
		{"adjacent end", []span{{2, 5}}, span{5, 7}, []span{{2, 7}}},
		{"adjacent start", []span{{2, 5}}, span{0, 2}, []span{{0, 5}}},
		{"overlap one", []span{{2, 5}}, span{4, 8}, []span{{2, 8}}},
		{"bridge two", []span{{2, 5}, {8, 9}}, span{4, 8}, []span{{2, 9}}},
		{"swallow all", []span{{2, 5}, {8, 9}}, span{0, 20}, []span{{0, 20}}},
		{"contained", []span{{2, 5}}, span{3, 4}, []span{{2, 5}}},
		{"empty dropped", []span{{2, 5}}, span{7, 7}, []span{{2, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, addSpan(tt.have, tt.add))
		})
	}
}

func TestBufferUpdateRange(t *testing.T) {
	b := &Buffer{rows: 100}
	b.UpdateRange(10, 5)
	assert.Equal(t, []index.Region{{Offset: 10, Size: 5}}, b.Pending())

	// adjacent spans coalesce
	b.UpdateRange(15, 5)
	assert.Equal(t, []index.Region{{Offset: 10, Size: 10}}, b.Pending())

	// disjoint spans stay ordered
	b.UpdateRange(40, 10)
	b.UpdateRange(0, 2)
	assert.Equal(t, []index.Region{
		{Offset: 0, Size: 2},
		{Offset: 10, Size: 10},
		{Offset: 40, Size: 10},
	}, b.Pending())

	// marks clip to the buffer extents
	b.UpdateRange(-5, 8)
	b.UpdateRange(95, 50)
	assert.Equal(t, []index.Region{
		{Offset: 0, Size: 3},
		{Offset: 10, Size: 10},
		{Offset: 40, Size: 10},
		{Offset: 95, Size: 5},
	}, b.Pending())

	// empty marks are dropped
	b.UpdateRange(60, 0)
	assert.Len(t, b.Pending(), 4)

	// one mark spanning everything swallows the rest
	b.UpdateRange(0, 100)
	assert.Equal(t, []index.Region{{Offset: 0, Size: 100}}, b.Pending())
}

func TestBufferImplementsDeviceBuffer(t *testing.T) {
	var _ features.DeviceBuffer = &Buffer{}
}

func TestAttachBufferGPU(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := gpu.NoDisplayGPU()
	require.NoError(t, err)
	defer gp.Release()

	ps, err := features.NewPointSizes(float32(1), 8, true)
	require.NoError(t, err)

	b, err := AttachBuffer(dev, ps.Buffer, "sizes", wgpu.BufferUsageVertex)
	require.NoError(t, err)
	defer b.Release()

	assert.Same(t, b, ps.Buffer.Device())
	assert.Equal(t, 8, b.Rows())
	assert.Empty(t, b.Pending())

	require.NoError(t, ps.Set(index.NewSlice(2, 5), 3))
	assert.Equal(t, []index.Region{{Offset: 2, Size: 3}}, b.Pending())

	require.NoError(t, b.Flush())
	assert.Empty(t, b.Pending())
}
