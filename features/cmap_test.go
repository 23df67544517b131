// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"testing"

	"cogentcore.org/core/colors/colormap"
	"cogentcore.org/gfx/events"
	"cogentcore.org/gfx/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVertexCmapWriteThrough checks that setting a colormap on a
// 10-point feature produces the palette's sampled values with the
// current alpha in W, delivered through the color feature's normal
// write path: upload marked, "colors" event fired.
func TestVertexCmapWriteThrough(t *testing.T) {
	vc, err := NewVertexColors("white", 10, true)
	require.NoError(t, err)
	rec := &bufferRecorder{}
	vc.Buffer.SetDevice(rec)

	var types []string
	keep := func(ev *events.Event) {
		types = append(types, ev.Type)
	}
	require.NoError(t, vc.OnChange(keep))

	cm, err := NewVertexCmap(vc, "", nil, 1)
	require.NoError(t, err)
	require.NoError(t, cm.OnChange(keep))
	assert.Equal(t, 1, vc.Buffer.Shared())

	require.NoError(t, cm.SetName("ColdHot"))
	assert.Equal(t, "ColdHot", cm.Name())

	pal := colormap.AvailableMaps["ColdHot"]
	require.NotNil(t, pal)
	for i, c := range vc.Value() {
		want := rgbaToVector4(pal.Map(float32(i) / 9))
		assert.Equal(t, want.X, c.X, "row %d red", i)
		assert.Equal(t, want.Y, c.Y, "row %d green", i)
		assert.Equal(t, want.Z, c.Z, "row %d blue", i)
		assert.Equal(t, float32(1), c.W, "row %d alpha", i)
	}
	assert.Equal(t, []index.Region{{Offset: 0, Size: 10}}, rec.regions)
	assert.Equal(t, []string{"colors", "cmap"}, types)
}

// TestVertexCmapAlpha checks that an alpha-only write changes just
// the W column, leaving RGB bit-identical.
func TestVertexCmapAlpha(t *testing.T) {
	vc, err := NewVertexColors("white", 10, true)
	require.NoError(t, err)
	cm, err := NewVertexCmap(vc, "ColdHot", nil, 1)
	require.NoError(t, err)

	var before []float32
	for _, c := range vc.Value() {
		before = append(before, c.X, c.Y, c.Z)
	}

	require.NoError(t, cm.SetAlpha(0.5))
	assert.Equal(t, float32(0.5), cm.Alpha())
	for i, c := range vc.Value() {
		assert.Equal(t, before[i*3], c.X, "row %d red", i)
		assert.Equal(t, before[i*3+1], c.Y, "row %d green", i)
		assert.Equal(t, before[i*3+2], c.Z, "row %d blue", i)
		assert.Equal(t, float32(0.5), c.W, "row %d alpha", i)
	}

	require.NoError(t, cm.SetAlpha(2)) // clamped
	assert.Equal(t, float32(1), cm.Alpha())
}

func TestVertexCmapUnknown(t *testing.T) {
	vc, err := NewVertexColors("white", 4, true)
	require.NoError(t, err)
	cm, err := NewVertexCmap(vc, "", nil, 1)
	require.NoError(t, err)

	err = cm.SetName("definitely-no-such-map")
	require.Error(t, err)
	assert.Empty(t, cm.Name())
	for _, c := range vc.Value() {
		assert.Equal(t, white, c) // nothing mutated
	}

	_, err = NewVertexCmap(vc, "definitely-no-such-map", nil, 1)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = NewVertexCmap(nil, "", nil, 1)
	assert.ErrorIs(t, err, ErrConstruction)
}

// TestVertexCmapStaleness checks the documented inconsistency:
// indexed writes to the color buffer do not clear the colormap name;
// only the explicit ClearName path does.
func TestVertexCmapStaleness(t *testing.T) {
	vc, err := NewVertexColors("white", 6, true)
	require.NoError(t, err)
	cm, err := NewVertexCmap(vc, "ColdHot", nil, 1)
	require.NoError(t, err)

	require.NoError(t, vc.Set(index.At(2), "red"))
	assert.Equal(t, "ColdHot", cm.Name()) // stale, preserved

	cm.ClearName()
	assert.Empty(t, cm.Name())
}

func TestVertexCmapClearBySetName(t *testing.T) {
	vc, err := NewVertexColors("white", 4, true)
	require.NoError(t, err)
	cm, err := NewVertexCmap(vc, "ColdHot", nil, 1)
	require.NoError(t, err)
	var snapshot []float32
	for _, c := range vc.Value() {
		snapshot = append(snapshot, c.X, c.Y, c.Z, c.W)
	}

	require.NoError(t, cm.SetName("")) // clears without touching colors
	assert.Empty(t, cm.Name())
	for i, c := range vc.Value() {
		assert.Equal(t, snapshot[i*4], c.X)
		assert.Equal(t, snapshot[i*4+1], c.Y)
		assert.Equal(t, snapshot[i*4+2], c.Z)
		assert.Equal(t, snapshot[i*4+3], c.W)
	}
}

func TestVertexCmapTransform(t *testing.T) {
	vc, err := NewVertexColors("white", 4, true)
	require.NoError(t, err)
	cm, err := NewVertexCmap(vc, "ColdHot", nil, 1)
	require.NoError(t, err)

	err = cm.SetTransform([]float32{1, 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	// reversed transform samples the map backwards
	require.NoError(t, cm.SetTransform([]float32{3, 2, 1, 0}))
	pal := colormap.AvailableMaps["ColdHot"]
	first := rgbaToVector4(pal.Map(1))
	got, err := vc.At(0)
	require.NoError(t, err)
	assert.Equal(t, first.X, got.X)
	assert.Equal(t, first.Y, got.Y)
	assert.Equal(t, first.Z, got.Z)

	assert.Equal(t, []float32{3, 2, 1, 0}, cm.Transform())

	_, err = NewVertexCmap(vc, "", []float32{1}, 1)
	assert.ErrorIs(t, err, ErrConstruction)
}

// TestVertexCmapReentrancy checks that a colors listener reacting to
// the write-through cannot recursively re-trigger the cmap setter.
func TestVertexCmapReentrancy(t *testing.T) {
	vc, err := NewVertexColors("white", 4, true)
	require.NoError(t, err)
	cm, err := NewVertexCmap(vc, "", nil, 1)
	require.NoError(t, err)

	n := 0
	require.NoError(t, vc.OnChange(func(ev *events.Event) {
		n++
		assert.NoError(t, cm.SetName("ColdHot")) // re-entrant: ignored
	}))

	require.NoError(t, cm.SetName("ColdHot"))
	assert.Equal(t, 1, n)
	assert.Equal(t, "ColdHot", cm.Name())
}
