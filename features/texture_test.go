// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/gfx/events"
	"cogentcore.org/gfx/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTileStarts checks the partition math at the hardware scale: a
// 20000x20000 source with tile edge 8192 gives a 3x3 grid with start
// offsets [0, 8192, 16384].
func TestTileStarts(t *testing.T) {
	starts := TileStarts(20000, 8192)
	assert.Equal(t, []int{0, 8192, 16384}, starts)

	assert.Equal(t, []int{0}, TileStarts(8192, 8192))
	assert.Equal(t, []int{0, 8192}, TileStarts(8193, 8192))
	assert.Equal(t, []int{0}, TileStarts(1, 8192))
}

func newTestTexture(t *testing.T, rows, cols, chans, tile int) *TextureArray {
	t.Helper()
	data := make([]float32, rows*cols*chans)
	for i := range data {
		data[i] = float32(i)
	}
	ta, err := NewTextureArrayTile(data, rows, cols, chans, false, tile)
	require.NoError(t, err)
	return ta
}

func TestTextureArrayGrid(t *testing.T) {
	ta := newTestTexture(t, 20, 20, 1, 8)
	gr, gc := ta.GridShape()
	assert.Equal(t, 3, gr)
	assert.Equal(t, 3, gc)
	assert.Equal(t, []int{0, 8, 16}, ta.RowIndices())
	assert.Equal(t, []int{0, 8, 16}, ta.ColIndices())

	c, err := ta.Chunk(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 16, c.Row)
	assert.Equal(t, 16, c.Col)
	assert.Equal(t, 4, c.Height) // clipped to the master extents
	assert.Equal(t, 4, c.Width)

	_, err = ta.Chunk(3, 0)
	assert.ErrorIs(t, err, index.ErrInvalidIndex)
}

// TestChunkIterator checks the lazy row-major enumeration covers
// every tile exactly once and restarts from the top after Reset.
func TestChunkIterator(t *testing.T) {
	ta := newTestTexture(t, 20, 20, 1, 8)
	it := ta.Chunks()

	var order []int
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		order = append(order, c.Index)
		assert.Equal(t, c.GridRow*3+c.GridCol, c.Index)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, order)

	_, ok := it.Next()
	assert.False(t, ok) // exhausted stays exhausted

	it.Reset()
	c, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 0, c.Index)
}

// TestTextureArraySetRect scales the hardware scenario down by 1000:
// a write to rows [12:18), cols [14:19) of a 20x20 array tiled at 8
// must mark exactly the four tiles it overlaps, each with the
// tile-local intersection in (x, y, z) axis order, and leave every
// value outside the rectangle unchanged.
func TestTextureArraySetRect(t *testing.T) {
	ta := newTestTexture(t, 20, 20, 1, 8)
	recs := map[int]*textureRecorder{}
	it := ta.Chunks()
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		r := &textureRecorder{}
		recs[c.Index] = r
		c.Texture = r
	}

	before := append([]float32{}, ta.Value()...)
	require.NoError(t, ta.Fill(index.NewSlice(12, 18), index.NewSlice(14, 19), -1))

	inside := func(r, c int) bool {
		return r >= 12 && r < 18 && c >= 14 && c < 19
	}
	for r := range 20 {
		for c := range 20 {
			if inside(r, c) {
				assert.Equal(t, float32(-1), ta.ValueAt(r, c, 0), "texel (%d,%d)", r, c)
			} else {
				assert.Equal(t, before[r*20+c], ta.ValueAt(r, c, 0), "texel (%d,%d)", r, c)
			}
		}
	}

	// tiles (1,1), (1,2), (2,1), (2,2) intersect; the rest must be
	// untouched
	for idx, rec := range recs {
		gr, gc := idx/3, idx%3
		if (gr == 1 || gr == 2) && (gc == 1 || gc == 2) {
			require.Len(t, rec.origins, 1, "tile (%d,%d)", gr, gc)
		} else {
			assert.Empty(t, rec.origins, "tile (%d,%d)", gr, gc)
		}
	}

	// tile (1,1) covers rows/cols [8,16): local rect starts at
	// (x=14-8, y=12-8), extends to the tile edge
	r11 := recs[4]
	assert.Equal(t, math32.Vec3i(6, 4, 0), r11.origins[0])
	assert.Equal(t, math32.Vec3i(2, 4, 1), r11.sizes[0])

	// tile (2,2) covers rows/cols [16,20): rect is clipped to the
	// written region's end
	r22 := recs[8]
	assert.Equal(t, math32.Vec3i(0, 0, 0), r22.origins[0])
	assert.Equal(t, math32.Vec3i(3, 2, 1), r22.sizes[0])
}

func TestTextureArraySetValues(t *testing.T) {
	ta := newTestTexture(t, 4, 4, 2, 8)

	// one value per texel replicates across channels
	require.NoError(t, ta.Set(index.At(1), index.NewSlice(0, 2), 7, 8))
	assert.Equal(t, float32(7), ta.ValueAt(1, 0, 0))
	assert.Equal(t, float32(7), ta.ValueAt(1, 0, 1))
	assert.Equal(t, float32(8), ta.ValueAt(1, 1, 0))

	// one value per texel channel applies elementwise
	require.NoError(t, ta.Set(index.At(0), index.At(0), 1, 2))
	assert.Equal(t, float32(1), ta.ValueAt(0, 0, 0))
	assert.Equal(t, float32(2), ta.ValueAt(0, 0, 1))

	err := ta.Set(index.At(0), index.NewSlice(0, 3), 1, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	// empty selection is a no-op
	require.NoError(t, ta.Set(index.At(0), index.List{}, 5))
	assert.Equal(t, float32(1), ta.ValueAt(0, 0, 0))
}

func TestTextureArrayGet(t *testing.T) {
	ta := newTestTexture(t, 3, 3, 1, 8)
	got, err := ta.Get(index.NewSlice(1, 3), index.At(2))
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 8}, got)

	mm := ta.MinMax()
	assert.Equal(t, float32(0), mm.Min)
	assert.Equal(t, float32(8), mm.Max)
}

func TestTextureArrayEvents(t *testing.T) {
	ta := newTestTexture(t, 4, 4, 1, 8)
	var got []*events.Event
	require.NoError(t, ta.OnChange(func(ev *events.Event) {
		got = append(got, ev)
	}))

	rows, cols := index.NewSlice(0, 2), index.At(1)
	require.NoError(t, ta.Fill(rows, cols, 3))
	require.Len(t, got, 1)
	assert.Equal(t, "data", got[0].Type)
	assert.Equal(t, index.Cell{Row: rows, Col: cols}, got[0].Info["key"])
	assert.Equal(t, float32(3), got[0].Info["value"])

	// empty selections dispatch nothing
	require.NoError(t, ta.Fill(index.List{}, cols, 3))
	assert.Len(t, got, 1)
}

func TestTextureArrayConstruction(t *testing.T) {
	_, err := NewTextureArray(make([]float32, 12), 3, 4, 1, false)
	require.NoError(t, err)

	_, err = NewTextureArray(make([]float32, 10), 3, 4, 1, false)
	assert.ErrorIs(t, err, ErrConstruction)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewTextureArray(make([]float32, 12), 3, 4, 5, false)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = NewTextureArray(nil, 0, 4, 1, false)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = NewTextureArrayTile(make([]float32, 12), 3, 4, 1, false, 0)
	assert.ErrorIs(t, err, ErrConstruction)
}

// TestTextureArrayIsolate checks deep copy vs adoption of the master
// array.
func TestTextureArrayIsolate(t *testing.T) {
	src := []float32{1, 2, 3, 4}
	ta, err := NewTextureArray(src, 2, 2, 1, true)
	require.NoError(t, err)
	require.NoError(t, ta.Fill(index.At(0), index.At(0), 9))
	assert.Equal(t, float32(1), src[0])

	ta, err = NewTextureArray(src, 2, 2, 1, false)
	require.NoError(t, err)
	require.NoError(t, ta.Fill(index.At(0), index.At(0), 9))
	assert.Equal(t, float32(9), src[0])
}
