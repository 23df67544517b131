// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"
	"slices"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/math32/minmax"
	"cogentcore.org/gfx/index"
)

// DefaultTileEdge is the default maximum texture tile edge length,
// the common hardware limit for a 2D texture dimension.
const DefaultTileEdge = 8192

// Chunk is one tile of a [TextureArray]'s grid: a window of at most
// TileEdge x TileEdge texels over the master array, with its own
// device texture. Tiles cover the master exactly, no gaps and no
// overlaps.
type Chunk struct {

	// Index is the tile's position in row-major enumeration order.
	Index int

	// GridRow and GridCol are the tile's position in the grid.
	GridRow, GridCol int

	// Row and Col are the master-array offsets of the tile's first
	// texel.
	Row, Col int

	// Height and Width are the tile's extents in texels.
	Height, Width int

	// Texture is the engine-side handle receiving this tile's
	// upload rectangles, attached by the engine, nil until then.
	Texture DeviceTexture
}

// TextureArray is the image-data feature of a graphic, dispatching
// "data" events. It holds one master float32 array of rows x cols
// texels with 1 to 4 channels, partitioned into a grid of
// ceil(rows/T) x ceil(cols/T) tiles of edge at most T, so that images
// larger than the hardware texture limit still upload tile by tile.
// Writes go through [TextureArray.Set], which updates the master
// array and marks the minimal tile-local rectangle on every tile the
// write overlaps.
type TextureArray struct {
	Base
	data       []float32
	rows, cols int
	chans      int
	tile       int
	gridRows   int
	gridCols   int
	rowIndices []int
	colIndices []int
	chunks     []*Chunk
}

// NewTextureArray returns a texture feature over data with the given
// shape, tiled at [DefaultTileEdge]. data is rows*cols*chans float32
// values in row-major order; chans may be 1 (a plain 2D array) up
// to 4 (RGBA). isolate deep-copies data.
func NewTextureArray(data []float32, rows, cols, chans int, isolate bool) (*TextureArray, error) {
	return NewTextureArrayTile(data, rows, cols, chans, isolate, DefaultTileEdge)
}

// NewTextureArrayTile is [NewTextureArray] with an explicit maximum
// tile edge, for engines reporting a different texture size limit.
func NewTextureArrayTile(data []float32, rows, cols, chans int, isolate bool, tile int) (*TextureArray, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: texture shape must be at least 1x1, got %dx%d", ErrConstruction, rows, cols)
	}
	if chans < 1 || chans > 4 {
		return nil, fmt.Errorf("%w: texture data must have 1 to 4 channels, got %d", ErrConstruction, chans)
	}
	if tile < 1 {
		return nil, fmt.Errorf("%w: tile edge must be positive, got %d", ErrConstruction, tile)
	}
	if len(data) != rows*cols*chans {
		return nil, fmt.Errorf("%w: %w: %dx%dx%d texture needs %d values, got %d", ErrConstruction, ErrShapeMismatch, rows, cols, chans, rows*cols*chans, len(data))
	}
	if isolate {
		data = slices.Clone(data)
	}
	ta := &TextureArray{
		Base:  newBase("data"),
		data:  data,
		rows:  rows,
		cols:  cols,
		chans: chans,
		tile:  tile,
	}
	ta.partition()
	return ta, nil
}

// TileStarts returns the start offset of every tile covering n texels
// with the given maximum tile edge: ceil(n/tile) offsets at tile
// strides. The resulting tiles cover [0, n) exactly, no gaps and no
// overlaps.
func TileStarts(n, tile int) []int {
	starts := make([]int, (n+tile-1)/tile)
	for i := range starts {
		starts[i] = i * tile
	}
	return starts
}

// partition computes the tile grid: start offsets every tile rows and
// cols, each chunk clipped to the master extents.
func (ta *TextureArray) partition() {
	ta.rowIndices = TileStarts(ta.rows, ta.tile)
	ta.colIndices = TileStarts(ta.cols, ta.tile)
	ta.gridRows = len(ta.rowIndices)
	ta.gridCols = len(ta.colIndices)
	ta.chunks = make([]*Chunk, 0, ta.gridRows*ta.gridCols)
	for gr := range ta.gridRows {
		for gc := range ta.gridCols {
			row := ta.rowIndices[gr]
			col := ta.colIndices[gc]
			ta.chunks = append(ta.chunks, &Chunk{
				Index:   gr*ta.gridCols + gc,
				GridRow: gr,
				GridCol: gc,
				Row:     row,
				Col:     col,
				Height:  min(ta.tile, ta.rows-row),
				Width:   min(ta.tile, ta.cols-col),
			})
		}
	}
}

// Rows returns the master row count.
func (ta *TextureArray) Rows() int { return ta.rows }

// Cols returns the master column count.
func (ta *TextureArray) Cols() int { return ta.cols }

// Channels returns the per-texel channel count.
func (ta *TextureArray) Channels() int { return ta.chans }

// TileEdge returns the maximum tile edge length.
func (ta *TextureArray) TileEdge() int { return ta.tile }

// GridShape returns the tile grid's row and column counts.
func (ta *TextureArray) GridShape() (rows, cols int) {
	return ta.gridRows, ta.gridCols
}

// RowIndices returns the master row offset of each tile row. Treat as
// read-only.
func (ta *TextureArray) RowIndices() []int { return ta.rowIndices }

// ColIndices returns the master column offset of each tile column.
// Treat as read-only.
func (ta *TextureArray) ColIndices() []int { return ta.colIndices }

// Chunk returns the tile at the given grid position.
func (ta *TextureArray) Chunk(gridRow, gridCol int) (*Chunk, error) {
	if gridRow < 0 || gridRow >= ta.gridRows || gridCol < 0 || gridCol >= ta.gridCols {
		return nil, fmt.Errorf("%w: chunk (%d, %d) out of range for %dx%d grid", index.ErrInvalidIndex, gridRow, gridCol, ta.gridRows, ta.gridCols)
	}
	return ta.chunks[gridRow*ta.gridCols+gridCol], nil
}

// Chunks returns a restartable iterator over every tile exactly once,
// in row-major order.
func (ta *TextureArray) Chunks() *ChunkIterator {
	return &ChunkIterator{ta: ta}
}

// ChunkIterator enumerates a [TextureArray]'s tiles in row-major
// order. It is lazy and restartable: Next returns tiles one at a
// time, and Reset rewinds to the first tile.
type ChunkIterator struct {
	ta   *TextureArray
	next int
}

// Next returns the next tile, or false when every tile has been
// returned since the last Reset.
func (it *ChunkIterator) Next() (*Chunk, bool) {
	if it.next >= len(it.ta.chunks) {
		return nil, false
	}
	c := it.ta.chunks[it.next]
	it.next++
	return c, true
}

// Reset rewinds the iterator to the first tile.
func (it *ChunkIterator) Reset() {
	it.next = 0
}

// Value returns the live master array, one logical array regardless
// of tiling. Mutate through Set, not here.
func (ta *TextureArray) Value() []float32 {
	return ta.data
}

// ValueAt returns the value at the given texel and channel.
func (ta *TextureArray) ValueAt(row, col, chn int) float32 {
	return ta.data[(row*ta.cols+col)*ta.chans+chn]
}

// MinMax returns the range of the master array's values, the default
// vmin and vmax of an image graphic.
func (ta *TextureArray) MinMax() minmax.F32 {
	var mm minmax.F32
	if len(ta.data) == 0 {
		return mm
	}
	mn, mx := ta.data[0], ta.data[0]
	for _, v := range ta.data[1:] {
		mn = math32.Min(mn, v)
		mx = math32.Max(mx, v)
	}
	mm.Set(mn, mx)
	return mm
}

// Get returns copies of the values the row and column keys select, in
// row-major traversal order, channels innermost.
func (ta *TextureArray) Get(rows, cols index.Key) ([]float32, error) {
	rowIdx, err := index.Indices(rows, ta.rows)
	if err != nil {
		return nil, err
	}
	colIdx, err := index.Indices(cols, ta.cols)
	if err != nil {
		return nil, err
	}
	out := make([]float32, 0, len(rowIdx)*len(colIdx)*ta.chans)
	for _, r := range rowIdx {
		for _, c := range colIdx {
			base := (r*ta.cols + c) * ta.chans
			out = append(out, ta.data[base:base+ta.chans]...)
		}
	}
	return out, nil
}

// Set writes values into the texels the row and column keys select,
// then marks the minimal tile-local rectangle on every tile the
// written region overlaps and dispatches one "data" event. One value
// broadcasts to every selected texel across all channels; a value per
// texel replicates across channels; a value per texel channel applies
// elementwise, row-major with channels innermost. Other counts fail
// with [ErrShapeMismatch]. Keys selecting nothing write and mark
// nothing.
func (ta *TextureArray) Set(rows, cols index.Key, vals ...float32) error {
	rowIdx, err := index.Indices(rows, ta.rows)
	if err != nil {
		return err
	}
	colIdx, err := index.Indices(cols, ta.cols)
	if err != nil {
		return err
	}
	if len(rowIdx) == 0 || len(colIdx) == 0 {
		return nil
	}
	np := len(rowIdx) * len(colIdx)
	if len(vals) != 1 && len(vals) != np && len(vals) != np*ta.chans {
		return fmt.Errorf("%w: keys select %d texels x %d channels, got %d values (want 1, %d, or %d)", ErrShapeMismatch, np, ta.chans, len(vals), np, np*ta.chans)
	}
	for k, r := range rowIdx {
		for m, c := range colIdx {
			base := (r*ta.cols + c) * ta.chans
			p := k*len(colIdx) + m
			for ch := range ta.chans {
				switch len(vals) {
				case 1:
					ta.data[base+ch] = vals[0]
				case np:
					ta.data[base+ch] = vals[p]
				default:
					ta.data[base+ch] = vals[p*ta.chans+ch]
				}
			}
		}
	}
	rowRegion, err := index.Resolve(rows, ta.rows)
	if err != nil {
		return err
	}
	colRegion, err := index.Resolve(cols, ta.cols)
	if err != nil {
		return err
	}
	ta.markRect(rowRegion, colRegion)
	var val any = vals
	if len(vals) == 1 {
		val = vals[0]
	}
	ta.send(map[string]any{"key": index.Cell{Row: rows, Col: cols}, "value": val})
	return nil
}

// Fill writes one value into every texel the keys select, the
// broadcast form of Set.
func (ta *TextureArray) Fill(rows, cols index.Key, v float32) error {
	return ta.Set(rows, cols, v)
}

// markRect intersects the written master-array rectangle with every
// tile and forwards each non-empty overlap to the tile's texture in
// tile-local coordinates, origin (x, y, z) and size (w, h, d) axis
// order.
func (ta *TextureArray) markRect(rowRegion, colRegion index.Region) {
	for _, c := range ta.chunks {
		if c.Texture == nil {
			continue
		}
		r0 := max(rowRegion.Offset, c.Row)
		r1 := min(rowRegion.End(), c.Row+c.Height)
		c0 := max(colRegion.Offset, c.Col)
		c1 := min(colRegion.End(), c.Col+c.Width)
		if r1 <= r0 || c1 <= c0 {
			continue
		}
		origin := math32.Vec3i(int32(c0-c.Col), int32(r0-c.Row), 0)
		size := math32.Vec3i(int32(c1-c0), int32(r1-r0), 1)
		c.Texture.UpdateRange(origin, size)
	}
}
