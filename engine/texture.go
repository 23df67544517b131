// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/slicesx"
	"cogentcore.org/core/gpu"
	"cogentcore.org/core/math32"
	"cogentcore.org/gfx/features"
	"github.com/cogentcore/webgpu/wgpu"
)

// Rect is a dirty texel rectangle in tile-local coordinates, the
// half-open box [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no texels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// touches reports whether the rectangles overlap or share an edge or
// corner, the condition for merging them.
func (r Rect) touches(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W && r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// union returns the bounding box of both rectangles.
func (r Rect) union(o Rect) Rect {
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.W, o.X+o.W)
	y1 := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// addRect inserts r into the rect list, merging touching rectangles
// into their bounding box until no merges apply. The bounding box can
// cover texels neither input did; like row spans, marks overestimate
// conservatively rather than fragment.
func addRect(rects []Rect, r Rect) []Rect {
	if r.Empty() {
		return rects
	}
	for {
		merged := false
		for i, o := range rects {
			if r.touches(o) {
				r = r.union(o)
				rects = slices.Delete(rects, i, i+1)
				merged = true
				break
			}
		}
		if !merged {
			return append(rects, r)
		}
	}
}

// Texture is the engine adapter for one [features.Chunk]: a device
// texture covering the chunk's window of the master array. It
// implements [features.DeviceTexture], accumulating the tile-local
// rectangles that feature writes dirty; [Texture.Flush] uploads them
// straight out of the master array, using the master row stride as
// BytesPerRow so a window of a larger array transfers without copying.
type Texture struct {

	// Label is the diagnostic name of the device texture.
	Label string

	device     gpu.Device
	texture    *wgpu.Texture
	view       *wgpu.TextureView
	master     []float32
	masterCols int
	chans      int
	row, col   int
	width      int
	height     int
	pending    []Rect
	scratch    []float32
}

// AttachTextureArray creates one device texture per tile of the
// feature array and registers each adapter as its tile's device
// handle. Tiles start fully dirty, so the first flush uploads
// everything. The texture format follows the channel count: R32Float,
// RG32Float, or RGBA32Float, with 3 channel masters staged to RGBA
// with alpha 1 during upload.
func AttachTextureArray(dev *gpu.Device, ta *features.TextureArray, label string) ([]*Texture, error) {
	var format wgpu.TextureFormat
	switch ta.Channels() {
	case 1:
		format = wgpu.TextureFormatR32Float
	case 2:
		format = wgpu.TextureFormatRG32Float
	default:
		format = wgpu.TextureFormatRGBA32Float
	}
	var out []*Texture
	it := ta.Chunks()
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		tx := &Texture{
			Label:      fmt.Sprintf("%s[%d,%d]", label, c.GridRow, c.GridCol),
			device:     *dev,
			master:     ta.Value(),
			masterCols: ta.Cols(),
			chans:      ta.Channels(),
			row:        c.Row,
			col:        c.Col,
			width:      c.Width,
			height:     c.Height,
		}
		t, err := dev.Device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         tx.Label,
			Size:          wgpu.Extent3D{Width: uint32(c.Width), Height: uint32(c.Height), DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     wgpu.TextureDimension2D,
			Format:        format,
			Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		})
		if errors.Log(err) != nil {
			ReleaseTextures(out)
			return nil, err
		}
		tx.texture = t
		vw, err := t.CreateView(nil)
		if errors.Log(err) != nil {
			t.Release()
			ReleaseTextures(out)
			return nil, err
		}
		tx.view = vw
		tx.UpdateRange(math32.Vec3i(0, 0, 0), math32.Vec3i(int32(c.Width), int32(c.Height), 1))
		c.Texture = tx
		out = append(out, tx)
	}
	if Debug {
		gr, gc := ta.GridShape()
		slog.Info("engine.AttachTextureArray", "label", label, "grid", fmt.Sprintf("%dx%d", gr, gc), "format", format)
	}
	return out, nil
}

// UpdateRange implements [features.DeviceTexture]. origin and size are
// tile-local, in (x, y, z) and (width, height, depth) axis order; the
// depth extent is ignored, tiles are single-layer 2D. Marks are
// clipped to the tile and coalesced; no transfer happens here.
func (tx *Texture) UpdateRange(origin, size math32.Vector3i) {
	x0 := max(int(origin.X), 0)
	y0 := max(int(origin.Y), 0)
	x1 := min(int(origin.X)+int(size.X), tx.width)
	y1 := min(int(origin.Y)+int(size.Y), tx.height)
	tx.pending = addRect(tx.pending, Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0})
}

// Pending returns the accumulated dirty rectangles.
func (tx *Texture) Pending() []Rect {
	return slices.Clone(tx.pending)
}

// View returns the texture view, for binding.
func (tx *Texture) View() *wgpu.TextureView {
	return tx.view
}

// Flush uploads every pending rectangle to the device texture and
// clears the pending list.
func (tx *Texture) Flush() {
	for _, r := range tx.pending {
		tx.write(r)
	}
	tx.pending = tx.pending[:0]
}

// padRGB stages the master-array window at (row+r.Y, col+r.X) of r's
// extents into scratch as packed RGBA texels with alpha 1, reusing
// scratch's storage when it is large enough.
func padRGB(scratch, master []float32, masterCols, row, col int, r Rect) []float32 {
	scratch = slicesx.SetLength(scratch, r.W*r.H*4)
	for y := range r.H {
		src := ((row+r.Y+y)*masterCols + col + r.X) * 3
		out := y * r.W * 4
		for x := range r.W {
			copy(scratch[out+4*x:out+4*x+3], master[src+3*x:src+3*x+3])
			scratch[out+4*x+3] = 1
		}
	}
	return scratch
}

// write uploads one rectangle. 1, 2, and 4 channel masters upload in
// place with BytesPerRow the master stride; 3 channel masters stage
// the rectangle through an RGBA scratch first.
func (tx *Texture) write(r Rect) {
	texel := 4 * tx.chans
	data := wgpu.ToBytes(tx.master)
	start := ((tx.row+r.Y)*tx.masterCols + tx.col + r.X) * texel
	end := start + ((r.H-1)*tx.masterCols+r.W)*texel
	layout := wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(tx.masterCols * texel),
		RowsPerImage: uint32(r.H),
	}
	if tx.chans == 3 {
		tx.scratch = padRGB(tx.scratch, tx.master, tx.masterCols, tx.row, tx.col, r)
		data = wgpu.ToBytes(tx.scratch)
		start, end = 0, len(data)
		layout.BytesPerRow = uint32(r.W * 4 * 4)
	}
	tx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: uint32(r.X), Y: uint32(r.Y), Z: 0},
		},
		data[start:end],
		&layout,
		&wgpu.Extent3D{
			Width:              uint32(r.W),
			Height:             uint32(r.H),
			DepthOrArrayLayers: 1,
		},
	)
}

// ReleaseView destroys any existing view.
func (tx *Texture) ReleaseView() {
	if tx.view == nil {
		return
	}
	tx.view.Release()
	tx.view = nil
}

// Release frees the view and the device texture. The adapter must not
// be used after.
func (tx *Texture) Release() {
	tx.ReleaseView()
	if tx.texture == nil {
		return
	}
	tx.texture.Release()
	tx.texture = nil
}

// FlushTextures flushes every adapter in txs.
func FlushTextures(txs []*Texture) {
	for _, tx := range txs {
		tx.Flush()
	}
}

// ReleaseTextures releases every adapter in txs.
func ReleaseTextures(txs []*Texture) {
	for _, tx := range txs {
		tx.Release()
	}
}
