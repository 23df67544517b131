// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"fmt"
	"image"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/gpu"
	"cogentcore.org/gfx/engine"
	"cogentcore.org/gfx/features"
)

// ImageOptions configure [NewImage]. The zero value is not usable;
// start from [ImageOptions.Defaults].
type ImageOptions struct {

	// Name is the graphic's user-assigned name.
	Name string

	// Cmap is the colormap the data is rendered through, one of
	// [colormap.AvailableMaps]; empty renders values directly.
	Cmap string

	// Vmin is the data value mapped to the bottom of the colormap;
	// nil defaults to the data minimum.
	Vmin *float32

	// Vmax is the data value mapped to the top of the colormap; nil
	// defaults to the data maximum.
	Vmax *float32

	// Interpolation is the sampling mode, "nearest" or "linear".
	Interpolation string

	// TileEdge is the maximum device texture edge; data larger than
	// this is split into a grid of tiles. Engines reporting a
	// different limit pass it here (see engine Settings).
	TileEdge int

	// Isolate deep-copies the data, protecting against aliasing with
	// caller-owned memory.
	Isolate bool
}

// Defaults sets standard image options: nearest sampling, the standard
// tile edge, isolated data.
func (o *ImageOptions) Defaults() {
	o.Interpolation = "nearest"
	o.TileEdge = features.DefaultTileEdge
	o.Isolate = true
}

// Image is an image graphic: a chunked texture array of scalar or
// color data plus the value-mapping features controlling how it is
// rendered.
type Image struct {
	Base

	// Data holds the texel values and their tile grid ("data"
	// events).
	Data *features.TextureArray

	// Cmap is the colormap name the data is rendered through ("cmap"
	// events); empty renders values directly.
	Cmap *features.ImageCmap

	// Vmin is the data value mapped to the bottom of the colormap
	// ("vmin" events).
	Vmin *features.ImageVmin

	// Vmax is the data value mapped to the top of the colormap
	// ("vmax" events).
	Vmax *features.ImageVmax

	// Interpolation is the sampling mode ("interpolation" events).
	Interpolation *features.ImageInterpolation
}

// NewImage returns an image graphic over data, rows x cols texels of
// chans channels (1 to 4) in row-major order. A nil opts uses
// [ImageOptions.Defaults]. Vmin and vmax default to the data's min and
// max.
func NewImage(data []float32, rows, cols, chans int, opts *ImageOptions) (*Image, error) {
	if opts == nil {
		opts = &ImageOptions{}
		opts.Defaults()
	}
	ta, err := features.NewTextureArrayTile(data, rows, cols, chans, opts.Isolate, opts.TileEdge)
	if err != nil {
		return nil, err
	}
	cmap, err := features.NewImageCmap(opts.Cmap)
	if err != nil {
		return nil, err
	}
	interp, err := features.NewImageInterpolation(opts.Interpolation)
	if err != nil {
		return nil, err
	}
	mm := ta.MinMax()
	vmin, vmax := mm.Min, mm.Max
	if opts.Vmin != nil {
		vmin = *opts.Vmin
	}
	if opts.Vmax != nil {
		vmax = *opts.Vmax
	}
	im := &Image{
		Data:          ta,
		Cmap:          cmap,
		Vmin:          features.NewImageVmin(vmin),
		Vmax:          features.NewImageVmax(vmax),
		Interpolation: interp,
	}
	im.Base = newBase(im, opts.Name)
	im.register(im, &ta.Base)
	im.register(im, &cmap.Base)
	im.register(im, &im.Vmin.Base)
	im.register(im, &im.Vmax.Base)
	im.register(im, &interp.Base)
	return im, nil
}

// NewImageFromImage returns an image graphic over img's RGBA values
// scaled to [0, 1].
func NewImageFromImage(img image.Image, opts *ImageOptions) (*Image, error) {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	data := make([]float32, 0, rows*cols*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := colors.AsRGBA(img.At(x, y))
			data = append(data, float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
		}
	}
	if opts == nil {
		opts = &ImageOptions{}
		opts.Defaults()
	}
	opts.Isolate = false
	return NewImage(data, rows, cols, 4, opts)
}

// NewImageFromFile returns an image graphic over the pixels of the
// image file at the given path, in any format [imagex.Open] reads.
func NewImageFromFile(filename string, opts *ImageOptions) (*Image, error) {
	img, _, err := imagex.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", features.ErrConstruction, err)
	}
	return NewImageFromImage(img, opts)
}

// ResetLimits sets vmin and vmax back to the data's current min and
// max, after data writes moved them.
func (im *Image) ResetLimits() error {
	mm := im.Data.MinMax()
	if err := im.Vmin.Set(mm.Min); err != nil {
		return err
	}
	return im.Vmax.Set(mm.Max)
}

// Attach creates one device texture per tile of the image's data on
// dev and registers them with the feature, so subsequent writes
// accumulate per-tile upload rectangles. Every tile starts fully
// dirty; the first Flush uploads everything. label prefixes the device
// resource labels.
func (im *Image) Attach(dev *gpu.Device, label string) error {
	txs, err := engine.AttachTextureArray(dev, im.Data, label+":data")
	if err != nil {
		return err
	}
	im.textures = txs
	return nil
}
