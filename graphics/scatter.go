// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"cogentcore.org/core/gpu"
	"cogentcore.org/gfx/engine"
	"cogentcore.org/gfx/features"
	"github.com/cogentcore/webgpu/wgpu"
)

// ScatterOptions configure [NewScatter]. The zero value is not usable;
// start from [ScatterOptions.Defaults].
type ScatterOptions struct {

	// Name is the graphic's user-assigned name.
	Name string

	// Colors is the initial coloring: one color in any accepted form,
	// or one color per vertex when Uniform is off.
	Colors any

	// Uniform shares one color across every point instead of
	// allocating per-vertex colors.
	Uniform bool

	// Alpha is the initial opacity, clamped to [0, 1].
	Alpha float32

	// Cmap, when non-empty, colors the points through the named
	// colormap instead of Colors.
	Cmap string

	// CmapTransform maps per-point values to colormap positions
	// instead of even spacing; one value per point.
	CmapTransform []float32

	// Sizes is the initial marker sizing: one size broadcast to every
	// point, or one size per point when UniformSizes is off.
	Sizes any

	// UniformSizes shares one marker size across every point instead
	// of allocating per-point sizes.
	UniformSizes bool
}

// Defaults sets standard scatter options: white, opaque, size 1.
func (o *ScatterOptions) Defaults() {
	o.Colors = "white"
	o.Alpha = 1
	o.Sizes = float32(1)
}

// Scatter is a point-cloud graphic: per-point positions with either
// per-point or uniform coloring and sizing.
type Scatter struct {
	Base

	// Positions holds the point positions ("data" events).
	Positions *features.VertexPositions

	// Colors holds the per-point RGBA colors ("colors" events); nil
	// when the scatter was built with a uniform color.
	Colors *features.VertexColors

	// Cmap derives Colors from a named colormap ("cmap" events); nil
	// for uniform-colored scatters.
	Cmap *features.VertexCmap

	// UniformColor is the single shared color ("colors" events); nil
	// when the scatter carries per-point colors.
	UniformColor *features.UniformColor

	// Alpha is the shared opacity of a uniform-colored scatter
	// ("alpha" events); nil when the scatter carries per-point colors.
	Alpha *features.UniformAlpha

	// Sizes holds the per-point marker sizes ("sizes" events); nil
	// when the scatter was built with a uniform size.
	Sizes *features.PointSizes

	// UniformSize is the single shared marker size ("sizes" events);
	// nil when the scatter carries per-point sizes.
	UniformSize *features.UniformSize
}

// NewScatter returns a scatter graphic over the given point data, in
// any form [features.NewVertexPositions] accepts. A nil opts uses
// [ScatterOptions.Defaults].
func NewScatter(data any, opts *ScatterOptions) (*Scatter, error) {
	if opts == nil {
		opts = &ScatterOptions{}
		opts.Defaults()
	}
	pos, err := features.NewVertexPositions(data, true)
	if err != nil {
		return nil, err
	}
	cl, err := newColoring(opts.Colors, opts.Uniform, opts.Alpha, opts.Cmap, opts.CmapTransform, pos.Len())
	if err != nil {
		return nil, err
	}
	sc := &Scatter{
		Positions:    pos,
		Colors:       cl.colors,
		Cmap:         cl.cmap,
		UniformColor: cl.uniform,
		Alpha:        cl.alpha,
	}
	if opts.UniformSizes {
		v, err := scalarSize(opts.Sizes)
		if err != nil {
			return nil, err
		}
		us, err := features.NewUniformSize(v)
		if err != nil {
			return nil, err
		}
		sc.UniformSize = us
	} else {
		szs, err := features.NewPointSizes(opts.Sizes, pos.Len(), true)
		if err != nil {
			return nil, err
		}
		sc.Sizes = szs
	}
	sc.Base = newBase(sc, opts.Name)
	sc.register(sc, &pos.Base)
	sc.registerColoring(sc, cl)
	if sc.Sizes != nil {
		sc.register(sc, &sc.Sizes.Base)
	} else {
		sc.register(sc, &sc.UniformSize.Base)
	}
	return sc, nil
}

// SetColors recolors the whole scatter: a uniform color is replaced,
// per-point colors are fully rewritten and any colormap association
// is dropped, since its name no longer describes the visible colors.
func (sc *Scatter) SetColors(val any) error {
	return coloring{colors: sc.Colors, cmap: sc.Cmap, uniform: sc.UniformColor, alpha: sc.Alpha}.setColors(val)
}

// Attach creates device buffers for the scatter's vertex data on dev
// and registers them with the features. label prefixes the device
// resource labels.
func (sc *Scatter) Attach(dev *gpu.Device, label string) error {
	pb, err := engine.AttachBuffer(dev, sc.Positions.Buffer, label+":positions", wgpu.BufferUsageVertex)
	if err != nil {
		return err
	}
	sc.buffers = append(sc.buffers, pb)
	if sc.Colors != nil {
		cb, err := engine.AttachBuffer(dev, sc.Colors.Buffer, label+":colors", wgpu.BufferUsageVertex)
		if err != nil {
			sc.ReleaseGPU()
			return err
		}
		sc.buffers = append(sc.buffers, cb)
	}
	if sc.Sizes != nil {
		sb, err := engine.AttachBuffer(dev, sc.Sizes.Buffer, label+":sizes", wgpu.BufferUsageVertex)
		if err != nil {
			sc.ReleaseGPU()
			return err
		}
		sc.buffers = append(sc.buffers, sb)
	}
	return nil
}
