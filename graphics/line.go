// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"fmt"

	"cogentcore.org/core/gpu"
	"cogentcore.org/core/math32"
	"cogentcore.org/gfx/engine"
	"cogentcore.org/gfx/features"
	"github.com/cogentcore/webgpu/wgpu"
)

// LineOptions configure [NewLine]. The zero value is not usable; start
// from [LineOptions.Defaults].
type LineOptions struct {

	// Name is the graphic's user-assigned name.
	Name string

	// Colors is the initial coloring: one color in any accepted form,
	// or one color per vertex when Uniform is off.
	Colors any

	// Uniform shares one color across the whole line instead of
	// allocating per-vertex colors.
	Uniform bool

	// Alpha is the initial opacity, clamped to [0, 1].
	Alpha float32

	// Cmap, when non-empty, colors the vertices through the named
	// colormap instead of Colors.
	Cmap string

	// CmapTransform maps per-vertex values to colormap positions
	// instead of even spacing; one value per vertex.
	CmapTransform []float32

	// Thickness is the stroke width.
	Thickness float32
}

// Defaults sets standard line options: white, opaque, thickness 2.
func (o *LineOptions) Defaults() {
	o.Colors = "white"
	o.Alpha = 1
	o.Thickness = 2
}

// Line is a polyline graphic: per-vertex positions with either
// per-vertex or uniform coloring, and a stroke thickness.
type Line struct {
	Base

	// Positions holds the vertex positions ("data" events).
	Positions *features.VertexPositions

	// Colors holds the per-vertex RGBA colors ("colors" events); nil
	// when the line was built with a uniform color.
	Colors *features.VertexColors

	// Cmap derives Colors from a named colormap ("cmap" events); nil
	// for uniform-colored lines.
	Cmap *features.VertexCmap

	// UniformColor is the single shared color ("colors" events); nil
	// when the line carries per-vertex colors.
	UniformColor *features.UniformColor

	// Alpha is the shared opacity of a uniform-colored line ("alpha"
	// events); nil when the line carries per-vertex colors.
	Alpha *features.UniformAlpha

	// Thickness is the stroke width ("thickness" events).
	Thickness *features.Thickness
}

// NewLine returns a line graphic over the given vertex data, in any
// form [features.NewVertexPositions] accepts. A nil opts uses
// [LineOptions.Defaults]. Every option is validated here, so a
// constructed line is fully consistent.
func NewLine(data any, opts *LineOptions) (*Line, error) {
	if opts == nil {
		opts = &LineOptions{}
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
	th, err := features.NewThickness(opts.Thickness)
	if err != nil {
		return nil, err
	}
	ln := &Line{
		Positions:    pos,
		Colors:       cl.colors,
		Cmap:         cl.cmap,
		UniformColor: cl.uniform,
		Alpha:        cl.alpha,
		Thickness:    th,
	}
	ln.Base = newBase(ln, opts.Name)
	ln.register(ln, &pos.Base)
	ln.registerColoring(ln, cl)
	ln.register(ln, &th.Base)
	return ln, nil
}

// SetData replaces every vertex position; the count must equal the
// vertex count.
func (ln *Line) SetData(pts []math32.Vector3) error {
	return ln.Positions.SetAll(pts)
}

// SetColors recolors the whole line: a uniform color is replaced,
// per-vertex colors are fully rewritten and any colormap association
// is dropped, since its name no longer describes the visible colors.
// This is the one path that clears a stale colormap name.
func (ln *Line) SetColors(val any) error {
	return ln.coloring().setColors(val)
}

// SetCmap recolors the line through the named colormap. It is an
// error on a uniform-colored line.
func (ln *Line) SetCmap(name string) error {
	if ln.Cmap == nil {
		return fmt.Errorf("%w: line has a uniform color, not per-vertex colors", features.ErrConstruction)
	}
	return ln.Cmap.SetName(name)
}

func (ln *Line) coloring() coloring {
	return coloring{colors: ln.Colors, cmap: ln.Cmap, uniform: ln.UniformColor, alpha: ln.Alpha}
}

// Attach creates device buffers for the line's vertex data on dev and
// registers them with the features, so subsequent writes accumulate
// upload spans. label prefixes the device resource labels.
func (ln *Line) Attach(dev *gpu.Device, label string) error {
	pb, err := engine.AttachBuffer(dev, ln.Positions.Buffer, label+":positions", wgpu.BufferUsageVertex)
	if err != nil {
		return err
	}
	ln.buffers = append(ln.buffers, pb)
	if ln.Colors != nil {
		cb, err := engine.AttachBuffer(dev, ln.Colors.Buffer, label+":colors", wgpu.BufferUsageVertex)
		if err != nil {
			ln.ReleaseGPU()
			return err
		}
		ln.buffers = append(ln.buffers, cb)
	}
	return nil
}
