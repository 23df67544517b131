// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"fmt"

	"cogentcore.org/gfx/features"
	"cogentcore.org/gfx/index"
)

// coloring bundles the alternative color features a vertex graphic
// carries: per-vertex colors with their colormap, or one shared color
// with its alpha. Exactly one pair is non-nil.
type coloring struct {
	colors  *features.VertexColors
	cmap    *features.VertexCmap
	uniform *features.UniformColor
	alpha   *features.UniformAlpha
}

// newColoring builds the color features for n vertices. With uniform
// set, colorsOpt must parse as a single color shared by every vertex;
// otherwise it may also be per-vertex, cmapName (if non-empty) recolors
// through the named colormap, and alphaOpt applies to whichever path
// produced the colors.
func newColoring(colorsOpt any, uniform bool, alphaOpt float32, cmapName string, transform []float32, n int) (coloring, error) {
	var cl coloring
	if uniform {
		uc, err := features.NewUniformColor(colorsOpt)
		if err != nil {
			return cl, err
		}
		al, err := features.NewUniformAlpha(alphaOpt, uc)
		if err != nil {
			return cl, err
		}
		cl.uniform, cl.alpha = uc, al
		return cl, nil
	}
	vc, err := features.NewVertexColors(colorsOpt, n, true)
	if err != nil {
		return cl, err
	}
	cm, err := features.NewVertexCmap(vc, cmapName, transform, alphaOpt)
	if err != nil {
		return cl, err
	}
	if cmapName == "" && alphaOpt != 1 {
		err := vc.Set(index.Cell{Row: index.Full(), Col: index.At(3)}, alphaOpt)
		if err != nil {
			return cl, fmt.Errorf("%w: %w", features.ErrConstruction, err)
		}
	}
	cl.colors, cl.cmap = vc, cm
	return cl, nil
}

// registerColoring adds whichever color features exist to the
// graphic's event registry.
func (gb *Base) registerColoring(self any, cl coloring) {
	if cl.colors != nil {
		gb.register(self, &cl.colors.Base)
		gb.register(self, &cl.cmap.Base)
	}
	if cl.uniform != nil {
		gb.register(self, &cl.uniform.Base)
		gb.register(self, &cl.alpha.Base)
	}
}

// setColors is the shared whole-graphic recoloring path: a uniform
// color is replaced, per-vertex colors are fully rewritten and the
// colormap association is dropped, since its name no longer describes
// the visible colors.
func (cl coloring) setColors(val any) error {
	if cl.uniform != nil {
		return cl.uniform.Set(val)
	}
	if err := cl.colors.SetAll(val); err != nil {
		return err
	}
	cl.cmap.ClearName()
	return nil
}

// scalarSize converts the accepted single-size forms to float32.
func scalarSize(val any) (float32, error) {
	switch v := val.(type) {
	case float32:
		return v, nil
	case float64:
		return float32(v), nil
	case int:
		return float32(v), nil
	}
	return 0, fmt.Errorf("uniform size must be a float32, float64, or int, not %T", val)
}
