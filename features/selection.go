// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/core/math32/minmax"
)

// LinearSelection is the position of a line selector along one axis,
// dispatching "selection" events. Values are clamped to the limits,
// never rejected, so dragging past the end pins to it.
type LinearSelection struct {
	Uniform[float32]
	limits minmax.F32
}

// NewLinearSelection returns a selection at value, clamped to limits.
func NewLinearSelection(value float32, limits minmax.F32) *LinearSelection {
	f := &LinearSelection{limits: limits}
	f.Uniform = *NewUniform("selection", math32.Clamp(value, limits.Min, limits.Max))
	return f
}

// Limits returns the selectable range.
func (f *LinearSelection) Limits() minmax.F32 {
	return f.limits
}

// SetLimits replaces the selectable range and re-clamps the current
// value into it, dispatching a "selection" event if that moved it.
func (f *LinearSelection) SetLimits(limits minmax.F32) error {
	f.limits = limits
	if v := math32.Clamp(f.Value(), limits.Min, limits.Max); v != f.Value() {
		return f.Set(v)
	}
	return nil
}

// Set moves the selection to v, clamped to the limits.
func (f *LinearSelection) Set(v float32) error {
	return f.Uniform.Set(math32.Clamp(v, f.limits.Min, f.limits.Max))
}

// LinearRegionSelection is the (min, max) span of a region selector
// along one axis, dispatching "selection" events. Spans are ordered
// and clamped to the limits.
type LinearRegionSelection struct {
	Uniform[minmax.F32]
	limits minmax.F32
}

// NewLinearRegionSelection returns a region selection over region,
// ordered and clamped to limits.
func NewLinearRegionSelection(region, limits minmax.F32) *LinearRegionSelection {
	f := &LinearRegionSelection{limits: limits}
	f.Uniform = *NewUniform("selection", f.conform(region))
	return f
}

// conform orders and clamps a span into the limits.
func (f *LinearRegionSelection) conform(region minmax.F32) minmax.F32 {
	if region.Min > region.Max {
		region.Min, region.Max = region.Max, region.Min
	}
	region.Min = math32.Clamp(region.Min, f.limits.Min, f.limits.Max)
	region.Max = math32.Clamp(region.Max, f.limits.Min, f.limits.Max)
	return region
}

// Limits returns the selectable range.
func (f *LinearRegionSelection) Limits() minmax.F32 {
	return f.limits
}

// Set replaces the selected span, ordered and clamped to the limits.
func (f *LinearRegionSelection) Set(region minmax.F32) error {
	return f.Uniform.Set(f.conform(region))
}
