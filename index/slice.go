// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import "math"

// None marks a [Slice] bound as unspecified, so that the bound takes
// its natural default for the step direction: the first row down to
// the last for a positive step, the reverse for a negative one. Zero
// is a meaningful bound and cannot serve as the default marker.
const None = math.MinInt

// Slice selects the rows [Start, Stop) visited in increments of Step,
// with the same normalization rules as Go's x[i:j] extended to
// negative values: negative bounds count back from the end, bounds are
// clamped to the valid range rather than erroring, and a negative Step
// walks backward from Start down to but not including Stop.
//
// A zero Step means 1, so that the zero value selects the natural
// increment. Start and Stop default to literal zero, making the zero
// value Slice{} empty; use [Full] for the whole range and [None] for
// an unspecified bound.
type Slice struct {

	// Start is the first row visited. None means the start of the
	// range for a positive step, the last row for a negative one.
	Start int

	// Stop is the exclusive limit. None means the end of the range
	// for a positive step, one before the first row for a negative
	// one.
	Stop int

	// Step is the increment between visited rows. Zero means 1.
	// Negative steps walk backward.
	Step int
}

func (Slice) sealed() {}

// NewSlice returns a step-1 slice over [start, stop).
func NewSlice(start, stop int) Slice {
	return Slice{Start: start, Stop: stop, Step: 1}
}

// NewSliceStep returns a slice over [start, stop) with the given step.
func NewSliceStep(start, stop, step int) Slice {
	return Slice{Start: start, Stop: stop, Step: step}
}

// Full returns the slice selecting every row.
func Full() Slice {
	return Slice{Start: None, Stop: None, Step: 1}
}

// From returns the slice selecting rows from start to the end.
func From(start int) Slice {
	return Slice{Start: start, Stop: None, Step: 1}
}

// UpTo returns the slice selecting rows from the beginning up to but
// not including stop.
func UpTo(stop int) Slice {
	return Slice{Start: None, Stop: stop, Step: 1}
}

// Params returns the concrete start, stop, and step for n rows, with
// defaults applied and bounds normalized and clamped. For a positive
// step both bounds land in [0, n]; for a negative step they land in
// [-1, n-1], with -1 the virtual stop below row zero.
func (s Slice) Params(n int) (start, stop, step int) {
	step = s.Step
	if step == 0 {
		step = 1
	}
	if step > 0 {
		start = bound(s.Start, n, 0, 0, n)
		stop = bound(s.Stop, n, n, 0, n)
	} else {
		start = bound(s.Start, n, n-1, -1, n-1)
		stop = bound(s.Stop, n, -1, -1, n-1)
	}
	return
}

// bound resolves one slice bound: def replaces None, negative values
// count back from n, and the result is clamped to [lo, hi].
func bound(v, n, def, lo, hi int) int {
	if v == None {
		return def
	}
	if v < 0 {
		v += n
	}
	return min(max(v, lo), hi)
}

// Len returns the number of rows the slice visits over n rows.
func (s Slice) Len(n int) int {
	start, stop, step := s.Params(n)
	if step > 0 {
		if stop <= start {
			return 0
		}
		return (stop - start + step - 1) / step
	}
	if start <= stop {
		return 0
	}
	return (start - stop - step - 1) / -step
}

// Rows returns the rows the slice visits over n rows, in traversal
// order. The error return keeps the signature aligned with the other
// key kinds; slices clamp rather than fail.
func (s Slice) Rows(n int) ([]int, error) {
	start, stop, step := s.Params(n)
	var idx []int
	if step > 0 {
		for i := start; i < stop; i += step {
			idx = append(idx, i)
		}
	} else {
		for i := start; i > stop; i += step {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

// Region returns the contiguous region covering every row the slice
// visits over n rows. For steps of magnitude greater than one the
// region conservatively spans from the first visited row through the
// last possible one rather than stopping at the final visited row.
func (s Slice) Region(n int) (Region, error) {
	start, stop, step := s.Params(n)
	if step > 0 {
		if stop <= start {
			return Region{}, nil
		}
		return Region{Offset: start, Size: stop - start}, nil
	}
	if start <= stop {
		return Region{}, nil
	}
	return Region{Offset: stop + 1, Size: start - stop}, nil
}
