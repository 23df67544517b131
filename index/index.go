// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package index resolves row-selection keys against a fixed row count,
// producing the minimal contiguous [Offset, Offset+Size) region that
// contains every touched row. Buffer features use the region to mark
// device upload ranges, and the concrete touched rows to apply values.
package index

import (
	"fmt"
	"sort"
)

// Region is the contiguous span of a buffer's first dimension that must
// be synchronized to the device after a write: rows
// [Offset, Offset+Size). A zero Size means the key touched nothing and
// no upload or event should occur.
//
// The span is a conservative bound, not an exact element set: keys with
// non-unit steps or sparse integer lists select rows inside the span
// without touching all of it. Uploading the untouched interior is
// harmless since values are only written at the selected rows.
type Region struct {
	Offset int
	Size   int
}

// End returns the exclusive end row of the region.
func (r Region) End() int {
	return r.Offset + r.Size
}

// IsNil returns true if the region is empty.
func (r Region) IsNil() bool {
	return r.Size <= 0
}

func (r Region) String() string {
	return fmt.Sprintf("[%d:%d)", r.Offset, r.End())
}

// Key selects rows of a buffer. It is a closed set of kinds: [At] for a
// single row, [Slice] for a start/stop/step range, [Mask] for a boolean
// mask, [List] for explicit row indices, and [Cell] for a row key paired
// with a column key. Other implementations are rejected by [Resolve].
type Key interface {
	// sealed restricts Key to the kinds defined in this package.
	sealed()
}

// At selects a single row. Negative values count back from the end,
// as in At(-1) for the last row.
type At int

func (At) sealed() {}

// Mask selects the rows whose mask entry is true. The mask length must
// equal the row count of the buffer it is applied to.
type Mask []bool

func (Mask) sealed() {}

// List selects rows by explicit index. Negative entries count back from
// the end. An empty list is a no-op: nothing is written or marked.
type List []int

func (List) sealed() {}

// Cell pairs a row key with a column key, the two-dimensional form
// used for component-column writes such as the alpha channel of an
// RGBA color buffer. Only Row contributes to the upload region; Col is
// interpreted by the owning feature against its column width.
type Cell struct {
	Row Key
	Col Key
}

func (Cell) sealed() {}

// Resolve returns the minimal contiguous region containing every row
// that key selects from n rows. Unknown key kinds are rejected with an
// error naming the valid kinds.
func Resolve(key Key, n int) (Region, error) {
	switch k := key.(type) {
	case At:
		i, err := normRow(int(k), n)
		if err != nil {
			return Region{}, err
		}
		return Region{Offset: i, Size: 1}, nil
	case Slice:
		return k.Region(n)
	case Mask:
		idx, err := maskRows(k, n)
		if err != nil {
			return Region{}, err
		}
		return boundsOf(idx), nil
	case List:
		idx, err := listRows(k, n)
		if err != nil {
			return Region{}, err
		}
		return boundsOf(idx), nil
	case Cell:
		return Resolve(k.Row, n)
	default:
		return Region{}, fmt.Errorf("%w: key must be one of index.At, index.Slice, index.Mask, index.List, or index.Cell, not %T", ErrInvalidIndex, key)
	}
}

// Indices returns the concrete rows that key selects from n rows, in
// ascending traversal order for slices and masks, and caller order for
// lists. A zero-length result means the key is a no-op.
func Indices(key Key, n int) ([]int, error) {
	switch k := key.(type) {
	case At:
		i, err := normRow(int(k), n)
		if err != nil {
			return nil, err
		}
		return []int{i}, nil
	case Slice:
		return k.Rows(n)
	case Mask:
		return maskRows(k, n)
	case List:
		return listRows(k, n)
	case Cell:
		return Indices(k.Row, n)
	default:
		return nil, fmt.Errorf("%w: key must be one of index.At, index.Slice, index.Mask, index.List, or index.Cell, not %T", ErrInvalidIndex, key)
	}
}

// normRow normalizes a possibly negative row index against n,
// returning an error if it remains out of range.
func normRow(i, n int) (int, error) {
	ri := i
	if ri < 0 {
		ri += n
	}
	if ri < 0 || ri >= n {
		return 0, fmt.Errorf("%w: row %d out of range for %d rows", ErrInvalidIndex, i, n)
	}
	return ri, nil
}

// maskRows converts a boolean mask to its true positions.
func maskRows(m Mask, n int) ([]int, error) {
	if len(m) != n {
		return nil, fmt.Errorf("%w: mask length %d does not match %d rows", ErrInvalidIndex, len(m), n)
	}
	var idx []int
	for i, on := range m {
		if on {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

// listRows normalizes negative entries of an explicit index list.
func listRows(l List, n int) ([]int, error) {
	if len(l) == 0 {
		return nil, nil
	}
	idx := make([]int, len(l))
	for i, v := range l {
		ri, err := normRow(v, n)
		if err != nil {
			return nil, err
		}
		idx[i] = ri
	}
	return idx, nil
}

// boundsOf returns the tight [min, max+1) region over the given rows:
// Size is max-min+1, not the row count, so sparse selections span
// untouched interior rows.
func boundsOf(idx []int) Region {
	if len(idx) == 0 {
		return Region{}
	}
	if sort.IntsAreSorted(idx) {
		return Region{Offset: idx[0], Size: idx[len(idx)-1] - idx[0] + 1}
	}
	mn, mx := idx[0], idx[0]
	for _, v := range idx[1:] {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	return Region{Offset: mn, Size: mx - mn + 1}
}
