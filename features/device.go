// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import "cogentcore.org/core/math32"

// DeviceBuffer is the engine-side handle of a row buffer. Features
// call UpdateRange after every write with the minimal contiguous row
// span that must be synchronized to the device; the engine coalesces
// spans and performs the actual transfer on its own flush cycle.
type DeviceBuffer interface {

	// UpdateRange marks rows [offset, offset+size) dirty.
	// It must be a cheap metadata update; no transfer happens here.
	UpdateRange(offset, size int)
}

// DeviceTexture is the engine-side handle of one texture tile.
// Origins and sizes are in (x, y, z) and (width, height, depth) axis
// order, matching texture addressing, so callers working in row/col
// terms must swap axes when emitting.
type DeviceTexture interface {

	// UpdateRange marks the tile-local texel box at origin of the
	// given size dirty.
	UpdateRange(origin, size math32.Vector3i)
}
