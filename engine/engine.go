// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine adapts the change-tracked features to WebGPU device
// resources. An attached [Buffer] or [Texture] receives the dirty
// ranges that feature writes produce, coalesces them, and uploads the
// affected bytes on Flush, reading straight out of the feature's live
// storage so no staging copies are made for 1, 2, and 4 channel data.
package engine

// Debug turns on diagnostic logging of attach and flush activity.
var Debug = false
