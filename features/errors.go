// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import "cogentcore.org/core/base/errors"

// ErrShapeMismatch is returned when a value being assigned cannot be
// applied to the rows the index selects, or when initial data has the
// wrong width for its feature. The wrapping error names the expected
// and received shapes.
var ErrShapeMismatch = errors.New("shape mismatch")

// ErrConstruction is returned when a feature is given invalid initial
// data, such as image data with an unsupported channel count or a
// colors array of the wrong length. It is raised eagerly, before any
// buffer is allocated.
var ErrConstruction = errors.New("invalid feature construction")
