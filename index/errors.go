// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import "errors"

// ErrInvalidIndex is returned when a key is out of range, malformed,
// or not one of the supported key kinds. Callers can match it with
// [errors.Is].
var ErrInvalidIndex = errors.New("invalid index")
