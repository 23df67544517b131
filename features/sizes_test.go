// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"testing"

	"cogentcore.org/gfx/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointSizes(t *testing.T) {
	f, err := NewPointSizes(float32(4), 3, true)
	require.NoError(t, err)
	assert.Equal(t, []float32{4, 4, 4}, f.Value())

	f, err = NewPointSizes([]float32{1, 2, 3}, 3, true)
	require.NoError(t, err)
	rec := &bufferRecorder{}
	f.Buffer.SetDevice(rec)

	require.NoError(t, f.Set(index.At(-1), 9))
	assert.Equal(t, []float32{1, 2, 9}, f.Value())
	assert.Equal(t, []index.Region{{Offset: 2, Size: 1}}, rec.regions)

	v, err := f.At(1)
	require.NoError(t, err)
	assert.Equal(t, float32(2), v)
}

func TestPointSizesNegative(t *testing.T) {
	_, err := NewPointSizes(float32(-1), 3, true)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = NewPointSizes([]float32{1, -2, 3}, 3, true)
	assert.ErrorIs(t, err, ErrConstruction)

	f, err := NewPointSizes(float32(1), 3, true)
	require.NoError(t, err)
	err = f.Set(index.Full(), -4)
	require.Error(t, err)
	assert.Equal(t, []float32{1, 1, 1}, f.Value()) // nothing written
}

func TestPointSizesConstruction(t *testing.T) {
	_, err := NewPointSizes(float32(1), 0, true)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = NewPointSizes([]float32{1, 2}, 3, true)
	assert.ErrorIs(t, err, ErrConstruction)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewPointSizes("big", 3, true)
	assert.ErrorIs(t, err, ErrConstruction)
}
