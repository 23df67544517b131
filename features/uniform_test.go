// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/gfx/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformSet(t *testing.T) {
	f := NewName("line-0")
	assert.Equal(t, "line-0", f.Value())
	assert.Equal(t, "name", f.EventType())

	var got []*events.Event
	require.NoError(t, f.OnChange(func(ev *events.Event) {
		got = append(got, ev)
	}))
	require.NoError(t, f.Set("line-1"))
	assert.Equal(t, "line-1", f.Value())
	require.Len(t, got, 1)
	assert.Equal(t, "name", got[0].Type)
	assert.Equal(t, "line-1", got[0].Info["value"])
}

// TestUniformReentrancy checks the mutation guard: a listener that
// synchronously calls Set again must be a silent no-op, leaving the
// first write's value in place, with no recursion and no second
// event.
func TestUniformReentrancy(t *testing.T) {
	f := NewVisible(true)
	n := 0
	require.NoError(t, f.OnChange(func(ev *events.Event) {
		n++
		assert.NoError(t, f.Set(false)) // re-entrant: ignored
	}))

	require.NoError(t, f.Set(true))
	assert.Equal(t, 1, n)
	assert.True(t, f.Value())

	// guard is released after the call: a fresh Set works
	require.NoError(t, f.Set(false))
	assert.Equal(t, 2, n)
	assert.False(t, f.Value())
}

// TestUniformGuardRelease checks the guard is released even when a
// listener panics mid-dispatch.
func TestUniformGuardRelease(t *testing.T) {
	f := NewName("a")
	require.NoError(t, f.OnChange(func(ev *events.Event) {
		panic("listener failure")
	}))
	require.NoError(t, f.Set("b")) // panic confined to dispatch
	require.NoError(t, f.Set("c"))
	assert.Equal(t, "c", f.Value())
}

func TestUniformBlock(t *testing.T) {
	f := NewOffset(math32.Vector3{})
	n := 0
	require.NoError(t, f.OnChange(func(ev *events.Event) {
		n++
	}))
	f.BlockEvents(true)
	assert.True(t, f.EventsBlocked())
	require.NoError(t, f.Set(math32.Vec3(1, 2, 3)))
	assert.Equal(t, 0, n)
	assert.Equal(t, math32.Vec3(1, 2, 3), f.Value()) // value still applied

	f.BlockEvents(false)
	require.NoError(t, f.Set(math32.Vec3(4, 5, 6)))
	assert.Equal(t, 1, n)
}

func TestUniformValidate(t *testing.T) {
	_, err := NewThickness(-1)
	assert.ErrorIs(t, err, ErrConstruction)

	th, err := NewThickness(2)
	require.NoError(t, err)
	assert.Error(t, th.Set(-3))
	assert.Equal(t, float32(2), th.Value())
	require.NoError(t, th.Set(5))
	assert.Equal(t, float32(5), th.Value())

	_, err = NewUniformSize(-0.5)
	assert.ErrorIs(t, err, ErrConstruction)
}

func TestImageUniforms(t *testing.T) {
	_, err := NewImageCmap("definitely-no-such-map")
	assert.ErrorIs(t, err, ErrConstruction)

	cm, err := NewImageCmap("")
	require.NoError(t, err)
	require.NoError(t, cm.Set("ColdHot"))
	assert.Equal(t, "ColdHot", cm.Value())
	assert.Error(t, cm.Set("definitely-no-such-map"))
	assert.Equal(t, "ColdHot", cm.Value())

	_, err = NewImageInterpolation("cubic")
	assert.ErrorIs(t, err, ErrConstruction)
	ip, err := NewImageInterpolation("nearest")
	require.NoError(t, err)
	require.NoError(t, ip.Set("linear"))
	assert.Error(t, ip.Set("bilinear"))
	assert.Equal(t, "linear", ip.Value())

	vmin := NewImageVmin(0)
	vmax := NewImageVmax(1)
	assert.Equal(t, "vmin", vmin.EventType())
	assert.Equal(t, "vmax", vmax.EventType())
}

func TestDeleted(t *testing.T) {
	f := NewDeleted()
	assert.False(t, f.Value())
	assert.Equal(t, "deleted", f.EventType())
	require.NoError(t, f.Set(true))
	assert.True(t, f.Value())
}

func TestRotation(t *testing.T) {
	f := NewRotation(math32.Quat{W: 1})
	assert.Equal(t, math32.Quat{W: 1}, f.Value())
	assert.Equal(t, "rotation", f.EventType())
}
