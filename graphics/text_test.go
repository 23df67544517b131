// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/gfx/events"
	"cogentcore.org/gfx/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextDefaults(t *testing.T) {
	tx, err := NewText("hello", nil)
	require.NoError(t, err)

	assert.Equal(t, "hello", tx.Text.Value())
	assert.Equal(t, float32(14), tx.FontSize.Value())
	assert.Equal(t, math32.Vec4(1, 1, 1, 1), tx.FaceColor.Value())
	assert.Equal(t, math32.Vec4(0, 0, 0, 1), tx.OutlineColor.Value())
	assert.Equal(t, []string{
		"deleted", "face_color", "font_size", "name",
		"offset", "outline_color", "rotation", "text", "visible",
	}, tx.EventTypes())
}

func TestTextEvents(t *testing.T) {
	tx, err := NewText("hello", nil)
	require.NoError(t, err)

	var got []*events.Event
	require.NoError(t, tx.AddEventHandler("text", func(ev *events.Event) {
		got = append(got, ev)
	}))
	require.NoError(t, tx.Text.Set("goodbye"))
	require.Len(t, got, 1)
	assert.Equal(t, "goodbye", got[0].Value())
	assert.Same(t, tx, got[0].Graphic)

	// the two color features dispatch under their own tags
	fired := ""
	require.NoError(t, tx.AddEventHandler("outline_color", func(ev *events.Event) {
		fired = ev.Type
	}))
	require.NoError(t, tx.OutlineColor.Set("red"))
	assert.Equal(t, "outline_color", fired)
}

func TestNewTextErrors(t *testing.T) {
	opts := &TextOptions{}
	opts.Defaults()
	opts.FontSize = 0
	_, err := NewText("x", opts)
	assert.ErrorIs(t, err, features.ErrConstruction)

	opts = &TextOptions{}
	opts.Defaults()
	opts.FaceColor = "no-such-color"
	_, err = NewText("x", opts)
	assert.ErrorIs(t, err, features.ErrConstruction)
}
