// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"fmt"

	"cogentcore.org/gfx/features"
)

// TextOptions configure [NewText]. The zero value is not usable; start
// from [TextOptions.Defaults].
type TextOptions struct {

	// Name is the graphic's user-assigned name.
	Name string

	// FontSize is the glyph size in points; must be positive.
	FontSize float32

	// FaceColor is the glyph fill color, in any accepted color form.
	FaceColor any

	// OutlineColor is the glyph outline color, in any accepted color
	// form.
	OutlineColor any
}

// Defaults sets standard text options: 14 point white glyphs with a
// black outline.
func (o *TextOptions) Defaults() {
	o.FontSize = 14
	o.FaceColor = "white"
	o.OutlineColor = "black"
}

// Text is a text label graphic: the displayed string plus the font
// size and glyph colors. Glyph geometry is the renderer's business;
// this layer carries only the reactive attributes.
type Text struct {
	Base

	// Text is the displayed string ("text" events).
	Text *features.Uniform[string]

	// FontSize is the glyph size in points ("font_size" events).
	FontSize *features.Uniform[float32]

	// FaceColor is the glyph fill color ("face_color" events).
	FaceColor *features.UniformColor

	// OutlineColor is the glyph outline color ("outline_color"
	// events).
	OutlineColor *features.UniformColor
}

// NewText returns a text graphic displaying text. A nil opts uses
// [TextOptions.Defaults].
func NewText(text string, opts *TextOptions) (*Text, error) {
	if opts == nil {
		opts = &TextOptions{}
		opts.Defaults()
	}
	if opts.FontSize <= 0 {
		return nil, fmt.Errorf("%w: font size must be positive, got %g", features.ErrConstruction, opts.FontSize)
	}
	face, err := features.NewUniformColorTag("face_color", opts.FaceColor)
	if err != nil {
		return nil, err
	}
	outline, err := features.NewUniformColorTag("outline_color", opts.OutlineColor)
	if err != nil {
		return nil, err
	}
	tx := &Text{
		Text:         features.NewUniform("text", text),
		FontSize:     features.NewUniform("font_size", opts.FontSize),
		FaceColor:    face,
		OutlineColor: outline,
	}
	tx.Base = newBase(tx, opts.Name)
	tx.register(tx, &tx.Text.Base)
	tx.register(tx, &tx.FontSize.Base)
	tx.register(tx, &face.Base)
	tx.register(tx, &outline.Base)
	return tx, nil
}
