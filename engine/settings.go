// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/gfx/features"
)

// Settings are engine configuration values, loadable from a TOML file.
type Settings struct {

	// MaxTextureSide is the maximum edge length of one device texture,
	// used as the tile edge when partitioning oversized image data.
	MaxTextureSide int

	// Debug turns on diagnostic logging of attach and flush activity.
	Debug bool

	// LabelPrefix is prepended to device resource labels, separating
	// multiple engine instances in graphics debuggers.
	LabelPrefix string
}

// Defaults sets standard settings values.
func (st *Settings) Defaults() {
	st.MaxTextureSide = features.DefaultTileEdge
	st.LabelPrefix = "gfx"
}

// OpenSettings returns settings read from the given TOML file, on top
// of defaults for anything the file does not set. The package [Debug]
// flag follows the loaded Debug value.
func OpenSettings(filename string) (*Settings, error) {
	st := &Settings{}
	st.Defaults()
	if err := tomlx.Open(st, filename); err != nil {
		return nil, err
	}
	Debug = st.Debug
	return st, nil
}

// SaveSettings writes settings to the given TOML file.
func SaveSettings(st *Settings, filename string) error {
	return tomlx.Save(st, filename)
}

// Label returns the full device resource label for the given name.
func (st *Settings) Label(name string) string {
	if st.LabelPrefix == "" {
		return name
	}
	return st.LabelPrefix + ":" + name
}
