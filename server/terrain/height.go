// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

const (
	// MaxHeight is the highest corner height a map can store.
	// Heights are stored as nibbles.
	MaxHeight = 15

	// HeightPixels is the world (pixel) size of one height unit.
	HeightPixels = 8

	// TilePixels is the world (pixel) width of one tile.
	TilePixels = 16
)

// Levels used when coloring terrain, in height units.
const (
	SeaLevel   = 0
	SandLevel  = SeaLevel + 1
	GrassLevel = SandLevel + 5
	RockLevel  = GrassLevel + 4
	SnowLevel  = MaxHeight - 2
)

// ClampHeight limits h to the storable range.
func ClampHeight(h int) int {
	if h < 0 {
		return 0
	}
	if h > MaxHeight {
		return MaxHeight
	}
	return h
}
