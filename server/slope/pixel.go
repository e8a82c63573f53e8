// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package slope

import (
	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/chewxy/math32"
)

// PixelZ returns the ground height in pixels at a world position in pixels.
// Heights are interpolated bilinearly between the four corners of the tile
// under the position. Positions beyond the map use the outside map heights.
func PixelZ(m Heightmap, px, py float32) float32 {
	fx := math32.Floor(px / terrain.TilePixels)
	fy := math32.Floor(py / terrain.TilePixels)
	x, y := int(fx), int(fy)

	var hNorth, hWest, hEast, hSouth int
	if x >= 0 && y >= 0 && x < int(m.MaxX()) && y < int(m.MaxY()) {
		hNorth, hWest, hEast, hSouth = corners(m, m.XY(uint32(x), uint32(y)))
	} else {
		hNorth, hWest, hEast, hSouth = outsideCorners(m, x, y)
	}

	// Sample 2x2 grid
	// N W
	// E S
	tx := px/terrain.TilePixels - fx
	ty := py/terrain.TilePixels - fy

	return blerp(hNorth, hWest, hEast, hSouth, tx, ty) * terrain.HeightPixels
}

func lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

// blerp does bi-linear interpolation on 4 heights given the tx and ty offsets.
func blerp(c00, c10, c01, c11 int, tx, ty float32) float32 {
	return lerp(
		lerp(float32(c00), float32(c10), tx),
		lerp(float32(c01), float32(c11), tx),
		ty,
	)
}
