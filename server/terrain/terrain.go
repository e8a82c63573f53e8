// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

/*
	List of curated seeds:
		1, 46, 48, 56
*/

// Seed default seed.
const Seed = int64(56)

// Source generates heightmap data.
// Generate returns width*height corner heights in row major order,
// each in [0, MaxHeight].
type Source interface {
	Generate(x, y, width, height int) []byte
}

// OutsideSource extrapolates heights for corners that may lie beyond the map.
// x and y may be negative.
type OutsideSource interface {
	HeightOutsideMap(x, y int) int
}

// OutsideFunc adapts a plain function to OutsideSource.
type OutsideFunc func(x, y int) int

func (f OutsideFunc) HeightOutsideMap(x, y int) int {
	return f(x, y)
}
