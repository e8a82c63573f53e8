// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package slope

import (
	"github.com/SoftbearStudios/tileslope/server/bits"
	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/SoftbearStudios/tileslope/server/tile"
)

// Heightmap is the read access to a map that slope queries need.
// *tile.Map implements it.
type Heightmap interface {
	terrain.OutsideSource
	Contains(t tile.Index) bool
	IsInner(t tile.Index) bool
	MaxX() uint32
	MaxY() uint32
	X(t tile.Index) uint32
	Y(t tile.Index) uint32
	XY(x, y uint32) tile.Index
	DiffXY(dx, dy int) tile.Diff
	Height(t tile.Index) int
}

// corners returns the north, west, east and south corner heights of an inner tile.
func corners(m Heightmap, t tile.Index) (hNorth, hWest, hEast, hSouth int) {
	hNorth = m.Height(t)
	hWest = m.Height(t.Add(m.DiffXY(1, 0)))
	hEast = m.Height(t.Add(m.DiffXY(0, 1)))
	hSouth = m.Height(t.Add(m.DiffXY(1, 1)))
	return
}

// outsideCorners is corners for a tile that may lie beyond the map.
func outsideCorners(m terrain.OutsideSource, x, y int) (hNorth, hWest, hEast, hSouth int) {
	hNorth = m.HeightOutsideMap(x, y)
	hWest = m.HeightOutsideMap(x+1, y)
	hEast = m.HeightOutsideMap(x, y+1)
	hSouth = m.HeightOutsideMap(x+1, y+1)
	return
}

// Of returns the slope of a tile inside the map and its height in height units.
// Tiles on the max x column or max y row are flat at their stored height.
func Of(m Heightmap, t tile.Index) (Slope, int) {
	tile.AssertInside(m.Contains(t), t)

	if !m.IsInner(t) {
		return Flat, m.Height(t)
	}

	return Classify(corners(m, t))
}

// PixelOf is Of with the height in pixels.
func PixelOf(m Heightmap, t tile.Index) (Slope, int) {
	s, h := Of(m, t)
	return s, h * terrain.HeightPixels
}

// IsFlat returns whether a tile inside the map is flat and, if so, its height.
func IsFlat(m Heightmap, t tile.Index) (bool, int) {
	tile.AssertInside(m.Contains(t), t)

	if !m.IsInner(t) {
		return true, m.Height(t)
	}

	h := m.Height(t)
	if m.Height(t.Add(m.DiffXY(1, 0))) != h {
		return false, 0
	}
	if m.Height(t.Add(m.DiffXY(0, 1))) != h {
		return false, 0
	}
	if m.Height(t.Add(m.DiffXY(1, 1))) != h {
		return false, 0
	}

	return true, h
}

// MinHeight returns the height of the lowest corner of a tile inside the map.
// Edge tiles return their stored height.
func MinHeight(m Heightmap, t tile.Index) int {
	tile.AssertInside(m.Contains(t), t)

	if !m.IsInner(t) {
		return m.Height(t)
	}

	hNorth, hWest, hEast, hSouth := corners(m, t)
	return bits.Min(bits.Min(hNorth, hWest), bits.Min(hEast, hSouth))
}

// MaxHeight returns the height of the highest corner of a tile inside the map.
//
// Edge tiles return the outside map height at their coordinates, not their
// stored height like MinHeight does. Callers rely on that difference.
func MaxHeight(m Heightmap, t tile.Index) int {
	tile.AssertInside(m.Contains(t), t)

	if !m.IsInner(t) {
		return m.HeightOutsideMap(int(m.X(t)), int(m.Y(t)))
	}

	hNorth, hWest, hEast, hSouth := corners(m, t)
	return bits.Max(bits.Max(hNorth, hWest), bits.Max(hEast, hSouth))
}

// PixelMinHeight is MinHeight in pixels.
func PixelMinHeight(m Heightmap, t tile.Index) int {
	return MinHeight(m, t) * terrain.HeightPixels
}

// PixelMaxHeight is MaxHeight in pixels.
func PixelMaxHeight(m Heightmap, t tile.Index) int {
	return MaxHeight(m, t) * terrain.HeightPixels
}

// OutsideMap returns the slope of the tile at (x, y), which may lie beyond the
// map, and its height in pixels (unlike Of, which uses height units).
func OutsideMap(m terrain.OutsideSource, x, y int) (Slope, int) {
	s, h := Classify(outsideCorners(m, x, y))
	return s, h * terrain.HeightPixels
}

// MinPixelHeightOutsideMap returns the lowest corner of the tile at (x, y) in pixels.
func MinPixelHeightOutsideMap(m terrain.OutsideSource, x, y int) int {
	hNorth, hWest, hEast, hSouth := outsideCorners(m, x, y)
	return bits.Min(bits.Min(hNorth, hWest), bits.Min(hEast, hSouth)) * terrain.HeightPixels
}

// MaxPixelHeightOutsideMap returns the highest corner of the tile at (x, y) in pixels.
func MaxPixelHeightOutsideMap(m terrain.OutsideSource, x, y int) int {
	hNorth, hWest, hEast, hSouth := outsideCorners(m, x, y)
	return bits.Max(bits.Max(hNorth, hWest), bits.Max(hEast, hSouth)) * terrain.HeightPixels
}
