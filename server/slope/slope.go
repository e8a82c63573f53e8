// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package slope classifies the shape of tiles from their four corner heights.
package slope

import (
	"strings"

	"github.com/SoftbearStudios/tileslope/server/bits"
)

// Slope is a set of raised corners plus a steep flag.
// The zero value is a flat tile.
type Slope uint8

const (
	Flat  Slope = 0
	W     Slope = 1 << CornerW
	S     Slope = 1 << CornerS
	E     Slope = 1 << CornerE
	N     Slope = 1 << CornerN
	Steep Slope = 1 << 4

	NW       = N | W
	SW       = S | W
	SE       = S | E
	NE       = N | E
	EW       = E | W
	NS       = N | S
	Elevated = N | E | S | W

	NWS = N | W | S
	WSE = W | S | E
	SEN = S | E | N
	ENW = E | N | W

	// Steep slopes are named after their highest corner.
	SteepW = Steep | NWS
	SteepS = Steep | WSE
	SteepE = Steep | SEN
	SteepN = Steep | ENW
)

// Corner is one of the four corners of a tile.
type Corner uint8

const (
	CornerW Corner = iota
	CornerS
	CornerE
	CornerN
	CornerCount

	CornerInvalid Corner = 0xFF
)

var cornerNames = [CornerCount]string{"W", "S", "E", "N"}

// Opposite returns the corner diagonally across the tile.
func (c Corner) Opposite() Corner {
	return c ^ 2
}

// Slope returns the slope with only c raised.
func (c Corner) Slope() Slope {
	return 1 << c
}

func (c Corner) String() string {
	if c >= CornerCount {
		return "invalid"
	}
	return cornerNames[c]
}

// Steep is true if the highest corner is 2 above the lowest.
func (s Slope) Steep() bool {
	return s&Steep != 0
}

// Has is true if corner c is raised.
func (s Slope) Has(c Corner) bool {
	return bits.HasBit(uint8(s), uint8(c))
}

// Corners returns s without the steep flag.
func (s Slope) Corners() Slope {
	return s & Elevated
}

// RaisedCorners counts the raised corners.
func (s Slope) RaisedCorners() int {
	return int(bits.CountBits(uint8(s.Corners())))
}

// HighestCorner returns the highest corner of a slope with one raised corner
// or of a steep slope with three, and CornerInvalid otherwise.
func (s Slope) HighestCorner() Corner {
	switch s.RaisedCorners() {
	case 1:
		return Corner(bits.FindFirstBit(uint8(s.Corners())))
	case 3:
		if s.Steep() {
			lowest := Corner(bits.FindFirstBit(uint8(Elevated &^ s)))
			return lowest.Opposite()
		}
	}
	return CornerInvalid
}

// MaxHeightOffset returns how far the highest corner is above the lowest.
func (s Slope) MaxHeightOffset() int {
	switch {
	case s.Steep():
		return 2
	case s == Flat:
		return 0
	default:
		return 1
	}
}

// CornerHeight returns how far corner c is above the lowest corner.
func (s Slope) CornerHeight(c Corner) int {
	h := 0
	if s.Has(c) {
		h++
		if s.Steep() && s.HighestCorner() == c {
			h++
		}
	}
	return h
}

// Valid is true for the slopes that tiles obeying the height invariant can have:
// any set of raised corners except all four, or a steep flag with exactly three
// raised corners. The lowest corner is never raised, so Elevated is invalid.
func (s Slope) Valid() bool {
	if s > SteepN|SteepS {
		return false
	}
	if s.Steep() {
		return s.RaisedCorners() == 3
	}
	return s != Elevated
}

func (s Slope) String() string {
	if s == Flat {
		return "flat"
	}

	var builder strings.Builder
	if s.Steep() {
		builder.WriteString("steep")
		if s.Corners() != Flat {
			builder.WriteByte(' ')
		}
	}
	for _, c := range [...]Corner{CornerN, CornerW, CornerE, CornerS} {
		if s.Has(c) {
			builder.WriteString(c.String())
		}
	}
	return builder.String()
}
