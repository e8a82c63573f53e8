// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package slope

import "github.com/SoftbearStudios/tileslope/server/bits"

// Classify returns the slope of a tile with the given corner heights and the
// height of its lowest corner.
//
// Tiles connect without gaps, so no corner is more than 2 above the lowest one.
// A difference of exactly 2 adds Steep to the raised corners. Larger
// differences are not reported as errors; the result just loses detail.
func Classify(hNorth, hWest, hEast, hSouth int) (Slope, int) {
	hMin := bits.Min(bits.Min(hNorth, hWest), bits.Min(hEast, hSouth))
	hMax := bits.Max(bits.Max(hNorth, hWest), bits.Max(hEast, hSouth))

	r := Flat
	if hNorth != hMin {
		r |= N
	}
	if hWest != hMin {
		r |= W
	}
	if hEast != hMin {
		r |= E
	}
	if hSouth != hMin {
		r |= S
	}
	if hMax-hMin == 2 {
		r |= Steep
	}

	return r, hMin
}
