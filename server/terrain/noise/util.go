// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import "github.com/SoftbearStudios/tileslope/server/terrain"

func clampToHeight(f float64) byte {
	if f < 0 {
		return 0
	}
	if f > terrain.MaxHeight {
		return terrain.MaxHeight
	}
	return byte(f)
}
