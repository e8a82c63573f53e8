// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tile

import "github.com/pkg/errors"

// AssertInside panics if inside is false and assertions are compiled in.
// A tile outside the map is a caller bug, not a runtime condition.
func AssertInside(inside bool, t Index) {
	if Assertions && !inside {
		panic(errors.Errorf("tile %d outside the map", t))
	}
}
