// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math"

	"github.com/SoftbearStudios/tileslope/server/bits"
	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/SoftbearStudios/tileslope/server/tile"
	opensimplex "github.com/ojrac/opensimplex-go"
)

const (
	extrapolateFrequency = 0.15
	// maxBump is the furthest the extrapolated terrain strays from the edge.
	maxBump = 2
)

// Extrapolator implements terrain.OutsideSource with hills that grow out of
// the nearest map edge. Corners on the map keep their stored heights.
type Extrapolator struct {
	m     *tile.Map
	noise opensimplex.Noise
}

// NewExtrapolator creates an Extrapolator for m. Install it with m.SetOutside.
func NewExtrapolator(m *tile.Map, seed int64) *Extrapolator {
	return &Extrapolator{
		m:     m,
		noise: opensimplex.New(seed),
	}
}

// HeightOutsideMap implements terrain.OutsideSource.
func (e *Extrapolator) HeightOutsideMap(x, y int) int {
	edge := e.m.ClampedHeight(x, y)

	distance := e.Distance(x, y)
	if distance == 0 {
		return edge
	}

	// Bumps grow by at most one height unit per corner away from the map.
	amplitude := float64(bits.Min(distance, maxBump))
	bump := math.Round(e.noise.Eval2(float64(x)*extrapolateFrequency, float64(y)*extrapolateFrequency) * amplitude)

	return terrain.ClampHeight(edge + int(bump))
}

// Distance is how many corners (x, y) is away from the map, 0 on the map.
func (e *Extrapolator) Distance(x, y int) int {
	dx := bits.Max(bits.Max(-x, x-int(e.m.MaxX())), 0)
	dy := bits.Max(bits.Max(-y, y-int(e.m.MaxY())), 0)
	return bits.Max(dx, dy)
}
