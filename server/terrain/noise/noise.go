// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package noise generates heightmaps and extrapolates them beyond the map edge.
package noise

import (
	"github.com/SoftbearStudios/tileslope/server/bits"
	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/aquilax/go-perlin"
)

const (
	frequency     = 0.03
	zoneFrequency = 0.006
)

// Generator generates a heightmap using perlin noise.
type Generator struct {
	// Land heightmap noise
	landHi *perlin.Perlin // for smaller/higher frequency details
	landLo *perlin.Perlin // for larger/lower frequency details
}

func NewDefault() *Generator {
	return New(terrain.Seed)
}

// New creates a new Generator with a seed.
func New(seed int64) *Generator {
	return &Generator{
		landHi: perlin.NewPerlin(1.5, 2.0, 4, seed),
		landLo: perlin.NewPerlin(2.5, 3.0, 4, seed+1),
	}
}

// Generate implements terrain.Source.Generate.
// Neighbouring heights of the result differ by at most 1, so no tile is
// more than 2 high from its lowest to its highest corner.
func (g *Generator) Generate(px, py, width, height int) []byte {
	buf := make([]byte, width*height)

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			x := float64(i + px)
			y := float64(j + py)

			h := g.landHi.Noise2D(x*frequency, y*frequency) + 0.5

			// Zone is very low frequency
			zone := g.landLo.Noise2D(x*zoneFrequency, y*zoneFrequency)*2.0 + 0.6
			if zone > 1 {
				zone = 1
			}
			h *= zone

			buf[i+j*width] = clampToHeight(h * terrain.MaxHeight)
		}
	}

	smooth(buf, width, height)
	return buf
}

// smooth lowers heights until no height is more than 1 above a neighbour.
// It is a two pass distance transform: after the forward pass every height is
// within 1 of its left and upper neighbours, the backward pass adds right and
// lower neighbours without breaking that.
func smooth(buf []byte, width, height int) {
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			h := buf[i+j*width]
			if i > 0 {
				h = bits.Min(h, buf[i-1+j*width]+1)
			}
			if j > 0 {
				h = bits.Min(h, buf[i+(j-1)*width]+1)
			}
			buf[i+j*width] = h
		}
	}

	for j := height - 1; j >= 0; j-- {
		for i := width - 1; i >= 0; i-- {
			h := buf[i+j*width]
			if i < width-1 {
				h = bits.Min(h, buf[i+1+j*width]+1)
			}
			if j < height-1 {
				h = bits.Min(h, buf[i+(j+1)*width]+1)
			}
			buf[i+j*width] = h
		}
	}
}
