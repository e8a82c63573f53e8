// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render draws a tile map as a slope shaded image.
package render

import (
	"image"

	"github.com/SoftbearStudios/tileslope/server/bits"
	"github.com/SoftbearStudios/tileslope/server/slope"
	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/SoftbearStudios/tileslope/server/tile"
	"github.com/chewxy/math32"
)

var colors = [...]ColorVec{
	RGB(0, 50, 115),
	RGB(0, 75, 130),
	RGB(194, 178, 128),
	RGB(90, 180, 30),
	RGB(105, 110, 115),
	Gray(220),
}

// light points from the ground towards the sun, which is in the north.
var light = normalize(-1, -1, 1.5)

// HeightColor returns the color of ground h height units high.
// h may be fractional.
func HeightColor(h float32) ColorVec {
	switch {
	case h <= terrain.SeaLevel+0.5:
		return colors[0].Lerp(colors[1], clamp(h+0.5))
	case h <= terrain.SandLevel+0.5:
		return colors[2]
	case h <= terrain.GrassLevel:
		return colors[2].Lerp(colors[3], clamp((h-terrain.SandLevel)*0.4))
	case h <= terrain.RockLevel:
		return colors[3].Lerp(colors[4], clamp((h-terrain.GrassLevel)*0.25))
	default:
		return colors[4].Lerp(colors[5], clamp((h-terrain.RockLevel)/(terrain.SnowLevel-terrain.RockLevel)))
	}
}

// Shade returns how brightly a tile with slope s is lit, 1 for flat ground.
func Shade(s slope.Slope) float32 {
	h := func(c slope.Corner) float32 { return float32(s.CornerHeight(c)) }

	// Rise along +x (towards the W and S corners) and +y (towards E and S).
	gx := (h(slope.CornerW) + h(slope.CornerS) - h(slope.CornerN) - h(slope.CornerE)) * 0.5
	gy := (h(slope.CornerE) + h(slope.CornerS) - h(slope.CornerN) - h(slope.CornerW)) * 0.5

	// One height unit is half a tile side.
	const rise = float32(terrain.HeightPixels) / terrain.TilePixels
	n := normalize(-gx*rise, -gy*rise, 1)

	flat := light[2]
	return math32.Max(n[0]*light[0]+n[1]*light[1]+n[2]*light[2], 0) / flat
}

// Render draws m with scale pixels per tile side.
func Render(m *tile.Map, scale int) image.Image {
	scale = bits.Max(scale, 1)
	width := int(m.SizeX()) * scale
	height := int(m.SizeY()) * scale
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	shades := make([]float32, m.Size())
	for i := range shades {
		s, _ := slope.Of(m, tile.Index(i))
		shades[i] = Shade(s)
	}

	step := float32(terrain.TilePixels) / float32(scale)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			px := (float32(i) + 0.5) * step
			py := (float32(j) + 0.5) * step
			z := slope.PixelZ(m, px, py) / terrain.HeightPixels

			shade := shades[m.XY(uint32(i/scale), uint32(j/scale))]
			img.Set(i, j, HeightColor(z).Mul(shade).Color())
		}
	}

	return img
}

func normalize(x, y, z float32) [3]float32 {
	l := math32.Sqrt(x*x + y*y + z*z)
	return [3]float32{x / l, y / l, z / l}
}
