// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package slope

import (
	"math/rand"
	"testing"

	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/SoftbearStudios/tileslope/server/tile"
)

func newMap(tb testing.TB) *tile.Map {
	m, err := tile.New(tile.MinLog, tile.MinLog)
	if err != nil {
		tb.Fatal(err)
	}
	return m
}

// setCorners sets the four corners of the tile at (x, y).
func setCorners(m *tile.Map, x, y uint32, hNorth, hWest, hEast, hSouth int) {
	m.SetHeight(m.XY(x, y), hNorth)
	m.SetHeight(m.XY(x+1, y), hWest)
	m.SetHeight(m.XY(x, y+1), hEast)
	m.SetHeight(m.XY(x+1, y+1), hSouth)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		hNorth, hWest, hEast, hSouth int
		slope                        Slope
		h                            int
	}{
		{2, 2, 2, 2, Flat, 2},
		{2, 3, 2, 2, W, 2},
		{2, 4, 2, 2, W | Steep, 2},
		{1, 1, 1, 3, S | Steep, 1},
		{3, 2, 2, 2, N, 2},
		{3, 3, 2, 2, NW, 2},
		{5, 6, 6, 6, WSE, 5},
		{3, 4, 2, 3, SteepW, 2},
		{0, 1, 1, 2, SteepS, 0},
		{1, 1, 1, 1, Flat, 1},
		{1, 2, 2, 1, EW, 1},
		// Differences above 2 are never steep.
		{0, 3, 0, 0, W, 0},
		{0, 4, 4, 0, EW, 0},
		{1, 4, 5, 2, WSE, 1},
	}

	for _, test := range tests {
		s, h := Classify(test.hNorth, test.hWest, test.hEast, test.hSouth)
		if s != test.slope || h != test.h {
			t.Errorf("Classify(%d, %d, %d, %d) expected (%s, %d), got (%s, %d)",
				test.hNorth, test.hWest, test.hEast, test.hSouth, test.slope, test.h, s, h)
		}
	}
}

// forEachCorners calls f with every combination of corner heights in [0, 4].
func forEachCorners(f func(h [CornerCount]int)) {
	var h [CornerCount]int
	for h[CornerN] = 0; h[CornerN] <= 4; h[CornerN]++ {
		for h[CornerW] = 0; h[CornerW] <= 4; h[CornerW]++ {
			for h[CornerE] = 0; h[CornerE] <= 4; h[CornerE]++ {
				for h[CornerS] = 0; h[CornerS] <= 4; h[CornerS]++ {
					f(h)
				}
			}
		}
	}
}

func classifyCorners(h [CornerCount]int) (Slope, int) {
	return Classify(h[CornerN], h[CornerW], h[CornerE], h[CornerS])
}

func TestClassify_Properties(t *testing.T) {
	forEachCorners(func(h [CornerCount]int) {
		s, hMin := classifyCorners(h)

		lo, hi := h[0], h[0]
		for _, c := range h {
			if c < lo {
				lo = c
			}
			if c > hi {
				hi = c
			}
		}

		if hMin != lo {
			t.Errorf("%v: expected min %d, got %d", h, lo, hMin)
		}
		if lo == hi && s != Flat {
			t.Errorf("%v: equal heights expected flat, got %s", h, s)
		}
		if hi-lo < 2 && s.Steep() {
			t.Errorf("%v: difference %d must not be steep", h, hi-lo)
		}
		if hi-lo == 2 && !s.Steep() {
			t.Errorf("%v: difference 2 must be steep, got %s", h, s)
		}
		if hi-lo > 2 && s.Steep() {
			t.Errorf("%v: difference %d must not be steep, got %s", h, hi-lo, s)
		}
		for c := Corner(0); c < CornerCount; c++ {
			if s.Has(c) != (h[c] != lo) {
				t.Errorf("%v: corner %s raised mismatch in %s", h, c, s)
			}
		}
	})
}

func TestClassify_Permutation(t *testing.T) {
	forEachCorners(func(h [CornerCount]int) {
		s, hMin := classifyCorners(h)

		// Rotate the corners around the tile and mirror them.
		perms := [][CornerCount]int{
			{h[1], h[2], h[3], h[0]},
			{h[2], h[3], h[0], h[1]},
			{h[3], h[0], h[1], h[2]},
			{h[3], h[2], h[1], h[0]},
		}
		for _, p := range perms {
			ps, pMin := classifyCorners(p)
			if ps.Steep() != s.Steep() || (ps == Flat) != (s == Flat) || pMin != hMin {
				t.Errorf("%v classified %s but permutation %v classified %s", h, s, p, ps)
			}
			if ps.RaisedCorners() != s.RaisedCorners() {
				t.Errorf("%v raised %d corners but permutation %v raised %d", h, s.RaisedCorners(), p, ps.RaisedCorners())
			}
		}
	})
}

func TestOf(t *testing.T) {
	m := newMap(t)

	setCorners(m, 10, 10, 2, 3, 2, 2)
	if s, h := Of(m, m.XY(10, 10)); s != W || h != 2 {
		t.Errorf("expected (W, 2), got (%s, %d)", s, h)
	}
	if s, h := PixelOf(m, m.XY(10, 10)); s != W || h != 2*terrain.HeightPixels {
		t.Errorf("expected (W, %d), got (%s, %d)", 2*terrain.HeightPixels, s, h)
	}

	setCorners(m, 20, 20, 2, 4, 3, 3)
	if s, h := Of(m, m.XY(20, 20)); s != W|E|S|Steep || h != 2 {
		t.Errorf("expected steep WES at 2, got (%s, %d)", s, h)
	}

	// Edge tiles are flat whatever their neighbours are.
	maxX, maxY := m.MaxX(), m.MaxY()
	m.SetHeight(m.XY(maxX, 5), 5)
	m.SetHeight(m.XY(maxX, 6), 7)
	m.SetHeight(m.XY(maxX-1, 5), 1)
	if s, h := Of(m, m.XY(maxX, 5)); s != Flat || h != 5 {
		t.Errorf("max x tile expected (flat, 5), got (%s, %d)", s, h)
	}
	m.SetHeight(m.XY(7, maxY), 4)
	if s, h := Of(m, m.XY(7, maxY)); s != Flat || h != 4 {
		t.Errorf("max y tile expected (flat, 4), got (%s, %d)", s, h)
	}
}

func TestOf_OutsideMapPanics(t *testing.T) {
	if !tile.Assertions {
		t.Skip("assertions compiled out")
	}

	m := newMap(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for tile outside the map")
		}
	}()
	Of(m, tile.Index(m.Size()))
}

// randomMap fills a map with heights obeying the no gap invariant.
func randomMap(tb testing.TB, seed int64) *tile.Map {
	m := newMap(tb)
	r := rand.New(rand.NewSource(seed))
	for y := uint32(0); y < m.SizeY(); y++ {
		for x := uint32(0); x < m.SizeX(); x++ {
			// Checkerboard parity keeps neighbours within 1 of each other.
			h := 2 + r.Intn(2)*2
			if (x+y)%2 == 1 {
				h = 3
			}
			m.SetHeight(m.XY(x, y), h)
		}
	}
	return m
}

func TestIsFlat(t *testing.T) {
	m := randomMap(t, 1)
	setCorners(m, 30, 30, 3, 3, 3, 3)

	for i := uint32(0); i < m.Size(); i++ {
		tt := tile.Index(i)
		flat, h := IsFlat(m, tt)
		s, sh := Of(m, tt)
		if flat != (s == Flat) {
			t.Fatalf("tile %d: IsFlat %t but slope %s", i, flat, s)
		}
		if flat && h != sh {
			t.Fatalf("tile %d: IsFlat height %d, slope height %d", i, h, sh)
		}
	}

	if flat, h := IsFlat(m, m.XY(30, 30)); !flat || h != 3 {
		t.Errorf("expected (true, 3), got (%t, %d)", flat, h)
	}
}

func TestMinMaxHeight(t *testing.T) {
	m := randomMap(t, 2)

	for y := uint32(0); y < m.MaxY(); y++ {
		for x := uint32(0); x < m.MaxX(); x++ {
			tt := m.XY(x, y)
			lo, hi := MinHeight(m, tt), MaxHeight(m, tt)
			if lo > hi {
				t.Fatalf("(%d, %d): min %d > max %d", x, y, lo, hi)
			}

			s, h := Of(m, tt)
			if lo != h {
				t.Fatalf("(%d, %d): min %d, slope height %d", x, y, lo, h)
			}
			if hi != h+s.MaxHeightOffset() {
				t.Fatalf("(%d, %d): max %d, slope %s at %d", x, y, hi, s, h)
			}
			if PixelMinHeight(m, tt) != lo*terrain.HeightPixels || PixelMaxHeight(m, tt) != hi*terrain.HeightPixels {
				t.Fatalf("(%d, %d): pixel heights don't match", x, y)
			}
		}
	}
}

// MinHeight of an edge tile reads the stored height, MaxHeight reads the
// outside map height. The two only agree while the outside source repeats
// the edge.
func TestMinMaxHeight_EdgeAsymmetry(t *testing.T) {
	m := newMap(t)
	edge := m.XY(m.MaxX(), 3)
	m.SetHeight(edge, 3)

	if lo, hi := MinHeight(m, edge), MaxHeight(m, edge); lo != 3 || hi != 3 {
		t.Errorf("clamped outside: expected (3, 3), got (%d, %d)", lo, hi)
	}

	m.SetOutside(terrain.OutsideFunc(func(x, y int) int {
		return 9
	}))

	if lo := MinHeight(m, edge); lo != 3 {
		t.Errorf("MinHeight of edge tile expected stored height 3, got %d", lo)
	}
	if hi := MaxHeight(m, edge); hi != 9 {
		t.Errorf("MaxHeight of edge tile expected outside height 9, got %d", hi)
	}
	if flat, h := IsFlat(m, edge); !flat || h != 3 {
		t.Errorf("IsFlat of edge tile expected (true, 3), got (%t, %d)", flat, h)
	}
}

func TestOutsideMap(t *testing.T) {
	// Corners of the tile at (-5, -3) are 1, 1, 1 and 3 (south).
	outside := terrain.OutsideFunc(func(x, y int) int {
		if x == -4 && y == -2 {
			return 3
		}
		return 1
	})

	s, h := OutsideMap(outside, -5, -3)
	if s != S|Steep {
		t.Errorf("expected steep S, got %s", s)
	}
	if h != 1*terrain.HeightPixels {
		t.Errorf("expected pixel height %d, got %d", terrain.HeightPixels, h)
	}
	if hi := MaxPixelHeightOutsideMap(outside, -5, -3); hi != 3*terrain.HeightPixels {
		t.Errorf("expected max pixel height %d, got %d", 3*terrain.HeightPixels, hi)
	}
	if lo := MinPixelHeightOutsideMap(outside, -5, -3); lo != terrain.HeightPixels {
		t.Errorf("expected min pixel height %d, got %d", terrain.HeightPixels, lo)
	}
}

func TestOutsideMap_Clamped(t *testing.T) {
	m := newMap(t)
	m.SetHeight(m.XY(0, 0), 2)
	m.SetHeight(m.XY(1, 0), 3)

	// Everything north of the map repeats row 0.
	s, h := OutsideMap(m, 0, -10)
	if s != SW || h != 2*terrain.HeightPixels {
		t.Errorf("expected (SW, %d), got (%s, %d)", 2*terrain.HeightPixels, s, h)
	}

	// A tile straddling the edge uses stored heights for its inner corners.
	m.SetHeight(m.XY(1, 0), 2)
	s, h = OutsideMap(m, 0, -1)
	if s != Flat || h != 2*terrain.HeightPixels {
		t.Errorf("expected (flat, %d), got (%s, %d)", 2*terrain.HeightPixels, s, h)
	}
	m.SetHeight(m.XY(0, 1), 2)
	m.SetHeight(m.XY(1, 1), 3)
	if s, _ = OutsideMap(m, 0, 0); s != S {
		t.Errorf("expected S, got %s", s)
	}
}

func TestPixelZ(t *testing.T) {
	m := newMap(t)
	setCorners(m, 10, 10, 0, 1, 0, 0)

	const half = terrain.TilePixels / 2
	if z := PixelZ(m, 10*terrain.TilePixels+half, 10*terrain.TilePixels+half); z != 0.25*terrain.HeightPixels {
		t.Errorf("expected %f, got %f", 0.25*terrain.HeightPixels, z)
	}
	if z := PixelZ(m, 11*terrain.TilePixels, 10*terrain.TilePixels); z != terrain.HeightPixels {
		t.Errorf("expected %d at the raised corner, got %f", terrain.HeightPixels, z)
	}

	m.SetHeight(m.XY(0, 0), 2)
	if z := PixelZ(m, -100, -100); z != 2*terrain.HeightPixels {
		t.Errorf("expected %d beyond the map, got %f", 2*terrain.HeightPixels, z)
	}
}

func BenchmarkClassify(b *testing.B) {
	const count = 1024
	heights := make([][CornerCount]int, count)
	for i := range heights {
		base := rand.Intn(terrain.MaxHeight - 2)
		for c := range heights[i] {
			heights[i][c] = base + rand.Intn(3)
		}
	}
	b.ResetTimer()

	var acc Slope
	for i := 0; i < b.N; i++ {
		s, _ := classifyCorners(heights[i&(count-1)])
		acc ^= s
	}
	_ = acc
}

func BenchmarkOf(b *testing.B) {
	m := randomMap(b, 3)
	b.ResetTimer()

	var acc Slope
	for i := 0; i < b.N; i++ {
		s, _ := Of(m, tile.Index(uint32(i)%m.Size()))
		acc ^= s
	}
	_ = acc
}
