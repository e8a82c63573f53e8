// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tile

import (
	"math/rand"
	"testing"

	"github.com/SoftbearStudios/tileslope/server/terrain"
)

func TestNew(t *testing.T) {
	tests := []struct {
		logX, logY uint
		ok         bool
	}{
		{MinLog, MinLog, true},
		{MinLog, MaxLog, true},
		{MinLog - 1, MinLog, false},
		{MinLog, MaxLog + 1, false},
	}

	for _, test := range tests {
		m, err := New(test.logX, test.logY)
		if (err == nil) != test.ok {
			t.Errorf("New(%d, %d) expected ok %t, got %v", test.logX, test.logY, test.ok, err)
			continue
		}
		if err == nil && (m.SizeX() != 1<<test.logX || m.SizeY() != 1<<test.logY) {
			t.Errorf("New(%d, %d) size %dx%d", test.logX, test.logY, m.SizeX(), m.SizeY())
		}
	}
}

func TestMap_XY(t *testing.T) {
	m, err := New(7, 6)
	if err != nil {
		t.Fatal(err)
	}

	errs := 0
	for i := 0; i < 10000; i++ {
		x := uint32(rand.Intn(int(m.SizeX())))
		y := uint32(rand.Intn(int(m.SizeY())))
		tt := m.XY(x, y)

		if m.X(tt) != x || m.Y(tt) != y {
			t.Errorf("XY(%d, %d) = %d, X = %d, Y = %d", x, y, tt, m.X(tt), m.Y(tt))
			if errs++; errs > 10 {
				t.FailNow()
			}
		}

		if x > 0 && y > 0 {
			if back := tt.Add(m.DiffXY(-1, -1)); back != m.XY(x-1, y-1) {
				t.Errorf("(%d, %d) + DiffXY(-1, -1) = %d, expected %d", x, y, back, m.XY(x-1, y-1))
			}
		}
	}

	if !m.Contains(Index(m.Size()-1)) || m.Contains(Index(m.Size())) {
		t.Error("Contains at the end of the map")
	}
}

func TestMap_IsInner(t *testing.T) {
	m, err := New(MinLog, MinLog)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x, y  uint32
		inner bool
	}{
		{0, 0, true},
		{m.MaxX() - 1, m.MaxY() - 1, true},
		{m.MaxX(), 0, false},
		{0, m.MaxY(), false},
		{m.MaxX(), m.MaxY(), false},
	}

	for _, test := range tests {
		if inner := m.IsInner(m.XY(test.x, test.y)); inner != test.inner {
			t.Errorf("IsInner(%d, %d) expected %t", test.x, test.y, test.inner)
		}
	}
}

func TestMap_Height(t *testing.T) {
	m, err := New(MinLog+1, MinLog)
	if err != nil {
		t.Fatal(err)
	}

	expected := make([]int, m.Size())
	for i := range expected {
		expected[i] = rand.Intn(terrain.MaxHeight + 1)
		m.SetHeight(Index(i), expected[i])
	}

	for i, h := range expected {
		if got := m.Height(Index(i)); got != h {
			t.Fatalf("Height(%d) expected %d, got %d", i, h, got)
		}
	}

	m.SetHeight(0, terrain.MaxHeight+5)
	if h := m.Height(0); h != terrain.MaxHeight {
		t.Errorf("expected height clamped to %d, got %d", terrain.MaxHeight, h)
	}
}

func TestMap_HeightOutsideMap(t *testing.T) {
	m, err := New(MinLog, MinLog)
	if err != nil {
		t.Fatal(err)
	}
	m.SetHeight(m.XY(0, 0), 1)
	m.SetHeight(m.XY(m.MaxX(), m.MaxY()), 7)
	m.SetHeight(m.XY(5, m.MaxY()), 4)

	tests := []struct {
		x, y int
		h    int
	}{
		{-3, -3, 1},
		{0, 0, 1},
		{1000, 1000, 7},
		{5, 1000, 4},
	}

	for _, test := range tests {
		if h := m.HeightOutsideMap(test.x, test.y); h != test.h {
			t.Errorf("HeightOutsideMap(%d, %d) expected %d, got %d", test.x, test.y, test.h, h)
		}
	}

	m.SetOutside(terrain.OutsideFunc(func(x, y int) int { return x + y }))
	if h := m.HeightOutsideMap(-1, 3); h != 2 {
		t.Errorf("custom outside source expected 2, got %d", h)
	}
	m.SetOutside(nil)
	if h := m.HeightOutsideMap(-1, -1); h != 1 {
		t.Errorf("default outside source expected 1, got %d", h)
	}
}

type stripes struct{}

func (stripes) Generate(x, y, width, height int) []byte {
	buf := make([]byte, width*height)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			buf[i+j*width] = byte((x + i) % (terrain.MaxHeight + 1))
		}
	}
	return buf
}

func TestMap_Generate(t *testing.T) {
	m, err := New(MinLog+1, MinLog+1)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Generate(stripes{}); err != nil {
		t.Fatal(err)
	}

	for _, xy := range [][2]uint32{{0, 0}, {17, 3}, {64, 100}, {127, 127}} {
		expected := int(xy[0]) % (terrain.MaxHeight + 1)
		if h := m.Height(m.XY(xy[0], xy[1])); h != expected {
			t.Errorf("(%d, %d) expected %d, got %d", xy[0], xy[1], expected, h)
		}
	}
}

func TestMap_EncodeDecode(t *testing.T) {
	m, err := New(MinLog+1, MinLog)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint32(0); i < m.Size(); i++ {
		m.SetHeight(Index(i), int(i/50)%(terrain.MaxHeight+1))
	}

	data := m.Encode()
	defer data.Pool()

	if len(data.Data) >= int(m.Size()) {
		t.Errorf("encoded %d heights into %d bytes", m.Size(), len(data.Data))
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.SizeX() != m.SizeX() || decoded.SizeY() != m.SizeY() {
		t.Fatalf("decoded size %dx%d", decoded.SizeX(), decoded.SizeY())
	}
	for i := uint32(0); i < m.Size(); i++ {
		if decoded.Height(Index(i)) != m.Height(Index(i)) {
			t.Fatalf("tile %d expected %d, got %d", i, m.Height(Index(i)), decoded.Height(Index(i)))
		}
	}

	// Decoding again works because data is not consumed.
	if _, err := Decode(data); err != nil {
		t.Error(err)
	}

	data.Length--
	if _, err := Decode(data); err == nil {
		t.Error("expected error for wrong length")
	}
}

func TestAssertInside(t *testing.T) {
	if !Assertions {
		t.Skip("assertions compiled out")
	}

	m, err := New(MinLog, MinLog)
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	m.Height(Index(m.Size()))
}
