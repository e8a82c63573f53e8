// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tile stores the corner heights of a square grid map and does
// tile coordinate arithmetic.
//
// A tile index is y<<logX | x. Each tile owns the height of its north corner;
// its other corners are the north corners of the tiles at (x+1, y), (x, y+1)
// and (x+1, y+1).
package tile

import (
	"fmt"

	"github.com/SoftbearStudios/tileslope/server/bits"
	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

const (
	// MinLog is log2 of the smallest map side.
	MinLog = 6
	// MaxLog is log2 of the largest map side.
	MaxLog = 11
)

// Index addresses one tile of a Map.
type Index uint32

// Diff is the difference between two indices of the same Map.
type Diff int32

// Add offsets t by d. The result wraps like the index arithmetic it replaces,
// so it is only meaningful if it lands on the map.
func (t Index) Add(d Diff) Index {
	return t + Index(d)
}

// Map holds one height per tile corner.
// Reads and writes of single heights may happen concurrently.
type Map struct {
	logX    uint
	logY    uint
	sizeX   uint32
	sizeY   uint32
	chunks  []*chunk // (sizeY/chunkSize) rows of (sizeX/chunkSize) chunks
	outside terrain.OutsideSource
}

// New creates a flat map of 2^logX by 2^logY tiles, all at height 0.
func New(logX, logY uint) (*Map, error) {
	if logX < MinLog || logX > MaxLog || logY < MinLog || logY > MaxLog {
		return nil, errors.Errorf("map size 2^%d x 2^%d outside 2^%d..2^%d", logX, logY, MinLog, MaxLog)
	}

	m := &Map{
		logX:  logX,
		logY:  logY,
		sizeX: 1 << logX,
		sizeY: 1 << logY,
	}

	m.chunks = make([]*chunk, (m.sizeX/chunkSize)*(m.sizeY/chunkSize))
	for i := range m.chunks {
		m.chunks[i] = new(chunk)
	}

	return m, nil
}

func (m *Map) LogX() uint    { return m.logX }
func (m *Map) LogY() uint    { return m.logY }
func (m *Map) SizeX() uint32 { return m.sizeX }
func (m *Map) SizeY() uint32 { return m.sizeY }
func (m *Map) MaxX() uint32  { return m.sizeX - 1 }
func (m *Map) MaxY() uint32  { return m.sizeY - 1 }
func (m *Map) Size() uint32  { return m.sizeX * m.sizeY }

// X returns the x coordinate of t.
func (m *Map) X(t Index) uint32 {
	return uint32(t) & (m.sizeX - 1)
}

// Y returns the y coordinate of t.
func (m *Map) Y(t Index) uint32 {
	return uint32(t) >> m.logX
}

// XY returns the index of the tile at (x, y).
func (m *Map) XY(x, y uint32) Index {
	return Index(y<<m.logX | x)
}

// DiffXY returns the index offset of a move by (dx, dy).
func (m *Map) DiffXY(dx, dy int) Diff {
	return Diff(dy<<m.logX + dx)
}

// Contains reports whether t addresses a tile of the map.
func (m *Map) Contains(t Index) bool {
	return uint32(t) < m.Size()
}

// IsInner reports whether all four corners of t are stored in the map,
// meaning t is not on the max x column or max y row.
func (m *Map) IsInner(t Index) bool {
	return m.X(t) < m.MaxX() && m.Y(t) < m.MaxY()
}

// Height returns the stored height of the north corner of t.
func (m *Map) Height(t Index) int {
	AssertInside(m.Contains(t), t)
	x, y := m.X(t), m.Y(t)
	return int(m.chunkAt(x, y).at(x&(chunkSize-1), y&(chunkSize-1)))
}

// SetHeight changes the stored height of the north corner of t.
// h is clamped to [0, terrain.MaxHeight].
func (m *Map) SetHeight(t Index, h int) {
	AssertInside(m.Contains(t), t)
	x, y := m.X(t), m.Y(t)
	m.chunkAt(x, y).set(x&(chunkSize-1), y&(chunkSize-1), byte(terrain.ClampHeight(h)))
}

// SetOutside replaces the function used for corners beyond the map.
// A nil source restores the default of repeating the nearest edge height.
// It must not be called concurrently with queries.
func (m *Map) SetOutside(source terrain.OutsideSource) {
	m.outside = source
}

// HeightOutsideMap returns the height of the corner at (x, y), which may lie
// beyond the map.
func (m *Map) HeightOutsideMap(x, y int) int {
	if m.outside != nil {
		return m.outside.HeightOutsideMap(x, y)
	}
	return m.ClampedHeight(x, y)
}

// ClampedHeight returns the stored height of the map corner nearest to (x, y).
func (m *Map) ClampedHeight(x, y int) int {
	cx := bits.Clamp(x, 0, int(m.MaxX()))
	cy := bits.Clamp(y, 0, int(m.MaxY()))
	return m.Height(m.XY(uint32(cx), uint32(cy)))
}

// Generate overwrites every height with data from source.
// It must not be called concurrently with queries.
func (m *Map) Generate(source terrain.Source) error {
	heightmap := source.Generate(0, 0, int(m.sizeX), int(m.sizeY))
	if len(heightmap) != int(m.Size()) {
		return errors.Errorf("source generated %d heights, expected %d", len(heightmap), m.Size())
	}

	m.fill(heightmap)
	return nil
}

// fill overwrites every height from a row major heightmap of m.Size() heights.
func (m *Map) fill(heightmap []byte) {
	stride := int(m.sizeX)
	chunksX := m.sizeX / chunkSize
	for i, c := range m.chunks {
		cx := uint32(i) % chunksX
		cy := uint32(i) / chunksX
		c.fill(heightmap[int(cy*chunkSize)*stride+int(cx*chunkSize):], stride)
	}
}

// Debug prints debug info to os.StdOut.
func (m *Map) Debug() {
	var c chunk
	memory := uint64(len(m.chunks)) * uint64(len(c.data)*len(c.data[0])*8)
	fmt.Printf("tile map: %dx%d, chunks: %d, memory: %s\n", m.sizeX, m.sizeY, len(m.chunks), humanize.Bytes(memory))
}

// chunkAt returns the chunk storing (x, y).
func (m *Map) chunkAt(x, y uint32) *chunk {
	return m.chunks[(y/chunkSize)*(m.sizeX/chunkSize)+x/chunkSize]
}
