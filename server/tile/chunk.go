// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tile

import (
	"sync/atomic"
)

// chunkSize is the width and height of a chunk.
// It must be a power of 2 no larger than the smallest map.
const chunkSize = 1 << MinLog

// nibblesPerWord is the number of heights packed into one uint64.
const nibblesPerWord = 16

// chunk stores a region of heightmap data as nibbles.
type chunk struct {
	data [chunkSize][chunkSize / nibblesPerWord]uint64
}

// at gets a relative position in the chunk.
func (c *chunk) at(x, y uint32) byte {
	dat := atomic.LoadUint64(&c.data[y][x/nibblesPerWord])
	return byte(dat>>((x%nibblesPerWord)*4)) & 0b1111
}

// set sets a relative position's value.
func (c *chunk) set(x, y uint32, value byte) {
	shift := (x % nibblesPerWord) * 4
	addr := &c.data[y][x/nibblesPerWord]

	for {
		oldVal := atomic.LoadUint64(addr)
		newVal := (oldVal &^ (0b1111 << shift)) | uint64(value&0b1111)<<shift
		if atomic.CompareAndSwapUint64(addr, oldVal, newVal) {
			break
		}
	}
}

// fill overwrites the chunk from a row major heightmap of the given stride.
// Whole words are stored at once.
func (c *chunk) fill(heightmap []byte, stride int) {
	for j := 0; j < chunkSize; j++ {
		row := heightmap[j*stride : j*stride+chunkSize]
		for w := range c.data[j] {
			var word uint64
			for i := 0; i < nibblesPerWord; i++ {
				word |= uint64(row[w*nibblesPerWord+i]&0b1111) << (i * 4)
			}
			atomic.StoreUint64(&c.data[j][w], word)
		}
	}
}
