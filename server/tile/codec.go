// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tile

import (
	"io"

	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/SoftbearStudios/tileslope/server/terrain/compressed"
	"github.com/pkg/errors"
)

// Encode returns all heights of m, run length encoded.
// The caller may return the Data to its pool once done with it.
func (m *Map) Encode() *terrain.Data {
	data := terrain.NewData()

	var buffer compressed.Buffer
	buffer.Reset(data.Data)

	for y := uint32(0); y < m.sizeY; y++ {
		for x := uint32(0); x < m.sizeX; x++ {
			_ = buffer.WriteByte(m.chunkAt(x, y).at(x&(chunkSize-1), y&(chunkSize-1)))
		}
	}

	data.LogX = m.logX
	data.LogY = m.logY
	data.Data = buffer.Buffer()
	data.Length = int(m.Size())

	return data
}

// Decode creates a map from the output of Encode. data is left untouched.
func Decode(data *terrain.Data) (*Map, error) {
	m, err := New(data.LogX, data.LogY)
	if err != nil {
		return nil, err
	}

	if data.Length != int(m.Size()) {
		return nil, errors.Errorf("length %d does not match map size %d", data.Length, m.Size())
	}

	// Reading consumes the buffer.
	var buffer compressed.Buffer
	buffer.Reset(append([]byte(nil), data.Data...))

	raw := make([]byte, data.Length)
	if _, err := io.ReadFull(&buffer, raw); err != nil {
		return nil, errors.Wrap(err, "decoding heights")
	}

	m.fill(raw)
	return m, nil
}
