// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"sync"
)

// Data describes a whole heightmap.
// It may be in a compressed format.
type Data struct {
	LogX   uint   `json:"logX"`   // LogX is log2 of the map width.
	LogY   uint   `json:"logY"`   // LogY is log2 of the map height.
	Data   []byte `json:"data"`   // Data is a possibly compressed terrain heightmap.
	Length int    `json:"length"` // Length is uncompressed length of Data for faster reading.
}

var dataPool = sync.Pool{
	New: func() interface{} {
		return &Data{
			Data: make([]byte, 0, 2048),
		}
	},
}

func NewData() *Data {
	return dataPool.Get().(*Data)
}

func (data *Data) Pool() {
	*data = Data{
		Data: data.Data[:0],
	}
	dataPool.Put(data)
}
