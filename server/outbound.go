// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"sync"

	"github.com/SoftbearStudios/tileslope/server/slope"
)

type (
	// Loaded confirms a Load.
	Loaded struct {
		Name  string `json:"name"`
		SizeX uint32 `json:"sizeX"`
		SizeY uint32 `json:"sizeY"`
	}

	// OutsideResult answers Outside. Heights are in pixels.
	OutsideResult struct {
		X              int         `json:"x"`
		Y              int         `json:"y"`
		Slope          slope.Slope `json:"slope"`
		Name           string      `json:"name"`
		PixelHeight    int         `json:"pixelHeight"`
		MinPixelHeight int         `json:"minPixelHeight"`
		MaxPixelHeight int         `json:"maxPixelHeight"`
	}

	// PixelZResult answers PixelZ.
	PixelZResult struct {
		X float32 `json:"x"`
		Y float32 `json:"y"`
		Z float32 `json:"z"`
	}

	// QueryError reports a query that could not be answered.
	QueryError struct {
		Message string `json:"message"`
	}

	// RegionResult answers Region with row major slopes and heights.
	RegionResult struct {
		X       int           `json:"x"`
		Y       int           `json:"y"`
		Width   int           `json:"width"`
		Height  int           `json:"height"`
		Slopes  []slope.Slope `json:"slopes"`
		Heights []int         `json:"heights"`
	}

	// Saved confirms a Save.
	Saved struct {
		Name string `json:"name"`
	}

	// SlopeResult answers Slope. Heights are in height units unless named pixel.
	SlopeResult struct {
		X           int         `json:"x"`
		Y           int         `json:"y"`
		Slope       slope.Slope `json:"slope"`
		Name        string      `json:"name"`
		Height      int         `json:"height"`
		PixelHeight int         `json:"pixelHeight"`
		MinHeight   int         `json:"minHeight"`
		MaxHeight   int         `json:"maxHeight"`
		Flat        bool        `json:"flat"`
		Inner       bool        `json:"inner"`
	}

	// SnapshotList answers Snapshots.
	SnapshotList struct {
		Names []string `json:"names"`
	}
)

func init() {
	registerOutbound(
		Loaded{},
		OutsideResult{},
		PixelZResult{},
		QueryError{},
		&RegionResult{},
		Saved{},
		SlopeResult{},
		SnapshotList{},
	)
}

const poolRegionCap = 256

var regionPool = sync.Pool{
	New: func() interface{} {
		return &RegionResult{
			Slopes:  make([]slope.Slope, 0, poolRegionCap),
			Heights: make([]int, 0, poolRegionCap),
		}
	},
}

func NewRegionResult() *RegionResult {
	return regionPool.Get().(*RegionResult)
}

func (result *RegionResult) Pool() {
	*result = RegionResult{
		Slopes:  result.Slopes[:0],
		Heights: result.Heights[:0],
	}
	regionPool.Put(result)
}

func (Loaded) Pool()        {}
func (OutsideResult) Pool() {}
func (PixelZResult) Pool()  {}
func (QueryError) Pool()    {}
func (Saved) Pool()         {}
func (SlopeResult) Pool()   {}
func (SnapshotList) Pool()  {}
