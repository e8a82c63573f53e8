// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"strings"

	"github.com/SoftbearStudios/tileslope/server/slope"
	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/SoftbearStudios/tileslope/server/tile"
)

// maxRegionArea is the most tiles a Region query may cover.
const maxRegionArea = 64 * 64

// Make sure to register in init function
type (
	// InvalidInbound means invalid message type from client (possibly out of date).
	// NOTE: Do not register, otherwise client could send type "invalidInbound"
	InvalidInbound struct {
		messageType messageType
	}

	// Load replaces the served map with a snapshot.
	Load struct {
		Name string `json:"name"`
		Auth string `json:"auth"`
	}

	// Outside asks for the slope of a tile that may lie beyond the map.
	Outside struct {
		X int `json:"x"`
		Y int `json:"y"`
	}

	// PixelZ asks for the ground height at a world pixel position.
	PixelZ struct {
		X float32 `json:"x"`
		Y float32 `json:"y"`
	}

	// Region asks for the slopes and heights of a rectangle of tiles.
	Region struct {
		X      int `json:"x"`
		Y      int `json:"y"`
		Width  int `json:"width"`
		Height int `json:"height"`
	}

	// Save stores the served map as a snapshot.
	Save struct {
		Name string `json:"name"`
		Auth string `json:"auth"`
	}

	// Slope asks for the slope and heights of a tile inside the map.
	Slope struct {
		X int `json:"x"`
		Y int `json:"y"`
	}

	// Snapshots asks for the names of all snapshots.
	Snapshots struct{}
)

func init() {
	registerInbound(
		Load{},
		Outside{},
		PixelZ{},
		Region{},
		Save{},
		Slope{},
		Snapshots{},
	)
}

func (data InvalidInbound) Inbound(_ *Hub, client Client) {
	client.Send(QueryError{Message: fmt.Sprintf("invalid message type %q, expected one of %s",
		data.messageType, strings.Join(messages.inboundTypes(), ", "))})
}

// inside returns the index of (x, y) if it is on the map.
func inside(m *tile.Map, x, y int) (tile.Index, bool) {
	if x < 0 || y < 0 || x > int(m.MaxX()) || y > int(m.MaxY()) {
		return 0, false
	}
	return m.XY(uint32(x), uint32(y)), true
}

func (data Slope) Inbound(h *Hub, client Client) {
	t, ok := inside(h.m, data.X, data.Y)
	if !ok {
		client.Send(QueryError{Message: "tile outside map"})
		return
	}

	s, pixelHeight := slope.PixelOf(h.m, t)
	flat, _ := slope.IsFlat(h.m, t)
	client.Send(SlopeResult{
		X:           data.X,
		Y:           data.Y,
		Slope:       s,
		Name:        s.String(),
		Height:      pixelHeight / terrain.HeightPixels,
		PixelHeight: pixelHeight,
		MinHeight:   slope.MinHeight(h.m, t),
		MaxHeight:   slope.MaxHeight(h.m, t),
		Flat:        flat,
		Inner:       h.m.IsInner(t),
	})
}

func (data Outside) Inbound(h *Hub, client Client) {
	s, pixelHeight := slope.OutsideMap(h.m, data.X, data.Y)
	client.Send(OutsideResult{
		X:              data.X,
		Y:              data.Y,
		Slope:          s,
		Name:           s.String(),
		PixelHeight:    pixelHeight,
		MinPixelHeight: slope.MinPixelHeightOutsideMap(h.m, data.X, data.Y),
		MaxPixelHeight: slope.MaxPixelHeightOutsideMap(h.m, data.X, data.Y),
	})
}

func (data PixelZ) Inbound(h *Hub, client Client) {
	client.Send(PixelZResult{X: data.X, Y: data.Y, Z: slope.PixelZ(h.m, data.X, data.Y)})
}

func (data Region) Inbound(h *Hub, client Client) {
	if data.Width <= 0 || data.Height <= 0 || data.Width*data.Height > maxRegionArea {
		client.Send(QueryError{Message: "invalid region size"})
		return
	}
	first, ok1 := inside(h.m, data.X, data.Y)
	_, ok2 := inside(h.m, data.X+data.Width-1, data.Y+data.Height-1)
	if !ok1 || !ok2 {
		client.Send(QueryError{Message: "region outside map"})
		return
	}

	result := NewRegionResult()
	result.X, result.Y, result.Width, result.Height = data.X, data.Y, data.Width, data.Height

	row := h.m.DiffXY(0, 1)
	for j := 0; j < data.Height; j++ {
		t := first.Add(tile.Diff(j) * row)
		for i := 0; i < data.Width; i++ {
			s, height := slope.Of(h.m, t)
			result.Slopes = append(result.Slopes, s)
			result.Heights = append(result.Heights, height)
			t = t.Add(h.m.DiffXY(1, 0))
		}
	}

	client.Send(result)
}

func (data Save) Inbound(h *Hub, client Client) {
	if !h.authorized(data.Auth) {
		client.Send(QueryError{Message: "unauthorized"})
		return
	}
	if err := h.save(data.Name); err != nil {
		client.Send(QueryError{Message: err.Error()})
		return
	}
	client.Send(Saved{Name: data.Name})
}

func (data Load) Inbound(h *Hub, client Client) {
	if !h.authorized(data.Auth) {
		client.Send(QueryError{Message: "unauthorized"})
		return
	}
	if err := h.load(data.Name); err != nil {
		client.Send(QueryError{Message: err.Error()})
		return
	}
	client.Send(Loaded{Name: data.Name, SizeX: h.m.SizeX(), SizeY: h.m.SizeY()})
}

func (data Snapshots) Inbound(h *Hub, client Client) {
	if h.store == nil {
		client.Send(QueryError{Message: "no snapshot store"})
		return
	}
	names, err := h.store.List()
	if err != nil {
		client.Send(QueryError{Message: err.Error()})
		return
	}
	client.Send(SnapshotList{Names: names})
}
