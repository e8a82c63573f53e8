// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"crypto/subtle"
	"log"
	"sync/atomic"
	"time"

	"github.com/SoftbearStudios/tileslope/server/cloud/fs"
	"github.com/SoftbearStudios/tileslope/server/snapshot"
	"github.com/SoftbearStudios/tileslope/server/tile"
	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	debugPeriod   = time.Second * 30
	previewPeriod = time.Minute * 5
	statusPeriod  = time.Second * 5
)

type HubOptions struct {
	// Map is the served map. Required.
	Map *tile.Map
	// Store keeps snapshots. Save and Load are refused without it.
	Store snapshot.Store
	// Preview receives a rendered image of the map every few minutes. Optional.
	Preview fs.Filesystem
	// Auth is the code required by Save and Load. Empty allows anyone.
	Auth string
	// StatsLog is a CSV file that debug statistics are appended to. Optional.
	StatsLog string
	// Origins are the browser origins allowed to open sockets and fetch over
	// HTTP, such as "https://example.com". Empty allows every origin.
	Origins []string
}

// Hub answers slope queries from its clients. Queries run on the hub
// goroutine, one at a time, so the served map can be swapped by Load.
type Hub struct {
	m       *tile.Map
	store   snapshot.Store
	preview fs.Filesystem
	auth    string
	clients ClientList

	// Served atomically by HTTP
	statusJSON atomic.Value
	served     atomic.Pointer[tile.Map]
	origins    map[string]bool
	upgrader   websocket.Upgrader

	// Statistics
	started     time.Time
	queries     int
	statsLog    string
	funcBenches []funcBench

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client

	// Timer based events
	debugTicker   *time.Ticker
	previewTicker *time.Ticker
	statusTicker  *time.Ticker
}

func NewHub(options HubOptions) *Hub {
	if options.Map == nil {
		panic("hub needs a map")
	}

	h := &Hub{
		m:             options.Map,
		store:         options.Store,
		preview:       options.Preview,
		auth:          options.Auth,
		statsLog:      options.StatsLog,
		started:       time.Now(),
		inbound:       make(chan SignedInbound, 64),
		register:      make(chan Client, 8),
		unregister:    make(chan Client, 16),
		debugTicker:   time.NewTicker(debugPeriod),
		previewTicker: time.NewTicker(previewPeriod),
		statusTicker:  time.NewTicker(statusPeriod),
	}
	if len(options.Origins) > 0 {
		h.origins = make(map[string]bool, len(options.Origins))
		for _, origin := range options.Origins {
			h.origins[origin] = true
		}
	}
	h.upgrader = newUpgrader(h.allowOrigin)
	h.served.Store(h.m)
	h.updateStatus()
	return h
}

// Run processes clients and queries. It never returns.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients.Add(client)
			client.Data().Hub = h
			client.Init()
		case client := <-h.unregister:
			client.Close()
			client.Data().Hub = nil
			h.clients.Remove(client)
		case in := <-h.inbound:
			h.answer(in)
		case <-h.statusTicker.C:
			h.updateStatus()
		case <-h.debugTicker.C:
			h.Debug()
		case <-h.previewTicker.C:
			h.uploadPreview()
		}
	}
}

// answer runs in and every other query waiting in the channel.
func (h *Hub) answer(in SignedInbound) {
	defer h.timeFunction("queries", time.Now())

	// Read all messages currently in the channel
	n := len(h.inbound)

	for {
		// If not same hub the client is gone
		data := in.Client.Data()
		if h == data.Hub {
			in.Inbound(h, in.Client)
			data.Queries++
			h.queries++
		}

		if n--; n < 0 {
			break
		}

		in = <-h.inbound
	}
}

func (h *Hub) authorized(auth string) bool {
	return h.auth == "" || subtle.ConstantTimeCompare([]byte(h.auth), []byte(auth)) == 1
}

func (h *Hub) save(name string) error {
	if h.store == nil {
		return errors.New("no snapshot store")
	}
	return h.store.Save(name, h.m)
}

// load replaces the served map. Queries already answered keep their results.
func (h *Hub) load(name string) error {
	if h.store == nil {
		return errors.New("no snapshot store")
	}
	m, err := h.store.Load(name)
	if err != nil {
		return err
	}

	log.Printf("loaded snapshot %s (%dx%d)\n", name, m.SizeX(), m.SizeY())
	h.m = m
	h.served.Store(m)
	h.updateStatus()
	return nil
}

type status struct {
	SizeX   uint32 `json:"sizeX"`
	SizeY   uint32 `json:"sizeY"`
	Tiles   string `json:"tiles"`
	Clients int    `json:"clients"`
	Queries string `json:"queries"`
	Started string `json:"started"`
}

func (h *Hub) updateStatus() {
	buf, err := json.Marshal(status{
		SizeX:   h.m.SizeX(),
		SizeY:   h.m.SizeY(),
		Tiles:   humanize.Comma(int64(h.m.Size())),
		Clients: h.clients.Len,
		Queries: humanize.Comma(int64(h.queries)),
		Started: humanize.Time(h.started),
	})
	if err != nil {
		log.Println("status error:", err)
		return
	}
	h.statusJSON.Store(buf)
}
