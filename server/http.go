// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/SoftbearStudios/tileslope/server/bits"
)

// maxPreviewSide is the widest image ServePreview renders, in pixels.
const maxPreviewSide = 4096

// allowOrigin reports whether a browser on origin may use the hub.
// Requests without an Origin header don't come from a browser.
func (h *Hub) allowOrigin(origin string) bool {
	return origin == "" || h.origins == nil || h.origins[origin]
}

// allowCORS sets the CORS headers of an HTTP answer. It answers 403 and
// returns false if the origin is not allowed.
func (h *Hub) allowCORS(w http.ResponseWriter, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if !h.allowOrigin(origin) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return false
	}
	if h.origins == nil {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
	return true
}

// ServeIndex serves the status of the hub as JSON.
func (h *Hub) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if !h.allowCORS(w, r) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	buf, ok := h.statusJSON.Load().([]byte)
	if ok {
		_, _ = w.Write(buf)
	}
}

// ServePreview serves a shaded PNG of the served map. The optional scale
// parameter is the number of pixels per tile.
func (h *Hub) ServePreview(w http.ResponseWriter, r *http.Request) {
	if !h.allowCORS(w, r) {
		return
	}

	m := h.served.Load()
	side := int(bits.Max(m.SizeX(), m.SizeY()))

	scale := 1
	if param := r.URL.Query().Get("scale"); param != "" {
		n, err := strconv.Atoi(param)
		if err != nil || n < 1 || side*n > maxPreviewSide {
			http.Error(w, "scale must be from 1 to "+strconv.Itoa(bits.Max(maxPreviewSide/side, 1)), http.StatusBadRequest)
			return
		}
		scale = n
	}

	buf, err := encodePreview(m, scale)
	if err != nil {
		log.Println("preview error:", err)
		http.Error(w, "preview failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf)
}

// ServeSocket upgrades to a websocket that answers queries.
func (h *Hub) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error", err)
		return
	}

	h.register <- NewSocketClient(conn)
}
