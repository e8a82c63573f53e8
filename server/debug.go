// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"fmt"
	"image/png"
	"log"
	"runtime"
	"time"

	"github.com/SoftbearStudios/tileslope/server/terrain/render"
	"github.com/SoftbearStudios/tileslope/server/tile"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// Debug prints debugging info to console and the stats log.
func (h *Hub) Debug() {
	fmt.Printf("Debug [%v]\n", time.Now().Format(time.UnixDate))
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	fmt.Printf(" - memstats: %s/%s\n", humanize.Bytes(stats.HeapInuse), humanize.Bytes(stats.NextGC))
	fmt.Printf(" - clients: %d, queries: %s\n", h.clients.Len, humanize.Comma(int64(h.queries)))

	fmt.Print(" - ")
	h.m.Debug()

	// Function benchmarks
	var totalDuration time.Duration

	fmt.Print(" - ")
	for i := range h.funcBenches {
		bench := &h.funcBenches[i]

		duration := bench.reset()
		totalDuration += duration

		fmt.Print(bench.name, ": ", duration, ", ")
	}
	fmt.Println("total:", totalDuration)

	if h.statsLog != "" {
		if err := AppendLog(h.statsLog, []interface{}{
			time.Now().UnixNano() / int64(time.Millisecond),
			h.clients.Len,
			h.queries,
			float64(totalDuration) / float64(time.Millisecond),
		}); err != nil {
			log.Println("stats log error:", err)
		}
	}
}

// uploadPreview uploads a rendered image of the map.
func (h *Hub) uploadPreview() {
	if h.preview == nil {
		return
	}

	buf, err := encodePreview(h.m, 1)
	if err != nil {
		log.Println("preview error:", err)
		return
	}
	if err := h.preview.Upload("terrain.png", int(previewPeriod/time.Second), buf); err != nil {
		log.Println("preview error:", err)
	}
}

// encodePreview renders m as a PNG with scale pixels per tile.
func encodePreview(m *tile.Map, scale int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, render.Render(m, scale)); err != nil {
		return nil, errors.Wrap(err, "encoding preview")
	}
	return buf.Bytes(), nil
}

// funcBench is a benchmark of a core function.
type funcBench struct {
	name     string
	duration time.Duration
	runs     int
}

// reset resets the benchmark and returns the average duration
func (bench *funcBench) reset() time.Duration {
	if bench.runs == 0 {
		return 0
	}
	average := bench.duration / time.Duration(bench.runs)
	bench.duration = 0
	bench.runs = 0
	return average
}

// timeFunction times a function.
// defer timeFunction("name", time.Now())
func (h *Hub) timeFunction(name string, start time.Time) {
	end := time.Now()

	var bench *funcBench
	for i := range h.funcBenches {
		b := &h.funcBenches[i]
		if name == b.name {
			bench = b
			break
		}
	}

	if bench == nil {
		h.funcBenches = append(h.funcBenches, funcBench{name: name})
		bench = &h.funcBenches[len(h.funcBenches)-1]
	}

	bench.duration += end.Sub(start)
	bench.runs++
}
