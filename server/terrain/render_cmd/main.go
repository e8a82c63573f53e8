// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"image/png"
	"log"
	"os"
	"runtime/pprof"

	"github.com/SoftbearStudios/tileslope/server/terrain/noise"
	"github.com/SoftbearStudios/tileslope/server/terrain/render"
	"github.com/SoftbearStudios/tileslope/server/tile"
)

func main() {
	var (
		cpuProfile string
		out        string
		logX, logY uint
		seed       int64
		scale      int
	)

	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&out, "out", "out.png", "output `file`")
	flag.UintVar(&logX, "log-x", 8, "log2 of the map width in tiles")
	flag.UintVar(&logY, "log-y", 8, "log2 of the map height in tiles")
	flag.Int64Var(&seed, "seed", 56, "terrain seed")
	flag.IntVar(&scale, "scale", 2, "pixels per tile side")
	flag.Parse()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	run(out, logX, logY, seed, scale)
}

func run(out string, logX, logY uint, seed int64, scale int) {
	m, err := tile.New(logX, logY)
	if err != nil {
		log.Fatal(err)
	}
	if err = m.Generate(noise.New(seed)); err != nil {
		log.Fatal(err)
	}
	m.SetOutside(noise.NewExtrapolator(m, seed))
	m.Debug()

	img := render.Render(m, scale)

	file, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	if err = png.Encode(file, img); err != nil {
		log.Fatal(err)
	}
}
