// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"
	"strings"

	"github.com/SoftbearStudios/tileslope/server"
	"github.com/SoftbearStudios/tileslope/server/cloud"
	"github.com/SoftbearStudios/tileslope/server/cloud/fs"
	"github.com/SoftbearStudios/tileslope/server/snapshot"
	"github.com/SoftbearStudios/tileslope/server/terrain/noise"
	"github.com/SoftbearStudios/tileslope/server/tile"
	"golang.org/x/net/netutil"
)

func main() {
	var (
		auth           string
		port           int
		maxConnections int
		logX, logY     uint
		seed           int64
		extrapolate    bool
		load           string
		store          string
		dir            string
		sqlitePath     string
		region         string
		bucket         string
		statsLog       string
		origins        string
	)

	flag.StringVar(&auth, "auth", "", "admin auth code for saving and loading snapshots")
	flag.IntVar(&port, "port", 8192, "http service port")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.UintVar(&logX, "log-x", 8, "log2 of the map width in tiles")
	flag.UintVar(&logY, "log-y", 8, "log2 of the map height in tiles")
	flag.Int64Var(&seed, "seed", 56, "terrain seed")
	flag.BoolVar(&extrapolate, "extrapolate", false, "grow noise hills beyond the map edge instead of repeating it")
	flag.StringVar(&load, "load", "", "snapshot to serve instead of generating a map")
	flag.StringVar(&store, "store", "", "snapshot store: local, sqlite, s3 or empty for none")
	flag.StringVar(&dir, "dir", "snapshots", "directory of the local snapshot store")
	flag.StringVar(&sqlitePath, "sqlite", "snapshots.db", "database of the sqlite snapshot store")
	flag.StringVar(&region, "region", "us-east-1", "aws region of the s3 snapshot store")
	flag.StringVar(&bucket, "bucket", "", "s3 bucket of the snapshot store and previews")
	flag.StringVar(&statsLog, "stats-log", "", "CSV file to append statistics to")
	flag.StringVar(&origins, "origins", "", "comma separated browser origins allowed to connect, or empty for any")
	flag.Parse()

	var (
		snapshots snapshot.Store
		preview   fs.Filesystem
	)

	switch store {
	case "":
	case "local":
		local, err := fs.NewLocalFilesystem(dir)
		if err != nil {
			log.Fatal(err)
		}
		snapshots = snapshot.NewFilesystemStore(local)
	case "sqlite":
		sqlStore, err := snapshot.OpenSQLStore(sqlitePath)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlStore.Close()
		snapshots = sqlStore
	case "s3":
		session, err := cloud.NewSession(region)
		if err != nil {
			log.Fatal(err)
		}
		s3, err := fs.NewS3Filesystem(session, bucket)
		if err != nil {
			log.Fatal(err)
		}
		snapshots = snapshot.NewFilesystemStore(s3)
		preview = s3
	default:
		log.Fatal("invalid argument store: ", store)
	}

	var (
		m   *tile.Map
		err error
	)
	if load != "" {
		if snapshots == nil {
			log.Fatal("-load needs -store")
		}
		if m, err = snapshots.Load(load); err != nil {
			log.Fatal(err)
		}
	} else {
		if m, err = tile.New(logX, logY); err != nil {
			log.Fatal(err)
		}
		if err = m.Generate(noise.New(seed)); err != nil {
			log.Fatal(err)
		}
	}
	if extrapolate {
		m.SetOutside(noise.NewExtrapolator(m, seed))
	}
	m.Debug()

	hub := server.NewHub(server.HubOptions{
		Map:      m,
		Store:    snapshots,
		Preview:  preview,
		Auth:     auth,
		StatsLog: statsLog,
		Origins:  splitOrigins(origins),
	})

	go hub.Run()

	log.Printf("tile slope server started on port %d\n", port)

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/preview.png", hub.ServePreview)
	http.HandleFunc("/ws", hub.ServeSocket)

	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	log.Fatal("ListenAndServe: ", http.Serve(l, nil))
}

func splitOrigins(origins string) []string {
	var split []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			split = append(split, origin)
		}
	}
	return split
}
