// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
)

// This is an internal script that condenses the server stats log
// (timestamp, clients, queries, query batch milliseconds) into averages
// with a query rate.

func main() {
	var (
		in    string
		out   string
		group int
	)
	flag.StringVar(&in, "in", "stats.csv", "stats log sourced from the server")
	flag.StringVar(&out, "out", "stats-condensed.csv", "output file")
	flag.IntVar(&group, "group", 120, "records averaged into one")
	flag.Parse()

	f, err := os.Open(in)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	r := csv.NewReader(f)

	o, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer o.Close()
	w := csv.NewWriter(o)
	defer w.Flush()

	_ = w.Write([]string{"timestamp", "clients", "queriesPerSecond", "batchMillis"})

outer:
	for {
		var (
			firstTime, lastTime       int64
			firstQueries, lastQueries int64
			clients                   float64
			millis                    float64
			n                         int
		)

		for i := 0; i < group; i++ {
			record, err := r.Read()
			if err == io.EOF {
				if n == 0 {
					break outer
				}
				break
			} else if err != nil {
				log.Fatal(err)
			}

			lastTime = parseInt(record[0])
			lastQueries = parseInt(record[2])
			if n == 0 {
				firstTime, firstQueries = lastTime, lastQueries
			}
			clients += float64(parseInt(record[1]))
			millis += parseFloat(record[3])
			n++
		}

		// Queries are counted since the server started, so a restart
		// inside the group makes the rate unknown.
		var rate float64
		if lastTime > firstTime && lastQueries >= firstQueries {
			rate = float64(lastQueries-firstQueries) / (float64(lastTime-firstTime) / 1000)
		}

		_ = w.Write([]string{
			strconv.FormatInt(firstTime, 10),
			fmt.Sprint(float32(clients / float64(n))),
			fmt.Sprint(float32(rate)),
			fmt.Sprint(float32(millis / float64(n))),
		})
	}
}

func parseInt(s string) int64 {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Fatal(err)
	}
	return i
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatal(err)
	}
	return f
}
