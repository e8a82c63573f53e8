// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// AppendLog appends fields to filename as one CSV record.
// Floats are written with 2 decimals.
func AppendLog(filename string, fields []interface{}) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return errors.Wrap(err, "opening log")
	}
	defer f.Close()

	record := make([]string, len(fields))
	for i, field := range fields {
		switch v := field.(type) {
		case float32, float64:
			record[i] = fmt.Sprintf("%.2f", v)
		default:
			record[i] = fmt.Sprint(v)
		}
	}

	w := csv.NewWriter(f)
	if err = w.Write(record); err != nil {
		return errors.Wrap(err, "writing log")
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flushing log")
}
