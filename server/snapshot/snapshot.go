// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package snapshot saves and loads named tile maps.
package snapshot

import (
	"regexp"

	"github.com/SoftbearStudios/tileslope/server/tile"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Load for a name that was never saved.
var ErrNotFound = errors.New("snapshot not found")

type Store interface {
	// Save creates or replaces the snapshot called name.
	Save(name string, m *tile.Map) error
	// Load returns a new map with the heights of the snapshot called name.
	// Corners beyond the loaded map use the default outside heights.
	Load(name string) (*tile.Map, error)
	// List returns the names of all snapshots in ascending order.
	List() ([]string, error)
}

var json = jsoniter.Config{
	EscapeHTML:                    false,
	SortMapKeys:                   true,
	TagKey:                        "json",
	ObjectFieldMustBeSimpleString: true,
	CaseSensitive:                 true,
}.Froze()

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

func checkName(name string) error {
	if !namePattern.MatchString(name) {
		return errors.Errorf("invalid snapshot name %q", name)
	}
	return nil
}
