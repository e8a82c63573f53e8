// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fs stores named blobs in a bucket or a local directory.
package fs

import "github.com/pkg/errors"

// ErrNotExist is returned by Download for a name that was never uploaded.
var ErrNotExist = errors.New("file does not exist")

type Filesystem interface {
	// Upload creates or replaces the file called name.
	Upload(name string, secondsCache int, data []byte) error
	// Download returns the contents of the file called name.
	Download(name string) ([]byte, error)
	// List returns the names of all files starting with prefix.
	List(prefix string) ([]string, error)
}
