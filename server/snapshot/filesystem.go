// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package snapshot

import (
	"sort"
	"strings"

	"github.com/SoftbearStudios/tileslope/server/cloud/fs"
	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/SoftbearStudios/tileslope/server/tile"
	"github.com/pkg/errors"
)

const (
	filePrefix = "map-"
	fileSuffix = ".json"
)

// FilesystemStore keeps each snapshot as a JSON file.
type FilesystemStore struct {
	fs fs.Filesystem
}

func NewFilesystemStore(filesystem fs.Filesystem) *FilesystemStore {
	return &FilesystemStore{fs: filesystem}
}

func fileName(name string) string {
	return filePrefix + name + fileSuffix
}

func (store *FilesystemStore) Save(name string, m *tile.Map) error {
	if err := checkName(name); err != nil {
		return err
	}

	data := m.Encode()
	defer data.Pool()

	buf, err := json.Marshal(data)
	if err != nil {
		return errors.Wrapf(err, "encoding snapshot %s", name)
	}
	return errors.Wrapf(store.fs.Upload(fileName(name), 0, buf), "saving snapshot %s", name)
}

func (store *FilesystemStore) Load(name string) (*tile.Map, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	buf, err := store.fs.Download(fileName(name))
	if err == fs.ErrNotExist {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "loading snapshot %s", name)
	}

	var data terrain.Data
	if err := json.Unmarshal(buf, &data); err != nil {
		return nil, errors.Wrapf(err, "parsing snapshot %s", name)
	}

	m, err := tile.Decode(&data)
	return m, errors.Wrapf(err, "decoding snapshot %s", name)
}

func (store *FilesystemStore) List() ([]string, error) {
	files, err := store.fs.List(filePrefix)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if !strings.HasSuffix(file, fileSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(file, filePrefix), fileSuffix))
	}
	sort.Strings(names)
	return names, nil
}
