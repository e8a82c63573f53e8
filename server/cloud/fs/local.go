// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// LocalFilesystem keeps files in a directory. Cache hints are ignored.
type LocalFilesystem struct {
	dir string
}

func NewLocalFilesystem(dir string) (*LocalFilesystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}
	return &LocalFilesystem{dir: dir}, nil
}

func (local *LocalFilesystem) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.Errorf("invalid file name %q", name)
	}
	return filepath.Join(local.dir, name), nil
}

func (local *LocalFilesystem) Upload(name string, _ int, data []byte) error {
	path, err := local.path(name)
	if err != nil {
		return err
	}

	// Write then rename so readers never see half a file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", name)
	}
	return errors.Wrapf(os.Rename(tmp, path), "renaming %s", name)
}

func (local *LocalFilesystem) Download(name string) ([]byte, error) {
	path, err := local.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotExist
	}
	return data, errors.Wrapf(err, "reading %s", name)
}

func (local *LocalFilesystem) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(local.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", local.dir)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, ".tmp") || !strings.HasPrefix(name, prefix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
