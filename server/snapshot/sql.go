// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package snapshot

import (
	"database/sql"
	"time"

	"github.com/SoftbearStudios/tileslope/server/terrain"
	"github.com/SoftbearStudios/tileslope/server/tile"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// SQLStore keeps snapshots in a SQLite database.
type SQLStore struct {
	conn *sqlx.DB
}

type mapRow struct {
	Name    string `db:"name"`
	LogX    uint   `db:"log_x"`
	LogY    uint   `db:"log_y"`
	Length  int    `db:"length"`
	Data    []byte `db:"data"`
	SavedAt int64  `db:"saved_at"`
}

// OpenSQLStore opens or creates a SQLite database at path.
func OpenSQLStore(path string) (*SQLStore, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}

	store := &SQLStore{conn: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	return store, nil
}

func (store *SQLStore) Close() error {
	return store.conn.Close()
}

func (store *SQLStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS maps (
		name TEXT PRIMARY KEY,
		log_x INTEGER NOT NULL,
		log_y INTEGER NOT NULL,
		length INTEGER NOT NULL,
		data BLOB NOT NULL,
		saved_at INTEGER NOT NULL
	);
	`
	_, err := store.conn.Exec(schema)
	return err
}

func (store *SQLStore) Save(name string, m *tile.Map) error {
	if err := checkName(name); err != nil {
		return err
	}

	data := m.Encode()
	defer data.Pool()

	_, err := store.conn.NamedExec(`INSERT INTO maps (name, log_x, log_y, length, data, saved_at)
		VALUES (:name, :log_x, :log_y, :length, :data, :saved_at)
		ON CONFLICT(name) DO UPDATE SET
			log_x = excluded.log_x,
			log_y = excluded.log_y,
			length = excluded.length,
			data = excluded.data,
			saved_at = excluded.saved_at`, mapRow{
		Name:    name,
		LogX:    data.LogX,
		LogY:    data.LogY,
		Length:  data.Length,
		Data:    data.Data,
		SavedAt: time.Now().Unix(),
	})
	return errors.Wrapf(err, "saving snapshot %s", name)
}

func (store *SQLStore) Load(name string) (*tile.Map, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	var row mapRow
	err := store.conn.Get(&row, "SELECT * FROM maps WHERE name = ?", name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "loading snapshot %s", name)
	}

	m, err := tile.Decode(&terrain.Data{
		LogX:   row.LogX,
		LogY:   row.LogY,
		Data:   row.Data,
		Length: row.Length,
	})
	return m, errors.Wrapf(err, "decoding snapshot %s", name)
}

func (store *SQLStore) List() ([]string, error) {
	var names []string
	err := store.conn.Select(&names, "SELECT name FROM maps ORDER BY name")
	return names, errors.Wrap(err, "listing snapshots")
}
