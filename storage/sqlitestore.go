/*
 * GravelDB
 *
 * Copyright 2024 The GravelDB Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package storage

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	"devt.de/krotik/common/logutil"
	"github.com/graveldb/graveldb/graph/util"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

/*
FormatVersion is the version of the relational schema layout. It is
stamped into the settings table when a database is created and validated
when an existing database is opened.
*/
const FormatVersion = 1

/*
Keys of internal entries in the settings table.
*/
const (
	SettingFormatVersion = "format_version"
	SettingHighWaterMark = "id_high_water_mark"
)

/*
MemoryStoreName is the name reported by in-memory stores.
*/
const MemoryStoreName = "memory"

var logger = logutil.GetLogger("graveldb.storage")

/*
ddl holds the idempotent schema definition. The layout is a contract which
external inspection tools may rely on.
*/
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS nodes (
		id INTEGER PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS edges (
		id    INTEGER PRIMARY KEY,
		src   INTEGER NOT NULL REFERENCES nodes(id),
		dst   INTEGER NOT NULL REFERENCES nodes(id),
		label TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		owner INTEGER NOT NULL,
		key   TEXT NOT NULL,
		value TEXT NOT NULL,
		vtype TEXT NOT NULL,
		PRIMARY KEY (owner, key)
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS changes (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		change TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_edges_src ON edges(src)`,
	`CREATE INDEX IF NOT EXISTS idx_edges_dst ON edges(dst)`,
}

/*
runner is the common statement interface of *sql.DB and *sql.Tx.
*/
type runner interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

/*
SQLiteStore is the SQLite backed implementation of the Store interface.
It is a single-session component - multi-goroutine hosts must serialize
access externally (the graph manager does).
*/
type SQLiteStore struct {
	name   string
	db     *sql.DB
	tx     *sql.Tx // Ambient transaction (nil if none is open)
	nextID uint64  // Next identifier to hand out
}

/*
NewDiskStore opens or creates a file based store under the given path.
*/
func NewDiskStore(path string) (*SQLiteStore, error) {
	return openStore(path, path)
}

/*
NewMemoryStore creates a transient in-memory store.
*/
func NewMemoryStore() (*SQLiteStore, error) {
	return openStore(":memory:", MemoryStoreName)
}

/*
openStore opens a database, applies the schema and derives the identifier
high-water mark.
*/
func openStore(dsn string, name string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &util.GraphError{Type: util.ErrOpening, Detail: err.Error()}
	}

	// The engine is single-writer; a single connection also makes sure an
	// in-memory database is not silently dropped between pooled connections.

	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, &util.GraphError{Type: util.ErrOpening, Detail: err.Error()}
		}
	}

	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, &util.GraphError{Type: util.ErrOpening, Detail: err.Error()}
		}
	}

	s := &SQLiteStore{name: name, db: db}

	if err := s.checkVersion(); err != nil {
		db.Close()
		return nil, err
	}

	if s.nextID, err = s.deriveNextID(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Opened graph store ", name)

	return s, nil
}

/*
checkVersion validates the format version of an existing database and
stamps new databases. Opening a database written by a newer version fails.
*/
func (s *SQLiteStore) checkVersion() error {
	stamp, found, err := s.Setting(SettingFormatVersion)
	if err != nil {
		return err
	}

	if !found {
		return s.SaveSetting(SettingFormatVersion, strconv.Itoa(FormatVersion))
	}

	version, err := strconv.Atoi(stamp)
	if err != nil {
		return &util.GraphError{Type: util.ErrOpening,
			Detail: fmt.Sprintf("invalid format version stamp: %v", stamp)}
	}

	if version > FormatVersion {
		return &util.GraphError{Type: util.ErrOpening,
			Detail: fmt.Sprintf("cannot open storage of format version: %v - "+
				"max supported version: %v", version, FormatVersion)}
	} else if version < FormatVersion {

		// Update the version if it is older

		return s.SaveSetting(SettingFormatVersion, strconv.Itoa(FormatVersion))
	}

	return nil
}

/*
deriveNextID computes the next identifier to hand out from the maximum
persisted identifier and the persisted high-water mark. The high-water
mark makes sure identifiers of deleted entities are not reused after a
restart.
*/
func (s *SQLiteStore) deriveNextID() (uint64, error) {
	var maxNodes, maxEdges int64

	row := s.db.QueryRow("SELECT COALESCE(MAX(id), 0) FROM nodes")
	if err := row.Scan(&maxNodes); err != nil {
		return 0, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	row = s.db.QueryRow("SELECT COALESCE(MAX(id), 0) FROM edges")
	if err := row.Scan(&maxEdges); err != nil {
		return 0, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	next := uint64(maxNodes) + 1
	if uint64(maxEdges) >= next {
		next = uint64(maxEdges) + 1
	}

	if stamp, found, err := s.Setting(SettingHighWaterMark); err != nil {
		return 0, err
	} else if found {
		if hwm, err := strconv.ParseUint(stamp, 10, 64); err == nil && hwm >= next {
			next = hwm + 1
		}
	}

	return next, nil
}

/*
Name returns the name of the store instance.
*/
func (s *SQLiteStore) Name() string {
	return s.name
}

/*
runner returns the statement interface for the ambient transaction if one
is open, otherwise the plain database handle.
*/
func (s *SQLiteStore) runner() runner {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

/*
transact runs a function which issues multiple statements atomically. If
an ambient transaction is open the statements simply become part of it,
otherwise a local transaction is opened and committed.
*/
func (s *SQLiteStore) transact(op func(r runner) error) error {
	if s.tx != nil {
		return op(s.tx)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	if err := op(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return nil
}

/*
AllocateID returns a new unique identifier. The high-water mark is
persisted with every allocation so identifiers are retired for the
lifetime of the database even if the newest entities are deleted.
*/
func (s *SQLiteStore) AllocateID() (uint64, error) {
	id := s.nextID

	_, err := s.runner().Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		SettingHighWaterMark, strconv.FormatUint(id, 10))
	if err != nil {
		return 0, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	s.nextID++

	return id, nil
}

/*
insertProperties writes the property rows of an entity. Keys are written
in sorted order to keep row order deterministic.
*/
func insertProperties(r runner, id uint64, props map[string]interface{}) error {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.StringSlice(keys).Sort()

	for _, key := range keys {
		value, vtype, err := EncodeValue(props[key])
		if err != nil {
			return err
		}

		_, err = r.Exec(
			"INSERT INTO properties (owner, key, value, vtype) VALUES (?, ?, ?, ?)",
			int64(id), key, value, vtype)
		if err != nil {
			return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}
	}

	return nil
}

/*
loadProperties reads and decodes the property rows of an entity.
*/
func loadProperties(r runner, id uint64) (map[string]interface{}, error) {
	rows, err := r.Query(
		"SELECT key, value, vtype FROM properties WHERE owner = ? ORDER BY key",
		int64(id))
	if err != nil {
		return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}
	defer rows.Close()

	props := make(map[string]interface{})

	for rows.Next() {
		var key, value, vtype string

		if err := rows.Scan(&key, &value, &vtype); err != nil {
			return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		val, err := DecodeValue(value, vtype)
		if err != nil {
			return nil, err
		}

		props[key] = val
	}

	if err := rows.Err(); err != nil {
		return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return props, nil
}

/*
InsertNode inserts a new node row together with its property rows.
*/
func (s *SQLiteStore) InsertNode(id uint64, props map[string]interface{}) error {
	return s.transact(func(r runner) error {
		if _, err := r.Exec("INSERT INTO nodes (id) VALUES (?)", int64(id)); err != nil {
			return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		return insertProperties(r, id, props)
	})
}

/*
InsertEdge inserts a new edge row together with its property rows.
*/
func (s *SQLiteStore) InsertEdge(id uint64, source uint64, target uint64,
	label string, props map[string]interface{}) error {

	return s.transact(func(r runner) error {
		_, err := r.Exec(
			"INSERT INTO edges (id, src, dst, label) VALUES (?, ?, ?, ?)",
			int64(id), int64(source), int64(target), label)
		if err != nil {
			return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		return insertProperties(r, id, props)
	})
}

/*
HasNode checks if a node row exists.
*/
func (s *SQLiteStore) HasNode(id uint64) (bool, error) {
	var one int

	row := s.runner().QueryRow("SELECT 1 FROM nodes WHERE id = ?", int64(id))

	if err := row.Scan(&one); err == sql.ErrNoRows {
		return false, nil
	} else if err != nil {
		return false, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return true, nil
}

/*
FetchNode returns the decoded properties of a node.
*/
func (s *SQLiteStore) FetchNode(id uint64) (map[string]interface{}, bool, error) {
	found, err := s.HasNode(id)
	if err != nil || !found {
		return nil, false, err
	}

	props, err := loadProperties(s.runner(), id)
	if err != nil {
		return nil, false, err
	}

	return props, true, nil
}

/*
FetchEdge returns the edge row and decoded properties of an edge.
*/
func (s *SQLiteStore) FetchEdge(id uint64) (*EdgeRow, map[string]interface{}, bool, error) {
	var eid, src, dst int64
	var label string

	row := s.runner().QueryRow(
		"SELECT id, src, dst, label FROM edges WHERE id = ?", int64(id))

	if err := row.Scan(&eid, &src, &dst, &label); err == sql.ErrNoRows {
		return nil, nil, false, nil
	} else if err != nil {
		return nil, nil, false, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	props, err := loadProperties(s.runner(), id)
	if err != nil {
		return nil, nil, false, err
	}

	return &EdgeRow{uint64(eid), uint64(src), uint64(dst), label}, props, true, nil
}

/*
UpdateProperties merges properties into the stored rows of an entity and
removes the listed keys.
*/
func (s *SQLiteStore) UpdateProperties(id uint64, merge map[string]interface{},
	remove []string) error {

	return s.transact(func(r runner) error {
		keys := make([]string, 0, len(merge))
		for key := range merge {
			keys = append(keys, key)
		}
		sort.StringSlice(keys).Sort()

		for _, key := range keys {
			value, vtype, err := EncodeValue(merge[key])
			if err != nil {
				return err
			}

			_, err = r.Exec(
				`INSERT INTO properties (owner, key, value, vtype) VALUES (?, ?, ?, ?)
				 ON CONFLICT (owner, key) DO UPDATE SET
				 value = excluded.value, vtype = excluded.vtype`,
				int64(id), key, value, vtype)
			if err != nil {
				return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
			}
		}

		for _, key := range remove {
			_, err := r.Exec(
				"DELETE FROM properties WHERE owner = ? AND key = ?",
				int64(id), key)
			if err != nil {
				return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
			}
		}

		return nil
	})
}

/*
DeleteNode removes a node row and its property rows.
*/
func (s *SQLiteStore) DeleteNode(id uint64) error {
	return s.transact(func(r runner) error {
		if _, err := r.Exec("DELETE FROM properties WHERE owner = ?", int64(id)); err != nil {
			return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		if _, err := r.Exec("DELETE FROM nodes WHERE id = ?", int64(id)); err != nil {
			return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		return nil
	})
}

/*
DeleteEdge removes an edge row and its property rows.
*/
func (s *SQLiteStore) DeleteEdge(id uint64) error {
	return s.transact(func(r runner) error {
		if _, err := r.Exec("DELETE FROM properties WHERE owner = ?", int64(id)); err != nil {
			return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		if _, err := r.Exec("DELETE FROM edges WHERE id = ?", int64(id)); err != nil {
			return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		return nil
	})
}

/*
FindEdges returns all edge rows matching the given filters ordered by edge
identifier. This is the adjacency primitive - lookups by source or target
are served by the secondary indexes on the edges table.
*/
func (s *SQLiteStore) FindEdges(source uint64, target uint64, label string) ([]EdgeRow, error) {
	query := "SELECT id, src, dst, label FROM edges"
	args := []interface{}{}
	sep := " WHERE "

	if source != 0 {
		query += sep + "src = ?"
		args = append(args, int64(source))
		sep = " AND "
	}
	if target != 0 {
		query += sep + "dst = ?"
		args = append(args, int64(target))
		sep = " AND "
	}
	if label != "" {
		query += sep + "label = ?"
		args = append(args, label)
	}

	query += " ORDER BY id"

	rows, err := s.runner().Query(query, args...)
	if err != nil {
		return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}
	defer rows.Close()

	var ret []EdgeRow

	for rows.Next() {
		var id, src, dst int64
		var l string

		if err := rows.Scan(&id, &src, &dst, &l); err != nil {
			return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		ret = append(ret, EdgeRow{uint64(id), uint64(src), uint64(dst), l})
	}

	if err := rows.Err(); err != nil {
		return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return ret, nil
}

/*
FindNodes returns the identifiers of all nodes whose properties match all
given equality filters. The filters are applied with AND semantics against
the properties side table.
*/
func (s *SQLiteStore) FindNodes(filters map[string]interface{}) ([]uint64, error) {
	if len(filters) == 0 {
		return s.NodeIDs()
	}

	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.StringSlice(keys).Sort()

	query := "SELECT p.owner FROM properties p JOIN nodes n ON n.id = p.owner WHERE "
	args := []interface{}{}

	for i, key := range keys {
		value, vtype, err := EncodeValue(filters[key])
		if err != nil {
			return nil, err
		}

		if i > 0 {
			query += " OR "
		}
		query += "(p.key = ? AND p.value = ? AND p.vtype = ?)"
		args = append(args, key, value, vtype)
	}

	// (owner, key) is the primary key of the properties table so each
	// filter can match at most one row per owner - a full match count
	// implements the AND semantics.

	query += " GROUP BY p.owner HAVING COUNT(*) = ? ORDER BY p.owner"
	args = append(args, len(keys))

	return s.queryIDs(query, args...)
}

/*
NodeIDs returns the identifiers of all stored nodes in ascending order.
*/
func (s *SQLiteStore) NodeIDs() ([]uint64, error) {
	return s.queryIDs("SELECT id FROM nodes ORDER BY id")
}

/*
queryIDs runs a query which yields a single identifier column.
*/
func (s *SQLiteStore) queryIDs(query string, args ...interface{}) ([]uint64, error) {
	rows, err := s.runner().Query(query, args...)
	if err != nil {
		return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}
	defer rows.Close()

	var ret []uint64

	for rows.Next() {
		var id int64

		if err := rows.Scan(&id); err != nil {
			return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		ret = append(ret, uint64(id))
	}

	if err := rows.Err(); err != nil {
		return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return ret, nil
}

/*
NodeCount returns the number of stored nodes.
*/
func (s *SQLiteStore) NodeCount() (uint64, error) {
	return s.count("SELECT COUNT(*) FROM nodes")
}

/*
EdgeCount returns the number of stored edges.
*/
func (s *SQLiteStore) EdgeCount() (uint64, error) {
	return s.count("SELECT COUNT(*) FROM edges")
}

/*
count runs a single-value counting query.
*/
func (s *SQLiteStore) count(query string, args ...interface{}) (uint64, error) {
	var n int64

	if err := s.runner().QueryRow(query, args...).Scan(&n); err != nil {
		return 0, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return uint64(n), nil
}

/*
LabelCounts returns the number of stored edges per label.
*/
func (s *SQLiteStore) LabelCounts() (map[string]uint64, error) {
	rows, err := s.runner().Query("SELECT label, COUNT(*) FROM edges GROUP BY label")
	if err != nil {
		return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}
	defer rows.Close()

	ret := make(map[string]uint64)

	for rows.Next() {
		var label string
		var n int64

		if err := rows.Scan(&label, &n); err != nil {
			return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		ret[label] = uint64(n)
	}

	if err := rows.Err(); err != nil {
		return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return ret, nil
}

/*
Setting reads an entry from the settings key-value store.
*/
func (s *SQLiteStore) Setting(key string) (string, bool, error) {
	var value string

	row := s.runner().QueryRow("SELECT value FROM settings WHERE key = ?", key)

	if err := row.Scan(&value); err == sql.ErrNoRows {
		return "", false, nil
	} else if err != nil {
		return "", false, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return value, true, nil
}

/*
SaveSetting writes an entry to the settings key-value store.
*/
func (s *SQLiteStore) SaveSetting(key string, value string) error {
	_, err := s.runner().Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return nil
}

/*
AppendChange appends an entry to the changes journal.
*/
func (s *SQLiteStore) AppendChange(change string) error {
	_, err := s.runner().Exec("INSERT INTO changes (change) VALUES (?)", change)
	if err != nil {
		return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return nil
}

/*
LastChange returns the newest entry of the changes journal.
*/
func (s *SQLiteStore) LastChange() (ChangeRow, bool, error) {
	var ret ChangeRow

	row := s.runner().QueryRow(
		"SELECT id, change FROM changes ORDER BY id DESC LIMIT 1")

	if err := row.Scan(&ret.ID, &ret.Change); err == sql.ErrNoRows {
		return ret, false, nil
	} else if err != nil {
		return ret, false, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return ret, true, nil
}

/*
ChangesInBatch returns all journal entries belonging to a given batch in
insertion order.
*/
func (s *SQLiteStore) ChangesInBatch(batch string) ([]ChangeRow, error) {
	rows, err := s.runner().Query(
		"SELECT id, change FROM changes WHERE json_extract(change, '$.batch') = ? ORDER BY id",
		batch)
	if err != nil {
		return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}
	defer rows.Close()

	var ret []ChangeRow

	for rows.Next() {
		var cr ChangeRow

		if err := rows.Scan(&cr.ID, &cr.Change); err != nil {
			return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		ret = append(ret, cr)
	}

	if err := rows.Err(); err != nil {
		return nil, &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return ret, nil
}

/*
DeleteChange removes a single entry from the changes journal.
*/
func (s *SQLiteStore) DeleteChange(id int64) error {
	_, err := s.runner().Exec("DELETE FROM changes WHERE id = ?", id)
	if err != nil {
		return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return nil
}

/*
ChangeCount returns the number of entries in the changes journal.
*/
func (s *SQLiteStore) ChangeCount() (uint64, error) {
	return s.count("SELECT COUNT(*) FROM changes")
}

/*
ClearChanges removes all entries from the changes journal and resets the
journal sequence.
*/
func (s *SQLiteStore) ClearChanges() error {
	return s.transact(func(r runner) error {
		if _, err := r.Exec("DELETE FROM changes"); err != nil {
			return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		if _, err := r.Exec("DELETE FROM sqlite_sequence WHERE name = 'changes'"); err != nil {
			return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
		}

		return nil
	})
}

/*
Begin starts the ambient transaction.
*/
func (s *SQLiteStore) Begin() error {
	if s.tx != nil {
		return &util.GraphError{Type: util.ErrStorage,
			Detail: "transaction is already open"}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	s.tx = tx

	return nil
}

/*
Commit commits the ambient transaction.
*/
func (s *SQLiteStore) Commit() error {
	if s.tx == nil {
		return &util.GraphError{Type: util.ErrStorage,
			Detail: "no transaction is open"}
	}

	err := s.tx.Commit()
	s.tx = nil

	if err != nil {
		return &util.GraphError{Type: util.ErrStorage, Detail: err.Error()}
	}

	return nil
}

/*
Rollback aborts the ambient transaction and discards its writes.
*/
func (s *SQLiteStore) Rollback() error {
	if s.tx == nil {
		return &util.GraphError{Type: util.ErrRollback,
			Detail: "no transaction is open"}
	}

	err := s.tx.Rollback()
	s.tx = nil

	if err != nil {
		return &util.GraphError{Type: util.ErrRollback, Detail: err.Error()}
	}

	return nil
}

/*
Close closes the store. An open ambient transaction is rolled back.
*/
func (s *SQLiteStore) Close() error {
	if s.tx != nil {
		s.Rollback()
	}

	logger.Info("Closing graph store ", s.name)

	if err := s.db.Close(); err != nil {
		return &util.GraphError{Type: util.ErrClosing, Detail: err.Error()}
	}

	return nil
}
