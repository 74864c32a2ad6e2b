/*
 * GravelDB
 *
 * Copyright 2024 The GravelDB Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package storage maps graph data onto a fixed relational schema in SQLite.

The schema consists of three logical tables plus two auxiliary ones:

	nodes      (id)
	edges      (id, src, dst, label)
	properties (owner, key, value, vtype)
	settings   (key, value)
	changes    (id, change)

Properties of nodes and edges are stored as normalized key/value rows in
the properties side table keyed by (owner identifier, property name). The
edges table carries secondary indexes on src and dst which serve the
adjacency lookups.

The Store interface below is the contract the graph manager programs
against. SQLiteStore is the production implementation; the same type backs
both file-based and in-memory databases.
*/
package storage

/*
EdgeRow is the row representation of an edge in the edges table.
*/
type EdgeRow struct {
	ID     uint64 // Unique identifier of the edge
	Source uint64 // Identifier of the source node
	Target uint64 // Identifier of the target node
	Label  string // Optional type label
}

/*
ChangeRow is the row representation of an entry in the changes journal.
*/
type ChangeRow struct {
	ID     int64  // Journal sequence number
	Change string // JSON encoded change record
}

/*
Store models the relational backend for a graph manager. All mutating
operations execute within the ambient transaction if one was started via
Begin, otherwise they are atomic on their own.
*/
type Store interface {

	/*
	   Name returns the name of the store instance.
	*/
	Name() string

	/*
		AllocateID returns a new unique identifier. Identifiers are
		shared between nodes and edges and are never reused within a
		database lifetime.
	*/
	AllocateID() (uint64, error)

	/*
		InsertNode inserts a new node row together with its property rows.
	*/
	InsertNode(id uint64, props map[string]interface{}) error

	/*
		InsertEdge inserts a new edge row together with its property rows.
		Endpoint validation is the caller's responsibility.
	*/
	InsertEdge(id uint64, source uint64, target uint64, label string,
		props map[string]interface{}) error

	/*
		HasNode checks if a node row exists.
	*/
	HasNode(id uint64) (bool, error)

	/*
		FetchNode returns the decoded properties of a node or found=false
		if no node row exists.
	*/
	FetchNode(id uint64) (map[string]interface{}, bool, error)

	/*
		FetchEdge returns the edge row and decoded properties of an edge
		or found=false if no edge row exists.
	*/
	FetchEdge(id uint64) (*EdgeRow, map[string]interface{}, bool, error)

	/*
		UpdateProperties merges the given properties into the stored
		property rows of an entity and removes the listed keys. Keys which
		are not mentioned stay untouched.
	*/
	UpdateProperties(id uint64, merge map[string]interface{}, remove []string) error

	/*
		DeleteNode removes a node row and its property rows.
	*/
	DeleteNode(id uint64) error

	/*
		DeleteEdge removes an edge row and its property rows.
	*/
	DeleteEdge(id uint64) error

	/*
		FindEdges returns all edge rows matching the given filters ordered
		by edge identifier. A source or target of 0 and an empty label act
		as wildcards.
	*/
	FindEdges(source uint64, target uint64, label string) ([]EdgeRow, error)

	/*
		FindNodes returns the identifiers of all nodes whose properties
		match all given equality filters, ordered by identifier. An empty
		filter map returns all node identifiers.
	*/
	FindNodes(filters map[string]interface{}) ([]uint64, error)

	/*
		NodeIDs returns the identifiers of all stored nodes in ascending
		order.
	*/
	NodeIDs() ([]uint64, error)

	/*
		NodeCount returns the number of stored nodes.
	*/
	NodeCount() (uint64, error)

	/*
		EdgeCount returns the number of stored edges.
	*/
	EdgeCount() (uint64, error)

	/*
		LabelCounts returns the number of stored edges per label.
	*/
	LabelCounts() (map[string]uint64, error)

	/*
		Setting reads an entry from the settings key-value store.
	*/
	Setting(key string) (string, bool, error)

	/*
		SaveSetting writes an entry to the settings key-value store.
	*/
	SaveSetting(key string, value string) error

	/*
		AppendChange appends an entry to the changes journal.
	*/
	AppendChange(change string) error

	/*
		LastChange returns the newest entry of the changes journal or
		found=false if the journal is empty.
	*/
	LastChange() (ChangeRow, bool, error)

	/*
		ChangesInBatch returns all journal entries belonging to a given
		batch in insertion order.
	*/
	ChangesInBatch(batch string) ([]ChangeRow, error)

	/*
		DeleteChange removes a single entry from the changes journal.
	*/
	DeleteChange(id int64) error

	/*
		ChangeCount returns the number of entries in the changes journal.
	*/
	ChangeCount() (uint64, error)

	/*
		ClearChanges removes all entries from the changes journal.
	*/
	ClearChanges() error

	/*
		Begin starts the ambient transaction. All following operations
		become part of it until Commit or Rollback is called.
	*/
	Begin() error

	/*
		Commit commits the ambient transaction.
	*/
	Commit() error

	/*
		Rollback aborts the ambient transaction and discards its writes.
	*/
	Rollback() error

	/*
		Close closes the store. An open ambient transaction is rolled back.
	*/
	Close() error
}
