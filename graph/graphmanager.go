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
Package graph contains the main API to the graph datastore.

A graph manager handles the object cache and provides the API for the
graph database: creating, fetching and deleting nodes and edges, property
access with immediate write-through, adjacency queries and the change
journal. All data is persisted through a storage.Store into a fixed
relational schema - see the storage package for the table layout.

Operations which touch multiple rows (e.g. a cascading delete) run inside
a single storage transaction. If such an operation fails the transaction
is rolled back and all cache entries it touched are invalidated so the
cache never diverges from the rolled back rows.
*/
package graph

import (
	"fmt"
	"sync"

	"github.com/graveldb/graveldb/graph/data"
	"github.com/graveldb/graveldb/graph/util"
	"github.com/graveldb/graveldb/storage"
)

/*
Manager data structure
*/
type Manager struct {
	gs      storage.Store // Relational storage of this graph manager
	cache   *objectCache  // Identity cache for live graph objects
	journal bool          // Flag if changes should be journaled
	mutex   *sync.Mutex   // Mutex to protect atomic graph operations
}

/*
NewManager returns a new graph manager instance.
*/
func NewManager(gs storage.Store) *Manager {
	return &Manager{gs, newObjectCache(), true, &sync.Mutex{}}
}

/*
Name returns the name of this graph manager.
*/
func (gm *Manager) Name() string {
	return fmt.Sprint("Graph ", gm.gs.Name())
}

/*
SetChangeJournal enables or disables the change journal. The journal is
enabled by default.
*/
func (gm *Manager) SetChangeJournal(enabled bool) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	gm.journal = enabled
}

/*
NodeCount returns the number of stored nodes.
*/
func (gm *Manager) NodeCount() (uint64, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	return gm.gs.NodeCount()
}

/*
EdgeCount returns the number of stored edges.
*/
func (gm *Manager) EdgeCount() (uint64, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	return gm.gs.EdgeCount()
}

/*
Statistics returns basic statistics of the graph such as the number of
nodes and edges, edge counts per label and the journal size.
*/
func (gm *Manager) Statistics() (map[string]interface{}, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	nodes, err := gm.gs.NodeCount()
	if err != nil {
		return nil, err
	}

	edges, err := gm.gs.EdgeCount()
	if err != nil {
		return nil, err
	}

	labels, err := gm.gs.LabelCounts()
	if err != nil {
		return nil, err
	}

	changes, err := gm.gs.ChangeCount()
	if err != nil {
		return nil, err
	}

	version, _, err := gm.gs.Setting(storage.SettingFormatVersion)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"nodes":          nodes,
		"edges":          edges,
		"edge_labels":    labels,
		"changes":        changes,
		"format_version": version,
	}, nil
}

/*
InvalidateCache clears the object cache. This should be called if the
backing database was changed externally. Objects held by callers are
detached afterwards - the next fetch materializes fresh instances from
the authoritative rows.
*/
func (gm *Manager) InvalidateCache() {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	gm.cache.clear()
}

/*
Close closes the graph manager and its backing store.
*/
func (gm *Manager) Close() error {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	gm.cache.clear()

	return gm.gs.Close()
}

// Internal helpers
// ================

/*
getOrLoadNode returns the live object for a node identifier. The cached
instance is returned if present, otherwise the row is loaded, decoded,
registered and returned. Caller must hold the manager lock.
*/
func (gm *Manager) getOrLoadNode(id uint64) (data.Node, error) {
	if node, ok := gm.cache.node(id); ok {
		return node, nil
	}

	props, found, err := gm.gs.FetchNode(id)
	if err != nil {
		return nil, err
	} else if !found {
		return nil, &util.GraphError{Type: util.ErrNotFound,
			Detail: fmt.Sprintf("node %v", id)}
	}

	node := data.NewGraphNode(id, props)
	gm.cache.putNode(node)

	return node, nil
}

/*
getOrLoadEdge returns the live object for an edge identifier. The cached
instance is returned if present, otherwise the row is loaded, decoded,
registered and returned. Caller must hold the manager lock.
*/
func (gm *Manager) getOrLoadEdge(id uint64) (data.Edge, error) {
	if edge, ok := gm.cache.edge(id); ok {
		return edge, nil
	}

	row, props, found, err := gm.gs.FetchEdge(id)
	if err != nil {
		return nil, err
	} else if !found {
		return nil, &util.GraphError{Type: util.ErrNotFound,
			Detail: fmt.Sprintf("edge %v", id)}
	}

	edge := data.NewGraphEdge(row.ID, row.Source, row.Target, row.Label, props)
	gm.cache.putEdge(edge)

	return edge, nil
}

/*
finishOp ends a mutating operation which runs inside the ambient storage
transaction. A nil error commits; any error rolls back and evicts the
cache entries the operation touched so they are reloaded from the
authoritative rows. The manager lock must be held.
*/
func (gm *Manager) finishOp(err error, touched ...uint64) error {
	if err == nil {
		if cerr := gm.gs.Commit(); cerr != nil {
			gm.evictAll(touched)
			return cerr
		}
		return nil
	}

	if rerr := gm.gs.Rollback(); rerr != nil {
		logger.Error("Rollback failed: ", rerr)
	}

	gm.evictAll(touched)

	return err
}

/*
evictAll removes a set of identifiers from the object cache.
*/
func (gm *Manager) evictAll(ids []uint64) {
	for _, id := range ids {
		gm.cache.evict(id)
	}
}
