/*
 * GravelDB
 *
 * Copyright 2024 The GravelDB Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package graph

import (
	"fmt"

	"devt.de/krotik/common/stringutil"
	"github.com/graveldb/graveldb/graph/data"
	"github.com/graveldb/graveldb/graph/util"
	"github.com/graveldb/graveldb/storage"
)

/*
CreateNode creates a new node with the given properties, persists it and
returns the live object. The given property map is copied - the caller
keeps ownership of it.
*/
func (gm *Manager) CreateNode(props map[string]interface{}) (data.Node, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	props = data.CopyProperties(props)

	id, err := gm.gs.AllocateID()
	if err != nil {
		return nil, err
	}

	if err := gm.gs.Begin(); err != nil {
		return nil, err
	}

	err = gm.gs.InsertNode(id, props)
	if err == nil {
		err = gm.journalCreate(kindNode, id, props, nil, "")
	}

	if err = gm.finishOp(err, id); err != nil {
		return nil, err
	}

	node := data.NewGraphNode(id, props)
	gm.cache.putNode(node)

	return node, nil
}

/*
FetchNode fetches a single node from the graph. Two fetches of the same
identifier return the same live instance while it is cached.
*/
func (gm *Manager) FetchNode(id uint64) (data.Node, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	return gm.getOrLoadNode(id)
}

/*
DeleteNode removes a node from the graph. If cascade is true all edges
attached to the node (in both directions) are deleted first in the same
transaction. If cascade is false and attached edges exist the operation
fails with ErrReferentialIntegrity - edges are never silently orphaned.
*/
func (gm *Manager) DeleteNode(id uint64, cascade bool) error {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	props, found, err := gm.gs.FetchNode(id)
	if err != nil {
		return err
	} else if !found {
		return &util.GraphError{Type: util.ErrNotFound,
			Detail: fmt.Sprintf("node %v", id)}
	}

	rows, err := gm.attachedEdges(id)
	if err != nil {
		return err
	}

	if len(rows) > 0 && !cascade {
		return &util.GraphError{Type: util.ErrReferentialIntegrity,
			Detail: fmt.Sprintf("node %v has %v attached edge%v", id,
				len(rows), stringutil.Plural(len(rows)))}
	}

	var batch string
	if gm.journal && len(rows) > 0 {
		batch = newBatchID()
	}

	if err := gm.gs.Begin(); err != nil {
		return err
	}

	touched := []uint64{id}

	for _, row := range rows {
		touched = append(touched, row.ID)

		var eprops map[string]interface{}

		if _, eprops, _, err = gm.gs.FetchEdge(row.ID); err != nil {
			break
		}

		if err = gm.gs.DeleteEdge(row.ID); err != nil {
			break
		}

		row := row
		if err = gm.journalDelete(kindEdge, row.ID, eprops, &row, batch); err != nil {
			break
		}
	}

	if err == nil {
		if err = gm.gs.DeleteNode(id); err == nil {
			err = gm.journalDelete(kindNode, id, props, nil, batch)
		}
	}

	if err = gm.finishOp(err, touched...); err != nil {
		return err
	}

	gm.evictAll(touched)

	return nil
}

/*
FindNodes returns all nodes whose properties match all given equality
filters (AND semantics). An empty filter map returns all nodes. Results
are ordered by identifier.
*/
func (gm *Manager) FindNodes(filters map[string]interface{}) ([]data.Node, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	ids, err := gm.gs.FindNodes(filters)
	if err != nil {
		return nil, err
	}

	ret := make([]data.Node, 0, len(ids))

	for _, id := range ids {
		node, err := gm.getOrLoadNode(id)
		if err != nil {
			return nil, err
		}
		ret = append(ret, node)
	}

	return ret, nil
}

/*
FindNodesByProperty returns all nodes which have a given property value.
*/
func (gm *Manager) FindNodesByProperty(key string, value interface{}) ([]data.Node, error) {
	return gm.FindNodes(map[string]interface{}{key: value})
}

/*
attachedEdges returns the rows of all edges attached to a node in either
direction. Self-loops are reported once.
*/
func (gm *Manager) attachedEdges(id uint64) ([]storage.EdgeRow, error) {
	out, err := gm.gs.FindEdges(id, 0, "")
	if err != nil {
		return nil, err
	}

	in, err := gm.gs.FindEdges(0, id, "")
	if err != nil {
		return nil, err
	}

	return mergeEdgeRows(out, in), nil
}
