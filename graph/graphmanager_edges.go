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

	"devt.de/krotik/common/sortutil"
	"github.com/graveldb/graveldb/graph/data"
	"github.com/graveldb/graveldb/graph/util"
	"github.com/graveldb/graveldb/storage"
)

/*
Neighbor is a single adjacency query result: the connecting edge and the
node on the other end.
*/
type Neighbor struct {
	Edge data.Edge // Edge which connects the queried node to the neighbor
	Node data.Node // Node on the other end of the edge
}

/*
CreateEdge creates a new directed edge between two existing nodes,
persists it and returns the live object. Creation fails with
ErrDanglingReference if either endpoint does not resolve to an existing
node and no edge row is written in that case. The given property map is
copied - the caller keeps ownership of it.
*/
func (gm *Manager) CreateEdge(source uint64, target uint64, label string,
	props map[string]interface{}) (data.Edge, error) {

	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	for _, end := range []uint64{source, target} {
		if found, err := gm.gs.HasNode(end); err != nil {
			return nil, err
		} else if !found {
			return nil, &util.GraphError{Type: util.ErrDanglingReference,
				Detail: fmt.Sprintf("node %v", end)}
		}
	}

	props = data.CopyProperties(props)

	id, err := gm.gs.AllocateID()
	if err != nil {
		return nil, err
	}

	if err := gm.gs.Begin(); err != nil {
		return nil, err
	}

	err = gm.gs.InsertEdge(id, source, target, label, props)
	if err == nil {
		err = gm.journalCreate(kindEdge, id, props,
			&storage.EdgeRow{ID: id, Source: source, Target: target, Label: label}, "")
	}

	if err = gm.finishOp(err, id); err != nil {
		return nil, err
	}

	edge := data.NewGraphEdge(id, source, target, label, props)
	gm.cache.putEdge(edge)

	return edge, nil
}

/*
FetchEdge fetches a single edge from the graph. Two fetches of the same
identifier return the same live instance while it is cached.
*/
func (gm *Manager) FetchEdge(id uint64) (data.Edge, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	return gm.getOrLoadEdge(id)
}

/*
DeleteEdge removes an edge from the graph. The endpoint nodes are never
affected.
*/
func (gm *Manager) DeleteEdge(id uint64) error {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	row, props, found, err := gm.gs.FetchEdge(id)
	if err != nil {
		return err
	} else if !found {
		return &util.GraphError{Type: util.ErrNotFound,
			Detail: fmt.Sprintf("edge %v", id)}
	}

	if err := gm.gs.Begin(); err != nil {
		return err
	}

	err = gm.gs.DeleteEdge(id)
	if err == nil {
		err = gm.journalDelete(kindEdge, id, props, row, "")
	}

	if err = gm.finishOp(err, id); err != nil {
		return err
	}

	gm.cache.evict(id)

	return nil
}

/*
Neighbors returns all (edge, other node) pairs attached to a node in the
given direction, optionally restricted to a label. Results are ordered by
edge identifier; with direction Both each edge is reported once even if it
is a self-loop.
*/
func (gm *Manager) Neighbors(id uint64, dir Direction, label string) ([]Neighbor, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	if found, err := gm.gs.HasNode(id); err != nil {
		return nil, err
	} else if !found {
		return nil, &util.GraphError{Type: util.ErrNotFound,
			Detail: fmt.Sprintf("node %v", id)}
	}

	var rows []storage.EdgeRow
	var err error

	switch dir {

	case Outgoing:
		rows, err = gm.gs.FindEdges(id, 0, label)

	case Incoming:
		rows, err = gm.gs.FindEdges(0, id, label)

	case Both:
		var out, in []storage.EdgeRow

		if out, err = gm.gs.FindEdges(id, 0, label); err == nil {
			if in, err = gm.gs.FindEdges(0, id, label); err == nil {
				rows = mergeEdgeRows(out, in)
			}
		}

	default:
		err = &util.GraphError{Type: util.ErrInvalidData,
			Detail: fmt.Sprintf("unknown direction: %v", dir)}
	}

	if err != nil {
		return nil, err
	}

	ret := make([]Neighbor, 0, len(rows))

	for _, row := range rows {
		edge, err := gm.getOrLoadEdge(row.ID)
		if err != nil {
			return nil, err
		}

		node, err := gm.getOrLoadNode(edge.OtherEnd(id))
		if err != nil {
			return nil, err
		}

		ret = append(ret, Neighbor{edge, node})
	}

	return ret, nil
}

/*
mergeEdgeRows merges two edge row lists, removing duplicates. The result
is ordered by edge identifier.
*/
func mergeEdgeRows(lists ...[]storage.EdgeRow) []storage.EdgeRow {
	seen := make(map[uint64]storage.EdgeRow)
	ids := make([]uint64, 0)

	for _, list := range lists {
		for _, row := range list {
			if _, ok := seen[row.ID]; !ok {
				seen[row.ID] = row
				ids = append(ids, row.ID)
			}
		}
	}

	sortutil.UInt64s(ids)

	ret := make([]storage.EdgeRow, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, seen[id])
	}

	return ret
}
