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

import "github.com/graveldb/graveldb/graph/data"

/*
objectCache is the in-memory identity map from identifier to live graph
object. It guarantees that at most one live object exists per identifier
so in-place property mutation is visible to all holders. Entries are only
a lookup optimization - the authoritative state is always the relational
row. Entries must never be evicted while correct except on delete,
rollback or a full invalidation.
*/
type objectCache struct {
	nodes map[uint64]data.Node
	edges map[uint64]data.Edge
}

/*
newObjectCache creates a new object cache.
*/
func newObjectCache() *objectCache {
	return &objectCache{
		nodes: make(map[uint64]data.Node),
		edges: make(map[uint64]data.Edge),
	}
}

/*
node returns the cached live node for an identifier.
*/
func (oc *objectCache) node(id uint64) (data.Node, bool) {
	node, ok := oc.nodes[id]
	return node, ok
}

/*
edge returns the cached live edge for an identifier.
*/
func (oc *objectCache) edge(id uint64) (data.Edge, bool) {
	edge, ok := oc.edges[id]
	return edge, ok
}

/*
putNode registers a live node.
*/
func (oc *objectCache) putNode(node data.Node) {
	oc.nodes[node.ID()] = node
}

/*
putEdge registers a live edge.
*/
func (oc *objectCache) putEdge(edge data.Edge) {
	oc.edges[edge.ID()] = edge
}

/*
evict removes the entry for an identifier. Identifiers are unique across
nodes and edges so at most one of the maps holds an entry.
*/
func (oc *objectCache) evict(id uint64) {
	delete(oc.nodes, id)
	delete(oc.edges, id)
}

/*
clear removes all entries.
*/
func (oc *objectCache) clear() {
	oc.nodes = make(map[uint64]data.Node)
	oc.edges = make(map[uint64]data.Edge)
}
