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
Package traversal contains graph traversal algorithms on top of a graph
manager.

Traversals visit every reachable node exactly once and are guaranteed to
terminate on cyclic graphs. A traversal can be restricted to a direction
and an edge label and can be pruned with a predicate: a node which fails
the predicate is neither visited nor expanded, so the whole branch behind
it is cut off.
*/
package traversal

import (
	"fmt"

	"github.com/graveldb/graveldb/graph"
	"github.com/graveldb/graveldb/graph/data"
)

/*
Predicate decides if a node (seen at a given depth from the start node)
should be visited and expanded. A nil predicate accepts every node.
*/
type Predicate func(node data.Node, depth int) bool

/*
frontierItem is a discovered but not yet visited node.
*/
type frontierItem struct {
	id    uint64
	depth int
}

/*
Iterator visits all reachable nodes of a traversal one at a time. Use
NewBreadthFirst or NewDepthFirst to create one.
*/
type Iterator struct {
	gm       *graph.Manager
	start    uint64
	dir      graph.Direction
	label    string
	pred     Predicate
	depthFst bool

	frontier []frontierItem
	visited  map[uint64]struct{}
	parents  map[uint64]uint64

	current   data.Node
	depth     int
	next      data.Node
	nextDepth int
	hasNext   bool

	lastError error
}

/*
NewBreadthFirst creates a breadth-first traversal starting at a given
node. Nodes are visited in ascending distance from the start; ties are
broken by edge identifier order. Creation fails with ErrNotFound if the
start node does not exist.
*/
func NewBreadthFirst(gm *graph.Manager, start uint64, dir graph.Direction,
	label string, pred Predicate) (*Iterator, error) {
	return newIterator(gm, start, dir, label, pred, false)
}

/*
NewDepthFirst creates a depth-first traversal starting at a given node.
Creation fails with ErrNotFound if the start node does not exist.
*/
func NewDepthFirst(gm *graph.Manager, start uint64, dir graph.Direction,
	label string, pred Predicate) (*Iterator, error) {
	return newIterator(gm, start, dir, label, pred, true)
}

func newIterator(gm *graph.Manager, start uint64, dir graph.Direction,
	label string, pred Predicate, depthFst bool) (*Iterator, error) {

	// Fetching the start node verifies its existence

	if _, err := gm.FetchNode(start); err != nil {
		return nil, err
	}

	return &Iterator{
		gm:       gm,
		start:    start,
		dir:      dir,
		label:    label,
		pred:     pred,
		depthFst: depthFst,
		frontier: []frontierItem{{start, 0}},
		visited:  make(map[uint64]struct{}),
		parents:  make(map[uint64]uint64),
	}, nil
}

/*
HasNext returns if the traversal has a further node. Once it returns
false the caller should check LastError.
*/
func (it *Iterator) HasNext() bool {
	if it.hasNext {
		return true
	}
	return it.advance()
}

/*
Next returns the next node of the traversal. It must only be called after
HasNext returned true.
*/
func (it *Iterator) Next() data.Node {
	if !it.hasNext && !it.advance() {
		return nil
	}

	it.current = it.next
	it.depth = it.nextDepth
	it.next = nil
	it.hasNext = false

	return it.current
}

/*
Depth returns the distance of the current node from the start node.
*/
func (it *Iterator) Depth() int {
	return it.depth
}

/*
Path returns the identifiers on the discovery path from the start node to
the current node (both inclusive).
*/
func (it *Iterator) Path() []uint64 {
	if it.current == nil {
		return nil
	}

	var ret []uint64

	for id := it.current.ID(); ; {
		ret = append([]uint64{id}, ret...)
		if id == it.start {
			break
		}
		id = it.parents[id]
	}

	return ret
}

/*
LastError returns the last encountered error of the traversal. A failed
expansion step ends the traversal.
*/
func (it *Iterator) LastError() error {
	return it.lastError
}

/*
advance moves the traversal to the next acceptable node and fills the
next slot. It returns false once the frontier is exhausted or an error
occurred.
*/
func (it *Iterator) advance() bool {
	if it.lastError != nil {
		return false
	}

	for len(it.frontier) > 0 {
		var item frontierItem

		if it.depthFst {
			item = it.frontier[len(it.frontier)-1]
			it.frontier = it.frontier[:len(it.frontier)-1]
		} else {
			item = it.frontier[0]
			it.frontier = it.frontier[1:]
		}

		if _, ok := it.visited[item.id]; ok {
			continue
		}
		it.visited[item.id] = struct{}{}

		node, err := it.gm.FetchNode(item.id)
		if err != nil {
			it.lastError = fmt.Errorf("traversal failed at node %v: %w", item.id, err)
			return false
		}

		if it.pred != nil && !it.pred(node, item.depth) {
			continue
		}

		neighbors, err := it.gm.Neighbors(item.id, it.dir, it.label)
		if err != nil {
			it.lastError = fmt.Errorf("traversal failed at node %v: %w", item.id, err)
			return false
		}

		for _, nb := range neighbors {
			nid := nb.Node.ID()

			if _, ok := it.visited[nid]; ok {
				continue
			}

			if _, ok := it.parents[nid]; !ok {
				it.parents[nid] = item.id
			}

			it.frontier = append(it.frontier, frontierItem{nid, item.depth + 1})
		}

		it.next = node
		it.nextDepth = item.depth
		it.hasNext = true

		return true
	}

	return false
}
