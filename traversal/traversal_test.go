/*
 * GravelDB
 *
 * Copyright 2024 The GravelDB Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package traversal

import (
	"errors"
	"reflect"
	"testing"

	"devt.de/krotik/common/errorutil"
	"github.com/graveldb/graveldb/graph"
	"github.com/graveldb/graveldb/graph/data"
	"github.com/graveldb/graveldb/graph/util"
	"github.com/graveldb/graveldb/storage"
)

func newTestManager(t *testing.T) *graph.Manager {
	t.Helper()

	gs, err := storage.NewMemoryStore()
	errorutil.AssertOk(err)

	gm := graph.NewManager(gs)
	t.Cleanup(func() { gm.Close() })

	return gm
}

func mknode(gm *graph.Manager, name string) data.Node {
	node, err := gm.CreateNode(map[string]interface{}{"name": name})
	errorutil.AssertOk(err)
	return node
}

func mkedge(gm *graph.Manager, from data.Node, to data.Node) {
	_, err := gm.CreateEdge(from.ID(), to.ID(), "", nil)
	errorutil.AssertOk(err)
}

/*
diamondGraph builds:

	a -> b -> d
	a -> c -> d

The a->b edge is created before a->c.
*/
func diamondGraph(gm *graph.Manager) (a, b, c, d data.Node) {
	a = mknode(gm, "a")
	b = mknode(gm, "b")
	c = mknode(gm, "c")
	d = mknode(gm, "d")

	mkedge(gm, a, b)
	mkedge(gm, a, c)
	mkedge(gm, b, d)
	mkedge(gm, c, d)

	return a, b, c, d
}

func collect(it *Iterator) ([]string, []int) {
	var names []string
	var depths []int

	for it.HasNext() {
		node := it.Next()
		names = append(names, node.Property("name").(string))
		depths = append(depths, it.Depth())
	}

	return names, depths
}

func TestBreadthFirst(t *testing.T) {
	gm := newTestManager(t)
	a, _, _, _ := diamondGraph(gm)

	it, err := NewBreadthFirst(gm, a.ID(), graph.Outgoing, "", nil)
	if err != nil {
		t.Error(err)
		return
	}

	names, depths := collect(it)

	if !reflect.DeepEqual(names, []string{"a", "b", "c", "d"}) {
		t.Error("Unexpected visit order:", names)
		return
	}

	if !reflect.DeepEqual(depths, []int{0, 1, 1, 2}) {
		t.Error("Unexpected depths:", depths)
		return
	}

	if it.LastError() != nil {
		t.Error(it.LastError())
		return
	}

	if _, err := NewBreadthFirst(gm, 9999, graph.Outgoing, "", nil); !errors.Is(err, util.ErrNotFound) {
		t.Error("Unexpected creation result:", err)
		return
	}
}

func TestDepthFirst(t *testing.T) {
	gm := newTestManager(t)
	a, _, _, _ := diamondGraph(gm)

	it, err := NewDepthFirst(gm, a.ID(), graph.Outgoing, "", nil)
	if err != nil {
		t.Error(err)
		return
	}

	// Depth-first expands the most recently discovered branch first

	names, _ := collect(it)

	if !reflect.DeepEqual(names, []string{"a", "c", "d", "b"}) {
		t.Error("Unexpected visit order:", names)
		return
	}
}

func TestTraversalTerminatesOnCycle(t *testing.T) {
	gm := newTestManager(t)

	a := mknode(gm, "a")
	b := mknode(gm, "b")
	c := mknode(gm, "c")

	mkedge(gm, a, b)
	mkedge(gm, b, c)
	mkedge(gm, c, a)

	it, err := NewBreadthFirst(gm, a.ID(), graph.Outgoing, "", nil)
	if err != nil {
		t.Error(err)
		return
	}

	// Every node is visited exactly once despite the cycle

	names, _ := collect(it)

	if !reflect.DeepEqual(names, []string{"a", "b", "c"}) {
		t.Error("Unexpected visit order:", names)
		return
	}

	// A self-loop must not trap the traversal either

	mkedge(gm, a, a)

	it, _ = NewDepthFirst(gm, a.ID(), graph.Both, "", nil)

	if names, _ = collect(it); len(names) != 3 {
		t.Error("Unexpected visit order:", names)
		return
	}
}

func TestTraversalDirectionAndLabel(t *testing.T) {
	gm := newTestManager(t)

	a := mknode(gm, "a")
	b := mknode(gm, "b")
	c := mknode(gm, "c")

	gm.CreateEdge(a.ID(), b.ID(), "knows", nil)
	gm.CreateEdge(c.ID(), a.ID(), "owns", nil)

	it, _ := NewBreadthFirst(gm, a.ID(), graph.Outgoing, "", nil)
	names, _ := collect(it)

	if !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Error("Unexpected visit order:", names)
		return
	}

	it, _ = NewBreadthFirst(gm, a.ID(), graph.Both, "owns", nil)
	names, _ = collect(it)

	if !reflect.DeepEqual(names, []string{"a", "c"}) {
		t.Error("Unexpected visit order:", names)
		return
	}
}

func TestPredicatePruning(t *testing.T) {
	gm := newTestManager(t)
	a, b, _, _ := diamondGraph(gm)

	// Rejecting b cuts the branch behind it but d stays reachable via c

	pred := func(node data.Node, depth int) bool {
		return node.ID() != b.ID()
	}

	it, err := NewBreadthFirst(gm, a.ID(), graph.Outgoing, "", pred)
	if err != nil {
		t.Error(err)
		return
	}

	names, _ := collect(it)

	if !reflect.DeepEqual(names, []string{"a", "c", "d"}) {
		t.Error("Unexpected visit order:", names)
		return
	}

	// A depth limit cuts off everything below it

	it, _ = NewBreadthFirst(gm, a.ID(), graph.Outgoing, "",
		func(node data.Node, depth int) bool { return depth < 1 })

	names, _ = collect(it)

	if !reflect.DeepEqual(names, []string{"a"}) {
		t.Error("Unexpected visit order:", names)
		return
	}
}

func TestPath(t *testing.T) {
	gm := newTestManager(t)
	a, b, _, d := diamondGraph(gm)

	it, err := NewBreadthFirst(gm, a.ID(), graph.Outgoing, "", nil)
	if err != nil {
		t.Error(err)
		return
	}

	for it.HasNext() {
		if node := it.Next(); node.ID() == d.ID() {
			break
		}
	}

	if path := it.Path(); !reflect.DeepEqual(path, []uint64{a.ID(), b.ID(), d.ID()}) {
		t.Error("Unexpected path:", path)
		return
	}
}
