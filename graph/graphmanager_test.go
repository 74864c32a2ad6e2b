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
	"errors"
	"testing"

	"devt.de/krotik/common/errorutil"
	"github.com/graveldb/graveldb/graph/data"
	"github.com/graveldb/graveldb/graph/util"
	"github.com/graveldb/graveldb/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	gs, err := storage.NewMemoryStore()
	errorutil.AssertOk(err)

	gm := NewManager(gs)
	t.Cleanup(func() { gm.Close() })

	return gm
}

func TestCreateAndFetchNode(t *testing.T) {
	gm := newTestManager(t)

	props := map[string]interface{}{"name": "fred", "age": int64(42)}

	node, err := gm.CreateNode(props)
	if err != nil {
		t.Error(err)
		return
	}

	// The manager copies the property map on creation

	props["name"] = "mutated"

	if node.Property("name") != "fred" {
		t.Error("Unexpected property value:", node.Property("name"))
		return
	}

	node2, err := gm.FetchNode(node.ID())
	if err != nil {
		t.Error(err)
		return
	}

	// Fetching an identifier twice must return the same live instance

	if node2 != node {
		t.Error("Fetch should have returned the identical live instance")
		return
	}

	if _, err := gm.FetchNode(9999); !errors.Is(err, util.ErrNotFound) {
		t.Error("Unexpected fetch result:", err)
		return
	}

	gm.InvalidateCache()

	node3, err := gm.FetchNode(node.ID())
	if err != nil {
		t.Error(err)
		return
	}

	if node3 == node {
		t.Error("Invalidated cache should have produced a fresh instance")
		return
	}

	if !data.EqualProperties(node3.Properties(),
		map[string]interface{}{"name": "fred", "age": int64(42)}) {
		t.Error("Unexpected properties:", node3.Properties())
		return
	}
}

func TestCreateAndFetchEdge(t *testing.T) {
	gm := newTestManager(t)

	a, _ := gm.CreateNode(nil)
	b, _ := gm.CreateNode(nil)

	edge, err := gm.CreateEdge(a.ID(), b.ID(), "knows",
		map[string]interface{}{"since": int64(2020)})
	if err != nil {
		t.Error(err)
		return
	}

	if edge.Source() != a.ID() || edge.Target() != b.ID() || edge.Label() != "knows" {
		t.Error("Unexpected edge:", edge)
		return
	}

	if edge.OtherEnd(a.ID()) != b.ID() || edge.OtherEnd(b.ID()) != a.ID() {
		t.Error("Unexpected other end results")
		return
	}

	edge2, err := gm.FetchEdge(edge.ID())
	if err != nil {
		t.Error(err)
		return
	}

	if edge2 != edge {
		t.Error("Fetch should have returned the identical live instance")
		return
	}

	// Edges to or from missing nodes must be rejected and leave no trace

	if _, err := gm.CreateEdge(a.ID(), 9999, "knows", nil); !errors.Is(err, util.ErrDanglingReference) {
		t.Error("Unexpected create result:", err)
		return
	}

	if _, err := gm.CreateEdge(9999, b.ID(), "knows", nil); !errors.Is(err, util.ErrDanglingReference) {
		t.Error("Unexpected create result:", err)
		return
	}

	if n, _ := gm.EdgeCount(); n != 1 {
		t.Error("Unexpected edge count:", n)
		return
	}
}

func TestNeighbors(t *testing.T) {
	gm := newTestManager(t)

	a, _ := gm.CreateNode(map[string]interface{}{"name": "a"})
	b, _ := gm.CreateNode(map[string]interface{}{"name": "b"})
	c, _ := gm.CreateNode(map[string]interface{}{"name": "c"})

	e1, _ := gm.CreateEdge(a.ID(), b.ID(), "knows", nil)
	gm.CreateEdge(a.ID(), c.ID(), "owns", nil)
	e3, _ := gm.CreateEdge(c.ID(), a.ID(), "knows", nil)

	res, err := gm.Neighbors(a.ID(), Outgoing, "")
	if err != nil {
		t.Error(err)
		return
	}

	if len(res) != 2 || res[0].Node != b || res[1].Node != c {
		t.Error("Unexpected outgoing neighbors:", res)
		return
	}

	res, err = gm.Neighbors(a.ID(), Incoming, "")
	if err != nil {
		t.Error(err)
		return
	}

	if len(res) != 1 || res[0].Node != c || res[0].Edge.ID() != e3.ID() {
		t.Error("Unexpected incoming neighbors:", res)
		return
	}

	res, err = gm.Neighbors(a.ID(), Both, "knows")
	if err != nil {
		t.Error(err)
		return
	}

	if len(res) != 2 || res[0].Edge.ID() != e1.ID() || res[1].Edge.ID() != e3.ID() {
		t.Error("Unexpected neighbors:", res)
		return
	}

	if _, err := gm.Neighbors(9999, Both, ""); !errors.Is(err, util.ErrNotFound) {
		t.Error("Unexpected neighbors result:", err)
		return
	}
}

func TestDeleteNode(t *testing.T) {
	gm := newTestManager(t)

	a, _ := gm.CreateNode(map[string]interface{}{"name": "a"})
	b, _ := gm.CreateNode(map[string]interface{}{"name": "b"})
	c, _ := gm.CreateNode(map[string]interface{}{"name": "c"})

	gm.CreateEdge(a.ID(), b.ID(), "knows", nil)
	gm.CreateEdge(c.ID(), a.ID(), "knows", nil)

	// A non-cascading delete must refuse to orphan edges

	err := gm.DeleteNode(a.ID(), false)
	if !errors.Is(err, util.ErrReferentialIntegrity) {
		t.Error("Unexpected delete result:", err)
		return
	}

	if n, _ := gm.NodeCount(); n != 3 {
		t.Error("Unexpected node count:", n)
		return
	}

	if err := gm.DeleteNode(a.ID(), true); err != nil {
		t.Error(err)
		return
	}

	if n, _ := gm.NodeCount(); n != 2 {
		t.Error("Unexpected node count:", n)
		return
	}

	if n, _ := gm.EdgeCount(); n != 0 {
		t.Error("Unexpected edge count:", n)
		return
	}

	if _, err := gm.FetchNode(a.ID()); !errors.Is(err, util.ErrNotFound) {
		t.Error("Unexpected fetch result:", err)
		return
	}

	// Unconnected nodes delete without cascade

	if err := gm.DeleteNode(b.ID(), false); err != nil {
		t.Error(err)
		return
	}

	if err := gm.DeleteNode(b.ID(), false); !errors.Is(err, util.ErrNotFound) {
		t.Error("Unexpected delete result:", err)
		return
	}
}

func TestDeleteEdge(t *testing.T) {
	gm := newTestManager(t)

	a, _ := gm.CreateNode(nil)
	b, _ := gm.CreateNode(nil)
	edge, _ := gm.CreateEdge(a.ID(), b.ID(), "knows", nil)

	if err := gm.DeleteEdge(edge.ID()); err != nil {
		t.Error(err)
		return
	}

	if _, err := gm.FetchEdge(edge.ID()); !errors.Is(err, util.ErrNotFound) {
		t.Error("Unexpected fetch result:", err)
		return
	}

	if err := gm.DeleteEdge(edge.ID()); !errors.Is(err, util.ErrNotFound) {
		t.Error("Unexpected delete result:", err)
		return
	}

	// Endpoints are not affected

	if n, _ := gm.NodeCount(); n != 2 {
		t.Error("Unexpected node count:", n)
		return
	}
}

func TestFindNodes(t *testing.T) {
	gm := newTestManager(t)

	a, _ := gm.CreateNode(map[string]interface{}{"kind": "person", "age": int64(30)})
	gm.CreateNode(map[string]interface{}{"kind": "person", "age": int64(40)})
	gm.CreateNode(map[string]interface{}{"kind": "robot"})

	res, err := gm.FindNodes(map[string]interface{}{"kind": "person", "age": int64(30)})
	if err != nil {
		t.Error(err)
		return
	}

	if len(res) != 1 || res[0] != a {
		t.Error("Unexpected find result:", res)
		return
	}

	res, err = gm.FindNodesByProperty("kind", "person")
	if err != nil {
		t.Error(err)
		return
	}

	if len(res) != 2 {
		t.Error("Unexpected find result:", res)
		return
	}

	res, err = gm.FindNodes(nil)
	if err != nil {
		t.Error(err)
		return
	}

	if len(res) != 3 {
		t.Error("Unexpected find result:", res)
		return
	}
}

func TestStatisticsAndIterator(t *testing.T) {
	gm := newTestManager(t)

	if gm.Name() != "Graph memory" {
		t.Error("Unexpected name:", gm.Name())
		return
	}

	a, _ := gm.CreateNode(nil)
	b, _ := gm.CreateNode(nil)
	gm.CreateEdge(a.ID(), b.ID(), "knows", nil)
	gm.CreateEdge(b.ID(), a.ID(), "knows", nil)
	gm.CreateEdge(a.ID(), b.ID(), "owns", nil)

	stats, err := gm.Statistics()
	if err != nil {
		t.Error(err)
		return
	}

	if stats["nodes"] != uint64(2) || stats["edges"] != uint64(3) {
		t.Error("Unexpected statistics:", stats)
		return
	}

	labels := stats["edge_labels"].(map[string]uint64)
	if labels["knows"] != 2 || labels["owns"] != 1 {
		t.Error("Unexpected statistics:", stats)
		return
	}

	it, err := gm.NodeIDs()
	if err != nil {
		t.Error(err)
		return
	}

	var ids []uint64
	for it.HasNext() {
		ids = append(ids, it.Next())
	}

	if len(ids) != 2 || ids[0] != a.ID() || ids[1] != b.ID() {
		t.Error("Unexpected iterator result:", ids)
		return
	}
}
