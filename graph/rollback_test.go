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
	"github.com/graveldb/graveldb/graph/util"
	"github.com/graveldb/graveldb/storage"
)

/*
failingStore wraps a store and fails selected operations to exercise the
rollback behavior of multi-row operations.
*/
type failingStore struct {
	storage.Store
	failDeleteNode bool
	failInsertNode bool
}

var errSimulated = errors.New("simulated storage failure")

func (fs *failingStore) DeleteNode(id uint64) error {
	if fs.failDeleteNode {
		return &util.GraphError{Type: util.ErrStorage, Detail: errSimulated.Error()}
	}
	return fs.Store.DeleteNode(id)
}

func (fs *failingStore) InsertNode(id uint64, props map[string]interface{}) error {
	if fs.failInsertNode {
		return &util.GraphError{Type: util.ErrStorage, Detail: errSimulated.Error()}
	}
	return fs.Store.InsertNode(id, props)
}

func newFailingManager(t *testing.T) (*Manager, *failingStore) {
	t.Helper()

	gs, err := storage.NewMemoryStore()
	errorutil.AssertOk(err)

	fs := &failingStore{Store: gs}

	gm := NewManager(fs)
	t.Cleanup(func() { gm.Close() })

	return gm, fs
}

func TestCascadingDeleteRollsBack(t *testing.T) {
	gm, fs := newFailingManager(t)

	a, _ := gm.CreateNode(map[string]interface{}{"name": "a"})
	b, _ := gm.CreateNode(map[string]interface{}{"name": "b"})
	edge, _ := gm.CreateEdge(a.ID(), b.ID(), "knows", nil)

	changesBefore, _ := gm.ChangeCount()

	// Fail after the attached edges were already deleted within the
	// transaction - nothing of the cascade may stick.

	fs.failDeleteNode = true

	err := gm.DeleteNode(a.ID(), true)
	if !errors.Is(err, util.ErrStorage) {
		t.Error("Unexpected delete result:", err)
		return
	}

	fs.failDeleteNode = false

	if n, _ := gm.NodeCount(); n != 2 {
		t.Error("Unexpected node count:", n)
		return
	}

	if n, _ := gm.EdgeCount(); n != 1 {
		t.Error("Unexpected edge count:", n)
		return
	}

	edge2, err := gm.FetchEdge(edge.ID())
	if err != nil {
		t.Error(err)
		return
	}

	if edge2.Source() != a.ID() || edge2.Target() != b.ID() {
		t.Error("Unexpected edge after rollback:", edge2)
		return
	}

	if changesAfter, _ := gm.ChangeCount(); changesAfter != changesBefore {
		t.Error("Rolled back operation should not have been journaled")
		return
	}

	// The graph is fully operational after the rollback

	if err := gm.DeleteNode(a.ID(), true); err != nil {
		t.Error(err)
		return
	}

	if n, _ := gm.EdgeCount(); n != 0 {
		t.Error("Unexpected edge count:", n)
		return
	}
}

func TestFailedCreateLeavesNoTrace(t *testing.T) {
	gm, fs := newFailingManager(t)

	fs.failInsertNode = true

	if _, err := gm.CreateNode(nil); !errors.Is(err, util.ErrStorage) {
		t.Error("Unexpected create result:", err)
		return
	}

	fs.failInsertNode = false

	if n, _ := gm.NodeCount(); n != 0 {
		t.Error("Unexpected node count:", n)
		return
	}

	if c, _ := gm.ChangeCount(); c != 0 {
		t.Error("Unexpected change count:", c)
		return
	}

	// Identifiers of failed operations are retired, not reused

	node, err := gm.CreateNode(nil)
	if err != nil {
		t.Error(err)
		return
	}

	if node.ID() != 2 {
		t.Error("Unexpected identifier:", node.ID())
		return
	}
}
