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

/*
NodeIDIterator iterates over the identifiers of all stored nodes in
ascending order. The iterator operates on a snapshot taken at creation
time - mutations after creation are not reflected.
*/
type NodeIDIterator struct {
	ids []uint64
	pos int
}

/*
NodeIDs returns an iterator over all stored node identifiers.
*/
func (gm *Manager) NodeIDs() (*NodeIDIterator, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	ids, err := gm.gs.NodeIDs()
	if err != nil {
		return nil, err
	}

	return &NodeIDIterator{ids, 0}, nil
}

/*
HasNext returns if there is a next node identifier.
*/
func (it *NodeIDIterator) HasNext() bool {
	return it.pos < len(it.ids)
}

/*
Next returns the next node identifier.
*/
func (it *NodeIDIterator) Next() uint64 {
	id := it.ids[it.pos]
	it.pos++
	return id
}
