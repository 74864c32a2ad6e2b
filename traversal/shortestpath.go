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
	"github.com/graveldb/graveldb/graph"
)

/*
ShortestPath returns the node identifiers of a shortest path (fewest
edges) between two existing nodes, both endpoints inclusive. If multiple
shortest paths exist the one discovered first in edge identifier order is
returned. An unreachable target yields nil without an error; a missing
endpoint fails with ErrNotFound.
*/
func ShortestPath(gm *graph.Manager, from uint64, to uint64,
	dir graph.Direction, label string) ([]uint64, error) {

	if _, err := gm.FetchNode(to); err != nil {
		return nil, err
	}

	it, err := NewBreadthFirst(gm, from, dir, label, nil)
	if err != nil {
		return nil, err
	}

	for it.HasNext() {
		if node := it.Next(); node.ID() == to {
			return it.Path(), nil
		}
	}

	return nil, it.LastError()
}
