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

import "devt.de/krotik/common/logutil"

/*
VERSION of the graph manager
*/
const VERSION = 1

var logger = logutil.GetLogger("graveldb.graph")

/*
Direction of an adjacency or traversal query relative to a node.
*/
type Direction int

/*
Possible traversal directions
*/
const (
	Outgoing Direction = iota // Follow edges which start at the node
	Incoming                  // Follow edges which point to the node
	Both                      // Follow edges in both directions
)

/*
String returns a human-readable representation of a direction.
*/
func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "outgoing"
	case Incoming:
		return "incoming"
	case Both:
		return "both"
	}
	return "unknown"
}

/*
Kinds of graph entities as they appear in the change journal.
*/
const (
	kindNode = "node"
	kindEdge = "edge"
)
