/*
 * GravelDB
 *
 * Copyright 2024 The GravelDB Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package data

import "fmt"

/*
Edge models edges in the graph. An edge is a directed relation between two
nodes. Undirected use is modeled by querying both directions.
*/
type Edge interface {
	Node

	/*
		Source returns the identifier of the node this edge starts from.
	*/
	Source() uint64

	/*
		Target returns the identifier of the node this edge points to.
	*/
	Target() uint64

	/*
		Label returns the optional type label of this edge.
	*/
	Label() string

	/*
		OtherEnd returns the identifier of the endpoint which is on the
		other side from the given node identifier. It returns the given
		identifier itself for self-loops and 0 if the identifier is not
		an endpoint of this edge.
	*/
	OtherEnd(id uint64) uint64
}

/*
graphEdge data structure.
*/
type graphEdge struct {
	*graphNode
	source uint64 // Identifier of the source node
	target uint64 // Identifier of the target node
	label  string // Optional type label
}

/*
NewGraphEdge creates a new Edge instance.
*/
func NewGraphEdge(id uint64, source uint64, target uint64, label string,
	props map[string]interface{}) Edge {

	if props == nil {
		props = make(map[string]interface{})
	}
	return &graphEdge{&graphNode{id, props}, source, target, label}
}

/*
Source returns the identifier of the node this edge starts from.
*/
func (ge *graphEdge) Source() uint64 {
	return ge.source
}

/*
Target returns the identifier of the node this edge points to.
*/
func (ge *graphEdge) Target() uint64 {
	return ge.target
}

/*
Label returns the optional type label of this edge.
*/
func (ge *graphEdge) Label() string {
	return ge.label
}

/*
OtherEnd returns the identifier of the endpoint which is on the other side
from the given node identifier.
*/
func (ge *graphEdge) OtherEnd(id uint64) uint64 {
	if id == ge.source {
		return ge.target
	} else if id == ge.target {
		return ge.source
	}
	return 0
}

/*
String returns a string representation of this edge.
*/
func (ge *graphEdge) String() string {
	return dataToString("GraphEdge", ge.graphNode, [][2]string{
		{"source", fmt.Sprint(ge.source)},
		{"target", fmt.Sprint(ge.target)},
		{"label", ge.label},
	})
}
