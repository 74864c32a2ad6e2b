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
Package data contains classes and functions to handle graph data.

Nodes

Nodes are items stored in the graph. The graphNode object is the minimal
implementation of the Node interface and represents a simple node. Nodes
have a property map of named values. Setting a nil value to a property is
equivalent to removing the property.

Edges

Edges are items stored in the graph. Edges connect nodes. The graphEdge
object is the minimal implementation of the Edge interface and represents
a simple directed edge with an optional label.

Property values are restricted to the types which the storage codec can
round-trip losslessly: string, int64, float64, bool and []byte.
*/
package data

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

/*
Node models nodes in the graph
*/
type Node interface {

	/*
	   ID returns the unique identifier of this node.
	*/
	ID() uint64

	/*
		Properties returns the property map of this node.
	*/
	Properties() map[string]interface{}

	/*
		Property returns a property of this node.
	*/
	Property(key string) interface{}

	/*
		SetProperty sets a property of this node. Setting a nil
		value removes the property. This only mutates the in-memory
		object - use the graph manager to write through to storage.
	*/
	SetProperty(key string, val interface{})

	/*
	   String returns a string representation of this node.
	*/
	String() string
}

/*
graphNode data structure.
*/
type graphNode struct {
	id    uint64                 // Unique identifier of this node
	props map[string]interface{} // Properties which are held by this node
}

/*
NewGraphNode creates a new Node instance.
*/
func NewGraphNode(id uint64, props map[string]interface{}) Node {
	if props == nil {
		props = make(map[string]interface{})
	}
	return &graphNode{id, props}
}

/*
ID returns the unique identifier of this node.
*/
func (gn *graphNode) ID() uint64 {
	return gn.id
}

/*
Properties returns the property map of this node.
*/
func (gn *graphNode) Properties() map[string]interface{} {
	return gn.props
}

/*
Property returns a property of this node.
*/
func (gn *graphNode) Property(key string) interface{} {
	val, _ := gn.props[key]
	return val
}

/*
SetProperty sets a property of this node. Setting a nil
value removes the property.
*/
func (gn *graphNode) SetProperty(key string, val interface{}) {
	if val != nil {
		gn.props[key] = val
	} else {
		delete(gn.props, key)
	}
}

/*
String returns a string representation of this node.
*/
func (gn *graphNode) String() string {
	return dataToString("GraphNode", gn, nil)
}

/*
dataToString returns a string representation of a data item. Fixed
attributes (id and for edges source, target and label) are printed first.
*/
func dataToString(dataType string, gn *graphNode, fixed [][2]string) string {
	var buf bytes.Buffer

	keys := make([]string, 0, len(gn.props))
	maxlen := len("id")

	for key := range gn.props {
		keys = append(keys, key)
		if klen := len(key); klen > maxlen {
			maxlen = klen
		}
	}
	for _, f := range fixed {
		if klen := len(f[0]); klen > maxlen {
			maxlen = klen
		}
	}

	sort.StringSlice(keys).Sort()

	buf.WriteString(dataType + ":\n")

	buf.WriteString(fmt.Sprintf("    %"+
		strconv.Itoa(maxlen)+"v : %v\n", "id", gn.id))

	for _, f := range fixed {
		buf.WriteString(fmt.Sprintf("    %"+
			strconv.Itoa(maxlen)+"v : %v\n", f[0], f[1]))
	}

	for _, key := range keys {
		buf.WriteString(fmt.Sprintf("    %"+
			strconv.Itoa(maxlen)+"v : %v\n", key, gn.props[key]))
	}

	return buf.String()
}
