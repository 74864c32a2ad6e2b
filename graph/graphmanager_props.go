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
	"fmt"

	"github.com/graveldb/graveldb/graph/data"
	"github.com/graveldb/graveldb/graph/util"
)

/*
SetProperty sets a single property of a node or edge and immediately
persists it (write-through). A nil value removes the property. The live
object is updated in place so all holders of the instance observe the new
value. Setting a property on a deleted entity fails with ErrNotFound.
*/
func (gm *Manager) SetProperty(entity data.Node, key string, val interface{}) error {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	id := entity.ID()
	kind, stored, err := gm.loadStoredProps(entity)
	if err != nil {
		return err
	}

	oldVal, hadOld := stored[key]

	var add, old map[string]interface{}
	var remove []string

	if val == nil {
		if !hadOld {
			return nil
		}
		remove = []string{key}
	} else {
		add = map[string]interface{}{key: val}
	}

	if hadOld {
		old = map[string]interface{}{key: oldVal}
	}

	if err := gm.gs.Begin(); err != nil {
		return err
	}

	err = gm.gs.UpdateProperties(id, add, remove)
	if err == nil {
		err = gm.journalUpdate(kind, id, add, old)
	}

	if err = gm.finishOp(err, id); err != nil {
		return err
	}

	entity.SetProperty(key, val)

	if node, ok := gm.cache.node(id); ok && node != entity {
		node.SetProperty(key, val)
	} else if edge, ok := gm.cache.edge(id); ok && edge != entity {
		edge.SetProperty(key, val)
	}

	return nil
}

/*
RemoveProperty removes a single property of a node or edge. Removing a
property which does not exist is a no-op.
*/
func (gm *Manager) RemoveProperty(entity data.Node, key string) error {
	return gm.SetProperty(entity, key, nil)
}

/*
Property returns the authoritative stored value of a single property or
found=false if the property does not exist.
*/
func (gm *Manager) Property(entity data.Node, key string) (interface{}, bool, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	_, stored, err := gm.loadStoredProps(entity)
	if err != nil {
		return nil, false, err
	}

	val, ok := stored[key]

	return val, ok, nil
}

/*
loadStoredProps returns the entity kind and the stored property rows of a
live object. The stored rows are authoritative - a stale handle to a
deleted entity fails with ErrNotFound. Caller must hold the manager lock.
*/
func (gm *Manager) loadStoredProps(entity data.Node) (string, map[string]interface{}, error) {
	id := entity.ID()

	if _, isEdge := entity.(data.Edge); isEdge {
		_, props, found, err := gm.gs.FetchEdge(id)
		if err != nil {
			return "", nil, err
		} else if !found {
			return "", nil, &util.GraphError{Type: util.ErrNotFound,
				Detail: fmt.Sprintf("edge %v", id)}
		}
		return kindEdge, props, nil
	}

	props, found, err := gm.gs.FetchNode(id)
	if err != nil {
		return "", nil, err
	} else if !found {
		return "", nil, &util.GraphError{Type: util.ErrNotFound,
			Detail: fmt.Sprintf("node %v", id)}
	}

	return kindNode, props, nil
}
