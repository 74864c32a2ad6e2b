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
	"encoding/json"
	"fmt"
	"time"

	"devt.de/krotik/common/cryptutil"
	"github.com/graveldb/graveldb/graph/util"
	"github.com/graveldb/graveldb/storage"
)

/*
Operations as they appear in journal records
*/
const (
	opCreate = "create"
	opDelete = "delete"
	opUpdate = "update"
)

/*
changeValue is a property value inside a journal record. Values are stored
in the same flat (value, vtype) representation as the properties table so
an undo restores the exact original type.
*/
type changeValue struct {
	V string `json:"v"`
	T string `json:"t"`
}

/*
changeRecord is the JSON document stored in a single journal row. For
property updates the "+" map holds the new values of added or overwritten
keys and the "-" map holds the previous values of overwritten or removed
keys. For creates the "+" map holds all initial values, for deletes the
"-" map holds the last values.
*/
type changeRecord struct {
	ID     uint64                 `json:"uid"`
	Kind   string                 `json:"kind"`
	Op     string                 `json:"op"`
	Batch  string                 `json:"batch,omitempty"`
	Time   string                 `json:"time"`
	Add    map[string]changeValue `json:"+,omitempty"`
	Remove map[string]changeValue `json:"-,omitempty"`
	Source uint64                 `json:"src,omitempty"`
	Target uint64                 `json:"dst,omitempty"`
	Label  string                 `json:"label,omitempty"`
}

/*
newBatchID returns a new unique identifier which groups the journal
records of a multi-entity operation.
*/
func newBatchID() string {
	return fmt.Sprintf("%x", cryptutil.GenerateUUID())
}

/*
encodeChangeValues converts a property map into journal representation.
*/
func encodeChangeValues(props map[string]interface{}) (map[string]changeValue, error) {
	if len(props) == 0 {
		return nil, nil
	}

	ret := make(map[string]changeValue, len(props))

	for key, val := range props {
		value, vtype, err := storage.EncodeValue(val)
		if err != nil {
			return nil, err
		}
		ret[key] = changeValue{value, vtype}
	}

	return ret, nil
}

/*
decodeChangeValues converts journal representation back into a property
map.
*/
func decodeChangeValues(values map[string]changeValue) (map[string]interface{}, error) {
	if len(values) == 0 {
		return nil, nil
	}

	ret := make(map[string]interface{}, len(values))

	for key, cv := range values {
		val, err := storage.DecodeValue(cv.V, cv.T)
		if err != nil {
			return nil, err
		}
		ret[key] = val
	}

	return ret, nil
}

/*
appendRecord serializes a journal record and appends it to the changes
journal. The write participates in the ambient storage transaction.
*/
func (gm *Manager) appendRecord(rec *changeRecord) error {
	rec.Time = time.Now().UTC().Format(time.RFC3339)

	bytes, err := json.Marshal(rec)
	if err != nil {
		return &util.GraphError{Type: util.ErrInvalidData,
			Detail: fmt.Sprintf("cannot serialize change record: %v", err)}
	}

	return gm.gs.AppendChange(string(bytes))
}

/*
journalCreate records the creation of an entity. The row parameter carries
the structural edge columns and is nil for nodes.
*/
func (gm *Manager) journalCreate(kind string, id uint64,
	props map[string]interface{}, row *storage.EdgeRow, batch string) error {

	if !gm.journal {
		return nil
	}

	add, err := encodeChangeValues(props)
	if err != nil {
		return err
	}

	rec := &changeRecord{ID: id, Kind: kind, Op: opCreate, Batch: batch, Add: add}
	if row != nil {
		rec.Source = row.Source
		rec.Target = row.Target
		rec.Label = row.Label
	}

	return gm.appendRecord(rec)
}

/*
journalDelete records the deletion of an entity together with its last
property values so an undo can restore it.
*/
func (gm *Manager) journalDelete(kind string, id uint64,
	props map[string]interface{}, row *storage.EdgeRow, batch string) error {

	if !gm.journal {
		return nil
	}

	remove, err := encodeChangeValues(props)
	if err != nil {
		return err
	}

	rec := &changeRecord{ID: id, Kind: kind, Op: opDelete, Batch: batch, Remove: remove}
	if row != nil {
		rec.Source = row.Source
		rec.Target = row.Target
		rec.Label = row.Label
	}

	return gm.appendRecord(rec)
}

/*
journalUpdate records a property update. The add map holds the new values
of set keys, the old map the previous values of keys which existed before
(overwritten or removed).
*/
func (gm *Manager) journalUpdate(kind string, id uint64,
	add map[string]interface{}, old map[string]interface{}) error {

	if !gm.journal {
		return nil
	}

	addEnc, err := encodeChangeValues(add)
	if err != nil {
		return err
	}

	oldEnc, err := encodeChangeValues(old)
	if err != nil {
		return err
	}

	return gm.appendRecord(&changeRecord{ID: id, Kind: kind, Op: opUpdate,
		Add: addEnc, Remove: oldEnc})
}

/*
ChangeCount returns the number of entries in the change journal.
*/
func (gm *Manager) ChangeCount() (uint64, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	return gm.gs.ChangeCount()
}

/*
ClearChanges removes all entries from the change journal. Undo is not
possible beyond this point.
*/
func (gm *Manager) ClearChanges() error {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	return gm.gs.ClearChanges()
}

/*
Undo reverts the most recent change of the graph and removes it from the
journal. If the change was part of a multi-entity operation (e.g. a
cascading delete) the whole batch is reverted in a single transaction.
The number of reverted changes is returned; 0 means the journal was
empty.
*/
func (gm *Manager) Undo() (int, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	last, found, err := gm.gs.LastChange()
	if err != nil {
		return 0, err
	} else if !found {
		return 0, nil
	}

	var lastRec changeRecord
	if err := json.Unmarshal([]byte(last.Change), &lastRec); err != nil {
		return 0, &util.GraphError{Type: util.ErrInvalidData,
			Detail: fmt.Sprintf("cannot parse change record %v: %v", last.ID, err)}
	}

	rows := []storage.ChangeRow{last}

	if lastRec.Batch != "" {
		if rows, err = gm.gs.ChangesInBatch(lastRec.Batch); err != nil {
			return 0, err
		}
	}

	if err := gm.gs.Begin(); err != nil {
		return 0, err
	}

	touched := make([]uint64, 0, len(rows))

	// Revert in reverse insertion order so structural dependencies
	// (edges before their deleted endpoints) are restored correctly.

	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]

		var rec changeRecord
		if err = json.Unmarshal([]byte(row.Change), &rec); err != nil {
			err = &util.GraphError{Type: util.ErrInvalidData,
				Detail: fmt.Sprintf("cannot parse change record %v: %v", row.ID, err)}
			break
		}

		touched = append(touched, rec.ID)

		if err = gm.revertChange(&rec); err != nil {
			break
		}

		if err = gm.gs.DeleteChange(row.ID); err != nil {
			break
		}
	}

	if err = gm.finishOp(err, touched...); err != nil {
		return 0, err
	}

	gm.evictAll(touched)

	return len(rows), nil
}

/*
revertChange applies the inverse of a single journal record within the
ambient transaction.
*/
func (gm *Manager) revertChange(rec *changeRecord) error {

	switch rec.Op {

	case opCreate:
		if rec.Kind == kindEdge {
			return gm.gs.DeleteEdge(rec.ID)
		}
		return gm.gs.DeleteNode(rec.ID)

	case opDelete:
		props, err := decodeChangeValues(rec.Remove)
		if err != nil {
			return err
		}
		if rec.Kind == kindEdge {
			return gm.gs.InsertEdge(rec.ID, rec.Source, rec.Target, rec.Label, props)
		}
		return gm.gs.InsertNode(rec.ID, props)

	case opUpdate:
		merge, err := decodeChangeValues(rec.Remove)
		if err != nil {
			return err
		}

		var remove []string
		for key := range rec.Add {
			if _, ok := rec.Remove[key]; !ok {
				remove = append(remove, key)
			}
		}

		return gm.gs.UpdateProperties(rec.ID, merge, remove)
	}

	return &util.GraphError{Type: util.ErrInvalidData,
		Detail: fmt.Sprintf("unknown change operation: %v", rec.Op)}
}
