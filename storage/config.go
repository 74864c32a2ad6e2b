/*
 * GravelDB
 *
 * Copyright 2024 The GravelDB Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package storage

import (
	"fmt"

	"github.com/graveldb/graveldb/config"
	"github.com/graveldb/graveldb/graph/util"
)

/*
NewStoreFromConfig creates a store according to the loaded configuration.
The default configuration is loaded if no configuration is present.
*/
func NewStoreFromConfig() (*SQLiteStore, error) {
	if config.Config == nil {
		config.LoadDefaultConfig()
	}

	if config.Bool(config.MemoryOnlyStorage) {
		return NewMemoryStore()
	}

	s, err := NewDiskStore(config.Str(config.LocationDatastore))
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %v",
		config.Int(config.BusyTimeoutMilliseconds)))
	if err != nil {
		s.Close()
		return nil, &util.GraphError{Type: util.ErrOpening, Detail: err.Error()}
	}

	return s, nil
}
