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
	"github.com/graveldb/graveldb/config"
	"github.com/graveldb/graveldb/storage"
)

/*
NewManagerFromConfig creates a graph manager with a store built according
to the loaded configuration. The default configuration is loaded if no
configuration is present.
*/
func NewManagerFromConfig() (*Manager, error) {
	gs, err := storage.NewStoreFromConfig()
	if err != nil {
		return nil, err
	}

	gm := NewManager(gs)
	gm.SetChangeJournal(config.Bool(config.EnableChangeJournal))

	return gm, nil
}
