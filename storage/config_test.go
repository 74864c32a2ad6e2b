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
	"path/filepath"
	"testing"

	"github.com/graveldb/graveldb/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreFromConfig(t *testing.T) {
	defer func() { config.Config = nil }()

	config.LoadDefaultConfig()
	config.Config[config.MemoryOnlyStorage] = true

	s, err := NewStoreFromConfig()
	require.NoError(t, err)
	assert.Equal(t, MemoryStoreName, s.Name())
	require.NoError(t, s.Close())

	path := filepath.Join(t.TempDir(), "conf.db")

	config.Config[config.MemoryOnlyStorage] = false
	config.Config[config.LocationDatastore] = path
	config.Config[config.BusyTimeoutMilliseconds] = "100"

	s, err = NewStoreFromConfig()
	require.NoError(t, err)
	assert.Equal(t, path, s.Name())
	require.NoError(t, s.Close())
}
