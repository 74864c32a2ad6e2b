/*
 * GravelDB
 *
 * Copyright 2024 The GravelDB Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package util

import (
	"errors"
	"testing"
)

func TestGraphError(t *testing.T) {
	err := &GraphError{Type: ErrNotFound, Detail: "node 42"}

	if err.Error() != "GraphError: Entity not found (node 42)" {
		t.Error("Unexpected error message:", err.Error())
		return
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("Error should match its type")
		return
	}

	if errors.Is(err, ErrStorage) {
		t.Error("Error should not match a different type")
		return
	}

	err = &GraphError{Type: ErrClosing}

	if err.Error() != "GraphError: Failed to close graph storage" {
		t.Error("Unexpected error message:", err.Error())
		return
	}
}
