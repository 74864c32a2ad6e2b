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

import "bytes"

/*
CopyProperties returns a copy of a given property map. Binary values are
copied so the returned map shares no mutable state with the original.
*/
func CopyProperties(props map[string]interface{}) map[string]interface{} {
	ret := make(map[string]interface{}, len(props))

	for key, val := range props {
		if bval, ok := val.([]byte); ok {
			cval := make([]byte, len(bval))
			copy(cval, bval)
			ret[key] = cval
		} else {
			ret[key] = val
		}
	}

	return ret
}

/*
EqualProperties checks if two property maps hold the same keys and values.
*/
func EqualProperties(props1 map[string]interface{}, props2 map[string]interface{}) bool {
	if len(props1) != len(props2) {
		return false
	}

	for key, val1 := range props1 {
		val2, ok := props2[key]
		if !ok {
			return false
		}

		bval1, bok1 := val1.([]byte)
		bval2, bok2 := val2.([]byte)

		if bok1 || bok2 {
			if !bok1 || !bok2 || !bytes.Equal(bval1, bval2) {
				return false
			}
		} else if val1 != val2 {
			return false
		}
	}

	return true
}
