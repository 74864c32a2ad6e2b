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
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/graveldb/graveldb/graph/util"
)

/*
Value type tags which are persisted in the vtype column of the properties
table. The tags are part of the schema contract - external tools reading
the database may rely on them.
*/
const (
	TypeString = "str"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
	TypeBinary = "bin"
)

/*
EncodeValue converts a property value into the flat (value, vtype) column
representation. It is a bijection for the supported value types: string,
int64, float64, bool and []byte. Plain int values are accepted and
normalized to int64. Any other type fails with ErrInvalidType - values are
never silently coerced.
*/
func EncodeValue(val interface{}) (string, string, error) {
	switch v := val.(type) {

	case string:
		return v, TypeString, nil

	case int:
		return strconv.FormatInt(int64(v), 10), TypeInt, nil

	case int64:
		return strconv.FormatInt(v, 10), TypeInt, nil

	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), TypeFloat, nil

	case bool:
		return strconv.FormatBool(v), TypeBool, nil

	case []byte:
		return base64.StdEncoding.EncodeToString(v), TypeBinary, nil
	}

	return "", "", &util.GraphError{Type: util.ErrInvalidType,
		Detail: fmt.Sprintf("%T", val)}
}

/*
DecodeValue converts the flat (value, vtype) column representation back
into a property value. It is the inverse of EncodeValue.
*/
func DecodeValue(value string, vtype string) (interface{}, error) {
	var ret interface{}
	var err error

	switch vtype {

	case TypeString:
		ret = value

	case TypeInt:
		ret, err = strconv.ParseInt(value, 10, 64)

	case TypeFloat:
		ret, err = strconv.ParseFloat(value, 64)

	case TypeBool:
		ret, err = strconv.ParseBool(value)

	case TypeBinary:
		ret, err = base64.StdEncoding.DecodeString(value)

	default:
		return nil, &util.GraphError{Type: util.ErrInvalidType,
			Detail: fmt.Sprintf("unknown value type tag: %v", vtype)}
	}

	if err != nil {
		return nil, &util.GraphError{Type: util.ErrInvalidData,
			Detail: fmt.Sprintf("cannot decode %v value: %v", vtype, err)}
	}

	return ret, nil
}
