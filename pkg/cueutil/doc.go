// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema and turns
// CUE errors into messages that name the offending field path.
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	values, err := cueutil.ValidateToMap(schema, "#Config", data,
//	    cueutil.WithFilename(path))
//	if err != nil {
//	    return err // "<file>: resolver.strict: conflicting values ..."
//	}
package cueutil
