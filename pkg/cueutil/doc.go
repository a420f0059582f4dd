// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates configuration data against an embedded CUE
// schema and decodes the result.
//
// Data can come from CUE source (ParseAndDecode) or from an already decoded
// Go value such as a parsed TOML document (EncodeAndDecode). Both paths
// unify the data with a schema definition and report failures with the
// offending field path:
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[map[string]any](schema, data, "#Config",
//	    cueutil.WithFilename("config.cue"))
package cueutil
