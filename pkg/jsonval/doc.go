// Package jsonval provides the dynamic JSON value type used throughout the
// JNRRD codec.
//
// JNRRD headers are sequences of one-line JSON objects whose field order is
// significant for round-tripping, so this package models JSON as a tagged
// union {null, bool, number, string, array, object} with insertion-ordered
// object keys. Numbers keep their literal source text so serializing a parsed
// header does not reformat values (1.50 stays 1.50, not 1.5).
package jsonval
