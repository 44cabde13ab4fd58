// Package image provides the in-memory image container the JNRRD codec
// decodes into and encodes from.
//
// The container owns the raw pixel buffer plus the spatial interpretation of
// the array axes (per-axis size, spacing, origin, and a direction cosine
// matrix) and an ordered string-keyed metadata dictionary. The codec
// populates the dictionary with one entry per header field and one
// JSON-serialized entry per extension namespace; the encoder reads the same
// entries back.
package image
