// Package jnrrd reads and writes JNRRD files: a header of JSON lines
// describing a multi-dimensional image, followed by its binary payload,
// either attached after a blank line or detached into a separate data
// file.
package jnrrd

import (
	"github.com/marmos91/jnrrd/pkg/header"
	"github.com/marmos91/jnrrd/pkg/payload"
	"github.com/marmos91/jnrrd/pkg/payload/encoding"
)

// Options control how an image is serialized.
type Options struct {
	// Encoding is the payload encoding name. Defaults to raw.
	Encoding string

	// Endian is the payload byte order, "little" or "big". Defaults to
	// the host order.
	Endian string

	// Level is the compression level for compressed encodings. Zero or
	// negative selects the codec's default.
	Level int
}

func (o *Options) withDefaults() Options {
	out := Options{
		Encoding: header.DefaultEncoding,
		Endian:   payload.NativeEndian(),
		Level:    encoding.DefaultLevel,
	}
	if o == nil {
		return out
	}
	if o.Encoding != "" {
		out.Encoding = o.Encoding
	}
	if o.Endian != "" {
		out.Endian = o.Endian
	}
	if o.Level > 0 {
		out.Level = o.Level
	}
	return out
}
