package jnrrd

import (
	"bytes"

	"github.com/marmos91/jnrrd/pkg/format"
	"github.com/marmos91/jnrrd/pkg/header"
	"github.com/marmos91/jnrrd/pkg/image"
	"github.com/marmos91/jnrrd/pkg/jsonval"
)

func init() {
	format.Register(&format.Codec{
		Name:       "jnrrd",
		Extensions: []string{".jnrrd", ".jnhdr"},
		CanRead:    CanRead,
		Read:       ReadFile,
		Write: func(path string, img *image.Image) error {
			return WriteFile(path, img, nil)
		},
	})
}

// CanRead reports whether the leading bytes of a file look like a JNRRD
// header: a first line holding a single-key JSON object keyed by the
// magic field.
func CanRead(prefix []byte) bool {
	line, _, found := bytes.Cut(prefix, []byte{'\n'})
	if !found && len(prefix) >= format.SniffLen {
		// A header line longer than the sniff window cannot be judged.
		return false
	}
	v, err := jsonval.ParseLine(bytes.TrimRight(line, "\r"))
	if err != nil || v.Kind() != jsonval.KindObject || v.Len() != 1 {
		return false
	}
	_, ok := v.Field(header.FieldMagic)
	return ok
}
