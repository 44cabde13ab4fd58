package header

import (
	"github.com/marmos91/jnrrd/pkg/jsonval"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Core field names with meaning to the codec. Any other colon-free key is a
// passthrough field carried in the store untouched.
const (
	FieldMagic           = "jnrrd"
	FieldType            = "type"
	FieldDimension       = "dimension"
	FieldSizes           = "sizes"
	FieldEncoding        = "encoding"
	FieldEndian          = "endian"
	FieldSpacings        = "spacings"
	FieldSpace           = "space"
	FieldSpaceDirections = "space_directions"
	FieldSpaceOrigin     = "space_origin"
	FieldDataFile        = "data_file"
	FieldLineSkip        = "line_skip"
	FieldByteSkip        = "byte_skip"
	FieldExtensions      = "extensions"
)

// Version is the JNRRD format version the writer emits.
const Version = "0004"

// Header owns the parsed core fields and the per-namespace extension trees.
//
// It is populated once (by Parse during decode, or field by field during
// encode) and then consumed by the geometry resolver, the payload codec, and
// the writer. It is not safe for concurrent use.
type Header struct {
	fields *orderedmap.OrderedMap[string, *jsonval.Value]
	ext    *orderedmap.OrderedMap[string, *jsonval.Value]

	// sourcePath is the header file's path, or "" when the header came from
	// a non-file stream. Detached payload resolution requires it.
	sourcePath string

	// payloadStart is the byte offset of the attached payload in the header
	// file.
	payloadStart int64
}

// New creates an empty header store.
func New() *Header {
	return &Header{
		fields: orderedmap.New[string, *jsonval.Value](),
		ext:    orderedmap.New[string, *jsonval.Value](),
	}
}

// Set stores a core field, overwriting any previous value while keeping the
// field's original position.
func (h *Header) Set(name string, v *jsonval.Value) {
	h.fields.Set(name, v)
}

// Get returns a core field value.
func (h *Header) Get(name string) (*jsonval.Value, bool) {
	return h.fields.Get(name)
}

// Has reports whether a core field is present.
func (h *Header) Has(name string) bool {
	_, ok := h.fields.Get(name)
	return ok
}

// Range calls fn for every core field in store order, stopping early when fn
// returns false.
func (h *Header) Range(fn func(name string, v *jsonval.Value) bool) {
	for pair := h.fields.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Len returns the number of core fields.
func (h *Header) Len() int {
	return h.fields.Len()
}

// Extension returns the tree for a namespace.
func (h *Header) Extension(ns string) (*jsonval.Value, bool) {
	return h.ext.Get(ns)
}

// SetExtension replaces the whole tree for a namespace.
func (h *Header) SetExtension(ns string, tree *jsonval.Value) {
	h.ext.Set(ns, tree)
}

// Namespaces returns the extension namespaces in first-seen order.
func (h *Header) Namespaces() []string {
	out := make([]string, 0, h.ext.Len())
	for pair := h.ext.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// SourcePath returns the header file's path, or "" for stream sources.
func (h *Header) SourcePath() string {
	return h.sourcePath
}

// SetSourcePath records the header file's path.
func (h *Header) SetSourcePath(path string) {
	h.sourcePath = path
}

// PayloadStart returns the byte offset of the attached payload within the
// header file.
func (h *Header) PayloadStart() int64 {
	return h.payloadStart
}

// SetPayloadStart records the attached payload offset.
func (h *Header) SetPayloadStart(off int64) {
	h.payloadStart = off
}
