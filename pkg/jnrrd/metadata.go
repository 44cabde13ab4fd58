package jnrrd

import (
	"strings"

	"github.com/marmos91/jnrrd/pkg/header"
	"github.com/marmos91/jnrrd/pkg/image"
	"github.com/marmos91/jnrrd/pkg/jsonval"
)

// ExtMetaPrefix prefixes the metadata keys that carry extension trees.
// The key suffix is the extension namespace and the value is the tree
// serialized as JSON.
const ExtMetaPrefix = "jnrrd_ext_"

// extensionURLBase is the registry the writer points namespace
// declarations at when the source image carries none.
const extensionURLBase = "https://jnrrd.org/extensions/"

// structuralFields are consumed by the decoder and never surface as
// image metadata; everything else passes through.
var structuralFields = map[string]bool{
	header.FieldMagic:           true,
	header.FieldType:            true,
	header.FieldDimension:       true,
	header.FieldSizes:           true,
	header.FieldEncoding:        true,
	header.FieldEndian:          true,
	header.FieldSpacings:        true,
	header.FieldSpace:           true,
	header.FieldSpaceDirections: true,
	header.FieldSpaceOrigin:     true,
	header.FieldDataFile:        true,
	header.FieldLineSkip:        true,
	header.FieldByteSkip:        true,
}

// attachMetadata copies passthrough header fields and extension trees
// into the image's metadata dictionary. String fields are stored as
// their plain text, anything else as JSON.
func attachMetadata(h *header.Header, img *image.Image) {
	h.Range(func(name string, v *jsonval.Value) bool {
		if structuralFields[name] {
			return true
		}
		if s, ok := v.AsString(); ok {
			img.SetMeta(name, s)
		} else {
			img.SetMeta(name, string(v.JSON()))
		}
		return true
	})

	for _, ns := range h.Namespaces() {
		if tree, ok := h.Extension(ns); ok {
			img.SetMeta(ExtMetaPrefix+ns, string(tree.JSON()))
		}
	}
}

// applyMetadata routes image metadata back into header fields:
// ExtMetaPrefix keys become extension trees, everything else a
// passthrough core field. Values that parse as JSON keep their
// structure; the rest are written as strings.
func applyMetadata(img *image.Image, h *header.Header) {
	img.RangeMeta(func(key, value string) bool {
		if ns, ok := strings.CutPrefix(key, ExtMetaPrefix); ok {
			if tree, err := jsonval.ParseLine([]byte(value)); err == nil {
				h.SetExtension(ns, tree)
			}
			return true
		}
		if structuralFields[key] {
			return true
		}
		if v, err := jsonval.ParseLine([]byte(value)); err == nil {
			h.Set(key, v)
		} else {
			h.SetString(key, value)
		}
		return true
	})

	declareExtensions(h)
}

// declareExtensions fills the extensions field with a namespace to URL
// mapping covering every extension tree the header carries. Existing
// declarations are kept.
func declareExtensions(h *header.Header) {
	namespaces := h.Namespaces()
	if len(namespaces) == 0 {
		return
	}

	decl, ok := h.Get(header.FieldExtensions)
	if !ok || decl.Kind() != jsonval.KindObject {
		decl = jsonval.Object()
	}
	for _, ns := range namespaces {
		if _, ok := decl.Field(ns); !ok {
			decl.SetField(ns, jsonval.String(extensionURLBase+ns+"/v1.0.0"))
		}
	}
	h.Set(header.FieldExtensions, decl)
}
