package header

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/marmos91/jnrrd/pkg/jsonval"
)

// Parse reads header lines from r until the end of the header and returns
// the populated store. The header ends at the first blank line, at the first
// line that is not valid JSON, or at the first JSON value that is not an
// object with exactly one key; the recorded payload start offset is the
// position of that line (or the position immediately after the blank line).
//
// Headers parsed from a plain reader have no source path, so detached
// payloads cannot be resolved for them; use ParseFile for files.
func Parse(r io.Reader) (*Header, error) {
	h := New()
	br := bufio.NewReader(r)

	var offset int64
	for {
		line, readErr := br.ReadBytes('\n')
		lineStart := offset
		offset += int64(len(line))

		if len(line) == 0 {
			// EOF with no further data: the (empty) payload starts here.
			h.payloadStart = offset
			break
		}

		trimmed := bytes.TrimRight(line, "\r\n")
		if len(trimmed) == 0 {
			// Blank separator: payload starts right after it.
			h.payloadStart = offset
			break
		}

		v, err := jsonval.ParseLine(trimmed)
		if err != nil {
			// Not JSON: assume binary data begins at this line.
			h.payloadStart = lineStart
			break
		}

		key, value, ok := singleField(v)
		if !ok {
			h.payloadStart = lineStart
			break
		}

		if err := h.addField(key, value); err != nil {
			return nil, err
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				h.payloadStart = offset
				break
			}
			return nil, fmt.Errorf("reading header: %w", readErr)
		}
	}

	if err := h.validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// ParseFile opens and parses a JNRRD header file, recording the path so
// detached payloads can be resolved relative to it.
func ParseFile(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening header file: %w", err)
	}
	defer func() { _ = f.Close() }()

	h, err := Parse(f)
	if err != nil {
		return nil, err
	}
	h.sourcePath = path
	return h, nil
}

// singleField unwraps a header line value into its one key/value pair.
func singleField(v *jsonval.Value) (string, *jsonval.Value, bool) {
	if v.Kind() != jsonval.KindObject || v.Len() != 1 {
		return "", nil, false
	}
	var key string
	var value *jsonval.Value
	v.Range(func(k string, val *jsonval.Value) bool {
		key, value = k, val
		return false
	})
	return key, value, true
}

// addField routes one accepted header field into the store: keys with a
// namespace separator merge into an extension tree, everything else
// overwrites a core field.
func (h *Header) addField(key string, value *jsonval.Value) error {
	ns, pathStr, isExt := strings.Cut(key, ":")
	if !isExt {
		h.Set(key, value)
		return nil
	}

	if ns == "" {
		return fieldErr(key, ErrParse, "empty extension namespace")
	}
	path, err := ParsePath(pathStr)
	if err != nil {
		return &FieldError{Field: key, Detail: "invalid extension path", Err: ErrParse}
	}
	h.SetPath(ns, path, value)
	return nil
}

// validate enforces required fields and resolves encoding to its default.
func (h *Header) validate() error {
	for _, required := range []string{FieldMagic, FieldType, FieldDimension, FieldSizes} {
		if !h.Has(required) {
			return &FieldError{Field: required, Err: ErrMissingField}
		}
	}
	if !h.Has(FieldEncoding) {
		h.SetString(FieldEncoding, DefaultEncoding)
	}
	return nil
}
