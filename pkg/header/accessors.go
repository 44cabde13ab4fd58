package header

import "github.com/marmos91/jnrrd/pkg/jsonval"

// DefaultEncoding is assumed when the encoding field is absent.
const DefaultEncoding = "raw"

// Version returns the format version from the magic field.
func (h *Header) Version() (string, error) {
	return h.stringField(FieldMagic)
}

// Type returns the declared sample type string.
func (h *Header) Type() (string, error) {
	return h.stringField(FieldType)
}

// Dimension returns the declared axis count.
func (h *Header) Dimension() (int, error) {
	v, ok := h.Get(FieldDimension)
	if !ok {
		return 0, &FieldError{Field: FieldDimension, Err: ErrMissingField}
	}
	n, ok := v.AsInt()
	if !ok || n < 1 {
		return 0, fieldErr(FieldDimension, ErrParse, "expected a positive integer, got %s", v.JSON())
	}
	return int(n), nil
}

// Sizes returns the per-axis sizes, validated against the declared
// dimension.
func (h *Header) Sizes() ([]int, error) {
	dim, err := h.Dimension()
	if err != nil {
		return nil, err
	}
	v, ok := h.Get(FieldSizes)
	if !ok {
		return nil, &FieldError{Field: FieldSizes, Err: ErrMissingField}
	}
	sizes, ok := v.IntArray()
	if !ok {
		return nil, fieldErr(FieldSizes, ErrParse, "expected an integer array, got %s", v.JSON())
	}
	if len(sizes) != dim {
		return nil, fieldErr(FieldSizes, ErrDimensionMismatch, "expected %d elements, got %d", dim, len(sizes))
	}
	return sizes, nil
}

// Encoding returns the payload encoding name, defaulting to raw.
func (h *Header) Encoding() string {
	v, ok := h.Get(FieldEncoding)
	if !ok {
		return DefaultEncoding
	}
	s, ok := v.AsString()
	if !ok {
		return DefaultEncoding
	}
	return s
}

// Endian returns the declared byte order ("little" or "big") when present.
func (h *Header) Endian() (string, bool) {
	v, ok := h.Get(FieldEndian)
	if !ok {
		return "", false
	}
	s, ok := v.AsString()
	if !ok {
		return "", false
	}
	return s, true
}

// Space returns the declared coordinate space name when present.
func (h *Header) Space() (string, bool) {
	v, ok := h.Get(FieldSpace)
	if !ok {
		return "", false
	}
	s, ok := v.AsString()
	if !ok {
		return "", false
	}
	return s, true
}

// DataFile returns the detached payload path when the header declares one.
func (h *Header) DataFile() (string, bool) {
	v, ok := h.Get(FieldDataFile)
	if !ok {
		return "", false
	}
	s, ok := v.AsString()
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// LineSkip returns the number of lines to discard from a detached data file.
func (h *Header) LineSkip() (int, error) {
	return h.intField(FieldLineSkip)
}

// ByteSkip returns the additional byte offset into the payload source.
func (h *Header) ByteSkip() (int64, error) {
	v, ok := h.Get(FieldByteSkip)
	if !ok {
		return 0, nil
	}
	n, ok := v.AsInt()
	if !ok || n < 0 {
		return 0, fieldErr(FieldByteSkip, ErrParse, "expected a non-negative integer, got %s", v.JSON())
	}
	return n, nil
}

// FloatArray returns an optional float-array field such as spacings or
// space_origin. Present-but-malformed values are an error; absence is not.
func (h *Header) FloatArray(name string) ([]float64, bool, error) {
	v, ok := h.Get(name)
	if !ok {
		return nil, false, nil
	}
	fs, ok := v.FloatArray()
	if !ok {
		return nil, false, fieldErr(name, ErrParse, "expected a numeric array, got %s", v.JSON())
	}
	return fs, true, nil
}

func (h *Header) stringField(name string) (string, error) {
	v, ok := h.Get(name)
	if !ok {
		return "", &FieldError{Field: name, Err: ErrMissingField}
	}
	s, ok := v.AsString()
	if !ok {
		return "", fieldErr(name, ErrParse, "expected a string, got %s", v.JSON())
	}
	return s, nil
}

func (h *Header) intField(name string) (int, error) {
	v, ok := h.Get(name)
	if !ok {
		return 0, nil
	}
	n, ok := v.AsInt()
	if !ok || n < 0 {
		return 0, fieldErr(name, ErrParse, "expected a non-negative integer, got %s", v.JSON())
	}
	return int(n), nil
}

// SetString is a convenience setter for string-valued fields.
func (h *Header) SetString(name, value string) {
	h.Set(name, jsonval.String(value))
}

// SetInt is a convenience setter for integer-valued fields.
func (h *Header) SetInt(name string, value int64) {
	h.Set(name, jsonval.Int(value))
}
