package image

import (
	"errors"
	"fmt"
)

// ErrUnknownType indicates a sample type string outside the JNRRD vocabulary,
// or a vocabulary type that cannot back a pixel buffer (block).
var ErrUnknownType = errors.New("unknown sample type")

// SampleType identifies the element type of the pixel buffer.
type SampleType int

const (
	Int8 SampleType = iota
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float16
	BFloat16
	Float32
	Float64
	Complex64
	Complex128
	// Block is opaque per-element data with no fixed size. It is part of the
	// JNRRD type vocabulary and parses, but the codec cannot size a buffer
	// for it and rejects reads and writes.
	Block
)

// sampleTypeInfo describes one vocabulary entry. size is the element size in
// bytes (0 when unsized); swap is the width of the words swapped during
// endianness correction, which differs from size for complex types (two
// independently-swapped components per element).
type sampleTypeInfo struct {
	name string
	size int
	swap int
}

var sampleTypes = map[SampleType]sampleTypeInfo{
	Int8:       {"int8", 1, 1},
	UInt8:      {"uint8", 1, 1},
	Int16:      {"int16", 2, 2},
	UInt16:     {"uint16", 2, 2},
	Int32:      {"int32", 4, 4},
	UInt32:     {"uint32", 4, 4},
	Int64:      {"int64", 8, 8},
	UInt64:     {"uint64", 8, 8},
	Float16:    {"float16", 2, 2},
	BFloat16:   {"bfloat16", 2, 2},
	Float32:    {"float32", 4, 4},
	Float64:    {"float64", 8, 8},
	Complex64:  {"complex64", 8, 4},
	Complex128: {"complex128", 16, 8},
	Block:      {"block", 0, 1},
}

var sampleTypeNames = func() map[string]SampleType {
	m := make(map[string]SampleType, len(sampleTypes))
	for st, info := range sampleTypes {
		m[info.name] = st
	}
	return m
}()

// ParseSampleType maps a JNRRD type string to its SampleType.
func ParseSampleType(name string) (SampleType, error) {
	st, ok := sampleTypeNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return st, nil
}

// String returns the JNRRD type string.
func (t SampleType) String() string {
	if info, ok := sampleTypes[t]; ok {
		return info.name
	}
	return fmt.Sprintf("SampleType(%d)", int(t))
}

// Size returns the element size in bytes, or 0 for unsized types.
func (t SampleType) Size() int {
	return sampleTypes[t].size
}

// SwapWidth returns the byte width of the words swapped during endianness
// correction. Complex elements swap per component, not per element.
func (t SampleType) SwapWidth() int {
	return sampleTypes[t].swap
}

// IsComplex reports whether the type holds complex elements.
func (t SampleType) IsComplex() bool {
	return t == Complex64 || t == Complex128
}

// IsFloat reports whether the type holds (real) floating-point elements.
func (t SampleType) IsFloat() bool {
	switch t {
	case Float16, BFloat16, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether the type holds signed integer elements.
func (t SampleType) IsSigned() bool {
	switch t {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether the type holds unsigned integer elements.
func (t SampleType) IsUnsigned() bool {
	switch t {
	case UInt8, UInt16, UInt32, UInt64:
		return true
	default:
		return false
	}
}
