package image

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Image is the host container for decoded pixel data.
//
// Sizes follows the JNRRD axis convention: Sizes[0] is the fastest-varying
// axis of the row-major Data buffer. Spacing and Origin have one entry per
// axis; Direction columns describe how the first min(dimension,3) axes map to
// physical space and default to identity.
type Image struct {
	Type  SampleType
	Sizes []int

	Spacing   []float64
	Origin    []float64
	Direction [3][3]float64

	// Data holds the raw pixel bytes in native byte order. Its length always
	// equals NumBytes(Type, Sizes...).
	Data []byte

	meta *orderedmap.OrderedMap[string, string]
}

// New allocates an image container with identity geometry and a zeroed
// pixel buffer.
func New(t SampleType, sizes ...int) (*Image, error) {
	n, err := NumBytes(t, sizes...)
	if err != nil {
		return nil, err
	}

	img := &Image{
		Type:    t,
		Sizes:   append([]int(nil), sizes...),
		Spacing: make([]float64, len(sizes)),
		Origin:  make([]float64, len(sizes)),
		Data:    make([]byte, n),
		meta:    orderedmap.New[string, string](),
	}
	for i := range img.Spacing {
		img.Spacing[i] = 1.0
	}
	for i := 0; i < 3; i++ {
		img.Direction[i][i] = 1.0
	}
	return img, nil
}

// NumBytes returns the payload size in bytes for a type and axis sizes.
// Unsized types and non-positive axis sizes are rejected.
func NumBytes(t SampleType, sizes ...int) (int, error) {
	if t.Size() == 0 {
		return 0, fmt.Errorf("%w: %s elements have no fixed size", ErrUnknownType, t)
	}
	n := t.Size()
	for i, s := range sizes {
		if s <= 0 {
			return 0, fmt.Errorf("invalid size %d for axis %d", s, i)
		}
		n *= s
	}
	return n, nil
}

// Dimension returns the number of axes.
func (img *Image) Dimension() int {
	return len(img.Sizes)
}

// NumElements returns the total element count.
func (img *Image) NumElements() int {
	n := 1
	for _, s := range img.Sizes {
		n *= s
	}
	return n
}

// SetMeta stores a metadata entry, keeping the key's original position when
// it already exists.
func (img *Image) SetMeta(key, value string) {
	if img.meta == nil {
		img.meta = orderedmap.New[string, string]()
	}
	img.meta.Set(key, value)
}

// Meta returns the metadata entry for key.
func (img *Image) Meta(key string) (string, bool) {
	if img.meta == nil {
		return "", false
	}
	return img.meta.Get(key)
}

// DeleteMeta removes a metadata entry.
func (img *Image) DeleteMeta(key string) {
	if img.meta != nil {
		img.meta.Delete(key)
	}
}

// RangeMeta calls fn for every metadata entry in insertion order, stopping
// early when fn returns false.
func (img *Image) RangeMeta(fn func(key, value string) bool) {
	if img.meta == nil {
		return
	}
	for pair := img.meta.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// MetaLen returns the number of metadata entries.
func (img *Image) MetaLen() int {
	if img.meta == nil {
		return 0
	}
	return img.meta.Len()
}
