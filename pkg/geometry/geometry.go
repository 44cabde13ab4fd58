// Package geometry derives the spatial interpretation of a JNRRD header:
// per-axis spacing, origin, and the direction cosine matrix, including the
// conversion from left-posterior-superior headers to the right-anterior-
// superior frame the image container stores.
package geometry

import (
	"math"

	"github.com/marmos91/jnrrd/pkg/header"
	"github.com/marmos91/jnrrd/pkg/jsonval"
)

// spatialAxes caps the number of axes with physical-space meaning. Axes past
// the third (time, channels) carry spacing but no direction column.
const spatialAxes = 3

// Descriptor is the resolved geometry of an image. Spacing and Origin have
// one entry per axis; Direction columns cover only the first
// min(dimension,3) axes and default to identity.
type Descriptor struct {
	Dimension int
	Spacing   []float64
	Origin    []float64
	Direction [3][3]float64
}

// identity returns a descriptor with unit spacing, zero origin, and identity
// direction for the given dimension.
func identity(dim int) *Descriptor {
	d := &Descriptor{
		Dimension: dim,
		Spacing:   make([]float64, dim),
		Origin:    make([]float64, dim),
	}
	for i := range d.Spacing {
		d.Spacing[i] = 1.0
	}
	for i := 0; i < spatialAxes; i++ {
		d.Direction[i][i] = 1.0
	}
	return d
}

// Resolve computes the geometry descriptor from a populated header.
//
// Spacing comes from the spacings field when present, else from the norms of
// the space_directions vectors, else defaults to 1.0. The direction matrix
// comes from normalized space_directions columns. Origin comes from
// space_origin with missing trailing axes defaulting to 0. When the space
// field names an LPS frame, the first two components of every direction
// vector and of the origin are sign-flipped before storage.
func Resolve(h *header.Header) (*Descriptor, error) {
	dim, err := h.Dimension()
	if err != nil {
		return nil, err
	}
	d := identity(dim)

	flip := false
	if space, ok := h.Space(); ok {
		flip = IsLPS(space)
	}

	directions, err := spaceDirections(h, dim)
	if err != nil {
		return nil, err
	}

	spacings, haveSpacings, err := h.FloatArray(header.FieldSpacings)
	if err != nil {
		return nil, err
	}
	switch {
	case haveSpacings:
		if len(spacings) != dim {
			return nil, &header.FieldError{
				Field: header.FieldSpacings,
				Err:   header.ErrDimensionMismatch,
			}
		}
		copy(d.Spacing, spacings)
	case directions != nil:
		for i := 0; i < dim; i++ {
			if n := norm(directions[i]); n > 0 {
				d.Spacing[i] = n
			}
		}
	}

	if directions != nil {
		for i := 0; i < dim && i < spatialAxes; i++ {
			v := directions[i]
			if len(v) == 0 {
				continue // null vector: non-spatial axis, identity column stays
			}
			col := [3]float64{}
			copy(col[:], v)
			if flip {
				col[0] = -col[0]
				col[1] = -col[1]
			}
			if n := norm(col[:]); n > 0 {
				for j := 0; j < spatialAxes; j++ {
					d.Direction[j][i] = col[j] / n
				}
			}
		}
	}

	origin, haveOrigin, err := originField(h)
	if err != nil {
		return nil, err
	}
	if haveOrigin {
		for i := 0; i < dim && i < len(origin); i++ {
			val := origin[i]
			if flip && i < 2 {
				val = -val
			}
			d.Origin[i] = val
		}
	}

	return d, nil
}

// Apply writes the geometry fields of an encode-direction header:
// space_directions (direction column scaled by spacing per spatial axis,
// null for non-spatial axes), spacings, and space_origin. The descriptor is
// assumed to already be in the frame named by the header's space field.
func Apply(d *Descriptor, h *header.Header) {
	dirs := jsonval.Array()
	spatial := d.Dimension
	if spatial > spatialAxes {
		spatial = spatialAxes
	}
	for i := 0; i < d.Dimension; i++ {
		if i >= spatial {
			dirs.Append(jsonval.Null())
			continue
		}
		vec := jsonval.Array()
		for j := 0; j < spatial; j++ {
			vec.Append(jsonval.Float(d.Direction[j][i] * d.Spacing[i]))
		}
		dirs.Append(vec)
	}
	h.Set(header.FieldSpaceDirections, dirs)
	h.Set(header.FieldSpacings, jsonval.FloatsToArray(d.Spacing))
	h.Set(header.FieldSpaceOrigin, jsonval.FloatsToArray(d.Origin))
}

// IsLPS reports whether a space name denotes the left-posterior-superior
// frame.
func IsLPS(space string) bool {
	switch space {
	case "left-posterior-superior", "left_posterior_superior", "LPS":
		return true
	default:
		return false
	}
}

// spaceDirections reads the space_directions field as one vector per axis.
// A null element yields an empty vector (non-spatial axis).
func spaceDirections(h *header.Header, dim int) ([][]float64, error) {
	v, ok := h.Get(header.FieldSpaceDirections)
	if !ok {
		return nil, nil
	}
	if v.Kind() != jsonval.KindArray {
		return nil, &header.FieldError{
			Field:  header.FieldSpaceDirections,
			Detail: "expected an array of vectors",
			Err:    header.ErrParse,
		}
	}
	if v.Len() != dim {
		return nil, &header.FieldError{
			Field: header.FieldSpaceDirections,
			Err:   header.ErrDimensionMismatch,
		}
	}

	out := make([][]float64, dim)
	for i := 0; i < dim; i++ {
		elem := v.Index(i)
		if elem.IsNull() {
			continue
		}
		vec, ok := elem.FloatArray()
		if !ok {
			return nil, &header.FieldError{
				Field:  header.FieldSpaceDirections,
				Detail: "vector elements must be numbers or null",
				Err:    header.ErrParse,
			}
		}
		out[i] = vec
	}
	return out, nil
}

func originField(h *header.Header) ([]float64, bool, error) {
	return h.FloatArray(header.FieldSpaceOrigin)
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
