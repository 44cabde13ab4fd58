package geometry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/jnrrd/pkg/header"
)

func parseHeader(t *testing.T, extra ...string) *header.Header {
	t.Helper()

	lines := []string{
		`{"jnrrd":"0004"}`,
		`{"type":"float32"}`,
		`{"dimension":3}`,
		`{"sizes":[4,4,4]}`,
	}
	lines = append(lines, extra...)
	h, err := header.Parse(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	return h
}

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	d, err := Resolve(parseHeader(t))
	require.NoError(t, err)

	assert.Equal(t, 3, d.Dimension)
	assert.Equal(t, []float64{1, 1, 1}, d.Spacing)
	assert.Equal(t, []float64{0, 0, 0}, d.Origin)
	assert.Equal(t, 1.0, d.Direction[0][0])
	assert.Equal(t, 0.0, d.Direction[1][0])
	assert.Equal(t, 1.0, d.Direction[2][2])
}

func TestResolve_SpacingsField(t *testing.T) {
	t.Parallel()

	d, err := Resolve(parseHeader(t, `{"spacings":[0.5,0.5,2.0]}`))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, 2.0}, d.Spacing)
}

func TestResolve_SpacingsLengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := Resolve(parseHeader(t, `{"spacings":[1.0,1.0]}`))
	assert.ErrorIs(t, err, header.ErrDimensionMismatch)
}

func TestResolve_SpacingFromDirectionNorms(t *testing.T) {
	t.Parallel()

	d, err := Resolve(parseHeader(t, `{"space_directions":[[3,0,0],[0,4,0],[0,0,0.5]]}`))
	require.NoError(t, err)

	assert.InDelta(t, 3.0, d.Spacing[0], 1e-12)
	assert.InDelta(t, 4.0, d.Spacing[1], 1e-12)
	assert.InDelta(t, 0.5, d.Spacing[2], 1e-12)

	// Columns are normalized.
	assert.InDelta(t, 1.0, d.Direction[0][0], 1e-12)
	assert.InDelta(t, 1.0, d.Direction[1][1], 1e-12)
	assert.InDelta(t, 1.0, d.Direction[2][2], 1e-12)
}

func TestResolve_ZeroVectorFallsBack(t *testing.T) {
	t.Parallel()

	d, err := Resolve(parseHeader(t, `{"space_directions":[[0,0,0],[0,2,0],[0,0,2]]}`))
	require.NoError(t, err)

	// Zero norm: spacing 1.0 and identity column.
	assert.Equal(t, 1.0, d.Spacing[0])
	assert.Equal(t, 1.0, d.Direction[0][0])
}

func TestResolve_DirectionsLengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := Resolve(parseHeader(t, `{"space_directions":[[1,0,0],[0,1,0]]}`))
	assert.ErrorIs(t, err, header.ErrDimensionMismatch)
}

func TestResolve_LPSFlipsDirectionAndOrigin(t *testing.T) {
	t.Parallel()

	d, err := Resolve(parseHeader(t,
		`{"space":"left-posterior-superior"}`,
		`{"space_directions":[[1,0,0],[0,1,0],[0,0,1]]}`,
		`{"space_origin":[10,20,30]}`,
	))
	require.NoError(t, err)

	assert.Equal(t, -1.0, d.Direction[0][0])
	assert.Equal(t, -1.0, d.Direction[1][1])
	assert.Equal(t, 1.0, d.Direction[2][2])
	assert.Equal(t, []float64{-10, -20, 30}, d.Origin)
}

func TestResolve_RASNotFlipped(t *testing.T) {
	t.Parallel()

	d, err := Resolve(parseHeader(t,
		`{"space":"right-anterior-superior"}`,
		`{"space_directions":[[1,0,0],[0,1,0],[0,0,1]]}`,
		`{"space_origin":[10,20,30]}`,
	))
	require.NoError(t, err)

	assert.Equal(t, 1.0, d.Direction[0][0])
	assert.Equal(t, []float64{10, 20, 30}, d.Origin)
}

func TestResolve_OriginMissingAxesDefaultZero(t *testing.T) {
	t.Parallel()

	d, err := Resolve(parseHeader(t, `{"space_origin":[5]}`))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0, 0}, d.Origin)
}

func TestResolve_NullDirectionVectorIsNonSpatial(t *testing.T) {
	t.Parallel()

	h, err := header.Parse(strings.NewReader(strings.Join([]string{
		`{"jnrrd":"0004"}`,
		`{"type":"float32"}`,
		`{"dimension":4}`,
		`{"sizes":[4,4,4,10]}`,
		`{"space_directions":[[2,0,0],[0,2,0],[0,0,2],null]}`,
	}, "\n") + "\n"))
	require.NoError(t, err)

	d, err := Resolve(h)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 2, 2, 1}, d.Spacing)
}

func TestIsLPS(t *testing.T) {
	t.Parallel()

	assert.True(t, IsLPS("left-posterior-superior"))
	assert.True(t, IsLPS("left_posterior_superior"))
	assert.True(t, IsLPS("LPS"))
	assert.False(t, IsLPS("right-anterior-superior"))
	assert.False(t, IsLPS("lps"))
}

func TestApply_InverseOfResolve(t *testing.T) {
	t.Parallel()

	orig, err := Resolve(parseHeader(t,
		`{"space_directions":[[3,0,0],[0,4,0],[0,0,0.5]]}`,
		`{"space_origin":[1,2,3]}`,
	))
	require.NoError(t, err)

	out := header.New()
	out.SetString(header.FieldMagic, header.Version)
	out.SetString(header.FieldType, "float32")
	out.SetInt(header.FieldDimension, 3)
	Apply(orig, out)

	spacings, present, err := out.FloatArray(header.FieldSpacings)
	require.NoError(t, err)
	require.True(t, present)
	assert.InDeltaSlice(t, orig.Spacing, spacings, 1e-12)

	dirs, ok := out.Get(header.FieldSpaceDirections)
	require.True(t, ok)
	vec0, ok := dirs.Index(0).FloatArray()
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{3, 0, 0}, vec0, 1e-12)
}

func TestApply_NonSpatialAxesAreNull(t *testing.T) {
	t.Parallel()

	d := &Descriptor{
		Dimension: 4,
		Spacing:   []float64{1, 1, 1, 1},
		Origin:    []float64{0, 0, 0, 0},
	}
	for i := 0; i < 3; i++ {
		d.Direction[i][i] = 1
	}

	h := header.New()
	Apply(d, h)

	dirs, ok := h.Get(header.FieldSpaceDirections)
	require.True(t, ok)
	require.Equal(t, 4, dirs.Len())
	assert.True(t, dirs.Index(3).IsNull())
}
