package header

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/jnrrd/pkg/jsonval"
)

const minimalHeader = `{"jnrrd":"0004"}
{"type":"uint8"}
{"dimension":2}
{"sizes":[2,2]}
`

// ============================================================================
// End-of-header detection
// ============================================================================

func TestParse_BlankLineEndsHeader(t *testing.T) {
	t.Parallel()

	in := minimalHeader + "\n\x0a\x14\x1e\x28"
	h, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	// Payload starts immediately after the blank separator.
	assert.Equal(t, int64(len(minimalHeader)+1), h.PayloadStart())
}

func TestParse_InvalidJSONLineEndsHeader(t *testing.T) {
	t.Parallel()

	in := minimalHeader + "BINARYDATA"
	h, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	// Payload starts at the first byte of the unparsable line.
	assert.Equal(t, int64(len(minimalHeader)), h.PayloadStart())
}

func TestParse_MultiKeyObjectEndsHeader(t *testing.T) {
	t.Parallel()

	in := minimalHeader + `{"a":1,"b":2}` + "\n"
	h, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, int64(len(minimalHeader)), h.PayloadStart())
	assert.False(t, h.Has("a"))
}

func TestParse_NonObjectValueEndsHeader(t *testing.T) {
	t.Parallel()

	in := minimalHeader + "[1,2,3]\n"
	h, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, int64(len(minimalHeader)), h.PayloadStart())
}

func TestParse_EOFEndsHeader(t *testing.T) {
	t.Parallel()

	h, err := Parse(strings.NewReader(minimalHeader))
	require.NoError(t, err)
	assert.Equal(t, int64(len(minimalHeader)), h.PayloadStart())
}

func TestParse_CRLFLines(t *testing.T) {
	t.Parallel()

	in := strings.ReplaceAll(minimalHeader, "\n", "\r\n") + "\r\n"
	h, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	typ, err := h.Type()
	require.NoError(t, err)
	assert.Equal(t, "uint8", typ)
}

// ============================================================================
// Validation and defaults
// ============================================================================

func TestParse_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		drop    string
		missing string
	}{
		{"no magic", `{"jnrrd":"0004"}`, FieldMagic},
		{"no type", `{"type":"uint8"}`, FieldType},
		{"no dimension", `{"dimension":2}`, FieldDimension},
		{"no sizes", `{"sizes":[2,2]}`, FieldSizes},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := strings.ReplaceAll(minimalHeader, tt.drop+"\n", "")
			_, err := Parse(strings.NewReader(in))
			require.ErrorIs(t, err, ErrMissingField)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.missing, fe.Field)
		})
	}
}

func TestParse_EncodingDefaultsToRaw(t *testing.T) {
	t.Parallel()

	h, err := Parse(strings.NewReader(minimalHeader))
	require.NoError(t, err)
	assert.Equal(t, "raw", h.Encoding())
	assert.True(t, h.Has(FieldEncoding))
}

func TestParse_DuplicateCoreFieldOverwrites(t *testing.T) {
	t.Parallel()

	in := minimalHeader + `{"content":"first"}` + "\n" + `{"content":"second"}` + "\n"
	h, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	v, ok := h.Get("content")
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "second", s)
}

func TestParse_DataFileRecorded(t *testing.T) {
	t.Parallel()

	in := minimalHeader + `{"data_file":"volume.raw"}` + "\n"
	h, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	df, ok := h.DataFile()
	require.True(t, ok)
	assert.Equal(t, "volume.raw", df)
}

// ============================================================================
// Extension fields
// ============================================================================

func TestParse_ExtensionFieldsBuildTree(t *testing.T) {
	t.Parallel()

	in := minimalHeader +
		`{"dicom:patient.name":"DOE^JOHN"}` + "\n" +
		`{"dicom:patient.age":63}` + "\n" +
		`{"dicom:series[1].uid":"1.2.3"}` + "\n"
	h, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	tree, ok := h.Extension("dicom")
	require.True(t, ok)

	patient, ok := tree.Field("patient")
	require.True(t, ok)
	name, _ := patient.Field("name")
	s, _ := name.AsString()
	assert.Equal(t, "DOE^JOHN", s)

	series, ok := tree.Field("series")
	require.True(t, ok)
	require.Equal(t, 2, series.Len())
	assert.True(t, series.Index(0).IsNull(), "gap before index 1 is null-filled")
}

func TestParse_ExtensionFieldBadPath(t *testing.T) {
	t.Parallel()

	in := minimalHeader + `{"meta:a..b":1}` + "\n"
	_, err := Parse(strings.NewReader(in))
	require.ErrorIs(t, err, ErrParse)
}

// ============================================================================
// Typed accessors
// ============================================================================

func TestSizes_DimensionMismatch(t *testing.T) {
	t.Parallel()

	in := `{"jnrrd":"0004"}` + "\n" +
		`{"type":"uint8"}` + "\n" +
		`{"dimension":3}` + "\n" +
		`{"sizes":[2,2]}` + "\n"
	h, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	_, err = h.Sizes()
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSizes_AllDimensions(t *testing.T) {
	t.Parallel()

	for dim := 1; dim <= 6; dim++ {
		var b strings.Builder
		b.WriteString(`{"jnrrd":"0004"}` + "\n" + `{"type":"uint8"}` + "\n")
		b.WriteString(jsonIntLine("dimension", dim))
		b.WriteString(`{"sizes":[`)
		for i := 0; i < dim; i++ {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString("2")
		}
		b.WriteString("]}\n")

		h, err := Parse(strings.NewReader(b.String()))
		require.NoError(t, err)

		sizes, err := h.Sizes()
		require.NoError(t, err)
		assert.Len(t, sizes, dim)
	}
}

func jsonIntLine(key string, v int) string {
	obj := jsonval.Object()
	obj.SetField(key, jsonval.Int(int64(v)))
	return string(obj.JSON()) + "\n"
}

// ============================================================================
// ParseFile
// ============================================================================

func TestParseFile_RecordsSourcePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.jnrrd")
	require.NoError(t, os.WriteFile(path, []byte(minimalHeader+"\n\x01\x02\x03\x04"), 0o644))

	h, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, h.SourcePath())
}

func TestParseFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.jnrrd"))
	assert.Error(t, err)
}
