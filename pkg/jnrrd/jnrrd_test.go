package jnrrd

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/jnrrd/pkg/format"
	"github.com/marmos91/jnrrd/pkg/image"
	"github.com/marmos91/jnrrd/pkg/payload"
)

// ============================================================================
// Reading
// ============================================================================

func TestRead_MinimalAttached(t *testing.T) {
	t.Parallel()

	stream := strings.Join([]string{
		`{"jnrrd":"0004"}`,
		`{"type":"uint8"}`,
		`{"dimension":2}`,
		`{"sizes":[2,2]}`,
	}, "\n") + "\n\n\x0a\x14\x1e\x28"

	img, err := Read(strings.NewReader(stream))
	require.NoError(t, err)

	assert.Equal(t, image.UInt8, img.Type)
	assert.Equal(t, []int{2, 2}, img.Sizes)
	assert.Equal(t, []byte{10, 20, 30, 40}, img.Data)
	assert.Equal(t, []float64{1, 1}, img.Spacing)
	assert.Equal(t, []float64{0, 0}, img.Origin)
}

func TestRead_MissingRequiredField(t *testing.T) {
	t.Parallel()

	stream := `{"jnrrd":"0004"}` + "\n" + `{"type":"uint8"}` + "\n\n"
	_, err := Read(strings.NewReader(stream))
	assert.Error(t, err)
}

func TestRead_BlockTypeRejected(t *testing.T) {
	t.Parallel()

	stream := strings.Join([]string{
		`{"jnrrd":"0004"}`,
		`{"type":"block"}`,
		`{"dimension":1}`,
		`{"sizes":[4]}`,
	}, "\n") + "\n\n"

	_, err := Read(strings.NewReader(stream))
	assert.ErrorIs(t, err, image.ErrUnknownType)
}

func TestRead_StreamWithDetachedPayload(t *testing.T) {
	t.Parallel()

	stream := strings.Join([]string{
		`{"jnrrd":"0004"}`,
		`{"type":"uint8"}`,
		`{"dimension":1}`,
		`{"sizes":[4]}`,
		`{"data_file":"payload.raw"}`,
	}, "\n") + "\n"

	_, err := Read(strings.NewReader(stream))
	assert.ErrorIs(t, err, payload.ErrFileAccess)
}

func TestReadHeader(t *testing.T) {
	t.Parallel()

	h, err := ReadHeader(strings.NewReader(strings.Join([]string{
		`{"jnrrd":"0004"}`,
		`{"type":"int16"}`,
		`{"dimension":1}`,
		`{"sizes":[8]}`,
	}, "\n") + "\n"))
	require.NoError(t, err)

	typ, err := h.Type()
	require.NoError(t, err)
	assert.Equal(t, "int16", typ)
}

// ============================================================================
// Round trips
// ============================================================================

func newTestImage(t *testing.T, typ image.SampleType, sizes ...int) *image.Image {
	t.Helper()
	img, err := image.New(typ, sizes...)
	require.NoError(t, err)
	for i := range img.Data {
		img.Data[i] = byte(i*7 + 3)
	}
	return img
}

func TestWriteRead_RoundTripEncodings(t *testing.T) {
	t.Parallel()

	for _, enc := range []string{"raw", "gzip", "bzip2", "zstd", "lz4", "hex", "ascii"} {
		enc := enc
		t.Run(enc, func(t *testing.T) {
			t.Parallel()

			img := newTestImage(t, image.UInt16, 4, 3)
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, img, &Options{Encoding: enc}))

			got, err := Read(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, img.Data, got.Data)
			assert.Equal(t, img.Sizes, got.Sizes)
			assert.Equal(t, img.Type, got.Type)
		})
	}
}

func TestWriteRead_RoundTripEndians(t *testing.T) {
	t.Parallel()

	for _, endian := range []string{"little", "big"} {
		endian := endian
		t.Run(endian, func(t *testing.T) {
			t.Parallel()

			img := newTestImage(t, image.Float32, 5)
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, img, &Options{Endian: endian}))

			got, err := Read(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, img.Data, got.Data)
		})
	}
}

func TestWriteRead_RoundTripTypes(t *testing.T) {
	t.Parallel()

	types := []image.SampleType{
		image.Int8, image.UInt8, image.Int32, image.UInt64,
		image.Float16, image.Float64, image.Complex64, image.Complex128,
	}
	for _, typ := range types {
		typ := typ
		t.Run(typ.String(), func(t *testing.T) {
			t.Parallel()

			img := newTestImage(t, typ, 3, 2)
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, img, &Options{Encoding: "gzip", Endian: "big"}))

			got, err := Read(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, img.Data, got.Data)
		})
	}
}

func TestWriteRead_Geometry(t *testing.T) {
	t.Parallel()

	img := newTestImage(t, image.UInt8, 2, 2, 2)
	img.Spacing = []float64{2, 3, 4}
	img.Origin = []float64{10, -5, 2.5}
	img.Direction = [3][3]float64{
		{0, -1, 0},
		{1, 0, 0},
		{0, 0, 1},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, img, nil))

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.InDeltaSlice(t, img.Spacing, got.Spacing, 1e-12)
	assert.InDeltaSlice(t, img.Origin, got.Origin, 1e-12)
	for i := 0; i < 3; i++ {
		assert.InDeltaSlice(t, img.Direction[i][:], got.Direction[i][:], 1e-12)
	}
}

func TestWriteRead_Float64Values(t *testing.T) {
	t.Parallel()

	img, err := image.New(image.Float64, 3)
	require.NoError(t, err)
	for i, f := range []float64{math.Pi, -1e300, 0.5} {
		binary.NativeEndian.PutUint64(img.Data[i*8:], math.Float64bits(f))
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, img, &Options{Encoding: "zstd", Endian: "little"}))

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, math.Pi, math.Float64frombits(binary.NativeEndian.Uint64(got.Data[:8])))
}

// ============================================================================
// Metadata and extensions
// ============================================================================

func TestWriteRead_MetadataPassthrough(t *testing.T) {
	t.Parallel()

	img := newTestImage(t, image.UInt8, 2)
	img.SetMeta("modality", "CT")
	img.SetMeta("acquisition", `{"kvp":120,"series":3}`)
	img.SetMeta(ExtMetaPrefix+"mri", `{"sequence":{"name":"T1","flip_angle":15}}`)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, img, nil))

	out := buf.String()
	assert.Contains(t, out, `{"modality":"CT"}`)
	assert.Contains(t, out, `{"mri:sequence.name":"T1"}`)
	assert.Contains(t, out, `{"mri:sequence.flip_angle":15}`)
	assert.Contains(t, out, extensionURLBase+"mri/v1.0.0")

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	modality, ok := got.Meta("modality")
	require.True(t, ok)
	assert.Equal(t, "CT", modality)

	tree, ok := got.Meta(ExtMetaPrefix + "mri")
	require.True(t, ok)
	assert.JSONEq(t, `{"sequence":{"name":"T1","flip_angle":15}}`, tree)
}

func TestWriteRead_ExtensionDeclarationPreserved(t *testing.T) {
	t.Parallel()

	img := newTestImage(t, image.UInt8, 2)
	img.SetMeta("extensions", `{"mri":"https://example.org/mri/v2"}`)
	img.SetMeta(ExtMetaPrefix+"mri", `{"coil":"head"}`)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, img, nil))
	assert.Contains(t, buf.String(), "https://example.org/mri/v2")
	assert.NotContains(t, buf.String(), extensionURLBase)
}

// ============================================================================
// Files and detached payloads
// ============================================================================

func TestWriteFileReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scan.jnrrd")
	img := newTestImage(t, image.Int16, 4, 4)
	require.NoError(t, WriteFile(path, img, &Options{Encoding: "gzip"}))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, img.Data, got.Data)
}

func TestWriteDetached(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	headerPath := filepath.Join(dir, "scan.jnhdr")
	dataPath := filepath.Join(dir, "scan.raw.gz")

	img := newTestImage(t, image.UInt8, 8)
	require.NoError(t, WriteDetached(headerPath, dataPath, img, &Options{Encoding: "gzip"}))

	raw, err := os.ReadFile(headerPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `{"data_file":"scan.raw.gz"}`)

	got, err := ReadFile(headerPath)
	require.NoError(t, err)
	assert.Equal(t, img.Data, got.Data)
}

// ============================================================================
// Format registration
// ============================================================================

func TestFormatRegistration(t *testing.T) {
	t.Parallel()

	codec, err := format.ByName("jnrrd")
	require.NoError(t, err)
	assert.Contains(t, codec.Extensions, ".jnrrd")

	assert.True(t, CanRead([]byte(`{"jnrrd":"0004"}`+"\n")))
	assert.False(t, CanRead([]byte(`{"type":"uint8"}`+"\n")))
	assert.False(t, CanRead([]byte("P5\n64 64\n255\n")))
}

func TestFormat_ByPathAndDetect(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vol.jnrrd")
	img := newTestImage(t, image.UInt8, 4)
	require.NoError(t, WriteFile(path, img, nil))

	codec, err := format.ByPath(path)
	require.NoError(t, err)

	got, err := codec.Read(path)
	require.NoError(t, err)
	assert.Equal(t, img.Data, got.Data)

	prefix, err := os.ReadFile(path)
	require.NoError(t, err)
	if len(prefix) > format.SniffLen {
		prefix = prefix[:format.SniffLen]
	}
	detected, err := format.Detect(prefix)
	require.NoError(t, err)
	assert.Equal(t, "jnrrd", detected.Name)
}
