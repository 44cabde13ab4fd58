package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{
		"":      FormatTable,
		"table": FormatTable,
		"JSON":  FormatJSON,
		"yml":   FormatYAML,
		"yaml":  FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestPrintTable(t *testing.T) {
	t.Parallel()

	tbl := NewTable("Field", "Value")
	tbl.AddRow("type", "uint16")
	tbl.AddRow("encoding", "gzip")

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FormatTable, tbl))
	assert.Contains(t, buf.String(), "uint16")
	assert.Contains(t, buf.String(), "gzip")
}

func TestPrintJSONAndYAML(t *testing.T) {
	t.Parallel()

	data := map[string]any{"type": "uint16", "dimension": 3}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FormatJSON, data))
	assert.Contains(t, buf.String(), `"dimension": 3`)

	buf.Reset()
	require.NoError(t, Print(&buf, FormatYAML, data))
	assert.Contains(t, buf.String(), "dimension: 3")
}

func TestPrint_TableNeedsRenderer(t *testing.T) {
	t.Parallel()

	err := Print(&bytes.Buffer{}, FormatTable, map[string]string{})
	assert.Error(t, err)
}
