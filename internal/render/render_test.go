package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

func newSheet(t *testing.T) *spreadsheet.Sheet {
	t.Helper()
	s := spreadsheet.NewSheet()
	require.NoError(t, s.SetCell(spreadsheet.ParsePosition("A1"), "2"))
	require.NoError(t, s.SetCell(spreadsheet.ParsePosition("B2"), "=A1*21"))
	return s
}

func TestRenderTSV(t *testing.T) {
	s := newSheet(t)

	var values, texts bytes.Buffer
	require.NoError(t, Render(&values, s, ModeValues, Options{Format: FormatTSV}))
	require.NoError(t, Render(&texts, s, ModeTexts, Options{Format: FormatTSV}))

	assert.Equal(t, "2\t\n\t42\n", values.String())
	assert.Equal(t, "2\t\n\t=A1*21\n", texts.String())
}

func TestRenderTable(t *testing.T) {
	s := newSheet(t)
	require.NoError(t, s.SetCell(spreadsheet.ParsePosition("C1"), "=1/0"))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s, ModeValues, Options{Format: FormatTable}))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top border, header, separator, two rows, bottom border
	require.Len(t, lines, 6)
	for _, want := range []string{"A", "B", "C", "42", "#ARITHM!"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, lines[3], "1")
	assert.Contains(t, lines[4], "2")
}

func TestParseModeAndFormat(t *testing.T) {
	mode, err := ParseMode("texts")
	require.NoError(t, err)
	assert.Equal(t, ModeTexts, mode)

	_, err = ParseMode("formulas")
	assert.Error(t, err)

	format, err := ParseFormat("table")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, format)

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}
