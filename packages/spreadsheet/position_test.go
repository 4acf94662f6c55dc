package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionString(t *testing.T) {
	cases := map[string]Position{
		"A1":       {Row: 0, Col: 0},
		"Z1":       {Row: 0, Col: 25},
		"AA1":      {Row: 0, Col: 26},
		"AZ10":     {Row: 9, Col: 51},
		"BA2":      {Row: 1, Col: 52},
		"ZZ1":      {Row: 0, Col: 701},
		"AAA1":     {Row: 0, Col: 702},
		"XFD16384": {Row: MaxRows - 1, Col: MaxCols - 1},
	}

	for text, pos := range cases {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, text, pos.String())
			assert.Equal(t, pos, ParsePosition(text))
		})
	}
}

func TestPositionRoundTrip(t *testing.T) {
	for row := 0; row < MaxRows; row += 97 {
		for col := 0; col < MaxCols; col += 89 {
			pos := Position{Row: row, Col: col}
			if got := ParsePosition(pos.String()); got != pos {
				t.Fatalf("ParsePosition(%q) = %+v, want %+v", pos.String(), got, pos)
			}
		}
	}
}

func TestParsePositionInvalid(t *testing.T) {
	invalid := []string{
		"",
		"A",
		"1",
		"a1",
		"A0",
		"1A",
		"A1A",
		"A-1",
		"A 1",
		" A1",
		"ABCD1",
		"XFE1",
		"A16385",
		"A123456789012345678",
		"A99999999999999999",
		"$A$1",
	}

	for _, text := range invalid {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, NonePosition, ParsePosition(text))
		})
	}
}

func TestPositionValidity(t *testing.T) {
	assert.False(t, NonePosition.IsValid())
	assert.Equal(t, "", NonePosition.String())
	assert.Equal(t, "", Position{Row: MaxRows, Col: 0}.String())
	assert.True(t, Position{Row: 0, Col: 0}.IsValid())

	assert.True(t, Position{Row: 0, Col: 5}.Less(Position{Row: 1, Col: 0}))
	assert.True(t, Position{Row: 1, Col: 0}.Less(Position{Row: 1, Col: 1}))
	assert.False(t, Position{Row: 1, Col: 1}.Less(Position{Row: 1, Col: 1}))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "8", Number(8).String())
	assert.Equal(t, "2.5", Number(2.5).String())
	assert.Equal(t, "0.333333", Number(1.0/3).String())
	assert.Equal(t, "1e+06", Number(1e6).String())
	assert.Equal(t, "-4", Number(-4).String())
	assert.Equal(t, "hello", Text("hello").String())

	assert.Equal(t, "#REF!", NewFormulaError(ErrorCategoryRef).String())
	assert.Equal(t, "#VALUE!", NewFormulaError(ErrorCategoryValue).String())
	assert.Equal(t, "#ARITHM!", NewFormulaError(ErrorCategoryArithmetic).Error())
	assert.Equal(t, NewFormulaError(ErrorCategoryRef), NewFormulaError(ErrorCategoryRef))
	assert.NotEqual(t, NewFormulaError(ErrorCategoryRef), NewFormulaError(ErrorCategoryValue))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", ColumnName(0))
	assert.Equal(t, "AB", ColumnName(27))
	assert.Equal(t, "", ColumnName(-1))
	assert.Equal(t, "", ColumnName(MaxCols))
}
