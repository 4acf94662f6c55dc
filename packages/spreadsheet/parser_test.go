package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapView is a GridView backed by a plain map
type mapView map[string]Value

func (m mapView) CellValue(pos Position) (Value, bool) {
	v, ok := m[pos.String()]
	return v, ok
}

func TestParserBasicFormulas(t *testing.T) {
	validFormulas := []string{
		"1+2",
		"A1",
		"-A1",
		"+1",
		"--1",
		"(A1+B2)*C3",
		"1.5e3/ZZ9",
		".5",
		"1.",
		" 1 + 2 ",
		"ZZZZ1",
		"2*-3",
	}

	for _, formula := range validFormulas {
		t.Run(formula, func(t *testing.T) {
			_, err := ParseFormula(formula)
			assert.NoError(t, err)
		})
	}
}

func TestParserInvalidFormulas(t *testing.T) {
	invalidFormulas := []string{
		"",
		" ",
		"1+",
		"*1",
		"(1",
		"1)",
		"()",
		"1 2",
		"A1 B1",
		"a1",
		"A",
		"SUM(A1)",
		"A1:B2",
		`"text"`,
		"1+#",
	}

	for _, formula := range invalidFormulas {
		t.Run(formula, func(t *testing.T) {
			_, err := ParseFormula(formula)
			assert.Error(t, err)
		})
	}
}

func TestFormulaExpression(t *testing.T) {
	cases := map[string]string{
		"1+2":         "1+2",
		" 1 + 2 ":     "1+2",
		"(1+2)*3":     "(1+2)*3",
		"1+(2*3)":     "1+2*3",
		"1+(2+3)":     "1+2+3",
		"1-(2-3)":     "1-(2-3)",
		"1-(2+3)":     "1-(2+3)",
		"(1-2)-3":     "1-2-3",
		"8/(4/2)":     "8/(4/2)",
		"2*(3/4)":     "2*3/4",
		"-(1+2)":      "-(1+2)",
		"-(A1)":       "-A1",
		"((((A1))))":  "A1",
		"1.50":        "1.5",
		"1e3":         "1000",
		"+(2*3)":      "+(2*3)",
		"(1+2)/(3-4)": "(1+2)/(3-4)",
	}

	for input, expected := range cases {
		t.Run(input, func(t *testing.T) {
			formula, err := ParseFormula(input)
			require.NoError(t, err)
			assert.Equal(t, expected, formula.Expression())

			// canonical text must parse back to itself
			again, err := ParseFormula(formula.Expression())
			require.NoError(t, err)
			assert.Equal(t, expected, again.Expression())
		})
	}
}

func TestFormulaReferencedCells(t *testing.T) {
	formula, err := ParseFormula("C3+A1*B2-A1+ZZZZ1")
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "B2", "C3"}, positionStrings(formula.ReferencedCells()))

	formula, err = ParseFormula("1+2")
	require.NoError(t, err)
	assert.Empty(t, formula.ReferencedCells())
}

func TestFormulaEvaluate(t *testing.T) {
	view := mapView{
		"A1": Number(4),
		"A2": Text("2.5"),
		"A3": Text(""),
		"A4": Text("abc"),
		"A5": NewFormulaError(ErrorCategoryValue),
		"A6": Text("inf"),
		"A7": Text("0x10"),
		"A8": Text("1e400"),
	}

	cases := []struct {
		formula  string
		expected Value
	}{
		{"1+2*3", Number(7)},
		{"(1+2)*3", Number(9)},
		{"-A1", Number(-4)},
		{"A1/A2", Number(1.6)},
		{"A3+1", Number(1)},
		{"B9+1", Number(1)},
		{"A4+1", NewFormulaError(ErrorCategoryValue)},
		{"A5*0", NewFormulaError(ErrorCategoryValue)},
		{"1/0", NewFormulaError(ErrorCategoryArithmetic)},
		{"A1/A3", NewFormulaError(ErrorCategoryArithmetic)},
		{"1e308*10", NewFormulaError(ErrorCategoryArithmetic)},
		{"ZZZZ1", NewFormulaError(ErrorCategoryRef)},
		{"A6", NewFormulaError(ErrorCategoryValue)},
		{"A7", NewFormulaError(ErrorCategoryValue)},
		{"A8", NewFormulaError(ErrorCategoryValue)},
		{"A1+XFE1", NewFormulaError(ErrorCategoryRef)},
	}

	for _, c := range cases {
		t.Run(c.formula, func(t *testing.T) {
			formula, err := ParseFormula(c.formula)
			require.NoError(t, err)
			assert.Equal(t, c.expected, formula.Evaluate(view))
		})
	}
}
