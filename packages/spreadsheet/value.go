package spreadsheet

import (
	"strconv"
)

// Value is the computed value of a cell. It is a closed set of variants:
//   - Number: numeric results and numeric formula output
//   - Text: literal text and empty cells ("")
//   - FormulaError: evaluation errors (#REF!, #VALUE!, #ARITHM!)
type Value interface {
	String() string
	isValue()
}

// Number is a floating-point cell value.
type Number float64

// Text is a string cell value.
type Text string

func (Number) isValue()       {}
func (Text) isValue()         {}
func (FormulaError) isValue() {}

// String formats the number with six significant digits, the way a
// default-configured output stream would.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', 6, 64)
}

func (t Text) String() string {
	return string(t)
}

// ErrorCategory classifies evaluation errors.
type ErrorCategory uint8

const (
	ErrorCategoryRef        ErrorCategory = 1 // #REF! - referenced position is invalid
	ErrorCategoryValue      ErrorCategory = 2 // #VALUE! - operand is not a number
	ErrorCategoryArithmetic ErrorCategory = 3 // #ARITHM! - result is undefined, e.g. 1/0
)

// ErrorMapper maps error categories to their display tokens
var ErrorMapper = map[ErrorCategory]string{
	ErrorCategoryRef:        "#REF!",
	ErrorCategoryValue:      "#VALUE!",
	ErrorCategoryArithmetic: "#ARITHM!",
}

// FormulaError is a value, not a failure: it is cached and propagated like
// any other computed result. It also satisfies error so the evaluator can
// pass it up through error returns.
type FormulaError struct {
	Category ErrorCategory
}

func NewFormulaError(category ErrorCategory) FormulaError {
	return FormulaError{Category: category}
}

func (e FormulaError) String() string {
	return ErrorMapper[e.Category]
}

func (e FormulaError) Error() string {
	return e.String()
}
