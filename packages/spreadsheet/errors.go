package spreadsheet

import (
	"errors"
	"fmt"
)

// AppErrorCode represents gRPC-style error codes for structural errors.
// formula evaluation errors are values (FormulaError) and never use these.
type AppErrorCode int

const (
	// OK indicates the operation completed successfully.
	OK AppErrorCode = 0

	// InvalidArgument indicates the caller supplied content that cannot be
	// accepted, e.g. a syntactically incorrect formula.
	InvalidArgument AppErrorCode = 3

	// FailedPrecondition indicates the edit was rejected because applying
	// it would break a sheet invariant, e.g. introduce a reference cycle.
	FailedPrecondition AppErrorCode = 9

	// OutOfRange means an operation was attempted at a position outside
	// the grid.
	OutOfRange AppErrorCode = 11
)

var (
	ErrInvalidPosition    = errors.New("invalid position")
	ErrFormulaSyntax      = errors.New("formula syntax error")
	ErrCircularDependency = errors.New("circular dependency")
)

// AppError is a structural error. A failed operation that returns one has
// left the sheet exactly as it was.
type AppError struct {
	Code    AppErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewApplicationError creates a new application error
func NewApplicationError(code AppErrorCode, sentinel error, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     sentinel,
	}
}

func invalidPositionError(pos Position) *AppError {
	return NewApplicationError(OutOfRange, ErrInvalidPosition,
		fmt.Sprintf("invalid position (%d, %d)", pos.Row, pos.Col))
}

func formulaSyntaxError(expression string, cause error) *AppError {
	return NewApplicationError(InvalidArgument, ErrFormulaSyntax,
		fmt.Sprintf("syntactically incorrect formula %q: %v", expression, cause))
}

func circularDependencyError(pos Position) *AppError {
	return NewApplicationError(FailedPrecondition, ErrCircularDependency,
		fmt.Sprintf("formula in %s would create a circular dependency", pos))
}
