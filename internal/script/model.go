package script

import (
	"errors"
	"fmt"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

// Op names what a step does.
type Op string

const (
	OpSet    Op = "set"
	OpClear  Op = "clear"
	OpPrint  Op = "print"
	OpExpect Op = "expect"
)

// Model is the format-agnostic form of a loaded script.
type Model struct {
	Source string
	Steps  []*Step
}

// Step is one script instruction. Which fields are meaningful depends on Op.
type Step struct {
	Op   Op
	Cell string // set, clear, expect

	// set
	Content     string
	ExpectError string // "", "syntax", "circular" or "position"

	// print
	Mode string

	// expect; nil means not checked
	Value *string
	Text  *string

	Line int // 1-based source line, 0 when unknown
}

// String is used in log lines and failure messages.
func (s *Step) String() string {
	loc := ""
	if s.Line > 0 {
		loc = fmt.Sprintf(" (line %d)", s.Line)
	}
	if s.Op == OpPrint {
		return fmt.Sprintf("%s %s%s", s.Op, s.Mode, loc)
	}
	return fmt.Sprintf("%s %s%s", s.Op, s.Cell, loc)
}

// error kinds a set step may declare it expects
var errorKinds = map[string]error{
	"syntax":   spreadsheet.ErrFormulaSyntax,
	"circular": spreadsheet.ErrCircularDependency,
	"position": spreadsheet.ErrInvalidPosition,
}

// Validate checks that every step carries the fields its op needs.
func (m *Model) Validate() error {
	var errs []error
	for i, step := range m.Steps {
		if err := step.validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Step) validate() error {
	switch s.Op {
	case OpSet:
		if s.ExpectError != "" {
			if _, ok := errorKinds[s.ExpectError]; !ok {
				return fmt.Errorf("unknown error kind %q", s.ExpectError)
			}
		}
	case OpClear:
	case OpExpect:
		if s.Value == nil && s.Text == nil {
			return fmt.Errorf("expect %s checks neither value nor text", s.Cell)
		}
	case OpPrint:
		if s.Mode == "" {
			s.Mode = "values"
		}
		if s.Mode != "values" && s.Mode != "texts" {
			return fmt.Errorf("unknown print mode %q", s.Mode)
		}
		return nil
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}

	if s.Cell == "" {
		return fmt.Errorf("%s step has no cell", s.Op)
	}
	return nil
}
