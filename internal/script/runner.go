package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vogtb/go-spreadsheet/internal/ctxlog"
	"github.com/vogtb/go-spreadsheet/internal/render"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

// Mismatch is one failed expectation.
type Mismatch struct {
	Step  *Step
	Field string // "value", "text" or "error"
	Want  string
	Got   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s: want %q, got %q", m.Step, m.Field, m.Want, m.Got)
}

// ExpectationError reports every expectation that did not hold during a run.
type ExpectationError struct {
	Mismatches []Mismatch
}

func (e *ExpectationError) Error() string {
	lines := make([]string, 0, len(e.Mismatches)+1)
	lines = append(lines, fmt.Sprintf("%d expectation(s) failed", len(e.Mismatches)))
	for _, m := range e.Mismatches {
		lines = append(lines, "  "+m.String())
	}
	return strings.Join(lines, "\n")
}

// Runner replays scripts against a sheet.
type Runner struct {
	sheet *spreadsheet.Sheet
	out   io.Writer
	opts  render.Options
}

// NewRunner creates a runner that applies steps to sheet and writes print
// steps to out.
func NewRunner(sheet *spreadsheet.Sheet, out io.Writer, opts render.Options) *Runner {
	return &Runner{sheet: sheet, out: out, opts: opts}
}

// Run applies every step in order. An unexpected engine error stops the run
// and is returned wrapped. Failed expectations do not stop the run; they
// are collected and returned together as an *ExpectationError.
func (r *Runner) Run(ctx context.Context, model *Model) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Running script.", "source", model.Source, "steps", len(model.Steps))

	var mismatches []Mismatch
	for _, step := range model.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		logger.Debug("Applying step.", "step", step.String())
		stepMismatches, err := r.apply(step)
		if err != nil {
			return fmt.Errorf("%s: %w", step, err)
		}
		for _, m := range stepMismatches {
			logger.Warn("Expectation failed.", "step", step.String(), "field", m.Field, "want", m.Want, "got", m.Got)
		}
		mismatches = append(mismatches, stepMismatches...)
	}

	if len(mismatches) > 0 {
		return &ExpectationError{Mismatches: mismatches}
	}
	logger.Info("Script finished.", "source", model.Source, "cells", r.sheet.Len())
	return nil
}

func (r *Runner) apply(step *Step) ([]Mismatch, error) {
	switch step.Op {
	case OpSet:
		return r.set(step)
	case OpClear:
		return nil, r.sheet.ClearCell(spreadsheet.ParsePosition(step.Cell))
	case OpPrint:
		mode, err := render.ParseMode(step.Mode)
		if err != nil {
			return nil, err
		}
		return nil, render.Render(r.out, r.sheet, mode, r.opts)
	case OpExpect:
		return r.expect(step)
	default:
		return nil, fmt.Errorf("unknown op %q", step.Op)
	}
}

func (r *Runner) set(step *Step) ([]Mismatch, error) {
	err := r.sheet.SetCell(spreadsheet.ParsePosition(step.Cell), step.Content)
	if step.ExpectError == "" {
		return nil, err
	}

	if errors.Is(err, errorKinds[step.ExpectError]) {
		return nil, nil
	}
	got := "no error"
	if err != nil {
		got = err.Error()
	}
	return []Mismatch{{Step: step, Field: "error", Want: step.ExpectError, Got: got}}, nil
}

func (r *Runner) expect(step *Step) ([]Mismatch, error) {
	pos := spreadsheet.ParsePosition(step.Cell)

	var mismatches []Mismatch
	if step.Value != nil {
		value, err := r.sheet.Value(pos)
		if err != nil {
			return nil, err
		}
		if got := value.String(); got != *step.Value {
			mismatches = append(mismatches, Mismatch{Step: step, Field: "value", Want: *step.Value, Got: got})
		}
	}
	if step.Text != nil {
		text, err := r.sheet.Text(pos)
		if err != nil {
			return nil, err
		}
		if text != *step.Text {
			mismatches = append(mismatches, Mismatch{Step: step, Field: "text", Want: *step.Text, Got: text})
		}
	}
	return mismatches, nil
}
