package spreadsheet

import (
	"io"
	"log/slog"
)

// Sheet owns a sparse grid of cells keyed by position. It is not safe for
// concurrent use: the reference graph spans many cells, so a concurrent
// caller has to serialize every mutating call behind one lock per sheet.
type Sheet struct {
	cells        map[Position]*Cell
	size         Size // bounding box of stored cells
	parseFormula FormulaParser
	logger       *slog.Logger
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithLogger sets the logger used for structural events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sheet) {
		s.logger = logger
	}
}

// WithFormulaParser replaces the formula engine.
func WithFormulaParser(parser FormulaParser) Option {
	return func(s *Sheet) {
		s.parseFormula = parser
	}
}

// NewSheet creates an empty sheet
func NewSheet(opts ...Option) *Sheet {
	s := &Sheet{
		cells:        make(map[Position]*Cell),
		parseFormula: ParseFormula,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCell sets the content of the cell at pos, creating the cell if needed.
// On a syntax or circular-dependency error the content and reference graph
// are unchanged; a cell created by this call stays behind as empty.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !pos.IsValid() {
		return invalidPositionError(pos)
	}

	cell := s.ensureCell(pos)
	if err := cell.Set(text); err != nil {
		s.logger.Debug("Cell edit rejected.", "pos", pos.String(), "text", text, "error", err)
		return err
	}

	s.logger.Debug("Cell set.", "pos", pos.String(), "references", len(cell.references))
	return nil
}

// Cell returns the cell at pos, or nil when nothing is stored there. A nil
// cell is logically empty.
func (s *Sheet) Cell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, invalidPositionError(pos)
	}
	return s.cells[pos], nil
}

// Value returns the value at pos; absent cells read as empty text.
func (s *Sheet) Value(pos Position) (Value, error) {
	cell, err := s.Cell(pos)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return Text(""), nil
	}
	return cell.Value(), nil
}

// Text returns the source text at pos; absent cells read as "".
func (s *Sheet) Text(pos Position) (string, error) {
	cell, err := s.Cell(pos)
	if err != nil {
		return "", err
	}
	if cell == nil {
		return "", nil
	}
	return cell.Text(), nil
}

// ClearCell empties the cell at pos. The cell is detached from everything it
// referenced and its dependents are invalidated. If other formulas still
// read pos, the cell stays stored as empty so their edges keep a target;
// otherwise it is removed and the bounding box recomputed.
func (s *Sheet) ClearCell(pos Position) error {
	if !pos.IsValid() {
		return invalidPositionError(pos)
	}

	cell, exists := s.cells[pos]
	if !exists {
		return nil
	}

	cell.Clear()
	if cell.IsReferenced() {
		s.logger.Debug("Cell cleared, kept as reference target.", "pos", pos.String(), "dependents", len(cell.dependents))
		return nil
	}

	delete(s.cells, pos)
	s.recomputeSize()
	s.logger.Debug("Cell removed.", "pos", pos.String(), "rows", s.size.Rows, "cols", s.size.Cols)
	return nil
}

// PrintableSize returns the bounding box of all stored cells.
func (s *Sheet) PrintableSize() Size {
	if len(s.cells) == 0 {
		return Size{}
	}
	return s.size
}

// Len returns the number of stored cells.
func (s *Sheet) Len() int {
	return len(s.cells)
}

// ensureCell returns the cell at pos, creating an empty one and growing the
// bounding box if absent
func (s *Sheet) ensureCell(pos Position) *Cell {
	if cell, exists := s.cells[pos]; exists {
		return cell
	}

	cell := newCell(s, pos)
	s.cells[pos] = cell
	s.growSize(pos)
	s.logger.Debug("Cell created.", "pos", pos.String())
	return cell
}

func (s *Sheet) growSize(pos Position) {
	s.size.Rows = max(s.size.Rows, pos.Row+1)
	s.size.Cols = max(s.size.Cols, pos.Col+1)
}

// recomputeSize rescans every stored position. Shrinking is rare next to
// reads and writes, so the full scan is fine.
func (s *Sheet) recomputeSize() {
	s.size = Size{}
	for pos := range s.cells {
		s.growSize(pos)
	}
}

// sheetView is the read-only GridView handed to formulas
type sheetView struct {
	sheet *Sheet
}

func (v sheetView) CellValue(pos Position) (Value, bool) {
	cell, exists := v.sheet.cells[pos]
	if !exists {
		return nil, false
	}
	return cell.Value(), true
}
