package spreadsheet

import (
	"strings"
)

// reserved leading characters of cell content
const (
	FormulaSign = '='
	EscapeSign  = '\''
)

// cellContent is the closed set of things a cell can hold:
//   - emptyContent: nothing, value is ""
//   - textContent: literal text, a leading EscapeSign is hidden from the value
//   - formulaContent: a parsed formula and its memoized result
type cellContent interface {
	isContent()
}

type emptyContent struct{}

type textContent struct {
	raw string
}

type formulaContent struct {
	formula Formula
	cache   Value // nil until computed, and again after invalidation
}

func (emptyContent) isContent()    {}
func (textContent) isContent()     {}
func (*formulaContent) isContent() {}

// Cell is a single grid cell. Cells are owned by their Sheet; references and
// dependents hold positions, not cells, and are always mutual inverses across
// the sheet: B is in A.references exactly when A is in B.dependents.
type Cell struct {
	sheet   *Sheet
	pos     Position
	content cellContent

	references map[Position]struct{} // cells this cell's formula reads
	dependents map[Position]struct{} // cells whose formulas read this cell
}

func newCell(sheet *Sheet, pos Position) *Cell {
	return &Cell{
		sheet:      sheet,
		pos:        pos,
		content:    emptyContent{},
		references: make(map[Position]struct{}),
		dependents: make(map[Position]struct{}),
	}
}

// Position returns where the cell lives in its sheet.
func (c *Cell) Position() Position {
	return c.pos
}

// Set replaces the cell content. Text starting with FormulaSign and longer
// than one character is a formula; "" is empty; anything else is text.
//
// A syntax error or a would-be reference cycle rejects the edit and leaves
// the cell and the whole reference graph untouched.
func (c *Cell) Set(text string) error {
	next, refs, err := c.classify(text)
	if err != nil {
		return err
	}

	if c.wouldCreateCycle(refs) {
		return circularDependencyError(c.pos)
	}

	c.invalidateForEdit()
	c.rewire(refs)
	c.content = next
	return nil
}

// Clear resets the cell to empty, detaching it from everything it
// referenced. The cell stays in its sheet; removal is Sheet.ClearCell's job.
func (c *Cell) Clear() {
	c.invalidateForEdit()
	c.rewire(nil)
	c.content = emptyContent{}
}

// classify turns raw text into content, parsing formulas. Nothing on the
// cell is touched.
func (c *Cell) classify(text string) (cellContent, []Position, error) {
	switch {
	case text == "":
		return emptyContent{}, nil, nil
	case len(text) > 1 && text[0] == FormulaSign:
		expression := text[1:]
		formula, err := c.sheet.parseFormula(expression)
		if err != nil {
			return nil, nil, formulaSyntaxError(expression, err)
		}
		return &formulaContent{formula: formula}, formula.ReferencedCells(), nil
	default:
		return textContent{raw: text}, nil, nil
	}
}

// Value returns the computed value. Formulas are evaluated on first read
// and then served from cache until something they depend on changes.
func (c *Cell) Value() Value {
	switch content := c.content.(type) {
	case textContent:
		if strings.HasPrefix(content.raw, string(EscapeSign)) {
			return Text(content.raw[1:])
		}
		return Text(content.raw)
	case *formulaContent:
		if content.cache == nil {
			content.cache = content.formula.Evaluate(sheetView{sheet: c.sheet})
		}
		return content.cache
	default:
		return Text("")
	}
}

// Text returns the source text: the raw literal for text (escape sign
// included), the marker plus canonical expression for formulas.
func (c *Cell) Text() string {
	switch content := c.content.(type) {
	case textContent:
		return content.raw
	case *formulaContent:
		return string(FormulaSign) + content.formula.Expression()
	default:
		return ""
	}
}

// ReferencedCells returns the positions this cell's formula reads, sorted.
// Non-formula cells reference nothing.
func (c *Cell) ReferencedCells() []Position {
	if _, ok := c.content.(*formulaContent); !ok {
		return nil
	}
	return sortedPositions(c.references)
}

// IsReferenced reports whether any formula reads this cell.
func (c *Cell) IsReferenced() bool {
	return len(c.dependents) > 0
}

// HasCache reports whether a formula result is currently memoized.
func (c *Cell) HasCache() bool {
	content, ok := c.content.(*formulaContent)
	return ok && content.cache != nil
}

// IsEmpty reports whether the cell holds no content.
func (c *Cell) IsEmpty() bool {
	_, ok := c.content.(emptyContent)
	return ok
}
