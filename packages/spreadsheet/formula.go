package spreadsheet

import (
	"errors"
	"slices"
)

// GridView is the read-only view of a sheet that formulas evaluate
// against. ok is false for positions with no stored cell.
type GridView interface {
	CellValue(pos Position) (value Value, ok bool)
}

// Formula is a parsed formula expression.
type Formula interface {
	// Evaluate computes the formula against the grid. Evaluation problems
	// are reported as a FormulaError value, never as a Go error.
	Evaluate(view GridView) Value

	// ReferencedCells returns the valid positions the expression reads,
	// sorted and without duplicates.
	ReferencedCells() []Position

	// Expression returns the canonical text of the expression, without the
	// leading formula marker.
	Expression() string
}

// FormulaParser turns expression text (without the leading formula marker)
// into a Formula.
type FormulaParser func(expression string) (Formula, error)

// ParseFormula is the default FormulaParser.
func ParseFormula(expression string) (Formula, error) {
	tokens, err := NewLexer(expression).Tokenize()
	if err != nil {
		return nil, err
	}

	ast, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, err
	}

	return &astFormula{ast: ast, refs: collectReferences(ast)}, nil
}

type astFormula struct {
	ast  ASTNode
	refs []Position
}

func (f *astFormula) Evaluate(view GridView) Value {
	result, err := f.ast.Eval(view)
	if err != nil {
		var fe FormulaError
		if errors.As(err, &fe) {
			return fe
		}
		return NewFormulaError(ErrorCategoryValue)
	}
	return Number(result)
}

func (f *astFormula) ReferencedCells() []Position {
	return slices.Clone(f.refs)
}

func (f *astFormula) Expression() string {
	return f.ast.ToString()
}

// collectReferences walks the tree and returns the sorted, de-duplicated set
// of valid cell positions
func collectReferences(root ASTNode) []Position {
	seen := make(map[Position]struct{})
	var refs []Position

	var walk func(node ASTNode)
	walk = func(node ASTNode) {
		switch n := node.(type) {
		case *CellRefNode:
			if !n.Pos.IsValid() {
				return
			}
			if _, dup := seen[n.Pos]; dup {
				return
			}
			seen[n.Pos] = struct{}{}
			refs = append(refs, n.Pos)
		case *BinaryOpNode:
			walk(n.Left)
			walk(n.Right)
		case *UnaryOpNode:
			walk(n.Operand)
		}
	}
	walk(root)

	slices.SortFunc(refs, comparePositions)
	return refs
}

func comparePositions(a, b Position) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
