package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type NodePosition struct {
	Start int
	End   int
}

// operator precedence used when rendering canonical expression text
const (
	precedenceAdditive = iota + 1
	precedenceMultiplicative
	precedenceUnary
	precedenceAtom
)

// ASTNode is a node of a parsed formula. Evaluation returns a FormulaError
// through the error result; callers convert it back into a Value.
type ASTNode interface {
	Eval(view GridView) (float64, error)
	GetPosition() NodePosition
	ToString() string
	precedence() int
}

// Parser parses tokens into an AST
type Parser struct {
	tokens []Token
	pos    int
}

// NumberNode represents a numeric literal
type NumberNode struct {
	Value    float64
	Position NodePosition
}

func (n *NumberNode) Eval(view GridView) (float64, error) {
	return n.Value, nil
}

func (n *NumberNode) GetPosition() NodePosition {
	return n.Position
}

func (n *NumberNode) ToString() string {
	// format number without unnecessary decimals
	if n.Value == math.Trunc(n.Value) && math.Abs(n.Value) < 1e15 {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *NumberNode) precedence() int {
	return precedenceAtom
}

// CellRefNode represents a reference to a single cell. Pos is NonePosition
// when the reference text is cell-shaped but outside the grid.
type CellRefNode struct {
	Pos      Position
	Raw      string
	Position NodePosition
}

func (n *CellRefNode) Eval(view GridView) (float64, error) {
	if !n.Pos.IsValid() {
		return 0, NewFormulaError(ErrorCategoryRef)
	}

	value, ok := view.CellValue(n.Pos)
	if !ok {
		// absent cell reads as zero
		return 0, nil
	}
	return toNumber(value)
}

func (n *CellRefNode) GetPosition() NodePosition {
	return n.Position
}

func (n *CellRefNode) ToString() string {
	if n.Pos.IsValid() {
		return n.Pos.String()
	}
	return n.Raw
}

func (n *CellRefNode) precedence() int {
	return precedenceAtom
}

// BinaryOpNode represents a binary operation
type BinaryOpNode struct {
	Op       BinaryOp
	Left     ASTNode
	Right    ASTNode
	Position NodePosition
}

func (n *BinaryOpNode) Eval(view GridView) (float64, error) {
	left, err := n.Left.Eval(view)
	if err != nil {
		return 0, err
	}
	right, err := n.Right.Eval(view)
	if err != nil {
		return 0, err
	}

	var result float64
	switch n.Op {
	case BinOpAdd:
		result = left + right
	case BinOpSubtract:
		result = left - right
	case BinOpMultiply:
		result = left * right
	case BinOpDivide:
		if right == 0 {
			return 0, NewFormulaError(ErrorCategoryArithmetic)
		}
		result = left / right
	default:
		return 0, NewFormulaError(ErrorCategoryValue)
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, NewFormulaError(ErrorCategoryArithmetic)
	}
	return result, nil
}

func (n *BinaryOpNode) GetPosition() NodePosition {
	return n.Position
}

func (n *BinaryOpNode) opString() string {
	switch n.Op {
	case BinOpAdd:
		return "+"
	case BinOpSubtract:
		return "-"
	case BinOpMultiply:
		return "*"
	case BinOpDivide:
		return "/"
	}
	return "?"
}

// ToString renders the operation with only the parentheses needed to keep
// its meaning: a lower-precedence child is wrapped, and so is an
// equal-precedence right child of a non-commutative operator (1-(2-3)).
func (n *BinaryOpNode) ToString() string {
	prec := n.precedence()

	left := n.Left.ToString()
	if n.Left.precedence() < prec {
		left = "(" + left + ")"
	}

	right := n.Right.ToString()
	rightPrec := n.Right.precedence()
	if rightPrec < prec || (rightPrec == prec && (n.Op == BinOpSubtract || n.Op == BinOpDivide)) {
		right = "(" + right + ")"
	}

	return left + n.opString() + right
}

func (n *BinaryOpNode) precedence() int {
	if n.Op == BinOpMultiply || n.Op == BinOpDivide {
		return precedenceMultiplicative
	}
	return precedenceAdditive
}

// UnaryOpNode represents a unary operation
type UnaryOpNode struct {
	Op       UnaryOp
	Operand  ASTNode
	Position NodePosition
}

func (n *UnaryOpNode) Eval(view GridView) (float64, error) {
	val, err := n.Operand.Eval(view)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case UnaryOpPlus:
		return val, nil
	case UnaryOpMinus:
		return -val, nil
	default:
		return 0, NewFormulaError(ErrorCategoryValue)
	}
}

func (n *UnaryOpNode) GetPosition() NodePosition {
	return n.Position
}

func (n *UnaryOpNode) ToString() string {
	opStr := "+"
	if n.Op == UnaryOpMinus {
		opStr = "-"
	}

	operand := n.Operand.ToString()
	if n.Operand.precedence() < precedenceUnary {
		operand = "(" + operand + ")"
	}
	return opStr + operand
}

func (n *UnaryOpNode) precedence() int {
	return precedenceUnary
}

// NewParser creates a new parser over the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
	}
}

// Parse parses the tokens into an AST
func (p *Parser) Parse() (ASTNode, error) {
	if len(p.tokens) == 0 {
		return nil, fmt.Errorf("no tokens to parse")
	}

	node, err := p.parseAddition()
	if err != nil {
		return nil, err
	}

	// ensure we've consumed all tokens except EOF
	if p.pos >= len(p.tokens) || p.tokens[p.pos].Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token after expression: %s", p.tokens[p.pos].Value)
	}

	return node, nil
}

// parseAddition handles addition and subtraction
func (p *Parser) parseAddition() (ASTNode, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.Type != TokenBinaryOp {
			break
		}

		var op BinaryOp
		switch tok.Value {
		case "+":
			op = BinOpAdd
		case "-":
			op = BinOpSubtract
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{
			Op:       op,
			Left:     left,
			Right:    right,
			Position: NodePosition{Start: left.GetPosition().Start, End: right.GetPosition().End},
		}
	}

	return left, nil
}

// parseMultiplication handles multiplication and division
func (p *Parser) parseMultiplication() (ASTNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.Type != TokenBinaryOp {
			break
		}

		var op BinaryOp
		switch tok.Value {
		case "*":
			op = BinOpMultiply
		case "/":
			op = BinOpDivide
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{
			Op:       op,
			Left:     left,
			Right:    right,
			Position: NodePosition{Start: left.GetPosition().Start, End: right.GetPosition().End},
		}
	}

	return left, nil
}

// parseUnary handles unary operators
func (p *Parser) parseUnary() (ASTNode, error) {
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("unexpected end of expression")
	}

	tok := p.tokens[p.pos]
	if tok.Type != TokenUnaryPrefixOp {
		return p.parsePrimary()
	}

	op := UnaryOpPlus
	if tok.Value == "-" {
		op = UnaryOpMinus
	}

	p.pos++
	operand, err := p.parseUnary() // recurse for chained unary operators
	if err != nil {
		return nil, err
	}

	return &UnaryOpNode{
		Op:       op,
		Operand:  operand,
		Position: NodePosition{Start: tok.Pos, End: operand.GetPosition().End},
	}, nil
}

// parsePrimary handles literals, references and parentheses
func (p *Parser) parsePrimary() (ASTNode, error) {
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("unexpected end of expression")
	}

	tok := p.tokens[p.pos]

	switch tok.Type {
	case TokenNumber:
		p.pos++
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %s", tok.Value)
		}
		return &NumberNode{
			Value:    val,
			Position: NodePosition{Start: tok.Pos, End: tok.Pos + len(tok.Value)},
		}, nil

	case TokenCell:
		p.pos++
		return &CellRefNode{
			Pos:      ParsePosition(tok.Value),
			Raw:      tok.Value,
			Position: NodePosition{Start: tok.Pos, End: tok.Pos + len(tok.Value)},
		}, nil

	case TokenLeftParen:
		p.pos++
		node, err := p.parseAddition()
		if err != nil {
			return nil, err
		}

		if p.pos >= len(p.tokens) || p.tokens[p.pos].Type != TokenRightParen {
			return nil, fmt.Errorf("expected closing parenthesis")
		}
		p.pos++

		return node, nil

	default:
		return nil, fmt.Errorf("unexpected token: %s", tok.Value)
	}
}

// toNumber coerces a referenced cell's value to a number: empty text is
// zero, text must parse completely, errors propagate as-is
func toNumber(value Value) (float64, error) {
	switch v := value.(type) {
	case Number:
		return float64(v), nil
	case Text:
		if v == "" {
			return 0, nil
		}
		// ParseFloat also takes "Inf", "NaN" and hex floats, which are text here
		if strings.ContainsAny(string(v), "xXnN") {
			return 0, NewFormulaError(ErrorCategoryValue)
		}
		num, err := strconv.ParseFloat(string(v), 64)
		if err != nil || math.IsInf(num, 0) {
			return 0, NewFormulaError(ErrorCategoryValue)
		}
		return num, nil
	case FormulaError:
		return 0, v
	default:
		return 0, NewFormulaError(ErrorCategoryValue)
	}
}
