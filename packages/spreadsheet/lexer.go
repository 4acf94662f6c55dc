package spreadsheet

import "fmt"

// TokenType represents different types of tokens in formulas
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenCell
	TokenUnaryPrefixOp
	TokenBinaryOp
	TokenLeftParen
	TokenRightParen
	TokenWhitespace
	TokenError
)

// BinaryOp represents binary operators in AST nodes
type BinaryOp int

const (
	BinOpAdd BinaryOp = iota
	BinOpSubtract
	BinOpMultiply
	BinOpDivide
)

// UnaryOp represents unary operators in AST nodes
type UnaryOp int

const (
	UnaryOpPlus UnaryOp = iota
	UnaryOpMinus
)

// character classification constants. slightly easier to read.
const (
	charNull     = 0
	charTab      = '\t'
	charNewline  = '\n'
	charReturn   = '\r'
	charSpace    = ' '
	charLParen   = '('
	charRParen   = ')'
	charAsterisk = '*'
	charPlus     = '+'
	charMinus    = '-'
	charPeriod   = '.'
	charSlash    = '/'
)

// tokenTransitions maps the current state to valid next token types
var tokenTransitions = map[TokenState]map[TokenType]bool{
	StateStart: {
		TokenUnaryPrefixOp: true,
		TokenNumber:        true,
		TokenCell:          true,
		TokenLeftParen:     true,
	},
	StateAfterValue: {
		TokenBinaryOp:   true,
		TokenRightParen: true,
		TokenEOF:        true,
		// whitespace is significant - no consecutive values
	},
	StateAfterOperator: {
		TokenNumber:        true,
		TokenCell:          true,
		TokenLeftParen:     true,
		TokenUnaryPrefixOp: true,
	},
	StateAfterLeftParen: {
		TokenNumber:        true,
		TokenCell:          true,
		TokenLeftParen:     true,
		TokenUnaryPrefixOp: true,
	},
	StateAfterRightParen: {
		TokenBinaryOp:   true,
		TokenRightParen: true,
		TokenEOF:        true,
	},
}

// Token represents a lexical token with position information
type Token struct {
	Type  TokenType
	Value string
	Pos   int // byte position in input
}

// TokenState represents the lexer state for validation
type TokenState int

const (
	StateStart TokenState = iota
	StateAfterValue
	StateAfterOperator
	StateAfterLeftParen
	StateAfterRightParen
)

// Lexer tokenizes formula expressions. The input is the expression without
// the leading formula marker.
type Lexer struct {
	input      string
	pos        int
	state      TokenState
	parenDepth int
	tokens     []Token
}

// NewLexer creates a new lexer for the given expression
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		state:  StateStart,
		tokens: []Token{},
	}
}

// Tokenize tokenizes the entire input. The returned slice always ends with
// a TokenEOF on success.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		tok := l.nextToken()
		if tok.Type == TokenError {
			return nil, fmt.Errorf("position %d: %s", tok.Pos, tok.Value)
		}
		if !l.validateTransition(tok.Type) {
			if tok.Type == TokenEOF {
				return nil, fmt.Errorf("position %d: unexpected end of expression", tok.Pos)
			}
			return nil, fmt.Errorf("position %d: unexpected token %q", tok.Pos, tok.Value)
		}
		l.tokens = append(l.tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
		l.updateState(tok.Type)
	}

	if l.parenDepth > 0 {
		return nil, fmt.Errorf("unbalanced parentheses: missing closing parenthesis")
	}

	return l.tokens, nil
}

// validateTransition checks if the token type is valid in current state
func (l *Lexer) validateTransition(tokenType TokenType) bool {
	validTokens, exists := tokenTransitions[l.state]
	if !exists {
		return false
	}
	return validTokens[tokenType]
}

// updateState updates the lexer state based on the token type
func (l *Lexer) updateState(tokenType TokenType) {
	switch tokenType {
	case TokenNumber, TokenCell:
		l.state = StateAfterValue
	case TokenUnaryPrefixOp, TokenBinaryOp:
		l.state = StateAfterOperator
	case TokenLeftParen:
		l.state = StateAfterLeftParen
	case TokenRightParen:
		l.state = StateAfterRightParen
	}
}

// nextToken returns the next token from the input
func (l *Lexer) nextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	startPos := l.pos
	ch := l.current()

	if isDigit(ch) || (ch == charPeriod && isDigit(l.peek(1))) {
		return l.scanNumber()
	}

	switch ch {
	case charLParen:
		l.pos++
		l.parenDepth++
		return Token{Type: TokenLeftParen, Value: "(", Pos: startPos}
	case charRParen:
		l.pos++
		l.parenDepth--
		if l.parenDepth < 0 {
			return Token{Type: TokenError, Value: "unexpected closing parenthesis", Pos: startPos}
		}
		return Token{Type: TokenRightParen, Value: ")", Pos: startPos}
	case charPlus, charMinus:
		return l.scanUnaryPrefixOrBinaryOp()
	case charAsterisk, charSlash:
		l.pos++
		return Token{Type: TokenBinaryOp, Value: string(ch), Pos: startPos}
	}

	if isAlpha(ch) {
		return l.scanCell()
	}

	l.pos++
	return Token{Type: TokenError, Value: "unexpected character: " + string(ch), Pos: startPos}
}

func (l *Lexer) current() byte {
	if l.pos >= len(l.input) {
		return charNull
	}
	return l.input[l.pos]
}

func (l *Lexer) peek(offset int) byte {
	pos := l.pos + offset
	if pos >= len(l.input) || pos < 0 {
		return charNull
	}
	return l.input[pos]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.current()
		if ch == charSpace || ch == charTab || ch == charNewline || ch == charReturn {
			l.pos++
		} else {
			break
		}
	}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// scanNumber scans a number token including decimals and scientific notation
func (l *Lexer) scanNumber() Token {
	startPos := l.pos

	for l.pos < len(l.input) && isDigit(l.current()) {
		l.pos++
	}

	if l.current() == charPeriod {
		l.pos++ // consume '.'
		for l.pos < len(l.input) && isDigit(l.current()) {
			l.pos++
		}
	}

	if l.current() == 'e' || l.current() == 'E' {
		savedPos := l.pos
		l.pos++ // consume 'e' or 'E'

		if l.current() == charPlus || l.current() == charMinus {
			l.pos++
		}

		// must have at least one digit after e/E
		if !isDigit(l.current()) {
			l.pos = savedPos
		} else {
			for l.pos < len(l.input) && isDigit(l.current()) {
				l.pos++
			}
		}
	}

	return Token{Type: TokenNumber, Value: l.input[startPos:l.pos], Pos: startPos}
}

// scanCell scans a cell reference: uppercase letters immediately followed
// by digits. Out-of-grid references are still cell tokens; the parser turns
// them into references that evaluate to #REF!.
func (l *Lexer) scanCell() Token {
	startPos := l.pos
	for l.pos < len(l.input) && (isAlpha(l.current()) || isDigit(l.current())) {
		l.pos++
	}

	value := l.input[startPos:l.pos]
	if !isCell(value) {
		return Token{Type: TokenError, Value: "invalid cell reference: " + value, Pos: startPos}
	}
	return Token{Type: TokenCell, Value: value, Pos: startPos}
}

// isCell checks if a string is shaped like a cell reference (e.g., A1, B12)
func isCell(s string) bool {
	letterEnd := 0
	for letterEnd < len(s) && isUpperLetter(s[letterEnd]) {
		letterEnd++
	}

	// must have at least one letter and one digit
	if letterEnd == 0 || letterEnd == len(s) {
		return false
	}

	for i := letterEnd; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// scanUnaryPrefixOrBinaryOp scans + and - which can be either unary
// prefix or binary
func (l *Lexer) scanUnaryPrefixOrBinaryOp() Token {
	startPos := l.pos
	ch := l.current()
	l.pos++

	if l.isUnaryContext() {
		return Token{Type: TokenUnaryPrefixOp, Value: string(ch), Pos: startPos}
	}
	return Token{Type: TokenBinaryOp, Value: string(ch), Pos: startPos}
}

// isUnaryContext checks if the current context allows for unary operators
func (l *Lexer) isUnaryContext() bool {
	switch l.state {
	case StateStart, StateAfterOperator, StateAfterLeftParen:
		return true
	default:
		return false
	}
}
