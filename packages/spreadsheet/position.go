package spreadsheet

import (
	"strconv"
)

// grid limits and text-form constraints
const (
	MaxRows = 16384
	MaxCols = 16384

	lettersInAlphabet    = 26
	maxPositionLength    = 17
	maxPositionLetterLen = 3
)

// Position is a zero-based (row, column) grid coordinate. Its user-facing
// text form is column letters followed by a 1-based row number, e.g. "B12".
type Position struct {
	Row int
	Col int
}

// NonePosition is the sentinel for "no position". It is never valid.
var NonePosition = Position{Row: -1, Col: -1}

// IsValid reports whether the position lies inside the grid.
func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < MaxRows && p.Col < MaxCols
}

// Less orders positions row-major.
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// String returns the user-facing form of the position, or "" when the
// position is invalid.
func (p Position) String() string {
	if !p.IsValid() {
		return ""
	}
	return columnToLetters(p.Col) + strconv.Itoa(p.Row+1)
}

// ParsePosition parses the user-facing form ("A1", "ZZ100"). It never fails:
// anything that is not 1-3 uppercase letters followed by digits, or that
// lands outside the grid, yields NonePosition.
func ParsePosition(s string) Position {
	if len(s) == 0 || len(s) > maxPositionLength {
		return NonePosition
	}

	// split into the letter run and the digit run
	letterEnd := 0
	for letterEnd < len(s) && isUpperLetter(s[letterEnd]) {
		letterEnd++
	}
	if letterEnd == 0 || letterEnd > maxPositionLetterLen {
		return NonePosition
	}

	digits := s[letterEnd:]
	if len(digits) == 0 {
		return NonePosition
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return NonePosition
		}
	}

	row, err := strconv.Atoi(digits)
	if err != nil {
		return NonePosition
	}

	pos := Position{Row: row - 1, Col: lettersToColumn(s[:letterEnd]) - 1}
	if !pos.IsValid() {
		return NonePosition
	}
	return pos
}

// ColumnName returns the letters naming a zero-based column, or "" when the
// column is outside the grid.
func ColumnName(col int) string {
	if col < 0 || col >= MaxCols {
		return ""
	}
	return columnToLetters(col)
}

// columnToLetters converts a zero-based column to bijective base-26 letters
// (0 -> A, 25 -> Z, 26 -> AA)
func columnToLetters(col int) string {
	var buf [maxPositionLetterLen + 1]byte
	i := len(buf)
	for c := col; c >= 0; c = c/lettersInAlphabet - 1 {
		i--
		buf[i] = byte('A' + c%lettersInAlphabet)
	}
	return string(buf[i:])
}

// lettersToColumn is the inverse of columnToLetters but one-based
// (A -> 1, AA -> 27)
func lettersToColumn(letters string) int {
	result := 0
	for i := 0; i < len(letters); i++ {
		result = result*lettersInAlphabet + int(letters[i]-'A') + 1
	}
	return result
}

func isUpperLetter(ch byte) bool {
	return ch >= 'A' && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Size describes a printable (rows, cols) bounding box.
type Size struct {
	Rows int
	Cols int
}
