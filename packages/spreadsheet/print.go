package spreadsheet

import (
	"io"
	"strings"
)

// PrintValues writes computed values over the printable area: one line per
// row, cells separated by tabs, absent cells blank.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.printCells(w, func(c *Cell) string {
		return c.Value().String()
	})
}

// PrintTexts writes source texts in the same layout as PrintValues.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.printCells(w, (*Cell).Text)
}

func (s *Sheet) printCells(w io.Writer, render func(*Cell) string) error {
	size := s.PrintableSize()

	var sb strings.Builder
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			if col > 0 {
				sb.WriteByte('\t')
			}
			if cell, exists := s.cells[Position{Row: row, Col: col}]; exists {
				sb.WriteString(render(cell))
			}
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
