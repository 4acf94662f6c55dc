// Package render writes sheet dumps for the command line: either the plain
// tab-separated layout the engine produces, or a boxed table with column
// letters and row numbers.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

// Mode selects what is shown for each cell.
type Mode string

const (
	ModeValues Mode = "values"
	ModeTexts  Mode = "texts"
)

// Format selects the layout.
type Format string

const (
	FormatTSV   Format = "tsv"
	FormatTable Format = "table"
)

// Options control table rendering.
type Options struct {
	Format      Format
	ColorErrors bool // highlight #REF!/#VALUE!/#ARITHM! in table output
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeValues, ModeTexts:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown print mode %q (want %q or %q)", s, ModeValues, ModeTexts)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTSV, FormatTable:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want %q or %q)", s, FormatTSV, FormatTable)
}

// Render writes the sheet in the requested mode and layout.
func Render(w io.Writer, sheet *spreadsheet.Sheet, mode Mode, opts Options) error {
	if opts.Format != FormatTable {
		if mode == ModeTexts {
			return sheet.PrintTexts(w)
		}
		return sheet.PrintValues(w)
	}

	size := sheet.PrintableSize()
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)

	header := table.Row{""}
	for col := 0; col < size.Cols; col++ {
		header = append(header, spreadsheet.ColumnName(col))
	}
	tw.AppendHeader(header)

	for row := 0; row < size.Rows; row++ {
		line := table.Row{strconv.Itoa(row + 1)}
		for col := 0; col < size.Cols; col++ {
			cell, err := sheet.Cell(spreadsheet.Position{Row: row, Col: col})
			if err != nil {
				return err
			}
			line = append(line, cellString(cell, mode, opts.ColorErrors))
		}
		tw.AppendRow(line)
	}

	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}

func cellString(cell *spreadsheet.Cell, mode Mode, colorErrors bool) string {
	if cell == nil {
		return ""
	}
	if mode == ModeTexts {
		return cell.Text()
	}

	value := cell.Value()
	if _, isError := value.(spreadsheet.FormulaError); isError && colorErrors {
		return text.FgRed.Sprint(value.String())
	}
	return value.String()
}
