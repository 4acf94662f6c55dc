// Package script loads declarative edit scripts and replays them against a
// spreadsheet.Sheet.
//
// A script is an ordered list of steps. Each step either sets a cell, clears
// a cell, prints the sheet, or checks a cell's value or text. Scripts can be
// written in YAML:
//
//	steps:
//	  - set: A1
//	    content: "5"
//	  - set: B1
//	    content: "=A1+3"
//	  - expect: B1
//	    value: "8"
//	  - print: values
//
// or in HCL, where the cell is the block label and step order is the order
// of blocks in the file:
//
//	set "A1" { content = 5 }
//	set "B1" { content = "=A1+3" }
//	expect "B1" { value = 8 }
//	print { mode = "values" }
//
// Both loaders produce the same format-agnostic Model.
package script
