package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vogtb/go-spreadsheet/internal/ctxlog"
	"github.com/vogtb/go-spreadsheet/internal/render"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

func newEvalCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <CELL=content>...",
		Short: "Set cells in order and print the sheet",
		Long: `Apply each assignment in order, then print the sheet. Everything after
the first '=' is the cell content, so a formula needs two:

  gridcalc eval A1=5 B1==A1*2 --format table`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, renderOpts, err := opts.renderOptions()
			if err != nil {
				return err
			}

			logger := ctxlog.FromContext(cmd.Context())
			sheet := spreadsheet.NewSheet(spreadsheet.WithLogger(logger))
			for _, arg := range args {
				cell, content, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("assignment %q has no '='", arg)
				}
				if err := sheet.SetCell(spreadsheet.ParsePosition(cell), content); err != nil {
					return fmt.Errorf("%s: %w", cell, err)
				}
			}

			return render.Render(cmd.OutOrStdout(), sheet, mode, renderOpts)
		},
	}
}
