package main

import (
	"github.com/spf13/cobra"

	"github.com/vogtb/go-spreadsheet/internal/ctxlog"
	"github.com/vogtb/go-spreadsheet/internal/script"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

func newRunCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Replay a YAML or HCL edit script",
		Long: `Replay the steps of a script (.yaml, .yml or .hcl) against an empty
sheet. Print steps write to stdout using --format; if any expect step
fails the command exits with status 2.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, renderOpts, err := opts.renderOptions()
			if err != nil {
				return err
			}

			model, err := script.Load(ctx, args[0])
			if err != nil {
				return err
			}

			sheet := spreadsheet.NewSheet(spreadsheet.WithLogger(ctxlog.FromContext(ctx)))
			return script.NewRunner(sheet, cmd.OutOrStdout(), renderOpts).Run(ctx, model)
		},
	}
}
