package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vogtb/go-spreadsheet/internal/ctxlog"
	"github.com/vogtb/go-spreadsheet/internal/render"
	"github.com/vogtb/go-spreadsheet/internal/script"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (bad arguments, unreadable script, rejected edit).
	ExitCodeError = 1
	// ExitCodeExpectationFailed indicates a script ran but some expect steps did not hold.
	ExitCodeExpectationFailed = 2
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	logLevel    string
	format      string
	mode        string
	colorErrors bool
}

func (o *globalOptions) renderOptions() (render.Mode, render.Options, error) {
	mode, err := render.ParseMode(o.mode)
	if err != nil {
		return "", render.Options{}, err
	}
	format, err := render.ParseFormat(o.format)
	if err != nil {
		return "", render.Options{}, err
	}
	return mode, render.Options{Format: format, ColorErrors: o.colorErrors}, nil
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "gridcalc",
		Short: "Evaluate spreadsheet cells from the command line",
		Long: `gridcalc drives a single in-memory sheet of cells holding text or
formulas like =A1+B2*3. Cells can be set ad hoc with "eval" or replayed
from a YAML or HCL script with "run".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd, opts.logLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
			return nil
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "gridcalc version %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.format, "format", string(render.FormatTSV), "output layout (tsv, table)")
	flags.StringVar(&opts.mode, "mode", string(render.ModeValues), "what to print for each cell (values, texts)")
	flags.BoolVar(&opts.colorErrors, "color-errors", false, "highlight formula errors in table output")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newEvalCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newLogger(cmd *cobra.Command, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}

// execute runs the command tree and maps the result to an exit code.
func execute(args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return ExitCodeSuccess
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	return getExitCode(err)
}

// getExitCode determines the exit code based on the error type.
func getExitCode(err error) int {
	var expErr *script.ExpectationError
	if errors.As(err, &expErr) {
		return ExitCodeExpectationFailed
	}
	return ExitCodeError
}
