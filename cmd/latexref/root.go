package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"latexref/internal/config"
	"latexref/internal/contextutil"
)

// app carries what the subcommands share once the root command has run.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "latexref",
		Short: "Collect the LaTeX macros a book uses and turn them into a reference",
		Long: `latexref scans the markdown and notebook sources of a book, writes every
distinct LaTeX macro they use to a list file, and can ask a chat completion
service to organize that list into a categorized markdown reference.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cmd.ErrOrStderr(), cfg)
			slog.SetDefault(a.logger)
			slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

			cmd.SetContext(contextutil.WithLogger(cmd.Context(), a.logger))
			return nil
		},
	}

	rootCmd.AddCommand(
		newExtractCmd(a),
		newReferenceCmd(a),
		newHistoryCmd(a),
	)

	return rootCmd
}

// newLogger builds the text or JSON handler the configuration asks for.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
