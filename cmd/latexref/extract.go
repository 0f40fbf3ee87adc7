package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"latexref/internal/config"
	"latexref/internal/corpus"
	"latexref/internal/extract"
	"latexref/internal/storage"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		bookDir         string
		units           []string
		output          string
		dbPath          string
		skipParseErrors bool
		strict          bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Write every LaTeX macro used in the book to a list file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("book") {
				cfg.BookDir = bookDir
			}
			if flags.Changed("units") {
				cfg.Units = units
			}
			if flags.Changed("output") {
				cfg.OutputPath = output
			}
			if flags.Changed("db") {
				cfg.DBPath = dbPath
			}
			if flags.Changed("skip-parse-errors") {
				cfg.ParseErrors = config.ParseErrorsFail
				if skipParseErrors {
					cfg.ParseErrors = config.ParseErrorsSkip
				}
			}
			if flags.Changed("strict") {
				cfg.StrictLaTeX = strict
			}

			if err := cfg.ValidateExtract(); err != nil {
				return err
			}

			var runs storage.RunStore
			if cfg.DBPath != "" {
				db, err := openHistory(cfg.DBPath)
				if err != nil {
					return err
				}
				defer func() {
					_ = db.Close()
				}()
				runs = storage.NewRunRepo(db)
			}

			pipeline := extract.NewPipeline(
				corpus.NewScanner(cfg.BookDir, cfg.Units),
				runs,
				extract.Options{
					OutputPath:      cfg.OutputPath,
					Denylist:        cfg.Denylist,
					SkipParseErrors: cfg.ParseErrors == config.ParseErrorsSkip,
					Strict:          cfg.StrictLaTeX,
				},
			)

			result, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d macros from %d files written to %s\n",
				len(result.Macros), result.Files, cfg.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", "", "book directory (overrides BOOK_DIR)")
	cmd.Flags().StringSliceVar(&units, "units", nil, "unit folders to scan (overrides BOOK_UNITS)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "macro list file (overrides MACROS_OUTPUT)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite run history (overrides DB_PATH)")
	cmd.Flags().BoolVar(&skipParseErrors, "skip-parse-errors", false, "skip files the LaTeX parser rejects")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject unbalanced LaTeX")

	return cmd
}

// openHistory opens the run history database and applies migrations.
func openHistory(path string) (*sql.DB, error) {
	db, err := storage.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
