package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"latexref/internal/storage"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		dbPath string
		limit  int
		top    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent extraction runs and their most used macros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("db") {
				dbPath = a.cfg.DBPath
			}
			if dbPath == "" {
				return fmt.Errorf("DB_PATH (or --db) is required for history")
			}

			db, err := openHistory(dbPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			return printHistory(cmd, storage.NewRunRepo(db), limit, top)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite run history (overrides DB_PATH)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to list")
	cmd.Flags().IntVar(&top, "top", 5, "most used macros shown per run")

	return cmd
}

func printHistory(cmd *cobra.Command, runs storage.RunStore, limit, top int) error {
	ctx := cmd.Context()

	recent, err := runs.ListRecent(ctx, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(recent) == 0 {
		_, _ = fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RUN\tCREATED\tFILES\tMACROS\tTOP")
	for _, run := range recent {
		usage, err := runs.Usage(ctx, run.ID)
		if err != nil {
			return fmt.Errorf("failed to load usage for run %s: %w", run.ID, err)
		}

		var names []string
		for i, u := range usage {
			if i == top {
				break
			}
			names = append(names, fmt.Sprintf("%s(%d)", u.Macro, u.Files))
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04"), run.FileCount, run.MacroCount, strings.Join(names, " "))
	}

	return w.Flush()
}
