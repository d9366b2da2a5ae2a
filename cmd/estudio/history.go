// Snapshot history command and the post-persist commit hook.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/history"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded snapshots of the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := history.Open(cfg.DataDir, cfg.History.AuthorName, cfg.History.AuthorEmail)
		if err != nil {
			return err
		}
		commits, err := repo.Log(cmd.Context(), flagHistoryLimit)
		if err != nil {
			return err
		}
		if len(commits) == 0 {
			fmt.Println("Nenhum snapshot registrado.")
			return nil
		}
		for _, c := range commits {
			fmt.Printf("%s  %s  %s\n", c.Hash[:8], c.Timestamp.Format("2006-01-02 15:04"), strings.TrimSpace(c.Message))
		}
		return nil
	},
}

// commitSnapshot records a history snapshot of the data directory if
// history is enabled. Best-effort: failures are logged, never fatal.
func commitSnapshot(ctx context.Context, msg string) {
	if cfg == nil || !cfg.History.Enabled {
		return
	}
	repo, err := history.Open(cfg.DataDir, cfg.History.AuthorName, cfg.History.AuthorEmail)
	if err != nil {
		slog.WarnContext(ctx, "Failed to open history repo", "err", err)
		return
	}
	if _, err := repo.Snapshot(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Failed to record snapshot", "err", err)
	}
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Maximum snapshots to list")
	rootCmd.AddCommand(historyCmd)
}
