package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/citescan/citescan/internal/cli"
	"github.com/citescan/citescan/internal/model"
	"github.com/citescan/citescan/internal/registry"
)

func directoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "directories",
		Short: "List supported directories and their health",
		Long: `Show every directory the scanner knows about, its importance tier,
its search strategy, and the current circuit-breaker state from the
most recent probes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.ListDirectoryHealth(ctx)
			if err != nil {
				return fmt.Errorf("failed to load directory health: %w", err)
			}
			byKey := make(map[string]model.DirectoryHealth, len(records))
			for _, rec := range records {
				byKey[rec.Key] = rec
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Directory"),
				cli.BoldStyle.Render("Importance"),
				cli.BoldStyle.Render("Strategy"),
				cli.BoldStyle.Render("Status"),
				cli.BoldStyle.Render("Last Checked"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 22),
				strings.Repeat("-", 10),
				strings.Repeat("-", 12),
				strings.Repeat("-", 10),
				strings.Repeat("-", 16))

			for _, dir := range registry.All() {
				status := cli.SuccessStyle.Render("active")
				lastChecked := cli.SubtleStyle.Render("never")
				if rec, ok := byKey[dir.Key]; ok {
					if rec.IsDegraded {
						status = cli.ErrorStyle.Render(fmt.Sprintf("degraded (%d fails)", rec.ConsecutiveFailures))
					}
					if !rec.LastCheckedAt.IsZero() {
						lastChecked = rec.LastCheckedAt.Format("2006-01-02 15:04")
					}
				}
				if dir.Strategy == model.StrategyExternalAPI {
					status = cli.SubtleStyle.Render("external")
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					dir.DisplayName, dir.Importance, dir.Strategy, status, lastChecked)
			}

			return nil
		},
	}
}
