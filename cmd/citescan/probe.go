package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/citescan/citescan/internal/cli"
	"github.com/citescan/citescan/internal/health"
	"github.com/citescan/citescan/internal/model"
	"github.com/citescan/citescan/internal/registry"
	"github.com/citescan/citescan/internal/scrape"
)

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Probe directory health",
		Long: `Run a known-entity probe against every scrapeable directory and
update the per-directory circuit breakers. Directories that fail twice
in a row are excluded from scans until a probe succeeds again.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			monitor := health.New(store, scrape.New())

			total := 0
			for _, dir := range registry.All() {
				if dir.Strategy == model.StrategyURLTemplate {
					total++
				}
			}

			bar := progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Probing directories...[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)

			report, err := monitor.RunProbeCycle(ctx, func(key string) {
				bar.Describe(fmt.Sprintf("[cyan]Probing[reset] %s", key))
				if addErr := bar.Add(1); addErr != nil {
					slog.Warn("Failed to advance progress bar", "error", addErr)
				}
			})
			if err != nil {
				return fmt.Errorf("probe cycle failed: %w", err)
			}
			_ = bar.Finish()

			fmt.Println(cli.TitleStyle.Render("Probe Report"))
			fmt.Printf("Checked %d directories: %s, %s\n",
				report.Checked,
				cli.SuccessStyle.Render(fmt.Sprintf("%d passed", report.Passed)),
				cli.ErrorStyle.Render(fmt.Sprintf("%d failed", report.Failed)))
			if len(report.Degraded) > 0 {
				fmt.Printf("Newly degraded: %s\n",
					cli.ErrorStyle.Render(strings.Join(report.Degraded, ", ")))
			}
			if len(report.Recovered) > 0 {
				fmt.Printf("Recovered: %s\n",
					cli.SuccessStyle.Render(strings.Join(report.Recovered, ", ")))
			}

			return nil
		},
	}
}
