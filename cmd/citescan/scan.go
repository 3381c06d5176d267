package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citescan/citescan/internal/cli"
	"github.com/citescan/citescan/internal/engine"
	"github.com/citescan/citescan/internal/health"
	"github.com/citescan/citescan/internal/scrape"
)

func scanCmd() *cobra.Command {
	var (
		clientID string
		history  bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan directories for citation consistency",
		Long: `Run a citation scan for one client: look the business up in every
healthy directory, compare the listed name, address, and phone against
the canonical identity, and store the scored result.

With --history, show past scan aggregates instead of running a new scan.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			client, err := store.GetClient(ctx, clientID)
			if err != nil {
				return fmt.Errorf("failed to load client %q: %w", clientID, err)
			}

			if history {
				scans, listErr := store.ListScans(ctx, clientID, 20)
				if listErr != nil {
					return fmt.Errorf("failed to list scans: %w", listErr)
				}
				fmt.Print(cli.RenderScanHistory(client, scans))
				return nil
			}

			scraper := scrape.New()
			monitor := health.New(store, scraper)
			eng := engine.New(store, scraper, monitor, store)

			scan, err := eng.RunScan(ctx, clientID)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if asJSON {
				out, marshalErr := json.MarshalIndent(scan, "", "  ")
				if marshalErr != nil {
					return fmt.Errorf("failed to encode scan: %w", marshalErr)
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Print(cli.RenderScanReport(client, scan))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "client ID to scan (required)")
	cmd.Flags().BoolVar(&history, "history", false, "show past scans instead of running a new one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the scan result as JSON")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}
