package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/citescan/citescan/internal/cli"
	"github.com/citescan/citescan/internal/model"
)

func clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage client identities",
		Long:  `Add and list the canonical business identities that scans compare against.`,
	}

	cmd.AddCommand(addClientCmd())
	cmd.AddCommand(listClientsCmd())

	return cmd
}

func addClientCmd() *cobra.Command {
	var (
		name   string
		street string
		city   string
		state  string
		phone  string
	)

	cmd := &cobra.Command{
		Use:   "add <client-id>",
		Short: "Add or update a client",
		Long:  `Store the canonical name, address, and phone for a client. Re-running with the same ID overwrites the identity.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			client := &model.CanonicalIdentity{
				ClientID:     args[0],
				BusinessName: name,
				Street:       street,
				City:         city,
				State:        state,
				Phone:        phone,
			}
			if err := store.SaveClient(ctx, client); err != nil {
				return fmt.Errorf("failed to save client: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Saved client %q (%s)", client.ClientID, client.BusinessName)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "canonical business name (required)")
	cmd.Flags().StringVar(&street, "street", "", "street address")
	cmd.Flags().StringVar(&city, "city", "", "city")
	cmd.Flags().StringVar(&state, "state", "", "two-letter state code")
	cmd.Flags().StringVar(&phone, "phone", "", "primary phone number")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func listClientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			clients, err := store.ListClients(ctx)
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			if len(clients) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No clients found. Use 'citescan clients add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Address"),
				cli.BoldStyle.Render("Phone"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 24),
				strings.Repeat("-", 32),
				strings.Repeat("-", 12))

			for i := range clients {
				c := &clients[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ClientID, c.BusinessName, c.Address(), c.Phone)
			}

			return nil
		},
	}
}
