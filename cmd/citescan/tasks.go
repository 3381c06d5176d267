package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/citescan/citescan/internal/cli"
	"github.com/citescan/citescan/internal/model"
)

func tasksCmd() *cobra.Command {
	var clientID string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List fix-up tasks for a client",
		Long:  `Show the remediation tasks queued by past citation scans, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tasks, err := store.ListTasks(ctx, clientID)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No tasks queued for this client."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Priority"),
				cli.BoldStyle.Render("Directory"),
				cli.BoldStyle.Render("Title"),
				cli.BoldStyle.Render("Created"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 16),
				strings.Repeat("-", 40),
				strings.Repeat("-", 16))

			for _, task := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					priorityStyle(task.Priority).Render(string(task.Priority)),
					task.DirectoryKey,
					task.Title,
					task.CreatedAt.Format("2006-01-02 15:04"))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "client ID (required)")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func priorityStyle(p model.TaskPriority) lipgloss.Style {
	switch p {
	case model.PriorityP1:
		return cli.ErrorStyle
	case model.PriorityP2:
		return cli.WarningStyle
	default:
		return cli.SubtleStyle
	}
}
