package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/aurelialabs/faro/internal/api"
	"github.com/aurelialabs/faro/internal/config"
	"github.com/aurelialabs/faro/internal/state"
)

var (
	syncedMark   = color.New(color.FgGreen).SprintFunc()
	unsyncedMark = color.New(color.FgYellow).SprintFunc()
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func loadClient() (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("not logged in: %w", err)
	}
	client := api.NewClient(cfg.APIURL, cfg.APIKey)
	if cfg.WebhookURL != "" {
		client.SetWebhookURL(cfg.WebhookURL)
	}
	return client, nil
}

// LeadsCmd returns the `faro leads` command.
func LeadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leads",
		Short: "List leads without opening the TUI",
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := loadClient()
			if err != nil {
				return err
			}
			leads, err := client.FetchLeads()
			if err != nil {
				return fmt.Errorf("fetch leads: %w", err)
			}
			printEntities(c.OutOrStdout(), "LEADS", leads)
			return nil
		},
	}
}

// ClientsCmd returns the `faro clients` command.
func ClientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "List clients without opening the TUI",
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := loadClient()
			if err != nil {
				return err
			}
			clients, err := client.FetchClients()
			if err != nil {
				return fmt.Errorf("fetch clients: %w", err)
			}
			printEntities(c.OutOrStdout(), "CLIENTS", clients)
			return nil
		},
	}
}

// TicketsCmd returns the `faro tickets` command.
func TicketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tickets",
		Short: "List support tickets",
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := loadClient()
			if err != nil {
				return err
			}
			tickets, err := client.FetchSupportTickets()
			if err != nil {
				return fmt.Errorf("fetch tickets: %w", err)
			}
			out := c.OutOrStdout()
			if len(tickets) == 0 {
				fmt.Fprintln(out, "no tickets found")
				return nil
			}
			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow(headerColor("TITLE"), headerColor("STATUS"), headerColor("EDITED"))
			for _, t := range tickets {
				edited := ""
				if !t.LastEdited.IsZero() {
					edited = t.LastEdited.Local().Format("2006-01-02 15:04")
				}
				table.AddRow(t.Title, t.Status, edited)
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
}

func printEntities(out io.Writer, label string, items []state.Entity) {
	if len(items) == 0 {
		fmt.Fprintf(out, "no %s found\n", label)
		return
	}
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow(headerColor("NAME"), headerColor("STATUS"), headerColor("CLASS"), headerColor("EMAIL"), headerColor("SYNC"))
	for _, e := range items {
		sync := syncedMark("synced")
		if !e.Synced {
			sync = unsyncedMark("local")
		}
		table.AddRow(e.Name, e.Status, e.Class, e.Email, sync)
	}
	fmt.Fprintln(out, table)
}
