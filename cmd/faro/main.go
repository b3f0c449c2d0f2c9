package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aurelialabs/faro/internal/api"
	"github.com/aurelialabs/faro/internal/cmd"
	"github.com/aurelialabs/faro/internal/config"
	"github.com/aurelialabs/faro/internal/draft"
	"github.com/aurelialabs/faro/internal/state"
	"github.com/aurelialabs/faro/internal/ui"
)

func main() {
	// Local overrides for development; missing .env is fine.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "faro",
		Short: "Faro - lead and client workspace",
		Long:  "Faro CLI: browse leads and clients, write notes, and track support tickets against a CRM backend.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.LeadsCmd())
	root.AddCommand(cmd.ClientsCmd())
	root.AddCommand(cmd.TicketsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("not logged in. run 'faro login' first.")
		}
		return err
	}

	client := api.NewClient(cfg.APIURL, cfg.APIKey)
	if cfg.WebhookURL != "" {
		client.SetWebhookURL(cfg.WebhookURL)
	}

	logger := newFileLogger()
	drafts := draft.Open(draft.DefaultBasePath(), logger)
	notices := ui.NewNoticeQueue()
	engine := state.New(client, drafts, notices, logger)

	app := ui.NewApp(engine, cfg, notices)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// newFileLogger logs to ~/.faro/faro.log; stderr is unusable while the
// TUI owns the terminal.
func newFileLogger() *slog.Logger {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	dir := filepath.Join(home, ".faro")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "faro.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil
	}
	return slog.New(slog.NewTextHandler(f, nil))
}
