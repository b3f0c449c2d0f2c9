package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aurelialabs/faro/internal/api"
	"github.com/aurelialabs/faro/internal/config"
)

// LoginOptions carries the non-interactive answers for login. Empty
// fields are prompted for.
type LoginOptions struct {
	URL        string
	APIKey     string
	Username   string
	WebhookURL string
}

// RunLogin collects connection settings and persists them to the config
// file. The backend is probed with a cheap read before saving so a typo
// in the URL or key fails here instead of at first use.
func RunLogin(in io.Reader, out io.Writer, opts LoginOptions) error {
	reader := bufio.NewReader(in)

	prompt := func(label, current, fallback string) string {
		if current != "" {
			return current
		}
		if fallback != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, fallback)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return fallback
		}
		return line
	}

	url := prompt("server url", opts.URL, api.DefaultBaseURL)
	username := prompt("username", opts.Username, "")
	if username == "" {
		return fmt.Errorf("username is required")
	}
	apiKey := prompt("api key (optional)", opts.APIKey, "")

	client := api.NewClient(url, apiKey)
	if _, err := client.FetchLeads(); err != nil {
		return fmt.Errorf("could not reach %s: %w", url, err)
	}

	cfg := &config.Config{
		APIURL:     url,
		APIKey:     apiKey,
		Username:   username,
		WebhookURL: opts.WebhookURL,
		Theme:      "dark",
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "logged in as %s\n", username)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// LoginCmd returns the `faro login` command.
func LoginCmd() *cobra.Command {
	var opts LoginOptions
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Connect to a CRM backend and save the settings",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunLogin(os.Stdin, os.Stdout, opts)
		},
	}
	cmd.Flags().StringVar(&opts.URL, "url", "", "backend base URL")
	cmd.Flags().StringVar(&opts.APIKey, "key", "", "API key")
	cmd.Flags().StringVarP(&opts.Username, "user", "u", "", "agent name recorded on notes")
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook", "", "note notification webhook URL")
	return cmd
}
