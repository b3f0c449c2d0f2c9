package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelialabs/faro/internal/config"
)

func testBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func leadsHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/leads":
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": "l-1", "name": "Acme Roofing", "status": "New", "clase": "A", "email": "info@acme.test", "isSynced": true},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestRunLoginSavesConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := testBackend(t, leadsHandler(t))

	var out bytes.Buffer
	err := RunLogin(strings.NewReader(""), &out, LoginOptions{
		URL:      srv.URL,
		Username: "maria",
		APIKey:   "faro_key",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "logged in as maria")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, srv.URL, cfg.APIURL)
	assert.Equal(t, "maria", cfg.Username)
	assert.Equal(t, "faro_key", cfg.APIKey)
}

func TestRunLoginPromptsForMissingFields(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := testBackend(t, leadsHandler(t))

	var out bytes.Buffer
	in := strings.NewReader(srv.URL + "\nmaria\n\n")
	err := RunLogin(in, &out, LoginOptions{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "server url")
	assert.Contains(t, out.String(), "username")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "maria", cfg.Username)
	assert.Empty(t, cfg.APIKey)
}

func TestRunLoginRejectsUnreachableBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	err := RunLogin(strings.NewReader(""), &out, LoginOptions{
		URL:      "http://127.0.0.1:1",
		Username: "maria",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not reach")
}

func TestRunLoginRequiresUsername(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	err := RunLogin(strings.NewReader("\n\n\n"), &out, LoginOptions{URL: "http://localhost:0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username is required")
}

func TestLeadsCmdListsLeads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := testBackend(t, leadsHandler(t))

	cfg := &config.Config{APIURL: srv.URL, Username: "maria"}
	require.NoError(t, cfg.Save())

	cmd := LeadsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Acme Roofing")
	assert.Contains(t, out.String(), "NAME")
}

func TestLeadsCmdRequiresConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := LeadsCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}
