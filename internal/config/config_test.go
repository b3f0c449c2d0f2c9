package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveConfigCreatesDirectories(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Config{
		APIURL: "http://localhost:8000",
	}

	err := cfg.Save()
	require.NoError(t, err)

	path := Path()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigNonExistent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSaveLoadRoundtripWithAllFields(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	original := Config{
		APIURL:     "http://crm.internal:8000",
		APIKey:     "faro_verylongkeystring12345",
		Username:   "ana",
		WebhookURL: "https://hooks.example.test/notes",
		Theme:      "dark",
		VimKeys:    true,
	}

	err := original.Save()
	require.NoError(t, err)

	loaded, err := Load()
	require.NoError(t, err)

	assert.Equal(t, original.APIURL, loaded.APIURL)
	assert.Equal(t, original.APIKey, loaded.APIKey)
	assert.Equal(t, original.Username, loaded.Username)
	assert.Equal(t, original.WebhookURL, loaded.WebhookURL)
	assert.Equal(t, original.Theme, loaded.Theme)
	assert.Equal(t, original.VimKeys, loaded.VimKeys)
}

func TestSaveConfigOverwritesExisting(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg1 := Config{APIURL: "http://one:8000"}
	require.NoError(t, cfg1.Save())

	cfg2 := Config{APIURL: "http://two:8000"}
	require.NoError(t, cfg2.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://two:8000", loaded.APIURL)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfgDir := filepath.Join(dir, ".faro")
	os.MkdirAll(cfgDir, 0700)
	path := filepath.Join(cfgDir, "config")

	err := os.WriteFile(path, []byte(""), 0600)
	require.NoError(t, err)

	_, err = Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api_url")
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfgDir := filepath.Join(dir, ".faro")
	os.MkdirAll(cfgDir, 0700)
	path := filepath.Join(cfgDir, "config")

	err := os.WriteFile(path, []byte("invalid: yaml: content:"), 0600)
	require.NoError(t, err)

	_, err = Load()
	assert.Error(t, err)
}

func TestConfigPermissionsStrictlyEnforced(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Config{APIURL: "http://localhost:8000", APIKey: "secret"}
	require.NoError(t, cfg.Save())

	err := os.Chmod(Path(), 0644)
	require.NoError(t, err)

	_, err = Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestEnvOverridesFileValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FARO_API_URL", "http://override:9000")
	t.Setenv("FARO_USERNAME", "overridden")

	cfg := Config{APIURL: "http://file:8000", Username: "filed"}
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://override:9000", loaded.APIURL)
	assert.Equal(t, "overridden", loaded.Username)
}

func TestEnvCanSatisfyMissingAPIURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FARO_API_URL", "http://env-only:8000")

	cfg := Config{Username: "ana"}
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env-only:8000", loaded.APIURL)
}

func TestPathReturnsCorrectLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".faro")
	assert.Contains(t, path, "config")
}
