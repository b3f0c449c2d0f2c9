package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds CLI configuration stored at ~/.faro/config.
type Config struct {
	APIURL     string `yaml:"api_url"`
	APIKey     string `yaml:"api_key,omitempty"`
	Username   string `yaml:"username"`
	WebhookURL string `yaml:"webhook_url,omitempty"`
	Theme      string `yaml:"theme,omitempty"`
	VimKeys    bool   `yaml:"vim_keys,omitempty"`
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".faro", "config")
}

// Load reads and parses the config file. Returns error if missing or insecure.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyEnv()

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("config missing api_url")
	}

	return &cfg, nil
}

// ApplyEnv overlays FARO_* environment variables on top of the file values.
// Variables win over the file so a .env can retarget a shared config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("FARO_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("FARO_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("FARO_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("FARO_WEBHOOK_URL"); v != "" {
		c.WebhookURL = v
	}
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
