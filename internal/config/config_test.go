package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfigYAML() string {
	return `
listing:
  url: "https://example.test/bizpbanc-ongoing.do"
  state_file: "last_seen.json"
scheduler:
  mode: "oneshot"
`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfigYAML()))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Listing.MaxSeen != DefaultMaxSeen {
		t.Errorf("MaxSeen = %d, want %d", cfg.Listing.MaxSeen, DefaultMaxSeen)
	}
	if cfg.Browser.NavTimeoutS != DefaultNavTimeoutS {
		t.Errorf("NavTimeoutS = %d, want %d", cfg.Browser.NavTimeoutS, DefaultNavTimeoutS)
	}
	if len(cfg.Browser.Engines) != 3 {
		t.Errorf("Engines = %v, want the full default chain", cfg.Browser.Engines)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigEnvOverridesTelegram(t *testing.T) {
	t.Setenv(envBotToken, "env-token")
	t.Setenv(envChatID, "env-chat")

	cfg, err := LoadConfig(writeConfig(t, validConfigYAML()+`
telegram:
  bot_token: "file-token"
  chat_id: "file-chat"
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("BotToken = %q, want env override", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != "env-chat" {
		t.Errorf("ChatID = %q, want env override", cfg.Telegram.ChatID)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Listing.URL = "https://example.test/"
		cfg.Listing.StateFile = "last_seen.json"
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing url", func(c *Config) { c.Listing.URL = "" }, true},
		{"missing state file", func(c *Config) { c.Listing.StateFile = "" }, true},
		{"unknown engine", func(c *Config) { c.Browser.Engines = []string{"webkit"} }, true},
		{"no engines", func(c *Config) { c.Browser.Engines = nil }, true},
		{"bad scheduler mode", func(c *Config) { c.Scheduler.Mode = "cron" }, true},
		{"interval without period", func(c *Config) { c.Scheduler.Mode = "interval" }, true},
		{"interval with period", func(c *Config) { c.Scheduler.Mode = "interval"; c.Scheduler.IntervalS = 600 }, false},
		{"backoff min above max", func(c *Config) { c.HTTP.BackoffMinMS = 100; c.HTTP.BackoffMaxMS = 10 }, true},
		{"jitter out of range", func(c *Config) { c.HTTP.JitterPct = 150 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
