package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	envBotToken = "TELEGRAM_BOT_TOKEN"
	envChatID   = "TELEGRAM_CHAT_ID"
)

func LoadConfig(filePath string) (*Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close config file: %v", closeErr)
		}
	}()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &cfg, nil
}

// applyEnv lets the environment override the delivery credentials so the
// config file never has to hold secrets. Both values are optional; when
// either is missing the notifier degrades to log-only mode.
func (c *Config) applyEnv() {
	if v := os.Getenv(envBotToken); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv(envChatID); v != "" {
		c.Telegram.ChatID = v
	}
}
