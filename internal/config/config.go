package config

import (
	"fmt"
	"time"
)

type Config struct {
	Listing             ListingConfig       `yaml:"listing"`
	Browser             BrowserConfig       `yaml:"browser"`
	HTTP                HTTPConfig          `yaml:"http"`
	RateLimit           RateLimitConfig     `yaml:"rate_limit"`
	RobotsCacheTTLHours int                 `yaml:"robots_cache_ttl_hours"`
	Filter              FilterConfig        `yaml:"filter"`
	SelectorsFile       string              `yaml:"selectors_file"`
	Telegram            TelegramConfig      `yaml:"telegram"`
	Scheduler           SchedulerConfig     `yaml:"scheduler"`
	Observability       ObservabilityConfig `yaml:"observability"`
}

type ListingConfig struct {
	URL       string `yaml:"url"`
	StateFile string `yaml:"state_file"`
	MaxSeen   int    `yaml:"max_seen"`
}

type BrowserConfig struct {
	// Engines are tried in order until one starts.
	Engines       []string `yaml:"engines"`
	ChromePath    string   `yaml:"chrome_path"`
	NavTimeoutS   int      `yaml:"nav_timeout_s"`
	RequestIdleMS int      `yaml:"request_idle_ms"`
}

type HTTPConfig struct {
	UserAgent        string `yaml:"user_agent"`
	AcceptLanguage   string `yaml:"accept_language"`
	ConnectTimeoutMS int    `yaml:"connect_timeout_ms"`
	TotalTimeoutMS   int    `yaml:"total_timeout_ms"`
	MaxRetries       int    `yaml:"max_retries"`
	BackoffMinMS     int    `yaml:"backoff_min_ms"`
	BackoffMaxMS     int    `yaml:"backoff_max_ms"`
	JitterPct        int    `yaml:"jitter_pct"`
}

type RateLimitConfig struct {
	MaxConcurrentPerHost int `yaml:"max_concurrent_per_host"`
	RPM                  int `yaml:"rpm"`
}

type FilterConfig struct {
	Markers []string `yaml:"markers"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

type SchedulerConfig struct {
	Mode      string `yaml:"mode"`
	IntervalS int    `yaml:"interval_s"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

const (
	DefaultMaxSeen       = 100
	DefaultNavTimeoutS   = 60
	DefaultRequestIdleMS = 500
)

// applyDefaults fills the values a minimal config file may omit.
func (c *Config) applyDefaults() {
	if c.Listing.MaxSeen <= 0 {
		c.Listing.MaxSeen = DefaultMaxSeen
	}
	if len(c.Browser.Engines) == 0 {
		c.Browser.Engines = []string{"chrome", "managed", "static"}
	}
	if c.Browser.NavTimeoutS <= 0 {
		c.Browser.NavTimeoutS = DefaultNavTimeoutS
	}
	if c.Browser.RequestIdleMS <= 0 {
		c.Browser.RequestIdleMS = DefaultRequestIdleMS
	}
	if c.Scheduler.Mode == "" {
		c.Scheduler.Mode = "oneshot"
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
}

// Validation
func (c *Config) Validate() error {
	if c.Listing.URL == "" {
		return fmt.Errorf("listing.url is required")
	}
	if c.Listing.StateFile == "" {
		return fmt.Errorf("listing.state_file is required")
	}
	if c.Listing.MaxSeen <= 0 {
		return fmt.Errorf("listing.max_seen must be > 0")
	}
	if len(c.Browser.Engines) == 0 {
		return fmt.Errorf("browser.engines must list at least one engine")
	}
	for _, name := range c.Browser.Engines {
		if name != "chrome" && name != "managed" && name != "static" {
			return fmt.Errorf("browser.engines: unknown engine %q", name)
		}
	}
	if c.Browser.NavTimeoutS <= 0 {
		return fmt.Errorf("browser.nav_timeout_s must be > 0")
	}
	if c.Browser.RequestIdleMS < 0 {
		return fmt.Errorf("browser.request_idle_ms must be >= 0")
	}
	if c.HTTP.ConnectTimeoutMS < 0 {
		return fmt.Errorf("http.connect_timeout_ms must be >= 0")
	}
	if c.HTTP.TotalTimeoutMS < 0 {
		return fmt.Errorf("http.total_timeout_ms must be >= 0")
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must be >= 0")
	}
	if c.HTTP.BackoffMinMS < 0 || c.HTTP.BackoffMaxMS < 0 {
		return fmt.Errorf("http backoff bounds must be >= 0")
	}
	if c.HTTP.BackoffMaxMS > 0 && c.HTTP.BackoffMinMS > c.HTTP.BackoffMaxMS {
		return fmt.Errorf("http.backoff_min_ms must be <= http.backoff_max_ms")
	}
	if c.HTTP.JitterPct < 0 || c.HTTP.JitterPct > 100 {
		return fmt.Errorf("http.jitter_pct must be between 0 and 100")
	}
	if c.RateLimit.MaxConcurrentPerHost < 0 {
		return fmt.Errorf("rate_limit.max_concurrent_per_host must be >= 0")
	}
	if c.RateLimit.RPM < 0 {
		return fmt.Errorf("rate_limit.rpm must be >= 0")
	}
	if c.RobotsCacheTTLHours < 0 {
		return fmt.Errorf("robots_cache_ttl_hours must be >= 0")
	}
	if c.Scheduler.Mode != "oneshot" && c.Scheduler.Mode != "interval" {
		return fmt.Errorf("scheduler.mode must be 'oneshot' or 'interval'")
	}
	if c.Scheduler.Mode == "interval" && c.Scheduler.IntervalS <= 0 {
		return fmt.Errorf("scheduler.interval_s must be > 0 when mode is 'interval'")
	}
	return nil
}

// Getters
func (c *Config) GetNavTimeout() time.Duration {
	return time.Duration(c.Browser.NavTimeoutS) * time.Second
}

func (c *Config) GetRequestIdleSettle() time.Duration {
	return time.Duration(c.Browser.RequestIdleMS) * time.Millisecond
}

func (c *Config) GetConnectTimeout() time.Duration {
	return time.Duration(c.HTTP.ConnectTimeoutMS) * time.Millisecond
}

func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetBackoffMin() time.Duration {
	return time.Duration(c.HTTP.BackoffMinMS) * time.Millisecond
}

func (c *Config) GetBackoffMax() time.Duration {
	return time.Duration(c.HTTP.BackoffMaxMS) * time.Millisecond
}

func (c *Config) GetRobotsCacheTTL() time.Duration {
	return time.Duration(c.RobotsCacheTTLHours) * time.Hour
}

func (c *Config) GetSchedulerInterval() time.Duration {
	return time.Duration(c.Scheduler.IntervalS) * time.Second
}
