package browser

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"kstartup-pbanc-watcher/internal/config"
	"kstartup-pbanc-watcher/internal/observability"
)

// StaticEngine is the last-resort engine: plain HTTP plus HTML parsing,
// no script execution. It carries the politeness stack (robots.txt,
// per-host rate limit, retry with backoff) since it talks to the site
// without a browser in between.
type StaticEngine struct {
	cfg    *config.Config
	logger *observability.Logger
}

func NewStaticEngine(cfg *config.Config, logger *observability.Logger) *StaticEngine {
	return &StaticEngine{cfg: cfg, logger: logger}
}

func (e *StaticEngine) Name() string {
	return "static"
}

func (e *StaticEngine) Start(ctx context.Context) (Session, error) {
	client := &http.Client{
		Timeout: e.cfg.GetTotalTimeout(),
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: e.cfg.GetConnectTimeout(),
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	maxConcurrent := e.cfg.RateLimit.MaxConcurrentPerHost
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &staticSession{
		client:  client,
		cfg:     e.cfg,
		logger:  e.logger,
		robots:  NewRobotsCache(e.cfg.GetRobotsCacheTTL(), e.logger),
		limiter: NewHostLimiter(maxConcurrent, e.cfg.RateLimit.RPM),
	}, nil
}

type staticSession struct {
	client  *http.Client
	cfg     *config.Config
	logger  *observability.Logger
	robots  *RobotsCache
	limiter *HostLimiter

	// Last fetched page, kept for diagnostics.
	lastURL  string
	lastHTML string
}

func (s *staticSession) Navigate(ctx context.Context, urlStr string) (*Page, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	host := parsedURL.Host

	allowed := s.robots.Allowed(ctx, s.client, s.cfg.HTTP.UserAgent, parsedURL)
	if !allowed {
		return nil, fmt.Errorf("URL disallowed by robots.txt: %s", urlStr)
	}

	if err := s.limiter.Wait(ctx, host); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.GetNavTimeout())
	defer cancel()

	// Fetch with retries on transient server errors.
	var lastErr error
	for attempt := 0; attempt <= s.cfg.HTTP.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := s.calculateBackoff(attempt)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, status, err := s.fetchOnce(ctx, urlStr)
		if err != nil {
			lastErr = err
			continue
		}

		if status >= 500 || status == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("server error: %d", status)
			continue
		}
		if status >= 400 {
			return nil, fmt.Errorf("fetch of %s failed: status %d", urlStr, status)
		}

		s.lastURL = urlStr
		s.lastHTML = body
		return newPage(urlStr, body, nil)
	}

	return nil, fmt.Errorf("fetch of %s failed after %d retries: %w", urlStr, s.cfg.HTTP.MaxRetries, lastErr)
}

func (s *staticSession) fetchOnce(ctx context.Context, urlStr string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", 0, err
	}

	req.Header.Set("User-Agent", s.cfg.HTTP.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	if lang := s.cfg.HTTP.AcceptLanguage; lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.logger.Warn("Failed to close response body", "error", closeErr.Error())
		}
	}()

	reader := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", 0, err
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", 0, err
	}

	return string(body), resp.StatusCode, nil
}

func (s *staticSession) calculateBackoff(attempt int) time.Duration {
	minMS := s.cfg.HTTP.BackoffMinMS
	maxMS := s.cfg.HTTP.BackoffMaxMS
	if minMS <= 0 {
		minMS = 250
	}
	if maxMS <= 0 {
		maxMS = 2000
	}

	// Exponential: min * 2^(attempt-1), capped at max
	exponential := minMS * (1 << uint(attempt-1))
	if exponential > maxMS {
		exponential = maxMS
	}

	// Jitter: ±jitter_pct%
	jitterRange := float64(exponential) * float64(s.cfg.HTTP.JitterPct) / 100
	jitter := (rand.Float64() - 0.5) * 2 * jitterRange
	finalMS := math.Max(float64(exponential)+jitter, float64(minMS))

	return time.Duration(finalMS) * time.Millisecond
}

// Diagnostics for the static engine can only dump the last HTML body;
// there is no live page to screenshot.
func (s *staticSession) Diagnostics(screenshotPath, htmlPath string) {
	if s.lastHTML == "" {
		return
	}
	if err := os.WriteFile(htmlPath, []byte(s.lastHTML), 0o644); err != nil {
		s.logger.Warn("Diagnostic HTML dump failed", "url", s.lastURL, "error", err.Error())
	}
}

func (s *staticSession) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
