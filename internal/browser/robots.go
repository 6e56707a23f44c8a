package browser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"kstartup-pbanc-watcher/internal/observability"
)

// RobotsCache caches parsed robots.txt per host with a TTL. Any failure
// to fetch or parse is treated as "allowed": robots.txt is advisory and
// must not break a crawl.
type RobotsCache struct {
	cache  map[string]*robotsEntry
	ttl    time.Duration
	mu     sync.RWMutex
	logger *observability.Logger
}

type robotsEntry struct {
	data      *robotstxt.RobotsData
	expiresAt time.Time
}

func NewRobotsCache(ttl time.Duration, logger *observability.Logger) *RobotsCache {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &RobotsCache{
		cache:  make(map[string]*robotsEntry),
		ttl:    ttl,
		logger: logger,
	}
}

func (rc *RobotsCache) Allowed(ctx context.Context, client *http.Client, agent string, pageURL *url.URL) bool {
	host := pageURL.Host

	rc.mu.RLock()
	entry, exists := rc.cache[host]
	rc.mu.RUnlock()

	if !exists || time.Now().After(entry.expiresAt) {
		entry = &robotsEntry{
			data:      rc.fetch(ctx, client, pageURL.Scheme, host),
			expiresAt: time.Now().Add(rc.ttl),
		}
		rc.mu.Lock()
		rc.cache[host] = entry
		rc.mu.Unlock()
	}

	if entry.data == nil {
		return true
	}
	return entry.data.TestAgent(pageURL.Path, agent)
}

func (rc *RobotsCache) fetch(ctx context.Context, client *http.Client, scheme, host string) *robotstxt.RobotsData {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}

	resp, err := client.Do(req)
	if err != nil {
		rc.logger.Debug("robots.txt fetch failed, assuming allowed", "host", host, "error", err.Error())
		return nil
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			rc.logger.Warn("Failed to close robots.txt body", "error", closeErr.Error())
		}
	}()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		rc.logger.Debug("robots.txt parse failed, assuming allowed", "host", host, "error", err.Error())
		return nil
	}
	return data
}
