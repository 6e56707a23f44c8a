package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestRobotsCacheDisallow(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	}))
	defer server.Close()

	cache := NewRobotsCache(time.Hour, testLogger())
	client := server.Client()
	ctx := context.Background()

	allowedURL, _ := url.Parse(server.URL + "/public/page")
	privateURL, _ := url.Parse(server.URL + "/private/page")

	if !cache.Allowed(ctx, client, "test-agent", allowedURL) {
		t.Error("public path should be allowed")
	}
	if cache.Allowed(ctx, client, "test-agent", privateURL) {
		t.Error("private path should be disallowed")
	}
	if fetches != 1 {
		t.Errorf("robots.txt fetched %d times, want 1 (cached)", fetches)
	}
}

func TestRobotsCacheMissingFileAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	cache := NewRobotsCache(time.Hour, testLogger())
	pageURL, _ := url.Parse(server.URL + "/anything")

	if !cache.Allowed(context.Background(), server.Client(), "test-agent", pageURL) {
		t.Error("missing robots.txt must allow")
	}
}

func TestRobotsCacheUnreachableHostAllows(t *testing.T) {
	cache := NewRobotsCache(time.Hour, testLogger())
	client := &http.Client{Timeout: 100 * time.Millisecond}
	pageURL, _ := url.Parse("http://127.0.0.1:1/page")

	if !cache.Allowed(context.Background(), client, "test-agent", pageURL) {
		t.Error("unreachable robots.txt must allow")
	}
}
