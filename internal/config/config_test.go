package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Environment != "local" {
		t.Fatalf("expected default environment local, got %q", cfg.Environment)
	}
	if cfg.ClusterThreshold != 0.3 {
		t.Fatalf("expected default threshold 0.3, got %v", cfg.ClusterThreshold)
	}
	if cfg.GroupsPerPage != 9 {
		t.Fatalf("expected default page size 9, got %d", cfg.GroupsPerPage)
	}
	if cfg.FetchTimeout() != 20*time.Second {
		t.Fatalf("expected default fetch timeout 20s, got %v", cfg.FetchTimeout())
	}
	if cfg.CacheTTL() != 5*time.Minute {
		t.Fatalf("expected default cache ttl 5m, got %v", cfg.CacheTTL())
	}
}

func TestLoad_InvalidThreshold(t *testing.T) {
	t.Setenv("SF_CLUSTER_THRESHOLD", "1.5")

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error for threshold above 1")
	}
}

func TestLoad_InvalidFetchTimeout(t *testing.T) {
	t.Setenv("SF_FETCH_TIMEOUT_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error for zero fetch timeout")
	}
}

func TestRSSFeedURLList(t *testing.T) {
	cfg := &Config{RSSFeedURLs: " https://a.example/feed.xml, https://b.example/rss ,,https://a.example/feed.xml "}

	urls := cfg.RSSFeedURLList()
	if len(urls) != 2 {
		t.Fatalf("expected 2 deduplicated urls, got %v", urls)
	}
	if urls[0] != "https://a.example/feed.xml" || urls[1] != "https://b.example/rss" {
		t.Fatalf("unexpected urls: %v", urls)
	}
}
