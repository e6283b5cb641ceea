package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	NewsAPIKey       string `envconfig:"NEWSAPI_API_KEY" default:""`
	GNewsAPIKey      string `envconfig:"GNEWS_API_KEY" default:""`
	MediastackAPIKey string `envconfig:"MEDIASTACK_API_KEY" default:""`
	RSSFeedURLs      string `envconfig:"RSS_FEED_URLS" default:""`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`

	FetchTimeoutSeconds    int `envconfig:"SF_FETCH_TIMEOUT_SECONDS" default:"20"`
	GenerateTimeoutSeconds int `envconfig:"SF_GENERATE_TIMEOUT_SECONDS" default:"25"`

	ClusterThreshold float64 `envconfig:"SF_CLUSTER_THRESHOLD" default:"0.3"`
	GroupsPerPage    int     `envconfig:"SF_GROUPS_PER_PAGE" default:"9"`

	CacheSize       int `envconfig:"SF_CACHE_SIZE" default:"256"`
	CacheTTLMinutes int `envconfig:"SF_CACHE_TTL_MINUTES" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.FetchTimeoutSeconds < 1 || c.FetchTimeoutSeconds > 120 {
		return fmt.Errorf("SF_FETCH_TIMEOUT_SECONDS must be between 1 and 120")
	}
	if c.GenerateTimeoutSeconds < 1 || c.GenerateTimeoutSeconds > 120 {
		return fmt.Errorf("SF_GENERATE_TIMEOUT_SECONDS must be between 1 and 120")
	}
	if c.ClusterThreshold <= 0 || c.ClusterThreshold > 1 {
		return fmt.Errorf("SF_CLUSTER_THRESHOLD must be in (0, 1]")
	}
	if c.GroupsPerPage < 1 {
		return fmt.Errorf("SF_GROUPS_PER_PAGE must be >= 1")
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("SF_CACHE_SIZE must be >= 1")
	}
	if c.CacheTTLMinutes < 1 {
		return fmt.Errorf("SF_CACHE_TTL_MINUTES must be >= 1")
	}
	return nil
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func (c *Config) GenerateTimeout() time.Duration {
	return time.Duration(c.GenerateTimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

func (c *Config) RSSFeedURLList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.RSSFeedURLs, ",")
	urls := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		feedURL := strings.TrimSpace(part)
		if feedURL == "" {
			continue
		}
		if _, exists := seen[feedURL]; exists {
			continue
		}
		seen[feedURL] = struct{}{}
		urls = append(urls, feedURL)
	}
	return urls
}
