package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const mediastackBaseURL = "http://api.mediastack.com/v1"

// MediastackProvider talks to mediastack.com.
type MediastackProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewMediastack(apiKey string, timeout time.Duration, logger zerolog.Logger) *MediastackProvider {
	return &MediastackProvider{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    mediastackBaseURL,
		httpClient: newHTTPClient(timeout),
		logger:     logger,
	}
}

func (p *MediastackProvider) ID() SourceID {
	return SourceMediastack
}

func (p *MediastackProvider) Fetch(ctx context.Context, q Query) ([]RawRecord, error) {
	if p == nil || p.apiKey == "" {
		return nil, fmt.Errorf("mediastack: API key is not configured")
	}

	params := url.Values{}
	params.Set("access_key", p.apiKey)
	params.Set("limit", "50")
	params.Set("sort", "published_desc")

	if text := strings.TrimSpace(q.Text); text != "" {
		params.Set("keywords", text)
	}
	if country := strings.TrimSpace(q.Country); country != "" {
		params.Set("countries", strings.ToLower(country))
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		params.Set("categories", strings.ToLower(category))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/news?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("mediastack: build request: %w", err)
	}

	var payload struct {
		Data  []RawRecord    `json:"data"`
		Error map[string]any `json:"error"`
	}
	if err := fetchJSON(p.httpClient, req, &payload); err != nil {
		return nil, fmt.Errorf("mediastack: %w", err)
	}
	if len(payload.Error) > 0 {
		return nil, fmt.Errorf("mediastack: provider error: %v", payload.Error)
	}

	p.logger.Debug().Int("records", len(payload.Data)).Msg("mediastack fetch complete")
	return payload.Data, nil
}
