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

const newsAPIBaseURL = "https://newsapi.org/v2"

// NewsAPIProvider talks to newsapi.org. Top headlines by default, the
// everything endpoint when a search query is present.
type NewsAPIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewNewsAPI(apiKey string, timeout time.Duration, logger zerolog.Logger) *NewsAPIProvider {
	return &NewsAPIProvider{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    newsAPIBaseURL,
		httpClient: newHTTPClient(timeout),
		logger:     logger,
	}
}

func (p *NewsAPIProvider) ID() SourceID {
	return SourceNewsAPI
}

func (p *NewsAPIProvider) Fetch(ctx context.Context, q Query) ([]RawRecord, error) {
	if p == nil || p.apiKey == "" {
		return nil, fmt.Errorf("newsapi: API key is not configured")
	}

	endpoint := p.baseURL + "/top-headlines"
	params := url.Values{}
	params.Set("apiKey", p.apiKey)
	params.Set("pageSize", "50")

	if text := strings.TrimSpace(q.Text); text != "" {
		endpoint = p.baseURL + "/everything"
		params.Set("q", text)
		params.Set("sortBy", "publishedAt")
	} else {
		if country := strings.TrimSpace(q.Country); country != "" {
			params.Set("country", strings.ToLower(country))
		} else {
			params.Set("country", "us")
		}
		if category := strings.TrimSpace(q.Category); category != "" {
			params.Set("category", strings.ToLower(category))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: build request: %w", err)
	}

	var payload struct {
		Status   string      `json:"status"`
		Message  string      `json:"message"`
		Articles []RawRecord `json:"articles"`
	}
	if err := fetchJSON(p.httpClient, req, &payload); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi: provider status %q: %s", payload.Status, payload.Message)
	}

	p.logger.Debug().Int("records", len(payload.Articles)).Msg("newsapi fetch complete")
	return payload.Articles, nil
}
