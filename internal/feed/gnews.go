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

const gNewsBaseURL = "https://gnews.io/api/v4"

// GNewsProvider talks to gnews.io.
type GNewsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewGNews(apiKey string, timeout time.Duration, logger zerolog.Logger) *GNewsProvider {
	return &GNewsProvider{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    gNewsBaseURL,
		httpClient: newHTTPClient(timeout),
		logger:     logger,
	}
}

func (p *GNewsProvider) ID() SourceID {
	return SourceGNews
}

func (p *GNewsProvider) Fetch(ctx context.Context, q Query) ([]RawRecord, error) {
	if p == nil || p.apiKey == "" {
		return nil, fmt.Errorf("gnews: API key is not configured")
	}

	endpoint := p.baseURL + "/top-headlines"
	params := url.Values{}
	params.Set("apikey", p.apiKey)
	params.Set("max", "50")

	if text := strings.TrimSpace(q.Text); text != "" {
		endpoint = p.baseURL + "/search"
		params.Set("q", text)
	} else if category := strings.TrimSpace(q.Category); category != "" {
		params.Set("category", strings.ToLower(category))
	}
	if country := strings.TrimSpace(q.Country); country != "" {
		params.Set("country", strings.ToLower(country))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("gnews: build request: %w", err)
	}

	var payload struct {
		TotalArticles int         `json:"totalArticles"`
		Articles      []RawRecord `json:"articles"`
	}
	if err := fetchJSON(p.httpClient, req, &payload); err != nil {
		return nil, fmt.Errorf("gnews: %w", err)
	}

	p.logger.Debug().Int("records", len(payload.Articles)).Msg("gnews fetch complete")
	return payload.Articles, nil
}
