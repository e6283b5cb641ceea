package pipeline

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storyfuse.dev/storyfuse/internal/feed"
)

// GroupSynthesis is the neutral prose attached to one story group.
type GroupSynthesis struct {
	GroupTitle         string   `json:"groupTitle"`
	Summary            string   `json:"summary"`
	DetailedComparison string   `json:"detailedComparison"`
	SimpleComparison   string   `json:"simpleComparison"`
	Differences        []string `json:"differences"`
}

// Synthesizer produces one GroupSynthesis per group, index-aligned with the
// input, plus warning strings for every degraded (fallback) synthesis. It must
// never fail: a broken generation service degrades to deterministic output.
type Synthesizer interface {
	SynthesizeGroups(ctx context.Context, groups []StoryGroup) ([]GroupSynthesis, []string)
}

// ResponseCache is the optional cache-aside collaborator. Correctness never
// depends on it; absence only costs latency.
type ResponseCache interface {
	Get(key string) (Response, bool)
	Add(key string, resp Response)
}

// Request carries one aggregation call's inputs.
type Request struct {
	Query    string
	Country  string
	Category string
	Page     int
}

// CacheKey identifies a request's response in the cache.
func (r Request) CacheKey() string {
	page := r.Page
	if page < 1 {
		page = 1
	}
	return strings.ToLower(strings.TrimSpace(r.Query)) + "|" +
		strings.ToLower(strings.TrimSpace(r.Country)) + "|" +
		strings.ToLower(strings.TrimSpace(r.Category)) + "|" +
		strconv.Itoa(page)
}

// GroupResult is one synthesized story group as surfaced to callers.
type GroupResult struct {
	GroupID            string             `json:"groupId"`
	GroupTitle         string             `json:"groupTitle"`
	Summary            string             `json:"summary"`
	DetailedComparison string             `json:"detailedComparison"`
	SimpleComparison   string             `json:"simpleComparison"`
	Differences        []string           `json:"differences"`
	Articles           []CanonicalArticle `json:"articles"`
}

// Response is the aggregation endpoint's payload.
type Response struct {
	Query      string        `json:"query"`
	Country    string        `json:"country,omitempty"`
	Category   string        `json:"category,omitempty"`
	Groups     []GroupResult `json:"groups"`
	Pagination Pagination    `json:"pagination"`
	Warnings   []string      `json:"warnings,omitempty"`
}

// Options tunes one Aggregator instance.
type Options struct {
	Threshold    float64
	PageSize     int
	FetchTimeout time.Duration
	Weights      Weights
}

// Aggregator runs the full per-request pipeline: provider fan-out, normalize,
// cluster, filter, synthesize, paginate. All state is rebuilt per request.
type Aggregator struct {
	providers   []feed.Provider
	synthesizer Synthesizer
	cache       ResponseCache
	logger      zerolog.Logger
	opts        Options
}

func NewAggregator(providers []feed.Provider, synthesizer Synthesizer, cache ResponseCache, logger zerolog.Logger, opts Options) *Aggregator {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultClusterThreshold
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}

	return &Aggregator{
		providers:   providers,
		synthesizer: synthesizer,
		cache:       cache,
		logger:      logger,
		opts:        opts,
	}
}

// Aggregate executes one end-to-end aggregation. Provider and generation
// failures degrade to warnings; the returned error is reserved for internal
// pipeline faults.
func (a *Aggregator) Aggregate(ctx context.Context, req Request) (Response, error) {
	logger := a.logger.With().Str("run_id", uuid.NewString()).Logger()
	started := time.Now()

	if a.cache != nil {
		if cached, ok := a.cache.Get(req.CacheKey()); ok {
			logger.Debug().Str("cache_key", req.CacheKey()).Msg("aggregation served from cache")
			return cached, nil
		}
	}

	var warnings []string

	query := feed.Query{
		Text:     strings.TrimSpace(req.Query),
		Country:  strings.TrimSpace(req.Country),
		Category: strings.TrimSpace(req.Category),
	}
	fetchResults := feed.FetchAll(ctx, a.providers, query, a.opts.FetchTimeout, logger)

	var pool []CanonicalArticle
	for _, result := range fetchResults {
		if result.Warning != "" {
			warnings = append(warnings, result.Warning)
			continue
		}
		articles, stats := NormalizeWithStats(result.Records, result.Source)
		if stats.MissingRequired+stats.InvalidMapped > 0 {
			logger.Debug().
				Str("source", string(result.Source)).
				Int("missing_required", stats.MissingRequired).
				Int("invalid_mapped", stats.InvalidMapped).
				Msg("records dropped during normalization")
		}
		pool = append(pool, articles...)
	}

	if len(pool) == 0 {
		warnings = append(warnings, "no articles available from any provider")
		items, pagination := Paginate(nil, req.Page, a.opts.PageSize)
		return a.finish(req, Response{
			Query:      req.Query,
			Country:    req.Country,
			Category:   req.Category,
			Groups:     items,
			Pagination: pagination,
			Warnings:   warnings,
		}, logger, started), nil
	}

	groups := ClusterWithWeights(pool, a.opts.Threshold, a.opts.Weights)
	retained := FilterAndRank(groups)
	logger.Info().
		Int("pool", len(pool)).
		Int("groups", len(groups)).
		Int("retained", len(retained)).
		Msg("clustering complete")

	syntheses, synthWarnings := a.synthesizer.SynthesizeGroups(ctx, retained)
	warnings = append(warnings, synthWarnings...)

	results := make([]GroupResult, 0, len(retained))
	for i, group := range retained {
		results = append(results, GroupResult{
			GroupID:            group.GroupID,
			GroupTitle:         syntheses[i].GroupTitle,
			Summary:            syntheses[i].Summary,
			DetailedComparison: syntheses[i].DetailedComparison,
			SimpleComparison:   syntheses[i].SimpleComparison,
			Differences:        syntheses[i].Differences,
			Articles:           group.Articles,
		})
	}

	items, pagination := Paginate(results, req.Page, a.opts.PageSize)
	return a.finish(req, Response{
		Query:      req.Query,
		Country:    req.Country,
		Category:   req.Category,
		Groups:     items,
		Pagination: pagination,
		Warnings:   warnings,
	}, logger, started), nil
}

func (a *Aggregator) finish(req Request, resp Response, logger zerolog.Logger, started time.Time) Response {
	if resp.Groups == nil {
		resp.Groups = []GroupResult{}
	}
	if a.cache != nil {
		a.cache.Add(req.CacheKey(), resp)
	}
	logger.Info().
		Int("page_groups", len(resp.Groups)).
		Int("total_groups", resp.Pagination.TotalGroups).
		Int("warnings", len(resp.Warnings)).
		Dur("elapsed", time.Since(started)).
		Msg("aggregation complete")
	return resp
}
