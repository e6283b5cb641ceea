package app

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"storyfuse.dev/storyfuse/internal/cache"
	"storyfuse.dev/storyfuse/internal/cli"
	"storyfuse.dev/storyfuse/internal/config"
	"storyfuse.dev/storyfuse/internal/feed"
	"storyfuse.dev/storyfuse/internal/logging"
	"storyfuse.dev/storyfuse/internal/pipeline"
	"storyfuse.dev/storyfuse/internal/synthesis"
)

// runtime bundles everything a command needs after bootstrap.
type runtime struct {
	cfg        *config.Config
	logger     zerolog.Logger
	aggregator *pipeline.Aggregator
	sources    []feed.SourceID
	generator  *synthesis.GeminiGenerator
}

// close releases resources held by the runtime.
func (r *runtime) close() {
	if r != nil && r.generator != nil {
		r.generator.Close()
	}
}

func loadConfigAndLogger(envLoader *cli.EnvLoader) (*config.Config, zerolog.Logger, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, nil
}

// buildProviders assembles one provider per configured upstream. Providers
// without credentials are skipped, not errored: a partial setup still serves.
func buildProviders(cfg *config.Config, logger zerolog.Logger) []feed.Provider {
	var providers []feed.Provider
	if cfg.NewsAPIKey != "" {
		providers = append(providers, feed.NewNewsAPI(cfg.NewsAPIKey, cfg.FetchTimeout(), logger))
	}
	if cfg.GNewsAPIKey != "" {
		providers = append(providers, feed.NewGNews(cfg.GNewsAPIKey, cfg.FetchTimeout(), logger))
	}
	if cfg.MediastackAPIKey != "" {
		providers = append(providers, feed.NewMediastack(cfg.MediastackAPIKey, cfg.FetchTimeout(), logger))
	}
	if feeds := cfg.RSSFeedURLList(); len(feeds) > 0 {
		providers = append(providers, feed.NewRSS(feeds, cfg.FetchTimeout(), logger))
	}
	return providers
}

func buildRuntime(ctx context.Context, envLoader *cli.EnvLoader) (*runtime, error) {
	cfg, logger, err := loadConfigAndLogger(envLoader)
	if err != nil {
		return nil, err
	}

	providers := buildProviders(cfg, logger)
	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers configured: set at least one of NEWSAPI_API_KEY, GNEWS_API_KEY, MEDIASTACK_API_KEY, RSS_FEED_URLS")
	}

	var generator *synthesis.GeminiGenerator
	if cfg.GeminiAPIKey != "" {
		generator, err = synthesis.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GenerateTimeout(), logger)
		if err != nil {
			logger.Warn().Err(err).Msg("generation service unavailable, synthesis will use fallback")
			generator = nil
		}
	} else {
		logger.Info().Msg("GEMINI_API_KEY not set, synthesis will use fallback")
	}

	// A nil *GeminiGenerator must stay a nil Generator interface value.
	var gen synthesis.Generator
	if generator != nil {
		gen = generator
	}
	synth := synthesis.NewService(gen, logger)

	aggregator := pipeline.NewAggregator(
		providers,
		synth,
		cache.New(cfg.CacheSize, cfg.CacheTTL()),
		logger,
		pipeline.Options{
			Threshold:    cfg.ClusterThreshold,
			PageSize:     cfg.GroupsPerPage,
			FetchTimeout: cfg.FetchTimeout(),
		},
	)

	sources := make([]feed.SourceID, 0, len(providers))
	for _, p := range providers {
		sources = append(sources, p.ID())
	}

	return &runtime{
		cfg:        cfg,
		logger:     logger,
		aggregator: aggregator,
		sources:    sources,
		generator:  generator,
	}, nil
}
