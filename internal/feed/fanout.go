package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// FetchResult is one provider's outcome from a fan-out. A failed or timed-out
// provider carries a warning and no records; it never fails the fan-out.
type FetchResult struct {
	Source  SourceID
	Records []RawRecord
	Warning string
}

// FetchAll queries every provider in parallel and waits for all of them
// (all-settled join). Result order matches provider order, which keeps the
// downstream article pool deterministic.
func FetchAll(ctx context.Context, providers []Provider, q Query, timeout time.Duration, logger zerolog.Logger) []FetchResult {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	results := make([]FetchResult, len(providers))

	var g errgroup.Group
	for i, provider := range providers {
		i, provider := i, provider
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			started := time.Now()
			records, err := provider.Fetch(fetchCtx, q)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("source", string(provider.ID())).
					Dur("elapsed", time.Since(started)).
					Msg("provider fetch failed")
				results[i] = FetchResult{
					Source:  provider.ID(),
					Warning: fmt.Sprintf("%s: fetch failed: %v", provider.ID(), err),
				}
				return nil
			}

			logger.Debug().
				Str("source", string(provider.ID())).
				Int("records", len(records)).
				Dur("elapsed", time.Since(started)).
				Msg("provider fetch complete")
			results[i] = FetchResult{Source: provider.ID(), Records: records}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
