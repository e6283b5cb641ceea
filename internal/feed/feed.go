package feed

import (
	"context"
)

// SourceID identifies a news provider. The set is open: adding a provider means
// adding a client here and a projection table in the pipeline package.
type SourceID string

const (
	SourceNewsAPI    SourceID = "newsapi"
	SourceGNews      SourceID = "gnews"
	SourceMediastack SourceID = "mediastack"
	SourceRSS        SourceID = "rss"
)

// RawRecord is one provider-shaped article payload, untouched except for JSON
// decoding. Field names vary per provider; the pipeline normalizer owns the
// mapping into the canonical schema.
type RawRecord map[string]any

// Query carries the caller's search and filter inputs. Empty fields mean
// "provider default" (typically top headlines).
type Query struct {
	Text     string
	Country  string
	Category string
}

// Provider fetches raw article records from one external news source.
// Implementations return an error for their own diagnostics; the fan-out layer
// converts failures into warnings and empty results.
type Provider interface {
	ID() SourceID
	Fetch(ctx context.Context, q Query) ([]RawRecord, error)
}
