package pipeline

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"storyfuse.dev/storyfuse/internal/feed"
	"storyfuse.dev/storyfuse/internal/langdetect"
)

// fieldProjection lists, per canonical field, the provider field names to try
// in priority order. Dotted keys descend into nested objects ("source.name").
type fieldProjection struct {
	title       []string
	url         []string
	description []string
	content     []string
	publishedAt []string
	imageURL    []string
	author      []string
	language    []string
}

var projections = map[feed.SourceID]fieldProjection{
	feed.SourceNewsAPI: {
		title:       []string{"title"},
		url:         []string{"url"},
		description: []string{"description"},
		content:     []string{"content"},
		publishedAt: []string{"publishedAt"},
		imageURL:    []string{"urlToImage"},
		author:      []string{"author"},
		language:    []string{"language"},
	},
	feed.SourceGNews: {
		title:       []string{"title"},
		url:         []string{"url"},
		description: []string{"description"},
		content:     []string{"content"},
		publishedAt: []string{"publishedAt"},
		imageURL:    []string{"image"},
		author:      []string{"source.name"},
		language:    []string{"lang", "language"},
	},
	feed.SourceMediastack: {
		title:       []string{"title"},
		url:         []string{"url"},
		description: []string{"description"},
		content:     []string{"content", "description"},
		publishedAt: []string{"published_at"},
		imageURL:    []string{"image"},
		author:      []string{"author", "source"},
		language:    []string{"language"},
	},
	feed.SourceRSS: {
		title:       []string{"title"},
		url:         []string{"link", "url"},
		description: []string{"description", "summary"},
		content:     []string{"content", "description"},
		publishedAt: []string{"published", "pubDate"},
		imageURL:    []string{"image"},
		author:      []string{"author", "feed_title"},
		language:    []string{"language"},
	},
}

// DropStats counts records removed during one Normalize call. Diagnostic only.
type DropStats struct {
	MissingRequired int
	InvalidMapped   int
}

// Normalize projects provider-shaped raw records into canonical articles.
// Records missing a usable title or url are dropped; an unrecognized source
// yields an empty result. Normalize never fails.
func Normalize(records []feed.RawRecord, source feed.SourceID) []CanonicalArticle {
	articles, _ := NormalizeWithStats(records, source)
	return articles
}

// NormalizeWithStats is Normalize plus drop diagnostics.
func NormalizeWithStats(records []feed.RawRecord, source feed.SourceID) ([]CanonicalArticle, DropStats) {
	var stats DropStats

	projection, ok := projections[source]
	if !ok {
		return nil, stats
	}

	articles := make([]CanonicalArticle, 0, len(records))
	for _, record := range records {
		if record == nil {
			stats.MissingRequired++
			continue
		}

		title := pickString(record, projection.title)
		articleURL := pickString(record, projection.url)
		if title == "" || articleURL == "" {
			stats.MissingRequired++
			continue
		}

		article := CanonicalArticle{
			ID:          articleID(source, articleURL, title),
			SourceID:    source,
			Title:       title,
			Description: pickString(record, projection.description),
			Content:     pickString(record, projection.content),
			URL:         articleURL,
			PublishedAt: parsePublishedAt(pickString(record, projection.publishedAt)),
			ImageURL:    pickString(record, projection.imageURL),
			Author:      pickString(record, projection.author),
			Language:    pickString(record, projection.language),
		}
		if article.Language == "" {
			article.Language = detectLanguage(article.Title, article.Description)
		}

		// Second pass over the invariant in case a projection ever maps a
		// non-string value to an empty result.
		if article.Title == "" || article.URL == "" {
			stats.InvalidMapped++
			continue
		}
		articles = append(articles, article)
	}

	return articles, stats
}

// pickString returns the first non-empty string among the candidate keys.
func pickString(record feed.RawRecord, keys []string) string {
	for _, key := range keys {
		if value := lookupString(record, key); value != "" {
			return value
		}
	}
	return ""
}

func lookupString(record feed.RawRecord, key string) string {
	var current any = map[string]any(record)
	for _, part := range strings.Split(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current, ok = node[part]
		if !ok {
			return ""
		}
	}

	value, ok := current.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// parsePublishedAt accepts RFC3339 first, then falls back to lenient parsing.
// Unparseable values are treated as absent.
func parsePublishedAt(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if ts, err := time.Parse(time.RFC3339, trimmed); err == nil {
		utc := ts.UTC()
		return &utc
	}
	if ts, err := dateparse.ParseAny(trimmed); err == nil {
		utc := ts.UTC()
		return &utc
	}
	return nil
}

func detectLanguage(title, description string) string {
	if code := langdetect.DetectISO6391(title + " " + description); code != "" {
		return code
	}
	return "en"
}
