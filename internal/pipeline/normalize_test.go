package pipeline

import (
	"testing"
	"time"

	"storyfuse.dev/storyfuse/internal/feed"
)

func TestNormalize_ProjectsNewsAPIFields(t *testing.T) {
	records := []feed.RawRecord{
		{
			"title":       "Parliament passes budget bill",
			"url":         "https://example.com/budget",
			"description": "The vote concluded after a long session.",
			"content":     "Full text of the article.",
			"publishedAt": "2026-03-01T10:00:00Z",
			"urlToImage":  "https://example.com/budget.jpg",
			"author":      "A. Reporter",
		},
	}

	articles := Normalize(records, feed.SourceNewsAPI)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}

	article := articles[0]
	if article.Title != "Parliament passes budget bill" {
		t.Fatalf("unexpected title: %q", article.Title)
	}
	if article.URL != "https://example.com/budget" {
		t.Fatalf("unexpected url: %q", article.URL)
	}
	if article.ImageURL != "https://example.com/budget.jpg" {
		t.Fatalf("unexpected image url: %q", article.ImageURL)
	}
	if article.PublishedAt == nil {
		t.Fatalf("expected publishedAt to be parsed")
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !article.PublishedAt.Equal(want) {
		t.Fatalf("expected publishedAt %v, got %v", want, *article.PublishedAt)
	}
	if article.ID == "" {
		t.Fatalf("expected non-empty article ID")
	}
}

func TestNormalize_StableIDs(t *testing.T) {
	record := feed.RawRecord{
		"title": "Stable headline",
		"url":   "https://example.com/stable",
	}

	first := Normalize([]feed.RawRecord{record}, feed.SourceGNews)
	second := Normalize([]feed.RawRecord{record}, feed.SourceGNews)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 article per run, got %d and %d", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Fatalf("expected identical IDs, got %q and %q", first[0].ID, second[0].ID)
	}

	other := Normalize([]feed.RawRecord{record}, feed.SourceMediastack)
	if other[0].ID == first[0].ID {
		t.Fatalf("expected different ID for different source")
	}
}

func TestNormalize_DropsRecordsMissingRequiredFields(t *testing.T) {
	records := []feed.RawRecord{
		{"title": "No URL at all"},
		{"url": "https://example.com/no-title"},
		{"title": "   ", "url": "https://example.com/blank-title"},
		nil,
		{"title": "Kept", "url": "https://example.com/kept"},
	}

	articles, stats := NormalizeWithStats(records, feed.SourceNewsAPI)
	if len(articles) != 1 {
		t.Fatalf("expected 1 surviving article, got %d", len(articles))
	}
	if articles[0].Title != "Kept" {
		t.Fatalf("unexpected survivor: %q", articles[0].Title)
	}
	if stats.MissingRequired != 4 {
		t.Fatalf("expected 4 dropped records, got %d", stats.MissingRequired)
	}
}

func TestNormalize_UnknownSourceYieldsEmpty(t *testing.T) {
	records := []feed.RawRecord{
		{"title": "Anything", "url": "https://example.com/a"},
	}

	articles := Normalize(records, feed.SourceID("mystery"))
	if len(articles) != 0 {
		t.Fatalf("expected no articles for unknown source, got %d", len(articles))
	}
}

func TestNormalize_UnparseableDateBecomesNil(t *testing.T) {
	records := []feed.RawRecord{
		{
			"title":       "Dateless story",
			"url":         "https://example.com/dateless",
			"publishedAt": "not a date",
		},
	}

	articles := Normalize(records, feed.SourceNewsAPI)
	if len(articles) != 1 {
		t.Fatalf("expected article to survive bad date, got %d", len(articles))
	}
	if articles[0].PublishedAt != nil {
		t.Fatalf("expected nil publishedAt, got %v", *articles[0].PublishedAt)
	}
}

func TestNormalize_LenientDateParsing(t *testing.T) {
	records := []feed.RawRecord{
		{
			"title":     "RSS style date",
			"link":      "https://example.com/rss-date",
			"published": "Mon, 02 Mar 2026 15:04:05 GMT",
		},
	}

	articles := Normalize(records, feed.SourceRSS)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].PublishedAt == nil {
		t.Fatalf("expected RFC1123 date to parse")
	}
}

func TestNormalize_NestedProjectionKey(t *testing.T) {
	records := []feed.RawRecord{
		{
			"title":  "Nested author",
			"url":    "https://example.com/nested",
			"source": map[string]any{"name": "Example Wire"},
		},
	}

	articles := Normalize(records, feed.SourceGNews)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Author != "Example Wire" {
		t.Fatalf("expected nested source.name projection, got %q", articles[0].Author)
	}
}

func TestNormalize_LanguageDefaultsToEnglish(t *testing.T) {
	records := []feed.RawRecord{
		{"title": "Hi", "url": "https://example.com/short"},
	}

	articles := Normalize(records, feed.SourceNewsAPI)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Language != "en" {
		t.Fatalf("expected language fallback en, got %q", articles[0].Language)
	}
}
