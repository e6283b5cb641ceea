package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// RSSProvider aggregates a fixed list of keyless RSS/Atom feeds into raw
// records shaped like the JSON providers' payloads.
type RSSProvider struct {
	feedURLs []string
	parser   *gofeed.Parser
	logger   zerolog.Logger
}

func NewRSS(feedURLs []string, timeout time.Duration, logger zerolog.Logger) *RSSProvider {
	parser := gofeed.NewParser()
	parser.Client = newHTTPClient(timeout)
	parser.UserAgent = userAgent

	return &RSSProvider{
		feedURLs: feedURLs,
		parser:   parser,
		logger:   logger,
	}
}

func (p *RSSProvider) ID() SourceID {
	return SourceRSS
}

func (p *RSSProvider) Fetch(ctx context.Context, q Query) ([]RawRecord, error) {
	if p == nil || len(p.feedURLs) == 0 {
		return nil, fmt.Errorf("rss: no feed URLs configured")
	}

	needle := strings.ToLower(strings.TrimSpace(q.Text))

	var records []RawRecord
	var lastErr error
	for _, feedURL := range p.feedURLs {
		parsed, err := p.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			p.logger.Warn().Err(err).Str("feed_url", feedURL).Msg("rss feed fetch failed")
			lastErr = err
			continue
		}
		for _, item := range parsed.Items {
			if item == nil {
				continue
			}
			// RSS has no server-side search; filter locally when a query is set.
			if needle != "" {
				haystack := strings.ToLower(item.Title + " " + item.Description)
				if !strings.Contains(haystack, needle) {
					continue
				}
			}
			records = append(records, itemToRecord(parsed, item))
		}
	}

	if len(records) == 0 && lastErr != nil {
		return nil, fmt.Errorf("rss: all feeds failed: %w", lastErr)
	}

	p.logger.Debug().Int("records", len(records)).Msg("rss fetch complete")
	return records, nil
}

func itemToRecord(parsed *gofeed.Feed, item *gofeed.Item) RawRecord {
	record := RawRecord{
		"title":       item.Title,
		"link":        item.Link,
		"description": item.Description,
		"content":     item.Content,
		"feed_title":  parsed.Title,
		"language":    parsed.Language,
	}
	if item.PublishedParsed != nil {
		record["published"] = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else if item.Published != "" {
		record["published"] = item.Published
	}
	if item.Author != nil && strings.TrimSpace(item.Author.Name) != "" {
		record["author"] = item.Author.Name
	}
	if item.Image != nil && strings.TrimSpace(item.Image.URL) != "" {
		record["image"] = item.Image.URL
	}
	return record
}
