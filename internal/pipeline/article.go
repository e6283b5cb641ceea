package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"storyfuse.dev/storyfuse/internal/feed"
)

// CanonicalArticle is the normalized unit every provider record maps into.
// Post-normalization, URL and Title are guaranteed non-empty.
type CanonicalArticle struct {
	ID          string        `json:"id"`
	SourceID    feed.SourceID `json:"sourceId"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Content     string        `json:"content,omitempty"`
	URL         string        `json:"url"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Author      string        `json:"author,omitempty"`
	Language    string        `json:"language,omitempty"`
}

// articleID derives a stable identifier from source, url, and title. It is a
// pure function, so normalizing the same record twice yields the same ID.
func articleID(source feed.SourceID, articleURL, title string) string {
	sum := sha256.Sum256([]byte(string(source) + "|" + articleURL + "|" + title))
	return hex.EncodeToString(sum[:])[:16]
}
