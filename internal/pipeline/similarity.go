package pipeline

import (
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"
)

const (
	topTermCount  = 10
	minTermLength = 4
)

// Weights holds the tunable similarity constants. The defaults mirror the
// production heuristic; none of them is empirically derived, so callers and
// tests treat them as configuration.
type Weights struct {
	TimeBonus   float64
	TimeWindow  time.Duration
	DomainBonus float64
}

func DefaultWeights() Weights {
	return Weights{
		TimeBonus:   0.10,
		TimeWindow:  7 * 24 * time.Hour,
		DomainBonus: 0.05,
	}
}

// Similarity scores how likely two articles cover the same story, in [0, 1].
// Term overlap carries the signal; publish-time proximity and a shared URL
// domain add small tie-breaking bonuses capped at 0.15 combined.
func Similarity(a, b CanonicalArticle) float64 {
	return SimilarityWithWeights(a, b, DefaultWeights())
}

func SimilarityWithWeights(a, b CanonicalArticle, w Weights) float64 {
	score := termJaccard(
		topTerms(a.Title+" "+a.Description),
		topTerms(b.Title+" "+b.Description),
	)

	if withinTimeWindow(a.PublishedAt, b.PublishedAt, w.TimeWindow) {
		score += w.TimeBonus
	}
	if sameHostname(a.URL, b.URL) {
		score += w.DomainBonus
	}

	if score > 1 {
		return 1
	}
	return score
}

// topTerms returns the most frequent significant terms of text: lowercase,
// punctuation stripped, longer than three characters, capped at topTermCount.
// Ties on frequency break alphabetically for determinism.
func topTerms(text string) map[string]struct{} {
	counts := make(map[string]int)
	for _, token := range tokenizeTerms(text) {
		counts[token]++
	}
	if len(counts) == 0 {
		return nil
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > topTermCount {
		terms = terms[:topTermCount]
	}

	set := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		set[term] = struct{}{}
	}
	return set
}

func tokenizeTerms(text string) []string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return nil
	}

	parts := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if len([]rune(part)) < minTermLength {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// termJaccard computes intersection over union. Two empty sets are considered
// identical; exactly one empty set shares nothing.
func termJaccard(left, right map[string]struct{}) float64 {
	if len(left) == 0 && len(right) == 0 {
		return 1
	}
	if len(left) == 0 || len(right) == 0 {
		return 0
	}

	intersection := 0
	for term := range left {
		if _, ok := right[term]; ok {
			intersection++
		}
	}

	union := len(left) + len(right) - intersection
	if union <= 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func withinTimeWindow(a, b *time.Time, window time.Duration) bool {
	if a == nil || b == nil || a.IsZero() || b.IsZero() {
		return false
	}
	diff := a.Sub(*b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= window
}

func sameHostname(rawA, rawB string) bool {
	hostA := parseHostname(rawA)
	if hostA == "" {
		return false
	}
	return hostA == parseHostname(rawB)
}

func parseHostname(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
