package pipeline

import (
	"fmt"
	"sort"
)

// DefaultClusterThreshold is the minimum similarity for an article to join an
// existing group. Configuration, not a proven-optimal constant.
const DefaultClusterThreshold = 0.3

// StoryGroup is a cluster of canonical articles believed to cover one event.
// Articles keep insertion order; the first article is the representative that
// later candidates are compared against.
type StoryGroup struct {
	GroupID  string             `json:"groupId"`
	Articles []CanonicalArticle `json:"articles"`
}

func (g StoryGroup) Representative() CanonicalArticle {
	return g.Articles[0]
}

// DistinctSources returns the group's source IDs in first-seen order.
func (g StoryGroup) DistinctSources() []string {
	seen := make(map[string]struct{}, len(g.Articles))
	sources := make([]string, 0, len(g.Articles))
	for _, article := range g.Articles {
		id := string(article.SourceID)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		sources = append(sources, id)
	}
	return sources
}

// Cluster assigns articles to story groups in a single greedy pass using the
// default similarity weights. See ClusterWithWeights for the algorithm.
func Cluster(articles []CanonicalArticle, threshold float64) []StoryGroup {
	return ClusterWithWeights(articles, threshold, DefaultWeights())
}

// ClusterWithWeights walks the pool in input order. Each article is scored
// against the representative of every existing group; it joins the
// highest-scoring group at or above threshold, with the earliest-created group
// winning ties, or seeds a new group. Groups never merge or split, so the
// result is deterministic for a fixed input order — and order-sensitive by
// construction. The returned groups are sorted by descending member count,
// creation order preserved among equals.
func ClusterWithWeights(articles []CanonicalArticle, threshold float64, w Weights) []StoryGroup {
	if threshold <= 0 {
		threshold = DefaultClusterThreshold
	}

	var groups []StoryGroup
	for _, article := range articles {
		bestIdx := -1
		bestScore := 0.0
		for i := range groups {
			score := SimilarityWithWeights(article, groups[i].Representative(), w)
			if score < threshold {
				continue
			}
			// Strict improvement only: earliest-created group wins ties.
			if bestIdx == -1 || score > bestScore {
				bestIdx = i
				bestScore = score
			}
		}

		if bestIdx >= 0 {
			groups[bestIdx].Articles = append(groups[bestIdx].Articles, article)
			continue
		}
		groups = append(groups, StoryGroup{
			GroupID:  fmt.Sprintf("group-%d", len(groups)+1),
			Articles: []CanonicalArticle{article},
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Articles) > len(groups[j].Articles)
	})
	return groups
}
