package pipeline

import (
	"sort"
	"strings"
	"time"
)

// FilterAndRank drops low-value groups and orders the survivors by recency.
// Rules, in order: a group needs articles from at least two distinct sources;
// a multi-article group whose members all share one identical normalized title
// is a duplicate-feed artifact, not distinct coverage; remaining groups sort
// by their most recent member publish time, newest first, with dateless
// groups treated as oldest.
func FilterAndRank(groups []StoryGroup) []StoryGroup {
	kept := make([]StoryGroup, 0, len(groups))
	for _, group := range groups {
		if len(group.DistinctSources()) < 2 {
			continue
		}
		if hasUniformTitle(group) {
			continue
		}
		kept = append(kept, group)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return latestPublishedAt(kept[i]).After(latestPublishedAt(kept[j]))
	})
	return kept
}

func hasUniformTitle(group StoryGroup) bool {
	if len(group.Articles) < 2 {
		return false
	}

	first := normalizeTitle(group.Articles[0].Title)
	if first == "" {
		return false
	}
	for _, article := range group.Articles[1:] {
		if normalizeTitle(article.Title) != first {
			return false
		}
	}
	return true
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// latestPublishedAt returns the newest parseable publish time in the group,
// or the zero time when no member has one.
func latestPublishedAt(group StoryGroup) time.Time {
	var latest time.Time
	for _, article := range group.Articles {
		if article.PublishedAt == nil {
			continue
		}
		if article.PublishedAt.After(latest) {
			latest = *article.PublishedAt
		}
	}
	return latest
}
