package pipeline

import (
	"testing"
	"time"

	"storyfuse.dev/storyfuse/internal/feed"
)

func TestFilterAndRank_DropsSingleSourceGroups(t *testing.T) {
	groups := []StoryGroup{
		{
			GroupID: "group-1",
			Articles: []CanonicalArticle{
				{ID: "a1", SourceID: feed.SourceNewsAPI, Title: "First angle on the story"},
				{ID: "a2", SourceID: feed.SourceNewsAPI, Title: "Second angle on the story"},
			},
		},
		{
			GroupID: "group-2",
			Articles: []CanonicalArticle{
				{ID: "b1", SourceID: feed.SourceNewsAPI, Title: "Cross-source coverage"},
				{ID: "b2", SourceID: feed.SourceGNews, Title: "Cross-source coverage continued"},
			},
		},
	}

	kept := FilterAndRank(groups)
	if len(kept) != 1 {
		t.Fatalf("expected 1 surviving group, got %d", len(kept))
	}
	if kept[0].GroupID != "group-2" {
		t.Fatalf("expected group-2 to survive, got %s", kept[0].GroupID)
	}
}

func TestFilterAndRank_DropsUniformTitleGroups(t *testing.T) {
	groups := []StoryGroup{
		{
			GroupID: "group-1",
			Articles: []CanonicalArticle{
				{ID: "a1", SourceID: feed.SourceNewsAPI, Title: "Syndicated Wire Headline"},
				{ID: "a2", SourceID: feed.SourceGNews, Title: "  syndicated wire headline  "},
			},
		},
	}

	kept := FilterAndRank(groups)
	if len(kept) != 0 {
		t.Fatalf("expected uniform-title group to be dropped, got %d groups", len(kept))
	}
}

func TestFilterAndRank_RanksByLatestMemberDate(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	groups := []StoryGroup{
		{
			GroupID: "older",
			Articles: []CanonicalArticle{
				{ID: "o1", SourceID: feed.SourceNewsAPI, Title: "Older story first report", PublishedAt: timePtr(base)},
				{ID: "o2", SourceID: feed.SourceGNews, Title: "Older story second report", PublishedAt: timePtr(base.Add(time.Hour))},
			},
		},
		{
			GroupID: "newer",
			Articles: []CanonicalArticle{
				{ID: "n1", SourceID: feed.SourceNewsAPI, Title: "Newer story first report", PublishedAt: timePtr(base.Add(48 * time.Hour))},
				{ID: "n2", SourceID: feed.SourceRSS, Title: "Newer story second report", PublishedAt: timePtr(base.Add(2 * time.Hour))},
			},
		},
		{
			GroupID: "dateless",
			Articles: []CanonicalArticle{
				{ID: "d1", SourceID: feed.SourceNewsAPI, Title: "Dateless story first report"},
				{ID: "d2", SourceID: feed.SourceMediastack, Title: "Dateless story second report"},
			},
		},
	}

	kept := FilterAndRank(groups)
	if len(kept) != 3 {
		t.Fatalf("expected 3 surviving groups, got %d", len(kept))
	}
	if kept[0].GroupID != "newer" || kept[1].GroupID != "older" || kept[2].GroupID != "dateless" {
		t.Fatalf("unexpected ranking: %s, %s, %s", kept[0].GroupID, kept[1].GroupID, kept[2].GroupID)
	}
}

func TestFilterAndRank_EmptyInput(t *testing.T) {
	kept := FilterAndRank(nil)
	if len(kept) != 0 {
		t.Fatalf("expected no groups, got %d", len(kept))
	}
}

func TestHasUniformTitle_SingleArticleNeverUniform(t *testing.T) {
	group := StoryGroup{
		GroupID:  "group-1",
		Articles: []CanonicalArticle{{ID: "a1", Title: "Solo headline"}},
	}
	if hasUniformTitle(group) {
		t.Fatalf("single-article group must not count as uniform")
	}
}
