package pipeline

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestSimilarity_IdenticalArticles(t *testing.T) {
	article := CanonicalArticle{
		Title:       "Central bank raises interest rates again",
		Description: "Inflation pressure forces another hike.",
		URL:         "https://example.com/rates",
	}

	score := Similarity(article, article)
	if score != 1 {
		t.Fatalf("expected score 1 for identical articles, got %v", score)
	}
}

func TestSimilarity_BothEmptyTermSets(t *testing.T) {
	a := CanonicalArticle{Title: "a b c", URL: "https://one.example/x"}
	b := CanonicalArticle{Title: "d e f", URL: "https://two.example/y"}

	// All tokens are shorter than the minimum term length, so both term sets
	// are empty and the lexical score is 1.
	score := Similarity(a, b)
	if score != 1 {
		t.Fatalf("expected score 1 for two empty term sets, got %v", score)
	}
}

func TestSimilarity_OneEmptyTermSet(t *testing.T) {
	a := CanonicalArticle{Title: "a b", URL: "https://one.example/x"}
	b := CanonicalArticle{Title: "substantial headline words", URL: "https://two.example/y"}

	score := Similarity(a, b)
	if score != 0 {
		t.Fatalf("expected score 0 when exactly one term set is empty, got %v", score)
	}
}

func TestSimilarity_DisjointTitlesWithBonuses(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := CanonicalArticle{
		Title:       "Volcano erupts overnight near coastal town",
		URL:         "https://example.com/volcano",
		PublishedAt: timePtr(now),
	}
	b := CanonicalArticle{
		Title:       "Parliament debates fishing quota reform",
		URL:         "https://example.com/quota",
		PublishedAt: timePtr(now.Add(24 * time.Hour)),
	}

	// Zero lexical overlap, but same hostname and publish times a day apart.
	score := Similarity(a, b)
	want := 0.15
	if diff := score - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected score %v (bonuses only), got %v", want, score)
	}
}

func TestSimilarity_TimeBonusRespectsWindow(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	a := CanonicalArticle{
		Title:       "Satellite launch delayed by weather conditions",
		URL:         "https://one.example/launch",
		PublishedAt: timePtr(base),
	}
	inside := CanonicalArticle{
		Title:       "Satellite launch postponed until next week",
		URL:         "https://two.example/launch",
		PublishedAt: timePtr(base.Add(6 * 24 * time.Hour)),
	}

	outside := inside
	outside.PublishedAt = timePtr(base.Add(8 * 24 * time.Hour))

	if Similarity(a, inside) <= Similarity(a, outside) {
		t.Fatalf("expected time bonus inside the 7-day window")
	}
}

func TestSimilarity_NilDatesEarnNoTimeBonus(t *testing.T) {
	a := CanonicalArticle{
		Title: "Quarterly earnings beat analyst expectations today",
		URL:   "https://one.example/earnings",
	}
	b := CanonicalArticle{
		Title: "Quarterly earnings beat analyst expectations today",
		URL:   "https://two.example/earnings",
	}

	if score := Similarity(a, b); score != 1 {
		t.Fatalf("expected identical titles to score 1, got %v", score)
	}

	// Half-overlapping titles with nil dates must score the plain Jaccard
	// with no bonus.
	b.Title = "Quarterly earnings beat forecast numbers today"
	score := Similarity(a, b)
	if score >= 1 {
		t.Fatalf("expected partial overlap below 1, got %v", score)
	}
}

func TestSimilarity_NeverExceedsOne(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := CanonicalArticle{
		Title:       "Historic peace agreement signed after marathon talks",
		Description: "Negotiators reached terms early in the morning.",
		URL:         "https://example.com/peace",
		PublishedAt: timePtr(now),
	}
	b := a
	b.PublishedAt = timePtr(now.Add(time.Hour))

	// Full lexical overlap plus both bonuses must still cap at 1.
	if score := Similarity(a, b); score != 1 {
		t.Fatalf("expected capped score 1, got %v", score)
	}
}

func TestSimilarity_IsSymmetric(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := CanonicalArticle{
		Title:       "Storm damages power grid across northern region",
		URL:         "https://one.example/storm",
		PublishedAt: timePtr(now),
	}
	b := CanonicalArticle{
		Title:       "Northern region storm leaves thousands without power",
		URL:         "https://two.example/storm",
		PublishedAt: timePtr(now.Add(3 * time.Hour)),
	}

	if Similarity(a, b) != Similarity(b, a) {
		t.Fatalf("expected symmetric similarity")
	}
}

func TestTopTerms_CapsAtTenDeterministically(t *testing.T) {
	text := "alpha alpha bravo bravo charlie delta echo foxtrot golf hotel india juliet kilo lima"
	terms := topTerms(text)
	if len(terms) != 10 {
		t.Fatalf("expected 10 terms, got %d", len(terms))
	}
	for _, repeated := range []string{"alpha", "bravo"} {
		if _, ok := terms[repeated]; !ok {
			t.Fatalf("expected frequent term %q to be kept", repeated)
		}
	}
	// Alphabetical tie-break among the once-seen terms: "lima" sorts last and
	// must be cut.
	if _, ok := terms["lima"]; ok {
		t.Fatalf("expected %q to be cut by the deterministic tie-break", "lima")
	}
}

func TestTokenizeTerms_StripsShortAndPunctuation(t *testing.T) {
	tokens := tokenizeTerms("The U.S. GDP grew; analysts cheered!")
	for _, token := range tokens {
		if len([]rune(token)) < 4 {
			t.Fatalf("unexpected short token %q", token)
		}
	}
}
