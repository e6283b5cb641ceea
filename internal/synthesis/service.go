package synthesis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"storyfuse.dev/storyfuse/internal/pipeline"
)

const (
	// synthesisBatchSize bounds concurrent generation calls. Batches run
	// sequentially; groups within a batch run in parallel.
	synthesisBatchSize = 3

	// maxArticleContentRunes caps per-article text in prompts so large
	// groups stay within the model's input budget.
	maxArticleContentRunes = 1200
)

const systemInstruction = `You are a neutral news analyst. You receive several articles covering the same story from different outlets. Respond with a single JSON object, no surrounding prose, with these fields:
"groupTitle": a specific, neutral headline for the story, not copied from any one outlet and never a placeholder like "News Story",
"summary": a factual summary of the facts the articles agree on, at most 250 words,
"detailedComparison": several sentences comparing the coverage, naming each outlet and its emphasis, unique details, and tone,
"simpleComparison": the same comparison in one or two plain sentences,
"differences": an array of short strings, each naming one concrete difference between outlets.
Report only what the articles state. Do not speculate or editorialize.`

// Service turns story groups into neutral synthesized prose. Generation
// failures never propagate: every group gets a deterministic fallback and a
// warning instead.
type Service struct {
	generator Generator
	logger    zerolog.Logger
}

// NewService builds a Service. A nil generator is valid and forces fallback
// synthesis for every group.
func NewService(generator Generator, logger zerolog.Logger) *Service {
	return &Service{generator: generator, logger: logger}
}

// SynthesizeGroups produces one synthesis per group, index-aligned with the
// input. The second return lists a warning for every group that fell back to
// deterministic output.
func (s *Service) SynthesizeGroups(ctx context.Context, groups []pipeline.StoryGroup) ([]pipeline.GroupSynthesis, []string) {
	results := make([]pipeline.GroupSynthesis, len(groups))
	degraded := make([]bool, len(groups))

	for start := 0; start < len(groups); start += synthesisBatchSize {
		end := start + synthesisBatchSize
		if end > len(groups) {
			end = len(groups)
		}

		eg, batchCtx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			eg.Go(func() error {
				results[i], degraded[i] = s.synthesizeOne(batchCtx, groups[i])
				return nil
			})
		}
		// Workers never return errors; Wait only joins the batch.
		_ = eg.Wait()
	}

	var warnings []string
	for i, fell := range degraded {
		if fell {
			warnings = append(warnings, fmt.Sprintf("synthesis degraded to fallback for group %q", groups[i].GroupID))
		}
	}
	return results, warnings
}

// synthesizeOne handles a single group. The bool reports whether the result
// is a fallback rather than generated prose.
func (s *Service) synthesizeOne(ctx context.Context, group pipeline.StoryGroup) (pipeline.GroupSynthesis, bool) {
	if len(group.Articles) == 0 {
		return pipeline.GroupSynthesis{
			GroupTitle:         "No articles available",
			Summary:            "No articles available for this story.",
			DetailedComparison: "No coverage to compare.",
			SimpleComparison:   "No coverage to compare.",
			Differences:        []string{},
		}, false
	}

	if len(group.Articles) == 1 {
		return singleSourceSynthesis(group.Articles[0]), false
	}

	if s.generator == nil {
		return fallbackSynthesis(group), true
	}

	raw, err := s.generator.Generate(ctx, GenerateRequest{
		SystemInstruction: systemInstruction,
		UserPrompt:        buildPrompt(group),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("group_id", group.GroupID).Msg("generation failed, using fallback")
		return fallbackSynthesis(group), true
	}

	payload, err := parseStructured(raw)
	if err != nil {
		s.logger.Warn().Err(err).Str("group_id", group.GroupID).Msg("generated output unusable, using fallback")
		return fallbackSynthesis(group), true
	}

	synthesis := pipeline.GroupSynthesis{
		GroupTitle:         payload.GroupTitle,
		Summary:            payload.Summary,
		DetailedComparison: payload.DetailedComparison,
		SimpleComparison:   payload.SimpleComparison,
		Differences:        payload.Differences,
	}
	if synthesis.Differences == nil {
		synthesis.Differences = []string{}
	}
	if IsGenericTitle(synthesis.GroupTitle) {
		rep := group.Representative()
		synthesis.GroupTitle = ExtractNeutralTitle(rep.Title, rep.Description, synthesis.Summary)
	}
	return synthesis, false
}

func singleSourceSynthesis(article pipeline.CanonicalArticle) pipeline.GroupSynthesis {
	summary := strings.TrimSpace(article.Description)
	if summary == "" {
		summary = article.Title
	}
	comparison := fmt.Sprintf("Only covered by %s; no other outlets to compare.", article.SourceID)
	return pipeline.GroupSynthesis{
		GroupTitle:         ExtractNeutralTitle(article.Title, article.Description, summary),
		Summary:            summary,
		DetailedComparison: comparison,
		SimpleComparison:   comparison,
		Differences:        []string{},
	}
}

func buildPrompt(group pipeline.StoryGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Articles covering one story, from %d outlets:\n", len(group.DistinctSources()))
	for i, article := range group.Articles {
		fmt.Fprintf(&b, "\n--- Article %d (source: %s) ---\n", i+1, article.SourceID)
		fmt.Fprintf(&b, "Title: %s\n", article.Title)
		fmt.Fprintf(&b, "URL: %s\n", article.URL)
		if article.PublishedAt != nil {
			fmt.Fprintf(&b, "Published: %s\n", article.PublishedAt.UTC().Format(time.RFC3339))
		}
		if article.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", truncateRunes(article.Description, maxArticleContentRunes))
		}
		if article.Content != "" {
			fmt.Fprintf(&b, "Content: %s\n", truncateRunes(article.Content, maxArticleContentRunes))
		}
	}
	return b.String()
}

func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

// fallbackSynthesis builds deterministic prose from the articles themselves.
// Same group in, same text out.
func fallbackSynthesis(group pipeline.StoryGroup) pipeline.GroupSynthesis {
	sources := group.DistinctSources()
	joined := strings.Join(sources, ", ")

	summary := fallbackSummary(group)

	detailed := fmt.Sprintf(
		"This story is covered by %d outlets (%s). Automated comparison is unavailable; refer to the individual articles for each outlet's framing.",
		len(sources), joined)
	simple := fmt.Sprintf("Covered by %s. See the articles for details.", joined)

	differences := make([]string, 0, len(sources))
	for _, src := range sources {
		count := 0
		first := ""
		for _, article := range group.Articles {
			if string(article.SourceID) != src {
				continue
			}
			count++
			if first == "" {
				first = article.Title
			}
		}
		differences = append(differences, fmt.Sprintf("%s: %d article(s), leading with %q", src, count, first))
	}

	rep := group.Representative()
	return pipeline.GroupSynthesis{
		GroupTitle:         ExtractNeutralTitle(rep.Title, rep.Description, summary),
		Summary:            summary,
		DetailedComparison: detailed,
		SimpleComparison:   simple,
		Differences:        differences,
	}
}

func fallbackSummary(group pipeline.StoryGroup) string {
	var parts []string
	for _, article := range group.Articles {
		desc := strings.TrimSpace(article.Description)
		if desc == "" {
			continue
		}
		parts = append(parts, desc)
		if len(parts) == 2 {
			break
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	titles := make([]string, 0, len(group.Articles))
	for _, article := range group.Articles {
		titles = append(titles, article.Title)
	}
	return "Related coverage: " + strings.Join(titles, "; ")
}

var _ pipeline.Synthesizer = (*Service)(nil)
