package synthesis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minTitleLength = 10

// Disallowed filler the generation service occasionally emits instead of a
// real headline. Substring match, case-insensitive.
var genericTitlePhrases = []string{
	"news story",
	"news summary",
	"breaking news",
	"no title",
	"untitled",
	"group summary",
	"multiple articles",
}

var storyNumberPattern = regexp.MustCompile(`(?i)^\s*story\s*#?\d+\s*$`)

var genericPhrasePattern = func() *regexp.Regexp {
	quoted := make([]string, len(genericTitlePhrases))
	for i, phrase := range genericTitlePhrases {
		quoted[i] = regexp.QuoteMeta(phrase)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
}()

// actionClausePattern captures a clause centered on a reporting or action
// verb, the most headline-like fragment a summary tends to contain.
var actionClausePattern = regexp.MustCompile(`(?i)([^.!?\n]{0,80}\b(?:announce[ds]?|launch(?:es|ed)?|approve[ds]?|reject(?:s|ed)?|report(?:s|ed)?|reveal(?:s|ed)?|confirm(?:s|ed)?|warn(?:s|ed)?|plan(?:s|ned)?|agree[ds]?|sign(?:s|ed)?|unveil(?:s|ed)?|elect(?:s|ed)?|win(?:s|ning)?|won|die[ds]?|kill(?:s|ed)?|strike[ds]?|vote[ds]?)\b[^.!?\n]{0,80})`)

var summaryBoilerplatePrefixes = []string{
	"the articles",
	"these articles",
	"the reports",
	"this story",
	"according to multiple sources",
	"according to the sources",
	"multiple sources",
	"several sources",
	"sources say",
	"in summary",
	"overall",
}

// IsGenericTitle reports whether a candidate headline is unusable: too short,
// a filler phrase, or a "story N" placeholder.
func IsGenericTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	if utf8.RuneCountInString(trimmed) < minTitleLength {
		return true
	}
	lowered := strings.ToLower(trimmed)
	for _, phrase := range genericTitlePhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return storyNumberPattern.MatchString(trimmed)
}

// ExtractNeutralTitle derives a usable headline from whatever text exists,
// trying progressively blunter strategies. Given any non-empty summary it
// never returns a generic label.
func ExtractNeutralTitle(title, description, summary string) string {
	summary = collapseWhitespace(summary)
	description = collapseWhitespace(description)
	title = collapseWhitespace(title)

	if candidate := truncateAtWord(actionClause(summary), 80); usable(candidate, 20) {
		return candidate
	}
	if candidate := truncateAtWord(firstSentence(stripBoilerplate(summary)), 80); usable(candidate, 20) {
		return candidate
	}
	if candidate := truncateAtWord(summary, 80); usable(candidate, 20) {
		return candidate
	}
	if candidate := cleanArticleTitle(title); usable(candidate, 15) {
		return candidate
	}
	if candidate := truncateAtWord(firstSentence(description), 80); usable(candidate, 20) {
		return candidate
	}
	if candidate := truncateAtWord(summary, 60); usable(candidate, 15) {
		return candidate
	}
	if candidate := truncateAtWord(title, 80); usable(candidate, minTitleLength) {
		return candidate
	}

	// Everything above failed; synthesize from whatever text remains. The
	// text may have been rejected for containing a disallowed phrase, so
	// strip those before prefixing or the result stays generic.
	for _, text := range []string{summary, description, title} {
		if cleaned := stripGenericPhrases(text); cleaned != "" {
			return "Developing: " + truncateAtWord(cleaned, 60)
		}
	}
	return "Developing coverage from multiple sources"
}

func usable(candidate string, minLength int) bool {
	if utf8.RuneCountInString(candidate) < minLength {
		return false
	}
	return !IsGenericTitle(candidate)
}

func actionClause(summary string) string {
	if summary == "" {
		return ""
	}
	match := actionClausePattern.FindStringSubmatch(summary)
	if len(match) < 2 {
		return ""
	}
	return strings.Trim(strings.TrimSpace(match[1]), ",;:")
}

func stripGenericPhrases(text string) string {
	cleaned := genericPhrasePattern.ReplaceAllString(text, " ")
	cleaned = strings.Trim(cleaned, ",:;- ")
	return collapseWhitespace(cleaned)
}

func stripBoilerplate(summary string) string {
	trimmed := strings.TrimSpace(summary)
	lowered := strings.ToLower(trimmed)
	for _, prefix := range summaryBoilerplatePrefixes {
		if !strings.HasPrefix(lowered, prefix) {
			continue
		}
		rest := strings.TrimSpace(trimmed[len(prefix):])
		rest = strings.TrimLeft(rest, ",:;- ")
		if rest != "" {
			return rest
		}
	}
	return trimmed
}

func firstSentence(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	for i, r := range trimmed {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Sentence ends only at a boundary followed by whitespace or EOL,
		// so "U.S." style abbreviations survive more often than not.
		if i+1 == len(trimmed) || trimmed[i+1] == ' ' {
			return strings.TrimRight(strings.TrimSpace(trimmed[:i]), ".!?")
		}
	}
	return trimmed
}

func truncateAtWord(text string, maxRunes int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	runes := []rune(trimmed)
	if len(runes) <= maxRunes {
		return strings.TrimRight(trimmed, ".!?,;: ")
	}

	cut := string(runes[:maxRunes])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, ".!?,;: ")
}

// cleanArticleTitle strips trailing source attributions like " - Reuters"
// or " | BBC News".
func cleanArticleTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	for _, separator := range []string{" - ", " – ", " | "} {
		if idx := strings.LastIndex(trimmed, separator); idx > 0 {
			// Only treat the tail as attribution when it is short.
			if utf8.RuneCountInString(trimmed[idx+len(separator):]) <= 30 {
				trimmed = strings.TrimSpace(trimmed[:idx])
			}
		}
	}
	return trimmed
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
