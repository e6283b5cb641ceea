package synthesis

import (
	"fmt"
	"strings"

	"storyfuse.dev/storyfuse/internal/schema"
)

// parseStructured extracts the structured synthesis object from raw model
// output. Two-stage: strict parse of the whole text, then extraction of the
// first markdown code fence and a re-parse. Anything that survives neither
// stage is a parse error, which the caller converts into fallback synthesis.
func parseStructured(raw string) (*schema.SynthesisPayload, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty generation response")
	}

	payload, strictErr := schema.ValidateSynthesisPayload([]byte(trimmed))
	if strictErr == nil {
		return payload, nil
	}

	fenced, ok := extractFencedBlock(trimmed)
	if !ok {
		return nil, strictErr
	}

	payload, fencedErr := schema.ValidateSynthesisPayload([]byte(fenced))
	if fencedErr != nil {
		return nil, fmt.Errorf("fenced block parse failed: %w", fencedErr)
	}
	return payload, nil
}

// extractFencedBlock returns the contents of the first ``` fence, tolerating
// a language tag after the opening backticks.
func extractFencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start < 0 {
		return "", false
	}

	rest := text[start+3:]
	if newline := strings.IndexByte(rest, '\n'); newline >= 0 {
		// Drop the language tag line ("json", "JSON", or nothing).
		tag := strings.TrimSpace(rest[:newline])
		if tag == "" || len(tag) <= 10 && !strings.ContainsAny(tag, "{}") {
			rest = rest[newline+1:]
		}
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return strings.TrimSpace(rest), strings.TrimSpace(rest) != ""
	}

	block := strings.TrimSpace(rest[:end])
	return block, block != ""
}
