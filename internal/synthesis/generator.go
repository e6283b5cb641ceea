package synthesis

import (
	"context"
)

// GenerateRequest is the payload contract with the text-generation service.
type GenerateRequest struct {
	SystemInstruction string
	UserPrompt        string
}

// Generator is the pluggable text-generation collaborator. Generate returns
// the raw model text; the caller owns structural parsing and fallback.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
