package synthesis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

const defaultGenerateTimeout = 25 * time.Second

// GeminiGenerator implements Generator over the Gemini API, requesting JSON
// output directly so responses parse without prose scraping in the common case.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  zerolog.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration, logger zerolog.Logger) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: API key is not configured")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (g *GeminiGenerator) Close() {
	if g != nil && g.client != nil {
		_ = g.client.Close()
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("gemini: generator is not initialized")
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	model.GenerationConfig.ResponseMIMEType = "application/json"
	if instruction := strings.TrimSpace(req.SystemInstruction); instruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(instruction)},
		}
	}

	started := time.Now()
	resp, err := model.GenerateContent(callCtx, genai.Text(req.UserPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("gemini: unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}

	g.logger.Debug().
		Dur("elapsed", time.Since(started)).
		Int("chars", len(text)).
		Msg("gemini generation complete")
	return string(text), nil
}
