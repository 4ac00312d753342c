package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"felanocare-backend/config"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// ErrUnavailable is returned when the generative backend cannot produce a
// response. Callers degrade to a fallback message and never surface this as
// a hard failure.
var ErrUnavailable = errors.New("ai backend unavailable")

// Generator produces free-form text from a prompt. Implemented by the
// Gemini client below; tests substitute stubs.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

type geminiClient struct {
	client *genai.Client
	model  string
	log    *logrus.Logger
}

// NewGeminiClient connects to the hosted Gemini API. Returns an error when
// no API key is configured; the caller decides whether to run without AI.
func NewGeminiClient(ctx context.Context, cfg config.AIConfig, log *logrus.Logger) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiClient{
		client: client,
		model:  cfg.Model,
		log:    log,
	}, nil
}

func (g *geminiClient) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.log.Warnf("Gemini request failed: %+v", err)
		return "", ErrUnavailable
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrUnavailable
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	out := sb.String()
	if out == "" {
		return "", ErrUnavailable
	}
	return out, nil
}
