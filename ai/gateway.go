// Package ai forwards writing-assistant requests to a hosted generative
// model. The gateway is a thin passthrough: render a prompt, call the
// upstream, relay the text. No retries, no streaming, no caching.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ErrNotConfigured is returned when no upstream credential was configured.
var ErrNotConfigured = errors.New("ai gateway not configured")

const defaultModel = "gemini-pro"

// Gateway composes prompts and forwards them to a generative-text model.
// The llm dependency is injected at construction and may be nil when no
// credential is configured; every call checks before dialing out.
type Gateway struct {
	llm llms.Model
}

// New wraps an existing model client. A nil model yields a gateway whose
// operations fail with ErrNotConfigured.
func New(llm llms.Model) *Gateway {
	return &Gateway{llm: llm}
}

// NewFromAPIKey builds a gateway backed by the hosted Gemini API. An empty
// key yields an unconfigured gateway rather than an error, so the rest of
// the app runs without the assistant.
func NewFromAPIKey(ctx context.Context, apiKey string) (*Gateway, error) {
	if apiKey == "" {
		return New(nil), nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(defaultModel),
	)
	if err != nil {
		return nil, fmt.Errorf("init ai client: %w", err)
	}
	return New(llm), nil
}

// Configured reports whether an upstream model is available.
func (g *Gateway) Configured() bool {
	return g.llm != nil
}

func (g *Gateway) generate(ctx context.Context, prompt string) (string, error) {
	if g.llm == nil {
		return "", ErrNotConfigured
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return text, nil
}

// GeneratePost produces a complete markdown blog post for a topic.
func (g *Gateway) GeneratePost(ctx context.Context, topic, keywords, tone string) (string, error) {
	return g.generate(ctx, generatePostPrompt(topic, keywords, tone))
}

// ImproveSection rewrites a passage following the given instructions.
func (g *Gateway) ImproveSection(ctx context.Context, content, instructions string) (string, error) {
	return g.generate(ctx, improveSectionPrompt(content, instructions))
}

// GenerateOutline produces a markdown outline with the requested number of
// main sections.
func (g *Gateway) GenerateOutline(ctx context.Context, topic string, sections int) (string, error) {
	return g.generate(ctx, generateOutlinePrompt(topic, sections))
}

// ContinueWriting extends existing content, optionally steered by a
// direction hint.
func (g *Gateway) ContinueWriting(ctx context.Context, content, direction string) (string, error) {
	return g.generate(ctx, continueWritingPrompt(content, direction))
}

// GenerateTags suggests comma-separated tags for the content. The upstream
// tends to pad its answer with whitespace, so the result is trimmed.
func (g *Gateway) GenerateTags(ctx context.Context, content string) (string, error) {
	tags, err := g.generate(ctx, generateTagsPrompt(content))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tags), nil
}
