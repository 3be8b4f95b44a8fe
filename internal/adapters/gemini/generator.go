// Package gemini adapts Google's Gemini API to the TextGenerator port.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/taskmaster/focusboard/internal/infrastructure/config"
	"github.com/taskmaster/focusboard/internal/ports"
)

// ErrEmptyResponse is returned when the model produces no text.
var ErrEmptyResponse = errors.New("model returned no text")

// Generator produces text with a single Gemini model.
type Generator struct {
	client *genai.Client
	model  string
}

// Option adjusts the client configuration.
type Option func(*genai.ClientConfig)

// WithBaseURL points the client at another API host.
func WithBaseURL(url string) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPOptions.BaseURL = url
	}
}

// WithHTTPClient sets the transport used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPClient = client
	}
}

// New creates a generator from cfg. It fails when no API key is set.
func New(ctx context.Context, cfg config.AIConfig, opts ...Option) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Generator{client: client, model: cfg.Model}, nil
}

// GenerateText sends prompt as a single user turn and returns the reply text.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

var _ ports.TextGenerator = (*Generator)(nil)
