// Package gemini implements the planner.Provider interface using the Google
// Gemini API with schema-constrained JSON output.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/travelsaathi/travelsaathi/internal/planner"
)

const (
	// ProviderName identifies this provider.
	ProviderName = "gemini"

	// DefaultModel is the model used for multimodal travel planning.
	DefaultModel = "gemini-3-pro-preview"
)

// ClientConfig holds configuration for the Gemini client.
type ClientConfig struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the model name (optional, defaults to DefaultModel).
	Model string

	// Temperature for generation (optional, defaults to 0.4).
	Temperature float32

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client generates itineraries via the Gemini API. Each call is a single
// GenerateContent exchange; retry policy is deliberately absent.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      zerolog.Logger
}

// NewClient creates a new Gemini provider.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.4
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing genai client: %w", err)
	}

	return &Client{
		client:      client,
		model:       model,
		temperature: temperature,
		logger:      cfg.Logger,
	}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GenerateItinerary submits the prompt with the strict response schema and
// returns the raw response text plus grounding chunks.
func (c *Client) GenerateItinerary(ctx context.Context, prompt string) (*planner.GeneratedItinerary, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   planner.ResponseSchema(),
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	candidate := resp.Candidates[0]

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	generated := &planner.GeneratedItinerary{
		Text:   text.String(),
		Chunks: groundingChunks(candidate),
	}

	c.logger.Debug().
		Str("model", c.model).
		Int("text_length", len(generated.Text)).
		Int("chunk_count", len(generated.Chunks)).
		Msg("gemini response received")

	return generated, nil
}

// groundingChunks maps the candidate's grounding metadata into domain
// citation records, keeping maps and web references and dropping the rest.
func groundingChunks(candidate *genai.Candidate) []planner.GroundingChunk {
	if candidate.GroundingMetadata == nil {
		return nil
	}

	var chunks []planner.GroundingChunk
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		var out planner.GroundingChunk
		if chunk.Maps != nil {
			out.Maps = &planner.MapsReference{URI: chunk.Maps.URI, Title: chunk.Maps.Title}
		}
		if chunk.Web != nil {
			out.Web = &planner.WebReference{URI: chunk.Web.URI, Title: chunk.Web.Title}
		}
		if out.Maps != nil || out.Web != nil {
			chunks = append(chunks, out)
		}
	}
	return chunks
}
