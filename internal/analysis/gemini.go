package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiModelClient implements ModelClient using Google's Gemini API with
// web-search grounding enabled.
type GeminiModelClient struct {
	client  *genai.Client
	modelID string
	timeout time.Duration
}

// NewGeminiModelClient creates a new Gemini model client. Each Analyze call
// is bounded by the given timeout.
func NewGeminiModelClient(ctx context.Context, apiKey, modelID string, timeout time.Duration) (*GeminiModelClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("analysis: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis: failed to create gemini client: %w", err)
	}

	return &GeminiModelClient{
		client:  client,
		modelID: modelID,
		timeout: timeout,
	}, nil
}

// Analyze sends the report image and instructional prompt to Gemini and
// returns the free-text response plus any grounding citations.
func (c *GeminiModelClient) Analyze(ctx context.Context, image []byte, mimeType, prompt string) (*ModelOutput, error) {
	if len(image) == 0 {
		return nil, errors.New("analysis: image data is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
			{Text: prompt},
		},
	}}
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelID, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("analysis: gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("analysis: gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, errors.New("analysis: gemini returned empty content")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	return &ModelOutput{
		Text:      text.String(),
		Citations: extractCitations(candidate),
	}, nil
}

// extractCitations maps web grounding chunks onto the parser-facing shape.
// Chunks without a web URI are skipped; a chunk without a display title
// falls back to its domain, then to the URI's host.
func extractCitations(candidate *genai.Candidate) []Citation {
	if candidate == nil || candidate.GroundingMetadata == nil {
		return nil
	}

	var out []Citation
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || strings.TrimSpace(chunk.Web.URI) == "" {
			continue
		}
		uri := chunk.Web.URI
		title := strings.TrimSpace(chunk.Web.Title)
		if title == "" {
			title = strings.TrimSpace(chunk.Web.Domain)
		}
		if title == "" {
			title = uri
			if parsed, err := url.Parse(uri); err == nil && parsed.Host != "" {
				title = parsed.Host
			}
		}
		out = append(out, Citation{Title: title, URI: uri})
	}
	return out
}
