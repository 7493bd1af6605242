package classifier

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini classifies text with a Gemini model in JSON response mode.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string {
	return "gemini"
}

func (g *Gemini) Classify(ctx context.Context, text string, labels []string) ([]Score, error) {
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(text, labels)), config)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("gemini returned an empty response")
	}
	return parseScores(resp.Text(), labels)
}
