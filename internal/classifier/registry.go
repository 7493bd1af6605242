package classifier

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Options selects and configures a classifier backend
type Options struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// New creates a classifier backend by provider name. An empty API key falls
// back to the provider's conventional environment variable.
func New(ctx context.Context, opts Options) (Classifier, error) {
	switch strings.ToLower(opts.Provider) {
	case "openai", "":
		key := firstNonEmpty(opts.APIKey, os.Getenv("OPENAI_API_KEY"))
		return NewOpenAI(key, opts.Model, opts.BaseURL)
	case "gemini", "google":
		key := firstNonEmpty(opts.APIKey, os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))
		return NewGemini(ctx, key, opts.Model)
	default:
		return nil, fmt.Errorf("unknown classifier provider: %s", opts.Provider)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
