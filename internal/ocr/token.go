package ocr

import (
	"context"
	"image"
	"strings"

	"github.com/ivlev/shotredact/internal/region"
)

// Token is one OCR word with its pixel box in original image coordinates.
// Confidence is in [0,1]; 0 means the engine did not report one.
type Token struct {
	Text       string
	Box        region.Box
	Confidence float64
}

// Blank reports whether the token carries no text. Blank tokens are ignored by every detector.
func (t Token) Blank() bool {
	return strings.TrimSpace(t.Text) == ""
}

// Engine is the OCR capability: it returns words in its native order as a flat list.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) ([]Token, error)
}
