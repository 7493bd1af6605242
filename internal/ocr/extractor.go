package ocr

import (
	"context"
	"fmt"
	"image"

	rerrors "github.com/ivlev/shotredact/internal/errors"
)

// Extractor turns a raster image into OCR tokens.
type Extractor struct {
	Engine     Engine
	Preprocess bool
}

func NewExtractor(engine Engine, preprocess bool) *Extractor {
	return &Extractor{Engine: engine, Preprocess: preprocess}
}

// Extract runs the engine over img (binarised first when Preprocess is set).
// Preprocessing keeps the image geometry, so token boxes stay in img coordinates.
// Every failure is reported as an ExtractionError.
func (e *Extractor) Extract(ctx context.Context, img image.Image) ([]Token, error) {
	if e.Engine == nil {
		return nil, rerrors.NewExtractionError("none", fmt.Errorf("no OCR engine configured"))
	}
	if img == nil {
		return nil, rerrors.NewExtractionError(e.Engine.Name(), fmt.Errorf("nil image"))
	}

	input := img
	if e.Preprocess {
		input = Preprocess(img)
	}

	tokens, err := e.Engine.Recognize(ctx, input)
	if err != nil {
		return nil, rerrors.NewExtractionError(e.Engine.Name(), err)
	}
	return tokens, nil
}

// CountNonBlank returns how many tokens carry text
func CountNonBlank(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if !t.Blank() {
			n++
		}
	}
	return n
}
