package analyzer

import (
	"context"

	"github.com/ivlev/shotredact/internal/ocr"
	"github.com/ivlev/shotredact/internal/region"
)

// Detector flags sensitive tokens. Regions come back in token order.
type Detector interface {
	Detect(ctx context.Context, tokens []ocr.Token) ([]region.Region, error)
}
