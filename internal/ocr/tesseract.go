package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/ivlev/shotredact/internal/region"
)

// TesseractConfig holds Tesseract configuration
type TesseractConfig struct {
	Languages      []string
	TessdataPrefix string
	PageSegMode    int // 0 keeps the Tesseract default
}

// TesseractEngine recognises words with libtesseract through gosseract.
// A fresh client is used per call, so one engine may serve concurrent callers.
type TesseractEngine struct {
	cfg TesseractConfig
}

func NewTesseractEngine(cfg TesseractConfig) *TesseractEngine {
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}
	return &TesseractEngine{cfg: cfg}
}

func (t *TesseractEngine) Name() string {
	return "tesseract"
}

// Recognize returns word-level boxes. Boxes are reported in the pixel grid of img.
func (t *TesseractEngine) Recognize(ctx context.Context, img image.Image) ([]Token, error) {
	var buf bytes.Buffer
	// PNG keeps the binarised pixels exact
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.cfg.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(t.cfg.Languages...); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if t.cfg.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(t.cfg.PageSegMode)); err != nil {
			return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("tesseract OCR failed: %w", err)
	}

	// Encoded PNGs start at (0,0); shift back to the source origin
	origin := img.Bounds().Min
	tokens := make([]Token, 0, len(boxes))
	for _, b := range boxes {
		tokens = append(tokens, Token{
			Text:       b.Word,
			Box:        region.FromRect(b.Box.Add(origin)),
			Confidence: b.Confidence / 100,
		})
	}
	return tokens, nil
}
