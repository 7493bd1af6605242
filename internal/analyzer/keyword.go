package analyzer

import (
	"context"
	"strings"

	"github.com/ivlev/shotredact/internal/config"
	"github.com/ivlev/shotredact/internal/logging"
	"github.com/ivlev/shotredact/internal/ocr"
	"github.com/ivlev/shotredact/internal/region"
)

// KeywordDetector flags every token containing a user supplied keyword,
// regardless of what the heuristics think of it.
type KeywordDetector struct {
	Keywords []string
	Log      *logging.Logger
}

func NewKeywordDetector(keywords []string) *KeywordDetector {
	return &KeywordDetector{Keywords: config.NormalizeTerms(keywords), Log: logging.Discard()}
}

// Detect scans the tokens once per keyword, so regions are grouped by keyword.
func (d *KeywordDetector) Detect(_ context.Context, tokens []ocr.Token) ([]region.Region, error) {
	var regions []region.Region
	for _, kw := range d.Keywords {
		count := 0
		for _, tok := range tokens {
			if tok.Blank() {
				continue
			}
			if strings.Contains(strings.ToLower(tok.Text), kw) {
				regions = append(regions, region.Region{Box: tok.Box, Source: region.KeywordOverride})
				count++
			}
		}
		d.Log.Debug("keyword scan", "keyword", kw, "matches", count)
	}
	return regions, nil
}
