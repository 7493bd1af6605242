package analyzer

import (
	"context"
	"strings"

	"github.com/ivlev/shotredact/internal/config"
	"github.com/ivlev/shotredact/internal/logging"
	"github.com/ivlev/shotredact/internal/ocr"
	"github.com/ivlev/shotredact/internal/region"
)

// HeuristicDetector applies two independent rule families to every token:
// field labels (plus the value printed right after them on the same row)
// and secret-shaped patterns.
type HeuristicDetector struct {
	Labels      []string // lower-cased
	Patterns    []Pattern
	AdjacencyPx int // max vertical distance between a label and its value
	Log         *logging.Logger
}

// NewHeuristicDetector builds the detector from a normalised config
func NewHeuristicDetector(cfg config.RedactionConfig, patterns []Pattern) *HeuristicDetector {
	return &HeuristicDetector{
		Labels:      cfg.SensitiveLabels,
		Patterns:    patterns,
		AdjacencyPx: cfg.AdjacencyPx,
		Log:         logging.Discard(),
	}
}

func (d *HeuristicDetector) Detect(_ context.Context, tokens []ocr.Token) ([]region.Region, error) {
	var regions []region.Region

	for i, tok := range tokens {
		if tok.Blank() {
			continue
		}
		text := strings.TrimSpace(tok.Text)

		if label, ok := d.matchLabel(strings.ToLower(text)); ok {
			d.Log.Debug("label found", "label", label, "box", tok.Box)
			regions = append(regions, region.Region{Box: tok.Box, Source: region.LabelMatch})

			if j, ok := d.adjacentValue(tokens, i); ok {
				d.Log.Debug("label value found", "value", logging.Mask(tokens[j].Text), "box", tokens[j].Box)
				regions = append(regions, region.Region{Box: tokens[j].Box, Source: region.LabelAdjacentValue})
			}
		}

		if name, ok := matchPattern(d.Patterns, text); ok {
			d.Log.Debug("secret pattern found", "pattern", name, "value", logging.Mask(text), "box", tok.Box)
			regions = append(regions, region.Region{Box: tok.Box, Source: region.PatternMatch})
		}
	}

	return regions, nil
}

func (d *HeuristicDetector) matchLabel(lower string) (string, bool) {
	for _, l := range d.Labels {
		if l != "" && strings.Contains(lower, l) {
			return l, true
		}
	}
	return "", false
}

// adjacentValue scans forward in OCR order for the first non-blank token whose
// top edge is within AdjacencyPx of the label's top edge.
func (d *HeuristicDetector) adjacentValue(tokens []ocr.Token, label int) (int, bool) {
	top := tokens[label].Box.Y
	for j := label + 1; j < len(tokens); j++ {
		if tokens[j].Blank() {
			continue
		}
		if abs(tokens[j].Box.Y-top) < d.AdjacencyPx {
			return j, true
		}
	}
	return 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
