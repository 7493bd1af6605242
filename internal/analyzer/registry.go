package analyzer

import (
	"context"

	"github.com/ivlev/shotredact/internal/classifier"
	"github.com/ivlev/shotredact/internal/config"
	"github.com/ivlev/shotredact/internal/logging"
	"github.com/ivlev/shotredact/internal/ocr"
	"github.com/ivlev/shotredact/internal/region"
)

// Analyzer chains the detection passes: heuristics, then keyword overrides,
// then (when a classifier is set) the semantic fallback.
type Analyzer struct {
	Heuristic *HeuristicDetector
	Keywords  *KeywordDetector
	Semantic  *SemanticDetector
}

// New builds the detection chain for one run. A nil classifier disables the semantic stage.
func New(cfg config.RedactionConfig, clf classifier.Classifier, workers int, log *logging.Logger) *Analyzer {
	if log == nil {
		log = logging.Discard()
	}
	a := &Analyzer{
		Heuristic: NewHeuristicDetector(cfg, DefaultPatterns()),
		Keywords:  NewKeywordDetector(cfg.KeywordOverrides),
	}
	a.Heuristic.Log = log
	a.Keywords.Log = log
	if clf != nil {
		a.Semantic = NewSemanticDetector(clf, cfg.SemanticThreshold, workers)
		a.Semantic.Log = log
	}
	return a
}

// Analyze runs every enabled pass and concatenates their regions in pass order.
func (a *Analyzer) Analyze(ctx context.Context, tokens []ocr.Token) ([]region.Region, error) {
	var regions []region.Region

	for _, d := range []Detector{a.Heuristic, a.Keywords} {
		found, err := d.Detect(ctx, tokens)
		if err != nil {
			return nil, err
		}
		regions = append(regions, found...)
	}

	if a.Semantic != nil {
		found, err := a.Semantic.ClassifyFallback(ctx, tokens, region.Boxes(regions))
		if err != nil {
			return nil, err
		}
		regions = append(regions, found...)
	}

	return regions, nil
}
