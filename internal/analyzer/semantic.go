package analyzer

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/shotredact/internal/classifier"
	rerrors "github.com/ivlev/shotredact/internal/errors"
	"github.com/ivlev/shotredact/internal/logging"
	"github.com/ivlev/shotredact/internal/ocr"
	"github.com/ivlev/shotredact/internal/region"
)

// SemanticDetector asks a zero-shot classifier about tokens the rule based
// passes left alone. It makes one classifier call per such token.
type SemanticDetector struct {
	Classifier classifier.Classifier
	Threshold  float64
	Workers    int
	Log        *logging.Logger
}

func NewSemanticDetector(c classifier.Classifier, threshold float64, workers int) *SemanticDetector {
	return &SemanticDetector{Classifier: c, Threshold: threshold, Workers: workers, Log: logging.Discard()}
}

type verdict struct {
	flagged bool
	score   float64
}

// ClassifyFallback classifies every non-blank token whose box is not in
// flagged. Calls run concurrently but regions are emitted in token order.
// A classifier failure aborts with a ClassificationError.
func (d *SemanticDetector) ClassifyFallback(ctx context.Context, tokens []ocr.Token, flagged []region.Box) ([]region.Region, error) {
	skip := make(map[region.Box]struct{}, len(flagged))
	for _, b := range flagged {
		skip[b] = struct{}{}
	}

	verdicts := make([]verdict, len(tokens))
	g, gctx := errgroup.WithContext(ctx)
	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, tok := range tokens {
		if tok.Blank() {
			continue
		}
		if _, ok := skip[tok.Box]; ok {
			continue
		}
		g.Go(func() error {
			ranked, err := d.Classifier.Classify(gctx, strings.TrimSpace(tok.Text), classifier.CandidateLabels)
			if err != nil {
				return err
			}
			isPassword, score := classifier.Sensitivity(classifier.Rank(ranked))
			verdicts[i] = verdict{flagged: isPassword && score > d.Threshold, score: score}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, rerrors.NewClassificationError(d.Classifier.Name(), err)
	}

	var regions []region.Region
	for i, v := range verdicts {
		if !v.flagged {
			continue
		}
		d.Log.Debug("classified as sensitive", "value", logging.Mask(tokens[i].Text), "score", v.score, "box", tokens[i].Box)
		regions = append(regions, region.Region{Box: tokens[i].Box, Source: region.SemanticMatch, Score: v.score})
	}
	return regions, nil
}
