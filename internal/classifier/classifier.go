// Package classifier provides the zero-shot text classification capability
// used as a fallback detector for tokens the heuristics did not flag.
package classifier

import (
	"context"
	"sort"
)

const (
	LabelPassword   = "password"
	LabelNormalText = "normal text"
)

// CandidateLabels are the labels every token is scored against
var CandidateLabels = []string{LabelPassword, LabelNormalText}

// Score is the probability assigned to one candidate label.
type Score struct {
	Label       string
	Probability float64
}

// Classifier scores text against candidate labels it was not trained on.
// Results are ranked, highest probability first.
// Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]Score, error)
	Name() string
}

// Rank sorts scores by descending probability; ties keep their input order.
func Rank(scores []Score) []Score {
	ranked := append([]Score(nil), scores...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})
	return ranked
}

// Sensitivity interprets ranked scores. When "password" ranks first the score
// is its probability; otherwise it is 1 minus the top probability.
func Sensitivity(ranked []Score) (isPassword bool, score float64) {
	if len(ranked) == 0 {
		return false, 0
	}
	top := ranked[0]
	if top.Label == LabelPassword {
		return true, top.Probability
	}
	return false, 1 - top.Probability
}
