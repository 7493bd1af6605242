package config

import (
	"math"
	"strings"
)

const (
	DefaultKernelSize        = 99
	DefaultSigma             = 30.0
	DefaultExpandPx          = 15
	DefaultSemanticThreshold = 0.7
	DefaultAdjacencyPx       = 15
	MinKernelSize            = 3
)

// DefaultLabels are the field captions that mark the next token on the row as a secret
var DefaultLabels = []string{"password", "api key", "secret", "token", "pwd", "pass", "credential", "key"}

// RedactionConfig holds the normalised detection and blur parameters of one run.
// Build it with NewRedactionConfig and do not modify it afterwards.
type RedactionConfig struct {
	KernelSize        int
	Sigma             float64
	ExpandPx          int
	SensitiveLabels   []string
	KeywordOverrides  []string
	SemanticThreshold float64
	AdjacencyPx       int
}

// RedactionOptions is the raw caller input for NewRedactionConfig
type RedactionOptions struct {
	KernelSize        int
	Sigma             float64
	ExpandPx          int
	SensitiveLabels   []string
	KeywordOverrides  []string
	SemanticThreshold float64
	AdjacencyPx       int
}

// NewRedactionConfig normalises raw options. Malformed values are corrected, never rejected.
func NewRedactionConfig(o RedactionOptions) RedactionConfig {
	sigma := o.Sigma
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		sigma = DefaultSigma
	}
	expand := o.ExpandPx
	if expand < 0 {
		expand = 0
	}
	threshold := o.SemanticThreshold
	switch {
	case math.IsNaN(threshold):
		threshold = DefaultSemanticThreshold
	case threshold < 0:
		threshold = 0
	case threshold > 1:
		threshold = 1
	}
	adjacency := o.AdjacencyPx
	if adjacency <= 0 {
		adjacency = DefaultAdjacencyPx
	}

	return RedactionConfig{
		KernelSize:        NormalizeKernelSize(o.KernelSize),
		Sigma:             sigma,
		ExpandPx:          expand,
		SensitiveLabels:   NormalizeTerms(o.SensitiveLabels),
		KeywordOverrides:  NormalizeTerms(o.KeywordOverrides),
		SemanticThreshold: threshold,
		AdjacencyPx:       adjacency,
	}
}

// DefaultRedaction returns the configuration used when the caller supplies nothing
func DefaultRedaction() RedactionConfig {
	return NewRedactionConfig(RedactionOptions{
		KernelSize:        DefaultKernelSize,
		Sigma:             DefaultSigma,
		ExpandPx:          DefaultExpandPx,
		SensitiveLabels:   DefaultLabels,
		SemanticThreshold: DefaultSemanticThreshold,
		AdjacencyPx:       DefaultAdjacencyPx,
	})
}

// NormalizeKernelSize maps any value to an odd kernel size >= 3.
// Even values are bumped to the next odd number.
func NormalizeKernelSize(k int) int {
	if k < MinKernelSize {
		return MinKernelSize
	}
	if k%2 == 0 {
		return k + 1
	}
	return k
}

// NormalizeTerms trims and lower-cases terms, dropping blanks and repeats
// while keeping the first occurrence order.
func NormalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SplitList splits a comma separated flag value
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}
