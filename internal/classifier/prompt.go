package classifier

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemPrompt = `You are a zero-shot text classifier. You receive a short text fragment read
from a screenshot by OCR and a list of candidate labels. Reply with a single JSON object
mapping every candidate label to the probability that the fragment belongs to it.
Probabilities must be between 0 and 1 and sum to 1. Reply with JSON only.`

func buildPrompt(text string, labels []string) string {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = fmt.Sprintf("%q", l)
	}
	return fmt.Sprintf("Candidate labels: [%s]\nText: %q", strings.Join(quoted, ", "), text)
}

// parseScores decodes a {"label": probability} reply into ranked scores.
// Labels missing from the reply get probability 0; the rest are renormalised.
func parseScores(raw string, labels []string) ([]Score, error) {
	body := stripFences(raw)

	var probs map[string]float64
	if err := json.Unmarshal([]byte(body), &probs); err != nil {
		return nil, fmt.Errorf("invalid classifier reply %q: %w", truncate(raw, 80), err)
	}

	lower := make(map[string]float64, len(probs))
	for k, v := range probs {
		lower[strings.ToLower(strings.TrimSpace(k))] = v
	}

	scores := make([]Score, len(labels))
	var sum float64
	for i, l := range labels {
		p := lower[strings.ToLower(l)]
		if p < 0 {
			p = 0
		}
		scores[i] = Score{Label: l, Probability: p}
		sum += p
	}
	if sum <= 0 {
		return nil, fmt.Errorf("classifier reply has no usable probabilities: %q", truncate(raw, 80))
	}
	for i := range scores {
		scores[i].Probability /= sum
	}
	return Rank(scores), nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
