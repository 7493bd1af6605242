package analyzer

import "regexp"

// Pattern is a named secret-shaped regular expression
type Pattern struct {
	Name string
	Expr *regexp.Regexp
}

// DefaultPatterns compiles the built-in secret patterns. Matching is a search
// over the case-preserved token text. Specific key formats come before the
// generic runs so the first match names the key type.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{"aws-access-key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
		{"github-token", regexp.MustCompile(`ghp_[A-Za-z0-9]{36}`)},
		{"google-api-key", regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`)},
		{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`)},
		{"jwt-prefix", regexp.MustCompile(`eyJ[a-zA-Z0-9]{30,}`)},
		{"hex-digest", regexp.MustCompile(`[a-fA-F0-9]{32,}`)},
		{"high-entropy-run", regexp.MustCompile(`[A-Za-z0-9_\-]{20,}`)},
		{"base64-run", regexp.MustCompile(`[A-Za-z0-9+/]{20,}=*`)},
	}
}

// matchPattern returns the name of the first pattern found in text
func matchPattern(patterns []Pattern, text string) (string, bool) {
	for _, p := range patterns {
		if p.Expr.MatchString(text) {
			return p.Name, true
		}
	}
	return "", false
}
