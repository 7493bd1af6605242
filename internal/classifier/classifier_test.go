package classifier

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSensitivity(t *testing.T) {
	tests := []struct {
		name      string
		ranked    []Score
		wantPass  bool
		wantScore float64
	}{
		{"password on top", []Score{{LabelPassword, 0.92}, {LabelNormalText, 0.08}}, true, 0.92},
		{"normal on top", []Score{{LabelNormalText, 0.8}, {LabelPassword, 0.2}}, false, 0.2},
		{"empty", nil, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pass, score := Sensitivity(tt.ranked)
			if pass != tt.wantPass || math.Abs(score-tt.wantScore) > 1e-9 {
				t.Errorf("got (%v, %.3f), want (%v, %.3f)", pass, score, tt.wantPass, tt.wantScore)
			}
		})
	}
}

func TestRankStable(t *testing.T) {
	ranked := Rank([]Score{{"a", 0.2}, {"b", 0.5}, {"c", 0.5}})
	if ranked[0].Label != "b" || ranked[1].Label != "c" || ranked[2].Label != "a" {
		t.Errorf("unexpected order: %+v", ranked)
	}
}

func TestParseScores(t *testing.T) {
	scores, err := parseScores("```json\n{\"Password\": 3, \"normal text\": 1}\n```", CandidateLabels)
	if err != nil {
		t.Fatalf("parseScores failed: %v", err)
	}
	if scores[0].Label != LabelPassword || math.Abs(scores[0].Probability-0.75) > 1e-9 {
		t.Errorf("unexpected scores: %+v", scores)
	}

	scores, err = parseScores(`{"normal text": 0.6}`, CandidateLabels)
	if err != nil {
		t.Fatal(err)
	}
	if scores[0].Label != LabelNormalText || scores[1].Probability != 0 {
		t.Errorf("missing label should score 0: %+v", scores)
	}

	if _, err := parseScores("I think it's a password", CandidateLabels); err == nil {
		t.Error("expected error for non-JSON reply")
	}
	if _, err := parseScores(`{"other": 1}`, CandidateLabels); err == nil {
		t.Error("expected error when no candidate label is scored")
	}
}

func TestOpenAIClassify(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) > 1 {
			gotPrompt = req.Messages[1].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","model":"test",
			"choices":[{"index":0,"finish_reason":"stop",
			"message":{"role":"assistant","content":"{\"password\":0.9,\"normal text\":0.1}"}}]}`))
	}))
	defer srv.Close()

	c, err := NewOpenAI("test-key", "", srv.URL+"/v1")
	if err != nil {
		t.Fatal(err)
	}
	scores, err := c.Classify(context.Background(), "hunter2", CandidateLabels)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	pass, score := Sensitivity(scores)
	if !pass || math.Abs(score-0.9) > 1e-9 {
		t.Errorf("got (%v, %.2f)", pass, score)
	}
	if !strings.Contains(gotPrompt, `"hunter2"`) || !strings.Contains(gotPrompt, `"normal text"`) {
		t.Errorf("prompt missing text or labels: %q", gotPrompt)
	}
}

func TestOpenAIServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewOpenAI("test-key", "", srv.URL+"/v1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Classify(context.Background(), "x", CandidateLabels); err == nil {
		t.Error("expected error from failing backend")
	}
}

func TestNew(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := New(context.Background(), Options{Provider: "openai"}); err == nil {
		t.Error("expected error without api key")
	}
	if _, err := New(context.Background(), Options{Provider: "bart"}); err == nil {
		t.Error("expected error for unknown provider")
	}
	c, err := New(context.Background(), Options{Provider: "OpenAI", APIKey: "k"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.Name() != "openai" {
		t.Errorf("unexpected backend %s", c.Name())
	}
}
