package report

import (
	"github.com/ivlev/shotredact/internal/engine"
	"github.com/ivlev/shotredact/internal/region"
)

// Version of the report layout
const Version = "1.0"

// Report is the audit trail of one redaction run. It records where and why
// pixels were blurred, never the text that was found there.
type Report struct {
	Version string       `yaml:"version"`
	Build   string       `yaml:"build,omitempty"`
	Input   string       `yaml:"input"`
	Output  string       `yaml:"output,omitempty"` // empty for scan-only runs
	Width   int          `yaml:"width"`
	Height  int          `yaml:"height"`
	Tokens  int          `yaml:"tokens"`
	Regions []Entry      `yaml:"regions"`
	Boxes   []region.Box `yaml:"boxes"`
	Timings Timings      `yaml:"timings"`
}

// Entry is one detected region
type Entry struct {
	Provenance region.Provenance `yaml:"provenance"`
	Box        region.Box        `yaml:"box"`
	Score      float64           `yaml:"score,omitempty"`
}

// Timings in seconds
type Timings struct {
	Extract float64 `yaml:"extract"`
	Detect  float64 `yaml:"detect"`
	Render  float64 `yaml:"render"`
	Total   float64 `yaml:"total"`
}

// FromResult builds a report for a finished pipeline run
func FromResult(res *engine.Result, input, output, build string) *Report {
	r := &Report{
		Version: Version,
		Build:   build,
		Input:   input,
		Output:  output,
		Regions: make([]Entry, 0, len(res.Regions)),
		Boxes:   append([]region.Box{}, res.Boxes...),
	}
	if res.Image != nil {
		r.Width, r.Height = res.Image.Bounds().Dx(), res.Image.Bounds().Dy()
	}
	r.Tokens = res.Tokens
	for _, reg := range res.Regions {
		r.Regions = append(r.Regions, Entry{Provenance: reg.Source, Box: reg.Box, Score: reg.Score})
	}
	r.Timings = Timings{
		Extract: res.Stats.Extract.Seconds(),
		Detect:  res.Stats.Detect.Seconds(),
		Render:  res.Stats.Render.Seconds(),
		Total:   res.Stats.Total.Seconds(),
	}
	return r
}

// Counts returns the number of regions per provenance
func (r *Report) Counts() map[region.Provenance]int {
	counts := make(map[region.Provenance]int)
	for _, e := range r.Regions {
		counts[e.Provenance]++
	}
	return counts
}
