package engine

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/ivlev/shotredact/internal/analyzer"
	"github.com/ivlev/shotredact/internal/config"
	rerrors "github.com/ivlev/shotredact/internal/errors"
	"github.com/ivlev/shotredact/internal/logging"
	"github.com/ivlev/shotredact/internal/ocr"
	"github.com/ivlev/shotredact/internal/region"
	"github.com/ivlev/shotredact/internal/renderer"
	"github.com/ivlev/shotredact/internal/source"
)

// Stage is a step of the redaction pipeline. Stages only move forward.
type Stage int

const (
	StageLoaded Stage = iota
	StageExtracted
	StageDetected
	StageExpanded
	StageRendered
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageLoaded:
		return "loaded"
	case StageExtracted:
		return "extracted"
	case StageDetected:
		return "detected"
	case StageExpanded:
		return "expanded"
	case StageRendered:
		return "rendered"
	case StageDone:
		return "done"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Stats holds per-stage wall clock timings
type Stats struct {
	Extract time.Duration
	Detect  time.Duration
	Expand  time.Duration
	Render  time.Duration
	Total   time.Duration
}

// Result is the outcome of one pipeline run
type Result struct {
	Image   *image.RGBA
	Stage   Stage
	Tokens  int             // non-blank OCR tokens
	Regions []region.Region // detected regions with provenance, in detection order
	Boxes   []region.Box    // expanded boxes that were (or would be) blurred
	Stats   Stats
}

// Pipeline sequences extraction, detection, expansion and rendering.
type Pipeline struct {
	Config    config.RedactionConfig
	Extractor *ocr.Extractor
	Analyzer  *analyzer.Analyzer
	Renderer  *renderer.Renderer
	Log       *logging.Logger

	ShowStats    bool
	StatsOut     io.Writer
	BuildVersion string
}

func NewPipeline(cfg config.RedactionConfig, ex *ocr.Extractor, an *analyzer.Analyzer, rn *renderer.Renderer, log *logging.Logger) *Pipeline {
	if log == nil {
		log = logging.Discard()
	}
	return &Pipeline{
		Config:    cfg,
		Extractor: ex,
		Analyzer:  an,
		Renderer:  rn,
		Log:       log,
		StatsOut:  os.Stdout,
	}
}

// Run redacts img in place and returns it inside the result. On error the
// image must be discarded by the caller: no partial redaction is considered safe.
func (p *Pipeline) Run(ctx context.Context, img *image.RGBA) (*Result, error) {
	return p.run(ctx, img, true)
}

// Scan runs detection and expansion only; img is left untouched.
func (p *Pipeline) Scan(ctx context.Context, img *image.RGBA) (*Result, error) {
	return p.run(ctx, img, false)
}

func (p *Pipeline) run(ctx context.Context, img *image.RGBA, render bool) (*Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, rerrors.NewImageDecodeError("", fmt.Errorf("no image data"))
	}

	start := time.Now()
	res := &Result{Image: img, Stage: StageLoaded}
	advance := func(s Stage) {
		res.Stage = s
		p.Log.Debug("stage complete", "stage", s)
	}

	t := time.Now()
	tokens, err := p.Extractor.Extract(ctx, img)
	if err != nil {
		return nil, err
	}
	res.Tokens = ocr.CountNonBlank(tokens)
	res.Stats.Extract = time.Since(t)
	p.Log.Info("text extracted", "tokens", res.Tokens)
	advance(StageExtracted)

	t = time.Now()
	regions, err := p.Analyzer.Analyze(ctx, tokens)
	if err != nil {
		return nil, err
	}
	res.Regions = regions
	res.Stats.Detect = time.Since(t)
	p.Log.Info("sensitive regions detected", "count", len(regions))
	advance(StageDetected)

	t = time.Now()
	// boxes are in absolute pixel coordinates, so clip against the real bounds
	boxes := region.ExpandAll(regions, p.Config.ExpandPx, img.Bounds())
	res.Boxes = region.Unique(boxes)
	res.Stats.Expand = time.Since(t)
	advance(StageExpanded)

	if render {
		t = time.Now()
		p.Renderer.Render(img, res.Boxes, p.Config.KernelSize, p.Config.Sigma)
		res.Stats.Render = time.Since(t)
		p.Log.Info("regions blurred", "boxes", len(res.Boxes))
		advance(StageRendered)
	}

	res.Stats.Total = time.Since(start)
	advance(StageDone)

	if p.ShowStats {
		p.printStats(res)
	}
	return res, nil
}

// RedactFile decodes src, redacts it and writes a PNG to outPath. The output
// file is created only when every stage succeeded.
func (p *Pipeline) RedactFile(ctx context.Context, src source.Source, outPath string) (*Result, error) {
	img, err := src.Image()
	if err != nil {
		return nil, err
	}
	p.Log.Info("image loaded", "source", src.Name(), "size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()))

	res, err := p.Run(ctx, img)
	if err != nil {
		return nil, err
	}
	if err := source.WritePNG(outPath, res.Image); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Pipeline) printStats(res *Result) {
	if p.StatsOut == nil {
		return
	}
	fmt.Fprintf(p.StatsOut,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Tokens: %d | Regions: %d | Boxes: %d\n"+
			"Extraction (OCR): %.3fs\n"+
			"Detection: %.3fs\n"+
			"Expansion: %.3fs\n"+
			"Rendering (blur): %.3fs\n"+
			"Total Time: %.3fs\n"+
			"----------------------------\n",
		p.BuildVersion, res.Tokens, len(res.Regions), len(res.Boxes),
		res.Stats.Extract.Seconds(), res.Stats.Detect.Seconds(), res.Stats.Expand.Seconds(),
		res.Stats.Render.Seconds(), res.Stats.Total.Seconds(),
	)
}
