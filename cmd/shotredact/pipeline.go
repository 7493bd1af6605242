package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ivlev/shotredact/internal/analyzer"
	"github.com/ivlev/shotredact/internal/classifier"
	"github.com/ivlev/shotredact/internal/config"
	"github.com/ivlev/shotredact/internal/engine"
	"github.com/ivlev/shotredact/internal/logging"
	"github.com/ivlev/shotredact/internal/ocr"
	"github.com/ivlev/shotredact/internal/renderer"
	"github.com/ivlev/shotredact/internal/system"
)

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"input":       "input",
	"output":      "output",
	"report":      "report",
	"workers":     "workers",
	"stats":       "stats",
	"lang":        "ocr.language",
	"tessdata":    "ocr.tessdata_prefix",
	"psm":         "ocr.psm",
	"semantic":    "semantic.enabled",
	"provider":    "semantic.provider",
	"model":       "semantic.model",
	"base-url":    "semantic.base_url",
	"kernel-size": "redaction.kernel_size",
	"sigma":       "redaction.sigma",
	"expand":      "redaction.expand_px",
	"labels":      "redaction.labels",
	"keywords":    "redaction.keywords",
	"threshold":   "redaction.semantic_threshold",
	"adjacency":   "redaction.adjacency_px",
}

func addDetectionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "", "screenshot to redact, or a directory (its newest image is used)")
	f.String("report", "", "write a YAML region report to this path (\"-\" for stdout)")
	f.Int("workers", 0, "parallel workers (default: physical CPU cores)")
	f.Bool("stats", false, "print per-stage timings")

	f.String("lang", "eng", "Tesseract languages, e.g. eng+deu")
	f.String("tessdata", "", "tessdata directory")
	f.Int("psm", 6, "Tesseract page segmentation mode (0 keeps the engine default)")
	f.Bool("no-preprocess", false, "feed the raw image to OCR without adaptive thresholding")

	f.Bool("semantic", false, "classify remaining text with a zero-shot model")
	f.String("provider", "openai", "semantic classifier provider: openai, gemini")
	f.String("model", "", "classifier model name")
	f.String("base-url", "", "OpenAI compatible API base URL")
	f.Float64("threshold", config.DefaultSemanticThreshold, "minimum password probability for the semantic stage")

	f.StringSlice("labels", config.DefaultLabels, "field labels whose value is redacted")
	f.StringSlice("keywords", nil, "always redact text containing these keywords")
	f.Int("adjacency", config.DefaultAdjacencyPx, "max vertical distance in px between a label and its value")
	f.Int("expand", config.DefaultExpandPx, "padding in px around each detected region")
}

// bindFlags routes the command's flags through viper so that flags override
// env, env overrides the config file and the file overrides the defaults.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	if err != nil {
		return err
	}
	if flags.Changed("no-preprocess") {
		off, _ := flags.GetBool("no-preprocess")
		v.Set("ocr.preprocess", !off)
	}
	return nil
}

// resolveInput picks the screenshot to process: the positional argument wins
// over --input, and a directory resolves to its newest image.
func resolveInput(progress io.Writer, configured string, args []string) (string, error) {
	input := configured
	if len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return "", fmt.Errorf("no input: pass a screenshot path or --input")
	}

	info, err := os.Stat(input)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return input, nil
	}
	latest, err := system.FindLatestImage(input)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(progress, "[*] Selected file: %s\n", latest)
	return latest, nil
}

// newOCREngine builds the text recogniser; tests swap it for a stub
var newOCREngine = func(cfg *config.Config) ocr.Engine {
	return ocr.NewTesseractEngine(ocr.TesseractConfig{
		Languages:      strings.Split(cfg.OCR.Language, "+"),
		TessdataPrefix: cfg.OCR.TessdataPrefix,
		PageSegMode:    cfg.OCR.PageSegMode,
	})
}

// buildPipeline wires the OCR engine, detectors, classifier and renderer for
// one run. Timing reports go to progress, never to the report stream.
func buildPipeline(ctx context.Context, cfg *config.Config, log *logging.Logger, progress io.Writer) (*engine.Pipeline, error) {
	red := cfg.Redaction()
	workers := system.ResolveWorkers(cfg.Workers)

	ex := ocr.NewExtractor(newOCREngine(cfg), cfg.OCR.Preprocess)

	var clf classifier.Classifier
	if cfg.Semantic.Enabled {
		var err error
		clf, err = classifier.New(ctx, classifier.Options{
			Provider: cfg.Semantic.Provider,
			Model:    cfg.Semantic.Model,
			APIKey:   cfg.Semantic.APIKey,
			BaseURL:  cfg.Semantic.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		log.Info("semantic stage enabled", "provider", clf.Name(), "threshold", red.SemanticThreshold)
	}

	an := analyzer.New(red, clf, workers, log)
	p := engine.NewPipeline(red, ex, an, renderer.NewRenderer(workers), log)
	p.ShowStats = cfg.ShowStats
	p.StatsOut = progress
	p.BuildVersion = cfg.BuildVersion

	log.Debug("pipeline ready",
		"workers", workers,
		"kernel", red.KernelSize,
		"sigma", red.Sigma,
		"expand", red.ExpandPx,
		"labels", len(red.SensitiveLabels),
		"keywords", len(red.KeywordOverrides),
		"preprocess", cfg.OCR.Preprocess,
	)
	return p, nil
}

func elapsed(start time.Time) string {
	return fmt.Sprintf("%.2fs", time.Since(start).Seconds())
}
