package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SHOTREDACT_REDACTION_SIGMA
const EnvPrefix = "SHOTREDACT"

// Config is the complete run configuration of the CLI
type Config struct {
	InputPath    string `mapstructure:"input"`
	OutputPath   string `mapstructure:"output"`
	ReportPath   string `mapstructure:"report"`
	Workers      int    `mapstructure:"workers"`
	ShowStats    bool   `mapstructure:"stats"`
	Verbose      bool   `mapstructure:"verbose"`
	BuildVersion string `mapstructure:"-"`

	OCR             OCRConfig       `mapstructure:"ocr"`
	Semantic        SemanticConfig  `mapstructure:"semantic"`
	RedactionParams RedactionParams `mapstructure:"redaction"`
}

type OCRConfig struct {
	Language       string `mapstructure:"language"`
	TessdataPrefix string `mapstructure:"tessdata_prefix"`
	Preprocess     bool   `mapstructure:"preprocess"`
	PageSegMode    int    `mapstructure:"psm"`
}

type SemanticConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
}

// RedactionParams mirrors RedactionOptions with file/env keys
type RedactionParams struct {
	KernelSize        int      `mapstructure:"kernel_size"`
	Sigma             float64  `mapstructure:"sigma"`
	ExpandPx          int      `mapstructure:"expand_px"`
	Labels            []string `mapstructure:"labels"`
	Keywords          []string `mapstructure:"keywords"`
	SemanticThreshold float64  `mapstructure:"semantic_threshold"`
	AdjacencyPx       int      `mapstructure:"adjacency_px"`
}

// Redaction builds the normalised RedactionConfig for this run
func (c *Config) Redaction() RedactionConfig {
	p := c.RedactionParams
	return NewRedactionConfig(RedactionOptions{
		KernelSize:        p.KernelSize,
		Sigma:             p.Sigma,
		ExpandPx:          p.ExpandPx,
		SensitiveLabels:   p.Labels,
		KeywordOverrides:  p.Keywords,
		SemanticThreshold: p.SemanticThreshold,
		AdjacencyPx:       p.AdjacencyPx,
	})
}

// Load reads configuration from an optional YAML file and the environment
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// NewViper prepares a viper instance with defaults, env overrides and the
// config file. An explicit path must exist; the default search locations may be empty.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("shotredact")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "shotredact"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return v, nil
}

// FromViper decodes a prepared viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.RedactionParams.Labels = flattenList(cfg.RedactionParams.Labels)
	cfg.RedactionParams.Keywords = flattenList(cfg.RedactionParams.Keywords)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "")
	v.SetDefault("output", "")
	v.SetDefault("report", "")
	v.SetDefault("workers", 0)
	v.SetDefault("stats", false)
	v.SetDefault("verbose", false)

	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.tessdata_prefix", "")
	v.SetDefault("ocr.preprocess", true)
	v.SetDefault("ocr.psm", 6)

	v.SetDefault("semantic.enabled", false)
	v.SetDefault("semantic.provider", "openai")
	v.SetDefault("semantic.model", "")
	v.SetDefault("semantic.api_key", "")
	v.SetDefault("semantic.base_url", "")

	v.SetDefault("redaction.kernel_size", DefaultKernelSize)
	v.SetDefault("redaction.sigma", DefaultSigma)
	v.SetDefault("redaction.expand_px", DefaultExpandPx)
	v.SetDefault("redaction.labels", DefaultLabels)
	v.SetDefault("redaction.keywords", []string{})
	v.SetDefault("redaction.semantic_threshold", DefaultSemanticThreshold)
	v.SetDefault("redaction.adjacency_px", DefaultAdjacencyPx)
}

// flattenList accepts both YAML lists and comma separated env/flag values
func flattenList(in []string) []string {
	var out []string
	for _, s := range in {
		out = append(out, SplitList(s)...)
	}
	return out
}
