package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	rerrors "github.com/ivlev/shotredact/internal/errors"
)

// Write stores the report as YAML at path
func Write(r *Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return rerrors.NewOutputError(path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return rerrors.NewOutputError(path, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return rerrors.NewOutputError(path, err)
	}
	return nil
}

// Encode writes the report as YAML to w
func Encode(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// Read loads a report written by Write
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &r, nil
}

// DefaultPath puts the report next to the image: shot_redacted.png -> shot_redacted.yaml
func DefaultPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".yaml"
}
