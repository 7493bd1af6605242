package source

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	rerrors "github.com/ivlev/shotredact/internal/errors"
)

// WritePNG encodes img losslessly to path. The file appears only after the
// encode fully succeeded: data goes to a temp file that is renamed into place.
func WritePNG(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return rerrors.NewOutputError(path, err)
	}

	tmp, err := os.CreateTemp(dir, ".shotredact-*.png")
	if err != nil {
		return rerrors.NewOutputError(path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return rerrors.NewOutputError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return rerrors.NewOutputError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return rerrors.NewOutputError(path, err)
	}
	return nil
}
