package source

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	rerrors "github.com/ivlev/shotredact/internal/errors"
)

// Source yields the raster image to redact
type Source interface {
	Name() string
	Image() (*image.RGBA, error)
}

// FileSource decodes an image file from disk
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

// Image decodes the file. Any failure is an ImageDecodeError.
func (s *FileSource) Image() (*image.RGBA, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, rerrors.NewImageDecodeError(s.path, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, rerrors.NewImageDecodeError(s.path, err)
	}
	return img, nil
}

// BytesSource decodes an in-memory encoded image
type BytesSource struct {
	name string
	data []byte
}

func NewBytesSource(name string, data []byte) *BytesSource {
	return &BytesSource{name: name, data: data}
}

func (s *BytesSource) Name() string {
	return s.name
}

func (s *BytesSource) Image() (*image.RGBA, error) {
	if len(s.data) == 0 {
		return nil, rerrors.NewImageDecodeError(s.name, fmt.Errorf("empty image data"))
	}
	img, err := Decode(bytes.NewReader(s.data))
	if err != nil {
		return nil, rerrors.NewImageDecodeError(s.name, err)
	}
	return img, nil
}

// Decode reads any registered format into a fresh RGBA buffer with origin (0,0).
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA copies img into a new zero-origin RGBA buffer owned by the caller.
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(rgba, image.Point{}, img, bounds, draw.Src, nil)
	return rgba
}
