package region

import (
	"fmt"
	"image"
)

// Provenance tells which detection rule flagged a region
type Provenance string

const (
	LabelMatch         Provenance = "label-match"
	LabelAdjacentValue Provenance = "label-adjacent-value"
	PatternMatch       Provenance = "pattern-match"
	SemanticMatch      Provenance = "semantic-match"
	KeywordOverride    Provenance = "keyword-override"
)

// Box is an axis-aligned pixel rectangle: origin plus size
type Box struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Rect converts the box to an image.Rectangle
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Empty reports whether the box covers no pixels
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Overlaps reports whether two boxes share at least one pixel
func (b Box) Overlaps(o Box) bool {
	return b.Rect().Overlaps(o.Rect())
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", b.X, b.Y, b.W, b.H)
}

// FromRect converts an image.Rectangle to a Box
func FromRect(r image.Rectangle) Box {
	r = r.Canon()
	return Box{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Region is a box selected for redaction together with the rule that selected it.
// Score is set only by the semantic stage.
type Region struct {
	Box    Box
	Source Provenance
	Score  float64
}

// Boxes returns the boxes of the regions in order
func Boxes(regions []Region) []Box {
	boxes := make([]Box, len(regions))
	for i, r := range regions {
		boxes[i] = r.Box
	}
	return boxes
}
