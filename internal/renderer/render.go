package renderer

import (
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/shotredact/internal/region"
)

// Renderer blurs redaction boxes in place.
type Renderer struct {
	Workers int
}

func NewRenderer(workers int) *Renderer {
	if workers < 1 {
		workers = 1
	}
	return &Renderer{Workers: workers}
}

// Render blurs each box of img with the given kernel and returns img.
//
// Boxes that overlap are blurred one after another in list order, so the
// overlap is blurred once per box covering it. Boxes that do not overlap any
// earlier unfinished box run in parallel. The output is identical to a
// sequential pass in list order.
func (r *Renderer) Render(img *image.RGBA, boxes []region.Box, kernelSize int, sigma float64) *image.RGBA {
	if len(boxes) == 0 {
		return img
	}
	kernel := GaussianKernel(kernelSize, sigma)

	for _, layer := range Layers(boxes) {
		var g errgroup.Group
		g.SetLimit(r.Workers)
		for _, b := range layer {
			g.Go(func() error {
				BlurRegion(img, b.Rect(), kernel)
				return nil
			})
		}
		_ = g.Wait()
	}
	return img
}

// Layers groups boxes so that every box lands in a later layer than each
// earlier box it overlaps. Boxes within one layer never overlap each other.
func Layers(boxes []region.Box) [][]region.Box {
	level := make([]int, len(boxes))
	var layers [][]region.Box

	for i, b := range boxes {
		if b.Empty() {
			level[i] = -1
			continue
		}
		l := 0
		for j := 0; j < i; j++ {
			if level[j] >= l && b.Overlaps(boxes[j]) {
				l = level[j] + 1
			}
		}
		level[i] = l
		if l == len(layers) {
			layers = append(layers, nil)
		}
		layers[l] = append(layers[l], b)
	}
	return layers
}
