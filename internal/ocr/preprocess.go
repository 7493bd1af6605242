package ocr

import (
	"image"
	"image/color"
	"math"
)

const (
	thresholdBlockSize = 11
	thresholdOffset    = 2
)

// Preprocess converts img to a binarised grayscale image of the same size and origin,
// which improves Tesseract accuracy on anti-aliased UI text.
func Preprocess(img image.Image) *image.Gray {
	return AdaptiveThreshold(toGrayscale(img), thresholdBlockSize, thresholdOffset)
}

// toGrayscale converts an image to grayscale
func toGrayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	return gray
}

// AdaptiveThreshold sets a pixel to white when it is brighter than the
// Gaussian-weighted mean of its blockSize neighbourhood minus c, else black.
func AdaptiveThreshold(gray *image.Gray, blockSize int, c float64) *image.Gray {
	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(bounds)
	if w == 0 || h == 0 {
		return out
	}

	kernel := gaussianWeights(blockSize)
	half := blockSize / 2
	tmp := make([]float64, w*h)

	// Horizontal pass
	for y := 0; y < h; y++ {
		row := gray.Pix[gray.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < w; x++ {
			var sum float64
			for k := -half; k <= half; k++ {
				sum += kernel[k+half] * float64(row[reflect(x+k, w)])
			}
			tmp[y*w+x] = sum
		}
	}

	// Vertical pass and compare
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var mean float64
			for k := -half; k <= half; k++ {
				mean += kernel[k+half] * tmp[reflect(y+k, h)*w+x]
			}
			v := gray.Pix[gray.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)]
			if float64(v) > mean-c {
				out.Pix[out.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)] = 255
			}
		}
	}

	return out
}

// gaussianWeights returns a normalised 1-D kernel using the sigma OpenCV
// derives from the window size.
func gaussianWeights(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	half := size / 2
	weights := make([]float64, size)
	var sum float64
	for i := range weights {
		d := float64(i - half)
		weights[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// reflect maps an out-of-range index back into [0,n) mirroring around the
// edge pixels without repeating them.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
