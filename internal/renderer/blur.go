package renderer

import (
	"image"
	"math"

	"github.com/ivlev/shotredact/internal/system"
)

// GaussianKernel returns a normalised 1-D Gaussian of the given odd size.
func GaussianKernel(size int, sigma float64) []float32 {
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}
	if sigma <= 0 {
		// same fallback OpenCV uses when sigma is not given
		sigma = 0.3*(float64(size-1)*0.5-1) + 0.8
	}
	half := size / 2
	weights := make([]float64, size)
	var sum float64
	for i := range weights {
		d := float64(i - half)
		weights[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += weights[i]
	}
	kernel := make([]float32, size)
	for i, w := range weights {
		kernel[i] = float32(w / sum)
	}
	return kernel
}

// BlurRegion replaces r (clipped to the image) with a separable Gaussian blur
// of itself. Border pixels are mirrored inside r, so nothing outside r is
// read or written.
func BlurRegion(img *image.RGBA, r image.Rectangle, kernel []float32) {
	r = r.Intersect(img.Bounds())
	w, h := r.Dx(), r.Dy()
	if w == 0 || h == 0 || len(kernel) == 0 {
		return
	}
	half := len(kernel) / 2

	xIndex := mirrorTable(w, half)
	yIndex := mirrorTable(h, half)

	tmp := system.GetFloats(w * h * 4)
	defer system.PutFloats(tmp)

	// Horizontal pass: image -> tmp
	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, r.Min.Y+y):]
		out := tmp[y*w*4:]
		for x := 0; x < w; x++ {
			var sr, sg, sb, sa float32
			for k, kv := range kernel {
				i := xIndex[x+k] * 4
				sr += kv * float32(row[i])
				sg += kv * float32(row[i+1])
				sb += kv * float32(row[i+2])
				sa += kv * float32(row[i+3])
			}
			o := x * 4
			out[o], out[o+1], out[o+2], out[o+3] = sr, sg, sb, sa
		}
	}

	// Vertical pass: tmp -> image
	stride := w * 4
	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, r.Min.Y+y):]
		for x := 0; x < w; x++ {
			var sr, sg, sb, sa float32
			col := x * 4
			for k, kv := range kernel {
				i := yIndex[y+k]*stride + col
				sr += kv * tmp[i]
				sg += kv * tmp[i+1]
				sb += kv * tmp[i+2]
				sa += kv * tmp[i+3]
			}
			o := x * 4
			row[o] = toByte(sr)
			row[o+1] = toByte(sg)
			row[o+2] = toByte(sb)
			row[o+3] = toByte(sa)
		}
	}
}

// mirrorTable maps padded positions [0, n+2*half) to source indices in [0, n)
// using reflect-101 borders (edge pixel not repeated).
func mirrorTable(n, half int) []int {
	table := make([]int, n+2*half)
	for i := range table {
		table[i] = reflect101(i-half, n)
	}
	return table
}

func reflect101(i, n int) int {
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

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
