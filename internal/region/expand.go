package region

import "image"

// Expand pads the box by margin on every side and clips it to a
// width x height image anchored at (0,0).
func Expand(b Box, margin, width, height int) Box {
	return ExpandIn(b, margin, image.Rect(0, 0, width, height))
}

// ExpandIn pads the box by margin on every side, then clips it to bounds.
// The origin is clamped to the near edges and the padded size w+2m, h+2m is
// trimmed only at the far edges. The result never has a negative size.
func ExpandIn(b Box, margin int, bounds image.Rectangle) Box {
	if margin < 0 {
		margin = 0
	}
	x := clamp(b.X-margin, bounds.Min.X, bounds.Max.X)
	y := clamp(b.Y-margin, bounds.Min.Y, bounds.Max.Y)

	padded := image.Rect(b.X-margin, b.Y-margin, b.X+b.W+margin, b.Y+b.H+margin)
	if !padded.Overlaps(bounds) {
		return Box{X: x, Y: y}
	}

	w := clamp(b.W+2*margin, 0, bounds.Max.X-x)
	h := clamp(b.H+2*margin, 0, bounds.Max.Y-y)

	return Box{X: x, Y: y, W: w, H: h}
}

// ExpandAll expands every region box within bounds and drops the ones that
// end up empty (boxes lying completely outside the image).
func ExpandAll(regions []Region, margin int, bounds image.Rectangle) []Box {
	out := make([]Box, 0, len(regions))
	for _, r := range regions {
		b := ExpandIn(r.Box, margin, bounds)
		if b.Empty() {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Unique drops exact duplicate boxes, keeping the first occurrence order.
func Unique(boxes []Box) []Box {
	seen := make(map[Box]struct{}, len(boxes))
	out := make([]Box, 0, len(boxes))
	for _, b := range boxes {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
