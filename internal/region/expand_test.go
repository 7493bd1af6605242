package region

import (
	"image"
	"testing"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name   string
		box    Box
		margin int
		w, h   int
		want   Box
	}{
		{"inside", Box{50, 50, 20, 10}, 5, 200, 100, Box{45, 45, 30, 20}},
		{"top-left corner", Box{2, 3, 10, 10}, 15, 200, 100, Box{0, 0, 40, 40}},
		{"aws key near origin", Box{10, 10, 150, 20}, 15, 320, 120, Box{0, 0, 180, 50}},
		{"clipped on both sides", Box{5, 5, 190, 10}, 15, 200, 100, Box{0, 0, 200, 40}},
		{"bottom-right corner", Box{190, 95, 20, 10}, 15, 200, 100, Box{175, 80, 25, 20}},
		{"zero margin", Box{10, 10, 150, 20}, 0, 200, 100, Box{10, 10, 150, 20}},
		{"negative margin", Box{10, 10, 5, 5}, -4, 200, 100, Box{10, 10, 5, 5}},
		{"outside image", Box{300, 300, 10, 10}, 5, 200, 100, Box{200, 100, 0, 0}},
		{"larger than image", Box{0, 0, 500, 500}, 10, 200, 100, Box{0, 0, 200, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.box, tt.margin, tt.w, tt.h)
			if got != tt.want {
				t.Errorf("Expand(%v, %d) = %v, want %v", tt.box, tt.margin, got, tt.want)
			}
		})
	}
}

func TestExpandStaysInBounds(t *testing.T) {
	const w, h = 64, 48
	for x := -20; x < 80; x += 7 {
		for y := -20; y < 60; y += 5 {
			for _, margin := range []int{0, 1, 15, 100} {
				b := Expand(Box{x, y, 13, 9}, margin, w, h)
				if b.X < 0 || b.Y < 0 || b.W < 0 || b.H < 0 {
					t.Fatalf("negative box %v from (%d,%d) margin %d", b, x, y, margin)
				}
				if b.X+b.W > w || b.Y+b.H > h {
					t.Fatalf("box %v exceeds %dx%d", b, w, h)
				}
			}
		}
	}
}

func TestExpandAllDropsEmpty(t *testing.T) {
	regions := []Region{
		{Box: Box{10, 10, 5, 5}, Source: PatternMatch},
		{Box: Box{500, 500, 5, 5}, Source: PatternMatch},
	}
	boxes := ExpandAll(regions, 2, image.Rect(0, 0, 100, 100))
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d: %v", len(boxes), boxes)
	}
	if boxes[0] != (Box{8, 8, 9, 9}) {
		t.Errorf("unexpected box %v", boxes[0])
	}
}

func TestExpandInOffsetBounds(t *testing.T) {
	bounds := image.Rect(100, 50, 300, 150)
	tests := []struct {
		box  Box
		want Box
	}{
		{Box{110, 60, 50, 10}, Box{100, 50, 80, 40}},
		{Box{280, 140, 10, 5}, Box{265, 125, 35, 25}},
		{Box{10, 10, 20, 20}, Box{100, 50, 0, 0}},
		{Box{90, 40, 20, 20}, Box{100, 50, 50, 50}},
		{Box{400, 400, 5, 5}, Box{300, 150, 0, 0}},
	}
	for _, tt := range tests {
		if got := ExpandIn(tt.box, 15, bounds); got != tt.want {
			t.Errorf("ExpandIn(%v) = %v, want %v", tt.box, got, tt.want)
		}
	}
}

func TestUnique(t *testing.T) {
	in := []Box{{1, 1, 2, 2}, {5, 5, 1, 1}, {1, 1, 2, 2}, {0, 0, 3, 3}, {5, 5, 1, 1}}
	got := Unique(in)
	want := []Box{{1, 1, 2, 2}, {5, 5, 1, 1}, {0, 0, 3, 3}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOverlaps(t *testing.T) {
	a := Box{0, 0, 10, 10}
	if !a.Overlaps(Box{9, 9, 5, 5}) {
		t.Error("expected overlap at corner pixel")
	}
	if a.Overlaps(Box{10, 0, 5, 5}) {
		t.Error("adjacent boxes must not overlap")
	}
}
