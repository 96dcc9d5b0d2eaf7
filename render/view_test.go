package render

import (
	"reflect"
	"testing"

	"github.com/milk9111/puff/common"
)

func TestViewFlipsY(t *testing.T) {
	v := View{CenterX: 100, CenterY: 50, Width: 200, Height: 100}
	cases := []struct {
		x, y   float64
		sx, sy float64
	}{
		{100, 50, 100, 50},
		{0, 0, 0, 100},
		{200, 100, 200, 0},
		{150, 75, 150, 25},
	}
	for _, c := range cases {
		sx, sy := v.ToScreen(c.x, c.y)
		if sx != c.sx || sy != c.sy {
			t.Fatalf("ToScreen(%v, %v) = (%v, %v), want (%v, %v)", c.x, c.y, sx, sy, c.sx, c.sy)
		}
	}

	x, y := v.RectToScreen(common.Rect{X: 100, Y: 50, W: 20, H: 10})
	if x != 90 || y != 45 {
		t.Fatalf("RectToScreen = (%v, %v), want (90, 45)", x, y)
	}
}

func TestViewVisible(t *testing.T) {
	v := View{Width: 200, Height: 100}
	cases := []struct {
		r    common.Rect
		want bool
	}{
		{common.Rect{X: 0, Y: 0, W: 10, H: 10}, true},
		{common.Rect{X: 104, Y: 0, W: 10, H: 10}, true},
		{common.Rect{X: 120, Y: 0, W: 10, H: 10}, false},
		{common.Rect{X: 0, Y: -70, W: 10, H: 10}, false},
	}
	for _, c := range cases {
		if got := v.Visible(c.r); got != c.want {
			t.Fatalf("Visible(%+v) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestSliceWidths(t *testing.T) {
	cols, rows := sliceWidths(64, 64)
	if cols != [3]int{18, 31, 15} || rows != [3]int{38, 15, 11} {
		t.Fatalf("sliceWidths(64, 64) = %v %v", cols, rows)
	}
	cols, rows = sliceWidths(20, 64)
	if cols != [3]int{0, 20, 0} || rows != [3]int{0, 64, 0} {
		t.Fatalf("small tile = %v %v, want all centre", cols, rows)
	}
}

func TestSpans(t *testing.T) {
	cases := []struct {
		name  string
		parts [3]int
		size  int
		want  []span
	}{
		{
			name:  "middle repeats and the last copy is cut",
			parts: [3]int{18, 31, 15},
			size:  100,
			want:  []span{{0, 0, 18}, {18, 18, 31}, {18, 49, 31}, {18, 80, 5}, {49, 85, 15}},
		},
		{
			name:  "exact fit",
			parts: [3]int{18, 31, 15},
			size:  64,
			want:  []span{{0, 0, 18}, {18, 18, 31}, {49, 49, 15}},
		},
		{
			name:  "borders share a short side",
			parts: [3]int{18, 31, 15},
			size:  20,
			want:  []span{{0, 0, 10}, {54, 10, 10}},
		},
		{
			name:  "borderless image tiles whole",
			parts: [3]int{0, 20, 0},
			size:  50,
			want:  []span{{0, 0, 20}, {0, 20, 20}, {0, 40, 10}},
		},
		{
			name:  "empty area",
			parts: [3]int{0, 20, 0},
			size:  0,
			want:  nil,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := spans(c.parts, c.size)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("spans(%v, %d) = %v, want %v", c.parts, c.size, got, c.want)
			}
			covered := 0
			for _, s := range got {
				covered += s.n
			}
			if covered != c.size {
				t.Fatalf("covered %d of %d pixels", covered, c.size)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	got := wrap("jump twice and do not tell anyone", 10)
	want := []string{"jump twice", "and do not", "tell", "anyone"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrap = %q, want %q", got, want)
	}
	if got := wrap("   ", 10); len(got) != 0 {
		t.Fatalf("wrap of blanks = %q", got)
	}
}
