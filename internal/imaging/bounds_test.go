package imaging

import "testing"

const (
	testMin = 512
	testMax = 4096
)

func TestScaleToBounds(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"in bounds", 1000, 800, 1000, 800},
		{"exact bounds", 512, 4096, 512, 4096},
		{"small portrait", 200, 300, 512, 768},
		{"small square", 300, 300, 512, 512},
		{"large landscape", 5000, 3000, 4096, 2457},
		{"thin and tall", 100, 5000, 512, 4096},
		{"wide strip", 8192, 100, 4096, 512},
		{"just over max", 4097, 4097, 4096, 4096},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := ScaleToBounds(tc.w, tc.h, testMin, testMax)
			if w != tc.wantW || h != tc.wantH {
				t.Errorf("ScaleToBounds(%d, %d) = %dx%d, want %dx%d", tc.w, tc.h, w, h, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestScaleToBounds_ScalesUpKeepingAspect(t *testing.T) {
	for _, s := range [][2]int{{200, 300}, {300, 200}, {256, 384}, {100, 150}, {400, 500}} {
		w, h := ScaleToBounds(s[0], s[1], testMin, testMax)
		if min(w, h) != testMin {
			t.Errorf("%v: shorter side = %d, want %d", s, min(w, h), testMin)
		}
		// cross products differ by less than one pixel of the longer side
		diff := w*s[1] - h*s[0]
		if diff < 0 {
			diff = -diff
		}
		if diff >= max(s[0], s[1]) {
			t.Errorf("%v -> %dx%d: aspect ratio drifted (diff %d)", s, w, h, diff)
		}
	}
}

func TestScaleToBounds_ScalesDownToMax(t *testing.T) {
	for _, s := range [][2]int{{5000, 3000}, {8000, 6000}, {4097, 4097}, {10000, 2000}, {3000, 9000}} {
		w, h := ScaleToBounds(s[0], s[1], testMin, testMax)
		if max(w, h) != testMax {
			t.Errorf("%v: longer side = %d, want %d", s, max(w, h), testMax)
		}
	}
}

func TestScaleToBounds_Idempotent(t *testing.T) {
	sides := []int{1, 50, 200, 511, 512, 513, 1024, 4095, 4096, 4097, 9000}
	for _, w := range sides {
		for _, h := range sides {
			w1, h1 := ScaleToBounds(w, h, testMin, testMax)
			if !InBounds(w1, h1, testMin, testMax) {
				t.Fatalf("%dx%d -> %dx%d is not within bounds", w, h, w1, h1)
			}
			w2, h2 := ScaleToBounds(w1, h1, testMin, testMax)
			if w2 != w1 || h2 != h1 {
				t.Errorf("%dx%d: second pass changed %dx%d to %dx%d", w, h, w1, h1, w2, h2)
			}
		}
	}
}

func TestScaleToBounds_InvalidSize(t *testing.T) {
	if w, h := ScaleToBounds(0, 300, testMin, testMax); w != 0 || h != 300 {
		t.Errorf("got %dx%d, want 0x300 unchanged", w, h)
	}
}
