package hexgrid

import (
	"math"
	"testing"
)

func TestHexPixelRoundTrip(t *testing.T) {
	layout := DefaultLayout()
	for q := -10; q <= 10; q++ {
		for r := -10; r <= 10; r++ {
			h := HexCoord{Q: q, R: r}
			p := HexToPixel(h, layout)
			if got := PixelToHex(p, layout); got != h {
				t.Fatalf("round trip failed for %v: got %v (pixel %v)", h, got, p)
			}
		}
	}
}

func TestRoundPreservesCubeInvariant(t *testing.T) {
	fractions := []struct{ q, r float64 }{
		{0.4, 0.4},
		{1.7, -0.3},
		{-2.5, 1.2},
		{0.49, 0.49},
		{3.1, -1.6},
	}
	for _, f := range fractions {
		h := Round(f.q, f.r)
		if h.Q+h.R+h.S() != 0 {
			t.Errorf("Round(%v, %v) = %v violates q+r+s=0", f.q, f.r, h)
		}
	}
}

func TestRoundExactIntegers(t *testing.T) {
	for q := -4; q <= 4; q++ {
		for r := -4; r <= 4; r++ {
			if got := Round(float64(q), float64(r)); got != (HexCoord{Q: q, R: r}) {
				t.Errorf("Round(%d, %d) = %v", q, r, got)
			}
		}
	}
}

func TestCornersAtHexSizeDistance(t *testing.T) {
	layout := Layout{HexSize: 40}
	center := Pixel{X: 120, Y: -80}
	corners := Corners(center, layout)
	for i, c := range corners {
		d := math.Hypot(c.X-center.X, c.Y-center.Y)
		if math.Abs(d-layout.HexSize) > 1e-9 {
			t.Errorf("corner %d at distance %f, want %f", i, d, layout.HexSize)
		}
	}
}

func TestPointInHex(t *testing.T) {
	layout := DefaultLayout()
	center := HexToPixel(HexCoord{Q: 1, R: 1}, layout)

	if !PointInHex(center, center, layout) {
		t.Error("center not inside its own hex")
	}
	near := Pixel{X: center.X + layout.HexSize*0.3, Y: center.Y}
	if !PointInHex(near, center, layout) {
		t.Error("point near center not inside hex")
	}
	far := Pixel{X: center.X + layout.HexSize*3, Y: center.Y}
	if PointInHex(far, center, layout) {
		t.Error("distant point reported inside hex")
	}
}

func TestSnapToHexReturnsExactCenter(t *testing.T) {
	layout := DefaultLayout()
	want := HexCoord{Q: 2, R: -1}
	exact := HexToPixel(want, layout)

	// Nudge off-center; the snap must return the recomputed center, not the
	// nudged input.
	input := Pixel{X: exact.X + 7, Y: exact.Y - 5}
	hex, pixel := SnapToHex(input, layout)
	if hex != want {
		t.Fatalf("snapped to %v, want %v", hex, want)
	}
	if pixel != exact {
		t.Errorf("snapped pixel %v, want exact center %v", pixel, exact)
	}
}
