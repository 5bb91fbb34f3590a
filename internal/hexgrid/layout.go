// Pixel layout for a flat-top hex grid: the linear transform between axial
// coordinates and canvas pixels, cube rounding, corner geometry, and hit
// testing.
package hexgrid

import "math"

// Pixel is a point in canvas space.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout holds the grid rendering parameters. HexSize is the distance from a
// hex center to any of its corners.
type Layout struct {
	HexSize float64
}

// DefaultLayout returns the canvas layout used by the editor.
func DefaultLayout() Layout {
	return Layout{HexSize: 60}
}

var sqrt3 = math.Sqrt(3)

// HexToPixel converts an axial coordinate to the pixel center of its hex.
// The transform is exactly invertible for integer inputs via PixelToHex.
func HexToPixel(h HexCoord, l Layout) Pixel {
	return Pixel{
		X: l.HexSize * 1.5 * float64(h.Q),
		Y: l.HexSize * (sqrt3/2*float64(h.Q) + sqrt3*float64(h.R)),
	}
}

// PixelToHex converts a pixel to the axial coordinate of the hex containing
// it, applying the inverse transform followed by cube rounding.
func PixelToHex(p Pixel, l Layout) HexCoord {
	q := (2.0 / 3.0) * p.X / l.HexSize
	r := (-1.0/3.0*p.X + sqrt3/3.0*p.Y) / l.HexSize
	return Round(q, r)
}

// Round converts a fractional axial coordinate to the nearest integer hex.
// Each of the three cube coordinates is rounded independently, then the axis
// with the largest rounding error is recomputed from the other two so that
// q + r + s = 0 holds exactly.
func Round(q, r float64) HexCoord {
	s := -q - r

	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)

	dq := math.Abs(rq - q)
	dr := math.Abs(rr - r)
	ds := math.Abs(rs - s)

	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}

	return HexCoord{Q: int(rq), R: int(rr)}
}

// Corners returns the six corner points of the hex centered at center,
// ordered counterclockwise starting at angle 0.
func Corners(center Pixel, l Layout) [6]Pixel {
	var corners [6]Pixel
	for i := 0; i < 6; i++ {
		angle := math.Pi / 180 * float64(60*i)
		corners[i] = Pixel{
			X: center.X + l.HexSize*math.Cos(angle),
			Y: center.Y + l.HexSize*math.Sin(angle),
		}
	}
	return corners
}

// PointInHex reports whether p lies inside the hex centered at center,
// using an even-odd crossing test against the hex polygon.
func PointInHex(p, center Pixel, l Layout) bool {
	corners := Corners(center, l)
	inside := false
	j := 5
	for i := 0; i < 6; i++ {
		ci, cj := corners[i], corners[j]
		if (ci.Y > p.Y) != (cj.Y > p.Y) &&
			p.X < (cj.X-ci.X)*(p.Y-ci.Y)/(cj.Y-ci.Y)+ci.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// SnapToHex resolves a pixel to its containing hex and returns both the hex
// and the recomputed exact pixel center of that hex, not the raw input.
func SnapToHex(p Pixel, l Layout) (HexCoord, Pixel) {
	hex := PixelToHex(p, l)
	return hex, HexToPixel(hex, l)
}
