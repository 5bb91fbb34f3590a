package delve

import "github.com/talgya/delvemap/internal/hexgrid"

// CardPosition locates a placed card either on the hex grid or on the
// free-form canvas. Exactly one of Hex or Free is set.
type CardPosition struct {
	Hex  *hexgrid.HexCoord `json:"hex,omitempty"`
	Free *hexgrid.Pixel    `json:"free,omitempty"`
}

// AtHex returns a hex-grid position.
func AtHex(h hexgrid.HexCoord) CardPosition {
	return CardPosition{Hex: &h}
}

// AtPixel returns a free-form canvas position.
func AtPixel(x, y float64) CardPosition {
	return CardPosition{Free: &hexgrid.Pixel{X: x, Y: y}}
}

// HexAt returns the hex coordinate and true when the position is hex-based.
func (p CardPosition) HexAt() (hexgrid.HexCoord, bool) {
	if p.Hex == nil {
		return hexgrid.HexCoord{}, false
	}
	return *p.Hex, true
}

// Equal reports whether two positions address the same cell or point. Hex
// positions compare by exact integer coordinates; free positions by exact
// pixel values. A hex position never equals a free one.
func (p CardPosition) Equal(o CardPosition) bool {
	switch {
	case p.Hex != nil && o.Hex != nil:
		return *p.Hex == *o.Hex
	case p.Free != nil && o.Free != nil:
		return *p.Free == *o.Free
	}
	return false
}
