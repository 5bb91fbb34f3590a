package delve

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/talgya/delvemap/internal/hexgrid"
)

func validLandmark() Landmark {
	return Landmark{
		ID:            "lm-1",
		Name:          "The Crimson Market",
		Domains:       []Domain{DomainCursed, DomainWarren},
		DefaultStress: StressD6,
	}
}

func TestValidateLandmark(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Landmark)
		err    error
	}{
		{"valid", func(*Landmark) {}, nil},
		{"empty name", func(l *Landmark) { l.Name = "" }, ErrEmptyName},
		{"no domains", func(l *Landmark) { l.Domains = nil }, ErrNoDomains},
		{"bad domain", func(l *Landmark) { l.Domains = []Domain{"Sunny"} }, ErrInvalidDomain},
		{"bad stress", func(l *Landmark) { l.DefaultStress = "d20" }, ErrInvalidStress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLandmark()
			tt.mutate(&l)
			err := ValidateLandmark(l)
			if tt.err == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v, want %v", err, tt.err)
			}
		})
	}
}

func TestValidateDelve(t *testing.T) {
	d := Delve{
		ID:         "dv-1",
		Name:       "The Sunken Stacks",
		Resistance: 12,
		Domains:    []Domain{DomainOccult},
		Monsters: []Monster{{
			ID: "mon-1", Name: "Shelf Haunt", Resistance: 5, Protection: 3,
		}},
	}
	if err := ValidateDelve(d); err != nil {
		t.Fatalf("valid delve rejected: %v", err)
	}

	d.Resistance = 51
	if err := ValidateDelve(d); !errors.Is(err, ErrResistanceRange) {
		t.Errorf("got %v, want ErrResistanceRange", err)
	}
	d.Resistance = 12

	d.Monsters[0].Protection = 13
	if err := ValidateDelve(d); !errors.Is(err, ErrProtectionRange) {
		t.Errorf("got %v, want ErrProtectionRange", err)
	}
}

func TestCardPositionEqual(t *testing.T) {
	hexA := AtHex(hexgrid.HexCoord{Q: 1, R: 2})
	hexB := AtHex(hexgrid.HexCoord{Q: 1, R: 2})
	hexC := AtHex(hexgrid.HexCoord{Q: 0, R: 2})
	freeA := AtPixel(10.5, 20)
	freeB := AtPixel(10.5, 20)

	if !hexA.Equal(hexB) {
		t.Error("equal hex positions not equal")
	}
	if hexA.Equal(hexC) {
		t.Error("distinct hex positions reported equal")
	}
	if !freeA.Equal(freeB) {
		t.Error("equal free positions not equal")
	}
	if hexA.Equal(freeA) {
		t.Error("hex position equals free position")
	}
}

func TestConnectionMatchesEitherOrder(t *testing.T) {
	c := Connection{ID: "cn-1", FromID: "a", ToID: "b", Type: LandmarkToDelve}
	if !c.Matches("a", "b") || !c.Matches("b", "a") {
		t.Error("Matches must be order-insensitive")
	}
	if c.Matches("a", "c") {
		t.Error("Matches hit on unrelated pair")
	}
}

func TestNewMapIDComposite(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	id := NewMapID(func() time.Time { return fixed })
	parts := strings.SplitN(id, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		t.Fatalf("malformed map id %q", id)
	}
	if id == NewMapID(func() time.Time { return fixed }) {
		t.Error("two ids from the same instant collided")
	}
}
