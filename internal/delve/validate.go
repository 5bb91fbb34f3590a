package delve

import (
	"errors"
	"fmt"
)

// Validation errors reported at the edges, before any state mutation. The
// reducer itself trusts its inputs.
var (
	ErrEmptyName       = errors.New("name is required")
	ErrNoDomains       = errors.New("at least one domain is required")
	ErrInvalidDomain   = errors.New("unrecognised domain")
	ErrInvalidStress   = errors.New("unrecognised stress die")
	ErrResistanceRange = errors.New("resistance out of range")
	ErrProtectionRange = errors.New("protection out of range")
)

// ValidateLandmark checks a landmark's shape before it enters the state.
func ValidateLandmark(l Landmark) error {
	if l.Name == "" {
		return fmt.Errorf("landmark: %w", ErrEmptyName)
	}
	if len(l.Domains) == 0 {
		return fmt.Errorf("landmark %q: %w", l.Name, ErrNoDomains)
	}
	for _, d := range l.Domains {
		if !d.IsValid() {
			return fmt.Errorf("landmark %q: %w: %q", l.Name, ErrInvalidDomain, d)
		}
	}
	if !l.DefaultStress.IsValid() {
		return fmt.Errorf("landmark %q: %w: %q", l.Name, ErrInvalidStress, l.DefaultStress)
	}
	return nil
}

// ValidateDelve checks a delve and its embedded monsters.
func ValidateDelve(d Delve) error {
	if d.Name == "" {
		return fmt.Errorf("delve: %w", ErrEmptyName)
	}
	if d.Resistance < 1 || d.Resistance > 50 {
		return fmt.Errorf("delve %q: %w: %d not in [1,50]", d.Name, ErrResistanceRange, d.Resistance)
	}
	if len(d.Domains) == 0 {
		return fmt.Errorf("delve %q: %w", d.Name, ErrNoDomains)
	}
	for _, dom := range d.Domains {
		if !dom.IsValid() {
			return fmt.Errorf("delve %q: %w: %q", d.Name, ErrInvalidDomain, dom)
		}
	}
	for _, m := range d.Monsters {
		if err := ValidateMonster(m); err != nil {
			return fmt.Errorf("delve %q: %w", d.Name, err)
		}
	}
	return nil
}

// ValidateMonster checks a monster's stat ranges.
func ValidateMonster(m Monster) error {
	if m.Name == "" {
		return fmt.Errorf("monster: %w", ErrEmptyName)
	}
	if m.Resistance < 1 || m.Resistance > 20 {
		return fmt.Errorf("monster %q: %w: %d not in [1,20]", m.Name, ErrResistanceRange, m.Resistance)
	}
	if m.Protection < 1 || m.Protection > 12 {
		return fmt.Errorf("monster %q: %w: %d not in [1,12]", m.Name, ErrProtectionRange, m.Protection)
	}
	return nil
}
