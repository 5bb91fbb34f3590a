package state

import "github.com/talgya/delvemap/internal/delve"

// Patch types carry partial updates for the update actions. A nil field
// leaves the corresponding entity field untouched; a set field overwrites it
// (shallow merge; list fields are replaced wholesale, not element-merged).

// LandmarkPatch is a partial landmark update.
type LandmarkPatch struct {
	Name          *string
	Domains       *[]delve.Domain
	DefaultStress *delve.StressDie
	Haunts        *[]string
	Bonds         *[]string
}

func (p LandmarkPatch) apply(l delve.Landmark) delve.Landmark {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Domains != nil {
		l.Domains = *p.Domains
	}
	if p.DefaultStress != nil {
		l.DefaultStress = *p.DefaultStress
	}
	if p.Haunts != nil {
		l.Haunts = *p.Haunts
	}
	if p.Bonds != nil {
		l.Bonds = *p.Bonds
	}
	return l
}

// DelvePatch is a partial delve update. Monsters are managed through the
// monster sub-actions, not patched here.
type DelvePatch struct {
	Name       *string
	Resistance *int
	Domains    *[]delve.Domain
	Events     *[]string
	Resources  *[]string
}

func (p DelvePatch) apply(d delve.Delve) delve.Delve {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Resistance != nil {
		d.Resistance = *p.Resistance
	}
	if p.Domains != nil {
		d.Domains = *p.Domains
	}
	if p.Events != nil {
		d.Events = *p.Events
	}
	if p.Resources != nil {
		d.Resources = *p.Resources
	}
	return d
}

// MonsterPatch is a partial monster update.
type MonsterPatch struct {
	Name       *string
	Resistance *int
	Protection *int
	Attacks    *[]string
	Resources  *[]string
	Notes      *string
}

func (p MonsterPatch) apply(m delve.Monster) delve.Monster {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Resistance != nil {
		m.Resistance = *p.Resistance
	}
	if p.Protection != nil {
		m.Protection = *p.Protection
	}
	if p.Attacks != nil {
		m.Attacks = *p.Attacks
	}
	if p.Resources != nil {
		m.Resources = *p.Resources
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	return m
}
