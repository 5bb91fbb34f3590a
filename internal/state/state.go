// Package state holds the editor's application state, the closed action set,
// and the pure reducer that is the only way state changes. Every transition
// produces a new snapshot; state values are never mutated in place.
package state

import (
	"time"

	"github.com/talgya/delvemap/internal/delve"
	"github.com/talgya/delvemap/internal/hexgrid"
)

// MapMeta identifies the currently open map. The entity collections live
// top-level on State so the reducer can update them without deep copies.
type MapMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// State is the full editor state. SelectedCard, EditingCard, and DraggedCard
// are weak id references ("" means none); the entity they name may have been
// deleted elsewhere, which readers treat as a valid cleared state.
type State struct {
	CurrentMap  *MapMeta
	Landmarks   []delve.Landmark
	Delves      []delve.Delve
	PlacedCards []delve.PlacedCard
	Connections []delve.Connection

	Library delve.Library

	SelectedCard    string
	EditingCard     string
	DraggedCard     string
	ShowConnections bool
	GridVisible     bool

	Err     string
	Loading bool
}

// NewState returns the initial empty state with default UI flags.
func NewState() State {
	return State{
		ShowConnections: true,
		GridVisible:     true,
	}
}

// FromMap builds a state holding the given map plus the supplied library.
func FromMap(m delve.DelveMap, lib delve.Library) State {
	s := NewState()
	s.Library = lib
	return s.withMap(m)
}

func (s State) withMap(m delve.DelveMap) State {
	s.CurrentMap = &MapMeta{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	s.Landmarks = m.Landmarks
	s.Delves = m.Delves
	s.PlacedCards = m.PlacedCards
	s.Connections = m.Connections
	return s
}

// ToMap snapshots the current map as an aggregate, or reports false when no
// map is open.
func (s State) ToMap() (delve.DelveMap, bool) {
	if s.CurrentMap == nil {
		return delve.DelveMap{}, false
	}
	return delve.DelveMap{
		ID:          s.CurrentMap.ID,
		Name:        s.CurrentMap.Name,
		Landmarks:   s.Landmarks,
		Delves:      s.Delves,
		PlacedCards: s.PlacedCards,
		Connections: s.Connections,
		CreatedAt:   s.CurrentMap.CreatedAt,
		UpdatedAt:   s.CurrentMap.UpdatedAt,
	}, true
}

// LandmarkByID resolves a landmark id against the current collections.
func (s State) LandmarkByID(id string) (delve.Landmark, bool) {
	for _, l := range s.Landmarks {
		if l.ID == id {
			return l, true
		}
	}
	return delve.Landmark{}, false
}

// DelveByID resolves a delve id against the current collections.
func (s State) DelveByID(id string) (delve.Delve, bool) {
	for _, d := range s.Delves {
		if d.ID == id {
			return d, true
		}
	}
	return delve.Delve{}, false
}

// CardTypeOf reports whether id names a landmark or a delve.
func (s State) CardTypeOf(id string) (delve.CardType, bool) {
	if _, ok := s.LandmarkByID(id); ok {
		return delve.CardLandmark, true
	}
	if _, ok := s.DelveByID(id); ok {
		return delve.CardDelve, true
	}
	return "", false
}

// PlacedCardByID returns the placement for a card id, if any.
func (s State) PlacedCardByID(id string) (delve.PlacedCard, bool) {
	for _, pc := range s.PlacedCards {
		if pc.ID == id {
			return pc, true
		}
	}
	return delve.PlacedCard{}, false
}

// PlacedLandmark pairs a landmark with its canvas position.
type PlacedLandmark struct {
	Landmark delve.Landmark
	Position delve.CardPosition
}

// PlacedDelve pairs a delve with its canvas position.
type PlacedDelve struct {
	Delve    delve.Delve
	Position delve.CardPosition
}

// PlacedLandmarks returns every placed card that resolves to a landmark.
// Dangling placements (entity deleted elsewhere) are skipped.
func (s State) PlacedLandmarks() []PlacedLandmark {
	var out []PlacedLandmark
	for _, pc := range s.PlacedCards {
		if pc.Type != delve.CardLandmark {
			continue
		}
		if l, ok := s.LandmarkByID(pc.ID); ok {
			out = append(out, PlacedLandmark{Landmark: l, Position: pc.Position})
		}
	}
	return out
}

// PlacedDelves returns every placed card that resolves to a delve.
func (s State) PlacedDelves() []PlacedDelve {
	var out []PlacedDelve
	for _, pc := range s.PlacedCards {
		if pc.Type != delve.CardDelve {
			continue
		}
		if d, ok := s.DelveByID(pc.ID); ok {
			out = append(out, PlacedDelve{Delve: d, Position: pc.Position})
		}
	}
	return out
}

// ConnectionsForCard returns every connection touching the given card id.
func (s State) ConnectionsForCard(id string) []delve.Connection {
	var out []delve.Connection
	for _, c := range s.Connections {
		if c.FromID == id || c.ToID == id {
			out = append(out, c)
		}
	}
	return out
}

// IsOccupied reports whether a different card (id != excludeID) is placed at
// exactly this position. Hex positions compare by exact integer coordinates,
// never by proximity.
func (s State) IsOccupied(pos delve.CardPosition, excludeID string) bool {
	for _, pc := range s.PlacedCards {
		if pc.ID != excludeID && pc.Position.Equal(pos) {
			return true
		}
	}
	return false
}

// OccupiedHexes returns the set of hex cells holding a placed card, minus the
// card named by excludeID. Free-form placements are ignored.
func (s State) OccupiedHexes(excludeID string) map[hexgrid.HexCoord]bool {
	occupied := make(map[hexgrid.HexCoord]bool)
	for _, pc := range s.PlacedCards {
		if pc.ID == excludeID {
			continue
		}
		if h, ok := pc.Position.HexAt(); ok {
			occupied[h] = true
		}
	}
	return occupied
}
