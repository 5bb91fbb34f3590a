// Package connections manages the typed links between placed cards: creating
// them with a derived type, deduplicating by endpoint pair, and driving the
// two-click connection gesture.
package connections

import (
	"errors"
	"fmt"

	"github.com/talgya/delvemap/internal/delve"
	"github.com/talgya/delvemap/internal/state"
)

var (
	// ErrSelfConnection rejects a connection from a card to itself.
	ErrSelfConnection = errors.New("card cannot connect to itself")
	// ErrDuplicateConnection rejects a second connection between a pair of
	// cards already joined in either direction.
	ErrDuplicateConnection = errors.New("cards are already connected")
	// ErrUnknownEndpoint rejects an endpoint id that resolves to neither a
	// landmark nor a delve. Surfacing this beats silently defaulting the
	// connection type and mis-tagging the link.
	ErrUnknownEndpoint = errors.New("endpoint is not a known landmark or delve")
)

// DeriveType determines a connection's type purely from its endpoints'
// entity types: landmark+delve, delve+delve, or landmark+landmark.
func DeriveType(from, to delve.CardType) (delve.ConnectionType, error) {
	switch {
	case from == delve.CardLandmark && to == delve.CardDelve,
		from == delve.CardDelve && to == delve.CardLandmark:
		return delve.LandmarkToDelve, nil
	case from == delve.CardDelve && to == delve.CardDelve:
		return delve.DelveToDelve, nil
	case from == delve.CardLandmark && to == delve.CardLandmark:
		return delve.LandmarkToLandmark, nil
	}
	return "", fmt.Errorf("derive connection type %q/%q: %w", from, to, ErrUnknownEndpoint)
}

// Manager creates and deletes connections through the store.
type Manager struct {
	store *state.Store
	newID func() string

	// pending holds the armed source card of an in-progress two-click
	// gesture; "" when nothing is armed.
	pending string
}

// NewManager wires a manager to the store.
func NewManager(st *state.Store) *Manager {
	return &Manager{store: st, newID: delve.NewID}
}

// Create links fromID to toID with a type derived from the endpoints and
// appends the connection to the state. A pair already joined in either
// direction is rejected with ErrDuplicateConnection.
func (m *Manager) Create(fromID, toID string) (delve.Connection, error) {
	if fromID == toID {
		return delve.Connection{}, ErrSelfConnection
	}
	if existing, ok := m.FindBetween(fromID, toID); ok {
		return existing, ErrDuplicateConnection
	}
	s := m.store.State()
	fromType, ok := s.CardTypeOf(fromID)
	if !ok {
		return delve.Connection{}, fmt.Errorf("from %q: %w", fromID, ErrUnknownEndpoint)
	}
	toType, ok := s.CardTypeOf(toID)
	if !ok {
		return delve.Connection{}, fmt.Errorf("to %q: %w", toID, ErrUnknownEndpoint)
	}
	connType, err := DeriveType(fromType, toType)
	if err != nil {
		return delve.Connection{}, err
	}

	conn := delve.Connection{ID: m.newID(), FromID: fromID, ToID: toID, Type: connType}
	m.store.Dispatch(state.AddConnection{Connection: conn})
	return conn, nil
}

// FindBetween returns an existing connection joining the pair in either
// direction.
func (m *Manager) FindBetween(a, b string) (delve.Connection, bool) {
	for _, c := range m.store.State().Connections {
		if c.Matches(a, b) {
			return c, true
		}
	}
	return delve.Connection{}, false
}

// DeleteBetween removes every connection joining the pair in either order.
func (m *Manager) DeleteBetween(a, b string) {
	m.store.Dispatch(state.DeleteConnectionsBetween{A: a, B: b})
}

// Delete removes a single connection by id.
func (m *Manager) Delete(id string) {
	m.store.Dispatch(state.DeleteConnection{ID: id})
}
