package connections

import "github.com/talgya/delvemap/internal/delve"

// ClickOutcome describes what a connection-mode click did.
type ClickOutcome int

const (
	// Armed records the clicked card as the pending source.
	Armed ClickOutcome = iota
	// Disarmed cleared the pending source (same card clicked twice).
	Disarmed
	// AlreadyConnected found an existing connection between the pair and
	// created nothing; the UI shows an "already connected" notice.
	AlreadyConnected
	// Connected created a new connection.
	Connected
)

// ClickResult carries the outcome of a connection-mode click and, for
// AlreadyConnected and Connected, the connection involved.
type ClickResult struct {
	Outcome    ClickOutcome
	Connection delve.Connection
}

// Click advances the two-click connection gesture. The first click arms the
// card as the pending source; clicking the same card again disarms it; a
// second click on a different card either reports the existing connection
// between the pair or creates a new one.
func (m *Manager) Click(id string) (ClickResult, error) {
	if m.pending == "" {
		m.pending = id
		return ClickResult{Outcome: Armed}, nil
	}
	if m.pending == id {
		m.pending = ""
		return ClickResult{Outcome: Disarmed}, nil
	}

	source := m.pending
	m.pending = ""

	if existing, ok := m.FindBetween(source, id); ok {
		return ClickResult{Outcome: AlreadyConnected, Connection: existing}, nil
	}
	conn, err := m.Create(source, id)
	if err != nil {
		return ClickResult{}, err
	}
	return ClickResult{Outcome: Connected, Connection: conn}, nil
}

// Pending returns the armed source card id, or "" when no gesture is in
// progress.
func (m *Manager) Pending() string {
	return m.pending
}

// Reset abandons any in-progress gesture.
func (m *Manager) Reset() {
	m.pending = ""
}
