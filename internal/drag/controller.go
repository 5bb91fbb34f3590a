// Package drag implements the card drag-and-drop gesture as an explicit
// state machine: Idle until a drag starts, Dragging while a card is in
// flight, back to Idle on drop or cancel. One controller serves the canvas;
// it owns at most one in-progress gesture at a time.
package drag

import (
	"math"

	"github.com/talgya/delvemap/internal/delve"
	"github.com/talgya/delvemap/internal/hexgrid"
	"github.com/talgya/delvemap/internal/state"
)

// Mode selects how drop targets are resolved.
type Mode int

const (
	// ModeHex snaps drops to hex cell centers.
	ModeHex Mode = iota
	// ModeFree places cards at raw pixel coordinates.
	ModeFree
)

// TouchThreshold is the movement in pixels that distinguishes a touch drag
// from a tap.
const TouchThreshold = 10.0

// Controller tracks one in-progress drag gesture and commits legal drops to
// the store. All methods are meant for the single UI event goroutine.
type Controller struct {
	store  *state.Store
	layout hexgrid.Layout
	mode   Mode

	// sess is non-nil exactly while in the Dragging state.
	sess *session

	// touch holds a touch-down that has not yet crossed the drag threshold.
	touch *touchCandidate
}

type session struct {
	cardID   string
	cardType delve.CardType
	// offset is the grab point relative to the card origin, subtracted from
	// the pointer so the card does not jump under the finger.
	offset  hexgrid.Pixel
	preview *delve.CardPosition
}

type touchCandidate struct {
	cardID   string
	cardType delve.CardType
	origin   hexgrid.Pixel
}

// NewController creates a drag controller for the given placement mode.
func NewController(st *state.Store, layout hexgrid.Layout, mode Mode) *Controller {
	return &Controller{store: st, layout: layout, mode: mode}
}

// Dragging returns the id of the card in flight, if any.
func (c *Controller) Dragging() (string, bool) {
	if c.sess == nil {
		return "", false
	}
	return c.sess.cardID, true
}

// Preview returns the live candidate drop position, when one has been
// computed since the drag started.
func (c *Controller) Preview() (delve.CardPosition, bool) {
	if c.sess == nil || c.sess.preview == nil {
		return delve.CardPosition{}, false
	}
	return *c.sess.preview, true
}

// Start begins a drag for the given card. Placement is untouched until the
// drop; the dragged-card cursor is set so the rest of the UI can react.
func (c *Controller) Start(cardID string, cardType delve.CardType, offset hexgrid.Pixel) {
	c.sess = &session{cardID: cardID, cardType: cardType, offset: offset}
	c.touch = nil
	c.store.Dispatch(state.SetDraggedCard{ID: cardID})
}

// Move updates the preview position from the current pointer. Events whose
// card id does not match the card in flight are ignored; duplicate or stale
// drag events must not steer the gesture.
func (c *Controller) Move(cardID string, pointer hexgrid.Pixel) {
	if c.sess == nil || c.sess.cardID != cardID {
		return
	}
	target := c.target(pointer)
	c.sess.preview = &target
}

// Drop ends the gesture. A drop on a cell occupied by a different card is
// abandoned silently: no action is emitted and the prior placement stands.
// Otherwise the controller emits MoveCard for an already-placed card or
// PlaceCard for a first placement. Reports whether a placement committed.
func (c *Controller) Drop(cardID string, pointer hexgrid.Pixel) bool {
	if c.sess == nil || c.sess.cardID != cardID {
		return false
	}
	sess := c.sess
	defer c.reset()

	target := c.target(pointer)
	s := c.store.State()
	// Occupancy excludes the dragged card's own current cell.
	if s.IsOccupied(target, sess.cardID) {
		return false
	}

	if _, placed := s.PlacedCardByID(sess.cardID); placed {
		c.store.Dispatch(state.MoveCard{ID: sess.cardID, Position: target})
	} else {
		c.store.Dispatch(state.PlaceCard{Card: delve.PlacedCard{
			ID:       sess.cardID,
			Type:     sess.cardType,
			Position: target,
		}})
	}
	return true
}

// Cancel abandons the gesture without emitting a placement action.
func (c *Controller) Cancel() {
	if c.sess == nil {
		c.touch = nil
		return
	}
	c.reset()
}

// TouchStart records a touch-down on a card. The gesture stays Idle until
// the finger moves past TouchThreshold, so taps still select.
func (c *Controller) TouchStart(cardID string, cardType delve.CardType, pointer hexgrid.Pixel) {
	if c.sess != nil {
		return
	}
	c.touch = &touchCandidate{cardID: cardID, cardType: cardType, origin: pointer}
}

// TouchMove promotes a pending touch to a drag once the threshold is
// crossed, then mirrors Move.
func (c *Controller) TouchMove(cardID string, pointer hexgrid.Pixel) {
	if c.sess != nil {
		c.Move(cardID, pointer)
		return
	}
	if c.touch == nil || c.touch.cardID != cardID {
		return
	}
	if math.Hypot(pointer.X-c.touch.origin.X, pointer.Y-c.touch.origin.Y) < TouchThreshold {
		return
	}
	c.Start(cardID, c.touch.cardType, hexgrid.Pixel{})
	c.Move(cardID, pointer)
}

// TouchEnd mirrors Drop when a drag is in flight; a touch that never crossed
// the threshold is a tap and is left to the selection handling.
func (c *Controller) TouchEnd(cardID string, pointer hexgrid.Pixel) bool {
	if c.sess != nil {
		return c.Drop(cardID, pointer)
	}
	c.touch = nil
	return false
}

// reset returns to Idle and clears the dragged-card cursor.
func (c *Controller) reset() {
	c.sess = nil
	c.touch = nil
	c.store.Dispatch(state.SetDraggedCard{ID: ""})
}

// target resolves the pointer to a drop position: the containing hex's exact
// center in hex mode, the raw adjusted pixel in free mode.
func (c *Controller) target(pointer hexgrid.Pixel) delve.CardPosition {
	adjusted := hexgrid.Pixel{X: pointer.X - c.sess.offset.X, Y: pointer.Y - c.sess.offset.Y}
	if c.mode == ModeFree {
		return delve.AtPixel(adjusted.X, adjusted.Y)
	}
	hex, _ := hexgrid.SnapToHex(adjusted, c.layout)
	return delve.AtHex(hex)
}
