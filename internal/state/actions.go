package state

import (
	"time"

	"github.com/talgya/delvemap/internal/delve"
)

// Action is the closed set of state transitions. The sealed marker method
// keeps the set closed to this package's declarations; Reduce matches on the
// concrete types and returns the input state unchanged for anything else.
type Action interface {
	isAction()
}

// ── entity CRUD ──────────────────────────────────────────────────────

// AddLandmark appends a landmark to the current map.
type AddLandmark struct{ Landmark delve.Landmark }

// UpdateLandmark shallow-merges the patch into the landmark with the given
// id. A no-op when the id does not resolve.
type UpdateLandmark struct {
	ID    string
	Patch LandmarkPatch
}

// DeleteLandmark removes the landmark and cascades into placed cards and
// connections referencing its id.
type DeleteLandmark struct{ ID string }

// AddDelve appends a delve to the current map.
type AddDelve struct{ Delve delve.Delve }

// UpdateDelve shallow-merges the patch into the delve with the given id.
type UpdateDelve struct {
	ID    string
	Patch DelvePatch
}

// DeleteDelve removes the delve and cascades like DeleteLandmark.
type DeleteDelve struct{ ID string }

// AddMonster appends a monster to the delve named by DelveID.
type AddMonster struct {
	DelveID string
	Monster delve.Monster
}

// UpdateMonster patches a monster inside a delve. Silently no-ops when
// either id fails to resolve.
type UpdateMonster struct {
	DelveID   string
	MonsterID string
	Patch     MonsterPatch
}

// DeleteMonster removes a monster from a delve.
type DeleteMonster struct {
	DelveID   string
	MonsterID string
}

// AddConnection appends a connection.
type AddConnection struct{ Connection delve.Connection }

// DeleteConnection removes a connection by id.
type DeleteConnection struct{ ID string }

// DeleteConnectionsBetween removes every connection joining the pair in
// either direction.
type DeleteConnectionsBetween struct{ A, B string }

// ── card placement ───────────────────────────────────────────────────

// PlaceCard places a card, replacing any existing placement with the same id
// (filter-then-append; never duplicates).
type PlaceCard struct{ Card delve.PlacedCard }

// MoveCard updates the position of an existing placement only; a no-op when
// the id is not placed.
type MoveCard struct {
	ID       string
	Position delve.CardPosition
}

// RemovePlacedCard deletes a placement by id.
type RemovePlacedCard struct{ ID string }

// ── library ──────────────────────────────────────────────────────────

// AddLibraryMonster copies a monster into the library.
type AddLibraryMonster struct{ Monster delve.Monster }

// UpdateLibraryMonster patches a library monster by id.
type UpdateLibraryMonster struct {
	ID    string
	Patch MonsterPatch
}

// DeleteLibraryMonster removes a library monster by id.
type DeleteLibraryMonster struct{ ID string }

// AddLibraryLandmark copies a landmark into the library.
type AddLibraryLandmark struct{ Landmark delve.Landmark }

// UpdateLibraryLandmark patches a library landmark by id.
type UpdateLibraryLandmark struct {
	ID    string
	Patch LandmarkPatch
}

// DeleteLibraryLandmark removes a library landmark by id.
type DeleteLibraryLandmark struct{ ID string }

// AddLibraryDelve copies a delve into the library.
type AddLibraryDelve struct{ Delve delve.Delve }

// UpdateLibraryDelve patches a library delve by id.
type UpdateLibraryDelve struct {
	ID    string
	Patch DelvePatch
}

// DeleteLibraryDelve removes a library delve by id.
type DeleteLibraryDelve struct{ ID string }

// SetLibrary replaces the whole library (persistence restore).
type SetLibrary struct{ Library delve.Library }

// ── map lifecycle ────────────────────────────────────────────────────

// CreateMap opens a fresh empty map, replacing the current one. Use
// NewCreateMap outside tests so the id and timestamp are generated.
type CreateMap struct {
	ID   string
	Name string
	At   time.Time
}

// NewCreateMap builds a CreateMap with a generated composite id. A nil now
// defaults to time.Now.
func NewCreateMap(name string, now func() time.Time) CreateMap {
	if now == nil {
		now = time.Now
	}
	return CreateMap{ID: delve.NewMapID(now), Name: name, At: now()}
}

// LoadMap replaces the current map and all four collections wholesale.
type LoadMap struct{ Map delve.DelveMap }

// ClearMap closes the current map, emptying every collection and UI cursor.
// Persistence observers clear the current-map storage when they see the
// transition.
type ClearMap struct{}

// SaveMap stamps UpdatedAt; a no-op when no map is open. Persistence
// observers perform the actual write.
type SaveMap struct{ At time.Time }

// ── import ───────────────────────────────────────────────────────────

// ImportMap replaces the current map with an imported one.
type ImportMap struct{ Map delve.DelveMap }

// ImportLibrary replaces the library, or concatenates each collection when
// Merge is set. Merge performs no id-deduplication.
type ImportLibrary struct {
	Library delve.Library
	Merge   bool
}

// ── UI cursors and flags ─────────────────────────────────────────────

// SetSelectedCard updates the selected-card cursor ("" clears).
type SetSelectedCard struct{ ID string }

// SetEditingCard updates the editing-card cursor ("" clears).
type SetEditingCard struct{ ID string }

// SetDraggedCard updates the dragged-card cursor ("" clears).
type SetDraggedCard struct{ ID string }

// ToggleConnections flips connection-line visibility.
type ToggleConnections struct{}

// ToggleGrid flips hex-grid visibility.
type ToggleGrid struct{}

// SetLoading sets the loading flag; entering loading clears any error.
type SetLoading struct{ Loading bool }

// SetError records a user-displayable error ("" clears) and clears loading.
type SetError struct{ Message string }

func (AddLandmark) isAction() {}
func (UpdateLandmark) isAction() {}
func (DeleteLandmark) isAction() {}
func (AddDelve) isAction() {}
func (UpdateDelve) isAction() {}
func (DeleteDelve) isAction() {}
func (AddMonster) isAction() {}
func (UpdateMonster) isAction() {}
func (DeleteMonster) isAction() {}
func (AddConnection) isAction() {}
func (DeleteConnection) isAction() {}
func (DeleteConnectionsBetween) isAction() {}
func (PlaceCard) isAction() {}
func (MoveCard) isAction() {}
func (RemovePlacedCard) isAction() {}
func (AddLibraryMonster) isAction() {}
func (UpdateLibraryMonster) isAction() {}
func (DeleteLibraryMonster) isAction() {}
func (AddLibraryLandmark) isAction() {}
func (UpdateLibraryLandmark) isAction() {}
func (DeleteLibraryLandmark) isAction() {}
func (AddLibraryDelve) isAction() {}
func (UpdateLibraryDelve) isAction() {}
func (DeleteLibraryDelve) isAction() {}
func (SetLibrary) isAction() {}
func (CreateMap) isAction() {}
func (LoadMap) isAction() {}
func (ClearMap) isAction() {}
func (SaveMap) isAction() {}
func (ImportMap) isAction() {}
func (ImportLibrary) isAction() {}
func (SetSelectedCard) isAction() {}
func (SetEditingCard) isAction() {}
func (SetDraggedCard) isAction() {}
func (ToggleConnections) isAction() {}
func (ToggleGrid) isAction() {}
func (SetLoading) isAction() {}
func (SetError) isAction() {}
