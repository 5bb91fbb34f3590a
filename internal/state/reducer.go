package state

import (
	"slices"

	"github.com/talgya/delvemap/internal/delve"
)

// Reduce maps (state, action) to the next state. It is pure and total over
// the action space: it never mutates its input, never returns an error, and
// no-ops on unresolved ids. An action type outside the known set returns the
// input state unchanged, sharing every slice with it, so observers can
// compare backing arrays to skip redundant work.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddLandmark:
		s.Landmarks = append(slices.Clone(s.Landmarks), a.Landmark)
		return s

	case UpdateLandmark:
		s.Landmarks = patchByID(s.Landmarks, a.ID, landmarkID, a.Patch.apply)
		return s

	case DeleteLandmark:
		s.Landmarks = removeByID(s.Landmarks, a.ID, landmarkID)
		return cascadeDelete(s, a.ID)

	case AddDelve:
		s.Delves = append(slices.Clone(s.Delves), a.Delve)
		return s

	case UpdateDelve:
		s.Delves = patchByID(s.Delves, a.ID, delveID, a.Patch.apply)
		return s

	case DeleteDelve:
		s.Delves = removeByID(s.Delves, a.ID, delveID)
		return cascadeDelete(s, a.ID)

	case AddMonster:
		s.Delves = patchByID(s.Delves, a.DelveID, delveID, func(d delve.Delve) delve.Delve {
			d.Monsters = append(slices.Clone(d.Monsters), a.Monster)
			return d
		})
		return s

	case UpdateMonster:
		s.Delves = patchByID(s.Delves, a.DelveID, delveID, func(d delve.Delve) delve.Delve {
			d.Monsters = patchByID(d.Monsters, a.MonsterID, monsterID, a.Patch.apply)
			return d
		})
		return s

	case DeleteMonster:
		s.Delves = patchByID(s.Delves, a.DelveID, delveID, func(d delve.Delve) delve.Delve {
			d.Monsters = removeByID(d.Monsters, a.MonsterID, monsterID)
			return d
		})
		return s

	case AddConnection:
		s.Connections = append(slices.Clone(s.Connections), a.Connection)
		return s

	case DeleteConnection:
		s.Connections = removeByID(s.Connections, a.ID, connectionID)
		return s

	case DeleteConnectionsBetween:
		s.Connections = filter(s.Connections, func(c delve.Connection) bool {
			return !c.Matches(a.A, a.B)
		})
		return s

	case PlaceCard:
		// Filter-then-append: re-placing an id replaces, never duplicates.
		kept := filter(s.PlacedCards, func(pc delve.PlacedCard) bool {
			return pc.ID != a.Card.ID
		})
		s.PlacedCards = append(kept, a.Card)
		return s

	case MoveCard:
		s.PlacedCards = patchByID(s.PlacedCards, a.ID, placedCardID, func(pc delve.PlacedCard) delve.PlacedCard {
			pc.Position = a.Position
			return pc
		})
		return s

	case RemovePlacedCard:
		s.PlacedCards = removeByID(s.PlacedCards, a.ID, placedCardID)
		return s

	case AddLibraryMonster:
		s.Library.Monsters = append(slices.Clone(s.Library.Monsters), a.Monster)
		return s

	case UpdateLibraryMonster:
		s.Library.Monsters = patchByID(s.Library.Monsters, a.ID, monsterID, a.Patch.apply)
		return s

	case DeleteLibraryMonster:
		s.Library.Monsters = removeByID(s.Library.Monsters, a.ID, monsterID)
		return s

	case AddLibraryLandmark:
		s.Library.Landmarks = append(slices.Clone(s.Library.Landmarks), a.Landmark)
		return s

	case UpdateLibraryLandmark:
		s.Library.Landmarks = patchByID(s.Library.Landmarks, a.ID, landmarkID, a.Patch.apply)
		return s

	case DeleteLibraryLandmark:
		s.Library.Landmarks = removeByID(s.Library.Landmarks, a.ID, landmarkID)
		return s

	case AddLibraryDelve:
		s.Library.Delves = append(slices.Clone(s.Library.Delves), a.Delve)
		return s

	case UpdateLibraryDelve:
		s.Library.Delves = patchByID(s.Library.Delves, a.ID, delveID, a.Patch.apply)
		return s

	case DeleteLibraryDelve:
		s.Library.Delves = removeByID(s.Library.Delves, a.ID, delveID)
		return s

	case SetLibrary:
		s.Library = a.Library
		return s

	case CreateMap:
		s.CurrentMap = &MapMeta{ID: a.ID, Name: a.Name, CreatedAt: a.At, UpdatedAt: a.At}
		s.Landmarks = nil
		s.Delves = nil
		s.PlacedCards = nil
		s.Connections = nil
		return s

	case LoadMap:
		return s.withMap(a.Map)

	case ClearMap:
		s.CurrentMap = nil
		s.Landmarks = nil
		s.Delves = nil
		s.PlacedCards = nil
		s.Connections = nil
		s.SelectedCard = ""
		s.EditingCard = ""
		s.DraggedCard = ""
		return s

	case SaveMap:
		if s.CurrentMap == nil {
			return s
		}
		meta := *s.CurrentMap
		meta.UpdatedAt = a.At
		s.CurrentMap = &meta
		return s

	case ImportMap:
		return s.withMap(a.Map)

	case ImportLibrary:
		if !a.Merge {
			s.Library = a.Library
			return s
		}
		// Merge concatenates; duplicate ids are kept as-is.
		s.Library = delve.Library{
			Monsters:  append(slices.Clone(s.Library.Monsters), a.Library.Monsters...),
			Landmarks: append(slices.Clone(s.Library.Landmarks), a.Library.Landmarks...),
			Delves:    append(slices.Clone(s.Library.Delves), a.Library.Delves...),
		}
		return s

	case SetSelectedCard:
		s.SelectedCard = a.ID
		return s

	case SetEditingCard:
		s.EditingCard = a.ID
		return s

	case SetDraggedCard:
		s.DraggedCard = a.ID
		return s

	case ToggleConnections:
		s.ShowConnections = !s.ShowConnections
		return s

	case ToggleGrid:
		s.GridVisible = !s.GridVisible
		return s

	case SetLoading:
		s.Loading = a.Loading
		if a.Loading {
			s.Err = ""
		}
		return s

	case SetError:
		s.Err = a.Message
		s.Loading = false
		return s

	default:
		return s
	}
}

// cascadeDelete removes the placed card and every connection referencing a
// deleted landmark or delve id.
func cascadeDelete(s State, id string) State {
	s.PlacedCards = filter(s.PlacedCards, func(pc delve.PlacedCard) bool {
		return pc.ID != id
	})
	s.Connections = filter(s.Connections, func(c delve.Connection) bool {
		return c.FromID != id && c.ToID != id
	})
	return s
}

func landmarkID(l delve.Landmark) string { return l.ID }
func delveID(d delve.Delve) string { return d.ID }
func monsterID(m delve.Monster) string { return m.ID }
func connectionID(c delve.Connection) string { return c.ID }
func placedCardID(p delve.PlacedCard) string { return p.ID }

// patchByID rebuilds the slice with update applied to the matching element.
// When the id does not resolve the input slice is returned as-is.
func patchByID[T any](items []T, id string, idOf func(T) string, update func(T) T) []T {
	idx := slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
	if idx < 0 {
		return items
	}
	out := slices.Clone(items)
	out[idx] = update(out[idx])
	return out
}

// removeByID rebuilds the slice without the matching element. When the id
// does not resolve the input slice is returned as-is.
func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	idx := slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
	if idx < 0 {
		return items
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

// filter returns the elements for which keep is true, in a fresh slice.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
