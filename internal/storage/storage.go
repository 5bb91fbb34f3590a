// Package storage provides the key-value persistence service behind the
// editor: the narrow Load/Save/Clear contract, a SQLite implementation, and
// typed helpers for the library, the maps collection, the current map, and
// the auto-save slot.
package storage

import (
	"encoding/json"
	"log/slog"

	"github.com/talgya/delvemap/internal/delve"
)

// Storage keys, namespaced per concern.
const (
	KeyLibrary    = "delvemap:library"
	KeyMaps       = "delvemap:maps"
	KeyCurrentMap = "delvemap:current"
	KeyAutoSave   = "delvemap:autosave"
)

// Store is the narrow persistence contract the core depends on. Load returns
// (nil, nil) for an absent key. Save may fail when capacity runs out;
// callers treat a write failure as recoverable, never fatal.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Clear(key string) error
}

// loadJSON decodes the value at key into v. Absent keys and corrupted values
// both leave v untouched and report false; corruption is logged, not
// propagated, so a damaged slot degrades to the empty default.
func loadJSON(s Store, key string, v any) bool {
	raw, err := s.Load(key)
	if err != nil {
		slog.Warn("storage read failed", "key", key, "error", err)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		slog.Warn("corrupted value in storage, using default", "key", key, "error", err)
		return false
	}
	return true
}

func saveJSON(s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Save(key, raw)
}

// LoadLibrary reads the persistent library, degrading to an empty library
// when the slot is absent or corrupted.
func LoadLibrary(s Store) delve.Library {
	var lib delve.Library
	loadJSON(s, KeyLibrary, &lib)
	return lib
}

// SaveLibrary writes the library.
func SaveLibrary(s Store, lib delve.Library) error {
	return saveJSON(s, KeyLibrary, lib)
}

// LoadCurrentMap reads the current-map slot, or nil when absent/corrupted.
func LoadCurrentMap(s Store) *delve.DelveMap {
	var m delve.DelveMap
	if !loadJSON(s, KeyCurrentMap, &m) {
		return nil
	}
	return &m
}

// SaveCurrentMap writes the current-map slot.
func SaveCurrentMap(s Store, m delve.DelveMap) error {
	return saveJSON(s, KeyCurrentMap, m)
}

// ClearCurrentMap empties the current-map slot.
func ClearCurrentMap(s Store) error {
	return s.Clear(KeyCurrentMap)
}

// LoadAutoSave reads the auto-save/recovery slot, or nil when
// absent/corrupted.
func LoadAutoSave(s Store) *delve.DelveMap {
	var m delve.DelveMap
	if !loadJSON(s, KeyAutoSave, &m) {
		return nil
	}
	return &m
}

// SaveAutoSave writes the auto-save/recovery slot.
func SaveAutoSave(s Store, m delve.DelveMap) error {
	return saveJSON(s, KeyAutoSave, m)
}

// ClearAutoSave empties the auto-save slot.
func ClearAutoSave(s Store) error {
	return s.Clear(KeyAutoSave)
}

// LoadMaps reads the durable maps collection, degrading to empty.
func LoadMaps(s Store) []delve.DelveMap {
	var maps []delve.DelveMap
	loadJSON(s, KeyMaps, &maps)
	return maps
}

// UpsertMap inserts or replaces a map in the durable collection by id.
func UpsertMap(s Store, m delve.DelveMap) error {
	maps := LoadMaps(s)
	replaced := false
	for i := range maps {
		if maps[i].ID == m.ID {
			maps[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		maps = append(maps, m)
	}
	return saveJSON(s, KeyMaps, maps)
}

// DeleteMap removes a map from the durable collection by id.
func DeleteMap(s Store, id string) error {
	maps := LoadMaps(s)
	kept := maps[:0]
	for _, m := range maps {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	return saveJSON(s, KeyMaps, kept)
}
