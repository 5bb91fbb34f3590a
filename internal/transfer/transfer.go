// Package transfer serializes maps and libraries to the JSON interchange
// format and validates documents on the way in. Parse failures and shape
// failures are distinct errors so the UI can message them differently.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/talgya/delvemap/internal/delve"
)

var (
	// ErrInvalidJSON marks input that does not parse as JSON at all.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrInvalidFormat marks well-formed JSON with the wrong shape.
	ErrInvalidFormat = errors.New("invalid document structure")
)

// ParseLibrary validates and decodes a library document:
// {monsters: [], landmarks: [], delves: []}. All three keys must be present
// and be arrays.
func ParseLibrary(data []byte) (delve.Library, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return delve.Library{}, classify(data, err)
	}
	for _, key := range []string{"monsters", "landmarks", "delves"} {
		raw, ok := doc[key]
		if !ok {
			return delve.Library{}, fmt.Errorf("%w: missing key %q", ErrInvalidFormat, key)
		}
		if !isJSONArray(raw) {
			return delve.Library{}, fmt.Errorf("%w: %q is not an array", ErrInvalidFormat, key)
		}
	}

	var lib delve.Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return delve.Library{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return lib, nil
}

// ParseMap validates and decodes a single map document. The id and name must
// be strings and all four collections arrays; createdAt/updatedAt are
// ISO-8601 strings on the wire.
func ParseMap(data []byte) (delve.DelveMap, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return delve.DelveMap{}, classify(data, err)
	}
	m, err := mapFromDoc(doc, data)
	if err != nil {
		return delve.DelveMap{}, err
	}
	return m, nil
}

// ParseMapCollection decodes a JSON array of map documents. Each element is
// validated independently; invalid elements are dropped rather than failing
// the batch. The second result counts the dropped elements so callers can
// warn about the mismatch.
func ParseMapCollection(data []byte) ([]delve.DelveMap, int, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, 0, classify(data, err)
	}

	maps := make([]delve.DelveMap, 0, len(elems))
	dropped := 0
	for _, raw := range elems {
		m, err := ParseMap(raw)
		if err != nil {
			dropped++
			continue
		}
		maps = append(maps, m)
	}
	return maps, dropped, nil
}

func mapFromDoc(doc map[string]json.RawMessage, data []byte) (delve.DelveMap, error) {
	for _, key := range []string{"id", "name"} {
		raw, ok := doc[key]
		if !ok || !isJSONString(raw) {
			return delve.DelveMap{}, fmt.Errorf("%w: %q must be a string", ErrInvalidFormat, key)
		}
	}
	for _, key := range []string{"landmarks", "delves", "placedCards", "connections"} {
		raw, ok := doc[key]
		if !ok {
			return delve.DelveMap{}, fmt.Errorf("%w: missing key %q", ErrInvalidFormat, key)
		}
		if !isJSONArray(raw) {
			return delve.DelveMap{}, fmt.Errorf("%w: %q is not an array", ErrInvalidFormat, key)
		}
	}

	var m delve.DelveMap
	if err := json.Unmarshal(data, &m); err != nil {
		return delve.DelveMap{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return m, nil
}

// ExportLibrary renders a library document, pretty-printed.
func ExportLibrary(lib delve.Library) ([]byte, error) {
	return marshalDoc(libraryDoc(lib))
}

// libraryDoc normalizes nil collections to empty arrays so an export always
// re-imports cleanly.
func libraryDoc(lib delve.Library) delve.Library {
	if lib.Monsters == nil {
		lib.Monsters = []delve.Monster{}
	}
	if lib.Landmarks == nil {
		lib.Landmarks = []delve.Landmark{}
	}
	if lib.Delves == nil {
		lib.Delves = []delve.Delve{}
	}
	return lib
}

// ExportMap renders a single map document, pretty-printed.
func ExportMap(m delve.DelveMap) ([]byte, error) {
	return marshalDoc(mapDoc(m))
}

// ExportMaps renders a map-collection document.
func ExportMaps(maps []delve.DelveMap) ([]byte, error) {
	docs := make([]delve.DelveMap, len(maps))
	for i, m := range maps {
		docs[i] = mapDoc(m)
	}
	return marshalDoc(docs)
}

func mapDoc(m delve.DelveMap) delve.DelveMap {
	if m.Landmarks == nil {
		m.Landmarks = []delve.Landmark{}
	}
	if m.Delves == nil {
		m.Delves = []delve.Delve{}
	}
	if m.PlacedCards == nil {
		m.PlacedCards = []delve.PlacedCard{}
	}
	if m.Connections == nil {
		m.Connections = []delve.Connection{}
	}
	return m
}

func marshalDoc(v any) ([]byte, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return raw, nil
}

// classify separates malformed JSON from well-formed JSON of the wrong
// top-level kind.
func classify(data []byte, err error) error {
	if json.Valid(data) {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isJSONString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}
