// Package autosave watches the store and persists the open map after a
// quiet period, skipping writes when nothing persistence-relevant changed.
// Change detection uses a sha256 fingerprint of the map's entity,
// placement, and connection collections.
package autosave

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/talgya/delvemap/internal/delve"
	"github.com/talgya/delvemap/internal/state"
	"github.com/talgya/delvemap/internal/storage"
)

// DefaultDebounce is the quiescence window after the last change before a
// save fires.
const DefaultDebounce = 2 * time.Second

// Option configures a [Pipeline].
type Option func(*Pipeline)

// WithDebounce sets the quiescence window. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.debounce = d
		}
	}
}

// WithOnSave registers a callback invoked after each successful persist.
func WithOnSave(fn func(delve.DelveMap)) Option {
	return func(p *Pipeline) { p.onSave = fn }
}

// WithOnError registers a callback invoked when a persist fails. Failures
// never crash the pipeline; the unsaved baseline is kept so the next change
// retries.
func WithOnError(fn func(error)) Option {
	return func(p *Pipeline) { p.onError = fn }
}

// Pipeline debounces state changes into persistence writes. At most one
// timer is pending at a time; each observed change cancels and restarts it.
type Pipeline struct {
	store    *state.Store
	kv       storage.Store
	debounce time.Duration
	onSave   func(delve.DelveMap)
	onError  func(error)

	mu          sync.Mutex
	timer       *time.Timer
	lastSaved   [sha256.Size]byte
	hasBaseline bool
	unsub       func()
}

// New wires a pipeline to the store and the persistence service. Call Start
// to begin observing.
func New(st *state.Store, kv storage.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:    st,
		kv:       kv,
		debounce: DefaultDebounce,
		onSave:   func(delve.DelveMap) {},
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start subscribes to the store. A session restored from storage should call
// MarkClean afterwards so the restored snapshot is not treated as unsaved.
func (p *Pipeline) Start() {
	p.unsub = p.store.Subscribe(p.onChange)
}

// MarkClean records the current snapshot as the saved baseline without
// writing anything. Used after restoring state that came from storage.
func (p *Pipeline) MarkClean() {
	s := p.store.State()
	if s.CurrentMap == nil {
		return
	}
	p.mu.Lock()
	p.lastSaved = fingerprint(s)
	p.hasBaseline = true
	p.mu.Unlock()
}

// Stop cancels any pending save and detaches from the store.
func (p *Pipeline) Stop() {
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()
}

func (p *Pipeline) onChange(old, new state.State) {
	if new.CurrentMap == nil {
		// Nothing to save. Closing a map also clears its slots.
		if old.CurrentMap != nil {
			p.clearSlots()
		}
		p.mu.Lock()
		if p.timer != nil {
			p.timer.Stop()
			p.timer = nil
		}
		p.hasBaseline = false
		p.mu.Unlock()
		return
	}

	fp := fingerprint(new)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.hasBaseline && fp == p.lastSaved {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, func() {
		if err := p.flush(); err != nil {
			p.onError(err)
		}
	})
}

// SaveNow bypasses the debounce and persists immediately. The baseline
// fingerprint advances only on success.
func (p *Pipeline) SaveNow() error {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()
	return p.flush()
}

// HasUnsavedChanges reports whether the live state differs from the last
// successfully persisted snapshot.
func (p *Pipeline) HasUnsavedChanges() bool {
	s := p.store.State()
	if s.CurrentMap == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.hasBaseline || fingerprint(s) != p.lastSaved
}

// flush persists the open map to the auto-save slot, the current-map slot,
// and the durable maps collection, then records the new baseline.
func (p *Pipeline) flush() error {
	s := p.store.State()
	m, ok := s.ToMap()
	if !ok {
		return nil
	}
	fp := fingerprint(s)

	if err := storage.SaveAutoSave(p.kv, m); err != nil {
		return fmt.Errorf("autosave slot: %w", err)
	}
	if err := storage.SaveCurrentMap(p.kv, m); err != nil {
		return fmt.Errorf("current-map slot: %w", err)
	}
	if err := storage.UpsertMap(p.kv, m); err != nil {
		return fmt.Errorf("maps collection: %w", err)
	}

	p.mu.Lock()
	p.lastSaved = fp
	p.hasBaseline = true
	p.mu.Unlock()

	slog.Debug("map auto-saved", "map", m.ID, "name", m.Name)
	p.onSave(m)
	return nil
}

func (p *Pipeline) clearSlots() {
	if err := storage.ClearCurrentMap(p.kv); err != nil {
		p.onError(fmt.Errorf("clear current-map slot: %w", err))
	}
	if err := storage.ClearAutoSave(p.kv); err != nil {
		p.onError(fmt.Errorf("clear autosave slot: %w", err))
	}
}

// fingerprint hashes the persistence-relevant subset of the state: the four
// map collections. UI cursors, flags, and the library are excluded.
func fingerprint(s state.State) [sha256.Size]byte {
	subset := struct {
		Landmarks   []delve.Landmark   `json:"landmarks"`
		Delves      []delve.Delve      `json:"delves"`
		PlacedCards []delve.PlacedCard `json:"placedCards"`
		Connections []delve.Connection `json:"connections"`
	}{s.Landmarks, s.Delves, s.PlacedCards, s.Connections}

	raw, err := json.Marshal(subset)
	if err != nil {
		// Domain types marshal without error; a failure here means a new
		// unmarshalable field slipped into the model.
		panic(fmt.Sprintf("fingerprint marshal: %v", err))
	}
	return sha256.Sum256(raw)
}
