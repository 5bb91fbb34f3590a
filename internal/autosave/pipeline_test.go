package autosave

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/talgya/delvemap/internal/delve"
	"github.com/talgya/delvemap/internal/state"
	"github.com/talgya/delvemap/internal/storage"
)

func newMapStore(t *testing.T) *state.Store {
	t.Helper()
	st := state.NewStore(state.NewState())
	st.Dispatch(state.CreateMap{ID: "map-1", Name: "Reach", At: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)})
	return st
}

func landmark(id string) delve.Landmark {
	return delve.Landmark{
		ID: id, Name: "Landmark " + id,
		Domains:       []delve.Domain{delve.DomainWild},
		DefaultStress: delve.StressD6,
	}
}

func TestDebounceBurstSavesOnce(t *testing.T) {
	st := newMapStore(t)
	kv := storage.NewMemory()

	var saves atomic.Int32
	p := New(st, kv,
		WithDebounce(100*time.Millisecond),
		WithOnSave(func(delve.DelveMap) { saves.Add(1) }),
	)
	p.Start()
	defer p.Stop()

	for i := 0; i < 5; i++ {
		st.Dispatch(state.AddLandmark{Landmark: landmark(string(rune('a' + i)))})
		time.Sleep(10 * time.Millisecond)
	}

	// The burst fits inside one debounce window; exactly one save fires
	// after it settles.
	time.Sleep(300 * time.Millisecond)
	if got := saves.Load(); got != 1 {
		t.Fatalf("%d saves after burst, want 1", got)
	}

	saved := storage.LoadCurrentMap(kv)
	if saved == nil || len(saved.Landmarks) != 5 {
		t.Fatalf("persisted snapshot %+v, want 5 landmarks", saved)
	}
	if auto := storage.LoadAutoSave(kv); auto == nil || len(auto.Landmarks) != 5 {
		t.Error("auto-save slot not written")
	}
	if maps := storage.LoadMaps(kv); len(maps) != 1 || maps[0].ID != "map-1" {
		t.Errorf("maps collection %+v, want upserted map-1", maps)
	}
}

func TestNoSaveWhenFingerprintUnchanged(t *testing.T) {
	st := newMapStore(t)
	kv := storage.NewMemory()

	var saves atomic.Int32
	p := New(st, kv,
		WithDebounce(50*time.Millisecond),
		WithOnSave(func(delve.DelveMap) { saves.Add(1) }),
	)
	p.Start()
	defer p.Stop()

	st.Dispatch(state.AddLandmark{Landmark: landmark("a")})
	time.Sleep(150 * time.Millisecond)
	if saves.Load() != 1 {
		t.Fatalf("setup save count %d", saves.Load())
	}

	// UI-only changes do not touch the persisted subset: no second write.
	st.Dispatch(state.ToggleGrid{})
	st.Dispatch(state.SetSelectedCard{ID: "a"})
	time.Sleep(150 * time.Millisecond)
	if got := saves.Load(); got != 1 {
		t.Errorf("%d saves after UI-only changes, want 1", got)
	}
}

func TestHasUnsavedChanges(t *testing.T) {
	st := newMapStore(t)
	kv := storage.NewMemory()
	p := New(st, kv, WithDebounce(time.Hour))
	p.Start()
	defer p.Stop()

	// Start with no prior save of this fresh map.
	if !p.HasUnsavedChanges() {
		t.Fatal("fresh unsaved map reports clean")
	}

	st.Dispatch(state.AddLandmark{Landmark: landmark("a")})
	if !p.HasUnsavedChanges() {
		t.Fatal("dirty immediately after a change, got clean")
	}

	if err := p.SaveNow(); err != nil {
		t.Fatalf("SaveNow: %v", err)
	}
	if p.HasUnsavedChanges() {
		t.Fatal("clean immediately after a save, got dirty")
	}

	st.Dispatch(state.AddLandmark{Landmark: landmark("b")})
	if !p.HasUnsavedChanges() {
		t.Fatal("second change not detected")
	}
}

func TestWriteFailureKeepsBaseline(t *testing.T) {
	st := newMapStore(t)
	kv := storage.NewMemory()

	var gotErr error
	p := New(st, kv,
		WithDebounce(time.Hour),
		WithOnError(func(err error) { gotErr = err }),
	)
	p.Start()
	defer p.Stop()

	st.Dispatch(state.AddLandmark{Landmark: landmark("a")})

	kv.FailWrites = errors.New("quota exceeded")
	if err := p.SaveNow(); err == nil {
		t.Fatal("SaveNow succeeded against a failing store")
	}
	if !p.HasUnsavedChanges() {
		t.Fatal("baseline advanced despite write failure")
	}

	// The next attempt retries and succeeds.
	kv.FailWrites = nil
	if err := p.SaveNow(); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if p.HasUnsavedChanges() {
		t.Error("still dirty after successful retry")
	}
	_ = gotErr
}

func TestDebounceErrorSurfacesViaCallback(t *testing.T) {
	st := newMapStore(t)
	kv := storage.NewMemory()
	kv.FailWrites = errors.New("disk full")

	errCh := make(chan error, 1)
	p := New(st, kv,
		WithDebounce(50*time.Millisecond),
		WithOnError(func(err error) { errCh <- err }),
	)
	p.Start()
	defer p.Stop()

	st.Dispatch(state.AddLandmark{Landmark: landmark("a")})

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("nil error from callback")
		}
	case <-time.After(time.Second):
		t.Fatal("error callback never fired")
	}
}

func TestClearMapClearsSlots(t *testing.T) {
	st := newMapStore(t)
	kv := storage.NewMemory()
	p := New(st, kv, WithDebounce(time.Hour))
	p.Start()
	defer p.Stop()

	st.Dispatch(state.AddLandmark{Landmark: landmark("a")})
	if err := p.SaveNow(); err != nil {
		t.Fatal(err)
	}
	if storage.LoadCurrentMap(kv) == nil {
		t.Fatal("save did not write current-map slot")
	}

	st.Dispatch(state.ClearMap{})
	if storage.LoadCurrentMap(kv) != nil {
		t.Error("current-map slot survives ClearMap")
	}
	if storage.LoadAutoSave(kv) != nil {
		t.Error("autosave slot survives ClearMap")
	}
	if p.HasUnsavedChanges() {
		t.Error("no open map but pipeline reports unsaved changes")
	}
}
