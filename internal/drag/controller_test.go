package drag

import (
	"testing"
	"time"

	"github.com/talgya/delvemap/internal/delve"
	"github.com/talgya/delvemap/internal/hexgrid"
	"github.com/talgya/delvemap/internal/state"
)

func newTestStore(t *testing.T) *state.Store {
	t.Helper()
	st := state.NewStore(state.NewState())
	st.Dispatch(state.CreateMap{ID: "map-1", Name: "Reach", At: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)})
	st.Dispatch(state.AddLandmark{Landmark: delve.Landmark{
		ID: "lm-a", Name: "Landmark A",
		Domains: []delve.Domain{delve.DomainHaven}, DefaultStress: delve.StressD6,
	}})
	st.Dispatch(state.AddDelve{Delve: delve.Delve{
		ID: "dv-a", Name: "Delve A", Resistance: 8,
		Domains: []delve.Domain{delve.DomainOccult},
	}})
	return st
}

func pixelAt(h hexgrid.HexCoord) hexgrid.Pixel {
	return hexgrid.HexToPixel(h, hexgrid.DefaultLayout())
}

func TestDragPlacesUnplacedCard(t *testing.T) {
	st := newTestStore(t)
	c := NewController(st, hexgrid.DefaultLayout(), ModeHex)

	c.Start("lm-a", delve.CardLandmark, hexgrid.Pixel{})
	if st.State().DraggedCard != "lm-a" {
		t.Fatal("dragged-card cursor not set on start")
	}

	target := hexgrid.HexCoord{Q: 2, R: -1}
	c.Move("lm-a", pixelAt(target))
	preview, ok := c.Preview()
	if !ok {
		t.Fatal("no preview after move")
	}
	if h, _ := preview.HexAt(); h != target {
		t.Fatalf("preview %v, want %v", h, target)
	}

	if !c.Drop("lm-a", pixelAt(target)) {
		t.Fatal("drop on free cell did not commit")
	}

	pc, ok := st.State().PlacedCardByID("lm-a")
	if !ok {
		t.Fatal("card not placed")
	}
	if h, _ := pc.Position.HexAt(); h != target {
		t.Errorf("placed at %v, want %v", h, target)
	}
	if st.State().DraggedCard != "" {
		t.Error("dragged-card cursor not cleared after drop")
	}
	if _, dragging := c.Dragging(); dragging {
		t.Error("controller not Idle after drop")
	}
}

func TestDragMovesPlacedCard(t *testing.T) {
	st := newTestStore(t)
	st.Dispatch(state.PlaceCard{Card: delve.PlacedCard{
		ID: "lm-a", Type: delve.CardLandmark,
		Position: delve.AtHex(hexgrid.HexCoord{Q: 0, R: 0}),
	}})
	c := NewController(st, hexgrid.DefaultLayout(), ModeHex)

	c.Start("lm-a", delve.CardLandmark, hexgrid.Pixel{})
	c.Drop("lm-a", pixelAt(hexgrid.HexCoord{Q: 3, R: 0}))

	if len(st.State().PlacedCards) != 1 {
		t.Fatalf("%d placements after move, want 1", len(st.State().PlacedCards))
	}
	h, _ := st.State().PlacedCards[0].Position.HexAt()
	if h != (hexgrid.HexCoord{Q: 3, R: 0}) {
		t.Errorf("moved to %v, want (3,0)", h)
	}
}

func TestDropOnOccupiedCellIsSilentRevert(t *testing.T) {
	st := newTestStore(t)
	origin := hexgrid.HexCoord{Q: 0, R: 0}
	blocked := hexgrid.HexCoord{Q: 1, R: 0}
	st.Dispatch(state.PlaceCard{Card: delve.PlacedCard{
		ID: "lm-a", Type: delve.CardLandmark, Position: delve.AtHex(origin),
	}})
	st.Dispatch(state.PlaceCard{Card: delve.PlacedCard{
		ID: "dv-a", Type: delve.CardDelve, Position: delve.AtHex(blocked),
	}})
	c := NewController(st, hexgrid.DefaultLayout(), ModeHex)

	c.Start("lm-a", delve.CardLandmark, hexgrid.Pixel{})
	if c.Drop("lm-a", pixelAt(blocked)) {
		t.Fatal("drop on occupied cell committed")
	}

	pc, _ := st.State().PlacedCardByID("lm-a")
	if h, _ := pc.Position.HexAt(); h != origin {
		t.Errorf("card at %v after failed drop, want untouched origin %v", h, origin)
	}
	if st.State().DraggedCard != "" {
		t.Error("dragged-card cursor not cleared after failed drop")
	}
}

func TestDropOnOwnCellAllowed(t *testing.T) {
	st := newTestStore(t)
	origin := hexgrid.HexCoord{Q: 0, R: 0}
	st.Dispatch(state.PlaceCard{Card: delve.PlacedCard{
		ID: "lm-a", Type: delve.CardLandmark, Position: delve.AtHex(origin),
	}})
	c := NewController(st, hexgrid.DefaultLayout(), ModeHex)

	c.Start("lm-a", delve.CardLandmark, hexgrid.Pixel{})
	// The card's own cell is excluded from the occupancy check.
	if !c.Drop("lm-a", pixelAt(origin)) {
		t.Error("drop back onto own cell rejected")
	}
}

func TestStaleMoveEventsIgnored(t *testing.T) {
	st := newTestStore(t)
	c := NewController(st, hexgrid.DefaultLayout(), ModeHex)

	c.Start("lm-a", delve.CardLandmark, hexgrid.Pixel{})
	c.Move("dv-a", pixelAt(hexgrid.HexCoord{Q: 5, R: 5}))
	if _, ok := c.Preview(); ok {
		t.Error("stale event updated the preview")
	}
	if c.Drop("dv-a", pixelAt(hexgrid.HexCoord{Q: 5, R: 5})) {
		t.Error("stale drop committed")
	}
	if _, dragging := c.Dragging(); !dragging {
		t.Error("stale drop ended the real gesture")
	}
}

func TestCancelLeavesPlacementUntouched(t *testing.T) {
	st := newTestStore(t)
	origin := hexgrid.HexCoord{Q: 0, R: 0}
	st.Dispatch(state.PlaceCard{Card: delve.PlacedCard{
		ID: "lm-a", Type: delve.CardLandmark, Position: delve.AtHex(origin),
	}})
	c := NewController(st, hexgrid.DefaultLayout(), ModeHex)

	c.Start("lm-a", delve.CardLandmark, hexgrid.Pixel{})
	c.Move("lm-a", pixelAt(hexgrid.HexCoord{Q: 4, R: 4}))
	c.Cancel()

	pc, _ := st.State().PlacedCardByID("lm-a")
	if h, _ := pc.Position.HexAt(); h != origin {
		t.Errorf("cancel moved the card to %v", h)
	}
	if st.State().DraggedCard != "" {
		t.Error("dragged-card cursor survives cancel")
	}
}

func TestTouchThresholdSeparatesTapFromDrag(t *testing.T) {
	st := newTestStore(t)
	c := NewController(st, hexgrid.DefaultLayout(), ModeHex)

	start := hexgrid.Pixel{X: 100, Y: 100}
	c.TouchStart("lm-a", delve.CardLandmark, start)

	// Small jitter: still a tap, no drag starts.
	c.TouchMove("lm-a", hexgrid.Pixel{X: 104, Y: 103})
	if _, dragging := c.Dragging(); dragging {
		t.Fatal("sub-threshold movement started a drag")
	}
	if c.TouchEnd("lm-a", hexgrid.Pixel{X: 104, Y: 103}) {
		t.Fatal("tap committed a placement")
	}
	if len(st.State().PlacedCards) != 0 {
		t.Fatal("tap placed a card")
	}

	// Past the threshold: drag starts and the drop places the card.
	c.TouchStart("lm-a", delve.CardLandmark, start)
	c.TouchMove("lm-a", hexgrid.Pixel{X: 120, Y: 100})
	if _, dragging := c.Dragging(); !dragging {
		t.Fatal("threshold movement did not start a drag")
	}
	if !c.TouchEnd("lm-a", pixelAt(hexgrid.HexCoord{Q: 1, R: 1})) {
		t.Fatal("touch drop did not commit")
	}
	if _, ok := st.State().PlacedCardByID("lm-a"); !ok {
		t.Error("touch drag did not place the card")
	}
}

func TestFreeModePlacesRawPixels(t *testing.T) {
	st := newTestStore(t)
	c := NewController(st, hexgrid.DefaultLayout(), ModeFree)

	c.Start("lm-a", delve.CardLandmark, hexgrid.Pixel{X: 10, Y: 5})
	c.Drop("lm-a", hexgrid.Pixel{X: 210.5, Y: 105})

	pc, ok := st.State().PlacedCardByID("lm-a")
	if !ok {
		t.Fatal("card not placed")
	}
	if pc.Position.Free == nil {
		t.Fatal("free-mode drop produced a hex position")
	}
	// The grab offset is subtracted from the pointer.
	if pc.Position.Free.X != 200.5 || pc.Position.Free.Y != 100 {
		t.Errorf("placed at %+v, want (200.5, 100)", *pc.Position.Free)
	}
}
