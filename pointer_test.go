package pianoroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPointerSetup() (*PointerController, *NoteStore, *CoordinateSystem) {
	store := NewNoteStore(0)
	coords := NewCoordinateSystem()
	grid := NewGridSnap()
	grid.Mode = SnapOff // isolate pointer math from snapping in most tests
	p := NewPointerController(store, coords, grid)
	return p, store, coords
}

func TestPointerDoubleClickCreatesNote(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	worldX := coords.TickToWorld(480)
	worldY := coords.KeyToWorldY(60)

	p.OnMouseDown(worldX, worldY, false, false, false, true)
	assert.Equal(t, 1, store.Len())
}

func TestPointerDoubleClickOnNoteDeletesIt(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	store.Create(480, 480, 60, 100, 0, false, false, false)

	worldX := coords.TickToWorld(480)
	worldY := coords.KeyToWorldY(60)
	p.OnMouseDown(worldX, worldY, false, false, false, true)
	assert.Equal(t, 0, store.Len())
}

func TestPointerClickSelectsSingleNote(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	id1 := store.Create(0, 480, 60, 100, 0, false, false, false)
	id2 := store.Create(0, 480, 64, 100, 0, false, false, false)
	store.Select(id2, false)

	p.OnMouseDown(coords.TickToWorld(200), coords.KeyToWorldY(60), false, false, false, false)
	p.OnMouseUp()

	assert.True(t, store.IsSelected(id1))
	assert.False(t, store.IsSelected(id2))
}

func TestPointerShiftClickAddsToSelection(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	id1 := store.Create(0, 480, 60, 100, 0, false, false, false)
	id2 := store.Create(0, 480, 64, 100, 0, false, false, false)
	store.Select(id1, false)

	p.OnMouseDown(coords.TickToWorld(200), coords.KeyToWorldY(64), false, true, false, false)
	p.OnMouseUp()

	assert.True(t, store.IsSelected(id1))
	assert.True(t, store.IsSelected(id2))
}

func TestPointerCtrlClickTogglesOnlyWithoutDrag(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	id1 := store.Create(0, 480, 60, 100, 0, false, false, false)
	store.Select(id1, false)

	x, y := coords.TickToWorld(200), coords.KeyToWorldY(60)
	p.OnMouseDown(x, y, true, false, false, false)
	assert.True(t, store.IsSelected(id1), "toggle is deferred until mouse-up")
	p.OnMouseUp()
	assert.False(t, store.IsSelected(id1))
}

func TestPointerCtrlDragDuplicatesInsteadOfToggling(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	id1 := store.Create(0, 480, 60, 100, 0, false, false, false)
	store.Select(id1, false)

	x, y := coords.TickToWorld(200), coords.KeyToWorldY(60)
	p.OnMouseDown(x, y, true, false, false, false)
	p.OnMouseMove(x+dragThresholdPx+10, y)
	p.OnMouseUp()

	assert.Equal(t, 2, store.Len(), "ctrl-drag leaves the original and creates a duplicate")
	assert.False(t, store.IsSelected(id1), "the original stays in place but the selection moves to the duplicate")
}

func TestPointerDragMovesSelectedNotesByAnchorDelta(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	id1 := store.Create(0, 480, 60, 100, 0, false, false, false)
	id2 := store.Create(960, 480, 64, 100, 0, false, false, false)
	store.Select(id1, false)
	store.Select(id2, true)

	startX := coords.TickToWorld(240) // inside id1's body, away from either edge
	startY := coords.KeyToWorldY(60)
	p.OnMouseDown(startX, startY, false, false, false, false)
	// anchor is id1 (the hit note); drag it forward by 480 ticks worth of pixels
	p.OnMouseMove(startX+coords.PixelsPerBeat, startY)
	p.OnMouseUp()

	n1, _ := store.FindById(id1)
	n2, _ := store.FindById(id2)
	assert.Equal(t, Tick(480), n1.Tick)
	assert.Equal(t, Tick(1440), n2.Tick, "non-anchor notes move by the same delta")
}

func TestPointerResizeUpdatesDefaultNoteDuration(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	id := store.Create(0, 480, 60, 100, 0, false, false, false)

	rightEdgeX := coords.TickToWorld(479) // inside the note, within threshold of its right edge
	p.OnMouseDown(rightEdgeX, coords.KeyToWorldY(60), false, false, false, false)
	p.OnMouseMove(coords.TickToWorld(960), coords.KeyToWorldY(60))
	p.OnMouseUp()

	n, ok := store.FindById(id)
	require.True(t, ok)
	assert.Equal(t, Duration(960), n.Duration)
	assert.Equal(t, Duration(960), p.DefaultNoteDuration)
}

func TestPointerRectSelectPicksUpNotesInRange(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	id1 := store.Create(0, 240, 60, 100, 0, false, false, false)
	id2 := store.Create(960, 240, 64, 100, 0, false, false, false)

	p.OnMouseDown(coords.TickToWorld(2000), coords.KeyToWorldY(70), false, false, false, false) // empty space
	p.OnMouseMove(coords.TickToWorld(-100), coords.KeyToWorldY(50))
	p.OnMouseUp()

	assert.True(t, store.IsSelected(id1))
	assert.True(t, store.IsSelected(id2))
}

func TestPointerResizeLeftEdgeMovesStartAndKeepsEndFixed(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	id := store.Create(480, 480, 60, 100, 0, false, false, false) // [480, 960)

	leftEdgeX := coords.TickToWorld(481) // inside the note, within threshold of its left edge
	p.OnMouseDown(leftEdgeX, coords.KeyToWorldY(60), false, false, false, false)
	p.OnMouseMove(coords.TickToWorld(720), coords.KeyToWorldY(60))
	p.OnMouseUp()

	n, ok := store.FindById(id)
	require.True(t, ok)
	assert.Equal(t, Tick(720), n.Tick, "left-edge drag moves the note's start")
	assert.Equal(t, Duration(240), n.Duration, "the end tick (960) stays fixed")
}

func TestPointerResizeLeftEdgeEnforcesMinimumLength(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	id := store.Create(480, 480, 60, 100, 0, false, false, false) // [480, 960)

	leftEdgeX := coords.TickToWorld(481)
	p.OnMouseDown(leftEdgeX, coords.KeyToWorldY(60), false, false, false, false)
	p.OnMouseMove(coords.TickToWorld(2000), coords.KeyToWorldY(60)) // drag past the end
	p.OnMouseUp()

	n, ok := store.FindById(id)
	require.True(t, ok)
	assert.Equal(t, Duration(minNoteLengthTicks), n.Duration)
	assert.Equal(t, Tick(960-minNoteLengthTicks), n.Tick)
}

func TestPointerResizeRightEdgeEnforcesMinimumLength(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	id := store.Create(0, 480, 60, 100, 0, false, false, false)

	rightEdgeX := coords.TickToWorld(479)
	p.OnMouseDown(rightEdgeX, coords.KeyToWorldY(60), false, false, false, false)
	p.OnMouseMove(coords.TickToWorld(-500), coords.KeyToWorldY(60)) // drag past the start
	p.OnMouseUp()

	n, ok := store.FindById(id)
	require.True(t, ok)
	assert.Equal(t, Duration(minNoteLengthTicks), n.Duration)
}

func TestPointerRectSelectCtrlUnionsWithExistingSelection(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	idA := store.Create(0, 240, 60, 100, 0, false, false, false)
	idB := store.Create(960, 240, 64, 100, 0, false, false, false)
	store.Select(idA, false)

	// ctrl-drag a rectangle over B only; A (outside the rect) must remain selected.
	p.OnMouseDown(coords.TickToWorld(900), coords.KeyToWorldY(70), true, false, false, false)
	p.OnMouseMove(coords.TickToWorld(1200), coords.KeyToWorldY(60))
	p.OnMouseUp()

	assert.True(t, store.IsSelected(idA))
	assert.True(t, store.IsSelected(idB))
}

func TestPointerRectSelectShiftTogglesSymmetricDifference(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	idA := store.Create(0, 240, 60, 100, 0, false, false, false)
	idB := store.Create(960, 240, 64, 100, 0, false, false, false)
	store.Select(idA, false)

	// initial selection = {A}; shift-drag a rectangle over {A, B}.
	p.OnMouseDown(coords.TickToWorld(-100), coords.KeyToWorldY(70), false, true, false, false)
	p.OnMouseMove(coords.TickToWorld(1200), coords.KeyToWorldY(50))
	p.OnMouseUp()

	assert.False(t, store.IsSelected(idA), "A toggles off: it was initially selected and is in the rect")
	assert.True(t, store.IsSelected(idB), "B toggles on: it was not initially selected and is in the rect")
}

func TestPointerRectSelectAltSubtractsFromInitialSelection(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	idA := store.Create(0, 240, 60, 100, 0, false, false, false)
	idB := store.Create(960, 240, 64, 100, 0, false, false, false)
	store.Select(idA, false)
	store.Select(idB, true)

	// alt-drag a rectangle over B only: result = initial \ in-rect = {A}.
	p.OnMouseDown(coords.TickToWorld(900), coords.KeyToWorldY(70), false, false, true, false)
	p.OnMouseMove(coords.TickToWorld(1200), coords.KeyToWorldY(60))
	p.OnMouseUp()

	assert.True(t, store.IsSelected(idA))
	assert.False(t, store.IsSelected(idB))
}

func TestPointerIsActiveDuringGesture(t *testing.T) {
	p, store, coords := newTestPointerSetup()
	store.Create(0, 480, 60, 100, 0, false, false, false)
	assert.False(t, p.IsActive())

	p.OnMouseDown(coords.TickToWorld(200), coords.KeyToWorldY(60), false, false, false, false)
	p.OnMouseMove(coords.TickToWorld(200)+dragThresholdPx+5, coords.KeyToWorldY(60))
	assert.True(t, p.IsActive())

	p.OnMouseUp()
	assert.False(t, p.IsActive())
}
