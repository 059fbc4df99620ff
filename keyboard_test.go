package pianoroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyboard() (*KeyboardController, *NoteStore) {
	store := NewNoteStore(0)
	grid := NewGridSnap()
	return NewKeyboardController(store, grid), store
}

func TestKeyboardSelectAll(t *testing.T) {
	k, store := newTestKeyboard()
	id1 := store.Create(0, 480, 60, 100, 0, false, false, false)
	id2 := store.Create(960, 480, 64, 100, 0, false, false, false)

	k.SelectAll()
	assert.True(t, store.IsSelected(id1))
	assert.True(t, store.IsSelected(id2))
}

func TestKeyboardDeleteSelectedIsUndoable(t *testing.T) {
	k, store := newTestKeyboard()
	id1 := store.Create(0, 480, 60, 100, 0, true, false, false)
	store.Create(960, 480, 64, 100, 0, false, false, false)

	k.DeleteSelected()
	assert.Equal(t, 1, store.Len())

	require.True(t, k.Undo())
	assert.Equal(t, 2, store.Len())
	n, ok := store.FindById(id1)
	require.True(t, ok)
	assert.Equal(t, Tick(0), n.Tick)
}

func TestKeyboardPasteRestoresOriginalAbsolutePositions(t *testing.T) {
	k, store := newTestKeyboard()
	id1 := store.Create(480, 240, 60, 100, 0, true, false, false)
	id2 := store.Create(960, 240, 64, 90, 0, true, false, false)

	k.Copy()
	k.DeleteSelected() // free the original slots, or the paste would be skipped as an overlap
	k.Paste()

	notes := store.All()
	assert.Len(t, notes, 2) // originals deleted, two pasted copies

	var pastedTicks []Tick
	for _, n := range notes {
		if n.Id != id1 && n.Id != id2 {
			pastedTicks = append(pastedTicks, n.Tick)
		}
	}
	assert.ElementsMatch(t, []Tick{480, 960}, pastedTicks, "plain paste restores original absolute ticks")
}

func TestKeyboardPasteAtReanchorsAtPasteTick(t *testing.T) {
	k, store := newTestKeyboard()
	id1 := store.Create(480, 240, 60, 100, 0, true, false, false)
	id2 := store.Create(960, 240, 64, 90, 0, true, false, false)
	_ = id2

	k.Copy()
	k.PasteAt(0)

	notes := store.All()
	assert.Len(t, notes, 4) // two originals, two pasted copies

	var pastedTicks []Tick
	for _, n := range notes {
		if n.Id != id1 && n.Id != id2 {
			pastedTicks = append(pastedTicks, n.Tick)
		}
	}
	assert.ElementsMatch(t, []Tick{0, 480}, pastedTicks, "earliest clipboard note lands on pasteTick")
}

func TestKeyboardPasteSkipsOverlappingNotes(t *testing.T) {
	k, store := newTestKeyboard()
	store.Create(0, 480, 60, 100, 0, true, false, false)
	k.Copy()

	store.Create(0, 480, 60, 100, 0, false, false, true) // occupies the paste target already
	k.PasteAt(0)

	assert.Equal(t, 2, store.Len(), "the overlapping paste is silently skipped")
}

func TestKeyboardTransposeRejectsWholeGroupOnOutOfRange(t *testing.T) {
	k, store := newTestKeyboard()
	id1 := store.Create(0, 480, 1, 100, 0, true, false, false)
	id2 := store.Create(960, 480, 60, 100, 0, true, false, false)

	ok := k.TransposeSelected(-5) // would push id1's key below 0
	assert.False(t, ok)

	n1, _ := store.FindById(id1)
	n2, _ := store.FindById(id2)
	assert.Equal(t, MidiKey(1), n1.Key)
	assert.Equal(t, MidiKey(60), n2.Key)
}

func TestKeyboardTransposeAppliesWholeGroupAtomically(t *testing.T) {
	k, store := newTestKeyboard()
	id1 := store.Create(0, 480, 40, 100, 0, true, false, false)
	id2 := store.Create(960, 480, 60, 100, 0, true, false, false)

	assert.True(t, k.TransposeSelected(5))

	n1, _ := store.FindById(id1)
	n2, _ := store.FindById(id2)
	assert.Equal(t, MidiKey(45), n1.Key)
	assert.Equal(t, MidiKey(65), n2.Key)
}

func TestKeyboardShiftSelectedRejectsNegativeResult(t *testing.T) {
	k, store := newTestKeyboard()
	id := store.Create(100, 480, 60, 100, 0, true, false, false)

	assert.False(t, k.ShiftSelected(-200))
	n, _ := store.FindById(id)
	assert.Equal(t, Tick(100), n.Tick)
}

func TestKeyboardArrowStepTicksFineVsSnap(t *testing.T) {
	k, _ := newTestKeyboard()
	k.Grid.Mode = SnapManual
	k.Grid.ManualDivisionIdx = 4 // 1/4 note (one beat), 480 ticks

	assert.Equal(t, Tick(480), k.ArrowStepTicks(false))
	assert.Equal(t, Tick(480/32), k.ArrowStepTicks(true))
}
