package pianoroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteStoreCreateAndFind(t *testing.T) {
	s := NewNoteStore(0)
	id := s.Create(0, 480, 60, 100, 0, false, false, false)
	require.NotZero(t, id)

	n, ok := s.FindById(id)
	require.True(t, ok)
	assert.Equal(t, Tick(0), n.Tick)
	assert.Equal(t, Duration(480), n.Duration)
	assert.Equal(t, MidiKey(60), n.Key)
}

func TestNoteStoreCreateRejectsInvalid(t *testing.T) {
	s := NewNoteStore(0)
	assert.Zero(t, s.Create(-1, 480, 60, 100, 0, false, false, false))
	assert.Zero(t, s.Create(0, 0, 60, 100, 0, false, false, false))
	assert.Zero(t, s.Create(0, 480, 200, 100, 0, false, false, false))
}

func TestNoteStoreCreateRejectsOverlapUnlessAllowed(t *testing.T) {
	s := NewNoteStore(0)
	id1 := s.Create(0, 480, 60, 100, 0, false, false, false)
	require.NotZero(t, id1)

	// overlapping note on the same key is rejected by default
	id2 := s.Create(240, 480, 60, 100, 0, false, false, false)
	assert.Zero(t, id2)

	// but allowed explicitly
	id3 := s.Create(240, 480, 60, 100, 0, false, false, true)
	assert.NotZero(t, id3)

	// a different key never conflicts
	id4 := s.Create(240, 480, 61, 100, 0, false, false, false)
	assert.NotZero(t, id4)
}

func TestNoteStoreMoveClampsAndRejectsOverlap(t *testing.T) {
	s := NewNoteStore(0)
	id1 := s.Create(480, 480, 60, 100, 0, false, false, false)
	id2 := s.Create(0, 480, 60, 100, 0, false, false, false)

	// moving id1 left onto id2 is rejected; id1 stays put
	assert.False(t, s.Move(id1, -480, 0, false, false))
	n1, _ := s.FindById(id1)
	assert.Equal(t, Tick(480), n1.Tick)

	// moving past tick 0 clamps to 0
	assert.True(t, s.Move(id2, -100, 0, false, true))
	n2, _ := s.FindById(id2)
	assert.Equal(t, Tick(0), n2.Tick)

	// key clamps to [0,127]
	assert.True(t, s.Move(id2, 0, -200, false, true))
	n2, _ = s.FindById(id2)
	assert.Equal(t, MidiKey(0), n2.Key)
}

func TestNoteStoreUndoRedo(t *testing.T) {
	s := NewNoteStore(0)
	id := s.Create(0, 480, 60, 100, 0, false, true, false)
	require.NotZero(t, id)
	assert.Equal(t, 1, s.Len())

	require.True(t, s.Remove(id, true))
	assert.Equal(t, 0, s.Len())

	require.True(t, s.Undo())
	assert.Equal(t, 1, s.Len())

	require.True(t, s.Undo())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Undo())

	require.True(t, s.Redo())
	assert.Equal(t, 1, s.Len())
}

func TestNoteStoreUndoBoundedByMaxLevels(t *testing.T) {
	s := NewNoteStore(2)
	var last NoteId
	for i := 0; i < 5; i++ {
		last = s.Create(Tick(i*1000), 480, 60, 100, 0, false, true, true)
	}
	_ = last

	undone := 0
	for s.Undo() {
		undone++
	}
	assert.Equal(t, 2, undone)
}

func TestNoteStoreSelection(t *testing.T) {
	s := NewNoteStore(0)
	id1 := s.Create(0, 480, 60, 100, 0, false, false, false)
	id2 := s.Create(0, 480, 61, 100, 0, false, false, false)

	require.True(t, s.Select(id1, false))
	assert.True(t, s.IsSelected(id1))
	assert.False(t, s.IsSelected(id2))

	require.True(t, s.Select(id2, true))
	assert.True(t, s.IsSelected(id1))
	assert.True(t, s.IsSelected(id2))

	s.Clear()
	assert.False(t, s.IsSelected(id1))
	assert.False(t, s.IsSelected(id2))

	s.SelectAll()
	assert.ElementsMatch(t, []NoteId{id1, id2}, s.SelectedIds())
}

func TestNoteStoreNotesInRange(t *testing.T) {
	s := NewNoteStore(0)
	s.Create(0, 480, 60, 100, 0, false, false, false)
	s.Create(960, 480, 64, 100, 0, false, false, false)
	s.Create(2000, 480, 70, 100, 0, false, false, false)

	notes := s.NotesInRange(TickRange{Start: 0, End: 1000}, KeyRange{Low: 0, High: 127})
	assert.Len(t, notes, 2)

	notes = s.NotesInRange(TickRange{Start: 0, End: 1500}, KeyRange{Low: 60, High: 60})
	assert.Len(t, notes, 1)
}
