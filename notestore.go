package pianoroll

// DefaultUndoLevels is the default bound on the undo/redo stacks.
const DefaultUndoLevels = 100

// TickRange is an inclusive-exclusive range of ticks, [Start, End).
type TickRange struct {
	Start Tick
	End   Tick
}

// KeyRange is an inclusive range of MIDI keys, [Low, High].
type KeyRange struct {
	Low  MidiKey
	High MidiKey
}

// NoteStore owns a sequence of notes, keeping an id->position index, a
// per-key position index, a selection set, and bounded undo/redo history.
//
// Not safe for concurrent use; every operation must be called from the
// widget's single owning goroutine (see §5 of the design: no internal
// locking, no shared mutable state across threads).
type NoteStore struct {
	notes    []Note
	idToPos  map[NoteId]int
	keyToPos map[MidiKey][]int
	selected map[NoteId]struct{}
	nextId   NoteId

	undoStack [][]Note
	redoStack [][]Note
	maxLevels int
}

// NewNoteStore creates an empty store. maxLevels <= 0 uses DefaultUndoLevels.
func NewNoteStore(maxLevels int) *NoteStore {
	if maxLevels <= 0 {
		maxLevels = DefaultUndoLevels
	}
	s := &NoteStore{
		idToPos:  make(map[NoteId]int),
		keyToPos: make(map[MidiKey][]int),
		selected: make(map[NoteId]struct{}),
		maxLevels: maxLevels,
	}
	return s
}

func (s *NoteStore) rebuildIndex() {
	s.idToPos = make(map[NoteId]int, len(s.notes))
	s.keyToPos = make(map[MidiKey][]int, len(s.keyToPos))
	for i, n := range s.notes {
		s.idToPos[n.Id] = i
		s.keyToPos[n.Key] = append(s.keyToPos[n.Key], i)
	}
}

func (s *NoteStore) snapshot() []Note {
	cp := make([]Note, len(s.notes))
	copy(cp, s.notes)
	return cp
}

func (s *NoteStore) restore(snap []Note) {
	s.notes = make([]Note, len(snap))
	copy(s.notes, snap)
	s.rebuildIndex()
	s.selected = make(map[NoteId]struct{})
	for _, n := range s.notes {
		if n.Selected {
			s.selected[n.Id] = struct{}{}
		}
	}
}

func (s *NoteStore) pushUndo() {
	s.undoStack = append(s.undoStack, s.snapshot())
	if len(s.undoStack) > s.maxLevels {
		s.undoStack = s.undoStack[len(s.undoStack)-s.maxLevels:]
	}
	s.redoStack = nil
}

// SnapshotForUndo explicitly pushes the current sequence onto the undo
// stack and clears the redo stack, for callers that want to wrap several
// subsequent non-recording mutations in a single undo step.
func (s *NoteStore) SnapshotForUndo() {
	s.pushUndo()
}

// Undo restores the previous snapshot, pushing the current state to the
// redo stack. Returns false if the undo stack is empty.
func (s *NoteStore) Undo() bool {
	if len(s.undoStack) == 0 {
		return false
	}
	cur := s.snapshot()
	prev := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.redoStack = append(s.redoStack, cur)
	s.restore(prev)
	return true
}

// Redo is the mirror of Undo. Returns false if the redo stack is empty.
func (s *NoteStore) Redo() bool {
	if len(s.redoStack) == 0 {
		return false
	}
	cur := s.snapshot()
	next := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.undoStack = append(s.undoStack, cur)
	if len(s.undoStack) > s.maxLevels {
		s.undoStack = s.undoStack[len(s.undoStack)-s.maxLevels:]
	}
	s.restore(next)
	return true
}

// hasOverlap reports whether candidate would overlap an existing note on its
// key, excluding the note identified by excludeId (used when testing a move
// or resize of an existing note against the rest of the store).
func (s *NoteStore) hasOverlap(candidate Note, excludeId NoteId) bool {
	for _, pos := range s.keyToPos[candidate.Key] {
		other := s.notes[pos]
		if other.Id == excludeId {
			continue
		}
		if candidate.Overlaps(other) {
			return true
		}
	}
	return false
}

// Create validates and appends a note. Returns 0 without mutating the store
// if the fields are invalid or (when allowOverlap is false) the note would
// overlap an existing note on the same key.
func (s *NoteStore) Create(tick Tick, duration Duration, key MidiKey, velocity Velocity, channel Channel, selected bool, recordUndo bool, allowOverlap bool) NoteId {
	candidate := Note{
		Tick:     tick,
		Duration: duration,
		Key:      key,
		Velocity: velocity,
		Channel:  channel,
		Selected: selected,
	}
	if !candidate.valid() {
		return 0
	}
	if !allowOverlap && s.hasOverlap(candidate, 0) {
		return 0
	}
	if recordUndo {
		s.pushUndo()
	}
	s.nextId++
	candidate.Id = s.nextId
	s.notes = append(s.notes, candidate)
	if selected {
		s.selected[candidate.Id] = struct{}{}
	}
	s.rebuildIndex()
	return candidate.Id
}

// Remove deletes the note with the given id, rebuilding indices on success.
func (s *NoteStore) Remove(id NoteId, recordUndo bool) bool {
	pos, ok := s.idToPos[id]
	if !ok {
		return false
	}
	if recordUndo {
		s.pushUndo()
	}
	s.notes = append(s.notes[:pos], s.notes[pos+1:]...)
	delete(s.selected, id)
	s.rebuildIndex()
	return true
}

// Move shifts a note by (dTick, dKey), clamping the result tick to >= 0 and
// key to [0,127]. On overlap rejection the note is left untouched.
func (s *NoteStore) Move(id NoteId, dTick Tick, dKey int, recordUndo bool, allowOverlap bool) bool {
	pos, ok := s.idToPos[id]
	if !ok {
		return false
	}
	orig := s.notes[pos]
	newTick := orig.Tick + dTick
	if newTick < 0 {
		newTick = 0
	}
	newKey := MidiKey(clampInt(int(orig.Key)+dKey, MinMidiKey, MaxMidiKey))

	candidate := orig
	candidate.Tick = newTick
	candidate.Key = newKey

	if !allowOverlap && s.hasOverlap(candidate, id) {
		return false
	}
	if recordUndo {
		s.pushUndo()
	}
	s.notes[pos] = candidate
	s.rebuildIndex()
	return true
}

// Resize sets a note's duration. newDuration must be > 0.
func (s *NoteStore) Resize(id NoteId, newDuration Duration, recordUndo bool, allowOverlap bool) bool {
	if newDuration <= 0 {
		return false
	}
	pos, ok := s.idToPos[id]
	if !ok {
		return false
	}
	orig := s.notes[pos]
	candidate := orig
	candidate.Duration = newDuration

	if !allowOverlap && s.hasOverlap(candidate, id) {
		return false
	}
	if recordUndo {
		s.pushUndo()
	}
	s.notes[pos] = candidate
	return true
}

// Select adds id to the selection (replacing it, unless add is true).
// Returns false if id is not present.
func (s *NoteStore) Select(id NoteId, add bool) bool {
	pos, ok := s.idToPos[id]
	if !ok {
		return false
	}
	if !add {
		s.Clear()
	}
	s.notes[pos].Selected = true
	s.selected[id] = struct{}{}
	return true
}

// Deselect removes id from the selection. Returns false if id is not present.
func (s *NoteStore) Deselect(id NoteId) bool {
	pos, ok := s.idToPos[id]
	if !ok {
		return false
	}
	s.notes[pos].Selected = false
	delete(s.selected, id)
	return true
}

// Clear empties the selection.
func (s *NoteStore) Clear() {
	for id := range s.selected {
		if pos, ok := s.idToPos[id]; ok {
			s.notes[pos].Selected = false
		}
	}
	s.selected = make(map[NoteId]struct{})
}

// SelectAll selects every note in the store.
func (s *NoteStore) SelectAll() {
	for i := range s.notes {
		s.notes[i].Selected = true
		s.selected[s.notes[i].Id] = struct{}{}
	}
}

// IsSelected reports whether id is currently selected.
func (s *NoteStore) IsSelected(id NoteId) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectedIds returns the currently selected note ids, in no particular order.
func (s *NoteStore) SelectedIds() []NoteId {
	ids := make([]NoteId, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}

// FindById returns the note with the given id and true, or the zero Note
// and false.
func (s *NoteStore) FindById(id NoteId) (Note, bool) {
	pos, ok := s.idToPos[id]
	if !ok {
		return Note{}, false
	}
	return s.notes[pos], true
}

// NoteAt returns a note on the given key whose [Tick, EndTick) interval
// contains tick, or false if none does.
func (s *NoteStore) NoteAt(tick Tick, key MidiKey) (Note, bool) {
	for _, pos := range s.keyToPos[key] {
		n := s.notes[pos]
		if n.ContainsTick(tick) {
			return n, true
		}
	}
	return Note{}, false
}

// NotesInRange returns every note whose key lies in keys and whose interval
// intersects ticks.
func (s *NoteStore) NotesInRange(ticks TickRange, keys KeyRange) []Note {
	var out []Note
	for _, n := range s.notes {
		if n.Key < keys.Low || n.Key > keys.High {
			continue
		}
		if n.Tick < ticks.End && ticks.Start < n.EndTick() {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of notes currently in the store.
func (s *NoteStore) Len() int {
	return len(s.notes)
}

// All returns a copy of every note in storage order.
func (s *NoteStore) All() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}
