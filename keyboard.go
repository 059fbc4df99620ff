package pianoroll

// clipboardNote is a clipboard entry: a note's editable fields, stored at
// its original absolute tick. PasteAt derives the offset from clipboardMin
// on demand so the clipboard can restore either its original positions or a
// new anchor point.
type clipboardNote struct {
	tick     Tick
	duration Duration
	key      MidiKey
	velocity Velocity
	channel  Channel
}

// KeyboardController implements the piano-roll's keyboard shortcuts:
// select-all, delete, copy/paste, undo/redo, and arrow-key transpose/shift.
type KeyboardController struct {
	Store *NoteStore
	Grid  *GridSnap

	clipboard    []clipboardNote
	clipboardMin Tick // earliest tick among clipboard notes, used by PasteAt
}

// NewKeyboardController wires a controller to the given model objects.
func NewKeyboardController(store *NoteStore, grid *GridSnap) *KeyboardController {
	return &KeyboardController{Store: store, Grid: grid}
}

// SelectAll selects every note.
func (k *KeyboardController) SelectAll() {
	k.Store.SelectAll()
}

// DeleteSelected removes every selected note in a single undo step.
func (k *KeyboardController) DeleteSelected() {
	ids := k.Store.SelectedIds()
	if len(ids) == 0 {
		return
	}
	k.Store.SnapshotForUndo()
	for _, id := range ids {
		k.Store.Remove(id, false)
	}
}

// Copy snapshots the selected notes' editable fields into the clipboard,
// at their absolute ticks, along with the earliest tick among them.
func (k *KeyboardController) Copy() {
	ids := k.Store.SelectedIds()
	if len(ids) == 0 {
		return
	}
	notes := make([]Note, 0, len(ids))
	minTick := Tick(0)
	for i, id := range ids {
		n, ok := k.Store.FindById(id)
		if !ok {
			continue
		}
		notes = append(notes, n)
		if i == 0 || n.Tick < minTick {
			minTick = n.Tick
		}
	}
	k.clipboard = k.clipboard[:0]
	k.clipboardMin = minTick
	for _, n := range notes {
		k.clipboard = append(k.clipboard, clipboardNote{
			tick:     n.Tick,
			duration: n.Duration,
			key:      n.Key,
			velocity: n.Velocity,
			channel:  n.Channel,
		})
	}
}

// Paste creates a copy of every clipboard note at its original absolute
// tick, replacing the current selection with the newly created notes, in a
// single undo step. Notes that would overlap an existing note on their key
// are silently skipped.
func (k *KeyboardController) Paste() {
	k.pasteAtOffset(0)
}

// PasteAt creates a copy of every clipboard note offset so the earliest
// aligns with pasteTick, for host-driven "paste at cursor/playhead" use.
func (k *KeyboardController) PasteAt(pasteTick Tick) {
	if len(k.clipboard) == 0 {
		return
	}
	k.pasteAtOffset(pasteTick - k.clipboardMin)
}

func (k *KeyboardController) pasteAtOffset(offset Tick) {
	if len(k.clipboard) == 0 {
		return
	}
	k.Store.SnapshotForUndo()
	k.Store.Clear()
	for _, c := range k.clipboard {
		id := k.Store.Create(c.tick+offset, c.duration, c.key, c.velocity, c.channel, true, false, false)
		_ = id
	}
}

// Undo/Redo delegate directly to the NoteStore.
func (k *KeyboardController) Undo() bool { return k.Store.Undo() }
func (k *KeyboardController) Redo() bool { return k.Store.Redo() }

// TransposeSelected shifts every selected note's key by semitones, applying
// the group edit only if every note would stay within [0,127]; a single
// undo step covers the whole group.
func (k *KeyboardController) TransposeSelected(semitones int) bool {
	ids := k.Store.SelectedIds()
	if len(ids) == 0 || semitones == 0 {
		return false
	}
	for _, id := range ids {
		n, ok := k.Store.FindById(id)
		if !ok {
			continue
		}
		newKey := int(n.Key) + semitones
		if newKey < MinMidiKey || newKey > MaxMidiKey {
			return false
		}
	}
	k.Store.SnapshotForUndo()
	for _, id := range ids {
		k.Store.Move(id, 0, semitones, false, true)
	}
	return true
}

// ShiftSelected shifts every selected note's tick by dTick, rejecting the
// whole group edit (returning false) if any note would land before tick 0,
// so a group edit never partially applies. The caller picks the step (see
// ArrowStepTicks for the fine vs. snap-division choice) and passes it in as
// dTick.
func (k *KeyboardController) ShiftSelected(dTick Tick) bool {
	ids := k.Store.SelectedIds()
	if len(ids) == 0 || dTick == 0 {
		return false
	}
	for _, id := range ids {
		n, ok := k.Store.FindById(id)
		if !ok {
			continue
		}
		if n.Tick+dTick < 0 {
			return false
		}
	}
	k.Store.SnapshotForUndo()
	for _, id := range ids {
		k.Store.Move(id, dTick, 0, false, true)
	}
	return true
}

// ArrowStepTicks returns the tick delta for an arrow-key time-shift: the
// current snap division, or a 1/128-note fine step when fine is true.
func (k *KeyboardController) ArrowStepTicks(fine bool) Tick {
	if fine {
		step := k.Grid.TicksPerBeat / 32
		if step < 1 {
			step = 1
		}
		return Tick(step)
	}
	return k.Grid.CurrentSnapDivisionTicks()
}
