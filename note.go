package pianoroll

// Note is a single MIDI note event on the piano roll.
//
// Invariants, enforced at construction and on every mutation: Tick >= 0,
// Duration > 0, Key in [0,127], Velocity in [0,127], Channel in [0,15].
type Note struct {
	Id       NoteId
	Tick     Tick
	Duration Duration
	Key      MidiKey
	Velocity Velocity
	Channel  Channel
	Selected bool
}

// EndTick returns Tick + Duration, the exclusive end of the note's interval.
func (n Note) EndTick() Tick {
	return n.Tick + Tick(n.Duration)
}

// Overlaps reports whether n and o share a key and their [Tick, EndTick)
// intervals intersect.
func (n Note) Overlaps(o Note) bool {
	if n.Key != o.Key {
		return false
	}
	return n.Tick < o.EndTick() && o.Tick < n.EndTick()
}

// ContainsTick reports whether t falls within [Tick, EndTick).
func (n Note) ContainsTick(t Tick) bool {
	return t >= n.Tick && t < n.EndTick()
}

// valid reports whether the note's fields satisfy the documented invariants.
// It does not check Id, which the store assigns.
func (n Note) valid() bool {
	if n.Tick < 0 {
		return false
	}
	if n.Duration <= 0 {
		return false
	}
	if n.Key < MinMidiKey || n.Key > MaxMidiKey {
		return false
	}
	if n.Velocity < MinVelocity || n.Velocity > MaxVelocity {
		return false
	}
	if n.Channel < MinChannel || n.Channel > MaxChannel {
		return false
	}
	return true
}
