// Package midiexport converts a NoteStore and ControlLane into a flat,
// time-ordered list of gitlab.com/gomidi/midi/v2 messages — Note-On/Note-Off
// pairs and Control-Change events — for a host to feed to its own transport
// or write to a standard MIDI file. It never opens a port: I/O is entirely
// the host's responsibility.
package midiexport

import (
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/gopianoroll/pianoroll"
)

// TimedMessage pairs a gomidi.Message with the absolute tick it fires at.
type TimedMessage struct {
	Tick    pianoroll.Tick
	Message gomidi.Message
}

// Export converts every note in store and every point in lane into a
// time-ordered message list. A note at tick T with duration D produces a
// Note-On at T and a Note-Off at T+D; ties (same tick) are ordered Note-Off
// before Note-On so a note ending exactly when another starts doesn't get
// clipped by running status on a naive player.
func Export(store *pianoroll.NoteStore, lane *pianoroll.ControlLane) []TimedMessage {
	var out []TimedMessage

	for _, n := range store.All() {
		ch := uint8(n.Channel)
		out = append(out, TimedMessage{Tick: n.Tick, Message: gomidi.NoteOn(ch, uint8(n.Key), uint8(n.Velocity))})
		out = append(out, TimedMessage{Tick: n.EndTick(), Message: gomidi.NoteOff(ch, uint8(n.Key))})
	}

	if lane != nil {
		for _, p := range lane.All() {
			out = append(out, TimedMessage{Tick: p.Tick, Message: gomidi.ControlChange(0, uint8(lane.CCNumber), uint8(p.Value))})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tick != out[j].Tick {
			return out[i].Tick < out[j].Tick
		}
		return isNoteOff(out[i].Message) && !isNoteOff(out[j].Message)
	})

	return out
}

func isNoteOff(msg gomidi.Message) bool {
	var ch, note, vel uint8
	if msg.GetNoteOff(&ch, &note, &vel) {
		return true
	}
	if msg.GetNoteOn(&ch, &note, &vel) && vel == 0 {
		return true
	}
	return false
}
