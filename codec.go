package pianoroll

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatVersion is the line-based serialization format's version tag.
const FormatVersion = "PPR1"

// Encode writes store's notes and every lane's points as a PPR1 document: a
// version line, one "N tick duration key velocity channel" line per note,
// and one "C ccNumber tick value" line per control point. Note ids are not
// preserved — a round trip through Encode/Decode assigns fresh ids.
func Encode(w io.Writer, store *NoteStore, lanes ...*ControlLane) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, FormatVersion); err != nil {
		return err
	}
	for _, n := range store.All() {
		if _, err := fmt.Fprintf(bw, "N %d %d %d %d %d\n", n.Tick, n.Duration, n.Key, n.Velocity, n.Channel); err != nil {
			return err
		}
	}
	for _, lane := range lanes {
		if lane == nil {
			continue
		}
		for _, p := range lane.All() {
			if _, err := fmt.Fprintf(bw, "C %d %d %d\n", lane.CCNumber, p.Tick, p.Value); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Decode reads a PPR1 document into a fresh NoteStore and a set of
// ControlLanes bucketed by cc_number, in the order each cc_number was first
// encountered. Unknown line types, a missing/mismatched version tag, and
// malformed N/C lines are skipped rather than treated as errors — a corrupt
// trailing line should not lose an otherwise-valid file.
func Decode(r io.Reader) (*NoteStore, []*ControlLane, error) {
	store := NewNoteStore(0)
	lanes := map[int]*ControlLane{}
	var order []int

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if line != FormatVersion {
				// lenient: tolerate a missing/different version tag by
				// reprocessing this line as data below.
			} else {
				continue
			}
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "N":
			decodeNoteLine(store, fields)
		case "C":
			decodeControlLine(lanes, &order, fields)
		default:
			// unknown line type: skip
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	out := make([]*ControlLane, 0, len(order))
	for _, ccNumber := range order {
		out = append(out, lanes[ccNumber])
	}
	if len(out) == 0 {
		out = append(out, NewControlLane(1))
	}
	return store, out, nil
}

func decodeNoteLine(store *NoteStore, fields []string) {
	if len(fields) != 6 {
		return
	}
	tick, err1 := strconv.ParseInt(fields[1], 10, 64)
	duration, err2 := strconv.ParseInt(fields[2], 10, 64)
	key, err3 := strconv.Atoi(fields[3])
	velocity, err4 := strconv.Atoi(fields[4])
	channel, err5 := strconv.Atoi(fields[5])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return
	}
	store.Create(Tick(tick), Duration(duration), MidiKey(key), Velocity(velocity), Channel(channel), false, false, true)
}

// decodeControlLine parses one "C ccNumber tick value" line and applies it
// to lanes, bucketed by ccNumber; order records each ccNumber's first
// encounter so Decode can return lanes in encounter order.
func decodeControlLine(lanes map[int]*ControlLane, order *[]int, fields []string) {
	if len(fields) != 4 {
		return
	}
	ccNumber, err1 := strconv.Atoi(fields[1])
	tick, err2 := strconv.ParseInt(fields[2], 10, 64)
	value, err3 := strconv.Atoi(fields[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}
	lane, ok := lanes[ccNumber]
	if !ok {
		lane = NewControlLane(ccNumber)
		lanes[ccNumber] = lane
		*order = append(*order, ccNumber)
	}
	lane.Set(Tick(tick), value)
}
