package pianoroll

// pointerMode is the PointerController's current gesture.
type pointerMode int

const (
	pointerIdle pointerMode = iota
	pointerPendingDrag // button down on a note, threshold not yet exceeded
	pointerDragging
	pointerResizing
	pointerRectSelecting
)

const dragThresholdPx = 3.0
const edgeHitThresholdPx = 6.0
const minNoteLengthTicks = 10

// rectSelectMode records which modifier was held when a rectangle-select
// gesture started, fixing the set-algebra applied against the gesture's
// initial-selection snapshot on every subsequent move.
type rectSelectMode int

const (
	rectReplace  rectSelectMode = iota // plain drag: result = notes in rect
	rectUnion                          // ctrl: initial ∪ in-rect
	rectSymDiff                        // shift: initial △ in-rect
	rectSubtract                       // alt: initial \ in-rect
)

// dragOrigin snapshots a note's state at the start of a drag or resize, so
// deltas and overlap tests are computed against the pre-gesture position.
type dragOrigin struct {
	id   NoteId
	tick Tick
	key  MidiKey
}

// PointerController implements the piano-roll's mouse-gesture state machine:
// click/shift/ctrl selection set-algebra, group drag with relative-offset
// preservation, ctrl-drag duplication, anchor-only edge resize, double-click
// create/delete, and rectangle (marquee) selection.
type PointerController struct {
	Store  *NoteStore
	Coords *CoordinateSystem
	Grid   *GridSnap

	// DefaultNoteDuration is the duration used for double-click note
	// creation; it is updated ("learned") whenever a note is resized.
	DefaultNoteDuration Duration
	DefaultVelocity     Velocity
	DefaultChannel      Channel

	mode pointerMode

	origins      []dragOrigin
	anchorId     NoteId
	ctrlHeld     bool
	ctrlDuplicate bool // becomes true once a ctrl-held drag crosses the threshold
	pendingToggleId NoteId

	resizeId           NoteId
	resizeEdge         int // -1 left, 1 right; which edge was grabbed
	resizeOrigTick     Tick
	resizeOrigDuration Duration

	dragStartWorldX, dragStartWorldY float64

	rectStart    Point
	rectMode     rectSelectMode
	rectInitial  []NoteId // selection snapshot taken when the rectangle gesture started
}

// NewPointerController wires a controller to the given model objects.
func NewPointerController(store *NoteStore, coords *CoordinateSystem, grid *GridSnap) *PointerController {
	return &PointerController{
		Store:               store,
		Coords:              coords,
		Grid:                grid,
		DefaultNoteDuration: Duration(480), // one beat at TicksPerBeat=480
		DefaultVelocity:     100,
		DefaultChannel:      0,
	}
}

func (p *PointerController) hitTest(worldX, worldY float64) (Note, bool) {
	tick := p.Coords.WorldToTick(worldX)
	key := MidiKey(clampInt(p.Coords.WorldYToKey(worldY), MinMidiKey, MaxMidiKey))
	return p.Store.NoteAt(tick, key)
}

// noteEdge reports whether worldX falls within the resize threshold of n's
// left or right edge, given the current ppb. -1 left, 1 right, 0 neither.
func (p *PointerController) noteEdge(n Note, worldX float64) int {
	left := p.Coords.TickToWorld(n.Tick)
	right := p.Coords.TickToWorld(n.EndTick())
	if absF(worldX-left) <= edgeHitThresholdPx {
		return -1
	}
	if absF(worldX-right) <= edgeHitThresholdPx {
		return 1
	}
	return 0
}

func (p *PointerController) snapTickIfEnabled(t Tick) Tick {
	if p.Grid == nil || p.Grid.Mode == SnapOff {
		return t
	}
	return p.Grid.SnapTick(t, nil)
}

// OnMouseDown begins a gesture at (worldX, worldY). doubleClick triggers
// create/delete instead of selection.
func (p *PointerController) OnMouseDown(worldX, worldY float64, ctrl, shift, alt, doubleClick bool) {
	if doubleClick {
		p.handleDoubleClick(worldX, worldY)
		return
	}

	hit, ok := p.hitTest(worldX, worldY)
	if !ok {
		p.mode = pointerRectSelecting
		p.rectStart = Point{X: worldX, Y: worldY}
		p.rectInitial = append(p.rectInitial[:0], p.Store.SelectedIds()...)
		switch {
		case shift:
			p.rectMode = rectSymDiff
		case ctrl:
			p.rectMode = rectUnion
		case alt:
			p.rectMode = rectSubtract
		default:
			p.rectMode = rectReplace
			p.Store.Clear()
		}
		return
	}

	p.pendingToggleId = 0
	switch {
	case ctrl:
		if p.Store.IsSelected(hit.Id) {
			p.pendingToggleId = hit.Id // deferred: removed only if no drag follows
		} else {
			p.Store.Select(hit.Id, true)
		}
	case shift:
		p.Store.Select(hit.Id, true)
	default:
		if !p.Store.IsSelected(hit.Id) {
			p.Store.Select(hit.Id, false)
		}
	}

	if edge := p.noteEdge(hit, worldX); edge != 0 {
		p.mode = pointerResizing
		p.resizeId = hit.Id
		p.resizeEdge = edge
		p.resizeOrigTick = hit.Tick
		p.resizeOrigDuration = hit.Duration
		p.anchorId = hit.Id
		p.Store.SnapshotForUndo()
		return
	}

	p.ctrlHeld = ctrl
	p.ctrlDuplicate = false
	p.anchorId = hit.Id
	p.dragStartWorldX, p.dragStartWorldY = worldX, worldY
	p.mode = pointerPendingDrag
	p.captureOrigins()
}

func (p *PointerController) captureOrigins() {
	ids := p.Store.SelectedIds()
	p.origins = p.origins[:0]
	for _, id := range ids {
		if n, ok := p.Store.FindById(id); ok {
			p.origins = append(p.origins, dragOrigin{id: id, tick: n.Tick, key: n.Key})
		}
	}
}

func (p *PointerController) handleDoubleClick(worldX, worldY float64) {
	if hit, ok := p.hitTest(worldX, worldY); ok {
		p.Store.Remove(hit.Id, true)
		return
	}
	tick := p.snapTickIfEnabled(p.Coords.WorldToTick(worldX))
	key := MidiKey(clampInt(p.Coords.WorldYToKey(worldY), MinMidiKey, MaxMidiKey))
	p.Store.Create(tick, p.DefaultNoteDuration, key, p.DefaultVelocity, p.DefaultChannel, true, true, false)
}

// OnMouseMove advances the active gesture.
func (p *PointerController) OnMouseMove(worldX, worldY float64) {
	switch p.mode {
	case pointerPendingDrag:
		if absF(worldX-p.dragStartWorldX) > dragThresholdPx || absF(worldY-p.dragStartWorldY) > dragThresholdPx {
			p.mode = pointerDragging
			p.Store.SnapshotForUndo()
			if p.ctrlHeld {
				p.beginDuplicate()
			}
			p.pendingToggleId = 0 // a drag occurred: the deferred toggle never applies
		}
		if p.mode == pointerDragging {
			p.applyDrag(worldX, worldY)
		}

	case pointerDragging:
		p.applyDrag(worldX, worldY)

	case pointerResizing:
		n, ok := p.Store.FindById(p.resizeId)
		if !ok {
			return
		}
		edgeTick := p.snapTickIfEnabled(p.Coords.WorldToTick(worldX))

		if p.resizeEdge < 0 {
			// left edge: the right edge stays anchored at the note's
			// original end tick. Move the start, then resize to match.
			endTick := p.resizeOrigTick + Tick(p.resizeOrigDuration)
			newTick := edgeTick
			if newTick > endTick-Tick(minNoteLengthTicks) {
				newTick = endTick - Tick(minNoteLengthTicks)
			}
			if p.Store.Move(p.resizeId, newTick-n.Tick, 0, false, true) {
				n, _ = p.Store.FindById(p.resizeId)
			}
			newDuration := Duration(endTick - n.Tick)
			if newDuration < minNoteLengthTicks {
				newDuration = minNoteLengthTicks
			}
			if p.Store.Resize(p.resizeId, newDuration, false, false) {
				p.DefaultNoteDuration = newDuration
			}
		} else {
			newDuration := Duration(edgeTick - p.resizeOrigTick)
			if newDuration < minNoteLengthTicks {
				newDuration = minNoteLengthTicks
			}
			if p.Store.Resize(p.resizeId, newDuration, false, false) {
				p.DefaultNoteDuration = newDuration
			}
		}

	case pointerRectSelecting:
		// selection is recomputed on every move from the live rectangle
		p.applyRectSelect(worldX, worldY)
	}
}

// beginDuplicate replaces the dragged set with freshly created copies of the
// originals (the originals are left in place), so the drag moves the copies.
func (p *PointerController) beginDuplicate() {
	p.ctrlDuplicate = true
	newOrigins := make([]dragOrigin, 0, len(p.origins))
	var newAnchor NoteId
	for _, o := range p.origins {
		n, ok := p.Store.FindById(o.id)
		if !ok {
			continue
		}
		newId := p.Store.Create(n.Tick, n.Duration, n.Key, n.Velocity, n.Channel, true, false, true)
		if newId == 0 {
			continue
		}
		newOrigins = append(newOrigins, dragOrigin{id: newId, tick: n.Tick, key: n.Key})
		if o.id == p.anchorId {
			newAnchor = newId
		}
	}
	// the originals must no longer be part of the selection being dragged
	for _, o := range p.origins {
		p.Store.Deselect(o.id)
	}
	for _, no := range newOrigins {
		p.Store.Select(no.id, true)
	}
	p.origins = newOrigins
	if newAnchor != 0 {
		p.anchorId = newAnchor
	}
}

func (p *PointerController) applyDrag(worldX, worldY float64) {
	anchorOrigin, ok := p.findOrigin(p.anchorId)
	if !ok {
		return
	}
	rawTick := anchorOrigin.tick + (p.Coords.WorldToTick(worldX) - p.Coords.WorldToTick(p.dragStartWorldX))
	snappedAnchorTick := p.snapTickIfEnabled(rawTick)
	dTick := snappedAnchorTick - anchorOrigin.tick

	dKey := p.Coords.WorldYToKey(worldY) - p.Coords.WorldYToKey(p.dragStartWorldY)

	for _, o := range p.origins {
		n, ok := p.Store.FindById(o.id)
		if !ok {
			continue
		}
		targetTick := o.tick + dTick
		targetKey := MidiKey(clampInt(int(o.key)+dKey, MinMidiKey, MaxMidiKey))
		p.Store.Move(n.Id, targetTick-n.Tick, int(targetKey)-int(n.Key), false, false)
	}
}

func (p *PointerController) findOrigin(id NoteId) (dragOrigin, bool) {
	for _, o := range p.origins {
		if o.id == id {
			return o, true
		}
	}
	return dragOrigin{}, false
}

func (p *PointerController) applyRectSelect(worldX, worldY float64) {
	ticks := TickRange{Start: p.Coords.WorldToTick(minF(p.rectStart.X, worldX)), End: p.Coords.WorldToTick(maxF(p.rectStart.X, worldX)) + 1}
	lowKey := p.Coords.WorldYToKey(maxF(p.rectStart.Y, worldY))
	highKey := p.Coords.WorldYToKey(minF(p.rectStart.Y, worldY))
	keys := KeyRange{
		Low:  MidiKey(clampInt(lowKey, MinMidiKey, MaxMidiKey)),
		High: MidiKey(clampInt(highKey, MinMidiKey, MaxMidiKey)),
	}

	inRect := make(map[NoteId]struct{})
	for _, n := range p.Store.NotesInRange(ticks, keys) {
		inRect[n.Id] = struct{}{}
	}
	initial := make(map[NoteId]struct{}, len(p.rectInitial))
	for _, id := range p.rectInitial {
		initial[id] = struct{}{}
	}

	var result map[NoteId]struct{}
	switch p.rectMode {
	case rectUnion:
		result = unionNoteSets(initial, inRect)
	case rectSymDiff:
		result = symDiffNoteSets(initial, inRect)
	case rectSubtract:
		result = subtractNoteSets(initial, inRect)
	default:
		result = inRect
	}

	p.Store.Clear()
	for id := range result {
		p.Store.Select(id, true)
	}
}

func unionNoteSets(a, b map[NoteId]struct{}) map[NoteId]struct{} {
	out := make(map[NoteId]struct{}, len(a)+len(b))
	for id := range a {
		out[id] = struct{}{}
	}
	for id := range b {
		out[id] = struct{}{}
	}
	return out
}

func symDiffNoteSets(a, b map[NoteId]struct{}) map[NoteId]struct{} {
	out := make(map[NoteId]struct{})
	for id := range a {
		if _, inB := b[id]; !inB {
			out[id] = struct{}{}
		}
	}
	for id := range b {
		if _, inA := a[id]; !inA {
			out[id] = struct{}{}
		}
	}
	return out
}

func subtractNoteSets(a, b map[NoteId]struct{}) map[NoteId]struct{} {
	out := make(map[NoteId]struct{})
	for id := range a {
		if _, inB := b[id]; !inB {
			out[id] = struct{}{}
		}
	}
	return out
}

// OnMouseUp finalizes whichever gesture was active.
func (p *PointerController) OnMouseUp() {
	switch p.mode {
	case pointerPendingDrag:
		// button released before the drag threshold: apply the deferred
		// ctrl-click toggle, if any.
		if p.pendingToggleId != 0 {
			p.Store.Deselect(p.pendingToggleId)
		}
	case pointerDragging, pointerResizing, pointerRectSelecting:
	}
	p.mode = pointerIdle
	p.pendingToggleId = 0
	p.origins = p.origins[:0]
	p.ctrlDuplicate = false
	p.rectInitial = p.rectInitial[:0]
}

// IsActive reports whether a gesture is in progress.
func (p *PointerController) IsActive() bool {
	return p.mode != pointerIdle
}

// IsRectSelecting reports whether a marquee-selection drag is in progress,
// for the host to drive edge-scrolling while it's active.
func (p *PointerController) IsRectSelecting() bool {
	return p.mode == pointerRectSelecting
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
