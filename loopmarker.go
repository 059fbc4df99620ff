package pianoroll

// LoopMarker is the draggable loop region rendered in the ruler band. Its
// Left/Right bounds are world-X pixel coordinates; Top/Bottom are the local
// (screen-space) extent of the ruler band, supplied by the owner at
// construction since the ruler band doesn't scroll vertically.
type LoopMarker struct {
	rect *DraggableRect

	TicksPerBeat int
	Enabled      bool
}

// NewLoopMarker builds a disabled loop marker spanning one beat at tick 0.
func NewLoopMarker(ticksPerBeat int, rulerTop, rulerBottom float64) *LoopMarker {
	const defaultPPB = 60.0
	r := NewDraggableRect(Rect{Left: 0, Right: defaultPPB, Top: rulerTop, Bottom: rulerBottom})
	r.MinWidth = defaultPPB / 4
	lm := &LoopMarker{rect: r, TicksPerBeat: ticksPerBeat}
	lm.installSnap()
	return lm
}

func (lm *LoopMarker) installSnap() {
	lm.rect.SnapEnabled = true
	lm.rect.SnapValue = func(worldX float64) float64 {
		quarter := lm.rect.MinWidth // one quarter beat in world pixels, kept current by SetPixelsPerBeat
		if quarter <= 0 {
			return worldX
		}
		return roundToNearestF(worldX, quarter)
	}
}

func roundToNearestF(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	n := v / step
	if n >= 0 {
		return float64(int64(n+0.5)) * step
	}
	return -float64(int64(-n+0.5)) * step
}

// StartTick returns the loop region's start, in ticks, given ppb to convert
// from the marker's world-X bounds.
func (lm *LoopMarker) StartTick(ppb float64) Tick {
	return Tick(lm.rect.Bounds.Left / ppb * float64(lm.TicksPerBeat))
}

// EndTick returns the loop region's end, in ticks.
func (lm *LoopMarker) EndTick(ppb float64) Tick {
	return Tick(lm.rect.Bounds.Right / ppb * float64(lm.TicksPerBeat))
}

// SetRange sets the marker's bounds from a tick range, at the given ppb.
func (lm *LoopMarker) SetRange(start, end Tick, ppb float64) {
	if end <= start {
		return
	}
	left := float64(start) / float64(lm.TicksPerBeat) * ppb
	right := float64(end) / float64(lm.TicksPerBeat) * ppb
	lm.rect.Bounds = Rect{Left: left, Right: right, Top: lm.rect.Bounds.Top, Bottom: lm.rect.Bounds.Bottom}
	lm.rect.PreviewBounds = lm.rect.Bounds
	lm.SetPixelsPerBeat(ppb)
}

// SetPixelsPerBeat updates the minimum-width threshold (one quarter beat, in
// world pixels) for the current zoom; call on every ppb change.
func (lm *LoopMarker) SetPixelsPerBeat(ppb float64) {
	lm.rect.MinWidth = ppb / 4
}

// HoverTest, UpdateHover, OnMouseDown, OnMouseMove, OnMouseUp, IsActive
// delegate to the underlying DraggableRect, operating in world-X/local-Y
// coordinates already converted by the caller.
func (lm *LoopMarker) HoverTest(worldX, localY float64) DragState { return lm.rect.HoverTest(worldX, localY) }
func (lm *LoopMarker) UpdateHover(worldX, localY float64)         { lm.rect.UpdateHover(worldX, localY) }
func (lm *LoopMarker) OnMouseDown(worldX, localY float64) bool    { return lm.rect.OnMouseDown(worldX, localY) }
func (lm *LoopMarker) OnMouseMove(worldX, localY float64)         { lm.rect.OnMouseMove(worldX, localY) }
func (lm *LoopMarker) OnMouseUp()                                 { lm.rect.OnMouseUp() }
func (lm *LoopMarker) IsActive() bool                             { return lm.rect.IsActive() }

// Bounds returns the marker's current world-X/local-Y rect.
func (lm *LoopMarker) Bounds() Rect { return lm.rect.Bounds }

// OnFinalize registers a callback invoked with the marker's final bounds
// whenever a drag or resize gesture completes.
func (lm *LoopMarker) OnFinalize(fn func(Rect)) {
	lm.rect.OnFinalize = fn
}
