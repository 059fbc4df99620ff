package pianoroll

// CustomScrollbar is the horizontal scrollbar: a fixed screen-space track
// whose thumb geometry is derived from the explored world-X range, the
// viewport width, and the current scroll position. Thumb-edge drags are
// interpreted by the host as a horizontal zoom (see applyEdgeResize).
type CustomScrollbar struct {
	TrackWidth    float64
	ViewportWidth float64 // world-pixel viewport width (== screen width)
	ExploredMin   float64 // world-X
	ExploredMax   float64 // world-X
	ScrollPosition float64 // == viewport.X, world-X

	TicksPerBeat  int
	PixelsPerBeat float64 // current ppb, kept in sync by the owner each frame

	EdgeThreshold  float64 // pixel distance from a thumb edge to trigger edge-resize
	ClickThreshold float64 // pixel distance before a thumb body click becomes a drag

	// OnScroll is invoked with the new (unclamped) scroll position for body
	// drags and track page-scroll clicks.
	OnScroll func(newScrollPosition float64)
	// OnEdgeZoom is invoked with the new pixels-per-beat and the new
	// (unclamped) scroll position after an edge-resize gesture.
	OnEdgeZoom func(newPixelsPerBeat float64, newScrollPosition float64)
	// OnExploredRangeChanged re-expands the explored-area bounds after an
	// edge-resize so the new viewport lies within them at the same ratio.
	OnExploredRangeChanged func(min, max float64)
	// OnDoubleClickThumb fires when the host reports a double-click over
	// the thumb (used by the host to "fit to clip").
	OnDoubleClickThumb func()

	mouseDownOnThumb    bool
	dragging            bool
	dragOffsetInThumb   float64
	edgeSide            int // 0 none, -1 left, 1 right
}

const minThumbWidth = 8.0

// NewCustomScrollbar builds a scrollbar over a track of the given screen width.
func NewCustomScrollbar(trackWidth float64) *CustomScrollbar {
	return &CustomScrollbar{
		TrackWidth:     trackWidth,
		TicksPerBeat:   480,
		PixelsPerBeat:  60,
		EdgeThreshold:  6,
		ClickThreshold: 3,
	}
}

func (sb *CustomScrollbar) exploredSpan() float64 {
	return sb.ExploredMax - sb.ExploredMin
}

// ThumbWidth returns the current thumb width in track pixels.
func (sb *CustomScrollbar) ThumbWidth() float64 {
	span := sb.exploredSpan()
	if span <= 0 {
		return sb.TrackWidth
	}
	w := sb.TrackWidth * (sb.ViewportWidth / span)
	if w < minThumbWidth {
		w = minThumbWidth
	}
	if w > sb.TrackWidth {
		w = sb.TrackWidth
	}
	return w
}

// ThumbX returns the current thumb's left edge in track pixels.
func (sb *CustomScrollbar) ThumbX() float64 {
	span := sb.exploredSpan()
	avail := span - sb.ViewportWidth
	if avail <= 0 {
		return 0
	}
	frac := clampFloat((sb.ScrollPosition-sb.ExploredMin)/avail, 0, 1)
	return frac * (sb.TrackWidth - sb.ThumbWidth())
}

// OnMouseDown classifies a press against the thumb geometry: near an edge
// begins edge-resize, inside the body begins a pending click/drag, and
// outside the thumb (but in the track) page-scrolls by 0.9x the viewport.
func (sb *CustomScrollbar) OnMouseDown(x, y float64) {
	thumbX := sb.ThumbX()
	thumbW := sb.ThumbWidth()
	left, right := thumbX, thumbX+thumbW

	switch {
	case absF(x-left) <= sb.EdgeThreshold:
		sb.edgeSide = -1
	case absF(x-right) <= sb.EdgeThreshold:
		sb.edgeSide = 1
	case x >= left && x <= right:
		sb.mouseDownOnThumb = true
		sb.dragging = false
		sb.dragOffsetInThumb = x - thumbX
	default:
		sb.pageScroll(x, thumbX)
	}
}

func (sb *CustomScrollbar) pageScroll(clickX, thumbX float64) {
	delta := 0.9 * sb.ViewportWidth
	if clickX < thumbX {
		delta = -delta
	}
	if sb.OnScroll != nil {
		sb.OnScroll(sb.ScrollPosition + delta)
	}
}

// OnMouseMove advances whichever gesture OnMouseDown started.
func (sb *CustomScrollbar) OnMouseMove(x, y float64) {
	if sb.edgeSide != 0 {
		sb.applyEdgeResize(x)
		return
	}
	if sb.mouseDownOnThumb {
		if !sb.dragging && absF(x-(sb.ThumbX()+sb.dragOffsetInThumb)) > sb.ClickThreshold {
			sb.dragging = true
		}
		if sb.dragging {
			sb.applyBodyDrag(x)
		}
	}
}

func (sb *CustomScrollbar) applyBodyDrag(x float64) {
	thumbW := sb.ThumbWidth()
	avail := sb.TrackWidth - thumbW
	if avail <= 0 {
		return
	}
	targetThumbX := clampFloat(x-sb.dragOffsetInThumb, 0, avail)
	frac := targetThumbX / avail
	span := sb.exploredSpan()
	newScroll := sb.ExploredMin + frac*(span-sb.ViewportWidth)
	if sb.OnScroll != nil {
		sb.OnScroll(newScroll)
	}
}

// applyEdgeResize implements the §4.5 edge-resize-as-zoom math: the new
// pixels-per-beat is derived from the screen width, the thumb:track ratio,
// and the explored span measured in ticks; the viewport is then repositioned
// so the edge opposite the dragged one keeps its screen position, and the
// explored range is re-expanded to match the original thumb ratio.
func (sb *CustomScrollbar) applyEdgeResize(x float64) {
	if sb.TicksPerBeat <= 0 || sb.PixelsPerBeat <= 0 {
		return
	}
	trW := sb.TrackWidth
	thumbW := sb.ThumbWidth()
	if trW <= 0 || thumbW <= 0 {
		return
	}
	trRatio := thumbW / trW
	explSpanWorld := sb.exploredSpan()
	explTickSpan := explSpanWorld / sb.PixelsPerBeat * float64(sb.TicksPerBeat)
	if explTickSpan <= 0 {
		return
	}
	screenW := sb.ViewportWidth

	newPPB := clampFloat(screenW*float64(sb.TicksPerBeat)/(trRatio*explTickSpan), 10, 500)

	leftTick := sb.ScrollPosition / sb.PixelsPerBeat * float64(sb.TicksPerBeat)
	rightTick := (sb.ScrollPosition + sb.ViewportWidth) / sb.PixelsPerBeat * float64(sb.TicksPerBeat)

	var anchorTick float64
	var screenOffset float64 // anchor's world-X minus scroll position, preserved
	if sb.edgeSide == -1 {
		anchorTick = rightTick
		screenOffset = sb.ViewportWidth
	} else {
		anchorTick = leftTick
		screenOffset = 0
	}

	newAnchorWorld := anchorTick / float64(sb.TicksPerBeat) * newPPB
	newScrollPosition := newAnchorWorld - screenOffset

	if sb.OnEdgeZoom != nil {
		sb.OnEdgeZoom(newPPB, newScrollPosition)
	}

	exploredSpanWorldNew := sb.ViewportWidth / trRatio
	var newMin, newMax float64
	if sb.edgeSide == -1 {
		newMax = newAnchorWorld
		newMin = newMax - exploredSpanWorldNew
	} else {
		newMin = newAnchorWorld
		newMax = newMin + exploredSpanWorldNew
	}
	if sb.OnExploredRangeChanged != nil {
		sb.OnExploredRangeChanged(newMin, newMax)
	}

	sb.PixelsPerBeat = newPPB
	sb.ScrollPosition = newScrollPosition
	sb.ExploredMin = newMin
	sb.ExploredMax = newMax
}

// OnMouseUp ends whichever gesture is active.
func (sb *CustomScrollbar) OnMouseUp() {
	sb.edgeSide = 0
	sb.mouseDownOnThumb = false
	sb.dragging = false
}

// IsActive reports whether an edge-resize or body-drag is in progress.
func (sb *CustomScrollbar) IsActive() bool {
	return sb.edgeSide != 0 || sb.dragging
}

// DoubleClickThumb fires OnDoubleClickThumb if x falls within the thumb.
func (sb *CustomScrollbar) DoubleClickThumb(x float64) bool {
	thumbX := sb.ThumbX()
	thumbW := sb.ThumbWidth()
	if x < thumbX || x > thumbX+thumbW {
		return false
	}
	if sb.OnDoubleClickThumb != nil {
		sb.OnDoubleClickThumb()
	}
	return true
}

// FitToClip implements the scrollbar's double-click policy: ppb is set so
// clipLength fills the viewport width (clamped to [15,480]), the scroll
// position is set to the clip start, and the explored range is set to the
// clip's world range.
func (sb *CustomScrollbar) FitToClip(clipStart Tick, clipLength Duration) {
	if clipLength <= 0 || sb.ViewportWidth <= 0 || sb.TicksPerBeat <= 0 {
		return
	}
	ppb := sb.ViewportWidth / (float64(clipLength) / float64(sb.TicksPerBeat))
	ppb = clampFloat(ppb, 15, 480)

	startWorld := float64(clipStart) / float64(sb.TicksPerBeat) * ppb
	endWorld := float64(int64(clipStart)+int64(clipLength)) / float64(sb.TicksPerBeat) * ppb

	sb.PixelsPerBeat = ppb
	sb.ScrollPosition = startWorld
	sb.ExploredMin = startWorld
	sb.ExploredMax = endWorld

	if sb.OnEdgeZoom != nil {
		sb.OnEdgeZoom(ppb, startWorld)
	}
	if sb.OnExploredRangeChanged != nil {
		sb.OnExploredRangeChanged(startWorld, endWorld)
	}
}
