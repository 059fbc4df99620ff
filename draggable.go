package pianoroll

// DragState is the state of a DraggableRect's hover/drag/resize machine.
type DragState int

const (
	Idle DragState = iota
	HoveringBody
	HoveringLeftEdge
	HoveringRightEdge
	Dragging
	ResizingLeft
	ResizingRight
)

// Rect is a generic axis-aligned rectangle in whatever coordinate space the
// owner (LoopMarker: world-X mixed with local ruler-band Y) has already
// converted mouse coordinates into.
type Rect struct {
	Left, Right, Top, Bottom float64
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// DraggableRect is a small, composable hover/drag/resize state machine.
// Coordinate conversion and specialised behavior (LoopMarker) live in the
// owner; this type only tracks bounds and the gesture.
type DraggableRect struct {
	Bounds        Rect
	PreviewBounds Rect
	State         DragState

	EdgeThreshold   float64
	MinWidth        float64
	ShowDragPreview bool
	SnapEnabled     bool
	SnapValue       func(float64) float64
	OnFinalize      func(Rect)

	dragAnchorX                   float64
	dragStartLeft, dragStartRight float64
}

// NewDraggableRect builds a DraggableRect over the given initial bounds.
func NewDraggableRect(bounds Rect) *DraggableRect {
	return &DraggableRect{
		Bounds:        bounds,
		PreviewBounds: bounds,
		EdgeThreshold: 6,
		MinWidth:      1,
	}
}

// HoverTest classifies (x, y) against the current Bounds without mutating
// state: Idle outside the rect (accounting for EdgeThreshold horizontally
// and Top/Bottom vertically), HoveringLeftEdge/HoveringRightEdge within
// EdgeThreshold of an edge, else HoveringBody.
func (d *DraggableRect) HoverTest(x, y float64) DragState {
	if y < d.Bounds.Top || y > d.Bounds.Bottom {
		return Idle
	}
	if x < d.Bounds.Left-d.EdgeThreshold || x > d.Bounds.Right+d.EdgeThreshold {
		return Idle
	}
	if absF(x-d.Bounds.Left) <= d.EdgeThreshold {
		return HoveringLeftEdge
	}
	if absF(x-d.Bounds.Right) <= d.EdgeThreshold {
		return HoveringRightEdge
	}
	if x >= d.Bounds.Left && x <= d.Bounds.Right {
		return HoveringBody
	}
	return Idle
}

// UpdateHover refreshes State from HoverTest, but only while not mid-gesture.
func (d *DraggableRect) UpdateHover(x, y float64) {
	switch d.State {
	case Dragging, ResizingLeft, ResizingRight:
		return
	}
	d.State = d.HoverTest(x, y)
}

// OnMouseDown transitions a hovering state into its active gesture.
// Returns false (no-op) if the cursor isn't over the rect.
func (d *DraggableRect) OnMouseDown(x, y float64) bool {
	hit := d.HoverTest(x, y)
	switch hit {
	case HoveringBody:
		d.State = Dragging
	case HoveringLeftEdge:
		d.State = ResizingLeft
	case HoveringRightEdge:
		d.State = ResizingRight
	default:
		return false
	}
	d.dragAnchorX = x
	d.dragStartLeft = d.Bounds.Left
	d.dragStartRight = d.Bounds.Right
	d.PreviewBounds = d.Bounds
	return true
}

func (d *DraggableRect) applyTarget(target Rect) {
	if d.ShowDragPreview {
		d.PreviewBounds = target
	} else {
		d.Bounds = target
	}
}

// OnMouseMove advances the active gesture, applying SnapValue when
// SnapEnabled and writing to PreviewBounds (if ShowDragPreview) or Bounds
// directly.
func (d *DraggableRect) OnMouseMove(x, y float64) {
	switch d.State {
	case Dragging:
		dx := x - d.dragAnchorX
		newLeft := d.dragStartLeft + dx
		newRight := d.dragStartRight + dx
		width := newRight - newLeft
		if d.SnapEnabled && d.SnapValue != nil {
			newLeft = d.SnapValue(newLeft)
			newRight = newLeft + width
		}
		d.applyTarget(Rect{Left: newLeft, Right: newRight, Top: d.Bounds.Top, Bottom: d.Bounds.Bottom})

	case ResizingLeft:
		newLeft := x
		if d.SnapEnabled && d.SnapValue != nil {
			newLeft = d.SnapValue(newLeft)
		}
		if d.dragStartRight-newLeft < d.MinWidth {
			newLeft = d.dragStartRight - d.MinWidth
		}
		d.applyTarget(Rect{Left: newLeft, Right: d.dragStartRight, Top: d.Bounds.Top, Bottom: d.Bounds.Bottom})

	case ResizingRight:
		newRight := x
		if d.SnapEnabled && d.SnapValue != nil {
			newRight = d.SnapValue(newRight)
		}
		if newRight-d.dragStartLeft < d.MinWidth {
			newRight = d.dragStartLeft + d.MinWidth
		}
		d.applyTarget(Rect{Left: d.dragStartLeft, Right: newRight, Top: d.Bounds.Top, Bottom: d.Bounds.Bottom})
	}
}

// OnMouseUp commits PreviewBounds to Bounds, fires OnFinalize, and returns
// to Idle.
func (d *DraggableRect) OnMouseUp() {
	switch d.State {
	case Dragging, ResizingLeft, ResizingRight:
		if d.ShowDragPreview {
			d.Bounds = d.PreviewBounds
		}
		if d.OnFinalize != nil {
			d.OnFinalize(d.Bounds)
		}
	}
	d.State = Idle
}

// IsActive reports whether a drag or resize gesture is in progress.
func (d *DraggableRect) IsActive() bool {
	switch d.State {
	case Dragging, ResizingLeft, ResizingRight:
		return true
	}
	return false
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
