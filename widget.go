package pianoroll

import (
	"math"

	"github.com/gopianoroll/pianoroll/host"
	"github.com/gopianoroll/pianoroll/internal/debug"
	"github.com/gopianoroll/pianoroll/theme"
)

const (
	defaultRulerHeight  = 24.0
	defaultCCLaneHeight = 80.0

	markerHitThresholdPx = 8.0
	ccHitThresholdPx      = 6.0

	rulerGestureThresholdPx = 3.0
	noteNameZoomMinFrac     = 0.6
	noteNameZoomMaxFrac     = 1.25
	baseKeyHeight           = 20.0

	edgeScrollMarginPx  = 60.0
	edgeScrollMaxSpeed  = 25.0
	edgeScrollBaseSpeed = 2.0
)

// markerKind identifies one of the ruler band's three draggable playback
// markers.
type markerKind int

const (
	markerNone markerKind = iota
	markerPlayhead
	markerCueLeft
	markerCueRight
)

// rulerGestureState tracks a latent ruler-area interaction: undecided
// between a horizontal pan and a horizontal zoom until the pointer has
// moved past rulerGestureThresholdPx, at which point it commits to a pan if
// the horizontal movement exceeds 1.5x the vertical movement and to a zoom
// otherwise, for its remaining duration.
type rulerGestureState struct {
	active, committed bool
	isZoom            bool
	startX, startY    float64
	startViewportX    float64
	startPPB          float64
	anchorWorldX      float64
}

// noteNameGestureState is the vertical analogue of rulerGestureState for the
// note-name column. It carries the state for both a vertical pan and a
// vertical zoom, but continueNoteNameGesture only ever commits to the pan.
type noteNameGestureState struct {
	active, committed bool
	isZoom            bool
	startY            float64
	startViewportY    float64
	startKeyHeight    float64
	auditionKey       MidiKey
}

// Widget owns every piece of piano-roll state and routes one frame of host
// input to whichever sub-system gets first claim, in a fixed priority order:
// an active playback-marker drag, the loop marker, a fresh click in the
// ruler band (markers, then a latent pan/zoom gesture), the note-name
// column (a vertical pan gesture plus key audition), the
// scrollbar track, then (for a fresh click) the CC lane, and finally the
// note grid via PointerController, with edge-scrolling layered on top of an
// active rectangle selection. Only one gesture is ever active at a time; a
// gesture already in progress keeps receiving mouse-move/up regardless of
// where the pointer now sits.
type Widget struct {
	Store    *NoteStore
	Coords   *CoordinateSystem
	Grid     *GridSnap
	Pointer  *PointerController
	Keyboard *KeyboardController
	CCLane   *ControlLane
	Scroll   *CustomScrollbar
	Loop     *LoopMarker
	Theme    *theme.Theme

	PlayheadTick Tick
	CueLeftTick  Tick
	CueRightTick Tick

	RulerHeight         float64
	CCLaneHeight        float64
	NoteNameColumnWidth float64

	exploredMin, exploredMax float64

	// OnPlayheadChanged fires whenever the playhead moves, whether by a
	// ruler-click or a marker drag.
	OnPlayheadChanged func(Tick)
	// OnPlaybackMarkersChanged fires whenever any of the three playback
	// markers is dragged.
	OnPlaybackMarkersChanged func(playhead, cueLeft, cueRight Tick)
	// OnPianoKeyPressed/OnPianoKeyReleased fire when the note-name column
	// is clicked/released, for a host to audition the key's sound.
	OnPianoKeyPressed  func(MidiKey)
	OnPianoKeyReleased func(MidiKey)

	draggingMarker  markerKind
	rulerGesture    rulerGestureState
	noteNameGesture noteNameGestureState
	draggingCCPoint bool
	ccDragTick      Tick
}

// NewWidget wires a Widget with fresh model objects over a canvas of the
// given size.
func NewWidget(canvasWidth, canvasHeight float64) *Widget {
	coords := NewCoordinateSystem()
	coords.SetViewportSize(canvasWidth-180, canvasHeight-defaultRulerHeight-defaultCCLaneHeight)
	grid := NewGridSnap()
	store := NewNoteStore(0)

	w := &Widget{
		Store:               store,
		Coords:              coords,
		Grid:                grid,
		Pointer:             NewPointerController(store, coords, grid),
		Keyboard:            NewKeyboardController(store, grid),
		CCLane:              NewControlLane(1),
		Scroll:              NewCustomScrollbar(canvasWidth - 180),
		Loop:                NewLoopMarker(grid.TicksPerBeat, defaultRulerHeight*0.4, defaultRulerHeight*0.65),
		Theme:               theme.New(theme.DefaultPalette()),
		RulerHeight:         defaultRulerHeight,
		CCLaneHeight:        defaultCCLaneHeight,
		NoteNameColumnWidth: 180,
		CueLeftTick:         0,
		CueRightTick:        Tick(grid.TicksPerBeat * 16), // four bars at 4/4
		exploredMin:         0,
		exploredMax:         coords.Viewport.Width,
	}
	w.Scroll.ViewportWidth = coords.Viewport.Width
	w.Scroll.PixelsPerBeat = coords.PixelsPerBeat
	w.Scroll.TicksPerBeat = coords.TicksPerBeat
	w.Scroll.ExploredMin = w.exploredMin
	w.Scroll.ExploredMax = w.exploredMax
	w.Scroll.OnScroll = func(x float64) { coords.SetScroll(x, coords.Viewport.Y) }
	w.Scroll.OnEdgeZoom = func(ppb, x float64) {
		coords.PixelsPerBeat = ppb
		coords.Viewport.X = x
	}
	w.Scroll.OnExploredRangeChanged = func(min, max float64) { w.exploredMin, w.exploredMax = min, max }
	return w
}

func (w *Widget) updateExploredArea() {
	left := w.Coords.Viewport.X
	right := w.Coords.Viewport.X + w.Coords.Viewport.Width
	if left < w.exploredMin {
		w.exploredMin = left
	}
	if right > w.exploredMax {
		w.exploredMax = right
	}
	for _, n := range w.Store.All() {
		x := w.Coords.TickToWorld(n.Tick)
		end := w.Coords.TickToWorld(n.EndTick())
		if x < w.exploredMin {
			w.exploredMin = x
		}
		if end > w.exploredMax {
			w.exploredMax = end
		}
	}
	w.Scroll.ExploredMin = w.exploredMin
	w.Scroll.ExploredMax = w.exploredMax
	w.Scroll.ViewportWidth = w.Coords.Viewport.Width
	w.Scroll.PixelsPerBeat = w.Coords.PixelsPerBeat
	w.Scroll.ScrollPosition = w.Coords.Viewport.X
}

// regionLocal converts the host's screen-space pointer position into
// canvas-local coordinates, relative to the canvas rect's top-left corner.
func regionLocal(canvas host.CanvasRect, p host.PointerState) (x, y float64) {
	return p.X - canvas.X, p.Y - canvas.Y
}

// Update advances the widget by one frame given the canvas rect it was
// drawn into and the host's pointer/keyboard snapshot.
func (w *Widget) Update(canvas host.CanvasRect, pointer host.PointerState, keys host.KeyState) {
	w.Grid.RefreshAdaptive(w.Coords.PixelsPerBeat)
	w.Loop.SetPixelsPerBeat(w.Coords.PixelsPerBeat)
	w.updateExploredArea() // every note's world-X range is always in scope

	lx, ly := regionLocal(canvas, pointer)

	rulerBottom := w.RulerHeight
	gridTop := w.RulerHeight
	gridBottom := canvas.Height - w.CCLaneHeight
	ccTop := gridBottom
	scrollbarTop := canvas.Height - 16

	w.handleKeys(keys)

	if pointer.WheelDeltaY != 0 {
		w.Coords.Pan(0, pointer.WheelDeltaY)
	}

	switch {
	case w.draggingMarker != markerNone:
		w.continueMarkerDrag(pointer, lx)
		return
	case w.Loop.IsActive():
		w.continueLoopDrag(pointer, lx, ly)
		return
	case w.Scroll.IsActive():
		w.continueScrollbarDrag(pointer, lx, ly, scrollbarTop)
		return
	case w.rulerGesture.active:
		w.continueRulerGesture(pointer, lx, ly)
		return
	case w.noteNameGesture.active:
		w.continueNoteNameGesture(pointer, ly)
		return
	case w.draggingCCPoint:
		w.continueCCDrag(pointer, lx, ly, ccTop)
		return
	case w.Pointer.IsActive():
		w.continueGridDrag(pointer, lx, ly, canvas)
		return
	}

	if !pointer.JustPressed {
		w.updateExploredArea()
		return
	}

	worldX := w.Coords.ScreenToWorld(lx, ly).X

	switch {
	case ly >= 0 && ly < rulerBottom && lx >= w.NoteNameColumnWidth:
		w.beginRulerAreaGesture(worldX, lx, ly)

	case lx < w.NoteNameColumnWidth && ly >= gridTop && ly < gridBottom:
		w.beginNoteNameGesture(ly)

	case ly >= scrollbarTop:
		w.Scroll.OnMouseDown(lx, ly)

	case ly >= ccTop:
		w.beginCCGesture(worldX, ly, ccTop, pointer)

	case lx >= w.NoteNameColumnWidth && ly >= gridTop && ly < gridBottom:
		gy := ly - gridTop
		w.Pointer.OnMouseDown(worldX, w.Coords.Viewport.Y+gy, pointer.Ctrl, pointer.Shift, pointer.Alt, pointer.DoubleClicked)

	default:
	}

	w.updateExploredArea()
}

// hitPlaybackMarker returns whichever of the three playback markers worldX
// falls within markerHitThresholdPx of, checked in priority order
// playhead, cue-left, cue-right.
func (w *Widget) hitPlaybackMarker(worldX float64) markerKind {
	if absF(worldX-w.Coords.TickToWorld(w.PlayheadTick)) <= markerHitThresholdPx {
		return markerPlayhead
	}
	if absF(worldX-w.Coords.TickToWorld(w.CueLeftTick)) <= markerHitThresholdPx {
		return markerCueLeft
	}
	if absF(worldX-w.Coords.TickToWorld(w.CueRightTick)) <= markerHitThresholdPx {
		return markerCueRight
	}
	return markerNone
}

func (w *Widget) beginRulerAreaGesture(worldX, lx, ly float64) {
	if hit := w.hitPlaybackMarker(worldX); hit != markerNone {
		w.draggingMarker = hit
		debug.Log("gesture", "marker drag started: kind=%d", hit)
		return
	}
	if w.Loop.OnMouseDown(worldX, ly) {
		return
	}
	w.rulerGesture = rulerGestureState{
		active:         true,
		startX:         lx,
		startY:         ly,
		startViewportX: w.Coords.Viewport.X,
		startPPB:       w.Coords.PixelsPerBeat,
		anchorWorldX:   worldX,
	}
}

func (w *Widget) continueMarkerDrag(pointer host.PointerState, lx float64) {
	worldX := w.Coords.ScreenToWorld(lx, 0).X
	tick := w.Coords.WorldToTick(worldX)
	if !pointer.Shift {
		tick = w.Grid.SnapTick(tick, nil)
	}
	switch w.draggingMarker {
	case markerPlayhead:
		w.PlayheadTick = tick
		if w.OnPlayheadChanged != nil {
			w.OnPlayheadChanged(tick)
		}
	case markerCueLeft:
		w.CueLeftTick = tick
	case markerCueRight:
		w.CueRightTick = tick
	}
	if w.OnPlaybackMarkersChanged != nil {
		w.OnPlaybackMarkersChanged(w.PlayheadTick, w.CueLeftTick, w.CueRightTick)
	}
	if pointer.JustReleased {
		debug.Log("gesture", "marker drag finished: playhead=%d cueLeft=%d cueRight=%d", w.PlayheadTick, w.CueLeftTick, w.CueRightTick)
		w.draggingMarker = markerNone
	}
}

// continueRulerGesture advances a latent/committed ruler-area interaction.
// Both pan and zoom are recomputed from the gesture's starting state every
// frame rather than accumulated, so the math stays exact regardless of how
// many intermediate moves are reported.
func (w *Widget) continueRulerGesture(pointer host.PointerState, lx, ly float64) {
	g := &w.rulerGesture
	dx := lx - g.startX
	dy := ly - g.startY

	if !g.committed {
		if absF(dx) > rulerGestureThresholdPx || absF(dy) > rulerGestureThresholdPx {
			g.committed = true
			g.isZoom = absF(dx) <= 1.5*absF(dy)
		}
	}

	if g.committed {
		if g.isZoom {
			w.Coords.PixelsPerBeat = g.startPPB
			w.Coords.Viewport.X = g.startViewportX
			w.Coords.ZoomAt(math.Exp(dy*0.01), g.anchorWorldX)
		} else {
			w.Coords.Viewport.X = g.startViewportX - dx
		}
		w.updateExploredArea()
	}

	if pointer.JustReleased {
		if !g.committed {
			worldX := w.Coords.ScreenToWorld(lx, 0).X
			w.PlayheadTick = w.Grid.SnapTick(w.Coords.WorldToTick(worldX), nil)
			if w.OnPlayheadChanged != nil {
				w.OnPlayheadChanged(w.PlayheadTick)
			}
		}
		w.rulerGesture = rulerGestureState{}
	}
}

func (w *Widget) beginNoteNameGesture(ly float64) {
	key := MidiKey(clampInt(w.Coords.WorldYToKey(w.Coords.Viewport.Y+ly), MinMidiKey, MaxMidiKey))
	w.noteNameGesture = noteNameGestureState{
		active:         true,
		startY:         ly,
		startViewportY: w.Coords.Viewport.Y,
		startKeyHeight: w.Coords.KeyHeight,
		auditionKey:    key,
	}
	if w.OnPianoKeyPressed != nil {
		w.OnPianoKeyPressed(key)
	}
}

// continueNoteNameGesture is the note-name column's vertical analogue of
// continueRulerGesture. Once the vertical drag passes
// rulerGestureThresholdPx the gesture commits to a vertical pan. The
// horizontal delta is fixed at zero, so the zoom test never passes: the
// column does not zoom, and the zoom branch below is not reached.
func (w *Widget) continueNoteNameGesture(pointer host.PointerState, ly float64) {
	g := &w.noteNameGesture
	dy := ly - g.startY
	dx := 0.0 // the note-name column has no meaningful horizontal position of its own

	if !g.committed && absF(dy) > rulerGestureThresholdPx {
		g.committed = true
		g.isZoom = absF(dy) <= 1.5*absF(dx)
	}

	if g.committed {
		if g.isZoom {
			newKeyHeight := clampFloat(g.startKeyHeight*math.Exp(-dy*0.01), noteNameZoomMinFrac*baseKeyHeight, noteNameZoomMaxFrac*baseKeyHeight)
			effFactor := newKeyHeight / g.startKeyHeight
			anchorWorldY := g.startViewportY + g.startY
			newWorldY := anchorWorldY * effFactor
			w.Coords.KeyHeight = newKeyHeight
			w.Coords.Viewport.Y = clampFloat(g.startViewportY+(newWorldY-anchorWorldY), 0, w.Coords.MaxScrollY())
		} else {
			w.Coords.Viewport.Y = clampFloat(g.startViewportY-dy, 0, w.Coords.MaxScrollY())
		}
	}

	if pointer.JustReleased {
		if w.OnPianoKeyReleased != nil {
			w.OnPianoKeyReleased(g.auditionKey)
		}
		w.noteNameGesture = noteNameGestureState{}
	}
}

func (w *Widget) continueLoopDrag(pointer host.PointerState, lx, ly float64) {
	worldX := w.Coords.ScreenToWorld(lx, 0).X
	w.Loop.OnMouseMove(worldX, ly)
	if pointer.JustReleased {
		w.Loop.OnMouseUp()
	}
}

func (w *Widget) continueScrollbarDrag(pointer host.PointerState, lx, ly, scrollbarTop float64) {
	w.Scroll.OnMouseMove(lx, ly-scrollbarTop)
	if pointer.JustReleased {
		w.Scroll.OnMouseUp()
	}
}

// ccHitThresholdTicks converts ccHitThresholdPx into ticks at the current
// zoom, so CC point hit-testing stays a constant pixel radius regardless of
// pixels-per-beat.
func (w *Widget) ccHitThresholdTicks() Tick {
	return Tick(ccHitThresholdPx / w.Coords.PixelsPerBeat * float64(w.Coords.TicksPerBeat))
}

func (w *Widget) ccValueAt(ly, ccTop float64) int {
	return clampInt(int(127*(1-(ly-ccTop)/w.CCLaneHeight)), 0, 127)
}

// beginCCGesture implements the CC lane's add/drag/delete distinction:
// ctrl-click near an existing point deletes it, a plain click near one
// starts dragging it (tracked by its original tick, so the drag relocates
// the same point rather than leaving a trail), and a click elsewhere adds a
// new point.
func (w *Widget) beginCCGesture(worldX, ly, ccTop float64, pointer host.PointerState) {
	tick := w.Grid.SnapTick(w.Coords.WorldToTick(worldX), nil)
	threshold := w.ccHitThresholdTicks()

	if pointer.Ctrl {
		if p, ok := w.CCLane.Nearest(tick, threshold); ok {
			w.CCLane.Delete(p.Tick)
		}
		return
	}

	if p, ok := w.CCLane.Nearest(tick, threshold); ok {
		w.draggingCCPoint = true
		w.ccDragTick = p.Tick
		return
	}

	w.CCLane.Set(tick, w.ccValueAt(ly, ccTop))
	w.draggingCCPoint = true
	w.ccDragTick = tick
}

func (w *Widget) continueCCDrag(pointer host.PointerState, lx, ly, ccTop float64) {
	worldX := w.Coords.ScreenToWorld(lx, 0).X
	tick := w.Grid.SnapTick(w.Coords.WorldToTick(worldX), nil)
	value := w.ccValueAt(ly, ccTop)
	if tick != w.ccDragTick {
		w.CCLane.Delete(w.ccDragTick)
		w.ccDragTick = tick
	}
	w.CCLane.Set(tick, value)
	if pointer.JustReleased {
		w.draggingCCPoint = false
	}
}

func (w *Widget) continueGridDrag(pointer host.PointerState, lx, ly float64, canvas host.CanvasRect) {
	worldX := w.Coords.ScreenToWorld(lx, 0).X
	gy := ly - w.RulerHeight
	w.Pointer.OnMouseMove(worldX, w.Coords.Viewport.Y+gy)
	if w.Pointer.IsRectSelecting() {
		w.applyEdgeScroll(lx, ly, canvas)
	}
	if pointer.JustReleased {
		w.Pointer.OnMouseUp()
	}
}

// applyEdgeScroll drags the viewport while a rectangle selection's cursor
// sits within edgeScrollMarginPx of a canvas edge, so a marquee drag can
// reach notes currently off-screen.
func (w *Widget) applyEdgeScroll(lx, ly float64, canvas host.CanvasRect) {
	var dx, dy float64
	if lx < edgeScrollMarginPx {
		dx = -edgeScrollSpeed(edgeScrollMarginPx - lx)
	} else if right := canvas.Width - lx; right < edgeScrollMarginPx {
		dx = edgeScrollSpeed(edgeScrollMarginPx - right)
	}
	if ly < edgeScrollMarginPx {
		dy = -edgeScrollSpeed(edgeScrollMarginPx - ly)
	} else if bottom := canvas.Height - ly; bottom < edgeScrollMarginPx {
		dy = edgeScrollSpeed(edgeScrollMarginPx - bottom)
	}
	if dx == 0 && dy == 0 {
		return
	}
	w.Coords.Pan(dx, dy)
	w.updateExploredArea()
}

func edgeScrollSpeed(distance float64) float64 {
	speed := edgeScrollBaseSpeed + distance/20*30
	if speed > edgeScrollMaxSpeed {
		speed = edgeScrollMaxSpeed
	}
	return speed
}

func (w *Widget) handleKeys(keys host.KeyState) {
	switch {
	case keys.Ctrl && keys.IsPressed("A"):
		w.Keyboard.SelectAll()
	case keys.IsPressed("Delete") || keys.IsPressed("Backspace"):
		w.Keyboard.DeleteSelected()
	case keys.Ctrl && keys.IsPressed("C"):
		w.Keyboard.Copy()
	case keys.Ctrl && keys.IsPressed("V"):
		w.Keyboard.Paste()
	case keys.Ctrl && keys.IsPressed("Z"):
		w.Keyboard.Undo()
	case keys.Ctrl && keys.IsPressed("Y"):
		w.Keyboard.Redo()
	case keys.IsPressed("Left"):
		w.arrowShift(-1, keys.Shift)
	case keys.IsPressed("Right"):
		w.arrowShift(1, keys.Shift)
	case keys.IsPressed("Up"):
		w.arrowTranspose(1, keys.Shift)
	case keys.IsPressed("Down"):
		w.arrowTranspose(-1, keys.Shift)
	}
}

// PasteAtPlayhead pastes the clipboard reanchored at the current playhead
// position, the host-exposed counterpart to the plain Ctrl+V shortcut
// (which restores the clipboard's original absolute positions instead).
func (w *Widget) PasteAtPlayhead() {
	w.Keyboard.PasteAt(w.PlayheadTick)
}

func (w *Widget) arrowShift(sign int, fine bool) {
	step := w.Keyboard.ArrowStepTicks(fine)
	w.Keyboard.ShiftSelected(Tick(sign) * step)
}

func (w *Widget) arrowTranspose(sign int, octave bool) {
	semitones := sign
	if octave {
		semitones = sign * 12
	}
	w.Keyboard.TransposeSelected(semitones)
}

// Draw issues this frame's draw commands for the widget within canvas.
func (w *Widget) Draw(dl host.DrawList) {
	dl.PushLayer("grid")
	w.drawGrid(dl)
	dl.PopLayer()

	dl.PushLayer("notes")
	w.drawNotes(dl)
	dl.PopLayer()

	dl.PushLayer("cc-lane")
	w.drawCCLane(dl)
	dl.PopLayer()

	dl.PushLayer("overlays")
	w.drawOverlays(dl)
	dl.PopLayer()

	dl.PushLayer("chrome")
	w.drawChrome(dl)
	dl.PopLayer()
}

// rgba looks up a normalized palette position and applies alpha, so draw
// code never has to touch the theme's lipgloss-flavored accessors.
func (w *Widget) rgba(norm float64, alpha uint8) host.RGBA {
	c := w.Theme.RGB(norm)
	return host.RGBA{R: c[0], G: c[1], B: c[2], A: alpha}
}

func (w *Widget) drawGrid(dl host.DrawList) {
	tickRange := w.Coords.VisibleTickRange()
	for _, line := range w.Grid.GridLines(tickRange, w.Coords.PixelsPerBeat) {
		x := w.Coords.WorldToScreen(w.Coords.TickToWorld(line.Tick), 0).X
		color := w.rgba(theme.RoleGridLine, 255)
		if line.Kind == GridMeasure {
			color = w.rgba(theme.RoleMeasureLine, 255)
		}
		dl.AddLine(x, w.RulerHeight, x, w.RulerHeight+w.Coords.Viewport.Height, color, 1)
	}
}

func (w *Widget) drawNotes(dl host.DrawList) {
	tickRange := w.Coords.VisibleTickRange()
	keyRange := w.Coords.VisibleKeyRange()
	for _, n := range w.Store.NotesInRange(tickRange, keyRange) {
		topLeft := w.Coords.WorldToScreen(w.Coords.TickToWorld(n.Tick), w.Coords.KeyToWorldY(n.Key))
		widthPx := w.Coords.TickToWorld(n.EndTick()) - w.Coords.TickToWorld(n.Tick)
		norm := theme.RoleNoteLow + float64(n.Velocity)/float64(MaxVelocity)*(theme.RoleNoteHigh-theme.RoleNoteLow)
		color := w.rgba(norm, 255)
		if n.Selected {
			color = w.rgba(theme.RoleSelection, 255)
		}
		dl.AddRectFilled(topLeft.X, topLeft.Y, widthPx, w.Coords.KeyHeight, color, 2)
	}
}

func (w *Widget) drawCCLane(dl host.DrawList) {
	ccTop := w.RulerHeight + w.Coords.Viewport.Height
	dl.AddRectFilled(w.NoteNameColumnWidth, ccTop, w.Coords.Viewport.Width, w.CCLaneHeight, w.rgba(theme.RoleBG, 255), 0)
	tickRange := w.Coords.VisibleTickRange()
	for _, p := range w.CCLane.PointsInRange(tickRange.Start, tickRange.End) {
		x := w.Coords.WorldToScreen(w.Coords.TickToWorld(p.Tick), 0).X
		h := w.CCLaneHeight * float64(p.Value) / 127
		dl.AddRectFilled(x-1, ccTop+w.CCLaneHeight-h, 2, h, w.rgba(theme.RoleSelection, 255), 0)
	}
}

func (w *Widget) drawOverlays(dl host.DrawList) {
	b := w.Loop.Bounds()
	left := w.Coords.WorldToScreen(b.Left, 0).X
	right := w.Coords.WorldToScreen(b.Right, 0).X
	dl.AddRectFilled(left, w.RulerHeight, right-left, w.Coords.Viewport.Height, w.rgba(theme.RoleSelection, 40), 0)

	cueLeftX := w.Coords.WorldToScreen(w.Coords.TickToWorld(w.CueLeftTick), 0).X
	cueRightX := w.Coords.WorldToScreen(w.Coords.TickToWorld(w.CueRightTick), 0).X
	cueColor := w.rgba(theme.RoleMeasureLine, 255)
	dl.AddLine(cueLeftX, 0, cueLeftX, w.RulerHeight, cueColor, 2)
	dl.AddLine(cueRightX, 0, cueRightX, w.RulerHeight, cueColor, 2)

	phX := w.Coords.WorldToScreen(w.Coords.TickToWorld(w.PlayheadTick), 0).X
	dl.AddLine(phX, 0, phX, w.RulerHeight+w.Coords.Viewport.Height, w.rgba(theme.RolePlayhead, 255), 2)
}

func (w *Widget) drawChrome(dl host.DrawList) {
	for _, label := range w.Grid.RulerLabels(w.Coords.VisibleTickRange(), w.Coords.PixelsPerBeat) {
		x := w.Coords.WorldToScreen(w.Coords.TickToWorld(label.Tick), 0).X
		dl.AddText(x, 2, label.Text, w.rgba(theme.RoleSelection, 200))
	}

	thumbX := w.Scroll.ThumbX() + w.NoteNameColumnWidth
	thumbW := w.Scroll.ThumbWidth()
	scrollbarTop := w.RulerHeight + w.Coords.Viewport.Height + w.CCLaneHeight
	dl.AddRectFilled(thumbX, scrollbarTop, thumbW, 16, w.rgba(theme.RoleKeyRow, 255), 4)
}
