package pianoroll

import "math"

const (
	MinPixelsPerBeat = 15.0
	MaxPixelsPerBeat = 4000.0
)

// Viewport is a rectangular window into world coordinates. X may be
// negative — the timeline is allowed to extend leftward of bar 1
// (Bitwig-style). Y is clamped by CoordinateSystem to [0, MaxScrollY()].
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// Point is a 2-D coordinate, used for both world and screen space.
type Point struct {
	X, Y float64
}

// CoordinateSystem maps between musical time (ticks), pitch (MIDI keys),
// world pixels, and screen pixels.
type CoordinateSystem struct {
	PianoKeyWidth float64
	TicksPerBeat  int
	PixelsPerBeat float64
	KeyHeight     float64
	TotalKeysN    int
	Viewport      Viewport
}

// NewCoordinateSystem builds a coordinate system with the §6 defaults.
func NewCoordinateSystem() *CoordinateSystem {
	return &CoordinateSystem{
		PianoKeyWidth: 180,
		TicksPerBeat:  480,
		PixelsPerBeat: 60,
		KeyHeight:     20,
		TotalKeysN:    TotalKeys,
		Viewport:      Viewport{X: 0, Y: 0, Width: 800, Height: 600},
	}
}

// TickToWorld converts a tick to a world-X pixel coordinate.
func (c *CoordinateSystem) TickToWorld(t Tick) float64 {
	return float64(t) / float64(c.TicksPerBeat) * c.PixelsPerBeat
}

// WorldToTick converts a world-X pixel coordinate to a tick, floored and
// clamped to >= 0.
func (c *CoordinateSystem) WorldToTick(x float64) Tick {
	t := math.Floor(x / c.PixelsPerBeat * float64(c.TicksPerBeat))
	if t < 0 {
		t = 0
	}
	return Tick(t)
}

// KeyToWorldY converts a MIDI key to the world-Y of the top of its row.
// Keys are stacked bottom-up: key 0 sits at the maximum world Y.
func (c *CoordinateSystem) KeyToWorldY(k MidiKey) float64 {
	return float64(c.TotalKeysN-1-int(k)) * c.KeyHeight
}

// WorldYToKey converts a world-Y pixel coordinate to the MIDI key whose row
// contains it. Not clamped to [0,127] — callers clamp as appropriate for
// their operation (e.g. NoteStore.Move already clamps).
func (c *CoordinateSystem) WorldYToKey(y float64) int {
	return c.TotalKeysN - 1 - int(math.Floor(y/c.KeyHeight))
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *CoordinateSystem) WorldToScreen(wx, wy float64) Point {
	return Point{
		X: wx - c.Viewport.X + c.PianoKeyWidth,
		Y: wy - c.Viewport.Y,
	}
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *CoordinateSystem) ScreenToWorld(sx, sy float64) Point {
	return Point{
		X: sx - c.PianoKeyWidth + c.Viewport.X,
		Y: sy + c.Viewport.Y,
	}
}

// MaxScrollY returns the maximum viewport.Y, given the total key count,
// key height, and viewport height. Never negative.
func (c *CoordinateSystem) MaxScrollY() float64 {
	m := float64(c.TotalKeysN)*c.KeyHeight - c.Viewport.Height
	if m < 0 {
		m = 0
	}
	return m
}

// SetScroll sets the viewport origin. X is unconstrained (negative world-X
// is intentional); Y is clamped to [0, MaxScrollY()].
func (c *CoordinateSystem) SetScroll(x, y float64) {
	c.Viewport.X = x
	c.Viewport.Y = clampFloat(y, 0, c.MaxScrollY())
}

// Pan shifts the viewport by (dx, dy), through SetScroll.
func (c *CoordinateSystem) Pan(dx, dy float64) {
	c.SetScroll(c.Viewport.X+dx, c.Viewport.Y+dy)
}

// SetPixelsPerBeat clamps to [MinPixelsPerBeat, MaxPixelsPerBeat].
func (c *CoordinateSystem) SetPixelsPerBeat(ppb float64) {
	c.PixelsPerBeat = clampFloat(ppb, MinPixelsPerBeat, MaxPixelsPerBeat)
}

// SetKeyHeight sets the per-key pixel height; must be positive.
func (c *CoordinateSystem) SetKeyHeight(h float64) {
	if h <= 0 {
		return
	}
	c.KeyHeight = h
	c.Viewport.Y = clampFloat(c.Viewport.Y, 0, c.MaxScrollY())
}

// SetTicksPerBeat sets the resolution; must be positive.
func (c *CoordinateSystem) SetTicksPerBeat(tpb int) {
	if tpb <= 0 {
		return
	}
	c.TicksPerBeat = tpb
}

// SetViewportSize updates the visible canvas size, re-clamping scroll Y.
func (c *CoordinateSystem) SetViewportSize(w, h float64) {
	c.Viewport.Width = w
	c.Viewport.Height = h
	c.Viewport.Y = clampFloat(c.Viewport.Y, 0, c.MaxScrollY())
}

// ZoomAt rescales PixelsPerBeat by factor, clamping to the documented
// range, and shifts viewport.X so that the musical position under
// anchorWorldX (a world-X pixel coordinate measured at the *old* zoom)
// keeps the same screen-X after the rescale — using the effective
// (possibly clamped) factor, not the raw requested one.
func (c *CoordinateSystem) ZoomAt(factor float64, anchorWorldX float64) {
	if factor <= 0 {
		return
	}
	oldPPB := c.PixelsPerBeat
	newPPB := clampFloat(oldPPB*factor, MinPixelsPerBeat, MaxPixelsPerBeat)
	effFactor := newPPB / oldPPB

	newWorldX := anchorWorldX * effFactor
	shift := newWorldX - anchorWorldX

	c.PixelsPerBeat = newPPB
	c.Viewport.X += shift
}

// VisibleTickRange returns the tick range currently visible in the viewport.
func (c *CoordinateSystem) VisibleTickRange() TickRange {
	return TickRange{
		Start: c.WorldToTick(c.Viewport.X),
		End:   c.WorldToTick(c.Viewport.X + c.Viewport.Width),
	}
}

// VisibleKeyRange returns the MIDI key range currently visible in the
// viewport, clamped to [0, TotalKeysN-1] with Low <= High.
func (c *CoordinateSystem) VisibleKeyRange() KeyRange {
	top := c.WorldYToKey(c.Viewport.Y)
	bottom := c.WorldYToKey(c.Viewport.Y + c.Viewport.Height)
	low, high := bottom, top
	if low > high {
		low, high = high, low
	}
	low = clampInt(low, 0, c.TotalKeysN-1)
	high = clampInt(high, 0, c.TotalKeysN-1)
	return KeyRange{Low: MidiKey(low), High: MidiKey(high)}
}
