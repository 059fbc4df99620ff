// Package host defines the boundary between the piano-roll widget and the
// surrounding GUI framework: an immediate-mode draw-command sink and a
// per-frame input snapshot. The widget never touches a window, a renderer,
// or an event loop directly — it only calls DrawList methods and reads
// PointerState/KeyState, the way a panel inside a larger ImGui-style host
// would. A concrete host adapts these to its own drawing API (see
// internal/termhost for a lipgloss-based reference implementation).
package host

// RGBA is a host-agnostic color, 0-255 per channel.
type RGBA struct {
	R, G, B, A uint8
}

// DrawList is an immediate-mode draw-command sink for one frame. Calls are
// issued in z-order within the current layer; PushLayer/PopLayer group
// commands so the widget can paint its five layers (grid, notes, CC lane,
// overlays such as the loop region and playback markers, and the chrome:
// ruler labels and scrollbar thumb) without the host needing to know the
// widget's internal structure.
type DrawList interface {
	PushLayer(name string)
	PopLayer()

	PushClip(x, y, w, h float64)
	PopClip()

	AddRectFilled(x, y, w, h float64, color RGBA, cornerRadius float64)
	AddRectOutline(x, y, w, h float64, color RGBA, thickness, cornerRadius float64)
	AddLine(x1, y1, x2, y2 float64, color RGBA, thickness float64)
	AddTriangleFilled(x1, y1, x2, y2, x3, y3 float64, color RGBA)
	AddCircleFilled(cx, cy, radius float64, color RGBA)
	AddText(x, y float64, text string, color RGBA)

	// TextSize measures text as the host's font would render it, so the
	// widget can lay out labels (ruler marks, CC values) without owning a
	// font rasterizer.
	TextSize(text string) (w, h float64)
}

// PointerState is the mouse/pointer input snapshot for the current frame,
// in the host's screen-pixel space (the widget converts to its own local
// coordinates using the canvas rect it was given).
type PointerState struct {
	X, Y float64

	Down        bool // primary button currently held
	JustPressed bool // primary button transitioned up->down this frame
	JustReleased bool
	DoubleClicked bool

	Ctrl, Shift, Alt bool

	WheelDeltaY float64
}

// KeyState reports which keys transitioned to "pressed" on this frame, for
// the piano-roll's keyboard shortcuts. Implementations only need to report
// the keys KeyboardController actually consumes.
type KeyState struct {
	Pressed map[string]bool // e.g. "A", "Delete", "Left", "Right", "Z", "Y", "C", "V"
	Ctrl, Shift bool
}

// IsPressed reports whether key was pressed on this frame.
func (k KeyState) IsPressed(key string) bool {
	if k.Pressed == nil {
		return false
	}
	return k.Pressed[key]
}

// CanvasRect is the screen-space rectangle the widget has been given to
// draw and receive input within, supplied by the host each frame.
type CanvasRect struct {
	X, Y, Width, Height float64
}
