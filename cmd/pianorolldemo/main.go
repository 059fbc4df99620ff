// Command pianorolldemo is a terminal smoke-test harness for the piano-roll
// widget: it drives a Widget through bubbletea's mouse/keyboard events and
// renders each frame through the termhost reference DrawList, the same
// tea.Program wiring the wider application uses for its own TUI.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gopianoroll/pianoroll"
	"github.com/gopianoroll/pianoroll/config"
	"github.com/gopianoroll/pianoroll/host"
	"github.com/gopianoroll/pianoroll/internal/debug"
	"github.com/gopianoroll/pianoroll/internal/termhost"
	"github.com/gopianoroll/pianoroll/midiexport"
)

type model struct {
	widget *pianoroll.Widget
	cfg    *config.Config
	width  int
	height int

	mouseX, mouseY int
	mouseDown      bool
	justPressed    bool
	justReleased   bool
	ctrl, shift    bool

	keys map[string]bool

	quitting bool
}

func newModel() model {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	w := pianoroll.NewWidget(120, 40)
	w.Coords.SetPixelsPerBeat(cfg.Zoom.PixelsPerBeat)
	w.Coords.SetKeyHeight(cfg.Zoom.KeyHeight)
	w.Grid.Mode = pianoroll.SnapMode(cfg.Snap.Mode)
	w.Grid.ManualDivisionIdx = cfg.Snap.ManualDivisionIdx
	w.CCLane = pianoroll.NewControlLane(cfg.UI.DefaultCCNumber)

	w.Store.Create(0, 480, 60, 100, 0, false, false, false)
	w.Store.Create(480, 240, 64, 90, 0, false, false, false)
	w.Store.Create(720, 240, 67, 100, 0, false, false, false)
	return model{widget: w, cfg: cfg, width: 120, height: 40, keys: make(map[string]bool)}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.saveConfig()
			return m, tea.Quit
		case "ctrl+a":
			m.keys = map[string]bool{"A": true}
			m.ctrl = true
		case "delete", "backspace":
			m.keys = map[string]bool{"Delete": true}
		case "c":
			m.keys = map[string]bool{"C": true}
			m.ctrl = true
		case "ctrl+v":
			m.keys = map[string]bool{"V": true}
			m.ctrl = true
		case "ctrl+z":
			m.keys = map[string]bool{"Z": true}
			m.ctrl = true
		case "ctrl+y":
			m.keys = map[string]bool{"Y": true}
			m.ctrl = true
		case "ctrl+d":
			debug.Enable()
			m.keys = map[string]bool{}
		case "ctrl+s":
			m.saveConfig()
			m.keys = map[string]bool{}
		case "ctrl+e":
			m.exportMIDI()
			m.keys = map[string]bool{}
		case "left":
			m.keys = map[string]bool{"Left": true}
		case "right":
			m.keys = map[string]bool{"Right": true}
		case "up":
			m.keys = map[string]bool{"Up": true}
		case "down":
			m.keys = map[string]bool{"Down": true}
		default:
			m.keys = map[string]bool{}
		}
		m.stepWidget()
		m.keys = map[string]bool{}
		m.ctrl = false

	case tea.MouseMsg:
		m.mouseX, m.mouseY = msg.X*4, msg.Y*16 // undo termhost's cell scale
		switch msg.Action {
		case tea.MouseActionPress:
			m.justPressed = true
			m.mouseDown = true
		case tea.MouseActionRelease:
			m.justReleased = true
			m.mouseDown = false
		}
		m.ctrl = msg.Ctrl
		m.shift = msg.Shift
		m.stepWidget()
		m.justPressed = false
		m.justReleased = false
	}

	return m, nil
}

// saveConfig persists the widget's current zoom/snap/CC-lane settings so the
// next launch resumes where this one left off.
func (m *model) saveConfig() {
	m.cfg.Zoom.PixelsPerBeat = m.widget.Coords.PixelsPerBeat
	m.cfg.Zoom.KeyHeight = m.widget.Coords.KeyHeight
	m.cfg.Snap.Mode = int(m.widget.Grid.Mode)
	m.cfg.Snap.ManualDivisionIdx = m.widget.Grid.ManualDivisionIdx
	m.cfg.UI.DefaultCCNumber = m.widget.CCLane.CCNumber
	if err := m.cfg.Save(); err != nil {
		debug.Log("config", "save failed: %v", err)
	}
}

// exportMIDI flattens the current notes and CC lane into a timed message
// list; a real host would hand this to its own file writer or transport.
func (m *model) exportMIDI() {
	msgs := midiexport.Export(m.widget.Store, m.widget.CCLane)
	debug.Log("export", "exported %d messages", len(msgs))
}

func (m *model) stepWidget() {
	canvas := host.CanvasRect{X: 0, Y: 0, Width: float64(m.width) * 4, Height: float64(m.height) * 16}
	pointer := host.PointerState{
		X: float64(m.mouseX), Y: float64(m.mouseY),
		Down: m.mouseDown, JustPressed: m.justPressed, JustReleased: m.justReleased,
		Ctrl: m.ctrl, Shift: m.shift,
	}
	keys := host.KeyState{Pressed: m.keys, Ctrl: m.ctrl, Shift: m.shift}
	m.widget.Update(canvas, pointer, keys)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	canvas := termhost.NewCanvas(float64(m.width)*4, float64(m.height)*16)
	m.widget.Draw(canvas)
	return canvas.Render()
}

func main() {
	p := tea.NewProgram(newModel(), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
