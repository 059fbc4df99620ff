// Package termhost is a lipgloss-based reference implementation of
// host.DrawList, for smoke-testing the widget in a terminal without a real
// GUI host. It rasterizes each frame's draw commands into a character-cell
// buffer, one cell per (charWidth x charHeight) pixel block, the same
// colored-cell-grid approach the wider application uses to render its
// Launchpad panel.
package termhost

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gopianoroll/pianoroll/host"
)

const (
	charWidth  = 4.0 // world/screen pixels per terminal column
	charHeight = 16.0 // world/screen pixels per terminal row
)

type cell struct {
	ch  rune
	fg  lipgloss.Color
	set bool
}

// Canvas accumulates one frame's draw commands into a fixed-size grid of
// terminal cells, then renders them to a string.
type Canvas struct {
	cols, rows int
	cells      [][]cell
	layers     []string
}

// NewCanvas builds a canvas sized to hold a host.CanvasRect of the given
// pixel dimensions.
func NewCanvas(pixelWidth, pixelHeight float64) *Canvas {
	cols := int(pixelWidth/charWidth) + 1
	rows := int(pixelHeight/charHeight) + 1
	c := &Canvas{cols: cols, rows: rows}
	c.cells = make([][]cell, rows)
	for r := range c.cells {
		c.cells[r] = make([]cell, cols)
	}
	return c
}

func (c *Canvas) set(px, py float64, ch rune, color host.RGBA) {
	col := int(px / charWidth)
	row := int(py / charHeight)
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return
	}
	c.cells[row][col] = cell{ch: ch, fg: rgbaToLipgloss(color), set: true}
}

func rgbaToLipgloss(c host.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// PushLayer/PopLayer only track the layer names; they do not affect output.
// Cells are painted in call order and later calls simply overwrite earlier
// ones, which is sufficient since the widget already paints back-to-front.
func (c *Canvas) PushLayer(name string) { c.layers = append(c.layers, name) }
func (c *Canvas) PopLayer() {
	if len(c.layers) > 0 {
		c.layers = c.layers[:len(c.layers)-1]
	}
}

func (c *Canvas) PushClip(x, y, w, h float64) {}
func (c *Canvas) PopClip()                    {}

func (c *Canvas) AddRectFilled(x, y, w, h float64, color host.RGBA, cornerRadius float64) {
	for py := y; py < y+h; py += charHeight {
		for px := x; px < x+w; px += charWidth {
			c.set(px, py, '█', color)
		}
	}
}

func (c *Canvas) AddRectOutline(x, y, w, h float64, color host.RGBA, thickness, cornerRadius float64) {
	for px := x; px < x+w; px += charWidth {
		c.set(px, y, '─', color)
		c.set(px, y+h, '─', color)
	}
	for py := y; py < y+h; py += charHeight {
		c.set(x, py, '│', color)
		c.set(x+w, py, '│', color)
	}
}

func (c *Canvas) AddLine(x1, y1, x2, y2 float64, color host.RGBA, thickness float64) {
	if x1 == x2 {
		lo, hi := y1, y2
		if lo > hi {
			lo, hi = hi, lo
		}
		for py := lo; py <= hi; py += charHeight {
			c.set(x1, py, '│', color)
		}
		return
	}
	lo, hi := x1, x2
	if lo > hi {
		lo, hi = hi, lo
	}
	for px := lo; px <= hi; px += charWidth {
		c.set(px, y1, '─', color)
	}
}

func (c *Canvas) AddTriangleFilled(x1, y1, x2, y2, x3, y3 float64, color host.RGBA) {
	c.set((x1+x2+x3)/3, (y1+y2+y3)/3, '▲', color)
}

func (c *Canvas) AddCircleFilled(cx, cy, radius float64, color host.RGBA) {
	c.set(cx, cy, '●', color)
}

func (c *Canvas) AddText(x, y float64, text string, color host.RGBA) {
	for i, r := range text {
		c.set(x+float64(i)*charWidth, y, r, color)
	}
}

func (c *Canvas) TextSize(text string) (w, h float64) {
	return float64(len(text)) * charWidth, charHeight
}

// Render produces the final colored string for the frame.
func (c *Canvas) Render() string {
	var b strings.Builder
	for r := 0; r < c.rows; r++ {
		for col := 0; col < c.cols; col++ {
			cl := c.cells[r][col]
			if !cl.set {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(cl.fg).Render(string(cl.ch)))
		}
		b.WriteRune('\n')
	}
	return b.String()
}

var _ host.DrawList = (*Canvas)(nil)
