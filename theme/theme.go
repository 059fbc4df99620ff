// Package theme supplies the piano-roll's color palette: a lipgloss-backed
// gradient used by an optional terminal reference renderer, and the raw RGB
// form (theme.RGB) from which the widget builds the host.RGBA colors its
// host.DrawList calls take, so the core package never imports a concrete UI
// toolkit.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme wraps a Palette with named color roles for the piano-roll's chrome
// and a velocity/selection gradient for notes.
type Theme struct {
	Palette *Palette
}

func New(palette *Palette) *Theme {
	return &Theme{Palette: palette}
}

// Color roles mapped to palette positions (0-1).
const (
	RoleBG          = 0.0 // canvas background
	RoleGridLine    = 1.0 / 7
	RoleMeasureLine = 2.0 / 7
	RoleKeyRow      = 3.0 / 7
	RoleNoteLow     = 4.0 / 7 // quiet-velocity note fill
	RoleNoteHigh    = 5.0 / 7 // loud-velocity note fill
	RoleSelection   = 6.0 / 7
	RolePlayhead    = 1.0
)

func (t *Theme) BG() lipgloss.Color          { return rgbToLipgloss(t.Palette.Lookup(RoleBG)) }
func (t *Theme) GridLine() lipgloss.Color    { return rgbToLipgloss(t.Palette.Lookup(RoleGridLine)) }
func (t *Theme) MeasureLine() lipgloss.Color { return rgbToLipgloss(t.Palette.Lookup(RoleMeasureLine)) }
func (t *Theme) KeyRow() lipgloss.Color      { return rgbToLipgloss(t.Palette.Lookup(RoleKeyRow)) }
func (t *Theme) Selection() lipgloss.Color   { return rgbToLipgloss(t.Palette.Lookup(RoleSelection)) }
func (t *Theme) Playhead() lipgloss.Color    { return rgbToLipgloss(t.Palette.Lookup(RolePlayhead)) }

// NoteColor returns the lipgloss color for a note at the given normalized
// velocity (0-1), interpolated between RoleNoteLow and RoleNoteHigh.
func (t *Theme) NoteColor(velocityNorm float64) lipgloss.Color {
	norm := RoleNoteLow + velocityNorm*(RoleNoteHigh-RoleNoteLow)
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// Color returns the lipgloss color for any normalized position, 0-1.
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// RGB returns the raw color for any normalized position, for callers
// building host.RGBA values without depending on lipgloss.
func (t *Theme) RGB(norm float64) RGB {
	return t.Palette.Lookup(norm)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
