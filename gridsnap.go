package pianoroll

import (
	"fmt"
	"math"
)

// SnapMode selects how GridSnap resolves the "current" snap division.
type SnapMode int

const (
	SnapOff SnapMode = iota
	SnapAdaptive
	SnapManual
)

// GridLineKind classifies a rendered grid line.
type GridLineKind int

const (
	GridMeasure GridLineKind = iota
	GridBeat
	GridSubdivision
)

// GridLine is one vertical grid line to render.
type GridLine struct {
	Tick Tick
	Kind GridLineKind
}

// RulerLabel is one time-ruler label to render.
type RulerLabel struct {
	Tick Tick
	Text string
}

// divisionBase480 holds the fixed division table at TicksPerBeat=480, finest
// first: 1/64, 1/32, 1/16, 1/8, 1/4 (a beat), 1/2, 1 bar, 2 bars, 4 bars.
var divisionBase480 = [9]int64{30, 60, 120, 240, 480, 960, 1920, 3840, 7680}

// GridSnap drives both magnetic snapping of note edits and grid/ruler
// rendering density, adapting to the current horizontal zoom.
type GridSnap struct {
	TicksPerBeat    int
	BeatsPerMeasure int
	Mode            SnapMode

	// ManualDivisionIdx is the division index used in SnapManual mode, and
	// the base division SnapOff/initial state falls back to.
	ManualDivisionIdx int

	// currentSnapDivisionIdx/currentGridDivisionIdx are the cached "current
	// division" state described in §3, refreshed by RefreshAdaptive.
	currentSnapDivisionIdx int
	currentGridDivisionIdx int
}

// NewGridSnap builds a GridSnap with the §6 defaults.
func NewGridSnap() *GridSnap {
	g := &GridSnap{
		TicksPerBeat:      480,
		BeatsPerMeasure:   4,
		Mode:              SnapAdaptive,
		ManualDivisionIdx: 4, // 1/4
	}
	g.currentSnapDivisionIdx = g.ManualDivisionIdx
	g.currentGridDivisionIdx = g.ManualDivisionIdx
	return g
}

func (g *GridSnap) divisionTicks(idx int) Tick {
	idx = clampInt(idx, 0, len(divisionBase480)-1)
	scaled := float64(divisionBase480[idx]) * float64(g.TicksPerBeat) / 480.0
	return Tick(math.Round(scaled))
}

func (g *GridSnap) pixelSpacing(idx int, ppb float64) float64 {
	ticks := g.divisionTicks(idx)
	return float64(ticks) / float64(g.TicksPerBeat) * ppb
}

// AdaptiveSnapDivision returns the finest division whose pixel spacing at
// ppb is at or above the 10px minimum threshold.
func (g *GridSnap) AdaptiveSnapDivision(ppb float64) int {
	const minPx = 10.0
	for idx := 0; idx < len(divisionBase480); idx++ {
		if g.pixelSpacing(idx, ppb) >= minPx {
			return idx
		}
	}
	return len(divisionBase480) - 1
}

// AdaptiveGridDivision returns the division whose pixel spacing is closest
// to 30px among those at or below the 100px rejection ceiling.
func (g *GridSnap) AdaptiveGridDivision(ppb float64) int {
	const target = 30.0
	const maxPx = 100.0
	best := -1
	bestDist := math.Inf(1)
	for idx := 0; idx < len(divisionBase480); idx++ {
		spacing := g.pixelSpacing(idx, ppb)
		if spacing > maxPx {
			continue
		}
		dist := math.Abs(spacing - target)
		if dist < bestDist {
			bestDist = dist
			best = idx
		}
	}
	if best < 0 {
		return len(divisionBase480) - 1
	}
	return best
}

// RefreshAdaptive recomputes the cached current snap/grid divisions for the
// given zoom. In SnapManual and SnapOff it simply mirrors ManualDivisionIdx.
func (g *GridSnap) RefreshAdaptive(ppb float64) {
	if g.Mode == SnapAdaptive {
		g.currentSnapDivisionIdx = g.AdaptiveSnapDivision(ppb)
		g.currentGridDivisionIdx = g.AdaptiveGridDivision(ppb)
		return
	}
	g.currentSnapDivisionIdx = g.ManualDivisionIdx
	g.currentGridDivisionIdx = g.ManualDivisionIdx
}

// CurrentSnapDivisionTicks returns the tick span of the current snap
// division (after the most recent RefreshAdaptive).
func (g *GridSnap) CurrentSnapDivisionTicks() Tick {
	return g.divisionTicks(g.currentSnapDivisionIdx)
}

func roundToMultiple(t Tick, div Tick) Tick {
	if div <= 0 {
		return t
	}
	d := float64(div)
	return Tick(math.Round(float64(t)/d) * d)
}

// SnapTick rounds t to the nearest multiple of the current snap division.
// SnapOff is the identity. Negative inputs round to the nearest multiple,
// including negative multiples — they are not clamped to zero (unlike the
// floor/ceil variants below; see DESIGN.md for why the two disagree).
// modeOverride, if non-nil, is used instead of the stored Mode for this call.
func (g *GridSnap) SnapTick(t Tick, modeOverride *SnapMode) Tick {
	mode := g.Mode
	if modeOverride != nil {
		mode = *modeOverride
	}
	if mode == SnapOff {
		return t
	}
	idx := g.ManualDivisionIdx
	if mode == SnapAdaptive {
		idx = g.currentSnapDivisionIdx
	}
	return roundToMultiple(t, g.divisionTicks(idx))
}

// SnapTickFloor rounds t down to the current snap division, clamping
// negative results to zero.
func (g *GridSnap) SnapTickFloor(t Tick, modeOverride *SnapMode) Tick {
	mode := g.Mode
	if modeOverride != nil {
		mode = *modeOverride
	}
	if mode == SnapOff {
		if t < 0 {
			return 0
		}
		return t
	}
	idx := g.ManualDivisionIdx
	if mode == SnapAdaptive {
		idx = g.currentSnapDivisionIdx
	}
	div := g.divisionTicks(idx)
	if div <= 0 {
		return t
	}
	floored := Tick(math.Floor(float64(t)/float64(div))) * div
	if floored < 0 {
		floored = 0
	}
	return floored
}

// SnapTickCeil rounds t up to the current snap division, clamping negative
// results to zero.
func (g *GridSnap) SnapTickCeil(t Tick, modeOverride *SnapMode) Tick {
	mode := g.Mode
	if modeOverride != nil {
		mode = *modeOverride
	}
	if mode == SnapOff {
		if t < 0 {
			return 0
		}
		return t
	}
	idx := g.ManualDivisionIdx
	if mode == SnapAdaptive {
		idx = g.currentSnapDivisionIdx
	}
	div := g.divisionTicks(idx)
	if div <= 0 {
		return t
	}
	ceiled := Tick(math.Ceil(float64(t)/float64(div))) * div
	if ceiled < 0 {
		ceiled = 0
	}
	return ceiled
}

// MagneticSnap computes the nearest grid point at the current effective
// division for ppb (adaptive mode recomputes the finest valid division for
// ppb on every call; manual/off use the stored division), and reports
// didSnap=true only when the pixel distance to that grid point is within
// rangePx.
func (g *GridSnap) MagneticSnap(t Tick, ppb float64, rangePx float64) (Tick, bool) {
	idx := g.ManualDivisionIdx
	if g.Mode == SnapAdaptive {
		idx = g.AdaptiveSnapDivision(ppb)
	}
	div := g.divisionTicks(idx)
	snapped := roundToMultiple(t, div)
	distTicks := snapped - t
	if distTicks < 0 {
		distTicks = -distTicks
	}
	distPx := float64(distTicks) / float64(g.TicksPerBeat) * ppb
	if distPx <= rangePx {
		return snapped, true
	}
	return t, false
}

// GridLines emits vertical grid lines across tickRange, aligned to the
// adaptive grid division for ppb (grid density always follows zoom,
// independent of the snap Mode).
func (g *GridSnap) GridLines(tickRange TickRange, ppb float64) []GridLine {
	idx := g.AdaptiveGridDivision(ppb)
	div := g.divisionTicks(idx)
	if div <= 0 {
		return nil
	}
	measureTicks := Tick(g.TicksPerBeat * g.BeatsPerMeasure)
	beatTicks := Tick(g.TicksPerBeat)

	start := Tick(int64(tickRange.Start) / int64(div) * int64(div))
	if start < tickRange.Start {
		start += div
	}
	var lines []GridLine
	for t := start; t < tickRange.End; t += div {
		kind := GridSubdivision
		if measureTicks > 0 && int64(t)%int64(measureTicks) == 0 {
			kind = GridMeasure
		} else if beatTicks > 0 && int64(t)%int64(beatTicks) == 0 {
			kind = GridBeat
		}
		lines = append(lines, GridLine{Tick: t, Kind: kind})
	}
	return lines
}

// RulerLabels emits ruler labels across tickRange, with label density
// depending on ppb per the §4.3 thresholds. Bars and beats are 1-indexed.
func (g *GridSnap) RulerLabels(tickRange TickRange, ppb float64) []RulerLabel {
	measureTicks := int64(g.TicksPerBeat * g.BeatsPerMeasure)
	beatTicks := int64(g.TicksPerBeat)
	sixteenthTicks := int64(g.TicksPerBeat) / 4
	if sixteenthTicks <= 0 {
		sixteenthTicks = 1
	}

	barBeatText := func(t Tick) string {
		tt := int64(t)
		bar := tt/measureTicks + 1
		beat := (tt%measureTicks)/beatTicks + 1
		return fmt.Sprintf("%d.%d", bar, beat)
	}
	barOnlyText := func(t Tick) string {
		tt := int64(t)
		bar := tt/measureTicks + 1
		return fmt.Sprintf("%d", bar)
	}

	var step int64
	var textFn func(Tick) string
	switch {
	case ppb >= 460:
		step = sixteenthTicks
		textFn = barBeatText
	case ppb >= 67:
		step = beatTicks
		textFn = barBeatText
	case ppb >= 40:
		step = measureTicks
		textFn = barOnlyText
	default:
		step = measureTicks * 2
		textFn = barOnlyText
	}
	if step <= 0 {
		return nil
	}

	start := int64(tickRange.Start) / step * step
	if start < int64(tickRange.Start) {
		start += step
	}
	var labels []RulerLabel
	for tt := start; tt < int64(tickRange.End); tt += step {
		t := Tick(tt)
		labels = append(labels, RulerLabel{Tick: t, Text: textFn(t)})
	}
	return labels
}
