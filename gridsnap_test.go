package pianoroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapTickRoundsToNearestDivision(t *testing.T) {
	g := NewGridSnap()
	mode := SnapManual
	g.Mode = mode
	g.ManualDivisionIdx = 4 // 1/4 note (one beat) = 480 ticks at TicksPerBeat=480
	g.currentSnapDivisionIdx = g.ManualDivisionIdx

	assert.Equal(t, Tick(480), g.SnapTick(500, nil))
	assert.Equal(t, Tick(0), g.SnapTick(200, nil))
	assert.Equal(t, Tick(-480), g.SnapTick(-500, nil))
}

func TestSnapTickOffIsIdentity(t *testing.T) {
	g := NewGridSnap()
	off := SnapOff
	assert.Equal(t, Tick(123), g.SnapTick(123, &off))
}

func TestSnapTickFloorCeilClampNegative(t *testing.T) {
	g := NewGridSnap()
	g.Mode = SnapManual
	g.ManualDivisionIdx = 4

	assert.Equal(t, Tick(0), g.SnapTickFloor(-100, nil))
	assert.Equal(t, Tick(0), g.SnapTickCeil(-100, nil))
}

func TestAdaptiveSnapDivisionRespectsMinPixelThreshold(t *testing.T) {
	g := NewGridSnap()
	idx := g.AdaptiveSnapDivision(4000) // very zoomed in: finest division available
	assert.Equal(t, 0, idx)

	idx = g.AdaptiveSnapDivision(1) // very zoomed out: coarsest division
	assert.Equal(t, len(divisionBase480)-1, idx)
}

func TestMagneticSnapWithinRange(t *testing.T) {
	g := NewGridSnap()
	g.Mode = SnapManual
	g.ManualDivisionIdx = 4 // 480 ticks per beat division

	snapped, did := g.MagneticSnap(470, 60, 10)
	assert.True(t, did)
	assert.Equal(t, Tick(480), snapped)

	_, did = g.MagneticSnap(300, 60, 2)
	assert.False(t, did)
}

func TestGridLinesClassifiesMeasureAndBeat(t *testing.T) {
	g := NewGridSnap()
	lines := g.GridLines(TickRange{Start: 0, End: 1920 * 2}, 60)
	foundMeasure := false
	for _, l := range lines {
		if l.Kind == GridMeasure {
			foundMeasure = true
		}
	}
	assert.True(t, foundMeasure)
}
