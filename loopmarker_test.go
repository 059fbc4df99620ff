package pianoroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopMarkerSetRangeAndTickRoundTrip(t *testing.T) {
	lm := NewLoopMarker(480, 0, 20)
	const ppb = 60.0
	lm.SetRange(480, 1920, ppb)

	assert.Equal(t, Tick(480), lm.StartTick(ppb))
	assert.Equal(t, Tick(1920), lm.EndTick(ppb))
}

func TestLoopMarkerSetRangeIgnoresInvertedRange(t *testing.T) {
	lm := NewLoopMarker(480, 0, 20)
	lm.SetRange(480, 1920, 60)
	before := lm.Bounds()

	lm.SetRange(1920, 480, 60) // end before start: no-op
	assert.Equal(t, before, lm.Bounds())
}

func TestLoopMarkerDragFiresOnFinalize(t *testing.T) {
	lm := NewLoopMarker(480, 0, 20)
	lm.SetRange(480, 1920, 60)

	var finalBounds Rect
	fired := false
	lm.OnFinalize(func(r Rect) { finalBounds = r; fired = true })

	b := lm.Bounds()
	midX := (b.Left + b.Right) / 2
	assert.True(t, lm.OnMouseDown(midX, 10))
	lm.OnMouseMove(midX+60, 10)
	lm.OnMouseUp()

	assert.True(t, fired)
	assert.False(t, lm.IsActive())
	assert.Equal(t, finalBounds, lm.Bounds())
}

func TestLoopMarkerSnapsToQuarterBeat(t *testing.T) {
	lm := NewLoopMarker(480, 0, 20)
	lm.SetRange(0, 1920, 60)

	b := lm.Bounds()
	assert.True(t, lm.OnMouseDown(b.Right, 10)) // right edge
	lm.OnMouseMove(b.Right+7, 10)                // nudge past a clean quarter-beat boundary
	lm.OnMouseUp()

	quarter := 60.0 / 4
	newRight := lm.Bounds().Right
	remainder := newRight / quarter
	assert.InDelta(t, remainder, float64(int64(remainder+0.5)), 1e-6)
}
