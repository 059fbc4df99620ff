package pianoroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestScrollbar() *CustomScrollbar {
	sb := NewCustomScrollbar(500)
	sb.ViewportWidth = 1000
	sb.ExploredMin = 0
	sb.ExploredMax = 5000
	sb.ScrollPosition = 0
	return sb
}

func TestScrollbarThumbGeometry(t *testing.T) {
	sb := newTestScrollbar()
	assert.InDelta(t, 100.0, sb.ThumbWidth(), 1e-9) // 500 * (1000/5000)
	assert.Equal(t, 0.0, sb.ThumbX())

	sb.ScrollPosition = 2000 // halfway through the scrollable range (4000)
	assert.InDelta(t, 200.0, sb.ThumbX(), 1e-9)
}

func TestScrollbarThumbWidthClampedToMinimum(t *testing.T) {
	sb := newTestScrollbar()
	sb.ExploredMax = 1000000 // huge explored span shrinks the thumb far below minimum
	assert.Equal(t, minThumbWidth, sb.ThumbWidth())
}

func TestScrollbarBodyDragScrollsProportionally(t *testing.T) {
	sb := newTestScrollbar()
	var gotScroll float64
	sb.OnScroll = func(v float64) { gotScroll = v }

	sb.OnMouseDown(50, 0) // inside the thumb body [0,100]
	sb.OnMouseMove(50+sb.ClickThreshold+1, 0)
	assert.Greater(t, gotScroll, 0.0)
}

func TestScrollbarPageScrollOutsideThumb(t *testing.T) {
	sb := newTestScrollbar()
	var gotScroll float64
	sb.OnScroll = func(v float64) { gotScroll = v }

	sb.OnMouseDown(400, 0) // well past the thumb's right edge
	assert.InDelta(t, 0.9*sb.ViewportWidth, gotScroll, 1e-9)
}

func TestScrollbarEdgeResizeZoomsAndPreservesOppositeEdge(t *testing.T) {
	sb := newTestScrollbar()
	sb.PixelsPerBeat = 60
	sb.TicksPerBeat = 480

	var newPPB, newScroll float64
	sb.OnEdgeZoom = func(ppb, scroll float64) { newPPB, newScroll = ppb, scroll }

	thumbX := sb.ThumbX()
	sb.OnMouseDown(thumbX+sb.ThumbWidth(), 0) // right edge
	assert.True(t, sb.IsActive())
	sb.applyEdgeResize(thumbX + sb.ThumbWidth() + 50)

	assert.Greater(t, newPPB, 0.0)
	_ = newScroll
	sb.OnMouseUp()
	assert.False(t, sb.IsActive())
}

func TestScrollbarFitToClipSetsPPBAndRange(t *testing.T) {
	sb := newTestScrollbar()
	sb.TicksPerBeat = 480
	sb.FitToClip(480, 1920) // one bar starting at beat 1

	assert.InDelta(t, sb.ViewportWidth/(1920.0/480.0), sb.PixelsPerBeat, 1e-6)
	assert.InDelta(t, float64(480)/480.0*sb.PixelsPerBeat, sb.ScrollPosition, 1e-6)
	assert.InDelta(t, sb.ScrollPosition, sb.ExploredMin, 1e-9)
}

func TestScrollbarDoubleClickThumb(t *testing.T) {
	sb := newTestScrollbar()
	fired := false
	sb.OnDoubleClickThumb = func() { fired = true }

	assert.False(t, sb.DoubleClickThumb(300)) // outside the thumb [0,100]
	assert.False(t, fired)

	assert.True(t, sb.DoubleClickThumb(50))
	assert.True(t, fired)
}
