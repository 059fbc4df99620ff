package pianoroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRect() *DraggableRect {
	return NewDraggableRect(Rect{Left: 100, Right: 200, Top: 0, Bottom: 20})
}

func TestDraggableRectHoverClassification(t *testing.T) {
	d := newTestRect()
	assert.Equal(t, Idle, d.HoverTest(50, 10))
	assert.Equal(t, HoveringLeftEdge, d.HoverTest(100, 10))
	assert.Equal(t, HoveringRightEdge, d.HoverTest(200, 10))
	assert.Equal(t, HoveringBody, d.HoverTest(150, 10))
	assert.Equal(t, Idle, d.HoverTest(150, 30))
}

func TestDraggableRectDragMovesBothEdges(t *testing.T) {
	d := newTestRect()
	assert.True(t, d.OnMouseDown(150, 10))
	d.OnMouseMove(170, 10)
	assert.Equal(t, 120.0, d.Bounds.Left)
	assert.Equal(t, 220.0, d.Bounds.Right)
	d.OnMouseUp()
	assert.Equal(t, Idle, d.State)
}

func TestDraggableRectResizeRespectsMinWidth(t *testing.T) {
	d := newTestRect()
	d.MinWidth = 50
	assert.True(t, d.OnMouseDown(200, 10)) // right edge
	d.OnMouseMove(110, 10)                 // try to shrink below MinWidth
	assert.Equal(t, 150.0, d.Bounds.Right) // clamped: left(100) + MinWidth(50)
}

func TestDraggableRectPreviewDeferredUntilMouseUp(t *testing.T) {
	d := newTestRect()
	d.ShowDragPreview = true
	finalized := false
	d.OnFinalize = func(Rect) { finalized = true }

	assert.True(t, d.OnMouseDown(150, 10))
	d.OnMouseMove(160, 10)
	assert.Equal(t, 100.0, d.Bounds.Left, "Bounds unchanged while previewing")
	assert.Equal(t, 110.0, d.PreviewBounds.Left)
	assert.False(t, finalized)

	d.OnMouseUp()
	assert.True(t, finalized)
	assert.Equal(t, 110.0, d.Bounds.Left)
}

func TestDraggableRectSnapValueAppliedOnDrag(t *testing.T) {
	d := newTestRect()
	d.SnapEnabled = true
	d.SnapValue = func(v float64) float64 { return 100 }

	assert.True(t, d.OnMouseDown(150, 10))
	d.OnMouseMove(999, 10)
	assert.Equal(t, 100.0, d.Bounds.Left)
	assert.Equal(t, 200.0, d.Bounds.Right) // width preserved
}
