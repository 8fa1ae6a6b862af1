package catch

import (
	"github.com/vovakirdan/dropcatch/internal/config"
	"github.com/vovakirdan/dropcatch/internal/core"
)

// Basket is the player-controlled catcher resting on the bottom edge.
// X is always kept within [0, fieldWidth-width].
type Basket struct {
	x      float64
	width  float64
	height float64
	step   float64
	fieldW float64
	fieldH float64

	dragging bool
	offset   float64 // Pointer x minus basket x at drag start
}

// NewBasket creates a centered basket.
func NewBasket(cfg config.BasketConfig, field config.FieldConfig) Basket {
	b := Basket{
		width:  cfg.Width,
		height: cfg.Height,
		step:   cfg.Step,
		fieldW: field.Width,
		fieldH: field.Height,
	}
	b.Center()
	return b
}

// X returns the left edge.
func (b *Basket) X() float64 {
	return b.x
}

// Center places the basket in the middle of the field and ends any drag.
func (b *Basket) Center() {
	b.dragging = false
	b.SetX((b.fieldW - b.width) / 2)
}

// SetX moves the left edge to x, clamped to the field.
func (b *Basket) SetX(x float64) {
	b.x = core.ClampF(x, 0, b.fieldW-b.width)
}

// MoveLeft moves one step left.
func (b *Basket) MoveLeft() {
	b.SetX(b.x - b.step)
}

// MoveRight moves one step right.
func (b *Basket) MoveRight() {
	b.SetX(b.x + b.step)
}

// Rect returns the basket's bounding box.
func (b *Basket) Rect() core.RectF {
	return core.NewRectF(b.x, b.fieldH-b.height, b.width, b.height)
}

// PointerDown begins a drag if the pointer is on the basket.
func (b *Basket) PointerDown(px, py float64) bool {
	if !b.Rect().ContainsPoint(px, py) {
		return false
	}
	b.dragging = true
	b.offset = px - b.x
	return true
}

// PointerMove repositions the basket during a drag.
// It returns false when no drag is in progress.
func (b *Basket) PointerMove(px float64) bool {
	if !b.dragging {
		return false
	}
	b.SetX(px - b.offset)
	return true
}

// PointerUp ends the drag.
func (b *Basket) PointerUp() {
	b.dragging = false
	b.offset = 0
}

// Dragging reports whether a drag is in progress.
func (b *Basket) Dragging() bool {
	return b.dragging
}
