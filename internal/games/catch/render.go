package catch

import (
	"fmt"
	"math"

	"github.com/vovakirdan/dropcatch/internal/config"
	"github.com/vovakirdan/dropcatch/internal/core"
)

// Visual characters for rendering
const (
	GoodChar   = '●'
	CoinChar   = '$'
	HazardChar = '▼'
	BasketChar = '▀'
)

// layout maps the logical field onto the screen. Row 0 is the HUD and
// the field sits inside a box below it.
type layout struct {
	box  core.Rect
	area core.Rect // Box interior
	sx   float64   // Cells per field unit
	sy   float64
}

func newLayout(w, h int, field config.FieldConfig) layout {
	box := core.NewRect(0, 1, core.Max(w, 3), core.Max(h-1, 3))
	area := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)
	return layout{
		box:  box,
		area: area,
		sx:   float64(area.W) / field.Width,
		sy:   float64(area.H) / field.Height,
	}
}

// toField returns the field point at the center of a screen cell.
func (l layout) toField(cx, cy int) (float64, float64) {
	return (float64(cx-l.area.X) + 0.5) / l.sx, (float64(cy-l.area.Y) + 0.5) / l.sy
}

// cells returns the screen cells whose centers fall inside r, at least one
// cell wide and tall. The result is not clipped.
func (l layout) cells(r core.RectF) core.Rect {
	x0 := int(math.Round(r.X * l.sx))
	x1 := int(math.Round(r.Right() * l.sx))
	y0 := int(math.Round(r.Y * l.sy))
	y1 := int(math.Round(r.Bottom() * l.sy))
	return core.NewRect(l.area.X+x0, l.area.Y+y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// fill draws r clipped to the field area.
func (l layout) fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	for y := core.Max(r.Y, l.area.Y); y < core.Min(r.Bottom(), l.area.Bottom()); y++ {
		for x := core.Max(r.X, l.area.X); x < core.Min(r.Right(), l.area.Right()); x++ {
			dst.SetColored(x, y, ch, c)
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	snap := g.session.Snapshot()
	field := g.session.Field()
	l := newLayout(dst.Width(), dst.Height(), field)

	g.drawHUD(dst, snap)
	dst.DrawBox(l.box, core.ColorFrame)

	for _, e := range snap.Entities {
		ch, c := entityGlyph(e.Kind)
		l.fill(dst, l.cells(core.NewRectF(e.X, e.Y, e.Size, e.Size)), ch, c)
	}

	basket := core.NewRectF(snap.Basket.X, snap.Basket.Y, snap.Basket.W, snap.Basket.H)
	basketColor := core.ColorBasket
	if snap.Basket.Dragging {
		basketColor = core.ColorBasketDrag
	}
	l.fill(dst, l.cells(basket), BasketChar, basketColor)

	if g.milestone != "" {
		dst.DrawTextCentered(l.area.Y, g.milestone, core.ColorMilestone)
	}

	switch snap.Phase {
	case PhaseIdle.String():
		g.drawCenteredMessage(dst, core.ColorBanner,
			g.title,
			fmt.Sprintf("Difficulty: %s  |  Goal: %s  |  Time: %ds", snap.Difficulty, goalText(snap.Goal), snap.TimeLeft),
			"Enter: start  ←/→: move  1/2/3: difficulty")
	case PhaseEnded.String():
		g.drawResult(dst)
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" Score: %d  Coins: %d  Time: %ds  Goal: %s  [%s]",
		snap.Score, snap.Coins, snap.TimeLeft, goalText(snap.Goal), snap.Difficulty)
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)

	best := fmt.Sprintf("Best: %d ", snap.HighScore)
	dst.DrawTextColored(dst.Width()-len(best), 0, best, core.ColorBest)
}

func (g *Game) drawResult(dst *core.Screen) {
	if g.result == nil {
		return
	}
	r := g.result

	title, color := "TIME'S UP", core.ColorLose
	if r.Won {
		title, color = "YOU WIN!", core.ColorWin
	}

	stats := fmt.Sprintf("Score: %d  |  Coins: %d", r.Score, r.Coins)
	if r.Goal > 0 {
		stats += fmt.Sprintf("  |  Goal: %d", r.Goal)
	}
	best := fmt.Sprintf("High score: %d", r.HighScore)
	if r.NewHighScore {
		best = fmt.Sprintf("New high score: %d!", r.HighScore)
	}

	g.drawCenteredMessage(dst, color, title, stats, best, "Enter: play again  d: difficulty")
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, c core.Color, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, line := range lines {
		boxW = core.Max(boxW, len([]rune(line)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	dst.DrawTextCentered(boxY+1, title, c)
	for i, line := range lines {
		dst.DrawTextCentered(boxY+3+i, line, core.ColorDefault)
	}
}

func entityGlyph(kind string) (rune, core.Color) {
	switch kind {
	case KindCoin.String():
		return CoinChar, core.ColorCoin
	case KindHazard.String():
		return HazardChar, core.ColorHazard
	default:
		return GoodChar, core.ColorDrop
	}
}

func goalText(goal int) string {
	if goal <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", goal)
}
