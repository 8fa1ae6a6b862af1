package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dropcatch/internal/core"
)

// palette holds the terminal style for each colour role. Adaptive colours
// keep drops and hazards readable on light backgrounds too.
var palette = [...]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorFrame:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorHUD:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"}),
	core.ColorBest:       lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "136", Dark: "3"}),
	core.ColorDrop:       lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "26", Dark: "12"}),
	core.ColorCoin:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "136", Dark: "11"}),
	core.ColorHazard:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "9"}),
	core.ColorBasket:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorBasketDrag: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	core.ColorMilestone:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	core.ColorBanner:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWin:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	core.ColorLose:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
}

func styleFor(c core.Color) lipgloss.Style {
	if !c.Valid() || int(c) >= len(palette) {
		return palette[core.ColorDefault]
	}
	return palette[c]
}

// span is a horizontal stretch of cells sharing one colour role.
type span struct {
	text  string
	color core.Color
}

// rowSpans splits row y into same-coloured spans, so each run costs a
// single pair of escape sequences.
func rowSpans(s *core.Screen, y int) []span {
	var spans []span
	var run []rune
	color := core.ColorDefault

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if len(run) > 0 && cell.Color != color {
			spans = append(spans, span{text: string(run), color: color})
			run = run[:0]
		}
		color = cell.Color
		run = append(run, cell.Rune)
	}
	if len(run) > 0 {
		spans = append(spans, span{text: string(run), color: color})
	}
	return spans
}

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, sp := range rowSpans(s, y) {
			if sp.color == core.ColorDefault {
				sb.WriteString(sp.text)
				continue
			}
			sb.WriteString(styleFor(sp.color).Render(sp.text))
		}
	}
	return sb.String()
}
