package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dropcatch/internal/registry"
	"github.com/vovakirdan/dropcatch/internal/storage"
)

const (
	scoreboardRows  = 50 // Rounds loaded per view
	scoreboardChrome = 11 // Lines taken by title, tabs, filter, stats and help
	allDifficulties = "all"
)

// scoreboardKeys are the scoreboard bindings; they double as its help line.
type scoreboardKeys struct {
	Scroll  key.Binding
	Variant key.Binding
	Filter  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Variant, k.Filter, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	nextVariantKey = key.NewBinding(key.WithKeys("tab", "right", "l"))
	prevVariantKey = key.NewBinding(key.WithKeys("shift+tab", "left", "h"))

	defaultScoreboardKeys = scoreboardKeys{
		Scroll:  key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Variant: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/←/→", "variant")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "difficulty")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
)

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	sbTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("208")).Padding(0, 1)
	sbFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbEmptyStyle  = sbDimStyle.Italic(true).Padding(1, 2)
)

// ScoreboardModel lists recorded rounds per variant, optionally narrowed
// to one difficulty.
type ScoreboardModel struct {
	store    *storage.Store
	variants []registry.GameInfo
	variant  int

	filters []string // allDifficulties followed by the recorded difficulties
	filter  int

	rounds []storage.ScoreEntry
	stats  *storage.GameStats

	table table.Model
	help  help.Model
	keys  scoreboardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard showing the first variant.
// store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		variants: registry.List(),
		keys:     defaultScoreboardKeys,
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.table = newRoundsTable(height)
	m.reload(true)
	return m
}

func newRoundsTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 6},
			{Title: "Coins", Width: 6},
			{Title: "Level", Width: 8},
			{Title: "Won", Width: 4},
			{Title: "Played", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-scoreboardChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) gameID() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.variant].ID
}

func (m ScoreboardModel) difficulty() string {
	if m.filter == 0 || m.filter >= len(m.filters) {
		return ""
	}
	return m.filters[m.filter]
}

// reload fetches rounds for the current variant and filter. A variant
// change rebuilds the filter list from what was actually played.
func (m *ScoreboardModel) reload(variantChanged bool) {
	m.rounds = nil
	if variantChanged {
		m.filters = []string{allDifficulties}
		m.filter = 0
		m.stats = nil
	}

	if m.store != nil && m.gameID() != "" {
		if variantChanged {
			if levels, err := m.store.Difficulties(m.gameID()); err == nil {
				m.filters = append(m.filters, levels...)
			}
			if stats, err := m.store.GetGameStats(m.gameID()); err == nil {
				m.stats = stats
			}
		}
		if rounds, err := m.store.TopScoresByDifficulty(m.gameID(), m.difficulty(), scoreboardRows); err == nil {
			m.rounds = rounds
		}
	}

	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		won := ""
		if r.Won {
			won = "✓"
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Coins),
			r.Difficulty,
			won,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, nextVariantKey):
			m.cycleVariant(1)
			return m, nil
		case key.Matches(msg, prevVariantKey):
			m.cycleVariant(-1)
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % len(m.filters)
			m.reload(false)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-scoreboardChrome, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycleVariant(step int) {
	n := len(m.variants)
	if n == 0 {
		return
	}
	m.variant = (m.variant + step + n) % n
	m.reload(true)
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(sbTitleStyle.Render("R E C O R D E D   R O U N D S"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.variant {
			tabs[i] = sbActiveStyle.Render(v.Title)
		} else {
			tabs[i] = sbTabStyle.Render(v.Title)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(sbDimStyle.Render(m.filterLine()), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.rounds) == 0 {
		body = sbEmptyStyle.Render("No rounds recorded yet.\nFinish a round to set a high score!")
	}
	b.WriteString(centerText(sbFrameStyle.Render(body), m.width))

	if line := m.statsLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(centerText(line, m.width))
	}
	b.WriteString("\n")
	b.WriteString(sbDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// filterLine shows the difficulty filter with the active entry bracketed.
func (m ScoreboardModel) filterLine() string {
	parts := make([]string, len(m.filters))
	for i, f := range m.filters {
		if i == m.filter {
			parts[i] = "[" + f + "]"
		} else {
			parts[i] = f
		}
	}
	return "Difficulty: " + strings.Join(parts, " ")
}

// statsLine summarizes every recorded round of the selected variant.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Rounds: %d  Wins: %d  Best: %d  Avg: %.1f  Coins: %d",
		m.stats.GamesCount, m.stats.Wins, m.stats.HighScore, m.stats.AvgScore, m.stats.TotalCoins)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
// goBack is true when the user left with back rather than quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
