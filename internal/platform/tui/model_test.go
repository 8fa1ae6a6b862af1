package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dropcatch/internal/core"
	"github.com/vovakirdan/dropcatch/internal/games/catch"
	"github.com/vovakirdan/dropcatch/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	g := catch.New()
	g.SetDifficulty("hard")
	m := NewModel(g, store, testConfig(), log.New(io.Discard))
	m.Init()
	return m
}

func TestModelPlaysAndRecordsRound(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, store)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	if !m.State().Running {
		t.Fatalf("enter should start a round, state %+v", m.State())
	}

	for i := 0; i < 60*21 && !m.State().GameOver; i++ {
		m = update(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("hard round should end within 21 seconds")
	}

	// Extra ticks must not record the round twice
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	scores, err := store.TopScores(catch.GameID, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 recorded round, got %d", len(scores))
	}
	if scores[0].Difficulty != "hard" || scores[0].Goal != 20 || scores[0].SessionID == "" {
		t.Errorf("recorded round = %+v", scores[0])
	}

	if !strings.Contains(m.View(), "play again") {
		t.Error("result screen should offer replay")
	}
}

func TestModelBackBetweenRounds(t *testing.T) {
	m := newTestModel(t, nil)
	m.embedded = true

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored while a round is running")
	}
}

func TestModelBackFromIdle(t *testing.T) {
	m := newTestModel(t, nil)
	m.embedded = true

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back on the idle screen should return to the menu")
	}
	if m.View() != "" {
		t.Error("model should render nothing after leaving")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)

	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, TickMsg{})

	if !m.State().Running {
		t.Error("resize should not reset the running round")
	}
	if !strings.Contains(m.View(), "Score:") {
		t.Error("HUD should still be drawn after resize")
	}
}
