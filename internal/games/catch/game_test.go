package catch

import (
	"strings"
	"testing"

	"github.com/vovakirdan/dropcatch/internal/core"
	"github.com/vovakirdan/dropcatch/internal/registry"
)

func newTestGame(t *testing.T, g *Game) *Game {
	t.Helper()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestGamesRegistered(t *testing.T) {
	for _, id := range []string{GameID, ClassicGameID} {
		if !registry.Exists(id) {
			t.Errorf("game %q should be registered", id)
		}
	}

	g, err := registry.Create(ClassicGameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Drop Catch Classic" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestGameIdleScreen(t *testing.T) {
	g := newTestGame(t, New())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Enter: start") {
		t.Errorf("idle screen should show start hint:\n%s", out)
	}
	if st := g.State(); st.Running || st.GameOver {
		t.Errorf("new game should be idle, got %+v", st)
	}
}

func TestGameStartAndDifficultyKeys(t *testing.T) {
	g := newTestGame(t, New())

	res := step(g, core.ActionHard)
	if res.State.Difficulty != "hard" || res.State.TimeLeft != 20 {
		t.Errorf("after hard key: %+v", res.State)
	}

	res = step(g, core.ActionDifficultyNext)
	if res.State.Difficulty != "easy" {
		t.Errorf("difficulty cycle from hard should wrap to easy, got %s", res.State.Difficulty)
	}

	res = step(g, core.ActionConfirm)
	if !res.State.Running || res.State.TimeLeft != 40 {
		t.Errorf("confirm should start an easy round, got %+v", res.State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Score: 0") || !strings.Contains(screen.Row(0), "[easy]") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
}

func TestGameKeyboardMovesBasket(t *testing.T) {
	g := newTestGame(t, New())
	step(g, core.ActionConfirm)

	x := g.Session().State().BasketX
	step(g, core.ActionLeft)
	if got := g.Session().State().BasketX; got != x-30 {
		t.Errorf("BasketX = %v, expected %v", got, x-30)
	}
}

func TestGamePointerDrag(t *testing.T) {
	g := newTestGame(t, New())
	step(g, core.ActionConfirm)

	s := g.Session()
	l := newLayout(80, 24, s.Field())
	snap := s.Snapshot()
	cells := l.cells(core.NewRectF(snap.Basket.X, snap.Basket.Y, snap.Basket.W, snap.Basket.H))

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Phase: core.PointerDown, X: cells.X, Y: cells.Y})
	in.AddPointer(core.PointerEvent{Phase: core.PointerMove, X: cells.X - 10, Y: cells.Y})
	g.Step(in)

	if !s.Snapshot().Basket.Dragging {
		t.Fatal("pointer down on the drawn basket should start a drag")
	}
	if got := s.State().BasketX; got >= snap.Basket.X {
		t.Errorf("dragging left should move the basket left: %v -> %v", snap.Basket.X, got)
	}

	in.Clear()
	in.AddPointer(core.PointerEvent{Phase: core.PointerUp})
	g.Step(in)
	if s.Snapshot().Basket.Dragging {
		t.Error("pointer up should end the drag")
	}
}

func TestGameRoundEnds(t *testing.T) {
	g := newTestGame(t, New())
	step(g, core.ActionHard)
	step(g, core.ActionConfirm)

	var res core.StepResult
	for i := 0; i < 60*21 && !res.State.GameOver; i++ {
		res = step(g)
	}
	if !res.State.GameOver || res.State.Running {
		t.Fatalf("round should end after 20s, got %+v", res.State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "TIME'S UP") && !strings.Contains(out, "YOU WIN!") {
		t.Errorf("result box missing:\n%s", out)
	}
	if !strings.Contains(out, "play again") {
		t.Errorf("result box should offer replay:\n%s", out)
	}

	res = step(g, core.ActionRestart)
	if !res.State.Running || res.State.Score != 0 || res.State.Difficulty != "hard" {
		t.Errorf("restart should replay the last difficulty, got %+v", res.State)
	}
}

func TestGameMilestoneMessageExpires(t *testing.T) {
	g := newTestGame(t, New())
	step(g, core.ActionConfirm)

	g.onEvent(MilestoneReached{Milestone: MilestoneHalf, Text: MilestoneHalf.Text()})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Halfway there!") {
		t.Error("milestone text should be drawn")
	}

	for i := 0; i < 60*3; i++ {
		step(g)
	}
	g.Render(screen)
	if strings.Contains(screen.String(), "Halfway there!") {
		t.Error("milestone text should disappear after a few seconds")
	}
}

func TestClassicGameIgnoresDifficulty(t *testing.T) {
	g := newTestGame(t, NewClassic())

	res := step(g, core.ActionEasy)
	if res.State.Difficulty != "classic" || res.State.Goal != 0 || res.State.TimeLeft != 30 {
		t.Errorf("classic state = %+v", res.State)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	g := newTestGame(t, New())
	l := newLayout(80, 24, g.Session().Field())

	// Every cell of a drawn rectangle maps back inside it
	r := core.NewRectF(260, 470, 80, 30)
	cells := l.cells(r)
	for y := cells.Y; y < cells.Bottom(); y++ {
		for x := cells.X; x < cells.Right(); x++ {
			fx, fy := l.toField(x, y)
			if !r.ContainsPoint(fx, fy) {
				t.Errorf("cell (%d,%d) maps to (%.1f,%.1f) outside %+v", x, y, fx, fy, r)
			}
		}
	}
}

func TestGameSetDifficultyOverridesDefault(t *testing.T) {
	g := New()
	g.SetDifficulty("hard")
	newTestGame(t, g)

	if st := g.State(); st.Difficulty != "hard" || st.TimeLeft != 20 {
		t.Errorf("state after SetDifficulty(hard) = %+v", st)
	}
}

func TestGameResizeKeepsSession(t *testing.T) {
	g := newTestGame(t, New())
	step(g, core.ActionConfirm)
	s := g.Session()

	g.Resize(120, 40)
	step(g)
	if g.Session() != s || !g.State().Running {
		t.Error("resize should keep the running session")
	}
}
