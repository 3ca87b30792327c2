package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stake-arcade/internal/config"
	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/games/racer"
)

func newTestModel(t *testing.T) GameModel {
	t.Helper()
	cfg := config.DefaultRacerConfig()
	cfg.Obstacles.Probability = 0
	cfg.Pickups.Probability = 0

	return NewGameModel(racer.NewWithConfig(cfg), nil, core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 20,
		Seed:     1,
	}, nil)
}

func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func liveTick(m GameModel) TickMsg {
	return TickMsg{Gen: m.sched.gen}
}

func TestEnterStartsRound(t *testing.T) {
	m := newTestModel(t)
	if m.Snapshot().State != core.RoundIdle {
		t.Fatal("model should start idle")
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Snapshot().State != core.RoundRunning {
		t.Fatalf("state = %v, expected running", m.Snapshot().State)
	}
	if cmd == nil {
		t.Error("start should schedule the first tick")
	}
}

func TestTickAdvancesOnlyLiveGeneration(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := send(t, m, liveTick(m))
	if m.Snapshot().Ticks != 1 {
		t.Fatalf("ticks = %d, expected 1", m.Snapshot().Ticks)
	}
	if cmd == nil {
		t.Error("a running round should request the next tick")
	}

	stale := TickMsg{Gen: m.sched.gen + 1}
	m, cmd = send(t, m, stale)
	if m.Snapshot().Ticks != 1 {
		t.Error("stale tick must not advance the round")
	}
	if cmd != nil {
		t.Error("stale tick must not schedule")
	}
}

func TestStopDropsInFlightTick(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	inFlight := liveTick(m)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Snapshot().State != core.RoundIdle {
		t.Fatalf("state = %v, expected idle", m.Snapshot().State)
	}
	if m.BackToMenu() {
		t.Error("esc during a round should stop it, not leave")
	}

	m, _ = send(t, m, inFlight)
	if m.Snapshot().Ticks != 0 {
		t.Error("tick scheduled before Stop must be dropped")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while idle should go back")
	}
}

func TestHeldKeyDecays(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})

	hold := m.holdTicks
	car := racerCar(t, m)
	start := car.X

	for i := 0; i < hold+5; i++ {
		m, _ = send(t, m, liveTick(m))
	}

	moved := racerCar(t, m).X - start
	// The key is released on the tick it expires, before that tick moves the car
	want := float64(hold-1) * config.DefaultRacerConfig().Car.Speed
	if moved != want {
		t.Errorf("car moved %v, expected %v for a %d-tick hold", moved, want, hold)
	}
}

func TestOppositeKeyReleases(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	if _, ok := m.held[core.KeyRight]; ok {
		t.Error("pressing left should release right")
	}
	if m.held[core.KeyLeft] != m.holdTicks {
		t.Errorf("left hold = %d, expected %d", m.held[core.KeyLeft], m.holdTicks)
	}
}

func TestViewShowsHUDAndOverlay(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
	if !containsAll(view, "Crypto Racer", "Score", "Press Enter to start") {
		t.Errorf("idle view missing HUD or prompt:\n%s", view)
	}
}

func TestSchedulerNextConsumesRequest(t *testing.T) {
	s := newTeaScheduler(60)
	if s.next() != nil {
		t.Error("no tick was requested")
	}
	s.ScheduleNextTick()
	if s.next() == nil {
		t.Fatal("requested tick not returned")
	}
	if s.next() != nil {
		t.Error("one request must yield one tick")
	}

	s.ScheduleNextTick()
	s.Cancel()
	if s.next() != nil {
		t.Error("cancel must drop the pending request")
	}
	if s.accept(TickMsg{Gen: 0}) {
		t.Error("ticks from before Cancel must be rejected")
	}
}

func racerCar(t *testing.T, m GameModel) core.Rect {
	t.Helper()
	g, ok := m.runner.Game().(*racer.Game)
	if !ok {
		t.Fatalf("game is %T", m.runner.Game())
	}
	return g.Car()
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !contains(s, sub) {
			return false
		}
	}
	return true
}

func contains(s, sub string) bool {
	return len(sub) == 0 || indexOf(s, sub) >= 0
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
