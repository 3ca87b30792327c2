package storage

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/round"
)

type stubGame struct{}

func (stubGame) ID() string                     { return "racer" }
func (stubGame) Title() string                  { return "Stub" }
func (stubGame) Begin(*rand.Rand, core.Outcome) {}
func (stubGame) Step(core.Tick) core.Outcome    { return core.Outcome{} }
func (stubGame) Clear()                         {}
func (stubGame) Telemetry() core.Telemetry      { return core.Telemetry{} }
func (stubGame) Render(*core.Screen)            {}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func recordScore(t *testing.T, store *Store, gameID string, score int, at time.Time) {
	t.Helper()
	err := store.RecordRound(round.Result{
		ID:      uuid.New(),
		GameID:  gameID,
		Score:   score,
		EndedAt: at,
	})
	if err != nil {
		t.Fatalf("RecordRound() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestBestScoreCell(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Best("racer"); err != nil || ok {
		t.Fatalf("Best() on empty store = ok %v, err %v; expected no value", ok, err)
	}

	if err := store.SetBest("racer", 130); err != nil {
		t.Fatalf("SetBest() failed: %v", err)
	}
	if err := store.SetBest("racer", 250); err != nil {
		t.Fatalf("SetBest() overwrite failed: %v", err)
	}
	if err := store.SetBest("maze", 950); err != nil {
		t.Fatalf("SetBest() failed: %v", err)
	}

	if err := store.SetBest("racer", 90); err != nil {
		t.Fatalf("SetBest() lower score failed: %v", err)
	}

	best, ok, err := store.Best("racer")
	if err != nil || !ok || best != 250 {
		t.Errorf("Best(racer) = %d, %v, %v; expected 250", best, ok, err)
	}
	best, _, _ = store.Best("maze")
	if best != 950 {
		t.Errorf("Best(maze) = %d, expected 950", best)
	}
}

func TestBestScoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "arcade.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SetBest("maze", 1200); err != nil {
		t.Fatalf("SetBest() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if best, ok, _ := store.Best("maze"); !ok || best != 1200 {
		t.Errorf("Best(maze) after reopen = %d (ok=%v), expected 1200", best, ok)
	}
}

func TestCorruptBestScore(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.db.Exec("INSERT INTO best_scores (game_id, value) VALUES ('racer', 'NaN')"); err != nil {
		t.Fatalf("seed corrupt cell: %v", err)
	}

	best, ok, err := store.Best("racer")
	if !errors.Is(err, ErrCorruptBest) {
		t.Fatalf("err = %v, expected ErrCorruptBest", err)
	}
	if ok || best != 0 {
		t.Errorf("corrupt cell returned %d (ok=%v)", best, ok)
	}

	// The runner treats the corrupt cell as no prior best
	r := round.New(stubGame{}, round.WithStore(store))
	if got := r.Snapshot().HighScore; got != 0 {
		t.Errorf("runner high score = %d, expected 0", got)
	}

	if err := store.SetBest("racer", 40); err != nil {
		t.Fatalf("SetBest() over corrupt cell failed: %v", err)
	}
	if best, ok, err := store.Best("racer"); err != nil || !ok || best != 40 {
		t.Errorf("Best(racer) = %d, %v, %v; expected 40", best, ok, err)
	}
}

// scoredGame ends its round on the first tick with a fixed score.
type scoredGame struct {
	stubGame
	score int
}

func (g *scoredGame) Step(core.Tick) core.Outcome { return core.Outcome{Ended: true} }
func (g *scoredGame) Telemetry() core.Telemetry   { return core.Telemetry{Score: g.score} }

func TestSharedStoreKeepsHighestBest(t *testing.T) {
	store := openTestStore(t)
	if err := store.SetBest("racer", 100); err != nil {
		t.Fatalf("SetBest() failed: %v", err)
	}

	// Both sessions read best=100 before either round ends
	high := &scoredGame{score: 500}
	low := &scoredGame{score: 200}
	first := round.New(high, round.WithStore(store))
	second := round.New(low, round.WithStore(store))

	first.Start()
	first.Frame()
	second.Start()
	second.Frame()

	for name, r := range map[string]*round.Runner{"first": first, "second": second} {
		if res, ok := r.LastResult(); !ok || !res.NewBest {
			t.Errorf("%s runner: result %+v (ok=%v), expected a new best", name, res, ok)
		}
	}

	best, ok, err := store.Best("racer")
	if err != nil || !ok || best != 500 {
		t.Errorf("Best(racer) = %d, %v, %v; expected 500", best, ok, err)
	}
}

func TestRecordRoundAndTopScores(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	id := uuid.New()
	err := store.RecordRound(round.Result{
		ID:           id,
		GameID:       "maze",
		Score:        950,
		Victory:      true,
		TokensEarned: 0.095,
		Level:        1,
		Ticks:        600,
		Duration:     10 * time.Second,
		EndedAt:      base,
	})
	if err != nil {
		t.Fatalf("RecordRound() failed: %v", err)
	}
	recordScore(t, store, "maze", 1100, base.Add(time.Minute))
	recordScore(t, store, "maze", 300, base.Add(2*time.Minute))
	recordScore(t, store, "racer", 130, base)

	scores, err := store.TopScores("maze", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 maze rounds, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{1100, 950, 300}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}

	got := scores[1]
	if got.ID != id || !got.Victory || got.Level != 1 || got.Ticks != 600 || got.Duration != 10000 {
		t.Errorf("round fields not preserved: %+v", got)
	}
	if math.Abs(got.TokensEarned-0.095) > 1e-9 {
		t.Errorf("tokens = %v, expected 0.095", got.TokensEarned)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("created_at = %v, expected %v", got.CreatedAt, base)
	}
}

func TestTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	for i := 0; i < 5; i++ {
		recordScore(t, store, "racer", (i+1)*100, now)
	}

	scores, err := store.TopScores("racer", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, _ := store.TopScores("racer", 0)
	if len(all) != 5 {
		t.Errorf("default limit returned %d rounds, expected 5", len(all))
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	recordScore(t, store, "racer", 100, now)
	recordScore(t, store, "maze", 300, now)
	store.SetBest("racer", 100)
	store.SetBest("maze", 300)

	if err := store.ClearScores("racer"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("racer", 10); len(scores) != 0 {
		t.Errorf("Expected 0 racer rounds after clear, got %d", len(scores))
	}
	if _, ok, _ := store.Best("racer"); ok {
		t.Error("racer best score should be cleared")
	}
	if best, ok, _ := store.Best("maze"); !ok || best != 300 {
		t.Error("maze best score should not be affected")
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rounds := []round.Result{
		{GameID: "maze", Score: 950, Victory: true, TokensEarned: 0.095, EndedAt: base},
		{GameID: "maze", Score: 1100, EndedAt: base.Add(time.Hour)},
		{GameID: "racer", Score: 130, TokensEarned: 0.003, EndedAt: base},
	}
	for _, r := range rounds {
		if err := store.RecordRound(r); err != nil {
			t.Fatalf("RecordRound() failed: %v", err)
		}
	}

	stats, err := store.GetGameStats("maze")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.RoundsCount != 2 || stats.Victories != 1 || stats.HighScore != 1100 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 1025 {
		t.Errorf("avg = %v, expected 1025", stats.AvgScore)
	}
	if !stats.LastPlayed.Equal(base.Add(time.Hour)) {
		t.Errorf("last played = %v, expected %v", stats.LastPlayed, base.Add(time.Hour))
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.RoundsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty game: %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if math.Abs(all["racer"].TotalTokens-0.003) > 1e-9 {
		t.Errorf("racer tokens = %v", all["racer"].TotalTokens)
	}
}
