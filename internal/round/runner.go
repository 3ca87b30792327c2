package round

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/registry"
)

// Runner drives one game through its rounds.
//
// It is not safe for concurrent use: the host calls every method from its
// single event loop, the same way a browser runs key handlers and frame
// callbacks on one thread.
type Runner struct {
	game   registry.Game
	keys   core.KeyTracker
	sched  Scheduler
	store  ScoreStore
	clock  Clock
	rng    *rand.Rand
	logger *log.Logger

	state     core.RoundState
	last      core.Outcome
	best      int
	ticks     int
	startedAt time.Time
	result    *Result
}

// Option configures a Runner.
type Option func(*Runner)

// WithScheduler sets the host frame scheduler.
func WithScheduler(s Scheduler) Option {
	return func(r *Runner) { r.sched = s }
}

// WithStore sets the best-score store.
func WithStore(s ScoreStore) Option {
	return func(r *Runner) { r.store = s }
}

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithSeed seeds the random source used for spawning and generation.
func WithSeed(seed int64) Option {
	return func(r *Runner) { r.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates an idle Runner and reads the persisted best score once.
func New(game registry.Game, opts ...Option) *Runner {
	r := &Runner{
		game:  game,
		sched: nopScheduler{},
		clock: time.Now,
		state: core.RoundIdle,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = NewMemoryStore()
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}

	best, ok, err := r.store.Best(game.ID())
	switch {
	case err != nil:
		r.logger.Warn("best score unreadable, starting from zero", "game", game.ID(), "error", err)
	case ok && best > 0:
		r.best = best
	}
	return r
}

// Game returns the engine driven by this runner.
func (r *Runner) Game() registry.Game {
	return r.game
}

// State returns the current round state.
func (r *Runner) State() core.RoundState {
	return r.state
}

// Reseed replaces the random source.
func (r *Runner) Reseed(seed int64) {
	r.rng = rand.New(rand.NewSource(seed))
}

// Start begins a round from Idle or Ended. Ignored while Running.
func (r *Runner) Start() {
	if r.state == core.RoundRunning {
		r.logger.Debug("start ignored, round already running", "game", r.game.ID())
		return
	}

	var prev core.Outcome
	if r.state == core.RoundEnded {
		prev = r.last
	}

	r.game.Begin(r.rng, prev)
	r.ticks = 0
	r.result = nil
	r.last = core.Outcome{}
	r.startedAt = r.clock()
	r.state = core.RoundRunning
	r.logger.Info("round started", "game", r.game.ID(), "level", r.game.Telemetry().Level)
	r.sched.ScheduleNextTick()
}

// Stop cancels any pending tick and returns to Idle from any state.
func (r *Runner) Stop() {
	r.sched.Cancel()
	r.game.Clear()
	if r.state != core.RoundIdle {
		r.logger.Info("round stopped", "game", r.game.ID(), "state", r.state)
	}
	r.state = core.RoundIdle
	r.last = core.Outcome{}
}

// Frame runs exactly one tick. It is a silent no-op unless the round is
// Running, which guards against a stale callback firing after the round ended.
func (r *Runner) Frame() {
	if r.state != core.RoundRunning {
		r.logger.Debug("frame ignored", "game", r.game.ID(), "state", r.state)
		return
	}

	r.ticks++
	out := r.game.Step(core.Tick{
		N:       r.ticks,
		Keys:    &r.keys,
		Elapsed: r.clock().Sub(r.startedAt),
	})
	if !out.Ended {
		r.sched.ScheduleNextTick()
		return
	}
	r.finish(out)
}

// KeyChanged records a key transition. Key-down events also reach games with
// one-shot effects, but only while a round is running.
func (r *Runner) KeyChanged(k core.Key, pressed bool) {
	r.keys.Set(k, pressed)
	if !pressed || r.state != core.RoundRunning {
		return
	}
	if h, ok := r.game.(registry.KeyPressHandler); ok {
		h.KeyPressed(k)
	}
}

// ReleaseKeys marks every key as up.
func (r *Runner) ReleaseKeys() {
	r.keys.Clear()
}

// Snapshot returns the display state. It copies a fixed set of counters.
func (r *Runner) Snapshot() core.Snapshot {
	tel := r.game.Telemetry()
	return core.Snapshot{
		GameID:       r.game.ID(),
		State:        r.state,
		Victory:      r.state == core.RoundEnded && r.last.Victory,
		Score:        tel.Score,
		HighScore:    r.best,
		TokensEarned: tel.TokensEarned,
		Level:        tel.Level,
		TimeElapsed:  tel.TimeElapsed,
		Ticks:        r.ticks,
	}
}

// LastResult returns the most recently finished round, if any.
func (r *Runner) LastResult() (Result, bool) {
	if r.result == nil {
		return Result{}, false
	}
	return *r.result, true
}

func (r *Runner) finish(out core.Outcome) {
	r.sched.Cancel()
	r.state = core.RoundEnded
	r.last = out

	now := r.clock()
	tel := r.game.Telemetry()
	res := Result{
		ID:           uuid.New(),
		GameID:       r.game.ID(),
		Score:        tel.Score,
		Victory:      out.Victory,
		TokensEarned: tel.TokensEarned,
		Level:        tel.Level,
		Ticks:        r.ticks,
		Duration:     now.Sub(r.startedAt),
		EndedAt:      now,
	}

	if res.Score > r.best {
		r.best = res.Score
		res.NewBest = true
		if err := r.store.SetBest(res.GameID, r.best); err != nil {
			r.logger.Warn("could not persist best score", "game", res.GameID, "error", err)
		}
	}
	if rec, ok := r.store.(RoundRecorder); ok {
		if err := rec.RecordRound(res); err != nil {
			r.logger.Warn("could not record round", "game", res.GameID, "error", err)
		}
	}

	r.result = &res
	r.logger.Info("round ended",
		"game", res.GameID,
		"victory", res.Victory,
		"score", res.Score,
		"best", r.best,
		"ticks", res.Ticks,
	)
}
