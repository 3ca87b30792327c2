// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the hosts
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/stake-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the engine contract every arcade game implements.
// Games contain pure simulation logic; the round runner owns the state
// machine, the scheduler and best-score persistence.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "racer", "maze").
	// Used for CLI commands and as the best-score key.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Begin prepares a fresh round: actor at spawn, entities cleared or a new
	// grid generated, telemetry reset. prev is the outcome of the round that
	// just ended, or the zero Outcome when starting from idle.
	Begin(rng *rand.Rand, prev core.Outcome)

	// Step advances the simulation by exactly one tick.
	Step(t core.Tick) core.Outcome

	// Clear drops all round state and returns the game to its idle form.
	Clear()

	// Telemetry returns the game's score counters.
	Telemetry() core.Telemetry

	// Render draws the playfield into the provided screen buffer.
	Render(dst *core.Screen)
}

// KeyPressHandler is implemented by games with one-shot key effects.
// The runner calls KeyPressed on every key-down event while a round runs.
type KeyPressHandler interface {
	KeyPressed(k core.Key)
}

// Describer is implemented by games that provide a one-line blurb for
// menus and the web API.
type Describer interface {
	Description() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory under id. The factory is called once to
// capture the game's metadata. Panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	entries[id] = entry{factory: f, info: info}
}

// List returns the registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
