package registry

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/stake-arcade/internal/core"
)

type fakeGame struct {
	id, title, blurb string
}

func (g fakeGame) ID() string                     { return g.id }
func (g fakeGame) Title() string                  { return g.title }
func (g fakeGame) Begin(*rand.Rand, core.Outcome) {}
func (g fakeGame) Step(core.Tick) core.Outcome    { return core.Outcome{} }
func (g fakeGame) Clear()                         {}
func (g fakeGame) Telemetry() core.Telemetry      { return core.Telemetry{} }
func (g fakeGame) Render(*core.Screen)            {}

type describedGame struct{ fakeGame }

func (g describedGame) Description() string { return g.blurb }

// withEmptyRegistry swaps in a fresh registry for one test.
func withEmptyRegistry(t *testing.T) {
	t.Helper()
	mu.Lock()
	saved := entries
	entries = make(map[string]entry)
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		entries = saved
		mu.Unlock()
	})
}

func TestRegisterAndList(t *testing.T) {
	withEmptyRegistry(t)

	Register("zeta", func() Game { return fakeGame{id: "zeta", title: "Zeta"} })
	Register("alpha", func() Game {
		return describedGame{fakeGame{id: "alpha", title: "Alpha", blurb: "first"}}
	})

	got := List()
	want := []GameInfo{
		{ID: "alpha", Title: "Alpha", Description: "first"},
		{ID: "zeta", Title: "Zeta"},
	}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestCreate(t *testing.T) {
	withEmptyRegistry(t)
	Register("alpha", func() Game { return fakeGame{id: "alpha", title: "Alpha"} })

	g, err := Create("alpha")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "alpha" {
		t.Errorf("created %q", g.ID())
	}

	if _, err := Create("beta"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(unknown) error = %v, expected ErrUnknownGame", err)
	}
	if Exists("beta") {
		t.Error("beta should not exist")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	withEmptyRegistry(t)
	f := func() Game { return fakeGame{id: "alpha", title: "Alpha"} }
	Register("alpha", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("alpha", f)
}
