package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/platform/tui"
	"github.com/vovakirdan/stake-arcade/internal/registry"
	"github.com/vovakirdan/stake-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a game from an interactive list",
	Long: `Open the game picker. Finishing or leaving a game returns here.

Keys:
  up/down, j/k   move
  enter, space   play the highlighted game
  tab            scoreboard
  q              quit

Examples:
  arcade menu
  arcade menu --fps 30 --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

// pickGame runs one menu program and reports the game to start, or "" when
// the user quit. The scoreboard is shown in between as often as requested.
func pickGame(store *storage.Store, cfg *core.RuntimeConfig) (string, error) {
	for {
		res, err := tui.RunMenu(store, *cfg)
		if err != nil {
			return "", err
		}
		*cfg = res.Config
		switch {
		case res.Quit:
			return "", nil
		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil || !back {
				return "", err
			}
		default:
			return res.GameID, nil
		}
	}
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard, "arcade")
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores will not be saved", "db", flagDBPath, "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		id, err := pickGame(store, &cfg)
		if err != nil || id == "" {
			return err
		}

		game, err := registry.Create(id)
		if err != nil {
			logger.Error("could not create game", "game", id, "error", err)
			continue
		}

		played := cfg
		if flagSeed == 0 {
			played.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, played, logger); err != nil {
			return fmt.Errorf("running %s: %w", id, err)
		}
	}
}
