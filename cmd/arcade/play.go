package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stake-arcade/internal/config"
	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/games/maze"
	"github.com/vovakirdan/stake-arcade/internal/games/racer"
	"github.com/vovakirdan/stake-arcade/internal/platform/tui"
	"github.com/vovakirdan/stake-arcade/internal/registry"
	"github.com/vovakirdan/stake-arcade/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Enter        - Start / restart a round
  Arrows/WASD  - Steer (racer: left/right, maze: all directions)
  Space        - Phase through walls once per round (maze)
  Esc/B        - Stop the round, or leave when idle
  ?            - More keys
  Q/Ctrl+C     - Quit

Examples:
  arcade play racer
  arcade play maze --seed 42
  arcade play racer --config ./my-racer.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

// applyGameConfig validates a custom config and hands its path to the game.
func applyGameConfig(gameID, path string) error {
	var err error
	switch gameID {
	case "racer":
		_, err = config.LoadRacer(path)
		racer.SetConfigPath(path)
	case "maze":
		_, err = config.LoadMaze(path)
		maze.SetConfigPath(path)
	}
	return err
}

// terminalConfig returns a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	if err := applyGameConfig(gameID, flagConfig); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard, "arcade")
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
