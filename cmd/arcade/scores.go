package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stake-arcade/internal/registry"
	"github.com/vovakirdan/stake-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top scores and round statistics for the specified game.

Examples:
  arcade scores racer
  arcade scores maze --limit 20
  arcade scores maze --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and the best score for the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Scores for %s cleared.\n", title)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	t := newTable("Rank", "Score", "Result", "Tokens", "Played")
	for i, entry := range scores {
		result := "lost"
		if entry.Victory {
			result = "won"
		}
		t.Row(
			fmt.Sprint(i+1),
			fmt.Sprint(entry.Score),
			result,
			fmt.Sprintf("%.4f", entry.TokensEarned),
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t)

	if best, ok, err := store.Best(gameID); err == nil && ok {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Rounds: %d  Victories: %d  Average: %.0f  Tokens: %.4f\n",
			stats.RoundsCount, stats.Victories, stats.AvgScore, stats.TotalTokens)
	}
	return nil
}
