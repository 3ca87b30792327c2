package maze

import "github.com/vovakirdan/stake-arcade/internal/config"

// LossScore is the score for a round that ended on a wall or off the field.
func LossScore(s config.MazeScoring, seconds, level int) int {
	return max(0, s.LossBase-s.LossPerSecond*seconds+s.LossPerLevel*level)
}

// VictoryScore is the score for reaching the exit. Only the time part is
// floored at zero; level and no-ability bonuses are always added.
func VictoryScore(s config.MazeScoring, seconds, level int, abilityUsed bool) int {
	score := max(0, s.WinBase-s.WinPerSecond*seconds) + s.WinPerLevel*level
	if !abilityUsed {
		score += s.NoAbilityBonus
	}
	return score
}

// Reward converts a victory score into tokens.
func Reward(s config.MazeScoring, score int) float64 {
	return float64(score) * s.RewardPerPoint
}
