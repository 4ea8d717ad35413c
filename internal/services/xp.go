package services

import (
	"math"

	"github.com/VitinDemarque/codearena-backend/internal/config"
	"github.com/VitinDemarque/codearena-backend/internal/models"
)

const (
	defaultAcceptScoreThreshold = 60

	// Solves faster than this earn the speed bonus
	fastSolveThresholdMs = 5 * 60 * 1000

	speedBonusMultiplier  = 1.10
	seasonBonusMultiplier = 1.25
)

// AcceptScoreThreshold is the minimum sandbox score for acceptance.
// Submissions scoring below it are REJECTED and award nothing. Deployments
// can move it via ACCEPT_SCORE_THRESHOLD.
func AcceptScoreThreshold() int {
	if config.AppConfig != nil && config.AppConfig.AcceptScoreThreshold > 0 {
		return config.AppConfig.AcceptScoreThreshold
	}
	return defaultAcceptScoreThreshold
}

// difficultyMultiplier maps difficulty 1..5 onto 1.0..2.0
func difficultyMultiplier(difficulty int) float64 {
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}
	return 1.0 + 0.25*float64(difficulty-1)
}

// CalculateXP computes the XP award for an accepted submission. It is a pure
// function of its inputs: same inputs always produce the same award, and the
// result is never negative.
func CalculateXP(baseXP, difficulty, score int, timeSpentMs int64, inSeason bool) int {
	if baseXP <= 0 || score <= 0 {
		return 0
	}
	if score > 100 {
		score = 100
	}

	award := float64(baseXP) * difficultyMultiplier(difficulty) * float64(score) / 100.0

	if timeSpentMs > 0 && timeSpentMs < fastSolveThresholdMs {
		award *= speedBonusMultiplier
	}
	if inSeason {
		award *= seasonBonusMultiplier
	}

	xp := int(math.Round(award))
	if xp < 0 {
		xp = 0
	}
	return xp
}

// ResolveLevel returns the highest level whose MinXP floor is at or below
// xpTotal. Rules must be sorted ascending by MinXP. No rules, or an xpTotal
// below every floor, resolves to level 1.
func ResolveLevel(xpTotal int64, rules []models.LevelRule) int {
	level := 1
	for _, rule := range rules {
		if rule.MinXP > xpTotal {
			break
		}
		level = rule.Level
	}
	if level < 1 {
		level = 1
	}
	return level
}
