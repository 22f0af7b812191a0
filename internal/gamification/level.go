// Package gamification computes levels, XP awards, badge eligibility and
// challenge progress from habit history.
package gamification

import (
	"math"

	"github.com/julianstephens/tend/internal/models"
)

// CalculateUserLevel maps cumulative XP onto the quadratic level curve:
// level = floor(sqrt(totalXP/100)) + 1, so the XP floor for level L is
// (L-1)^2*100 and the ceiling L^2*100. The exact formula is load-bearing:
// level-up detection compares results across calls.
func CalculateUserLevel(totalXP int) models.UserLevel {
	if totalXP < 0 {
		totalXP = 0
	}
	level := int(math.Floor(math.Sqrt(float64(totalXP)/100))) + 1
	floor := (level - 1) * (level - 1) * 100
	ceiling := level * level * 100

	return models.UserLevel{
		Level:         level,
		CurrentXP:     totalXP - floor,
		XPToNextLevel: ceiling - floor,
		TotalXP:       totalXP,
	}
}

// XPForCompletion returns the XP for completing a habit at the given
// streak length. The bonuses stack: a 30-day streak earns 10+5+10.
func XPForCompletion(streak int) int {
	xp := 10
	if streak >= 7 {
		xp += 5
	}
	if streak >= 30 {
		xp += 10
	}
	if streak >= 100 {
		xp += 20
	}
	return xp
}
