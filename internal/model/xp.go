package model

import "math"

const (
	xpDurationCapMinutes = 240
	xpStepMinutes        = 30
	xpStepBonus          = 0.1

	// levelXPCoef sets the level curve: XP_req = 500 * L^1.5.
	levelXPCoef = 500.0
)

func baseXP(p Priority) int {
	switch p {
	case PriorityHigh:
		return 50
	case PriorityMedium:
		return 30
	case PriorityLow:
		return 20
	default:
		return 0
	}
}

// ComputeXP maps priority and duration to the xp awarded on completion.
// Durations above 240 minutes add no further bonus.
func ComputeXP(p Priority, durationMinutes int) int {
	d := durationMinutes
	if d > xpDurationCapMinutes {
		d = xpDurationCapMinutes
	}
	if d < 0 {
		d = 0
	}
	multiplier := 1 + (float64(d)/xpStepMinutes)*xpStepBonus
	return int(math.Round(float64(baseXP(p)) * multiplier))
}

// XPRequiredForLevel returns the total xp needed to reach level.
func XPRequiredForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return int(math.Ceil(levelXPCoef * math.Pow(float64(level), 1.5)))
}

// LevelForTotalXP returns the highest level reached; characters start at level 1.
func LevelForTotalXP(totalXP int) int {
	level := 1
	for XPRequiredForLevel(level+1) <= totalXP {
		level++
	}
	return level
}

// LevelProgress is the percentage travelled from the current level threshold to the next.
func LevelProgress(totalXP int) int {
	level := LevelForTotalXP(totalXP)
	floor := XPRequiredForLevel(level)
	if level == 1 {
		floor = 0
	}
	ceil := XPRequiredForLevel(level + 1)
	if ceil <= floor {
		return 100
	}
	pct := int(math.Round(float64(totalXP-floor) / float64(ceil-floor) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

type Gear string

const (
	GearSword  Gear = "sword"
	GearShield Gear = "shield"
	GearCrown  Gear = "crown"
	GearCape   Gear = "cape"
)

// CharacterGear lists accessories unlocked at level.
func CharacterGear(level int) []Gear {
	out := make([]Gear, 0, 4)
	if level >= 3 {
		out = append(out, GearSword)
	}
	if level >= 5 {
		out = append(out, GearShield)
	}
	if level >= 7 {
		out = append(out, GearCrown)
	}
	if level >= 10 {
		out = append(out, GearCape)
	}
	return out
}

type Character string

const (
	CharacterBGMI         Character = "bgmi"
	CharacterCyberpunk    Character = "cyberpunk"
	CharacterDoodle       Character = "doodle"
	CharacterSoloLeveling Character = "solo-leveling"
)

var Characters = []Character{CharacterBGMI, CharacterCyberpunk, CharacterDoodle, CharacterSoloLeveling}

func (c Character) IsValid() bool {
	switch c {
	case CharacterBGMI, CharacterCyberpunk, CharacterDoodle, CharacterSoloLeveling:
		return true
	default:
		return false
	}
}

func (c Character) DisplayName() string {
	switch c {
	case CharacterBGMI:
		return "BGMI Warrior"
	case CharacterCyberpunk:
		return "Cyberpunk Rebel"
	case CharacterDoodle:
		return "Doodle Hero"
	case CharacterSoloLeveling:
		return "Solo Leveling Hunter"
	default:
		return string(c)
	}
}
