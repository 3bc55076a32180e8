package model

import (
	"math/rand"
)

const neutralScore = 3

// Answer labels offered by the indirect check-in flow, best first.
var (
	WakeResponses = []string{
		"I woke up before my alarm and felt like a hero",
		"I hit snooze a couple times, but made it",
		"I had to drag myself out of bed",
		"I blinked and it was already noon",
		"Still in bed, mentally",
	}
	DrinkChoices = []string{
		"Espresso shot 🔥",
		"Iced coffee ⚡",
		"Warm latte ☕",
		"Herbal tea 🌿",
		"Just water 💧",
	}
	ThoughtResponses = []string{
		"Let's crush today.",
		"One thing at a time.",
		"I hope nothing breaks.",
		"I'm already behind.",
		"I need a reset button.",
	}
	MaskChoices = []string{"😃", "😐", "😔", "😤", "😴"}

	MoodTags = []string{
		"Boss Mode",
		"Cautiously Optimistic",
		"Storm Incoming",
		"Recovery Arc",
		"WTF Mode",
		"Grinding",
		"Zen State",
		"Survival Mode",
	}
)

var moodScores = map[string]int{
	string(MoodVeryHappy): 5,
	string(MoodHappy):     4,
	string(MoodNeutral):   3,
	string(MoodSad):       2,
	string(MoodVerySad):   1,
	"😃":                   5,
	"😐":                   3,
	"😔":                   2,
	"😤":                   1,
	"😴":                   2,
}

var energyScores = map[string]int{
	"Espresso shot 🔥": 5,
	"Iced coffee ⚡":   4,
	"Warm latte ☕":    3,
	"Herbal tea 🌿":    2,
	"Just water 💧":    1,
}

// Higher means more stressed.
var stressScores = map[string]int{
	"Let's crush today.":     1,
	"One thing at a time.":   2,
	"I hope nothing breaks.": 3,
	"I'm already behind.":    4,
	"I need a reset button.": 5,
}

var sleepHoursByWake = map[string]float64{
	"I woke up before my alarm and felt like a hero": 8,
	"I hit snooze a couple times, but made it":       7,
	"I had to drag myself out of bed":                6,
	"I blinked and it was already noon":              9,
	"Still in bed, mentally":                         5,
}

// Wellbeing view of the wake answer, 5 is best.
var wakeScores = map[string]int{
	"I woke up before my alarm and felt like a hero": 5,
	"I hit snooze a couple times, but made it":       4,
	"I had to drag myself out of bed":                3,
	"I blinked and it was already noon":              2,
	"Still in bed, mentally":                         1,
}

// MoodScore maps a mood label or mask emoji to 1..5. Unknown values score 3.
func MoodScore(mood string) int {
	if v, ok := moodScores[mood]; ok {
		return v
	}
	return neutralScore
}

func EnergyScore(drink string) int {
	if v, ok := energyScores[drink]; ok {
		return v
	}
	return neutralScore
}

// StressScore maps a thought label to 1 (calm) .. 5 (most stressed).
func StressScore(thought string) int {
	if v, ok := stressScores[thought]; ok {
		return v
	}
	return neutralScore
}

func WakeScore(wake string) int {
	if v, ok := wakeScores[wake]; ok {
		return v
	}
	return neutralScore
}

// SleepHoursForWake approximates hours slept from the wake answer.
func SleepHoursForWake(wake string) (float64, bool) {
	v, ok := sleepHoursByWake[wake]
	return v, ok
}

func DirectSleepHours(hours, minutes int) float64 {
	return float64(hours) + float64(minutes)/60
}

// ClassifyTone buckets an average wellbeing score on the 1..5 scale.
func ClassifyTone(avg float64) Tone {
	switch {
	case avg >= 3.5:
		return TonePositive
	case avg >= 2.5:
		return ToneNeutral
	default:
		return ToneChallenging
	}
}

// WellbeingAverage averages sleep, energy, stress and mood with 5 as best on every axis.
func WellbeingAverage(c IndirectCheckIn) float64 {
	sleep := WakeScore(c.WakeResponse)
	energy := EnergyScore(c.DrinkChoice)
	calm := 6 - StressScore(c.ThoughtResponse)
	mood := MoodScore(c.MaskChoice)
	return float64(sleep+energy+calm+mood) / 4
}

func IndirectTone(c IndirectCheckIn) Tone {
	return ClassifyTone(WellbeingAverage(c))
}

var quotePools = map[Tone][]string{
	TonePositive: {
		"The only way to do great work is to love what you do. - Steve Jobs",
		"You are never too old to set another goal or to dream a new dream. - C.S. Lewis",
		"The future belongs to those who believe in the beauty of their dreams. - Eleanor Roosevelt",
	},
	ToneNeutral: {
		"The journey of a thousand miles begins with one step. - Lao Tzu",
		"Life is what happens when you're busy making other plans. - John Lennon",
		"Every moment is a fresh beginning. - T.S. Eliot",
	},
	ToneChallenging: {
		"Tough times never last, but tough people do. - Robert H. Schuller",
		"The gem cannot be polished without friction, nor man perfected without trials. - Chinese Proverb",
		"When everything seems to be going against you, remember that the airplane takes off against the wind. - Henry Ford",
	},
}

func QuotePool(t Tone) []string {
	pool, ok := quotePools[t]
	if !ok {
		pool = quotePools[ToneNeutral]
	}
	return append([]string(nil), pool...)
}

// QuoteFor picks a quote matching tone. A nil rng uses the first quote.
func QuoteFor(t Tone, rng *rand.Rand) string {
	pool := QuotePool(t)
	if rng == nil {
		return pool[0]
	}
	return pool[rng.Intn(len(pool))]
}
