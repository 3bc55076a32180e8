package model

import (
	"sort"
	"time"
)

// ComputeStreak counts consecutive calendar days ending today that carry at least one entry.
// Days are compared in now's location; duplicate same-day entries count once.
func ComputeStreak(entries []ReflectionEntry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		days = append(days, StartOfDay(e.Date.In(now.Location())))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 0
	cursor := StartOfDay(now)
	for _, day := range days {
		switch {
		case day.Equal(cursor):
			streak++
			cursor = cursor.AddDate(0, 0, -1)
		case day.Before(cursor):
			return streak
		}
		// Later than the cursor: a same-day duplicate of a counted day.
	}
	return streak
}

func StreakMessage(streak int) string {
	switch {
	case streak == 0:
		return "Start your streak today!"
	case streak < 3:
		return "Great start! Keep going to build your streak."
	case streak < 7:
		return "You're building momentum! Keep it up."
	default:
		return "Impressive consistency! You're on fire!"
	}
}
