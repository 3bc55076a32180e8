package model

import (
	"fmt"
	"math"
	"sort"
	"time"
)

type ReportRange string

const (
	RangeWeek   ReportRange = "week"
	RangeMonth  ReportRange = "month"
	Range90Days ReportRange = "3months"
)

const ninetyDays = 90

func (r ReportRange) IsValid() bool {
	switch r {
	case RangeWeek, RangeMonth, Range90Days:
		return true
	default:
		return false
	}
}

func ParseReportRange(s string) (ReportRange, error) {
	r := ReportRange(s)
	if !r.IsValid() {
		return "", fmt.Errorf("model: invalid report range %q", s)
	}
	return r, nil
}

// ReportWindow returns the inclusive [start, end] covered by r relative to now.
func ReportWindow(r ReportRange, now time.Time) (time.Time, time.Time) {
	switch r {
	case RangeMonth:
		return StartOfMonth(now), EndOfMonth(now)
	case Range90Days:
		return StartOfDay(now).AddDate(0, 0, -ninetyDays), EndOfDay(now)
	default:
		return StartOfWeek(now), EndOfWeek(now)
	}
}

// DayRecord is one chart point. Score fields are zero when HasData is false.
type DayRecord struct {
	Date       time.Time
	Mood       int
	Energy     int
	Stress     int
	Sleep      float64
	HasSleep   bool
	DayRating  int
	DidWorkout bool
	Source     ReflectionSource
	HasData    bool
}

func (d DayRecord) Label() string {
	return d.Date.Format("Jan 02")
}

// ScoreEntry maps one reflection onto the uniform scale. Stress keeps its
// inverted polarity: higher means more stressed.
func ScoreEntry(e ReflectionEntry) DayRecord {
	rec := DayRecord{Date: StartOfDay(e.Date), Source: e.Source, HasData: true}
	switch e.Source {
	case SourceStructured:
		if e.Structured == nil {
			return rec
		}
		c := e.Structured
		rec.Mood = MoodScore(string(c.Mood))
		rec.Energy = c.EnergyLevel
		rec.Stress = c.StressLevel
		rec.Sleep = DirectSleepHours(c.SleepHours, c.SleepMinutes)
		rec.HasSleep = true
		rec.DayRating = c.DayRating
		rec.DidWorkout = c.DidWorkout
	case SourceIndirect:
		if e.Indirect == nil {
			return rec
		}
		c := e.Indirect
		rec.Mood = MoodScore(c.MaskChoice)
		rec.Energy = EnergyScore(c.DrinkChoice)
		rec.Stress = StressScore(c.ThoughtResponse)
		rec.Sleep, rec.HasSleep = SleepHoursForWake(c.WakeResponse)
	}
	return rec
}

// PickForDay selects the entry that represents day: the one with the latest timestamp.
func PickForDay(entries []ReflectionEntry, day time.Time) (ReflectionEntry, bool) {
	var (
		best  ReflectionEntry
		found bool
	)
	for _, e := range entries {
		if !e.OnDay(day) {
			continue
		}
		if !found || e.Timestamp.After(best.Timestamp) {
			best = e
			found = true
		}
	}
	return best, found
}

// AggregateDays emits one record per calendar day in [start, end].
func AggregateDays(entries []ReflectionEntry, start, end time.Time) []DayRecord {
	days := DaysBetween(start, end)
	out := make([]DayRecord, 0, len(days))
	for _, day := range days {
		e, ok := PickForDay(entries, day)
		if !ok {
			out = append(out, DayRecord{Date: day})
			continue
		}
		rec := ScoreEntry(e)
		rec.Date = day
		out = append(out, rec)
	}
	return out
}

type MoodCount struct {
	Label string
	Count int
}

type ReportSummary struct {
	DaysWithData int
	AvgMood      float64
	AvgEnergy    float64
	AvgStress    float64
	AvgSleep     float64
	AvgDayRating float64
	WorkoutDays  int
	RestDays     int
	Moods        []MoodCount
}

// SummarizeReport averages over days with data, rounded to one decimal.
func SummarizeReport(records []DayRecord, entries []ReflectionEntry) ReportSummary {
	var (
		sum                                 ReportSummary
		mood, energy, stress, sleep, rating float64
		sleepDays, ratingDays               int
	)
	for _, r := range records {
		if !r.HasData {
			continue
		}
		sum.DaysWithData++
		mood += float64(r.Mood)
		energy += float64(r.Energy)
		stress += float64(r.Stress)
		if r.HasSleep {
			sleep += r.Sleep
			sleepDays++
		}
		if r.DayRating > 0 {
			rating += float64(r.DayRating)
			ratingDays++
		}
	}
	if sum.DaysWithData > 0 {
		n := float64(sum.DaysWithData)
		sum.AvgMood = round1(mood / n)
		sum.AvgEnergy = round1(energy / n)
		sum.AvgStress = round1(stress / n)
	}
	if sleepDays > 0 {
		sum.AvgSleep = round1(sleep / float64(sleepDays))
	}
	if ratingDays > 0 {
		sum.AvgDayRating = round1(rating / float64(ratingDays))
	}

	counts := make(map[string]int)
	for _, e := range entries {
		if e.Source != SourceStructured || e.Structured == nil {
			continue
		}
		if e.Structured.DidWorkout {
			sum.WorkoutDays++
		} else {
			sum.RestDays++
		}
		counts[e.Structured.Mood.Label()]++
	}
	for label, n := range counts {
		sum.Moods = append(sum.Moods, MoodCount{Label: label, Count: n})
	}
	sort.Slice(sum.Moods, func(i, j int) bool {
		if sum.Moods[i].Count != sum.Moods[j].Count {
			return sum.Moods[i].Count > sum.Moods[j].Count
		}
		return sum.Moods[i].Label < sum.Moods[j].Label
	})
	return sum
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
