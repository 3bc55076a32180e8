package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrInvalidEventTime = errors.New("model: invalid event time")

const (
	clockLayout       = "15:04"
	DefaultEventStart = "09:00"
	DefaultEventEnd   = "10:00"
)

type ScheduleEvent struct {
	ID          string
	Title       string
	Description string
	Field       string
	Date        string
	StartTime   string
	EndTime     string
}

// NewEventDraft returns the add-event form defaults for day.
func NewEventDraft(day time.Time) ScheduleEvent {
	return ScheduleEvent{Date: DayKey(day), StartTime: DefaultEventStart, EndTime: DefaultEventEnd}
}

func (e ScheduleEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("model: event title is required")
	}
	if _, err := ParseDay(e.Date, time.UTC); err != nil {
		return fmt.Errorf("model: invalid event date %q", e.Date)
	}
	start, err := time.Parse(clockLayout, e.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start %q", ErrInvalidEventTime, e.StartTime)
	}
	end, err := time.Parse(clockLayout, e.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end %q", ErrInvalidEventTime, e.EndTime)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end %s is not after start %s", ErrInvalidEventTime, e.EndTime, e.StartTime)
	}
	return nil
}

// TimeRange renders "9:00 AM - 11:00 AM".
func (e ScheduleEvent) TimeRange() string {
	return formatClock(e.StartTime) + " - " + formatClock(e.EndTime)
}

func formatClock(hhmm string) string {
	t, err := time.Parse(clockLayout, hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}

// EventsOn returns the events on day ordered by start time.
func EventsOn(events []ScheduleEvent, day string) []ScheduleEvent {
	out := make([]ScheduleEvent, 0)
	for _, e := range events {
		if e.Date == day {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

func RemoveEvent(events []ScheduleEvent, id string) []ScheduleEvent {
	out := make([]ScheduleEvent, 0, len(events))
	for _, e := range events {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func SeedScheduleEvents() []ScheduleEvent {
	return []ScheduleEvent{
		{ID: "1", Title: "Physics Study Session", Description: "Focus on mechanics and thermodynamics", Field: "JEE Preparation", Date: "2025-05-16", StartTime: "09:00", EndTime: "11:00"},
		{ID: "2", Title: "Cardio Workout", Description: "30 minutes of running or cycling", Field: "Fitness", Date: "2025-05-16", StartTime: "17:00", EndTime: "17:30"},
		{ID: "3", Title: "Meditation", Description: "Mindfulness practice", Field: "Mindfulness", Date: "2025-05-16", StartTime: "20:00", EndTime: "20:15"},
		{ID: "4", Title: "Math Problem Solving", Description: "Practice calculus problems", Field: "JEE Preparation", Date: "2025-05-17", StartTime: "10:00", EndTime: "12:00"},
		{ID: "5", Title: "Coding Practice", Description: "Work on algorithm challenges", Field: "Coding", Date: "2025-05-17", StartTime: "14:00", EndTime: "16:00"},
		{ID: "6", Title: "Strength Training", Description: "Focus on upper body", Field: "Fitness", Date: "2025-05-18", StartTime: "18:00", EndTime: "19:00"},
	}
}
