package model

import (
	"errors"
	"testing"
	"time"
)

func TestNewEventDraftDefaults(t *testing.T) {
	d := NewEventDraft(time.Date(2026, 2, 9, 14, 0, 0, 0, time.UTC))
	if d.Date != "2026-02-09" || d.StartTime != "09:00" || d.EndTime != "10:00" {
		t.Fatalf("unexpected draft: %+v", d)
	}
}

func TestScheduleEventValidate(t *testing.T) {
	e := ScheduleEvent{Title: "Gym", Date: "2026-02-09", StartTime: "18:00", EndTime: "19:00"}
	if err := e.Validate(); err != nil {
		t.Fatalf("expected valid event: %v", err)
	}
	e.EndTime = "17:00"
	if err := e.Validate(); !errors.Is(err, ErrInvalidEventTime) {
		t.Fatalf("expected ErrInvalidEventTime, got %v", err)
	}
	e.EndTime = "25:99"
	if err := e.Validate(); !errors.Is(err, ErrInvalidEventTime) {
		t.Fatalf("expected ErrInvalidEventTime, got %v", err)
	}
	e = ScheduleEvent{Date: "2026-02-09", StartTime: "09:00", EndTime: "10:00"}
	if err := e.Validate(); err == nil {
		t.Fatal("expected title to be required")
	}
}

func TestEventsOnOrdersByStart(t *testing.T) {
	day := EventsOn(SeedScheduleEvents(), "2025-05-16")
	if len(day) != 3 {
		t.Fatalf("expected 3 events, got %d", len(day))
	}
	if day[0].Title != "Physics Study Session" || day[2].Title != "Meditation" {
		t.Fatalf("unexpected order: %s .. %s", day[0].Title, day[2].Title)
	}
	if day[0].TimeRange() != "9:00 AM - 11:00 AM" {
		t.Fatalf("unexpected time range: %q", day[0].TimeRange())
	}
	if got := len(RemoveEvent(SeedScheduleEvents(), "1")); got != 5 {
		t.Fatalf("expected 5 events after delete, got %d", got)
	}
	if got := len(RemoveEvent(SeedScheduleEvents(), "missing")); got != 6 {
		t.Fatalf("delete of unknown id must be a no-op, got %d", got)
	}
}
