package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidSource  = errors.New("model: invalid reflection source")
	ErrPayloadMissing = errors.New("model: reflection payload does not match source")
	ErrInvalidMood    = errors.New("model: invalid mood")
	ErrOutOfRange     = errors.New("model: value out of range")
)

type ReflectionSource string

const (
	SourceStructured ReflectionSource = "structured-checkin"
	SourceIndirect   ReflectionSource = "indirect-checkin"
)

func (s ReflectionSource) IsValid() bool {
	switch s {
	case SourceStructured, SourceIndirect:
		return true
	default:
		return false
	}
}

type Tone string

const (
	ToneNone        Tone = ""
	TonePositive    Tone = "positive"
	ToneNeutral     Tone = "neutral"
	ToneChallenging Tone = "challenging"
)

func (t Tone) IsValid() bool {
	switch t {
	case ToneNone, TonePositive, ToneNeutral, ToneChallenging:
		return true
	default:
		return false
	}
}

type Mood string

const (
	MoodVeryHappy Mood = "very-happy"
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodVerySad   Mood = "very-sad"
)

var Moods = []Mood{MoodVeryHappy, MoodHappy, MoodNeutral, MoodSad, MoodVerySad}

func (m Mood) IsValid() bool {
	switch m {
	case MoodVeryHappy, MoodHappy, MoodNeutral, MoodSad, MoodVerySad:
		return true
	default:
		return false
	}
}

func (m Mood) Label() string {
	return strings.ReplaceAll(string(m), "-", " ")
}

// StructuredCheckIn is produced by the daily check-in form.
type StructuredCheckIn struct {
	SleepHours   int    `json:"sleepHours"`
	SleepMinutes int    `json:"sleepMinutes"`
	Mood         Mood   `json:"mood"`
	DidWorkout   bool   `json:"didWorkout"`
	DayRating    int    `json:"dayRating"`
	EnergyLevel  int    `json:"energyLevel"`
	StressLevel  int    `json:"stressLevel"`
	Notes        string `json:"notes"`
}

func DefaultStructuredCheckIn() StructuredCheckIn {
	return StructuredCheckIn{
		SleepHours:  7,
		Mood:        MoodNeutral,
		DayRating:   3,
		EnergyLevel: 3,
		StressLevel: 3,
	}
}

func (c StructuredCheckIn) Validate() error {
	if c.SleepHours < 0 || c.SleepHours > 24 {
		return fmt.Errorf("%w: sleep hours %d", ErrOutOfRange, c.SleepHours)
	}
	if c.SleepMinutes < 0 || c.SleepMinutes > 59 {
		return fmt.Errorf("%w: sleep minutes %d", ErrOutOfRange, c.SleepMinutes)
	}
	if !c.Mood.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMood, c.Mood)
	}
	for name, v := range map[string]int{"day rating": c.DayRating, "energy": c.EnergyLevel, "stress": c.StressLevel} {
		if v < 1 || v > 5 {
			return fmt.Errorf("%w: %s %d", ErrOutOfRange, name, v)
		}
	}
	return nil
}

// IndirectCheckIn holds the multiple-choice answers of the five-step reflection flow.
type IndirectCheckIn struct {
	WakeResponse    string `json:"wake_response"`
	DrinkChoice     string `json:"drink_choice"`
	ThoughtResponse string `json:"thought_response"`
	MaskChoice      string `json:"mask_choice"`
	TitleText       string `json:"title_text"`
	SelectedTag     string `json:"selected_tag"`
	Tone            Tone   `json:"tone"`
}

// Complete reports whether every step of the flow has an answer.
func (c IndirectCheckIn) Complete() bool {
	return strings.TrimSpace(c.WakeResponse) != "" &&
		strings.TrimSpace(c.DrinkChoice) != "" &&
		strings.TrimSpace(c.ThoughtResponse) != "" &&
		strings.TrimSpace(c.MaskChoice) != "" &&
		strings.TrimSpace(c.TitleText) != "" &&
		strings.TrimSpace(c.SelectedTag) != ""
}

// ReflectionEntry is one dated check-in. Source selects which payload is set.
type ReflectionEntry struct {
	ID         string             `json:"id"`
	Date       time.Time          `json:"date"`
	Timestamp  time.Time          `json:"timestamp"`
	Source     ReflectionSource   `json:"source"`
	Structured *StructuredCheckIn `json:"structured,omitempty"`
	Indirect   *IndirectCheckIn   `json:"indirect,omitempty"`
	Tone       Tone               `json:"tone,omitempty"`
}

func NewStructuredEntry(at time.Time, c StructuredCheckIn) ReflectionEntry {
	return ReflectionEntry{Date: at, Timestamp: at, Source: SourceStructured, Structured: &c}
}

func NewIndirectEntry(at time.Time, c IndirectCheckIn) ReflectionEntry {
	tone := c.Tone
	if tone == ToneNone {
		tone = ToneNeutral
	}
	return ReflectionEntry{Date: at, Timestamp: at, Source: SourceIndirect, Indirect: &c, Tone: tone}
}

func (e ReflectionEntry) Validate() error {
	if e.Date.IsZero() {
		return errors.New("model: reflection date is required")
	}
	if !e.Tone.IsValid() {
		return fmt.Errorf("model: invalid tone %q", e.Tone)
	}
	switch e.Source {
	case SourceStructured:
		if e.Structured == nil || e.Indirect != nil {
			return fmt.Errorf("%w: %s", ErrPayloadMissing, e.Source)
		}
		return e.Structured.Validate()
	case SourceIndirect:
		if e.Indirect == nil || e.Structured != nil {
			return fmt.Errorf("%w: %s", ErrPayloadMissing, e.Source)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSource, e.Source)
	}
}

// OnDay reports whether the entry's calendar date equals day's, compared in day's location.
func (e ReflectionEntry) OnDay(day time.Time) bool {
	return DayKey(e.Date.In(day.Location())) == DayKey(day)
}
