package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/views"
)

const (
	fieldSleepHours = iota
	fieldSleepMinutes
	fieldMood
	fieldWorkout
	fieldDayRating
	fieldEnergy
	fieldStress
	fieldNotes
	checkInFieldCount
)

func (m Model) handleCheckInKey(msg tea.KeyMsg) Model {
	f := &m.CheckIn
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewDashboard
		m.Status = StatusBar{Text: "check-in cancelled"}
		return m
	case "up", "shift+tab":
		f.Field = cycle(f.Field, -1, checkInFieldCount)
		return m
	case "down", "tab":
		f.Field = cycle(f.Field, 1, checkInFieldCount)
		return m
	case "left":
		f.Values = adjustCheckIn(f.Values, f.Field, -1)
		return m
	case "right":
		f.Values = adjustCheckIn(f.Values, f.Field, 1)
		return m
	case "enter":
		return m.submitCheckIn()
	}

	if f.Field == fieldNotes {
		switch msg.Type {
		case tea.KeyBackspace:
			if r := []rune(f.Values.Notes); len(r) > 0 {
				f.Values.Notes = string(r[:len(r)-1])
			}
		case tea.KeyRunes, tea.KeySpace:
			f.Values.Notes += string(msg.Runes)
		}
		return m
	}
	if msg.String() == " " && f.Field == fieldWorkout {
		f.Values.DidWorkout = !f.Values.DidWorkout
	}
	return m
}

func adjustCheckIn(v model.StructuredCheckIn, field, delta int) model.StructuredCheckIn {
	switch field {
	case fieldSleepHours:
		v.SleepHours = clamp(v.SleepHours+delta, 0, 24)
	case fieldSleepMinutes:
		v.SleepMinutes = clamp(v.SleepMinutes+delta*15, 0, 45)
	case fieldMood:
		i := 0
		for j, mood := range model.Moods {
			if mood == v.Mood {
				i = j
			}
		}
		v.Mood = model.Moods[clamp(i+delta, 0, len(model.Moods)-1)]
	case fieldWorkout:
		v.DidWorkout = !v.DidWorkout
	case fieldDayRating:
		v.DayRating = clamp(v.DayRating+delta, 1, 5)
	case fieldEnergy:
		v.EnergyLevel = clamp(v.EnergyLevel+delta, 1, 5)
	case fieldStress:
		v.StressLevel = clamp(v.StressLevel+delta, 1, 5)
	}
	return v
}

func (m Model) submitCheckIn() Model {
	values := m.CheckIn.Values
	values.Notes = strings.TrimSpace(values.Notes)
	if err := values.Validate(); err != nil {
		m.toast("Check-in", err.Error(), true)
		return m
	}
	now := m.now()
	if _, err := m.services.Reflections.Add(m.context(), model.NewStructuredEntry(now, values)); err != nil {
		m.toast("Error", err.Error(), true)
		return m
	}
	if err := m.services.CheckIns.MarkCheckedIn(m.context(), now); err != nil {
		m.log.WithError(err).Warn("mark checked in failed")
	}
	m.cancel(timerPrompt)
	m.Dashboard.PromptVisible = false
	m.CheckIn = CheckInForm{Values: model.DefaultStructuredCheckIn()}
	m.CurrentView = ViewDashboard
	m.toast("Check-in", "Check-in complete", false)
	return m
}

func (m Model) renderCheckInView() string {
	v := m.CheckIn.Values
	workout := "no"
	if v.DidWorkout {
		workout = "yes"
	}
	rows := []views.FormRow{
		{Label: "Sleep hours", Value: fmt.Sprintf("%d", v.SleepHours)},
		{Label: "Sleep minutes", Value: fmt.Sprintf("%d", v.SleepMinutes)},
		{Label: "Mood", Value: v.Mood.Label()},
		{Label: "Workout", Value: workout},
		{Label: "Day rating", Value: fmt.Sprintf("%d/5", v.DayRating)},
		{Label: "Energy", Value: fmt.Sprintf("%d/5", v.EnergyLevel)},
		{Label: "Stress", Value: fmt.Sprintf("%d/5", v.StressLevel)},
		{Label: "Notes", Value: v.Notes},
	}
	return views.RenderCheckInForm(views.CheckInFormData{Rows: rows, Cursor: m.CheckIn.Field})
}
