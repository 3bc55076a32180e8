package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/views"
)

func (m Model) handleScheduleKey(msg tea.KeyMsg) Model {
	events := m.eventsForSelectedDay()
	switch key := msg.String(); key {
	case "h", "left":
		m.Schedule.Selected = m.Schedule.Selected.AddDate(0, 0, -1)
		m.Schedule.Cursor = 0
	case "l", "right":
		m.Schedule.Selected = m.Schedule.Selected.AddDate(0, 0, 1)
		m.Schedule.Cursor = 0
	case "t":
		m.Schedule.Selected = model.StartOfDay(m.now())
		m.Schedule.Cursor = 0
	case "j", "k", "up", "down":
		m.Schedule.Cursor = moveCursor(m.Schedule.Cursor, key, len(events))
	case "x":
		if len(events) == 0 {
			return m
		}
		e := events[clamp(m.Schedule.Cursor, 0, len(events)-1)]
		m.Schedule.Events = model.RemoveEvent(m.Schedule.Events, e.ID)
		m.toast("Schedule", "Event deleted", false)
	case "n":
		draft := model.NewEventDraft(m.Schedule.Selected)
		return m.openPalette(fmt.Sprintf("event %s %s %s ", draft.Date, draft.StartTime, draft.EndTime))
	}
	return m
}

// addEvent validates and stores a new event for the schedule page.
func (m *Model) addEvent(e model.ScheduleEvent) (model.ScheduleEvent, error) {
	if err := e.Validate(); err != nil {
		return model.ScheduleEvent{}, err
	}
	e.ID = uuid.NewString()
	m.Schedule.Events = append(m.Schedule.Events, e)
	return e, nil
}

func (m Model) renderScheduleView() string {
	events := m.eventsForSelectedDay()
	rows := make([]views.EventRowData, 0, len(events))
	for _, e := range events {
		rows = append(rows, views.EventRowData{Title: e.Title, Field: e.Field, TimeRange: e.TimeRange(), Description: e.Description})
	}
	return views.RenderSchedulePanel(views.SchedulePanelData{
		Date:   m.Schedule.Selected.Format("Monday, Jan 2 2006"),
		Events: rows,
		Cursor: m.Schedule.Cursor,
	})
}
