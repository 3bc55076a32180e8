package update

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/views"
)

func (m Model) handleJournalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Journal.Editing {
		switch msg.String() {
		case "esc":
			m.Journal.Editing = false
			m.journalArea.Blur()
			m.Status = StatusBar{Text: "edit cancelled"}
		case "ctrl+s":
			return m.saveJournal(m.Journal.Selected, m.journalArea.Value()), nil
		default:
			var cmd tea.Cmd
			m.journalArea, cmd = m.journalArea.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch msg.String() {
	case "h", "left":
		m.Journal.Selected = m.Journal.Selected.AddDate(0, 0, -1)
	case "l", "right":
		m.Journal.Selected = m.Journal.Selected.AddDate(0, 0, 1)
	case "t":
		m.Journal.Selected = model.StartOfDay(m.now())
	case "e", "enter":
		content := ""
		if entry, ok := m.Journal.Entries.EntryFor(m.Journal.Selected); ok {
			content = entry.Content
		}
		m.journalArea.SetValue(content)
		m.journalArea.Focus()
		m.Journal.Editing = true
	}
	return m, nil
}

func (m Model) saveJournal(day time.Time, content string) Model {
	created, err := m.Journal.Entries.Save(day, content)
	if errors.Is(err, model.ErrEmptyJournalEntry) {
		m.toast("Journal", "Entry cannot be empty", true)
		return m
	}
	if err != nil {
		m.toast("Error", err.Error(), true)
		return m
	}
	m.Journal.Editing = false
	m.journalArea.Blur()
	if created {
		m.toast("Journal", "Journal entry saved", false)
	} else {
		m.toast("Journal", "Journal entry updated", false)
	}
	return m
}

func (m Model) renderJournalView() string {
	data := views.JournalPanelData{
		Date:    m.Journal.Selected.Format("Monday, Jan 2 2006"),
		Editing: m.Journal.Editing,
	}
	if m.Journal.Editing {
		data.EditorView = m.journalArea.View()
	} else if entry, ok := m.Journal.Entries.EntryFor(m.Journal.Selected); ok {
		data.Rendered = views.RenderMarkdown(entry.Content)
	}
	return views.RenderJournalPanel(data)
}

func (m Model) renderJournalSidePane() string {
	return views.RenderJournalCalendar(m.Journal.Entries.DatesWithEntries(), model.DayKey(m.Journal.Selected))
}
