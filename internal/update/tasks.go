package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/scheduler"
	"github.com/sandeepkv93/levelup/internal/views"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	tasks := m.visibleTasks()
	switch key := msg.String(); key {
	case "j", "k", "up", "down":
		m.Tasks.Cursor = moveCursor(m.Tasks.Cursor, key, len(tasks))
	case " ", "enter":
		if len(tasks) == 0 {
			return m, nil
		}
		m = m.toggleTask(tasks[clamp(m.Tasks.Cursor, 0, len(tasks)-1)].ID)
	case "f":
		m.Tasks.Field = nextField(m.Tasks.Field)
		m.Tasks.Cursor = 0
		label := m.Tasks.Field
		if label == "" {
			label = "all"
		}
		m.Status = StatusBar{Text: "field: " + label}
	case "s":
		m.Tasks.Sort = m.Tasks.Sort.Next()
		m.Status = StatusBar{Text: "sort: " + string(m.Tasks.Sort)}
	case "d":
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[clamp(m.Tasks.Cursor, 0, len(tasks)-1)]
		if err := m.services.Tasks.Delete(m.context(), t.ID); err != nil {
			m.toast("Error", err.Error(), true)
			return m, nil
		}
		m.toast("Task", "Task deleted", false)
	case "a":
		return m.openPalette("add "), nil
	}
	return m, nil
}

// toggleTask flips completion and raises the xp popup on a false to true transition.
func (m Model) toggleTask(id string) Model {
	ev, completed, err := m.services.Tasks.ToggleCompletion(m.context(), id)
	if err != nil {
		m.toast("Error", err.Error(), true)
		return m
	}
	if !completed {
		m.Status = StatusBar{Text: "task reopened"}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("completed %q (+%d xp)", ev.Title, ev.XP)}
	if m.Profile.ShowXPNotifications {
		m.Popup = &CompletionPopup{Title: ev.Title, XP: ev.XP}
		m.after(timerPopup, scheduler.KindPopupDismiss, m.cfg.PopupDuration)
	}
	return m
}

// nextField cycles "" (all) through the fixed field menu.
func nextField(current string) string {
	if current == "" {
		return model.Fields[0]
	}
	for i, f := range model.Fields {
		if f == current && i+1 < len(model.Fields) {
			return model.Fields[i+1]
		}
	}
	return ""
}

func (m Model) renderTasksView() string {
	all := m.services.Tasks.Tasks()
	field := m.Tasks.Field
	if field == "" {
		field = "all"
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		Field:     field,
		Sort:      string(m.Tasks.Sort),
		Completed: model.CountCompleted(all),
		Total:     len(all),
		ListView:  m.taskList.View(),
	})
}

func (m Model) renderTaskDetailPane() string {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return "quest:\n(no tasks)"
	}
	t := tasks[clamp(m.Tasks.Cursor, 0, len(tasks)-1)]
	return views.RenderTaskDetail(views.TaskRowData{
		Title:       t.Title,
		Description: t.Description,
		Field:       t.Field,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		XP:          t.XP,
		Completed:   t.Completed,
	})
}

func (m Model) renderPopupIfVisible() string {
	if m.Popup == nil {
		return ""
	}
	return views.RenderCompletionPopup(m.Popup.Title, m.Popup.XP)
}
