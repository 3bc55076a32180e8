package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/commands"
	"github.com/sandeepkv93/levelup/internal/model"
)

const (
	defaultTaskField   = "JEE Preparation"
	defaultTaskMinutes = 30
)

func (m Model) openPalette(prefill string) Model {
	m.Palette.Active = true
	m.Palette.Input = prefill
	m.commandInput.SetValue(prefill)
	m.commandInput.CursorEnd()
	m.commandInput.Focus()
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.toast("Command Failed", err.Error(), true)
		return m.closePalette()
	}

	res, err := commands.Execute(cmd, m.commandHandlers())
	if err != nil {
		m.toast("Command Failed", err.Error(), true)
	} else {
		m.toast("Command", res.Message, false)
	}
	return m.closePalette()
}

// commandHandlers binds palette commands to the stores. Handlers mutate m in place.
func (m *Model) commandHandlers() commands.Handlers {
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			in := model.TaskInput{
				Title:           a.Title,
				Field:           a.Field,
				DueDate:         a.DueDate,
				Priority:        a.Priority,
				DurationMinutes: a.Minutes,
			}
			if in.Field == "" {
				in.Field = m.Tasks.Field
			}
			if in.Field == "" {
				in.Field = defaultTaskField
			}
			if in.DueDate == "" {
				in.DueDate = model.DayKey(m.now())
			}
			if in.Priority == "" {
				in.Priority = model.PriorityMedium
			}
			if in.DurationMinutes == 0 {
				in.DurationMinutes = defaultTaskMinutes
			}
			in.XP = model.ComputeXP(in.Priority, in.DurationMinutes)
			t, err := m.services.Tasks.Add(m.context(), in)
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewTasks
			return commands.Result{Message: fmt.Sprintf("added quest %q (+%d xp)", t.Title, t.XP)}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			tasks := m.visibleTasks()
			if d.Index > len(tasks) {
				return commands.Result{}, rowOutOfRange("task", d.Index, len(tasks))
			}
			t := tasks[d.Index-1]
			*m = m.toggleTask(t.ID)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Progress: func(p commands.ProgressArgs) (commands.Result, error) {
			custom := m.services.Achievements.Achievements()
			if p.Index > len(custom) {
				return commands.Result{}, rowOutOfRange("custom achievement", p.Index, len(custom))
			}
			res, err := m.services.Achievements.UpdateProgress(m.context(), custom[p.Index-1].ID, p.Value)
			if err != nil {
				return commands.Result{}, err
			}
			if res.Unlocked {
				return commands.Result{Message: "Achievement unlocked: " + res.Achievement.Title}, nil
			}
			return commands.Result{Message: fmt.Sprintf("%s: %d/%d", res.Achievement.Title, res.Achievement.CurrentValue, res.Achievement.TargetValue)}, nil
		},
		Journal: func(j commands.JournalArgs) (commands.Result, error) {
			created, err := m.Journal.Entries.Save(m.now(), j.Text)
			if err != nil {
				return commands.Result{}, err
			}
			m.Journal.Selected = model.StartOfDay(m.now())
			if created {
				return commands.Result{Message: "Journal entry saved"}, nil
			}
			return commands.Result{Message: "Journal entry updated"}, nil
		},
		Event: func(e commands.EventArgs) (commands.Result, error) {
			ev, err := m.addEvent(model.ScheduleEvent{Title: e.Title, Date: e.Date, StartTime: e.Start, EndTime: e.End})
			if err != nil {
				return commands.Result{}, err
			}
			if day, err := model.ParseDay(ev.Date, m.now().Location()); err == nil {
				m.Schedule.Selected = day
			}
			m.CurrentView = ViewSchedule
			return commands.Result{Message: fmt.Sprintf("event added: %s %s", ev.Title, ev.TimeRange())}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			v := viewByName(s.View)
			*m = m.switchView(v)
			return commands.Result{Message: "showing " + string(v)}, nil
		},
		Range: func(r commands.RangeArgs) (commands.Result, error) {
			m.Reports.Range = r.Range
			*m = m.switchView(ViewReports)
			return commands.Result{Message: "report range: " + string(r.Range)}, nil
		},
	}
}

func rowOutOfRange(what string, n, total int) error {
	return &commands.CommandError{
		Code:    commands.ErrCodeInvalidArgument,
		Message: fmt.Sprintf("no %s #%d (have %d)", what, n, total),
	}
}

func viewByName(name string) View {
	for _, v := range []View{ViewDashboard, ViewTasks, ViewSchedule, ViewJournal, ViewAchievements, ViewSettings, ViewReports} {
		if strings.EqualFold(string(v), name) {
			return v
		}
	}
	return ViewDashboard
}
