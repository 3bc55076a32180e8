package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/levelup/internal/model"
)

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 14)
	m.taskList.Title = "Quests"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Date", Width: 11},
		{Title: "Mood", Width: 5},
		{Title: "Energy", Width: 6},
		{Title: "Stress", Width: 6},
		{Title: "Sleep", Width: 6},
		{Title: "Src", Width: 10},
	}
	m.reportTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(10))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.Placeholder = "Name today's episode"
	m.titleInput.CharLimit = 80
	m.titleInput.Width = 40

	m.nameInput = textinput.New()
	m.nameInput.Prompt = "name> "
	m.nameInput.CharLimit = 40
	m.nameInput.Width = 30

	m.journalArea = textarea.New()
	m.journalArea.SetWidth(54)
	m.journalArea.SetHeight(8)
	m.journalArea.ShowLineNumbers = false
	m.journalArea.Placeholder = "Write about your day (markdown)"

	m.xpProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	m.walletSpinner = spinner.New()
	m.walletSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.quoteViewport = viewport.New(54, 4)
}

func (m *Model) syncBubbleData() {
	tasks := m.visibleTasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		items = append(items, listItem{
			title:       fmt.Sprintf("%s %s", check, t.Title),
			description: fmt.Sprintf("%s | due %s | %s | +%d xp", t.Field, t.DueDate, t.Priority, t.XP),
		})
	}
	m.taskList.SetItems(items)
	if m.Tasks.Cursor >= len(items) {
		m.Tasks.Cursor = max(len(items)-1, 0)
	}
	if len(items) > 0 {
		m.taskList.Select(m.Tasks.Cursor)
	}

	records := m.reportRecords()
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		if !r.HasData {
			continue
		}
		sleep := "-"
		if r.HasSleep {
			sleep = fmt.Sprintf("%.1fh", r.Sleep)
		}
		rows = append(rows, table.Row{
			model.DayKey(r.Date),
			fmt.Sprintf("%d", r.Mood),
			fmt.Sprintf("%d", r.Energy),
			fmt.Sprintf("%d", r.Stress),
			sleep,
			sourceLabel(r.Source),
		})
	}
	m.reportTable.SetRows(rows)

	if m.Palette.Active {
		m.commandInput.SetValue(m.Palette.Input)
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}

	if m.Achievements.Cursor >= len(m.visibleAchievements()) {
		m.Achievements.Cursor = max(len(m.visibleAchievements())-1, 0)
	}
	events := m.eventsForSelectedDay()
	if m.Schedule.Cursor >= len(events) {
		m.Schedule.Cursor = max(len(events)-1, 0)
	}

	m.quoteViewport.SetContent(m.currentQuote())
}

func (m Model) visibleTasks() []model.Task {
	tasks := model.FilterTasksByField(m.services.Tasks.Tasks(), m.Tasks.Field)
	if !m.Profile.ShowCompletedTasks {
		open := tasks[:0]
		for _, t := range tasks {
			if !t.Completed {
				open = append(open, t)
			}
		}
		tasks = open
	}
	return model.SortTasks(tasks, m.Tasks.Sort)
}

func (m Model) visibleAchievements() []model.AchievementCard {
	cards := model.CombineAchievements(model.SystemAchievements(), m.services.Achievements.Achievements())
	return model.FilterAchievements(cards, m.Achievements.Filter)
}

func (m Model) reportRecords() []model.DayRecord {
	start, end := model.ReportWindow(m.Reports.Range, m.now())
	return model.AggregateDays(m.services.Reflections.ByDateRange(start, end), start, end)
}

func (m Model) eventsForSelectedDay() []model.ScheduleEvent {
	return model.EventsOn(m.Schedule.Events, model.DayKey(m.Schedule.Selected))
}

func (m Model) currentQuote() string {
	if m.Reflect.Quote != "" {
		return m.Reflect.Quote
	}
	latest, ok := m.services.Reflections.Latest()
	if !ok || latest.Tone == model.ToneNone {
		return model.QuoteFor(model.ToneNeutral, nil)
	}
	return model.QuoteFor(latest.Tone, nil)
}

func sourceLabel(s model.ReflectionSource) string {
	switch s {
	case model.SourceStructured:
		return "check-in"
	case model.SourceIndirect:
		return "reflect"
	default:
		return "-"
	}
}
