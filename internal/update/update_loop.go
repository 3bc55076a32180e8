package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/scheduler"
	"github.com/sandeepkv93/levelup/internal/views"
)

func (m Model) Init() tea.Cmd {
	m.schedulePromptIfNeeded()
	if m.Scheduler != nil {
		return waitForTimerCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			return m.quit()
		}
		if m.Palette.Active {
			if keyStr == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		// Views with a focused text field get every key first.
		if m.capturingText() {
			return m.handleViewKey(typed)
		}
		if m.CurrentView == ViewRegister {
			return m.handleRegisterKey(typed)
		}

		switch keyStr {
		case "/":
			return m.openPalette(""), nil
		case m.Keys.Dashboard:
			return m.switchView(ViewDashboard), nil
		case m.Keys.Tasks:
			return m.switchView(ViewTasks), nil
		case m.Keys.Schedule:
			return m.switchView(ViewSchedule), nil
		case m.Keys.Journal:
			return m.switchView(ViewJournal), nil
		case m.Keys.Achievements:
			return m.switchView(ViewAchievements), nil
		case m.Keys.Settings:
			return m.switchView(ViewSettings), nil
		case m.Keys.Reports:
			return m.switchView(ViewReports), nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case m.Keys.Quit:
			return m.quit()
		}
		return m.handleViewKey(typed)
	case spinner.TickMsg:
		if m.Register.Wallet == WalletConnecting {
			var cmd tea.Cmd
			m.walletSpinner, cmd = m.walletSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m = m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case TimerFiredMsg:
		m = m.onTimer(typed.Timer)
		if m.Scheduler != nil {
			return m, waitForTimerCmd(m.Scheduler.C())
		}
		return m, nil
	case DayChangedMsg:
		m = m.onDayChanged()
		return m, nil
	}

	return m, nil
}

func (m Model) handleViewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.CurrentView {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewSchedule:
		return m.handleScheduleKey(msg), nil
	case ViewJournal:
		return m.handleJournalKey(msg)
	case ViewAchievements:
		return m.handleAchievementsKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	case ViewReports:
		return m.handleReportsKey(msg), nil
	case ViewCheckIn:
		return m.handleCheckInKey(msg), nil
	case ViewReflect:
		return m.handleReflectKey(msg)
	}
	return m, nil
}

func (m Model) capturingText() bool {
	switch m.CurrentView {
	case ViewJournal:
		return m.Journal.Editing
	case ViewAchievements:
		return m.Achievements.Form.Active
	case ViewSettings:
		return m.Settings.EditingName
	case ViewCheckIn, ViewReflect:
		return true
	}
	return false
}

func (m Model) quit() (Model, tea.Cmd) {
	m.Quitting = true
	if m.Scheduler != nil {
		m.Scheduler.Stop()
	}
	return m, tea.Quit
}

func (m Model) switchView(v View) Model {
	if !m.Profile.Registered && v != ViewRegister {
		m.Status = StatusBar{Text: "finish registration first", IsError: true}
		return m
	}
	m.CurrentView = v
	switch v {
	case ViewCheckIn:
		m.CheckIn = CheckInForm{Values: model.DefaultStructuredCheckIn()}
		m.Dashboard.PromptVisible = false
	case ViewReflect:
		m.Reflect = ReflectFlow{}
		m.Dashboard.PromptVisible = false
		m.titleInput.SetValue("")
		m.titleInput.Blur()
	}
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewRegister:
		leftPane = m.renderRegisterView()
		rightPane = m.renderHelpIfVisible()
	case ViewDashboard:
		leftPane = m.renderDashboardView()
		rightPane = m.renderDashboardSidePane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskDetailPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewSchedule:
		leftPane = m.renderScheduleView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewJournal:
		leftPane = m.renderJournalView()
		rightPane = m.renderJournalSidePane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewAchievements:
		leftPane = m.renderAchievementsView()
		rightPane = m.renderAchievementFormIfActive() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewSettings:
		leftPane = m.renderSettingsView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewReports:
		leftPane = m.renderReportsView()
		rightPane = m.renderReportSummaryPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewCheckIn:
		leftPane = m.renderCheckInView()
		rightPane = m.renderHelpIfVisible()
	case ViewReflect:
		leftPane = m.renderReflectView()
		rightPane = m.renderHelpIfVisible()
	}

	return views.RenderApp(views.AppData{
		Header:       m.headerLine(),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Popup:        m.renderPopupIfVisible(),
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s dash | %s tasks | %s schedule | %s journal | %s goals | %s settings | %s reports | / cmd | %s help | %s quit",
			m.Keys.Dashboard, m.Keys.Tasks, m.Keys.Schedule, m.Keys.Journal, m.Keys.Achievements, m.Keys.Settings, m.Keys.Reports, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) headerLine() string {
	total := m.services.TotalXP()
	return fmt.Sprintf("levelup | view: %s | %s | level %d | %d xp", m.CurrentView, m.Profile.Name, model.LevelForTotalXP(total), total)
}

func isKnownView(v View) bool {
	switch v {
	case ViewDashboard, ViewTasks, ViewSchedule, ViewJournal, ViewAchievements, ViewSettings, ViewReports,
		ViewRegister, ViewCheckIn, ViewReflect:
		return true
	default:
		return false
	}
}

func waitForTimerCmd(ch <-chan scheduler.Timer) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return TimerFiredMsg{Timer: t}
	}
}
