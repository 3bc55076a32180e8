package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/levelup/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Dashboard, Action: "switch to Dashboard"},
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Schedule, Action: "switch to Schedule"},
		{Key: m.Keys.Journal, Action: "switch to Journal"},
		{Key: m.Keys.Achievements, Action: "switch to Achievements"},
		{Key: m.Keys.Settings, Action: "switch to Settings"},
		{Key: m.Keys.Reports, Action: "switch to Reports"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewRegister:
		return []KeyBinding{
			{Key: "c", Action: "connect wallet"},
			{Key: "j/k", Action: "choose education"},
			{Key: "enter", Action: "finish registration"},
		}
	case ViewDashboard:
		return []KeyBinding{
			{Key: "r", Action: "reflect (five questions)"},
			{Key: "c", Action: "daily check-in form"},
			{Key: "m", Action: "mint character"},
			{Key: "esc", Action: "dismiss reflection prompt"},
		}
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "toggle complete"},
			{Key: "f/s", Action: "cycle field / sort"},
			{Key: "a", Action: "add task"},
			{Key: "d", Action: "delete task"},
		}
	case ViewSchedule:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "t", Action: "jump to today"},
			{Key: "n", Action: "new event"},
			{Key: "x", Action: "delete event"},
		}
	case ViewJournal:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "e", Action: "edit entry"},
			{Key: "ctrl+s", Action: "save entry"},
			{Key: "esc", Action: "cancel edit"},
		}
	case ViewAchievements:
		return []KeyBinding{
			{Key: "f", Action: "cycle filter"},
			{Key: "+/-", Action: "adjust custom progress"},
			{Key: "n", Action: "new achievement"},
		}
	case ViewSettings:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "h/l", Action: "change value"},
			{Key: "enter", Action: "edit name"},
		}
	case ViewReports:
		return []KeyBinding{{Key: "r", Action: "cycle range"}}
	case ViewCheckIn:
		return []KeyBinding{
			{Key: "up/down", Action: "move field"},
			{Key: "left/right", Action: "adjust value"},
			{Key: "enter", Action: "submit"},
			{Key: "esc", Action: "cancel"},
		}
	case ViewReflect:
		return []KeyBinding{
			{Key: "j/k", Action: "choose answer"},
			{Key: "left/right", Action: "cycle mood tag"},
			{Key: "enter", Action: "next / submit"},
			{Key: "esc", Action: "leave"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
