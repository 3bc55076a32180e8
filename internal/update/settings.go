package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/views"
)

const (
	settingName = iota
	settingCharacter
	settingShowCompleted
	settingShowXP
	settingDefaultView
	settingCount
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Settings.EditingName {
		switch msg.String() {
		case "esc":
			m.Settings.EditingName = false
			m.nameInput.Blur()
		case "enter":
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				m.toast("Settings", "Name cannot be empty", true)
				return m, nil
			}
			m.Settings.EditingName = false
			m.nameInput.Blur()
			m.Profile.Name = name
			return m.saveProfile("name updated"), nil
		default:
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	key := msg.String()
	switch key {
	case "j", "k", "up", "down":
		m.Settings.Cursor = moveCursor(m.Settings.Cursor, key, settingCount)
		return m, nil
	}

	delta := 0
	switch key {
	case "left", "h":
		delta = -1
	case "right", "l", " ", "enter":
		delta = 1
	default:
		return m, nil
	}

	switch m.Settings.Cursor {
	case settingName:
		if key == "enter" {
			m.nameInput.SetValue(m.Profile.Name)
			m.nameInput.Focus()
			m.Settings.EditingName = true
		}
		return m, nil
	case settingCharacter:
		i := 0
		for j, c := range model.Characters {
			if c == m.Profile.Character {
				i = j
			}
		}
		m.Profile.Character = model.Characters[cycle(i, delta, len(model.Characters))]
		return m.saveProfile("character: " + m.Profile.Character.DisplayName()), nil
	case settingShowCompleted:
		m.Profile.ShowCompletedTasks = !m.Profile.ShowCompletedTasks
		return m.saveProfile(fmt.Sprintf("show completed tasks: %t", m.Profile.ShowCompletedTasks)), nil
	case settingShowXP:
		m.Profile.ShowXPNotifications = !m.Profile.ShowXPNotifications
		return m.saveProfile(fmt.Sprintf("show xp notifications: %t", m.Profile.ShowXPNotifications)), nil
	case settingDefaultView:
		i := 0
		for j, v := range DefaultViews {
			if v == m.Profile.DefaultView {
				i = j
			}
		}
		m.Profile.DefaultView = DefaultViews[cycle(i, delta, len(DefaultViews))]
		return m.saveProfile("default view: " + string(m.Profile.DefaultView)), nil
	}
	return m, nil
}

func (m Model) saveProfile(status string) Model {
	if err := m.persistProfile(); err != nil {
		m.log.WithError(err).Error("persist profile failed")
		m.toast("Error", "could not save settings: "+err.Error(), true)
		return m
	}
	m.Status = StatusBar{Text: status}
	return m
}

func (m Model) renderSettingsView() string {
	name := m.Profile.Name
	if m.Settings.EditingName {
		name = m.nameInput.View()
	}
	rows := []views.FormRow{
		{Label: "Name", Value: name},
		{Label: "Character", Value: m.Profile.Character.DisplayName()},
		{Label: "Show completed tasks", Value: onOff(m.Profile.ShowCompletedTasks)},
		{Label: "Show XP notifications", Value: onOff(m.Profile.ShowXPNotifications)},
		{Label: "Default view", Value: string(m.Profile.DefaultView)},
	}
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Rows:          rows,
		Cursor:        m.Settings.Cursor,
		WalletAddress: ShortAddress(m.Profile.WalletAddress),
		Education:     m.Profile.EducationType,
	})
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
