package update

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/views"
)

const (
	formTitle = iota
	formDescription
	formTarget
	formXP
	formCategory
	formIcon
	formFieldCount
)

const progressStep = 10

func (m Model) handleAchievementsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Achievements.Form.Active {
		return m.handleAchievementFormKey(msg)
	}
	cards := m.visibleAchievements()
	switch key := msg.String(); key {
	case "j", "k", "up", "down":
		m.Achievements.Cursor = moveCursor(m.Achievements.Cursor, key, len(cards))
	case "f":
		filters := model.AchievementFilters()
		i := 0
		for j, f := range filters {
			if f == m.Achievements.Filter {
				i = j
			}
		}
		m.Achievements.Filter = filters[cycle(i, 1, len(filters))]
		m.Achievements.Cursor = 0
		m.Status = StatusBar{Text: "filter: " + string(m.Achievements.Filter)}
	case "+", "=", "-":
		if len(cards) == 0 {
			return m, nil
		}
		card := cards[clamp(m.Achievements.Cursor, 0, len(cards)-1)]
		if !card.Custom {
			m.Status = StatusBar{Text: "system achievements are read-only", IsError: true}
			return m, nil
		}
		delta := progressStep
		if key == "-" {
			delta = -progressStep
		}
		current := 0
		for _, a := range m.services.Achievements.Achievements() {
			if a.ID == card.ID {
				current = a.CurrentValue
			}
		}
		return m.setAchievementProgress(card.ID, max(current+delta, 0)), nil
	case "n":
		m.Achievements.Form = newAchievementForm()
	}
	return m, nil
}

func (m Model) setAchievementProgress(id string, value int) Model {
	res, err := m.services.Achievements.UpdateProgress(m.context(), id, value)
	if err != nil {
		m.toast("Error", err.Error(), true)
		return m
	}
	if res.Unlocked {
		m.toast("Achievement unlocked", fmt.Sprintf("Achievement unlocked: %s (+%d xp)", res.Achievement.Title, res.Achievement.XPReward), false)
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %d/%d", res.Achievement.Title, res.Achievement.CurrentValue, res.Achievement.TargetValue)}
	return m
}

func newAchievementForm() AchievementForm {
	placeholders := []string{"Title", "Description", fmt.Sprintf("Target (%d)", model.DefaultAchievementTarget), fmt.Sprintf("XP reward (%d)", model.DefaultAchievementXPReward)}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		in.CharLimit = 120
		in.Width = 40
		inputs[i] = in
	}
	inputs[0].Focus()
	return AchievementForm{Active: true, Inputs: inputs}
}

func (m Model) handleAchievementFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := &m.Achievements.Form
	switch msg.String() {
	case "esc":
		m.Achievements.Form = AchievementForm{}
		m.Status = StatusBar{Text: "achievement form closed"}
		return m, nil
	case "tab", "down":
		f.Focus = cycle(f.Focus, 1, formFieldCount)
	case "shift+tab", "up":
		f.Focus = cycle(f.Focus, -1, formFieldCount)
	case "enter":
		return m.submitAchievementForm(), nil
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch f.Focus {
		case formCategory:
			f.Category = cycle(f.Category, delta, len(model.Categories))
			return m, nil
		case formIcon:
			f.Icon = cycle(f.Icon, delta, len(model.CustomIcons))
			return m, nil
		}
		fallthrough
	default:
		if f.Focus < len(f.Inputs) {
			var cmd tea.Cmd
			f.Inputs[f.Focus], cmd = f.Inputs[f.Focus].Update(msg)
			return m, cmd
		}
		return m, nil
	}
	for i := range f.Inputs {
		if i == f.Focus {
			f.Inputs[i].Focus()
		} else {
			f.Inputs[i].Blur()
		}
	}
	return m, nil
}

var errNotANumber = errors.New("must be a whole number")

func parseOptionalInt(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %w", name, errNotANumber)
	}
	return v, nil
}

func (m Model) submitAchievementForm() Model {
	f := &m.Achievements.Form
	target, err := parseOptionalInt("target", f.Inputs[formTarget].Value())
	if err != nil {
		f.Err = err.Error()
		return m
	}
	xp, err := parseOptionalInt("xp reward", f.Inputs[formXP].Value())
	if err != nil {
		f.Err = err.Error()
		return m
	}
	a, err := m.services.Achievements.Create(m.context(), model.AchievementInput{
		Title:       strings.TrimSpace(f.Inputs[formTitle].Value()),
		Description: strings.TrimSpace(f.Inputs[formDescription].Value()),
		Category:    model.Categories[f.Category],
		Icon:        model.CustomIcons[f.Icon],
		TargetValue: target,
		XPReward:    xp,
	})
	if err != nil {
		f.Err = err.Error()
		return m
	}
	m.Achievements.Form = AchievementForm{}
	m.toast("Achievements", fmt.Sprintf("created %q", a.Title), false)
	return m
}

func (m Model) renderAchievementsView() string {
	cards := m.visibleAchievements()
	rows := make([]views.AchievementRowData, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, views.AchievementRowData{
			Icon:      c.Icon.Symbol(),
			Title:     c.Title,
			Category:  string(c.Category),
			Progress:  c.Progress,
			Completed: c.Completed,
			XPReward:  c.XPReward,
			Custom:    c.Custom,
		})
	}
	return views.RenderAchievementsPanel(views.AchievementsPanelData{
		Filter: string(m.Achievements.Filter),
		Rows:   rows,
		Cursor: m.Achievements.Cursor,
		Earned: m.services.Achievements.EarnedXP(),
	})
}

func (m Model) renderAchievementFormIfActive() string {
	f := m.Achievements.Form
	if !f.Active {
		return ""
	}
	inputs := make([]string, 0, len(f.Inputs))
	for _, in := range f.Inputs {
		inputs = append(inputs, in.View())
	}
	return views.RenderAchievementForm(views.AchievementFormData{
		Inputs:   inputs,
		Category: string(model.Categories[f.Category]),
		Icon:     model.CustomIcons[f.Icon].Symbol() + " " + string(model.CustomIcons[f.Icon]),
		Focus:    f.Focus,
		Err:      f.Err,
	})
}
