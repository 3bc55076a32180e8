package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/views"
)

const reflectTitleStep = 4

type reflectQuestion struct {
	prompt  string
	options []string
}

var reflectQuestions = []reflectQuestion{
	{prompt: "How did you wake up today?", options: model.WakeResponses},
	{prompt: "Pick your fuel for the day", options: model.DrinkChoices},
	{prompt: "What's the first thought in your head?", options: model.ThoughtResponses},
	{prompt: "Which mask are you wearing?", options: model.MaskChoices},
}

func (m Model) handleReflectKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	r := &m.Reflect
	key := msg.String()
	if key == "esc" || (r.Done && key == "enter") {
		m.CurrentView = ViewDashboard
		m.titleInput.Blur()
		return m, nil
	}
	if r.Done {
		return m, nil
	}

	if r.Step < reflectTitleStep {
		options := reflectQuestions[r.Step].options
		switch key {
		case "j", "k", "up", "down":
			r.Cursor = moveCursor(r.Cursor, key, len(options))
		case "enter":
			choice := options[clamp(r.Cursor, 0, len(options)-1)]
			switch r.Step {
			case 0:
				r.Answers.WakeResponse = choice
			case 1:
				r.Answers.DrinkChoice = choice
			case 2:
				r.Answers.ThoughtResponse = choice
			case 3:
				r.Answers.MaskChoice = choice
			}
			r.Step++
			r.Cursor = 0
			if r.Step == reflectTitleStep {
				m.titleInput.SetValue("")
				m.titleInput.Focus()
			}
		}
		return m, nil
	}

	switch key {
	case "left":
		r.TagIdx = cycle(r.TagIdx, -1, len(model.MoodTags))
	case "right":
		r.TagIdx = cycle(r.TagIdx, 1, len(model.MoodTags))
	case "enter":
		return m.submitReflection(), nil
	default:
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submitReflection() Model {
	r := &m.Reflect
	r.Answers.TitleText = strings.TrimSpace(m.titleInput.Value())
	r.Answers.SelectedTag = model.MoodTags[r.TagIdx]
	if !r.Answers.Complete() {
		m.toast("Reflect", "Give today a title first", true)
		return m
	}
	r.Answers.Tone = model.IndirectTone(r.Answers)

	now := m.now()
	if _, err := m.services.Reflections.Add(m.context(), model.NewIndirectEntry(now, r.Answers)); err != nil {
		m.toast("Error", err.Error(), true)
		return m
	}
	if err := m.services.CheckIns.Record(m.context(), r.Answers, now); err != nil {
		m.log.WithError(err).Warn("record check-in failed")
	}
	r.Quote = model.QuoteFor(r.Answers.Tone, m.rng)
	r.Done = true
	m.titleInput.Blur()
	m.cancel(timerPrompt)
	m.Dashboard.PromptVisible = false
	m.toast("Reflect", "Reflection saved", false)
	return m
}

func (m Model) renderReflectView() string {
	r := m.Reflect
	data := views.ReflectPanelData{Step: r.Step + 1, Steps: reflectTitleStep + 1, Done: r.Done}
	switch {
	case r.Done:
		data.Title = r.Answers.TitleText
		data.Tag = r.Answers.SelectedTag
		data.Tone = string(r.Answers.Tone)
		data.QuoteView = m.quoteViewport.View()
	case r.Step < reflectTitleStep:
		q := reflectQuestions[r.Step]
		data.Question = q.prompt
		data.Options = q.options
		data.Cursor = r.Cursor
	default:
		data.Question = "Title today's episode and tag the mood"
		data.TitleView = m.titleInput.View()
		data.Tag = model.MoodTags[r.TagIdx]
	}
	return views.RenderReflectPanel(data)
}
