package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/scheduler"
	"github.com/sandeepkv93/levelup/internal/views"
)

const dashboardTaskLimit = 5

func (m Model) handleDashboardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m.switchView(ViewReflect), nil
	case "c":
		return m.switchView(ViewCheckIn), nil
	case "esc":
		if m.Dashboard.PromptVisible {
			m.Dashboard.PromptVisible = false
			m.Status = StatusBar{Text: "reflection prompt dismissed"}
		}
	case "m":
		if m.Dashboard.Minting {
			return m, nil
		}
		m.Dashboard.Minting = true
		m.Dashboard.MintSuccess = false
		m.Status = StatusBar{Text: "minting character..."}
		m.after(timerMint, scheduler.KindMintComplete, m.cfg.MintDelay)
	case "t":
		return m.switchView(ViewTasks), nil
	}
	return m, nil
}

func (m Model) renderDashboardView() string {
	total := m.services.TotalXP()
	level := model.LevelForTotalXP(total)
	pct := model.LevelProgress(total)

	gear := model.CharacterGear(level)
	gearNames := make([]string, 0, len(gear))
	for _, g := range gear {
		gearNames = append(gearNames, string(g))
	}

	upcoming := make([]views.TaskRowData, 0, dashboardTaskLimit)
	for _, t := range model.SortTasks(m.services.Tasks.Tasks(), model.SortByDueDate) {
		if t.Completed {
			continue
		}
		upcoming = append(upcoming, views.TaskRowData{Title: t.Title, Field: t.Field, DueDate: t.DueDate, Priority: string(t.Priority), XP: t.XP})
		if len(upcoming) == dashboardTaskLimit {
			break
		}
	}

	return views.RenderDashboardPanel(views.DashboardPanelData{
		Name:        m.Profile.Name,
		Character:   m.Profile.Character.DisplayName(),
		Level:       level,
		TotalXP:     total,
		NextLevelXP: model.XPRequiredForLevel(level + 1),
		ProgressBar: m.xpProgress.ViewAs(float64(pct) / 100),
		Gear:        gearNames,
		Upcoming:    upcoming,
		Prompt:      m.Dashboard.PromptVisible,
		Minting:     m.Dashboard.Minting,
		Minted:      m.Dashboard.MintSuccess,
	})
}

func (m Model) renderDashboardSidePane() string {
	streak := m.services.Reflections.Streak()
	tone := "no reflections yet"
	if latest, ok := m.services.Reflections.Latest(); ok {
		tone = string(latest.Tone)
		if latest.Tone == model.ToneNone {
			tone = fmt.Sprintf("%s (no tone)", sourceLabel(latest.Source))
		}
	}
	return views.RenderStreakPanel(views.StreakPanelData{
		Streak:       streak,
		Message:      model.StreakMessage(streak),
		LatestTone:   tone,
		CheckedIn:    m.services.CheckIns.CheckedInOn(m.now()),
		QuoteView:    m.quoteViewport.View(),
		Completed:    model.CountCompleted(m.services.Tasks.Tasks()),
		TotalTasks:   len(m.services.Tasks.Tasks()),
		AchievedGoal: len(model.FilterAchievements(model.CombineAchievements(model.SystemAchievements(), m.services.Achievements.Achievements()), model.FilterCompleted)),
	})
}
