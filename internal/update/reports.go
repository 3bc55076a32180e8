package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/views"
)

var reportRanges = []model.ReportRange{model.RangeWeek, model.RangeMonth, model.Range90Days}

func (m Model) handleReportsKey(msg tea.KeyMsg) Model {
	if msg.String() != "r" {
		return m
	}
	i := 0
	for j, r := range reportRanges {
		if r == m.Reports.Range {
			i = j
		}
	}
	m.Reports.Range = reportRanges[cycle(i, 1, len(reportRanges))]
	m.Status = StatusBar{Text: "range: " + string(m.Reports.Range)}
	return m
}

func (m Model) renderReportsView() string {
	start, end := model.ReportWindow(m.Reports.Range, m.now())
	return views.RenderReportsPanel(views.ReportsPanelData{
		Range:     string(m.Reports.Range),
		From:      model.DayKey(start),
		To:        model.DayKey(end),
		TableView: m.reportTable.View(),
	})
}

func (m Model) renderReportSummaryPane() string {
	start, end := model.ReportWindow(m.Reports.Range, m.now())
	entries := m.services.Reflections.ByDateRange(start, end)
	sum := model.SummarizeReport(model.AggregateDays(entries, start, end), entries)
	streak := m.services.Reflections.Streak()

	moods := make([]views.MoodCountData, 0, len(sum.Moods))
	for _, mc := range sum.Moods {
		moods = append(moods, views.MoodCountData{Label: mc.Label, Count: mc.Count})
	}
	return views.RenderReportSummary(views.ReportSummaryData{
		DaysWithData:  sum.DaysWithData,
		AvgMood:       sum.AvgMood,
		AvgEnergy:     sum.AvgEnergy,
		AvgStress:     sum.AvgStress,
		AvgSleep:      sum.AvgSleep,
		AvgDayRating:  sum.AvgDayRating,
		WorkoutDays:   sum.WorkoutDays,
		RestDays:      sum.RestDays,
		Moods:         moods,
		Streak:        streak,
		StreakMessage: model.StreakMessage(streak),
	})
}
