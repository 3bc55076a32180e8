package views

import (
	"fmt"
	"strings"
	"time"
)

type TaskRowData struct {
	Title       string
	Description string
	Field       string
	DueDate     string
	Priority    string
	XP          int
	Completed   bool
}

type DashboardPanelData struct {
	Name        string
	Character   string
	Level       int
	TotalXP     int
	NextLevelXP int
	ProgressBar string
	Gear        []string
	Upcoming    []TaskRowData
	Prompt      bool
	Minting     bool
	Minted      bool
}

type StreakPanelData struct {
	Streak       int
	Message      string
	LatestTone   string
	CheckedIn    bool
	QuoteView    string
	Completed    int
	TotalTasks   int
	AchievedGoal int
}

type TasksPanelData struct {
	Field     string
	Sort      string
	Completed int
	Total     int
	ListView  string
}

type FormRow struct {
	Label string
	Value string
}

type CheckInFormData struct {
	Rows   []FormRow
	Cursor int
}

type ReflectPanelData struct {
	Step      int
	Steps     int
	Question  string
	Options   []string
	Cursor    int
	TitleView string
	Tag       string
	Done      bool
	Title     string
	Tone      string
	QuoteView string
}

type EventRowData struct {
	Title       string
	Field       string
	TimeRange   string
	Description string
}

type SchedulePanelData struct {
	Date   string
	Events []EventRowData
	Cursor int
}

type JournalPanelData struct {
	Date       string
	Editing    bool
	EditorView string
	Rendered   string
}

type AchievementRowData struct {
	Icon      string
	Title     string
	Category  string
	Progress  int
	Completed bool
	XPReward  int
	Custom    bool
}

type AchievementsPanelData struct {
	Filter string
	Rows   []AchievementRowData
	Cursor int
	Earned int
}

type AchievementFormData struct {
	Inputs   []string
	Category string
	Icon     string
	Focus    int
	Err      string
}

type ReportsPanelData struct {
	Range     string
	From      string
	To        string
	TableView string
}

type MoodCountData struct {
	Label string
	Count int
}

type ReportSummaryData struct {
	DaysWithData  int
	AvgMood       float64
	AvgEnergy     float64
	AvgStress     float64
	AvgSleep      float64
	AvgDayRating  float64
	WorkoutDays   int
	RestDays      int
	Moods         []MoodCountData
	Streak        int
	StreakMessage string
}

type SettingsPanelData struct {
	Rows          []FormRow
	Cursor        int
	WalletAddress string
	Education     string
}

type RegisterPanelData struct {
	Step           int
	WalletDetected bool
	Status         string
	Address        string
	SpinnerView    string
	Education      []string
	Cursor         int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func cursorMark(i, cursor int) string {
	if i == cursor {
		return ">"
	}
	return " "
}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString("dashboard:\n")
	if data.Prompt {
		b.WriteString("┌ How was your day? [r]reflect [c]check-in [esc]later\n\n")
	}
	b.WriteString(fmt.Sprintf("%s the %s\n", data.Name, data.Character))
	b.WriteString(fmt.Sprintf("level %d | %d / %d xp\n", data.Level, data.TotalXP, data.NextLevelXP))
	b.WriteString(data.ProgressBar + "\n")
	if len(data.Gear) > 0 {
		b.WriteString("gear: " + strings.Join(data.Gear, ", ") + "\n")
	} else {
		b.WriteString("gear: (reach level 3 for a sword)\n")
	}
	switch {
	case data.Minting:
		b.WriteString("mint: in progress...\n")
	case data.Minted:
		b.WriteString("mint: character NFT minted\n")
	default:
		b.WriteString("mint: [m] mint your character\n")
	}

	b.WriteString("\nupcoming quests:\n")
	if len(data.Upcoming) == 0 {
		b.WriteString("  (all clear)\n")
	}
	for _, t := range data.Upcoming {
		b.WriteString(fmt.Sprintf("- %s [%s] due %s +%dxp\n", t.Title, t.Priority, t.DueDate, t.XP))
	}
	return strings.TrimSpace(b.String())
}

func RenderStreakPanel(data StreakPanelData) string {
	checked := "not yet"
	if data.CheckedIn {
		checked = "done"
	}
	return fmt.Sprintf("streak: %d day(s)\n%s\n\ntoday's check-in: %s\nlatest tone: %s\nquests: %d/%d done\ngoals achieved: %d\n\n%s",
		data.Streak, data.Message, checked, data.LatestTone, data.Completed, data.TotalTasks, data.AchievedGoal, data.QuoteView)
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(fmt.Sprintf("field: %s | sort: %s | done: %d/%d\n", data.Field, data.Sort, data.Completed, data.Total))
	b.WriteString("actions: [space]toggle [f]field [s]sort [a]add [d]delete\n")
	b.WriteString(data.ListView)
	return strings.TrimSpace(b.String())
}

func RenderTaskDetail(t TaskRowData) string {
	status := "open"
	if t.Completed {
		status = "completed"
	}
	return fmt.Sprintf("quest:\n%s\n%s\n\nfield: %s\ndue: %s\npriority: %s\nxp: %d\nstatus: %s",
		t.Title, t.Description, t.Field, t.DueDate, t.Priority, t.XP, status)
}

func RenderCompletionPopup(title string, xp int) string {
	return fmt.Sprintf("★ Quest complete: %s  +%d XP", title, xp)
}

func RenderCheckInForm(data CheckInFormData) string {
	var b strings.Builder
	b.WriteString("daily check-in:\n")
	b.WriteString("keys: [up/down]field [left/right]adjust [enter]submit [esc]cancel\n\n")
	for i, r := range data.Rows {
		b.WriteString(fmt.Sprintf("%s %-14s %s\n", cursorMark(i, data.Cursor), r.Label+":", r.Value))
	}
	return strings.TrimSpace(b.String())
}

func RenderReflectPanel(data ReflectPanelData) string {
	var b strings.Builder
	if data.Done {
		b.WriteString("reflection saved:\n")
		b.WriteString(fmt.Sprintf("%q (%s)\n", data.Title, data.Tag))
		b.WriteString(fmt.Sprintf("tone: %s\n\n", data.Tone))
		b.WriteString(data.QuoteView + "\n\n[enter] back to dashboard")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("reflect %d/%d:\n%s\n\n", data.Step, data.Steps, data.Question))
	if data.TitleView != "" {
		b.WriteString(data.TitleView + "\n")
		b.WriteString(fmt.Sprintf("tag: < %s >\n", data.Tag))
		return strings.TrimSpace(b.String())
	}
	for i, o := range data.Options {
		b.WriteString(fmt.Sprintf("%s %s\n", cursorMark(i, data.Cursor), o))
	}
	return strings.TrimSpace(b.String())
}

func RenderSchedulePanel(data SchedulePanelData) string {
	var b strings.Builder
	b.WriteString("schedule:\n")
	b.WriteString(data.Date + "\n")
	b.WriteString("actions: [h/l]day [t]today [n]new [x]delete\n\n")
	if len(data.Events) == 0 {
		b.WriteString("(no events)")
		return b.String()
	}
	for i, e := range data.Events {
		b.WriteString(fmt.Sprintf("%s %s  %s", cursorMark(i, data.Cursor), e.TimeRange, e.Title))
		if e.Field != "" {
			b.WriteString(" [" + e.Field + "]")
		}
		b.WriteString("\n")
		if i == data.Cursor && e.Description != "" {
			b.WriteString("    " + e.Description + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderJournalPanel(data JournalPanelData) string {
	var b strings.Builder
	b.WriteString("journal:\n")
	b.WriteString(data.Date + "\n")
	if data.Editing {
		b.WriteString("keys: [ctrl+s]save [esc]cancel\n\n")
		b.WriteString(data.EditorView)
		return b.String()
	}
	b.WriteString("actions: [h/l]day [t]today [e]edit\n\n")
	if strings.TrimSpace(data.Rendered) == "" {
		b.WriteString("(no entry for this day)")
	} else {
		b.WriteString(data.Rendered)
	}
	return b.String()
}

// RenderJournalCalendar draws the selected day's month; "*" marks days with entries.
func RenderJournalCalendar(marked []string, selected string) string {
	day, err := time.Parse("2006-01-02", selected)
	if err != nil {
		return ""
	}
	has := make(map[string]bool, len(marked))
	for _, d := range marked {
		has[d] = true
	}
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

	var b strings.Builder
	b.WriteString(first.Format("January 2006") + "\n")
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	b.WriteString(strings.Repeat("    ", int(first.Weekday())))
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		mark := " "
		if has[key] {
			mark = "*"
		}
		if key == selected {
			b.WriteString(fmt.Sprintf("[%2d]", d.Day()))
		} else {
			b.WriteString(fmt.Sprintf(" %2d%s", d.Day(), mark))
		}
		if d.Weekday() == time.Saturday {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n\n* has entry"
}

func RenderAchievementsPanel(data AchievementsPanelData) string {
	var b strings.Builder
	b.WriteString("achievements:\n")
	b.WriteString(fmt.Sprintf("filter: %s | earned: %d xp\n", data.Filter, data.Earned))
	b.WriteString("actions: [f]filter [+/-]progress [n]new\n\n")
	if len(data.Rows) == 0 {
		b.WriteString("(none match)")
		return b.String()
	}
	for i, r := range data.Rows {
		done := " "
		if r.Completed {
			done = "✓"
		}
		tag := ""
		if r.Custom {
			tag = " (custom)"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s%s  %3d%%  %dxp [%s]\n", cursorMark(i, data.Cursor), done, r.Icon, r.Title, tag, r.Progress, r.XPReward, r.Category))
	}
	return strings.TrimSpace(b.String())
}

func RenderAchievementForm(data AchievementFormData) string {
	labels := []string{"title", "description", "target", "xp"}
	var b strings.Builder
	b.WriteString("\nnew achievement:\n")
	b.WriteString("keys: [tab]field [left/right]cycle [enter]create [esc]close\n")
	for i, in := range data.Inputs {
		label := fmt.Sprintf("field %d", i+1)
		if i < len(labels) {
			label = labels[i]
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", cursorMark(i, data.Focus), label, in))
	}
	n := len(data.Inputs)
	b.WriteString(fmt.Sprintf("%s category: < %s >\n", cursorMark(n, data.Focus), data.Category))
	b.WriteString(fmt.Sprintf("%s icon: < %s >\n", cursorMark(n+1, data.Focus), data.Icon))
	if data.Err != "" {
		b.WriteString("error: " + data.Err + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderReportsPanel(data ReportsPanelData) string {
	return fmt.Sprintf("reports:\nrange: %s (%s to %s)\nactions: [r]cycle range\n\n%s", data.Range, data.From, data.To, data.TableView)
}

func RenderReportSummary(data ReportSummaryData) string {
	var b strings.Builder
	b.WriteString("summary:\n")
	b.WriteString(fmt.Sprintf("days with data: %d\n", data.DaysWithData))
	if data.DaysWithData > 0 {
		b.WriteString(fmt.Sprintf("avg mood: %.1f | energy: %.1f | stress: %.1f\n", data.AvgMood, data.AvgEnergy, data.AvgStress))
		b.WriteString(fmt.Sprintf("avg sleep: %.1fh | day rating: %.1f\n", data.AvgSleep, data.AvgDayRating))
		b.WriteString(fmt.Sprintf("workouts: %d | rest days: %d\n", data.WorkoutDays, data.RestDays))
	}
	if len(data.Moods) > 0 {
		b.WriteString("moods:\n")
		for _, mc := range data.Moods {
			b.WriteString(fmt.Sprintf("- %s: %d\n", mc.Label, mc.Count))
		}
	}
	b.WriteString(fmt.Sprintf("\nstreak: %d\n%s", data.Streak, data.StreakMessage))
	return b.String()
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("actions: [j/k]move [h/l]change [enter]edit name\n\n")
	for i, r := range data.Rows {
		b.WriteString(fmt.Sprintf("%s %-22s %s\n", cursorMark(i, data.Cursor), r.Label+":", r.Value))
	}
	if data.WalletAddress != "" {
		b.WriteString("\nwallet: " + data.WalletAddress + "\n")
	}
	if data.Education != "" {
		b.WriteString("education: " + data.Education + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderRegisterPanel(data RegisterPanelData) string {
	var b strings.Builder
	b.WriteString("register:\n")
	if data.Step <= 1 {
		b.WriteString("step 1/2: connect your wallet\n\n")
		switch {
		case !data.WalletDetected:
			b.WriteString("⚠ MetaMask Not Found\ninstall a wallet extension, then restart\n")
		case data.Status == "connecting":
			b.WriteString(data.SpinnerView + " connecting...\n")
		default:
			b.WriteString("[c] connect wallet\n")
		}
		return strings.TrimSpace(b.String())
	}
	b.WriteString(fmt.Sprintf("wallet: %s\n", data.Address))
	b.WriteString("step 2/2: what are you studying for?\n\n")
	for i, e := range data.Education {
		b.WriteString(fmt.Sprintf("%s %s\n", cursorMark(i, data.Cursor), e))
	}
	b.WriteString("\n[enter] finish")
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "\ncommand: " + inputView
}

func RenderNotification(level, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("\nhelp (%s):\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
