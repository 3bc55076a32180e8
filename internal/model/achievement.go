package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidIcon      = errors.New("model: invalid achievement icon")
	ErrInvalidCategory  = errors.New("model: invalid achievement category")
	ErrInvalidTarget    = errors.New("model: achievement target must be positive")
	ErrNegativeProgress = errors.New("model: achievement progress must not be negative")
	ErrXPRewardRange    = errors.New("model: achievement xp reward out of range")
)

type AchievementIcon string

const (
	IconTrophy   AchievementIcon = "trophy"
	IconTarget   AchievementIcon = "target"
	IconDumbbell AchievementIcon = "dumbbell"
	IconBook     AchievementIcon = "book"
	IconCode     AchievementIcon = "code"
	IconBrain    AchievementIcon = "brain"
	IconCalendar AchievementIcon = "calendar"
	IconZap      AchievementIcon = "zap"
	IconStar     AchievementIcon = "star"
	IconAward    AchievementIcon = "award"
)

// CustomIcons are the icons a user may pick for a custom achievement.
var CustomIcons = []AchievementIcon{
	IconTrophy, IconTarget, IconDumbbell, IconBook,
	IconCode, IconBrain, IconCalendar, IconZap,
}

func (i AchievementIcon) IsValid() bool {
	_, ok := i.symbol()
	return ok
}

// Symbol renders the icon. Every declared icon has a symbol.
func (i AchievementIcon) Symbol() string {
	s, _ := i.symbol()
	return s
}

func (i AchievementIcon) symbol() (string, bool) {
	switch i {
	case IconTrophy:
		return "🏆", true
	case IconTarget:
		return "🎯", true
	case IconDumbbell:
		return "🏋", true
	case IconBook:
		return "📖", true
	case IconCode:
		return "💻", true
	case IconBrain:
		return "🧠", true
	case IconCalendar:
		return "📅", true
	case IconZap:
		return "⚡", true
	case IconStar:
		return "⭐", true
	case IconAward:
		return "🏅", true
	default:
		return "", false
	}
}

type AchievementCategory string

const (
	CategoryGeneral     AchievementCategory = "general"
	CategoryAcademic    AchievementCategory = "academic"
	CategoryFitness     AchievementCategory = "fitness"
	CategoryCoding      AchievementCategory = "coding"
	CategoryMindfulness AchievementCategory = "mindfulness"
)

var Categories = []AchievementCategory{
	CategoryGeneral, CategoryAcademic, CategoryFitness, CategoryCoding, CategoryMindfulness,
}

func (c AchievementCategory) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryAcademic, CategoryFitness, CategoryCoding, CategoryMindfulness:
		return true
	default:
		return false
	}
}

const (
	DefaultAchievementTarget   = 100
	DefaultAchievementXPReward = 200
	MinAchievementXPReward     = 50
	MaxAchievementXPReward     = 500
)

type CustomAchievement struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     AchievementCategory `json:"category"`
	TargetValue  int                 `json:"targetValue"`
	CurrentValue int                 `json:"currentValue"`
	Icon         AchievementIcon     `json:"icon"`
	CreatedAt    time.Time           `json:"createdAt"`
	Completed    bool                `json:"completed"`
	XPReward     int                 `json:"xpReward"`
}

// Progress is the display percentage, capped at 100 for stretch values.
func (a CustomAchievement) Progress() int {
	return ProgressPercent(a.CurrentValue, a.TargetValue)
}

func ProgressPercent(current, target int) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(float64(current) / float64(target) * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// AchievementInput is the create form. WithDefaults treats zero Category,
// TargetValue, Icon and XPReward as unset. A zero reward is therefore never
// stored; rewards must fall within [MinAchievementXPReward, MaxAchievementXPReward].
type AchievementInput struct {
	Title        string
	Description  string
	Category     AchievementCategory
	TargetValue  int
	CurrentValue int
	Icon         AchievementIcon
	XPReward     int
}

func (in AchievementInput) WithDefaults() AchievementInput {
	if in.Category == "" {
		in.Category = CategoryGeneral
	}
	if in.TargetValue == 0 {
		in.TargetValue = DefaultAchievementTarget
	}
	if in.Icon == "" {
		in.Icon = IconTrophy
	}
	if in.XPReward == 0 {
		in.XPReward = DefaultAchievementXPReward
	}
	return in
}

func (in AchievementInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("model: achievement title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return errors.New("model: achievement description is required")
	}
	if !in.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}
	if !in.Icon.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidIcon, in.Icon)
	}
	if in.TargetValue <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTarget, in.TargetValue)
	}
	if in.CurrentValue < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeProgress, in.CurrentValue)
	}
	if in.XPReward < MinAchievementXPReward || in.XPReward > MaxAchievementXPReward {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrXPRewardRange, in.XPReward, MinAchievementXPReward, MaxAchievementXPReward)
	}
	return nil
}

// SystemAchievement is a fixed, read-only goal shipped with the app.
type SystemAchievement struct {
	ID          string
	Title       string
	Description string
	Category    AchievementCategory
	Icon        AchievementIcon
	Progress    int
	Completed   bool
	Date        string
	XPReward    int
}

func SystemAchievements() []SystemAchievement {
	return []SystemAchievement{
		{ID: "1", Title: "First Week Streak", Description: "Complete tasks for 7 consecutive days", Category: CategoryGeneral, Icon: IconTrophy, Progress: 100, Completed: true, Date: "2025-05-10", XPReward: 200},
		{ID: "2", Title: "Physics Master", Description: "Complete all physics modules", Category: CategoryAcademic, Icon: IconZap, Progress: 100, Completed: true, Date: "2025-05-08", XPReward: 300},
		{ID: "3", Title: "Fitness Enthusiast", Description: "Complete 10 fitness tasks", Category: CategoryFitness, Icon: IconDumbbell, Progress: 70, XPReward: 250},
		{ID: "4", Title: "Coding Ninja", Description: "Solve 20 coding problems", Category: CategoryCoding, Icon: IconCode, Progress: 45, XPReward: 350},
		{ID: "5", Title: "Early Bird", Description: "Complete 5 tasks before 9 AM", Category: CategoryGeneral, Icon: IconStar, Progress: 60, XPReward: 150},
		{ID: "6", Title: "Math Wizard", Description: "Score 90% or higher on all math assessments", Category: CategoryAcademic, Icon: IconBook, Progress: 80, XPReward: 300},
		{ID: "7", Title: "Meditation Guru", Description: "Complete 15 mindfulness sessions", Category: CategoryMindfulness, Icon: IconBrain, Progress: 33, XPReward: 200},
		{ID: "8", Title: "Goal Crusher", Description: "Achieve 5 personal goals", Category: CategoryGeneral, Icon: IconTarget, Progress: 40, XPReward: 250},
		{ID: "9", Title: "Chemistry Champion", Description: "Complete all chemistry modules with 85% or higher", Category: CategoryAcademic, Icon: IconAward, Progress: 50, XPReward: 300},
		{ID: "10", Title: "Marathon Runner", Description: "Log 50km of running distance", Category: CategoryFitness, Icon: IconDumbbell, Progress: 25, XPReward: 400},
	}
}

// AchievementCard is the combined view of system and custom achievements.
type AchievementCard struct {
	ID          string
	Title       string
	Description string
	Category    AchievementCategory
	Icon        AchievementIcon
	Progress    int
	Completed   bool
	XPReward    int
	Custom      bool
}

func CombineAchievements(system []SystemAchievement, custom []CustomAchievement) []AchievementCard {
	out := make([]AchievementCard, 0, len(system)+len(custom))
	for _, a := range system {
		out = append(out, AchievementCard{
			ID: a.ID, Title: a.Title, Description: a.Description, Category: a.Category,
			Icon: a.Icon, Progress: a.Progress, Completed: a.Completed, XPReward: a.XPReward,
		})
	}
	for _, a := range custom {
		out = append(out, AchievementCard{
			ID: a.ID, Title: a.Title, Description: a.Description, Category: a.Category,
			Icon: a.Icon, Progress: a.Progress(), Completed: a.Completed, XPReward: a.XPReward, Custom: true,
		})
	}
	return out
}

type AchievementFilter string

const (
	FilterAll        AchievementFilter = "all"
	FilterCompleted  AchievementFilter = "completed"
	FilterInProgress AchievementFilter = "in-progress"
	FilterCustom     AchievementFilter = "custom"
)

// AchievementFilters lists the filter cycle: status filters then one per category.
func AchievementFilters() []AchievementFilter {
	out := []AchievementFilter{FilterAll, FilterCompleted, FilterInProgress, FilterCustom}
	for _, c := range Categories {
		out = append(out, AchievementFilter(c))
	}
	return out
}

func FilterAchievements(cards []AchievementCard, f AchievementFilter) []AchievementCard {
	out := make([]AchievementCard, 0, len(cards))
	for _, c := range cards {
		keep := false
		switch f {
		case FilterAll, "":
			keep = true
		case FilterCompleted:
			keep = c.Completed
		case FilterInProgress:
			keep = !c.Completed
		case FilterCustom:
			keep = c.Custom
		default:
			keep = string(c.Category) == string(f)
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

// EarnedAchievementXP sums rewards of completed achievements.
func EarnedAchievementXP(cards []AchievementCard) int {
	total := 0
	for _, c := range cards {
		if c.Completed {
			total += c.XPReward
		}
	}
	return total
}
