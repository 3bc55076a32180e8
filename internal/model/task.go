package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDuration = errors.New("model: task duration must be positive")
	ErrInvalidDueDate  = errors.New("model: invalid task due date")
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Fields is the fixed menu of life domains used to tag tasks, events and goals.
var Fields = []string{
	"JEE Preparation",
	"Fitness",
	"Coding",
	"Mindfulness",
	"UPSC",
	"NEET",
}

func IsKnownField(field string) bool {
	for _, f := range Fields {
		if f == field {
			return true
		}
	}
	return false
}

type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Field       string   `json:"field"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
	XP          int      `json:"xp"`
}

func (t Task) Due(loc *time.Location) (time.Time, error) {
	return ParseDay(t.DueDate, loc)
}

// TaskInput carries a new task. XP must already be computed with ComputeXP.
type TaskInput struct {
	Title           string
	Description     string
	Field           string
	DueDate         string
	Priority        Priority
	DurationMinutes int
	XP              int
}

func (in TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("model: task title is required")
	}
	if strings.TrimSpace(in.Field) == "" {
		return errors.New("model: task field is required")
	}
	if strings.TrimSpace(in.DueDate) == "" {
		return errors.New("model: task due date is required")
	}
	if _, err := ParseDay(in.DueDate, time.UTC); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDueDate, in.DueDate)
	}
	if !in.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, in.Priority)
	}
	if in.DurationMinutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, in.DurationMinutes)
	}
	return nil
}

// TaskPatch holds a partial update. Nil fields are left untouched; xp is never patchable.
type TaskPatch struct {
	Title       *string
	Description *string
	Field       *string
	DueDate     *string
	Priority    *Priority
	Completed   *bool
}

func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Field != nil {
		t.Field = *p.Field
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

type TaskSort string

const (
	SortByDueDate  TaskSort = "dueDate"
	SortByPriority TaskSort = "priority"
	SortByXP       TaskSort = "xp"
)

func (s TaskSort) Next() TaskSort {
	switch s {
	case SortByDueDate:
		return SortByPriority
	case SortByPriority:
		return SortByXP
	default:
		return SortByDueDate
	}
}

// SortTasks returns a sorted copy. Due dates compare as calendar-day strings.
func SortTasks(tasks []Task, by TaskSort) []Task {
	out := append([]Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		switch by {
		case SortByPriority:
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		case SortByXP:
			return out[i].XP > out[j].XP
		default:
			return out[i].DueDate < out[j].DueDate
		}
	})
	return out
}

// FilterTasksByField keeps tasks of one field; "" and "all" keep everything.
func FilterTasksByField(tasks []Task, field string) []Task {
	if field == "" || field == "all" {
		return append([]Task(nil), tasks...)
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Field == field {
			out = append(out, t)
		}
	}
	return out
}

func CountCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// SeedTasks is the example collection used when nothing has been persisted yet.
func SeedTasks() []Task {
	return []Task{
		{ID: "1", Title: "Complete Physics Module 3", Description: "Study chapters 5-7 and solve practice problems", Field: "JEE Preparation", DueDate: "2025-05-20", Priority: PriorityHigh, XP: 50},
		{ID: "2", Title: "30 minutes cardio workout", Description: "Running or cycling at moderate intensity", Field: "Fitness", DueDate: "2025-05-16", Priority: PriorityMedium, XP: 40},
		{ID: "3", Title: "Solve 10 practice problems", Description: "Focus on integration and differentiation", Field: "JEE Preparation", DueDate: "2025-05-17", Priority: PriorityMedium, XP: 30},
		{ID: "4", Title: "Meditation session", Description: "15 minutes of mindfulness meditation", Field: "Mindfulness", DueDate: "2025-05-16", Priority: PriorityLow, Completed: true, XP: 20},
		{ID: "5", Title: "Read chapter on algorithms", Description: "Focus on sorting algorithms and time complexity", Field: "Coding", DueDate: "2025-05-18", Priority: PriorityHigh, XP: 45},
		{ID: "6", Title: "Strength training session", Description: "Focus on upper body exercises", Field: "Fitness", DueDate: "2025-05-17", Priority: PriorityMedium, Completed: true, XP: 35},
	}
}
