package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/levelup/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeProgress Type = "progress"
	TypeJournal  Type = "journal"
	TypeEvent    Type = "event"
	TypeShow     Type = "show"
	TypeRange    Type = "range"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs carries /add options. Zero values mean "use the handler's default".
type AddArgs struct {
	Title    string
	Field    string
	DueDate  string
	Priority model.Priority
	Minutes  int
}

// DoneArgs and ProgressArgs address rows by their 1-based position in the visible list.
type DoneArgs struct {
	Index int
}

type ProgressArgs struct {
	Index int
	Value int
}

type JournalArgs struct {
	Text string
}

type EventArgs struct {
	Date  string
	Start string
	End   string
	Title string
}

type ShowArgs struct {
	View string
}

type RangeArgs struct {
	Range model.ReportRange
}

// Views accepted by /show.
var Views = []string{"dashboard", "tasks", "schedule", "journal", "achievements", "settings", "reports"}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Done     *DoneArgs
	Progress *ProgressArgs
	Journal  *JournalArgs
	Event    *EventArgs
	Show     *ShowArgs
	Range    *RangeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeProgress:
		return parseProgress(input, args)
	case TypeJournal:
		return parseJournal(input, args)
	case TypeEvent:
		return parseEvent(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeRange:
		return parseRange(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		if !ok {
			words = append(words, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "field":
			field, err := resolveField(value)
			if err != nil {
				return Command{}, err
			}
			out.Field = field
		case "due":
			if _, err := time.Parse(model.DayLayout, value); err != nil {
				return Command{}, invalid("due must be YYYY-MM-DD, got %q", value)
			}
			out.DueDate = value
		case "priority":
			p := model.Priority(strings.ToLower(value))
			if !p.IsValid() {
				return Command{}, invalid("priority must be high, medium or low, got %q", value)
			}
			out.Priority = p
		case "minutes":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return Command{}, invalid("minutes must be a positive number, got %q", value)
			}
			out.Minutes = n
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

// resolveField matches a field name case-insensitively; underscores stand in for spaces.
func resolveField(value string) (string, error) {
	want := strings.ReplaceAll(value, "_", " ")
	for _, f := range model.Fields {
		if strings.EqualFold(f, want) {
			return f, nil
		}
	}
	return "", invalid("unknown field %q", value)
}

func parseIndex(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, invalid("%s must be a row number starting at 1, got %q", name, value)
	}
	return n, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("done requires a task number")
	}
	n, err := parseIndex("task", args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Index: n}}, nil
}

func parseProgress(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("progress requires an achievement number and a value")
	}
	n, err := parseIndex("achievement", args[0])
	if err != nil {
		return Command{}, err
	}
	v, err := strconv.Atoi(args[1])
	if err != nil || v < 0 {
		return Command{}, invalid("progress value must be a non-negative number, got %q", args[1])
	}
	return Command{Type: TypeProgress, Raw: raw, Progress: &ProgressArgs{Index: n, Value: v}}, nil
}

func parseJournal(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, invalid("journal requires text")
	}
	return Command{Type: TypeJournal, Raw: raw, Journal: &JournalArgs{Text: text}}, nil
}

func parseEvent(raw string, args []string) (Command, error) {
	if len(args) < 4 {
		return Command{}, invalid("event requires date, start, end and title")
	}
	ev := EventArgs{Date: args[0], Start: args[1], End: args[2], Title: strings.Join(args[3:], " ")}
	if _, err := time.Parse(model.DayLayout, ev.Date); err != nil {
		return Command{}, invalid("event date must be YYYY-MM-DD, got %q", ev.Date)
	}
	return Command{Type: TypeEvent, Raw: raw, Event: &ev}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("show requires a view")
	}
	view := strings.ToLower(args[0])
	for _, v := range Views {
		if v == view {
			return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{View: view}}, nil
		}
	}
	return Command{}, invalid("unknown view %q", args[0])
}

func parseRange(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("range requires week, month or 3months")
	}
	r, err := model.ParseReportRange(strings.ToLower(args[0]))
	if err != nil {
		return Command{}, invalid("range must be week, month or 3months, got %q", args[0])
	}
	return Command{Type: TypeRange, Raw: raw, Range: &RangeArgs{Range: r}}, nil
}
