package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/levelup/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add finish physics notes", TypeAdd},
		{"done 2", TypeDone},
		{"/progress 1 40", TypeProgress},
		{"/journal Felt sharp today", TypeJournal},
		{"/event 2026-02-10 09:00 10:30 Mock test", TypeEvent},
		{"/show Achievements", TypeShow},
		{"/range 3months", TypeRange},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddOptions(t *testing.T) {
	cmd, err := Parse("/add Solve integrals field:jee_preparation due:2026-02-12 priority:HIGH minutes:90")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := AddArgs{Title: "Solve integrals", Field: "JEE Preparation", DueDate: "2026-02-12", Priority: model.PriorityHigh, Minutes: 90}
	if *cmd.Add != want {
		t.Fatalf("unexpected add args: %+v", *cmd.Add)
	}
}

func TestParseRejectsBadArguments(t *testing.T) {
	for _, in := range []string{
		"/add field:Fitness",
		"/add run field:Cooking",
		"/add run due:tomorrow",
		"/add run priority:urgent",
		"/add run minutes:0",
		"/done",
		"/done zero",
		"/done 0",
		"/progress 1",
		"/progress 1 -5",
		"/journal   ",
		"/event 2026-02-10 09:00 10:00",
		"/event 10-02-2026 09:00 10:00 Standup",
		"/show inbox",
		"/range year",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}

	_, err := Parse("/snooze overdue 2 days")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/event 2026-02-10 09:00 10:30 Mock test")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Event: func(a EventArgs) (Result, error) {
			called = true
			if a.Title != "Mock test" || a.Start != "09:00" || a.End != "10:30" {
				t.Fatalf("unexpected event args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show tasks")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
