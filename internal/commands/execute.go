package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Done     func(DoneArgs) (Result, error)
	Progress func(ProgressArgs) (Result, error)
	Journal  func(JournalArgs) (Result, error)
	Event    func(EventArgs) (Result, error)
	Show     func(ShowArgs) (Result, error)
	Range    func(RangeArgs) (Result, error)
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing("done")
		}
		return handlers.Done(*cmd.Done)
	case TypeProgress:
		if handlers.Progress == nil {
			return Result{}, missing("progress")
		}
		return handlers.Progress(*cmd.Progress)
	case TypeJournal:
		if handlers.Journal == nil {
			return Result{}, missing("journal")
		}
		return handlers.Journal(*cmd.Journal)
	case TypeEvent:
		if handlers.Event == nil {
			return Result{}, missing("event")
		}
		return handlers.Event(*cmd.Event)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing("show")
		}
		return handlers.Show(*cmd.Show)
	case TypeRange:
		if handlers.Range == nil {
			return Result{}, missing("range")
		}
		return handlers.Range(*cmd.Range)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
