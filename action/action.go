package action

// Action undoes a change that was made to the repository or to the tracker.
type Action interface {
	Rollback() error
}

// Func turns a plain function into an Action.
type Func func() error

func (f Func) Rollback() error {
	return f()
}

// Noop is returned when there is nothing to undo.
var Noop Action = Func(func() error { return nil })
