package errs

import (
	// Stdlib
	"os"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/log"
)

// Error represents a failed task. It keeps the task description,
// the underlying error and an optional hint, usually the stderr output
// of the failed command.
type Error struct {
	task string
	err  error
	hint string
}

func NewError(task string, err error) *Error {
	return &Error{task: task, err: err}
}

func NewErrorWithHint(task string, err error, hint string) *Error {
	return &Error{task: task, err: err, hint: hint}
}

func (err *Error) Task() string {
	return err.task
}

func (err *Error) Hint() string {
	return err.hint
}

func (err *Error) Error() string {
	if err.err == nil {
		return "task failed: " + err.task
	}
	return err.err.Error()
}

// Unwrap makes the error chain visible to errors.Is and errors.As.
func (err *Error) Unwrap() error {
	return err.err
}

// RootCause returns the innermost error that is not an *Error.
func RootCause(err error) error {
	for {
		ex, ok := err.(*Error)
		if !ok || ex.err == nil {
			return err
		}
		err = ex.err
	}
}

// Log prints the whole error chain, the innermost task last.
func Log(err error) {
	logger := log.V(log.Info)
	logger.Lock()
	defer logger.Unlock()
	unsafeLog(logger, err)
}

func unsafeLog(logger log.Logger, err error) {
	ex, ok := err.(*Error)
	if !ok {
		return
	}
	logger.UnsafeFail(ex.task)
	if ex.hint != "" {
		logger.UnsafeStderr(ex.hint)
	}
	unsafeLog(logger, ex.err)
}

// Fatal logs the error and exits the process with status 1.
func Fatal(err error) {
	logger := log.V(log.Info)
	logger.Lock()
	unsafeLog(logger, err)
	logger.UnsafeNewLine("")
	logger.UnsafePrintln("Error: " + RootCause(err).Error())
	logger.Unlock()
	os.Exit(1)
}
