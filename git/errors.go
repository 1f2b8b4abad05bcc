package git

import "errors"

var (
	ErrNoCurrentBranch    = errors.New("not on any branch")
	ErrNoRemote           = errors.New("no git remote configured")
	ErrNotRepository      = errors.New("not a git repository (or any of the parent directories)")
	ErrUnknownScope       = errors.New("unknown git config scope")
	ErrUnstagedChanges    = errors.New("there are unstaged changes in the working tree")
	ErrUncommittedChanges = errors.New("there are uncommitted changes in the index")
)
