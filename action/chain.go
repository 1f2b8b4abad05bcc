package action

import (
	// Stdlib
	"errors"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
)

var ErrRollbackFailed = errs.NewError(
	"Roll back changes", errors.New("failed to roll back changes"))

type step struct {
	task   string
	action Action
}

// Chain collects actions and rolls them back in reverse order.
type Chain struct {
	steps []step
}

func NewChain() *Chain {
	return &Chain{}
}

// Push adds the action to the chain. The task, when not empty,
// is printed right before the action is rolled back.
func (chain *Chain) Push(task string, act Action) {
	if act != nil {
		chain.steps = append(chain.steps, step{task, act})
	}
}

func (chain *Chain) Len() int {
	return len(chain.steps)
}

// Rollback runs every action even when some of them fail.
func (chain *Chain) Rollback() error {
	var ex error
	for i := len(chain.steps) - 1; i >= 0; i-- {
		s := chain.steps[i]
		if s.task != "" {
			log.Rollback(s.task)
		}
		if err := s.action.Rollback(); err != nil {
			errs.Log(err)
			ex = ErrRollbackFailed
		}
	}
	chain.steps = nil
	return ex
}

// RollbackOnError is meant to be deferred:
//
//	defer chain.RollbackOnError(&err)
//
// The pointer is dereferenced only once the deferred call runs.
func (chain *Chain) RollbackOnError(err *error) {
	if *err != nil {
		chain.Rollback()
	}
}

// RollbackOnError rolls back a single action in case *err is set.
func RollbackOnError(err *error, task string, act Action) {
	chain := NewChain()
	chain.Push(task, act)
	chain.RollbackOnError(err)
}
