package git

import (
	// Stdlib
	"bytes"
	"fmt"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/shell"
)

// Gateway runs git commands for the current repository.
type Gateway struct {
	exec shell.Executor

	// Dir is used to locate the repository root on the filesystem.
	// The current working directory is used when it is empty.
	Dir string
}

// NewGateway returns a gateway sending all git invocations to exec.
func NewGateway(exec shell.Executor) *Gateway {
	return &Gateway{exec: exec}
}

// Default returns a gateway running the git executable found in PATH.
func Default() *Gateway {
	return NewGateway(shell.Command("git"))
}

// Run runs git with the given arguments, returning stdout.
// Any failure is returned as *errs.Error with stderr as the hint.
func (gateway *Gateway) Run(args ...string) (stdout *bytes.Buffer, err error) {
	stdout, stderr, err := gateway.run(args...)
	if err != nil {
		task := fmt.Sprintf("Run git with args = %#v", args)
		return nil, errs.NewErrorWithHint(task, err, stderr.String())
	}
	return stdout, nil
}

func (gateway *Gateway) run(args ...string) (stdout, stderr *bytes.Buffer, err error) {
	argsList := make([]string, 1, 1+len(args))
	argsList[0] = "--no-pager"
	argsList = append(argsList, args...)

	log.V(log.Debug).Log(fmt.Sprintf("Run git with args = %#v", args))
	stdout, stderr, err = gateway.exec.Run(argsList...)
	if stdout == nil {
		stdout = new(bytes.Buffer)
	}
	if stderr == nil {
		stderr = new(bytes.Buffer)
	}
	return stdout, stderr, err
}

// succeeds runs git and reports whether it exited with status 0.
func (gateway *Gateway) succeeds(args ...string) bool {
	_, _, err := gateway.run(args...)
	return err == nil
}

func trimmed(stdout *bytes.Buffer) string {
	return string(bytes.TrimSpace(stdout.Bytes()))
}
