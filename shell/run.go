package shell

import (
	// Stdlib
	"bytes"
	"os/exec"
)

// Executor runs a single executable with the given arguments.
// Non-zero exit status is reported as an error.
type Executor interface {
	Run(args ...string) (stdout, stderr *bytes.Buffer, err error)
}

// Run runs the executable specified by name and collects its output.
func Run(name string, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	stdout = new(bytes.Buffer)
	stderr = new(bytes.Buffer)

	cmd := exec.Command(name, args...)

	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err = cmd.Run()

	return
}

type command string

// Command returns an Executor bound to the given executable.
func Command(name string) Executor {
	return command(name)
}

func (cmd command) Run(args ...string) (stdout, stderr *bytes.Buffer, err error) {
	return Run(string(cmd), args...)
}
