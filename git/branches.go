package git

import (
	// Stdlib
	"bufio"
	"fmt"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
)

type BranchOptions struct {
	// Track sets up the start point as the upstream of the new branch.
	Track bool
}

type DeleteOptions struct {
	// Force deletes the branch even when it is not merged.
	Force bool
}

// CurrentBranch returns the name of the branch marked as current in `git branch`.
func (gateway *Gateway) CurrentBranch() (string, error) {
	task := "Get the current branch name"
	stdout, err := gateway.Run("branch")
	if err != nil {
		return "", errs.NewError(task, err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "* ") {
			continue
		}
		name := strings.TrimSpace(line[2:])
		if strings.HasPrefix(name, "(") {
			// Detached HEAD, rebase in progress and so on.
			break
		}
		return name, nil
	}
	if err := scanner.Err(); err != nil {
		return "", errs.NewError(task, err)
	}
	return "", errs.NewError(task, ErrNoCurrentBranch)
}

// Checkout checks out the given branch unless it is the current branch already.
func (gateway *Gateway) Checkout(name string) error {
	current, err := gateway.CurrentBranch()
	if err == nil && current == name {
		return nil
	}

	task := fmt.Sprintf("Checkout branch '%v'", name)
	log.V(log.Verbose).Run(task)
	if _, err := gateway.Run("checkout", "--quiet", name); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// BranchExists returns true when there is a local branch of the given name.
// It never fails, any error is treated as the branch not being there.
func (gateway *Gateway) BranchExists(name string) bool {
	return gateway.succeeds("show-ref", "--quiet", "--verify", "refs/heads/"+name)
}

// CreateBranch creates a new branch at startPoint, HEAD when startPoint is empty.
// Nothing happens when the branch exists already.
func (gateway *Gateway) CreateBranch(name, startPoint string, opts *BranchOptions) error {
	if gateway.BranchExists(name) {
		log.V(log.Verbose).Skip(fmt.Sprintf("Branch '%v' exists already", name))
		return nil
	}

	task := fmt.Sprintf("Create branch '%v'", name)
	args := []string{"branch", "--quiet"}
	if opts != nil && opts.Track {
		args = append(args, "--track")
	}
	args = append(args, name)
	if startPoint != "" {
		args = append(args, startPoint)
	}
	if _, err := gateway.Run(args...); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// EnsureBranchExists creates the branch at HEAD in case it is missing.
// Failures are only logged since the branch is not needed right away.
func (gateway *Gateway) EnsureBranchExists(name string) {
	if gateway.BranchExists(name) {
		return
	}
	if current, err := gateway.CurrentBranch(); err == nil && current == name {
		return
	}

	task := fmt.Sprintf("Create missing branch '%v'", name)
	log.Run(task)
	if err := gateway.CreateBranch(name, "", nil); err != nil {
		log.Warn(task + " failed")
		errs.Log(err)
	}
}

// DeleteBranch deletes the given local branch.
func (gateway *Gateway) DeleteBranch(name string, opts *DeleteOptions) error {
	task := fmt.Sprintf("Delete local branch '%v'", name)
	flag := "-d"
	if opts != nil && opts.Force {
		flag = "-D"
	}
	if _, err := gateway.Run("branch", flag, name); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}
