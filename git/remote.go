package git

import (
	// Stdlib
	"fmt"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
)

const DefaultRemoteName = "origin"

type PushOptions struct {
	// SetUpstream makes the pushed refs track the remote branches.
	SetUpstream bool
}

// Remotes lists the configured remotes.
func (gateway *Gateway) Remotes() ([]string, error) {
	task := "List git remotes"
	stdout, err := gateway.Run("remote")
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	var remotes []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if remote := strings.TrimSpace(line); remote != "" {
			remotes = append(remotes, remote)
		}
	}
	return remotes, nil
}

// Remote returns the remote to be used for the current branch.
// That is the branch's configured remote, then the only remote there is,
// then origin in case there are multiple remotes. An empty string is returned
// when none of these is available.
func (gateway *Gateway) Remote() (string, error) {
	remote, err := gateway.GetConfig("remote", ScopeBranch)
	if err != nil {
		return "", err
	}
	if remote != "" {
		return remote, nil
	}

	remotes, err := gateway.Remotes()
	if err != nil {
		return "", err
	}
	switch len(remotes) {
	case 0:
		return "", nil
	case 1:
		return remotes[0], nil
	}
	for _, remote := range remotes {
		if remote == DefaultRemoteName {
			return remote, nil
		}
	}
	return "", nil
}

func (gateway *Gateway) requireRemote() (string, error) {
	remote, err := gateway.Remote()
	if err != nil {
		return "", err
	}
	if remote == "" {
		return "", ErrNoRemote
	}
	return remote, nil
}

// RemoteURL returns the fetch URL of the given remote.
func (gateway *Gateway) RemoteURL(remote string) (string, error) {
	return gateway.GetConfig(fmt.Sprintf("remote.%v.url", remote), ScopeInherited)
}

// PullRemote fast-forwards the given branch, the current branch when empty,
// from its remote. The branch is checked out for the pull and the branch
// that was current before is checked out again afterwards, whatever happens.
// The pull is skipped when there is no remote.
func (gateway *Gateway) PullRemote(branch string) (err error) {
	current, err := gateway.CurrentBranch()
	if err != nil {
		return err
	}
	if branch == "" {
		branch = current
	}

	task := fmt.Sprintf("Pull branch '%v'", branch)
	if err := gateway.Checkout(branch); err != nil {
		return errs.NewError(task, err)
	}
	defer func() {
		if ex := gateway.Checkout(current); ex != nil {
			if err == nil {
				err = ex
			} else {
				errs.Log(ex)
			}
		}
	}()

	remote, err := gateway.Remote()
	if err != nil {
		return errs.NewError(task, err)
	}
	if remote == "" {
		log.V(log.Verbose).Skip(task + " (no remote)")
		return nil
	}

	log.V(log.Verbose).Run(task)
	if _, err := gateway.Run("pull", "--quiet", "--ff-only", remote, branch); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// Push pushes the given refs to the remote of the current branch.
func (gateway *Gateway) Push(opts *PushOptions, refs ...string) error {
	task := fmt.Sprintf("Push %v", strings.Join(refs, ", "))
	remote, err := gateway.requireRemote()
	if err != nil {
		return errs.NewError(task, err)
	}

	args := []string{"push", "--quiet"}
	if opts != nil && opts.SetUpstream {
		args = append(args, "-u")
	}
	args = append(args, remote)
	args = append(args, refs...)

	log.Run(task)
	if _, err := gateway.Run(args...); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// PushTags pushes all tags to the remote of the current branch.
func (gateway *Gateway) PushTags() error {
	task := "Push tags"
	remote, err := gateway.requireRemote()
	if err != nil {
		return errs.NewError(task, err)
	}

	log.Run(task)
	if _, err := gateway.Run("push", "--quiet", "--tags", remote); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// DeleteRemoteBranch deletes the branch of the given name from the remote.
func (gateway *Gateway) DeleteRemoteBranch(name string) error {
	task := fmt.Sprintf("Delete remote branch '%v'", name)
	remote, err := gateway.requireRemote()
	if err != nil {
		return errs.NewError(task, err)
	}

	log.Run(task)
	if _, err := gateway.Run("push", "--quiet", remote, "--delete", name); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}
