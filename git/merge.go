package git

import (
	// Stdlib
	"fmt"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
)

type MergeOptions struct {
	CommitMessage string
	// NoFF always creates a merge commit.
	NoFF bool
	// FF fast-forwards when possible. Ignored when NoFF is set.
	FF bool
}

type CommitOptions struct {
	Message    string
	AllowEmpty bool
}

type TagOptions struct {
	Annotated bool
	Message   string
}

// Merge merges the given branch into the current branch.
// A merge conflict is returned as an error, leaving the repository mid-merge.
func (gateway *Gateway) Merge(name string, opts *MergeOptions) error {
	task := fmt.Sprintf("Merge branch '%v'", name)
	args := []string{"merge", "--quiet"}
	if opts != nil {
		switch {
		case opts.NoFF:
			args = append(args, "--no-ff")
		case opts.FF:
			args = append(args, "--ff")
		}
		if opts.CommitMessage != "" {
			args = append(args, "-m", opts.CommitMessage)
		}
	}
	args = append(args, name)

	log.Run(task)
	if _, err := gateway.Run(args...); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

func (gateway *Gateway) Commit(opts *CommitOptions) error {
	task := "Create a commit"
	args := []string{"commit", "--quiet"}
	if opts != nil {
		if opts.AllowEmpty {
			args = append(args, "--allow-empty")
		}
		if opts.Message != "" {
			args = append(args, "-m", opts.Message)
		}
	}
	if _, err := gateway.Run(args...); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

func (gateway *Gateway) Tag(name string, opts *TagOptions) error {
	task := fmt.Sprintf("Create tag '%v'", name)
	args := []string{"tag"}
	if opts != nil {
		if opts.Annotated {
			args = append(args, "-a")
		}
		if opts.Message != "" {
			args = append(args, "-m", opts.Message)
		}
	}
	args = append(args, name)

	log.Run(task)
	if _, err := gateway.Run(args...); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// RevParse returns the commit hash the given ref points to.
func (gateway *Gateway) RevParse(ref string) (string, error) {
	task := fmt.Sprintf("Resolve '%v'", ref)
	stdout, err := gateway.Run("rev-parse", ref)
	if err != nil {
		return "", errs.NewError(task, err)
	}
	return trimmed(stdout), nil
}

// MergeBase returns the best common ancestor of the two refs.
func (gateway *Gateway) MergeBase(a, b string) (string, error) {
	task := fmt.Sprintf("Get the merge base of '%v' and '%v'", a, b)
	stdout, err := gateway.Run("merge-base", a, b)
	if err != nil {
		return "", errs.NewError(task, err)
	}
	return trimmed(stdout), nil
}
