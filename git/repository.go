package git

import (
	// Stdlib
	"fmt"
	"os"
	"path/filepath"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/action"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/fileutil"
	"github.com/donaldpiret/github-pivotal-flow/log"
)

// RepositoryRoot returns the closest directory containing .git,
// starting at gateway.Dir or the working directory.
func (gateway *Gateway) RepositoryRoot() (string, error) {
	dir := gateway.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errs.NewError("Get the working directory", err)
		}
		dir = wd
	}
	return RepositoryRootFrom(dir)
}

// RepositoryRootFrom walks up from dir looking for a .git entry.
func RepositoryRootFrom(dir string) (string, error) {
	task := fmt.Sprintf("Find the repository root for '%v'", dir)
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errs.NewError(task, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errs.NewError(task, ErrNotRepository)
		}
		dir = parent
	}
}

// AddHook installs source as the git hook of the given name.
// An existing hook is kept unless overwrite is set.
// The returned action uninstalls the hook again.
func (gateway *Gateway) AddHook(name, source string, overwrite bool) (_ action.Action, err error) {
	task := fmt.Sprintf("Install git %v hook", name)
	root, err := gateway.RepositoryRoot()
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	hooksDir := filepath.Join(root, ".git", "hooks")
	hookPath := filepath.Join(hooksDir, name)
	if _, err := os.Stat(hookPath); err == nil && !overwrite {
		log.V(log.Verbose).Skip(fmt.Sprintf("Git %v hook exists already", name))
		return action.Noop, nil
	}

	chain := action.NewChain()
	defer chain.RollbackOnError(&err)

	act, err := fileutil.EnsureDirectoryExists(hooksDir)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	chain.Push("", act)

	act, err = fileutil.CopyFile(source, hookPath, 0755)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	chain.Push("", act)

	return chain, nil
}

// CleanWorkingTree returns an error when there are unstaged
// or staged but uncommitted changes.
func (gateway *Gateway) CleanWorkingTree() error {
	task := "Make sure the working tree is clean"
	if !gateway.succeeds("diff", "--no-ext-diff", "--ignore-submodules", "--quiet", "--exit-code") {
		return errs.NewError(task, ErrUnstagedChanges)
	}
	if !gateway.succeeds("diff-index", "--cached", "--quiet", "--ignore-submodules", "HEAD", "--") {
		return errs.NewError(task, ErrUncommittedChanges)
	}
	return nil
}
