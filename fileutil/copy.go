package fileutil

import (
	// Stdlib
	"fmt"
	"io"
	"os"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/action"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
)

// CopyFile copies src to dst, creating or truncating dst with the given mode.
// The returned action removes dst again.
func CopyFile(src, dst string, mode os.FileMode) (act action.Action, err error) {
	task := fmt.Sprintf("Copy '%v' to '%v'", src, dst)

	in, err := os.Open(src)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	defer func() {
		if ex := out.Close(); ex != nil && err == nil {
			act, err = nil, errs.NewError(task, ex)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return nil, errs.NewError(task, err)
	}
	// The mode passed to OpenFile is subject to umask.
	if err := out.Chmod(mode); err != nil {
		return nil, errs.NewError(task, err)
	}

	return action.Func(func() error {
		log.Rollback(task)
		if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
			return errs.NewError(fmt.Sprintf("Remove '%v'", dst), err)
		}
		return nil
	}), nil
}
