package main

import (
	// Stdlib
	"errors"
	"io/ioutil"
	"os"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/config"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/git"
	"github.com/donaldpiret/github-pivotal-flow/hooks"
)

func main() {
	args, err := hooks.ParseArgs(os.Args[1:])
	if err != nil {
		errs.Fatal(err)
	}
	if args.Skip() {
		return
	}
	if err := run(args.MessageFile); err != nil {
		errs.Fatal(err)
	}
}

func run(messagePath string) error {
	gateway := git.Default()

	// Nothing to do on a detached HEAD.
	branch, err := gateway.CurrentBranch()
	if err != nil {
		if errors.Is(err, git.ErrNoCurrentBranch) {
			return nil
		}
		return err
	}

	storyId, err := gateway.GetBranchConfig(branch, config.KeyStoryId.Name)
	if err != nil {
		return err
	}
	storyId = strings.TrimSpace(storyId)
	if storyId == "" {
		return nil
	}

	task := "Add the story reference to the commit message"
	info, err := os.Stat(messagePath)
	if err != nil {
		return errs.NewError(task, err)
	}
	content, err := ioutil.ReadFile(messagePath)
	if err != nil {
		return errs.NewError(task, err)
	}

	message := hooks.AddStoryReference(string(content), storyId)
	if message == string(content) {
		return nil
	}
	if err := ioutil.WriteFile(messagePath, []byte(message), info.Mode()); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}
