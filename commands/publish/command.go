package publishCmd

import (
	// Stdlib
	"context"
	"fmt"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/app"
	"github.com/donaldpiret/github-pivotal-flow/app/appflags"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/git"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/story"

	// Vendor
	"github.com/spf13/cobra"
	"github.com/toqueteos/webbrowser"
)

var Command = &cobra.Command{
	Use:   "publish",
	Short: "push the current story branch and open a pull request",
	Long: `
  Push the story branch, setting up upstream tracking, and open the pull
  request merging it into its root branch. Release branches are only pushed.
	`,
	Args: cobra.NoArgs,
	Run:  run,
}

var flagOpen bool

func init() {
	flags := Command.Flags()
	appflags.RegisterTrackerFlags(flags)
	flags.BoolVar(&flagOpen, "open", flagOpen,
		"open the pull request in the web browser")
}

func run(cmd *cobra.Command, args []string) {
	a := app.MustInit()

	if err := runMain(a); err != nil {
		app.Fatal(err)
	}
}

func runMain(a *app.App) error {
	ctx := context.Background()
	tracker, err := a.Tracker(ctx)
	if err != nil {
		return err
	}
	lifecycle, err := story.Current(ctx, a.Git, a.Flow, tracker, a.Prompt)
	if err != nil {
		return err
	}

	if err := a.Git.CleanWorkingTree(); err != nil {
		return err
	}

	branch, err := lifecycle.BranchName()
	if err != nil {
		return err
	}
	task := fmt.Sprintf("Push branch '%v'", branch)
	log.Run(task)
	if err := a.Git.Push(&git.PushOptions{SetUpstream: true}, branch); err != nil {
		return errs.NewError(task, err)
	}

	if lifecycle.Story.IsRelease() {
		return nil
	}

	url, err := a.OpenPullRequest(ctx, lifecycle)
	if err != nil {
		return err
	}
	if flagOpen && url != "" {
		task := "Open the pull request in the web browser"
		if err := webbrowser.Open(url); err != nil {
			return errs.NewError(task, err)
		}
	}
	return nil
}
