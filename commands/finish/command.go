package finishCmd

import (
	// Stdlib
	"context"
	"errors"
	"fmt"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/app"
	"github.com/donaldpiret/github-pivotal-flow/app/appflags"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/story"

	// Vendor
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "finish",
	Short: "merge the current story branch",
	Long: `
  Merge the story branch into the branch it was created from, push the result
  and delete the story branch, locally and in the remote repository.

  Release branches are merged into both master and the development branch
  and the release is tagged on master.

  The merge commit tells Pivotal Tracker to finish the story
  unless --no-complete is set.
	`,
	Args: cobra.NoArgs,
	Run:  run,
}

var ErrCoreBranch = errors.New("cannot finish the development or master branch")

var (
	flagMessage    string
	flagNoComplete bool
)

func init() {
	flags := Command.Flags()
	appflags.RegisterTrackerFlags(flags)
	flags.StringVarP(&flagMessage, "message", "m", flagMessage,
		"merge commit message")
	flags.BoolVar(&flagNoComplete, "no-complete", flagNoComplete,
		"do not mark the story completed in Pivotal Tracker")
}

func run(cmd *cobra.Command, args []string) {
	a := app.MustInit()

	if err := runMain(a); err != nil {
		app.Fatal(err)
	}
}

func runMain(a *app.App) error {
	ctx := context.Background()

	task := "Make sure the current branch can be finished"
	current, err := a.Git.CurrentBranch()
	if err != nil {
		return errs.NewError(task, err)
	}
	if a.Flow.IsCoreBranch(current) {
		return errs.NewError(task, fmt.Errorf("%w: %v", ErrCoreBranch, current))
	}

	tracker, err := a.Tracker(ctx)
	if err != nil {
		return err
	}
	lifecycle, err := story.Current(ctx, a.Git, a.Flow, tracker, a.Prompt)
	if err != nil {
		return err
	}

	if err := lifecycle.CanMerge(); err != nil {
		return err
	}

	s := lifecycle.Story
	if s.IsRelease() {
		log.Run(fmt.Sprintf("Finish release '%v'", s.Name()))
		err = lifecycle.MergeRelease(flagMessage, flagNoComplete)
	} else {
		log.Run(fmt.Sprintf("Finish story %v", s.ReadableId()))
		err = lifecycle.MergeToRoot(flagMessage, flagNoComplete)
	}
	if err != nil {
		return err
	}

	log.Ok(fmt.Sprintf("Branch '%v' merged and deleted", current))
	return nil
}
