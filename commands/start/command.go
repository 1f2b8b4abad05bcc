package startCmd

import (
	// Stdlib
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/action"
	"github.com/donaldpiret/github-pivotal-flow/app"
	"github.com/donaldpiret/github-pivotal-flow/app/appflags"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/git"
	"github.com/donaldpiret/github-pivotal-flow/hooks"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/story"

	// Vendor
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "start [feature|bug|chore|release|STORY_ID]",
	Short: "start working on a story",
	Long: `
  Select a Pivotal Tracker story, create the story branch for it and mark
  the story as started.

  The argument is either a story ID, selecting the story right away, or a
  story type to choose from the startable stories of that type. Features and
  bugs are offered when the argument is omitted.

  The story branch is created off the development branch, or off master
  for chores, bugs labeled hotfix and when --hotfix is set. A pull request
  is opened for the story branch unless the story is a release.
	`,
	Args: cobra.MaximumNArgs(1),
	Run:  run,
}

var (
	flagHotfix   bool
	flagRoot     string
	flagFullName string
)

func init() {
	flags := Command.Flags()
	appflags.RegisterTrackerFlags(flags)
	flags.BoolVarP(&flagHotfix, "hotfix", "f", flagHotfix,
		"base the story branch on master")
	flags.StringVarP(&flagRoot, "root-branch-name", "r", flagRoot,
		"base the story branch on the given branch")
	flags.StringVarP(&flagFullName, "full-name", "n", flagFullName,
		"your Pivotal Tracker full name, git user.name by default")
}

func run(cmd *cobra.Command, args []string) {
	a := app.MustInit()

	var filter string
	if len(args) == 1 {
		filter = args[0]
	}

	if err := runMain(a, filter); err != nil {
		app.Fatal(err)
	}
}

func runMain(a *app.App, filter string) (err error) {
	ctx := context.Background()
	tracker, err := a.Tracker(ctx)
	if err != nil {
		return err
	}

	// Select and show the story.
	s, err := story.Select(ctx, tracker, a.Prompt, filter, story.DefaultLimit)
	if err != nil {
		return err
	}
	notes, err := s.Notes(ctx)
	if err != nil {
		return errs.NewError("Fetch the story notes", err)
	}
	fmt.Println()
	story.PrettyPrint(os.Stdout, s, notes)

	if s.IsUnestimated() {
		if err := requestEstimate(ctx, a, s); err != nil {
			return err
		}
	}

	lifecycle := story.NewLifecycle(s, a.Git, a.Flow, a.Prompt)
	lifecycle.Hotfix = flagHotfix
	lifecycle.RootBranchOverride = flagRoot

	branch, err := lifecycle.BranchName()
	if err != nil {
		return err
	}
	original, _ := a.Git.CurrentBranch()
	existed := a.Git.BranchExists(branch)

	chain := action.NewChain()
	defer chain.RollbackOnError(&err)

	// Create the story branch.
	if err := lifecycle.CreateBranch(); err != nil {
		return err
	}
	if !existed {
		chain.Push(fmt.Sprintf("Delete branch '%v'", branch), action.Func(func() error {
			if original != "" {
				if err := a.Git.Checkout(original); err != nil {
					return err
				}
			}
			return a.Git.DeleteBranch(branch, &git.DeleteOptions{Force: true})
		}))
	}
	log.Ok(fmt.Sprintf("Branch '%v' checked out", branch))

	if err := story.SaveStoryId(a.Git, branch, s); err != nil {
		return err
	}

	act, err := hooks.Install(a.Git)
	if err != nil {
		return err
	}
	chain.Push("", act)

	// Share the branch and open the pull request.
	if !s.IsRelease() {
		task := fmt.Sprintf("Push branch '%v'", branch)
		log.Run(task)
		err := a.Git.Push(&git.PushOptions{SetUpstream: true}, branch)
		switch {
		case errors.Is(err, git.ErrNoRemote):
			log.Skip("No git remote to push to, not opening a pull request")
		case err != nil:
			return errs.NewError(task, err)
		default:
			if !existed {
				chain.Push(fmt.Sprintf("Delete remote branch '%v'", branch), action.Func(func() error {
					return a.Git.DeleteRemoteBranch(branch)
				}))
			}
			if _, err := a.OpenPullRequest(ctx, lifecycle); err != nil {
				return err
			}
		}
	}

	// Start the story.
	owner, err := a.OwnerName(flagFullName)
	if err != nil {
		return err
	}
	task := fmt.Sprintf("Start story %v in Pivotal Tracker", s.ReadableId())
	log.Run(task)
	if err := s.MarkStarted(ctx, owner); err != nil {
		return err
	}
	log.Ok(fmt.Sprintf("Story %v started", s.ReadableId()))
	return nil
}

func requestEstimate(ctx context.Context, a *app.App, s *story.Story) error {
	for {
		answer, err := a.Prompt.Prompt("Story is not yet estimated. Please estimate difficulty: ")
		if err != nil {
			return errs.NewError("Estimate the story", err)
		}
		points, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if err != nil || points < 0 {
			log.Warn(fmt.Sprintf("'%v' is not a valid estimate", strings.TrimSpace(answer)))
			continue
		}
		return s.SetEstimate(ctx, points)
	}
}
