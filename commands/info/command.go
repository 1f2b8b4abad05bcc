package infoCmd

import (
	// Stdlib
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/app"
	"github.com/donaldpiret/github-pivotal-flow/app/appflags"
	"github.com/donaldpiret/github-pivotal-flow/config"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/story"

	// Vendor
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "info",
	Short: "show the story of the current branch",
	Long: `
  Print the story associated with the current branch, where the branch comes
  from and the state of the GitHub commit statuses for the branch.
	`,
	Args: cobra.NoArgs,
	Run:  run,
}

func init() {
	appflags.RegisterTrackerFlags(Command.Flags())
}

func run(cmd *cobra.Command, args []string) {
	a := app.MustInit()

	if err := runMain(a, os.Stdout); err != nil {
		app.Fatal(err)
	}
}

func runMain(a *app.App, w io.Writer) error {
	ctx := context.Background()
	tracker, err := a.Tracker(ctx)
	if err != nil {
		return err
	}
	lifecycle, err := story.Current(ctx, a.Git, a.Flow, tracker, a.Prompt)
	if err != nil {
		return err
	}

	s := lifecycle.Story
	notes, err := s.Notes(ctx)
	if err != nil {
		return errs.NewError("Fetch the story notes", err)
	}
	story.PrettyPrint(w, s, notes)

	branch, err := lifecycle.BranchName()
	if err != nil {
		return err
	}
	remote, err := a.Git.GetBranchConfig(branch, config.KeyRootRemote.Name)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "Story\t%v (%v, %v)\n", s.ReadableId(), s.Type(), s.State())
	fmt.Fprintf(tw, "Branch\t%v\n", branch)
	fmt.Fprintf(tw, "Root branch\t%v\n", lifecycle.RootBranch())
	if remote != "" {
		fmt.Fprintf(tw, "Root remote\t%v\n", remote)
	}
	tw.Flush()

	// The branch may not have been pushed yet.
	repo, err := a.GitHub(ctx)
	if err != nil {
		log.Warn("GitHub not available: " + errs.RootCause(err).Error())
		return nil
	}
	status, err := repo.CombinedStatus(ctx, branch)
	if err != nil {
		log.Warn("Commit statuses not available: " + errs.RootCause(err).Error())
		return nil
	}

	fmt.Fprintf(w, "\nCommit status: %v\n", status.GetState())
	tw = tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, st := range status.Statuses {
		fmt.Fprintf(tw, "  %v\t%v\t%v\n", st.GetContext(), st.GetState(), st.GetTargetURL())
	}
	return tw.Flush()
}
