package openCmd

import (
	// Stdlib
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/app"
	"github.com/donaldpiret/github-pivotal-flow/app/appflags"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/story"

	// Vendor
	"github.com/spf13/cobra"
	"github.com/toqueteos/webbrowser"
)

var Command = &cobra.Command{
	Use:   "open [STORY_ID]",
	Short: "open a story in the web browser",
	Long: `
  Open Pivotal Tracker in the web browser at the page of the given story,
  the story of the current branch by default.
	`,
	Args: cobra.MaximumNArgs(1),
	Run:  run,
}

const storyURLFormat = "https://www.pivotaltracker.com/story/show/%v"

func init() {
	appflags.RegisterTrackerFlags(Command.Flags())
}

func run(cmd *cobra.Command, args []string) {
	var storyId int
	if len(args) == 1 {
		id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
		if err != nil {
			cmd.Usage()
			os.Exit(2)
		}
		storyId = id
	}

	a := app.MustInit()

	if err := runMain(a, storyId); err != nil {
		app.Fatal(err)
	}
}

func runMain(a *app.App, storyId int) error {
	ctx := context.Background()
	tracker, err := a.Tracker(ctx)
	if err != nil {
		return err
	}

	var s *story.Story
	if storyId != 0 {
		s, err = story.Get(ctx, tracker, storyId)
	} else {
		var lifecycle *story.Lifecycle
		lifecycle, err = story.Current(ctx, a.Git, a.Flow, tracker, a.Prompt)
		if lifecycle != nil {
			s = lifecycle.Story
		}
	}
	if err != nil {
		return err
	}

	url := s.URL()
	if url == "" {
		url = fmt.Sprintf(storyURLFormat, s.Id())
	}

	task := fmt.Sprintf("Open story %v", s.ReadableId())
	log.Run(task)
	if err := webbrowser.Open(url); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}
