package app

import (
	// Stdlib
	"context"
	"errors"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/github"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/story"
)

// OpenPullRequest opens the pull request merging the story branch
// into its root branch. It returns the pull request URL, or an empty string
// when there are no commits on the story branch yet.
func (app *App) OpenPullRequest(ctx context.Context, lifecycle *story.Lifecycle) (string, error) {
	repo, err := app.GitHub(ctx)
	if err != nil {
		return "", err
	}
	branch, err := lifecycle.BranchName()
	if err != nil {
		return "", err
	}

	s := lifecycle.Story
	pr, err := repo.CreatePullRequest(ctx, &github.PullRequestParams{
		Base:  lifecycle.RootBranch(),
		Head:  branch,
		Title: s.Name(),
		Body:  s.Description(),
	})
	if err != nil {
		if errors.Is(err, github.ErrNoCommits) {
			log.Skip("Nothing to open a pull request for, there are no commits yet")
			return "", nil
		}
		return "", errs.NewError("Open the pull request", err)
	}
	log.Ok("Pull request opened: " + pr.GetHTMLURL())
	return pr.GetHTMLURL(), nil
}
