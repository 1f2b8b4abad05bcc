package github

import (
	// Stdlib
	"context"
	"errors"
	"fmt"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"

	// Vendor
	"github.com/google/go-github/v57/github"
)

// ErrNoCommits is returned when the head has nothing to merge into the base.
var ErrNoCommits = errors.New("no commits between the base and the head branch")

// PullRequestParams describes a pull request to be opened.
// Either Title or Issue must be set.
type PullRequestParams struct {
	Base  string
	Head  string
	Title string
	Body  string
	Issue int
}

// CreatePullRequest opens a pull request. In case there is an open pull
// request for the same head and base already, that one is returned.
func (repo *Repository) CreatePullRequest(ctx context.Context, params *PullRequestParams) (*github.PullRequest, error) {
	task := fmt.Sprintf("Open a pull request for '%v' against '%v'", params.Head, params.Base)
	if params.Title == "" && params.Issue == 0 {
		return nil, errs.NewError(task, errors.New("pull request title not set"))
	}

	client, err := repo.authenticatedClient(ctx)
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	req := &github.NewPullRequest{
		Base: github.String(params.Base),
		Head: github.String(params.Head),
	}
	if params.Issue != 0 {
		req.Issue = github.Int(params.Issue)
	} else {
		req.Title = github.String(params.Title)
		req.Body = github.String(params.Body)
	}

	log.Run(task)
	pr, _, err := client.PullRequests.Create(ctx, repo.Owner, repo.Name, req)
	if err == nil {
		return pr, nil
	}
	switch {
	case hasValidationError(err, "No commits between"):
		return nil, errs.NewError(task, ErrNoCommits)
	case !hasValidationError(err, "A pull request already exists"):
		return nil, errs.NewError(task, classify(err))
	}

	existing, err := repo.findPullRequest(ctx, client, params.Head, params.Base)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	log.Skip(fmt.Sprintf("Pull request #%v exists already", existing.GetNumber()))
	return existing, nil
}

func (repo *Repository) findPullRequest(ctx context.Context, client *github.Client, head, base string) (*github.PullRequest, error) {
	task := fmt.Sprintf("Find the pull request for '%v'", head)
	if !strings.Contains(head, ":") {
		head = repo.Owner + ":" + head
	}
	prs, _, err := client.PullRequests.List(ctx, repo.Owner, repo.Name, &github.PullRequestListOptions{
		State: "open",
		Head:  head,
		Base:  base,
	})
	if err != nil {
		return nil, errs.NewError(task, classify(err))
	}
	if len(prs) == 0 {
		return nil, errs.NewError(task, errors.New("pull request not found"))
	}
	return prs[0], nil
}

// hasValidationError checks the messages of a 422 response.
func hasValidationError(err error, prefix string) bool {
	var errResp *github.ErrorResponse
	if !errors.As(err, &errResp) {
		return false
	}
	for _, e := range errResp.Errors {
		if strings.HasPrefix(e.Message, prefix) {
			return true
		}
	}
	return false
}
