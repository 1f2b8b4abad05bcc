package github

import (
	// Stdlib
	"context"
	"fmt"
	"net/url"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"

	// Vendor
	"github.com/google/go-github/v57/github"
)

// Repository gives access to a single GitHub repository.
type Repository struct {
	Owner string
	Name  string

	creds   *Credentials
	client  *github.Client
	baseURL *url.URL
}

func NewRepository(owner, name string, creds *Credentials) *Repository {
	return &Repository{Owner: owner, Name: name, creds: creds}
}

// SetBaseURL points the repository at a GitHub Enterprise or test server.
func (repo *Repository) SetBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return err
	}
	repo.baseURL = u
	repo.client = nil
	return nil
}

func (repo *Repository) FullName() string {
	return repo.Owner + "/" + repo.Name
}

// authenticatedClient returns a client with verified credentials.
// A rejected token is cleared and asked for again until it is accepted
// or the user cancels.
func (repo *Repository) authenticatedClient(ctx context.Context) (*github.Client, error) {
	if repo.client != nil {
		return repo.client, nil
	}

	task := "Authenticate with GitHub"
	for {
		if err := repo.creds.Load(); err != nil {
			return nil, errs.NewError(task, err)
		}

		client := NewClient(repo.creds.Token, repo.creds.OTP)
		if repo.baseURL != nil {
			client.BaseURL = repo.baseURL
		}

		user, _, err := client.Users.Get(ctx, "")
		switch {
		case err == nil:
			if err := repo.creds.SetUsername(user.GetLogin()); err != nil {
				return nil, errs.NewError(task, err)
			}
			repo.client = client
			return client, nil

		case isTwoFactorChallenge(err):
			if err := repo.creds.AskOTP(); err != nil {
				return nil, errs.NewError(task, err)
			}

		case isUnauthorized(err):
			log.Warn("GitHub rejected the API token, please insert a new one")
			if err := repo.creds.Clear(); err != nil {
				return nil, errs.NewError(task, err)
			}

		default:
			return nil, errs.NewError(task, classify(err))
		}
	}
}

// Exists returns true when the repository can be accessed.
func (repo *Repository) Exists(ctx context.Context) (bool, error) {
	task := fmt.Sprintf("Check whether GitHub repository %v exists", repo.FullName())
	client, err := repo.authenticatedClient(ctx)
	if err != nil {
		return false, errs.NewError(task, err)
	}

	_, _, err = client.Repositories.Get(ctx, repo.Owner, repo.Name)
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, errs.NewError(task, classify(err))
	}
}

// CombinedStatus returns the commit statuses for the given ref.
func (repo *Repository) CombinedStatus(ctx context.Context, ref string) (*github.CombinedStatus, error) {
	task := fmt.Sprintf("Get commit statuses for '%v'", ref)
	client, err := repo.authenticatedClient(ctx)
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	status, _, err := client.Repositories.GetCombinedStatus(ctx, repo.Owner, repo.Name, ref, nil)
	if err != nil {
		return nil, errs.NewError(task, classify(err))
	}
	return status, nil
}
