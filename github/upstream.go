package github

import (
	// Stdlib
	"fmt"
	"net/url"
	"regexp"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/git"
)

// Remote is the part of the git gateway needed to locate the upstream.
type Remote interface {
	Remote() (string, error)
	RemoteURL(remote string) (string, error)
}

// ParseUpstreamURL parses the URL of the git remote being used
// and returns the GitHub owner and repository.
func ParseUpstreamURL(gateway Remote) (owner, repo string, err error) {
	task := "Get the GitHub repository for the current branch"
	remoteName, err := gateway.Remote()
	if err != nil {
		return "", "", errs.NewError(task, err)
	}
	if remoteName == "" {
		return "", "", errs.NewError(task, git.ErrNoRemote)
	}

	task = fmt.Sprintf("Get URL for git remote '%v'", remoteName)
	remoteURL, err := gateway.RemoteURL(remoteName)
	if err != nil {
		return "", "", errs.NewError(task, err)
	}

	return parseUpstreamURL(remoteURL)
}

var (
	// scpLikeURL matches [user@]host:owner/repo[.git]
	scpLikeURL = regexp.MustCompile(`^(?:[^@/]+@)?[^:/]+:([^/]+)/([^/]+?)/?$`)

	// urlPath matches /owner/repo[.git]
	urlPath = regexp.MustCompile(`^/([^/]+)/([^/]+?)/?$`)
)

func parseUpstreamURL(remoteURL string) (owner, repo string, err error) {
	task := "Parse the upstream repository URL"

	if match := scpLikeURL.FindStringSubmatch(remoteURL); match != nil {
		owner, repo = match[1], match[2]
	} else if u, err := url.Parse(remoteURL); err == nil {
		switch u.Scheme {
		case "ssh", "git", "http", "https":
			if match := urlPath.FindStringSubmatch(u.Path); match != nil {
				owner, repo = match[1], match[2]
			}
		}
	}

	repo = strings.TrimSuffix(repo, ".git")
	if owner == "" || repo == "" {
		err = fmt.Errorf("failed to parse git remote URL: %v", remoteURL)
		return "", "", errs.NewError(task, err)
	}
	return owner, repo, nil
}
