package config

import (
	// Internal
	"github.com/donaldpiret/github-pivotal-flow/git"
)

// Key describes a configuration value kept in git config.
type Key struct {
	Name string

	// Scope is where the value is saved once it has been asked for.
	Scope git.Scope

	// Default is used when the user answers with an empty line.
	Default string

	// Question is presented to the user when the value is not set.
	// Keys without a question are never asked for.
	Question string

	Secret bool
}

var (
	KeyPivotalToken = &Key{
		Name:     "pivotal.api-token",
		Scope:    git.ScopeGlobal,
		Question: "Pivotal API Token (found at https://www.pivotaltracker.com/profile)",
		Secret:   true,
	}
	KeyProjectId = &Key{
		Name:  "pivotal.project-id",
		Scope: git.ScopeLocal,
	}
	KeyStoryId = &Key{
		Name:  "pivotal-story-id",
		Scope: git.ScopeBranch,
	}

	KeyFeaturePrefix = &Key{
		Name:     "gitflow.prefix.feature",
		Scope:    git.ScopeLocal,
		Default:  "feature",
		Question: "Please enter your git-flow feature branch prefix",
	}
	KeyHotfixPrefix = &Key{
		Name:     "gitflow.prefix.hotfix",
		Scope:    git.ScopeLocal,
		Default:  "hotfix",
		Question: "Please enter your git-flow hotfix branch prefix",
	}
	KeyReleasePrefix = &Key{
		Name:     "gitflow.prefix.release",
		Scope:    git.ScopeLocal,
		Default:  "release",
		Question: "Please enter your git-flow release branch prefix",
	}
	KeyDevelopmentBranch = &Key{
		Name:     "gitflow.branch.develop",
		Scope:    git.ScopeLocal,
		Default:  "development",
		Question: "Please enter your git-flow development branch name",
	}
	KeyMasterBranch = &Key{
		Name:     "gitflow.branch.master",
		Scope:    git.ScopeLocal,
		Default:  "master",
		Question: "Please enter your git-flow production branch name",
	}

	// Branch-scoped keys describing where a story branch comes from.
	KeyRootBranch = &Key{Name: "root-branch", Scope: git.ScopeBranch}
	KeyRootRemote = &Key{Name: "root-remote", Scope: git.ScopeBranch}
)
