package github

import (
	// Stdlib
	"os"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/git"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/prompt"
)

const (
	ConfigKeyUsername = "github.username"
	ConfigKeyToken    = "github.api-token"
)

// The environment takes precedence over git config and is never saved.
const (
	EnvUsername = "GITHUB_USER"
	EnvToken    = "GITHUB_TOKEN"
)

// ConfigStore is where the credentials are persisted, git config normally.
type ConfigStore interface {
	GetConfig(key string, scope git.Scope) (string, error)
	SetConfig(key, value string, scope git.Scope) error
	DeleteConfig(key string, scope git.Scope) error
}

// Credentials caches the GitHub credentials for a single invocation.
// Missing values are asked for and saved into the global git config.
type Credentials struct {
	Username string
	Token    string
	OTP      string

	store ConfigStore
	asker prompt.Asker

	// ignoreEnv is set once the token from the environment is rejected.
	ignoreEnv bool
}

func NewCredentials(store ConfigStore, asker prompt.Asker) *Credentials {
	return &Credentials{store: store, asker: asker}
}

// Load fills in the token, asking for it when it is not stored yet.
func (creds *Credentials) Load() error {
	task := "Load GitHub credentials"
	if creds.Username == "" {
		creds.Username = os.Getenv(EnvUsername)
	}
	if creds.Token == "" && !creds.ignoreEnv {
		creds.Token = os.Getenv(EnvToken)
	}

	if creds.Username == "" {
		username, err := creds.store.GetConfig(ConfigKeyUsername, git.ScopeGlobal)
		if err != nil {
			return errs.NewError(task, err)
		}
		creds.Username = username
	}

	if creds.Token != "" {
		return nil
	}
	token, err := creds.store.GetConfig(ConfigKeyToken, git.ScopeGlobal)
	if err != nil {
		return errs.NewError(task, err)
	}
	if token == "" {
		log.Log("A GitHub personal access token with the repo scope is needed")
		log.NewLine("to open pull requests. You can create one at")
		log.NewLine("https://github.com/settings/tokens")
		token, err = creds.asker.Password("GitHub API token: ")
		if err != nil {
			return errs.NewError(task, err)
		}
		if err := creds.store.SetConfig(ConfigKeyToken, token, git.ScopeGlobal); err != nil {
			return errs.NewError(task, err)
		}
	}
	creds.Token = token
	return nil
}

// AskOTP asks for the two-factor authentication code.
func (creds *Credentials) AskOTP() error {
	otp, err := creds.asker.Prompt("Two-factor authentication code: ")
	if err != nil {
		return errs.NewError("Get GitHub two-factor authentication code", err)
	}
	creds.OTP = otp
	return nil
}

// SetUsername caches the username and saves it unless it is known already.
func (creds *Credentials) SetUsername(username string) error {
	if username == "" || username == creds.Username {
		return nil
	}
	creds.Username = username
	if err := creds.store.SetConfig(ConfigKeyUsername, username, git.ScopeGlobal); err != nil {
		return errs.NewError("Save GitHub username", err)
	}
	return nil
}

// Clear forgets the token, both cached and stored.
func (creds *Credentials) Clear() error {
	creds.Token = ""
	creds.OTP = ""
	creds.ignoreEnv = true
	if err := creds.store.DeleteConfig(ConfigKeyToken, git.ScopeGlobal); err != nil {
		return errs.NewError("Clear GitHub credentials", err)
	}
	return nil
}
