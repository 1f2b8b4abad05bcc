package config

import (
	// Stdlib
	"errors"
	"fmt"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/git"
	"github.com/donaldpiret/github-pivotal-flow/prompt"
)

// Store reads and writes git config.
type Store interface {
	GetConfig(key string, scope git.Scope) (string, error)
	SetConfig(key, value string, scope git.Scope) error
}

// Config resolves configuration keys, looking at the branch, local and
// global git config in that order. A value that is not found is asked for
// and saved into the scope of the key, so it is only ever asked for once.
type Config struct {
	store Store
	asker prompt.Asker

	cache map[string]string
}

func New(store Store, asker prompt.Asker) *Config {
	return &Config{
		store: store,
		asker: asker,
		cache: make(map[string]string),
	}
}

// Lookup returns the value of the key without asking the user.
// An empty string means the key is not set.
func (config *Config) Lookup(key *Key) (string, error) {
	if value, ok := config.cache[key.Name]; ok {
		return value, nil
	}

	task := fmt.Sprintf("Read configuration key '%v'", key.Name)
	for _, scope := range []git.Scope{git.ScopeBranch, git.ScopeLocal, git.ScopeGlobal} {
		value, err := config.store.GetConfig(key.Name, scope)
		if err != nil {
			// Outside of any branch there is simply nothing in the branch scope.
			if scope == git.ScopeBranch && errors.Is(err, git.ErrNoCurrentBranch) {
				continue
			}
			return "", errs.NewError(task, err)
		}
		if value = strings.TrimSpace(value); value != "" {
			config.remember(key, value)
			return value, nil
		}
	}
	return "", nil
}

// Get returns the value of the key, asking the user when it is not set.
func (config *Config) Get(key *Key) (string, error) {
	value, err := config.Lookup(key)
	if err != nil || value != "" {
		return value, err
	}
	if key.Question == "" {
		if key.Default != "" {
			return key.Default, nil
		}
		return "", errs.NewError(
			fmt.Sprintf("Read configuration key '%v'", key.Name), &ErrKeyNotSet{key.Name})
	}

	task := fmt.Sprintf("Ask for configuration key '%v'", key.Name)
	value, err = config.ask(key)
	if err != nil {
		return "", errs.NewError(task, err)
	}
	if err := config.Set(key, value); err != nil {
		return "", err
	}
	return value, nil
}

func (config *Config) ask(key *Key) (string, error) {
	if key.Secret {
		return config.asker.Password(key.Question + ": ")
	}

	question := key.Question
	if key.Default != "" {
		question = fmt.Sprintf("%v: [%v] ", question, key.Default)
	} else {
		question += ": "
	}
	answer, err := config.asker.Prompt(question)
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		if key.Default == "" {
			return "", prompt.ErrCanceled
		}
		answer = key.Default
	}
	return answer, nil
}

// Set saves the value into the scope of the key.
func (config *Config) Set(key *Key, value string) error {
	task := fmt.Sprintf("Save configuration key '%v'", key.Name)
	if err := config.store.SetConfig(key.Name, value, key.Scope); err != nil {
		return errs.NewError(task, err)
	}
	config.remember(key, value)
	return nil
}

// remember caches the value unless it belongs to a branch,
// since the current branch changes while a command is running.
func (config *Config) remember(key *Key, value string) {
	if key.Scope != git.ScopeBranch {
		config.cache[key.Name] = value
	}
}

type ErrKeyNotSet struct {
	Key string
}

func (err *ErrKeyNotSet) Error() string {
	return fmt.Sprintf("key '%s' is not set", err.Key)
}
