package git

import (
	// Stdlib
	"fmt"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
)

// Scope selects the git config file a key is read from or written to.
type Scope int

const (
	// ScopeInherited reads the effective value, local overriding global.
	// Writing to it writes the repository config.
	ScopeInherited Scope = iota
	ScopeLocal
	ScopeGlobal
	// ScopeBranch stores the key under branch.<current branch>.<key>
	// in the repository config.
	ScopeBranch
)

func (scope Scope) String() string {
	switch scope {
	case ScopeInherited:
		return "inherited"
	case ScopeLocal:
		return "local"
	case ScopeGlobal:
		return "global"
	case ScopeBranch:
		return "branch"
	default:
		return fmt.Sprintf("Scope(%d)", int(scope))
	}
}

// configArgs returns the git config arguments selecting the scope
// together with the fully qualified key.
func (gateway *Gateway) configArgs(key string, scope Scope, write bool) ([]string, string, error) {
	switch scope {
	case ScopeInherited:
		if write {
			return []string{"--local"}, key, nil
		}
		return nil, key, nil
	case ScopeLocal:
		return []string{"--local"}, key, nil
	case ScopeGlobal:
		return []string{"--global"}, key, nil
	case ScopeBranch:
		branch, err := gateway.CurrentBranch()
		if err != nil {
			return nil, "", err
		}
		return []string{"--local"}, BranchConfigKey(branch, key), nil
	default:
		return nil, "", ErrUnknownScope
	}
}

// BranchConfigKey returns the config key under which key is stored for branch.
func BranchConfigKey(branch, key string) string {
	return fmt.Sprintf("branch.%v.%v", branch, key)
}

// GetConfig returns the value of key in the given scope.
// A key that is not set reads as an empty string.
func (gateway *Gateway) GetConfig(key string, scope Scope) (string, error) {
	task := fmt.Sprintf("Read git config key '%v' (%v)", key, scope)
	flags, fullKey, err := gateway.configArgs(key, scope, false)
	if err != nil {
		return "", errs.NewError(task, err)
	}
	return gateway.getConfig(task, fullKey, flags...)
}

// GetBranchConfig returns the value of key stored for the given branch.
func (gateway *Gateway) GetBranchConfig(branch, key string) (string, error) {
	fullKey := BranchConfigKey(branch, key)
	task := fmt.Sprintf("Read git config key '%v'", fullKey)
	return gateway.getConfig(task, fullKey)
}

func (gateway *Gateway) getConfig(task, key string, flags ...string) (string, error) {
	args := append([]string{"config"}, flags...)
	args = append(args, "--get", key)
	stdout, stderr, err := gateway.run(args...)
	if err != nil {
		// git config exits with status 1 and prints nothing when the key is not set.
		if stderr.Len() == 0 {
			return "", nil
		}
		return "", errs.NewErrorWithHint(task, err, stderr.String())
	}
	return trimmed(stdout), nil
}

// SetConfig writes key into the given scope.
func (gateway *Gateway) SetConfig(key, value string, scope Scope) error {
	task := fmt.Sprintf("Write git config key '%v' (%v)", key, scope)
	flags, fullKey, err := gateway.configArgs(key, scope, true)
	if err != nil {
		return errs.NewError(task, err)
	}
	return gateway.setConfig(task, fullKey, value, flags...)
}

// SetBranchConfig writes key for the given branch, which need not be checked out.
func (gateway *Gateway) SetBranchConfig(branch, key, value string) error {
	fullKey := BranchConfigKey(branch, key)
	task := fmt.Sprintf("Write git config key '%v'", fullKey)
	return gateway.setConfig(task, fullKey, value, "--local")
}

func (gateway *Gateway) setConfig(task, key, value string, flags ...string) error {
	args := append([]string{"config"}, flags...)
	args = append(args, key, value)
	if _, err := gateway.Run(args...); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// DeleteConfig removes key from the given scope. Removing a missing key is not an error.
func (gateway *Gateway) DeleteConfig(key string, scope Scope) error {
	task := fmt.Sprintf("Remove git config key '%v' (%v)", key, scope)
	flags, fullKey, err := gateway.configArgs(key, scope, true)
	if err != nil {
		return errs.NewError(task, err)
	}
	args := append([]string{"config"}, flags...)
	args = append(args, "--unset", fullKey)
	if _, stderr, err := gateway.run(args...); err != nil && stderr.Len() != 0 {
		return errs.NewErrorWithHint(task, err, stderr.String())
	}
	return nil
}

// UserName returns user.name as configured for the repository.
func (gateway *Gateway) UserName() (string, error) {
	return gateway.GetConfig("user.name", ScopeInherited)
}
