package config

import (
	// Stdlib
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
)

// Flow holds the git-flow branch settings.
type Flow struct {
	FeaturePrefix string
	HotfixPrefix  string
	ReleasePrefix string

	DevelopmentBranch string
	MasterBranch      string
}

// BranchEnsurer creates missing branches.
type BranchEnsurer interface {
	EnsureBranchExists(name string)
}

// LoadFlow resolves the git-flow settings, asking for the missing ones.
// The development and master branches are created when missing.
func (config *Config) LoadFlow(branches BranchEnsurer) (*Flow, error) {
	task := "Load git-flow settings"
	var flow Flow
	for _, field := range []struct {
		key   *Key
		value *string
	}{
		{KeyFeaturePrefix, &flow.FeaturePrefix},
		{KeyHotfixPrefix, &flow.HotfixPrefix},
		{KeyReleasePrefix, &flow.ReleasePrefix},
		{KeyDevelopmentBranch, &flow.DevelopmentBranch},
		{KeyMasterBranch, &flow.MasterBranch},
	} {
		value, err := config.Get(field.key)
		if err != nil {
			return nil, errs.NewError(task, err)
		}
		*field.value = value
	}

	branches.EnsureBranchExists(flow.DevelopmentBranch)
	branches.EnsureBranchExists(flow.MasterBranch)
	return &flow, nil
}

// IsCoreBranch returns true for the development and master branches.
func (flow *Flow) IsCoreBranch(branch string) bool {
	return branch == flow.DevelopmentBranch || branch == flow.MasterBranch
}

// Prefixes returns the story branch prefixes, each ending with a slash.
func (flow *Flow) Prefixes() []string {
	var prefixes []string
	for _, prefix := range []string{flow.FeaturePrefix, flow.HotfixPrefix, flow.ReleasePrefix, "misc"} {
		prefixes = append(prefixes, NormalizePrefix(prefix))
	}
	return prefixes
}

// NormalizePrefix makes sure the prefix ends with exactly one slash.
func NormalizePrefix(prefix string) string {
	return strings.TrimRight(strings.TrimSpace(prefix), "/") + "/"
}
