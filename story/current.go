package story

import (
	// Stdlib
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/config"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/git"
	"github.com/donaldpiret/github-pivotal-flow/prompt"
)

// Current returns the story associated with the current branch
// together with the branch lifecycle.
//
// The story id is taken from the branch config. Branches that follow
// the naming convention, like feature/42-login-form, carry the id in
// their name. The user is asked otherwise, and the answer is saved.
func Current(ctx context.Context, gateway Git, flow *config.Flow, tracker Tracker, asker prompt.Asker) (*Lifecycle, error) {
	task := "Get the story for the current branch"
	branch, err := gateway.CurrentBranch()
	if err != nil {
		if errors.Is(err, git.ErrNoCurrentBranch) {
			return nil, errs.NewError(task, ErrNoStory)
		}
		return nil, errs.NewError(task, err)
	}

	id, err := storyIdForBranch(gateway, flow, asker, branch)
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	s, err := Get(ctx, tracker, id)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	return ForBranch(s, branch, gateway, flow)
}

func storyIdForBranch(gateway Git, flow *config.Flow, asker prompt.Asker, branch string) (int, error) {
	value, err := gateway.GetBranchConfig(branch, config.KeyStoryId.Name)
	if err != nil {
		return 0, err
	}
	if value != "" {
		return parseStoryId(value)
	}

	if id, ok := StoryIdFromBranchName(flow, branch); ok {
		return id, nil
	}

	if asker == nil {
		return 0, ErrNoStory
	}
	answer, err := asker.Prompt(fmt.Sprintf("Pivotal Tracker story ID for branch '%v': ", branch))
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(answer) == "" {
		return 0, ErrNoStory
	}
	id, err := parseStoryId(answer)
	if err != nil {
		return 0, err
	}
	if err := gateway.SetBranchConfig(branch, config.KeyStoryId.Name, strconv.Itoa(id)); err != nil {
		return 0, err
	}
	return id, nil
}

// StoryIdFromBranchName parses the story id out of a branch name
// that follows the <prefix>/<id>[-<suffix>] convention.
func StoryIdFromBranchName(flow *config.Flow, branch string) (int, bool) {
	for _, prefix := range flow.Prefixes() {
		re := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `([0-9]+)(?:-.*)?$`)
		if match := re.FindStringSubmatch(branch); match != nil {
			id, err := strconv.Atoi(match[1])
			if err != nil {
				return 0, false
			}
			return id, true
		}
	}
	return 0, false
}

// SaveStoryId associates the story with the given branch.
func SaveStoryId(gateway Git, branch string, s *Story) error {
	task := fmt.Sprintf("Save the story id for branch '%v'", branch)
	if err := gateway.SetBranchConfig(branch, config.KeyStoryId.Name, strconv.Itoa(s.Id())); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

func parseStoryId(value string) (int, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, &config.ErrKeyInvalid{Key: config.KeyStoryId.Name, Value: value}
	}
	return id, nil
}
