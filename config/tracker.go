package config

import (
	// Stdlib
	"context"
	"fmt"
	"sort"
	"strconv"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/modules/pivotaltracker"
	"github.com/donaldpiret/github-pivotal-flow/prompt"
)

// PivotalToken returns the Pivotal Tracker API token, asking for it if necessary.
func (config *Config) PivotalToken() (string, error) {
	return config.Get(KeyPivotalToken)
}

// ProjectLister lists the projects the user can access.
type ProjectLister interface {
	ListProjects(ctx context.Context) ([]*pivotaltracker.Project, error)
}

// ProjectId returns the Pivotal Tracker project associated with the repository.
// When not configured yet, the user chooses one of the accessible projects.
func (config *Config) ProjectId(ctx context.Context, projects ProjectLister, chooser prompt.ChoicePresenter) (int, error) {
	task := "Get the Pivotal Tracker project ID"
	value, err := config.Lookup(KeyProjectId)
	if err != nil {
		return 0, errs.NewError(task, err)
	}

	if value == "" {
		list, err := projects.ListProjects(ctx)
		if err != nil {
			return 0, errs.NewError(task, err)
		}
		sort.Slice(list, func(i, j int) bool {
			return list[i].Name < list[j].Name
		})

		choices := make([]prompt.Choice, 0, len(list))
		for _, project := range list {
			choices = append(choices, prompt.Choice{
				Id:    strconv.Itoa(project.Id),
				Title: project.Name,
			})
		}
		index, err := chooser.Choose("Choose project associated with this repository:", choices)
		if err != nil {
			return 0, errs.NewError(task, err)
		}

		value = choices[index].Id
		if err := config.Set(KeyProjectId, value); err != nil {
			return 0, errs.NewError(task, err)
		}
		log.Log("Project saved as " + KeyProjectId.Name)
	}

	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, errs.NewError(task, &ErrKeyInvalid{KeyProjectId.Name, value})
	}
	return id, nil
}

type ErrKeyInvalid struct {
	Key   string
	Value string
}

func (err *ErrKeyInvalid) Error() string {
	return fmt.Sprintf("key '%s' is invalid (value = %q)", err.Key, err.Value)
}
