package pivotaltracker

import (
	// Stdlib
	"context"
	"fmt"
	"sort"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
)

// CandidateStates are the states of stories that can be started.
var CandidateStates = []string{StoryStateRejected, StoryStateUnstarted, StoryStateUnscheduled}

// DefaultCandidateTypes are offered when no story type is requested.
var DefaultCandidateTypes = []string{StoryTypeFeature, StoryTypeBug}

func (c *Client) ListProjects(ctx context.Context) ([]*Project, error) {
	projects, _, err := c.Projects.List(ctx)
	if err != nil {
		return nil, errs.NewError("List Pivotal Tracker projects", err)
	}
	return projects, nil
}

// Tracker binds the client to a single project.
type Tracker struct {
	client    *Client
	projectId int
}

func NewTracker(client *Client, projectId int) *Tracker {
	return &Tracker{client, projectId}
}

func (tracker *Tracker) ProjectId() int {
	return tracker.projectId
}

func (tracker *Tracker) Story(ctx context.Context, storyId int) (*Story, error) {
	task := fmt.Sprintf("Fetch story #%v", storyId)
	story, _, err := tracker.client.Stories.Get(ctx, tracker.projectId, storyId)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	return story, nil
}

// CandidateStories returns stories of the given types that can be started.
func (tracker *Tracker) CandidateStories(ctx context.Context, types []string, limit int) ([]*Story, error) {
	task := "Fetch startable stories"
	if len(types) == 0 {
		types = DefaultCandidateTypes
	}
	filter := fmt.Sprintf("state:%v type:%v",
		strings.Join(CandidateStates, ","), strings.Join(types, ","))
	stories, _, err := tracker.client.Stories.List(ctx, tracker.projectId, filter, limit)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	return stories, nil
}

func (tracker *Tracker) UpdateStory(ctx context.Context, storyId int, req *StoryRequest) (*Story, error) {
	task := fmt.Sprintf("Update story #%v", storyId)
	story, _, err := tracker.client.Stories.Update(ctx, tracker.projectId, storyId, req)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	return story, nil
}

// Notes returns the story comments ordered by the time they were created.
func (tracker *Tracker) Notes(ctx context.Context, storyId int) ([]*Comment, error) {
	task := fmt.Sprintf("Fetch notes for story #%v", storyId)
	comments, _, err := tracker.client.Stories.ListComments(ctx, tracker.projectId, storyId)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	sort.SliceStable(comments, func(i, j int) bool {
		a, b := comments[i].CreatedAt, comments[j].CreatedAt
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		return a.Before(*b)
	})
	return comments, nil
}

// MemberByName returns the project member of the given name.
// The owner of the API token is returned when there is no such member.
func (tracker *Tracker) MemberByName(ctx context.Context, name string) (*Person, error) {
	task := "Find the Pivotal Tracker user"
	if name != "" {
		memberships, _, err := tracker.client.Projects.ListMemberships(ctx, tracker.projectId)
		if err != nil {
			return nil, errs.NewError(task, err)
		}
		for _, membership := range memberships {
			if person := membership.Person; person != nil && strings.EqualFold(person.Name, name) {
				return person, nil
			}
		}
	}

	me, _, err := tracker.client.Me.Get(ctx)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	return &me.Person, nil
}
