package pivotaltracker

import (
	// Stdlib
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	StoryTypeFeature = "feature"
	StoryTypeBug     = "bug"
	StoryTypeChore   = "chore"
	StoryTypeRelease = "release"
)

const (
	StoryStateUnscheduled = "unscheduled"
	StoryStatePlanned     = "planned"
	StoryStateUnstarted   = "unstarted"
	StoryStateStarted     = "started"
	StoryStateFinished    = "finished"
	StoryStateDelivered   = "delivered"
	StoryStateAccepted    = "accepted"
	StoryStateRejected    = "rejected"
)

type Story struct {
	Id          int        `json:"id,omitempty"`
	ProjectId   int        `json:"project_id,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"story_type,omitempty"`
	State       string     `json:"current_state,omitempty"`
	Estimate    *float64   `json:"estimate,omitempty"`
	OwnerIds    []int      `json:"owner_ids,omitempty"`
	Labels      []*Label   `json:"labels,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	URL         string     `json:"url,omitempty"`
}

type StoryRequest struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"story_type,omitempty"`
	State       string   `json:"current_state,omitempty"`
	Estimate    *float64 `json:"estimate,omitempty"`
	OwnerIds    *[]int   `json:"owner_ids,omitempty"`
}

type Label struct {
	Id        int    `json:"id,omitempty"`
	ProjectId int    `json:"project_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Kind      string `json:"kind,omitempty"`
}

type Comment struct {
	Id        int        `json:"id,omitempty"`
	StoryId   int        `json:"story_id,omitempty"`
	PersonId  int        `json:"person_id,omitempty"`
	Text      string     `json:"text,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type StoryService struct {
	client *Client
}

// List returns the stories matching the given search filter,
// e.g. "state:unstarted,rejected type:feature,bug". At most limit stories
// are returned, limit <= 0 meaning the API default.
func (service *StoryService) List(ctx context.Context, projectId int, filter string, limit int) ([]*Story, *http.Response, error) {
	u := fmt.Sprintf("projects/%v/stories", projectId)
	query := url.Values{}
	if filter != "" {
		query.Set("filter", filter)
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}
	if len(query) != 0 {
		u += "?" + query.Encode()
	}

	req, err := service.client.NewRequest(ctx, "GET", u, nil)
	if err != nil {
		return nil, nil, err
	}

	var stories []*Story
	resp, err := service.client.Do(req, &stories)
	if err != nil {
		return nil, resp, err
	}

	return stories, resp, nil
}

func (service *StoryService) Get(ctx context.Context, projectId, storyId int) (*Story, *http.Response, error) {
	u := fmt.Sprintf("projects/%v/stories/%v", projectId, storyId)
	req, err := service.client.NewRequest(ctx, "GET", u, nil)
	if err != nil {
		return nil, nil, err
	}

	var story Story
	resp, err := service.client.Do(req, &story)
	if err != nil {
		return nil, resp, err
	}

	return &story, resp, nil
}

func (service *StoryService) Update(ctx context.Context, projectId, storyId int, story *StoryRequest) (*Story, *http.Response, error) {
	u := fmt.Sprintf("projects/%v/stories/%v", projectId, storyId)
	req, err := service.client.NewRequest(ctx, "PUT", u, story)
	if err != nil {
		return nil, nil, err
	}

	var bodyStory Story
	resp, err := service.client.Do(req, &bodyStory)
	if err != nil {
		return nil, resp, err
	}

	return &bodyStory, resp, nil
}

// ListComments returns the notes attached to the story.
func (service *StoryService) ListComments(ctx context.Context, projectId, storyId int) ([]*Comment, *http.Response, error) {
	u := fmt.Sprintf("projects/%v/stories/%v/comments", projectId, storyId)
	req, err := service.client.NewRequest(ctx, "GET", u, nil)
	if err != nil {
		return nil, nil, err
	}

	var comments []*Comment
	resp, err := service.client.Do(req, &comments)
	if err != nil {
		return nil, resp, err
	}

	return comments, resp, nil
}
