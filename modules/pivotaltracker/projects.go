package pivotaltracker

import (
	// Stdlib
	"context"
	"fmt"
	"net/http"
)

type Person struct {
	Id       int    `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Initials string `json:"initials,omitempty"`
	Username string `json:"username,omitempty"`
}

type Me struct {
	Person
	ApiToken string `json:"api_token,omitempty"`
}

type Project struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type ProjectMembership struct {
	Id     int     `json:"id"`
	Person *Person `json:"person"`
	Role   string  `json:"role"`
}

type MeService struct {
	client *Client
}

// Get returns the user the API token belongs to.
func (service *MeService) Get(ctx context.Context) (*Me, *http.Response, error) {
	req, err := service.client.NewRequest(ctx, "GET", "me", nil)
	if err != nil {
		return nil, nil, err
	}

	var me Me
	resp, err := service.client.Do(req, &me)
	if err != nil {
		return nil, resp, err
	}

	return &me, resp, nil
}

type ProjectService struct {
	client *Client
}

func (service *ProjectService) List(ctx context.Context) ([]*Project, *http.Response, error) {
	req, err := service.client.NewRequest(ctx, "GET", "projects", nil)
	if err != nil {
		return nil, nil, err
	}

	var projects []*Project
	resp, err := service.client.Do(req, &projects)
	if err != nil {
		return nil, resp, err
	}

	return projects, resp, nil
}

func (service *ProjectService) ListMemberships(ctx context.Context, projectId int) ([]*ProjectMembership, *http.Response, error) {
	u := fmt.Sprintf("projects/%v/memberships", projectId)
	req, err := service.client.NewRequest(ctx, "GET", u, nil)
	if err != nil {
		return nil, nil, err
	}

	var memberships []*ProjectMembership
	resp, err := service.client.Do(req, &memberships)
	if err != nil {
		return nil, resp, err
	}

	return memberships, resp, nil
}
