package pivotaltracker

import (
	// Stdlib
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/log"
)

const (
	defaultBaseURL   = "https://www.pivotaltracker.com/services/v5/"
	defaultUserAgent = "github-pivotal-flow"
)

var ErrNoTrailingSlash = errors.New("trailing slash missing")

// Client talks to the Pivotal Tracker v5 REST API.
type Client struct {
	// Pivotal Tracker access token to be used to authenticate API requests.
	token string

	// HTTP client to be used for communication with the Pivotal Tracker API.
	client *http.Client

	// Base URL of the Pivotal Tracker API that is to be used to form API requests.
	baseURL *url.URL

	userAgent string

	Me       *MeService
	Projects *ProjectService
	Stories  *StoryService
}

func NewClient(apiToken string) *Client {
	baseURL, _ := url.Parse(defaultBaseURL)
	client := &Client{
		token:     apiToken,
		client:    http.DefaultClient,
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
	}
	client.Me = &MeService{client}
	client.Projects = &ProjectService{client}
	client.Stories = &StoryService{client}
	return client
}

func (c *Client) SetBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return err
	}

	if u.Path != "" && u.Path[len(u.Path)-1] != '/' {
		return ErrNoTrailingSlash
	}

	c.baseURL = u
	return nil
}

func (c *Client) NewRequest(ctx context.Context, method, urlPath string, body interface{}) (*http.Request, error) {
	path, err := url.Parse(urlPath)
	if err != nil {
		return nil, err
	}

	u := c.baseURL.ResolveReference(path)

	buf := new(bytes.Buffer)
	if body != nil {
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-TrackerToken", c.token)
	return req, nil
}

// Do sends the request and decodes the JSON response body into v.
// Status codes above 299 are returned as *ErrAPI,
// failures to reach the server as *TransportError.
func (c *Client) Do(req *http.Request, v interface{}) (*http.Response, error) {
	log.V(log.Debug).Log(fmt.Sprintf("Pivotal Tracker API: %v %v", req.Method, req.URL))
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode > 299 {
		var errObject Error
		if err := json.NewDecoder(resp.Body).Decode(&errObject); err != nil {
			return resp, &ErrAPI{Response: resp}
		}
		return resp, &ErrAPI{Response: resp, Err: &errObject}
	}

	if v != nil {
		err = json.NewDecoder(resp.Body).Decode(v)
	}
	return resp, err
}
