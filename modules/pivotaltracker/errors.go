package pivotaltracker

import (
	// Stdlib
	"fmt"
	"net/http"
)

// Error is the error object returned by the API.
type Error struct {
	Code             string `json:"code"`
	Error            string `json:"error"`
	Requirement      string `json:"requirement"`
	GeneralProblem   string `json:"general_problem"`
	PossibleFix      string `json:"possible_fix"`
	ValidationErrors []struct {
		Field   string `json:"field"`
		Problem string `json:"problem"`
	} `json:"validation_errors"`
}

type ErrAPI struct {
	Response *http.Response
	Err      *Error
}

func (err *ErrAPI) Error() string {
	req := err.Response.Request
	if err.Err == nil {
		return fmt.Sprintf("%v %v -> %v", req.Method, req.URL, err.Response.Status)
	}
	return fmt.Sprintf("%v %v -> %v (%v)", req.Method, req.URL, err.Response.Status, err.Err.Error)
}

// Unauthorized returns true when the API token was rejected.
func (err *ErrAPI) Unauthorized() bool {
	return err.Response.StatusCode == http.StatusUnauthorized ||
		err.Response.StatusCode == http.StatusForbidden
}

// TransportError is returned when Pivotal Tracker could not be reached at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("failed to reach Pivotal Tracker (%v %v): %v", err.Method, err.URL, err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}
