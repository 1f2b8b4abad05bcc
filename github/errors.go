package github

import (
	// Stdlib
	"errors"
	"fmt"
	"net/http"
	"net/url"

	// Vendor
	"github.com/google/go-github/v57/github"
)

var ErrRepositoryNotFound = errors.New("GitHub repository not found")

// TransportError is returned when GitHub could not be reached at all.
type TransportError struct {
	Err error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("failed to reach GitHub: %v", err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}

// classify turns network failures into *TransportError.
func classify(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &TransportError{urlErr}
	}
	return err
}

func isUnauthorized(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil &&
		errResp.Response.StatusCode == http.StatusUnauthorized
}

func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil &&
		errResp.Response.StatusCode == http.StatusNotFound
}

func isTwoFactorChallenge(err error) bool {
	var tfa *github.TwoFactorAuthError
	return errors.As(err, &tfa)
}
