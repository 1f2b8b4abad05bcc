package github

import (
	// Stdlib
	"context"
	"net/http"

	// Vendor
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const otpHeader = "X-GitHub-OTP"

// NewClient returns a GitHub client authenticating with the given token.
// The one-time password is sent along with every request when not empty.
func NewClient(token, otp string) *github.Client {
	ctx := context.Background()
	if otp != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
			Transport: &otpTransport{otp: otp, base: http.DefaultTransport},
		})
	}
	httpClient := oauth2.NewClient(ctx, &tokenSource{token})
	return github.NewClient(httpClient)
}

type tokenSource struct {
	token string
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: ts.token}, nil
}

type otpTransport struct {
	otp  string
	base http.RoundTripper
}

func (t *otpTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the original request.
	clone := req.Clone(req.Context())
	clone.Header.Set(otpHeader, t.otp)
	return t.base.RoundTrip(clone)
}
