package github

import (
	// Stdlib
	"fmt"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/git"
)

type fakeRemote struct {
	name string
	urls map[string]string
}

func (remote *fakeRemote) Remote() (string, error) {
	return remote.name, nil
}

func (remote *fakeRemote) RemoteURL(name string) (string, error) {
	return remote.urls[name], nil
}

type testingData struct {
	upstreamURL    string
	expectedOwner  string
	expectedRepo   string
	expectingError bool
}

var _ = Describe("parsing a GitHub remote upstream URL", func() {

	It("reads the URL of the branch remote", func() {
		owner, repo, err := ParseUpstreamURL(&fakeRemote{
			name: "upstream",
			urls: map[string]string{"upstream": "git@github.com:acme/flow.git"},
		})
		Expect(err).To(BeNil())
		Expect(owner).To(Equal("acme"))
		Expect(repo).To(Equal("flow"))
	})

	It("fails without a remote", func() {
		_, _, err := ParseUpstreamURL(&fakeRemote{})
		Expect(err).To(MatchError(git.ErrNoRemote))
	})

	data := []testingData{
		//  regular URL, HTTPS scheme, .git suffix
		{
			"https://github.com/owner/repo.git",
			"owner",
			"repo",
			false,
		},
		// regular URL, SSH scheme, .git suffix
		{
			"ssh://git@github.com/owner/repo.git",
			"owner",
			"repo",
			false,
		},
		// regular URL, HTTPS scheme
		{
			"https://github.com/owner/repo",
			"owner",
			"repo",
			false,
		},
		// regular URL, SSH scheme
		{
			"ssh://git@github.com/owner/repo",
			"owner",
			"repo",
			false,
		},
		// regular URL, error - missing URL scheme
		{
			"github.com/owner/repo",
			"",
			"",
			true,
		},
		// regular URL, error - incomplete URL path
		{
			"github.com/owner/",
			"",
			"",
			true,
		},
		// SSH address, .git suffix
		{
			"git@github.com:owner/repo.git",
			"owner",
			"repo",
			false,
		},
		// SSH address
		{
			"git@github.com:owner/repo",
			"owner",
			"repo",
			false,
		},
		// SSH address, custom host (can be specified in .git/config)
		{
			"git@github-custom:owner/repo.git",
			"owner",
			"repo",
			false,
		},
		// git protocol
		{
			"git://github.com/owner/repo.git",
			"owner",
			"repo",
			false,
		},
		// SSH address without the user part
		{
			"github.com:owner/repo.git",
			"owner",
			"repo",
			false,
		},
		// SSH address, error - incomplete URL path
		{
			"git@github.com:owner/",
			"",
			"",
			true,
		},
	}

	for _, td := range data {
		func(d testingData) {

			Context(fmt.Sprintf("%+v", d), func() {

				It("should return expected results", func() {

					owner, repo, err := parseUpstreamURL(d.upstreamURL)

					Expect(owner).To(Equal(d.expectedOwner))
					Expect(repo).To(Equal(d.expectedRepo))

					if d.expectingError {
						Expect(err).ToNot(BeNil())
					} else {
						Expect(err).To(BeNil())
					}
				})
			})
		}(td)
	}

})
