package github

import (
	// Stdlib
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/git"
	"github.com/donaldpiret/github-pivotal-flow/prompt"
)

type fakeStore map[string]string

func (store fakeStore) GetConfig(key string, scope git.Scope) (string, error) {
	return store[key], nil
}

func (store fakeStore) SetConfig(key, value string, scope git.Scope) error {
	store[key] = value
	return nil
}

func (store fakeStore) DeleteConfig(key string, scope git.Scope) error {
	delete(store, key)
	return nil
}

// fakeAsker hands out the prepared answers in order.
type fakeAsker struct {
	answers []string
}

func (asker *fakeAsker) next() (string, error) {
	if len(asker.answers) == 0 {
		return "", prompt.ErrCanceled
	}
	answer := asker.answers[0]
	asker.answers = asker.answers[1:]
	return answer, nil
}

func (asker *fakeAsker) Prompt(msg string) (string, error) {
	return asker.next()
}

func (asker *fakeAsker) Password(msg string) (string, error) {
	return asker.next()
}

var _ = Describe("Repository", func() {

	var (
		mux    *http.ServeMux
		server *httptest.Server
		store  fakeStore
		asker  *fakeAsker
		repo   *Repository
		ctx    = context.Background()
	)

	BeforeEach(func() {
		mux = http.NewServeMux()
		server = httptest.NewServer(mux)
		store = fakeStore{ConfigKeyToken: "good"}
		asker = &fakeAsker{}
		os.Unsetenv(EnvUsername)
		os.Unsetenv(EnvToken)

		repo = NewRepository("acme", "flow", NewCredentials(store, asker))
		Expect(repo.SetBaseURL(server.URL + "/")).To(BeNil())

		mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Header.Get("Authorization") != "Bearer good":
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message": "Bad credentials"}`))
			case store["otp-required"] != "" && r.Header.Get(otpHeader) != "123456":
				w.Header().Set(otpHeader, "required; app")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message": "Must specify two-factor authentication OTP code."}`))
			default:
				w.Write([]byte(`{"login": "octocat"}`))
			}
		})
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("authentication", func() {

		It("remembers the username", func() {
			_, err := repo.Exists(ctx)
			Expect(err).To(BeNil())
			Expect(store[ConfigKeyUsername]).To(Equal("octocat"))
		})

		It("prefers the token from the environment", func() {
			store[ConfigKeyToken] = "revoked"
			os.Setenv(EnvToken, "good")
			defer os.Unsetenv(EnvToken)

			_, err := repo.Exists(ctx)
			Expect(err).To(BeNil())
			Expect(store[ConfigKeyToken]).To(Equal("revoked"))
		})

		It("asks for a new token when the stored one is rejected", func() {
			store[ConfigKeyToken] = "revoked"
			asker.answers = []string{"good"}

			mux.HandleFunc("/repos/acme/flow", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"full_name": "acme/flow"}`))
			})

			exists, err := repo.Exists(ctx)
			Expect(err).To(BeNil())
			Expect(exists).To(BeTrue())
			Expect(store[ConfigKeyToken]).To(Equal("good"))
		})

		It("stops when the user gives up", func() {
			store[ConfigKeyToken] = "revoked"

			_, err := repo.Exists(ctx)
			Expect(prompt.IsCanceled(err)).To(BeTrue())
			Expect(store).ToNot(HaveKey(ConfigKeyToken))
		})

		It("sends the two-factor code", func() {
			store["otp-required"] = "yes"
			asker.answers = []string{"123456"}

			mux.HandleFunc("/repos/acme/flow", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get(otpHeader)).To(Equal("123456"))
				w.Write([]byte(`{"full_name": "acme/flow"}`))
			})

			Expect(repo.Exists(ctx)).To(BeTrue())
		})
	})

	Describe("Exists", func() {

		It("returns false for a missing repository", func() {
			mux.HandleFunc("/repos/acme/flow", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"message": "Not Found"}`))
			})
			Expect(repo.Exists(ctx)).To(BeFalse())
		})
	})

	Describe("CreatePullRequest", func() {

		params := &PullRequestParams{
			Base:  "development",
			Head:  "feature/42-login-form",
			Title: "Login form",
			Body:  "As a user I want to log in.",
		}

		It("opens a pull request", func() {
			mux.HandleFunc("/repos/acme/flow/pulls", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal("POST"))
				var body map[string]interface{}
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(BeNil())
				Expect(body).To(Equal(map[string]interface{}{
					"base":  "development",
					"head":  "feature/42-login-form",
					"title": "Login form",
					"body":  "As a user I want to log in.",
				}))
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"number": 7, "html_url": "https://github.com/acme/flow/pull/7"}`))
			})

			pr, err := repo.CreatePullRequest(ctx, params)
			Expect(err).To(BeNil())
			Expect(pr.GetNumber()).To(Equal(7))
		})

		It("returns the pull request that exists already", func() {
			mux.HandleFunc("/repos/acme/flow/pulls", func(w http.ResponseWriter, r *http.Request) {
				if r.Method == "POST" {
					w.WriteHeader(http.StatusUnprocessableEntity)
					w.Write([]byte(`{"message": "Validation Failed", "errors": [{"resource": "PullRequest",
						"code": "custom", "message": "A pull request already exists for acme:feature/42-login-form."}]}`))
					return
				}
				Expect(r.URL.Query().Get("head")).To(Equal("acme:feature/42-login-form"))
				w.Write([]byte(`[{"number": 5}]`))
			})

			pr, err := repo.CreatePullRequest(ctx, params)
			Expect(err).To(BeNil())
			Expect(pr.GetNumber()).To(Equal(5))
		})

		It("tells when there is nothing to merge", func() {
			mux.HandleFunc("/repos/acme/flow/pulls", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(`{"message": "Validation Failed", "errors": [{"resource": "PullRequest",
					"code": "custom", "message": "No commits between development and feature/42-login-form"}]}`))
			})

			_, err := repo.CreatePullRequest(ctx, params)
			Expect(errors.Is(err, ErrNoCommits)).To(BeTrue())
		})

		It("requires a title", func() {
			_, err := repo.CreatePullRequest(ctx, &PullRequestParams{Base: "master", Head: "chore/1"})
			Expect(err).To(HaveOccurred())
		})
	})

	It("wraps network failures", func() {
		server.Close()
		_, err := repo.Exists(ctx)
		var transportErr *TransportError
		Expect(errors.As(err, &transportErr)).To(BeTrue())
	})
})
