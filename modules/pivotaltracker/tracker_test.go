package pivotaltracker

import (
	// Stdlib
	"context"
	"net/http"
	"net/http/httptest"
)

var _ = Describe("Tracker", func() {

	var (
		mux     *http.ServeMux
		server  *httptest.Server
		tracker *Tracker
		ctx     = context.Background()
	)

	BeforeEach(func() {
		mux = http.NewServeMux()
		server = httptest.NewServer(mux)
		client := NewClient("secret")
		Expect(client.SetBaseURL(server.URL + "/")).To(BeNil())
		tracker = NewTracker(client, 99)
	})

	AfterEach(func() {
		server.Close()
	})

	It("offers features and bugs by default", func() {
		mux.HandleFunc("/projects/99/stories", func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Query().Get("filter")).To(Equal(
				"state:rejected,unstarted,unscheduled type:feature,bug"))
			w.Write([]byte(`[{"id": 1, "story_type": "bug"}]`))
		})

		stories, err := tracker.CandidateStories(ctx, nil, 5)
		Expect(err).To(BeNil())
		Expect(stories).To(HaveLen(1))
	})

	It("orders notes by time", func() {
		mux.HandleFunc("/projects/99/stories/42/comments", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"id": 2, "text": "second", "created_at": "2014-05-02T10:00:00Z"},
				{"id": 1, "text": "first", "created_at": "2014-05-01T10:00:00Z"}
			]`))
		})

		notes, err := tracker.Notes(ctx, 42)
		Expect(err).To(BeNil())
		Expect(notes[0].Text).To(Equal("first"))
		Expect(notes[1].Text).To(Equal("second"))
	})

	Context("looking up a member", func() {

		BeforeEach(func() {
			mux.HandleFunc("/projects/99/memberships", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"id": 1, "person": {"id": 7, "name": "Jane Doe"}}]`))
			})
			mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"id": 3, "name": "Token Owner"}`))
			})
		})

		It("matches the name", func() {
			person, err := tracker.MemberByName(ctx, "jane doe")
			Expect(err).To(BeNil())
			Expect(person.Id).To(Equal(7))
		})

		It("falls back to the token owner", func() {
			person, err := tracker.MemberByName(ctx, "John Smith")
			Expect(err).To(BeNil())
			Expect(person.Id).To(Equal(3))
		})
	})
})
