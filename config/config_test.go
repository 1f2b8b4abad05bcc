package config

import (
	// Stdlib
	"context"
	"errors"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/git"
	"github.com/donaldpiret/github-pivotal-flow/modules/pivotaltracker"
	"github.com/donaldpiret/github-pivotal-flow/prompt"
)

type scopedKey struct {
	scope git.Scope
	key   string
}

type fakeStore struct {
	values   map[scopedKey]string
	ensured  []string
	noBranch bool
}

func (store *fakeStore) GetConfig(key string, scope git.Scope) (string, error) {
	if scope == git.ScopeBranch && store.noBranch {
		return "", git.ErrNoCurrentBranch
	}
	return store.values[scopedKey{scope, key}], nil
}

func (store *fakeStore) SetConfig(key, value string, scope git.Scope) error {
	store.values[scopedKey{scope, key}] = value
	return nil
}

func (store *fakeStore) EnsureBranchExists(name string) {
	store.ensured = append(store.ensured, name)
}

type fakeAsker struct {
	answers   []string
	questions []string
}

func (asker *fakeAsker) Prompt(msg string) (string, error) {
	asker.questions = append(asker.questions, msg)
	if len(asker.answers) == 0 {
		return "", prompt.ErrCanceled
	}
	answer := asker.answers[0]
	asker.answers = asker.answers[1:]
	return answer, nil
}

func (asker *fakeAsker) Password(msg string) (string, error) {
	return asker.Prompt(msg)
}

type fakeProjects []*pivotaltracker.Project

func (projects fakeProjects) ListProjects(ctx context.Context) ([]*pivotaltracker.Project, error) {
	return projects, nil
}

type fakeChooser struct {
	index   int
	choices []prompt.Choice
}

func (chooser *fakeChooser) Choose(header string, choices []prompt.Choice) (int, error) {
	chooser.choices = choices
	return chooser.index, nil
}

var _ = Describe("Config", func() {

	var (
		store  *fakeStore
		asker  *fakeAsker
		config *Config
	)

	BeforeEach(func() {
		store = &fakeStore{values: make(map[scopedKey]string)}
		asker = &fakeAsker{}
		config = New(store, asker)
	})

	Describe("Lookup", func() {

		It("prefers the branch scope over local and global", func() {
			store.values[scopedKey{git.ScopeGlobal, "pivotal.project-id"}] = "1"
			store.values[scopedKey{git.ScopeLocal, "pivotal.project-id"}] = "2"
			Expect(config.Lookup(KeyProjectId)).To(Equal("2"))

			config = New(store, asker)
			store.values[scopedKey{git.ScopeBranch, "pivotal.project-id"}] = "3"
			Expect(config.Lookup(KeyProjectId)).To(Equal("3"))
		})

		It("skips the branch scope outside of a branch", func() {
			store.noBranch = true
			store.values[scopedKey{git.ScopeGlobal, "pivotal.api-token"}] = "secret"
			Expect(config.Lookup(KeyPivotalToken)).To(Equal("secret"))
		})

		It("does not ask", func() {
			Expect(config.Lookup(KeyFeaturePrefix)).To(BeEmpty())
			Expect(asker.questions).To(BeEmpty())
		})
	})

	Describe("Get", func() {

		It("asks once and saves the answer into the key scope", func() {
			asker.answers = []string{"secret"}
			Expect(config.Get(KeyPivotalToken)).To(Equal("secret"))
			Expect(store.values[scopedKey{git.ScopeGlobal, "pivotal.api-token"}]).To(Equal("secret"))

			Expect(config.Get(KeyPivotalToken)).To(Equal("secret"))
			Expect(asker.questions).To(HaveLen(1))
		})

		It("uses the default for an empty answer", func() {
			asker.answers = []string{""}
			Expect(config.Get(KeyDevelopmentBranch)).To(Equal("development"))
			Expect(store.values[scopedKey{git.ScopeLocal, "gitflow.branch.develop"}]).To(Equal("development"))
		})

		It("fails for keys that are never asked for", func() {
			_, err := config.Get(KeyStoryId)
			var notSet *ErrKeyNotSet
			Expect(errors.As(err, &notSet)).To(BeTrue())
		})

		It("stops when the user cancels", func() {
			_, err := config.Get(KeyPivotalToken)
			Expect(prompt.IsCanceled(err)).To(BeTrue())
		})
	})

	Describe("LoadFlow", func() {

		It("resolves all settings and ensures the core branches exist", func() {
			store.values[scopedKey{git.ScopeLocal, "gitflow.prefix.feature"}] = "feat/"
			asker.answers = []string{"", "", "develop", ""}

			flow, err := config.LoadFlow(store)
			Expect(err).To(BeNil())
			Expect(*flow).To(Equal(Flow{
				FeaturePrefix:     "feat/",
				HotfixPrefix:      "hotfix",
				ReleasePrefix:     "release",
				DevelopmentBranch: "develop",
				MasterBranch:      "master",
			}))
			Expect(store.ensured).To(Equal([]string{"develop", "master"}))
			Expect(flow.IsCoreBranch("develop")).To(BeTrue())
		})

		It("normalizes prefixes", func() {
			Expect(NormalizePrefix("feature")).To(Equal("feature/"))
			Expect(NormalizePrefix(" feature// ")).To(Equal("feature/"))
		})
	})

	Describe("ProjectId", func() {

		It("lets the user choose a project sorted by name", func() {
			projects := fakeProjects{{Id: 2, Name: "Zebra"}, {Id: 1, Name: "Aardvark"}}
			chooser := &fakeChooser{index: 1}

			id, err := config.ProjectId(context.Background(), projects, chooser)
			Expect(err).To(BeNil())
			Expect(id).To(Equal(2))
			Expect(chooser.choices[0].Title).To(Equal("Aardvark"))
			Expect(store.values[scopedKey{git.ScopeLocal, "pivotal.project-id"}]).To(Equal("2"))
		})

		It("rejects a garbage project id", func() {
			store.values[scopedKey{git.ScopeLocal, "pivotal.project-id"}] = "abc"
			_, err := config.ProjectId(context.Background(), fakeProjects{}, &fakeChooser{})
			Expect(err).To(HaveOccurred())
		})
	})
})
