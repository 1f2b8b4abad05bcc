package app

import (
	// Stdlib
	"context"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/app/appflags"
	"github.com/donaldpiret/github-pivotal-flow/config"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/git"
	"github.com/donaldpiret/github-pivotal-flow/github"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/modules/pivotaltracker"
	"github.com/donaldpiret/github-pivotal-flow/prompt"
)

// App carries everything a command needs to talk to git,
// the user, Pivotal Tracker and GitHub.
type App struct {
	Git    *git.Gateway
	Prompt *prompt.Console
	Config *config.Config
	Flow   *config.Flow

	tracker *pivotaltracker.Tracker
	repo    *github.Repository
}

// Init makes sure we are inside of a git repository
// and loads the git-flow settings, asking for the missing ones.
func Init() (*App, error) {
	log.SetV(log.MustStringToLevel(appflags.FlagLog.Value()))

	gateway := git.Default()
	if _, err := gateway.RepositoryRoot(); err != nil {
		return nil, err
	}

	console := prompt.Default()
	cfg := config.New(gateway, console)
	flow, err := cfg.LoadFlow(gateway)
	if err != nil {
		return nil, err
	}

	return &App{
		Git:    gateway,
		Prompt: console,
		Config: cfg,
		Flow:   flow,
	}, nil
}

// MustInit exits the process in case Init fails.
func MustInit() *App {
	app, err := Init()
	if err != nil {
		Fatal(err)
	}
	return app
}

// Tracker returns the Pivotal Tracker project linked to the repository.
// The token and the project are asked for the first time around
// unless set on the command line.
func (app *App) Tracker(ctx context.Context) (*pivotaltracker.Tracker, error) {
	if app.tracker != nil {
		return app.tracker, nil
	}

	token := appflags.FlagToken
	if token == "" {
		t, err := app.Config.PivotalToken()
		if err != nil {
			return nil, err
		}
		token = t
	}
	client := pivotaltracker.NewClient(token)

	projectId := appflags.FlagProjectId
	if projectId == 0 {
		id, err := app.Config.ProjectId(ctx, client, app.Prompt)
		if err != nil {
			return nil, err
		}
		projectId = id
	}

	app.tracker = pivotaltracker.NewTracker(client, projectId)
	return app.tracker, nil
}

// GitHub returns the GitHub repository the current branch is pushed to.
func (app *App) GitHub(ctx context.Context) (*github.Repository, error) {
	if app.repo != nil {
		return app.repo, nil
	}

	owner, name, err := github.ParseUpstreamURL(app.Git)
	if err != nil {
		return nil, err
	}
	creds := github.NewCredentials(app.Git, app.Prompt)
	repo := github.NewRepository(owner, name, creds)

	task := "Make sure the GitHub repository exists"
	exists, err := repo.Exists(ctx)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	if !exists {
		return nil, errs.NewError(task, github.ErrRepositoryNotFound)
	}

	app.repo = repo
	return repo, nil
}

// OwnerName returns the name of the tracker member to own started stories.
func (app *App) OwnerName(fullName string) (string, error) {
	if fullName != "" {
		return fullName, nil
	}
	return app.Git.UserName()
}

// Fatal reports the error and exits. Canceled prompts are not errors.
func Fatal(err error) {
	if prompt.IsCanceled(err) {
		prompt.Canceled()
	}
	errs.Fatal(err)
}
