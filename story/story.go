package story

import (
	// Stdlib
	"context"
	"errors"
	"strconv"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/modules/pivotaltracker"
)

// HotfixLabel marks bugs that are to be fixed on top of master.
const HotfixLabel = "hotfix"

var ErrNoStory = errors.New("no story associated with the current branch")

// Tracker is the issue tracker the stories live in.
type Tracker interface {
	Story(ctx context.Context, storyId int) (*pivotaltracker.Story, error)
	CandidateStories(ctx context.Context, types []string, limit int) ([]*pivotaltracker.Story, error)
	UpdateStory(ctx context.Context, storyId int, req *pivotaltracker.StoryRequest) (*pivotaltracker.Story, error)
	Notes(ctx context.Context, storyId int) ([]*pivotaltracker.Comment, error)
	MemberByName(ctx context.Context, name string) (*pivotaltracker.Person, error)
}

// Story is a Pivotal Tracker story together with the tracker it belongs to.
type Story struct {
	record  *pivotaltracker.Story
	tracker Tracker
}

func New(record *pivotaltracker.Story, tracker Tracker) *Story {
	return &Story{record, tracker}
}

// Get fetches the story of the given id.
func Get(ctx context.Context, tracker Tracker, storyId int) (*Story, error) {
	record, err := tracker.Story(ctx, storyId)
	if err != nil {
		return nil, err
	}
	return New(record, tracker), nil
}

func (story *Story) Id() int {
	return story.record.Id
}

// ReadableId returns the id the way it is referenced in commit messages.
func (story *Story) ReadableId() string {
	return "#" + strconv.Itoa(story.record.Id)
}

func (story *Story) Name() string {
	return story.record.Name
}

func (story *Story) Description() string {
	return story.record.Description
}

func (story *Story) Type() string {
	return story.record.Type
}

func (story *Story) State() string {
	return story.record.State
}

func (story *Story) URL() string {
	return story.record.URL
}

// Labels returns the label names. Names containing commas are split.
func (story *Story) Labels() []string {
	var labels []string
	for _, label := range story.record.Labels {
		if label == nil {
			continue
		}
		for _, name := range strings.Split(label.Name, ",") {
			if name = strings.TrimSpace(name); name != "" {
				labels = append(labels, name)
			}
		}
	}
	return labels
}

func (story *Story) HasLabel(label string) bool {
	for _, l := range story.Labels() {
		if l == label {
			return true
		}
	}
	return false
}

// Estimate returns the story points, -1 meaning unestimated.
func (story *Story) Estimate() int {
	if story.record.Estimate == nil {
		return -1
	}
	return int(*story.record.Estimate)
}

func (story *Story) IsRelease() bool {
	return story.record.Type == pivotaltracker.StoryTypeRelease
}

// IsUnestimated returns true for features that still need an estimate.
// Only features are pointed in Pivotal Tracker by default.
func (story *Story) IsUnestimated() bool {
	return story.record.Type == pivotaltracker.StoryTypeFeature && story.Estimate() == -1
}

// Update sends the changes to the tracker and refreshes the story.
func (story *Story) Update(ctx context.Context, req *pivotaltracker.StoryRequest) error {
	record, err := story.tracker.UpdateStory(ctx, story.record.Id, req)
	if err != nil {
		return err
	}
	story.record = record
	return nil
}

// Notes returns the story comments ordered by time.
func (story *Story) Notes(ctx context.Context) ([]*pivotaltracker.Comment, error) {
	return story.tracker.Notes(ctx, story.record.Id)
}

// MarkStarted moves the story to the started state and makes
// the tracker member called ownerName its owner.
func (story *Story) MarkStarted(ctx context.Context, ownerName string) error {
	task := "Start story " + story.ReadableId()
	owner, err := story.tracker.MemberByName(ctx, ownerName)
	if err != nil {
		return errs.NewError(task, err)
	}

	ownerIds := []int{owner.Id}
	if err := story.Update(ctx, &pivotaltracker.StoryRequest{
		State:    pivotaltracker.StoryStateStarted,
		OwnerIds: &ownerIds,
	}); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// SetEstimate sets the story points.
func (story *Story) SetEstimate(ctx context.Context, points float64) error {
	task := "Estimate story " + story.ReadableId()
	if err := story.Update(ctx, &pivotaltracker.StoryRequest{Estimate: &points}); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}
