package story

import (
	// Stdlib
	"fmt"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/config"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/git"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/modules/pivotaltracker"
	"github.com/donaldpiret/github-pivotal-flow/prompt"
	"github.com/donaldpiret/github-pivotal-flow/version"

	// Vendor
	"github.com/gosimple/slug"
)

const miscPrefix = "misc/"

// Git is the part of the git gateway the lifecycle needs.
type Git interface {
	CurrentBranch() (string, error)
	Checkout(name string) error
	BranchExists(name string) bool
	CreateBranch(name, startPoint string, opts *git.BranchOptions) error
	DeleteBranch(name string, opts *git.DeleteOptions) error
	Remote() (string, error)
	PullRemote(branch string) error
	Merge(name string, opts *git.MergeOptions) error
	Push(opts *git.PushOptions, refs ...string) error
	PushTags() error
	DeleteRemoteBranch(name string) error
	Tag(name string, opts *git.TagOptions) error
	RevParse(ref string) (string, error)
	MergeBase(a, b string) (string, error)
	GetBranchConfig(branch, key string) (string, error)
	SetBranchConfig(branch, key, value string) error
	CleanWorkingTree() error
}

// Lifecycle moves a story branch through its life:
// creation off the root branch, merging back and cleanup.
type Lifecycle struct {
	Story *Story

	// Hotfix forces the story to be based on master.
	Hotfix bool

	// RootBranchOverride takes precedence over any other root branch rule.
	RootBranchOverride string

	git   Git
	flow  *config.Flow
	asker prompt.Asker

	branchName string
}

func NewLifecycle(story *Story, gateway Git, flow *config.Flow, asker prompt.Asker) *Lifecycle {
	return &Lifecycle{
		Story: story,
		git:   gateway,
		flow:  flow,
		asker: asker,
	}
}

// ForBranch returns the lifecycle of an existing story branch,
// restoring the root branch recorded when it was created.
func ForBranch(story *Story, branch string, gateway Git, flow *config.Flow) (*Lifecycle, error) {
	task := fmt.Sprintf("Load story branch '%v'", branch)
	lifecycle := NewLifecycle(story, gateway, flow, nil)
	lifecycle.branchName = branch

	root, err := gateway.GetBranchConfig(branch, config.KeyRootBranch.Name)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	lifecycle.RootBranchOverride = root
	return lifecycle, nil
}

// RootBranch returns the branch the story branch is based on.
func (lifecycle *Lifecycle) RootBranch() string {
	switch {
	case lifecycle.RootBranchOverride != "":
		return lifecycle.RootBranchOverride
	case lifecycle.Hotfix:
		return lifecycle.flow.MasterBranch
	}

	switch lifecycle.Story.Type() {
	case pivotaltracker.StoryTypeChore:
		return lifecycle.flow.MasterBranch
	case pivotaltracker.StoryTypeBug:
		if lifecycle.Story.HasLabel(HotfixLabel) {
			return lifecycle.flow.MasterBranch
		}
		return lifecycle.flow.DevelopmentBranch
	default:
		return lifecycle.flow.DevelopmentBranch
	}
}

// BranchPrefix returns the prefix of the story branch, ending with a slash.
func (lifecycle *Lifecycle) BranchPrefix() string {
	flow := lifecycle.flow
	if lifecycle.Hotfix {
		return config.NormalizePrefix(flow.HotfixPrefix)
	}

	switch lifecycle.Story.Type() {
	case pivotaltracker.StoryTypeFeature:
		return config.NormalizePrefix(flow.FeaturePrefix)
	case pivotaltracker.StoryTypeBug:
		if lifecycle.Story.HasLabel(HotfixLabel) {
			return config.NormalizePrefix(flow.HotfixPrefix)
		}
		return config.NormalizePrefix(flow.FeaturePrefix)
	case pivotaltracker.StoryTypeRelease:
		return config.NormalizePrefix(flow.ReleasePrefix)
	default:
		return miscPrefix
	}
}

// BranchName returns the name of the story branch, asking for the
// descriptive suffix the first time it is needed.
func (lifecycle *Lifecycle) BranchName() (string, error) {
	if lifecycle.branchName != "" {
		return lifecycle.branchName, nil
	}

	suffix, err := lifecycle.branchSuffix()
	if err != nil {
		return "", errs.NewError("Get the story branch name", err)
	}
	lifecycle.branchName = lifecycle.branchNameFrom(suffix)
	return lifecycle.branchName, nil
}

// SetBranchSuffix sets the suffix so that it is not asked for.
func (lifecycle *Lifecycle) SetBranchSuffix(suffix string) {
	lifecycle.branchName = lifecycle.branchNameFrom(slug.Make(suffix))
}

func (lifecycle *Lifecycle) branchNameFrom(suffix string) string {
	prefix := lifecycle.BranchPrefix()
	if lifecycle.Story.IsRelease() {
		return prefix + suffix
	}

	name := fmt.Sprintf("%v%v", prefix, lifecycle.Story.Id())
	if suffix != "" {
		name += "-" + suffix
	}
	return name
}

func (lifecycle *Lifecycle) branchSuffix() (string, error) {
	if lifecycle.Story.IsRelease() {
		return lifecycle.releaseVersion()
	}

	question := fmt.Sprintf("Enter branch name (%v): ", lifecycle.branchNameFrom("<branch-name>"))
	answer, err := lifecycle.asker.Prompt(question)
	if err != nil {
		return "", err
	}
	return slug.Make(answer), nil
}

// releaseVersion returns the version the release is named after.
// Releases are usually called like the version, e.g. "5.0".
func (lifecycle *Lifecycle) releaseVersion() (string, error) {
	if v, err := version.Parse(lifecycle.Story.Name()); err == nil {
		return v.Name(), nil
	}

	for {
		question := fmt.Sprintf("Enter release version (%v): ", lifecycle.branchNameFrom("<version>"))
		answer, err := lifecycle.asker.Prompt(question)
		if err != nil {
			return "", err
		}
		v, err := version.Parse(answer)
		if err != nil {
			log.Warn(fmt.Sprintf("'%v' is not a valid version", strings.TrimSpace(answer)))
			continue
		}
		return v.Name(), nil
	}
}

// TagName returns the name of the release tag, the release version.
func (lifecycle *Lifecycle) TagName() (string, error) {
	name, err := lifecycle.BranchName()
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(name, lifecycle.BranchPrefix()), nil
}

// CreateBranch creates the story branch off the up-to-date root branch
// and checks it out. The root branch and remote are recorded in the
// branch config. An existing branch is only checked out, keeping the
// root branch recorded for it.
func (lifecycle *Lifecycle) CreateBranch() error {
	gateway := lifecycle.git
	root := lifecycle.RootBranch()
	name, err := lifecycle.BranchName()
	if err != nil {
		return err
	}

	if gateway.BranchExists(name) {
		task := fmt.Sprintf("Check out existing branch '%v'", name)
		log.Skip(fmt.Sprintf("Branch '%v' exists already", name))
		if err := gateway.Checkout(name); err != nil {
			return errs.NewError(task, err)
		}
		return nil
	}

	task := fmt.Sprintf("Create branch '%v' from '%v'", name, root)
	log.Run(task)

	if err := gateway.Checkout(root); err != nil {
		return errs.NewError(task, err)
	}
	remote, err := gateway.Remote()
	if err != nil {
		return errs.NewError(task, err)
	}
	if err := gateway.PullRemote(root); err != nil {
		return errs.NewError(task, err)
	}

	startPoint := root
	if remote != "" {
		startPoint = remote + "/" + root
	}
	if err := gateway.CreateBranch(name, startPoint, &git.BranchOptions{Track: remote != ""}); err != nil {
		return errs.NewError(task, err)
	}
	if err := gateway.Checkout(name); err != nil {
		return errs.NewError(task, err)
	}

	if err := gateway.SetBranchConfig(name, config.KeyRootBranch.Name, root); err != nil {
		return errs.NewError(task, err)
	}
	if remote != "" {
		if err := gateway.SetBranchConfig(name, config.KeyRootRemote.Name, remote); err != nil {
			return errs.NewError(task, err)
		}
	}
	return nil
}

// TrivialMerge returns true when target has not moved since
// the story branch forked off, so the merge is a fast-forward.
func (lifecycle *Lifecycle) TrivialMerge(target string) (bool, error) {
	name, err := lifecycle.BranchName()
	if err != nil {
		return false, err
	}
	return lifecycle.trivialMerge(target, name)
}

func (lifecycle *Lifecycle) trivialMerge(target, source string) (bool, error) {
	task := fmt.Sprintf("Check whether merging '%v' into '%v' is trivial", source, target)
	tip, err := lifecycle.git.RevParse(target)
	if err != nil {
		return false, errs.NewError(task, err)
	}
	base, err := lifecycle.git.MergeBase(target, source)
	if err != nil {
		return false, errs.NewError(task, err)
	}
	return tip == base, nil
}

// CommitMessage returns the merge commit message with the story reference appended.
func (lifecycle *Lifecycle) CommitMessage(message string, noComplete bool) (string, error) {
	if strings.TrimSpace(message) == "" {
		if lifecycle.Story.IsRelease() {
			message = "Release " + escapeQuotes(lifecycle.Story.Name())
		} else {
			name, err := lifecycle.BranchName()
			if err != nil {
				return "", err
			}
			message = fmt.Sprintf("Merge %v to %v", name, lifecycle.RootBranch())
		}
	}

	return lifecycle.withReference(message, noComplete), nil
}

// withReference appends the story reference to the message.
// Pivotal Tracker finishes the story on [Completes #id].
func (lifecycle *Lifecycle) withReference(message string, noComplete bool) string {
	reference := "Completes " + lifecycle.Story.ReadableId()
	if noComplete {
		reference = lifecycle.Story.ReadableId()
	}
	return fmt.Sprintf("%v\n\n[%v]", message, reference)
}

// CanMerge returns an error when the working tree is not clean.
func (lifecycle *Lifecycle) CanMerge() error {
	return lifecycle.git.CleanWorkingTree()
}

// MergeToRoot merges the story branch into its root branch and pushes it.
// Anything merged into master is merged into the development branch as well.
// The story branch is deleted afterwards, locally and from the remote.
func (lifecycle *Lifecycle) MergeToRoot(message string, noComplete bool) error {
	gateway := lifecycle.git
	root := lifecycle.RootBranch()
	name, err := lifecycle.BranchName()
	if err != nil {
		return err
	}
	message, err = lifecycle.CommitMessage(message, noComplete)
	if err != nil {
		return err
	}

	task := fmt.Sprintf("Merge '%v' into '%v'", name, root)
	if err := gateway.Checkout(root); err != nil {
		return errs.NewError(task, err)
	}
	if err := gateway.PullRemote(root); err != nil {
		return errs.NewError(task, err)
	}
	if err := gateway.Merge(name, &git.MergeOptions{CommitMessage: message, NoFF: true}); err != nil {
		return errs.NewError(task, err)
	}
	if err := gateway.Push(nil, root); err != nil {
		return errs.NewError(task, err)
	}

	if master := lifecycle.flow.MasterBranch; root == master {
		development := lifecycle.flow.DevelopmentBranch
		message := lifecycle.withReference(fmt.Sprintf("Merge %v to %v", master, development), noComplete)
		if err := lifecycle.mergeInto(development, master, message); err != nil {
			return err
		}
		if err := gateway.Push(nil, development); err != nil {
			return errs.NewError(task, err)
		}
	}

	if err := lifecycle.DeleteBranch(); err != nil {
		return err
	}
	return lifecycle.Cleanup()
}

// MergeRelease merges the release branch into master and development,
// tags the release on master and pushes everything.
func (lifecycle *Lifecycle) MergeRelease(message string, noComplete bool) error {
	gateway := lifecycle.git
	var (
		master      = lifecycle.flow.MasterBranch
		development = lifecycle.flow.DevelopmentBranch
	)
	name, err := lifecycle.BranchName()
	if err != nil {
		return err
	}
	tag, err := lifecycle.TagName()
	if err != nil {
		return err
	}
	message, err = lifecycle.CommitMessage(message, noComplete)
	if err != nil {
		return err
	}

	if err := lifecycle.mergeInto(master, name, message); err != nil {
		return err
	}
	if err := lifecycle.mergeInto(development, name, message); err != nil {
		return err
	}

	task := fmt.Sprintf("Tag release '%v'", tag)
	if err := gateway.Checkout(master); err != nil {
		return errs.NewError(task, err)
	}
	if err := gateway.Tag(tag, &git.TagOptions{
		Annotated: true,
		Message:   "Release " + escapeQuotes(lifecycle.Story.Name()),
	}); err != nil {
		return errs.NewError(task, err)
	}

	task = fmt.Sprintf("Push release '%v'", tag)
	if err := gateway.Push(nil, master, development); err != nil {
		return errs.NewError(task, err)
	}
	if err := gateway.PushTags(); err != nil {
		return errs.NewError(task, err)
	}

	if err := lifecycle.DeleteBranch(); err != nil {
		return err
	}
	return lifecycle.Cleanup()
}

// mergeInto brings target up to date and merges source into it,
// fast-forwarding when possible and creating a merge commit otherwise.
func (lifecycle *Lifecycle) mergeInto(target, source, message string) error {
	gateway := lifecycle.git
	task := fmt.Sprintf("Merge '%v' into '%v'", source, target)
	if err := gateway.Checkout(target); err != nil {
		return errs.NewError(task, err)
	}
	if err := gateway.PullRemote(target); err != nil {
		return errs.NewError(task, err)
	}

	trivial, err := lifecycle.trivialMerge(target, source)
	if err != nil {
		return errs.NewError(task, err)
	}
	opts := &git.MergeOptions{CommitMessage: message, NoFF: !trivial, FF: trivial}
	if err := gateway.Merge(source, opts); err != nil {
		return errs.NewError(task, err)
	}
	return nil
}

// DeleteBranch force-deletes the local story branch.
func (lifecycle *Lifecycle) DeleteBranch() error {
	name, err := lifecycle.BranchName()
	if err != nil {
		return err
	}
	return lifecycle.git.DeleteBranch(name, &git.DeleteOptions{Force: true})
}

// Cleanup deletes the story branch from the remote.
func (lifecycle *Lifecycle) Cleanup() error {
	name, err := lifecycle.BranchName()
	if err != nil {
		return err
	}
	return lifecycle.git.DeleteRemoteBranch(name)
}

func escapeQuotes(s string) string {
	return strings.Replace(s, `"`, `\"`, -1)
}
