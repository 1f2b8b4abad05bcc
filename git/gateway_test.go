package git

import (
	// Stdlib
	"io/ioutil"
	"os"
	"path/filepath"
)

var _ = Describe("Gateway", func() {

	var (
		fake    *fakeGit
		gateway *Gateway
	)

	BeforeEach(func() {
		fake = newFakeGit()
		fake.current = "feature/42-login"
		gateway = NewGateway(fake)
	})

	Describe("CurrentBranch", func() {

		It("returns the marked branch", func() {
			branch, err := gateway.CurrentBranch()
			Expect(err).To(BeNil())
			Expect(branch).To(Equal("feature/42-login"))
		})

		It("fails when no branch is marked", func() {
			fake.on("branch", reply{stdout: "  master\n  development\n"})
			_, err := gateway.CurrentBranch()
			Expect(err).To(MatchError(ErrNoCurrentBranch))
		})

		It("fails on a detached HEAD", func() {
			fake.on("branch", reply{stdout: "* (HEAD detached at 1a2b3c4)\n  master\n"})
			_, err := gateway.CurrentBranch()
			Expect(err).To(MatchError(ErrNoCurrentBranch))
		})
	})

	Describe("Checkout", func() {

		It("does nothing for the current branch", func() {
			Expect(gateway.Checkout("feature/42-login")).To(Succeed())
			Expect(fake.commandLines()).To(Equal([]string{"branch"}))
		})

		It("checks out another branch", func() {
			Expect(gateway.Checkout("master")).To(Succeed())
			Expect(fake.commandLines()).To(ContainElement("checkout --quiet master"))
		})
	})

	Describe("CreateBranch", func() {

		It("creates a tracking branch", func() {
			fake.on("show-ref --quiet --verify refs/heads/feature/7", reply{err: errExit})
			err := gateway.CreateBranch("feature/7", "origin/development", &BranchOptions{Track: true})
			Expect(err).To(BeNil())
			Expect(fake.commandLines()).To(ContainElement(
				"branch --quiet --track feature/7 origin/development"))
		})

		It("is a no-op when the branch exists", func() {
			err := gateway.CreateBranch("feature/7", "origin/development", &BranchOptions{Track: true})
			Expect(err).To(BeNil())
			Expect(fake.commandLines()).To(Equal([]string{
				"show-ref --quiet --verify refs/heads/feature/7",
			}))
		})
	})

	Describe("EnsureBranchExists", func() {

		It("swallows failures", func() {
			fake.on("show-ref --quiet --verify refs/heads/development", reply{err: errExit})
			fake.on("branch --quiet development", reply{stderr: "fatal: boom", err: errExit})
			gateway.EnsureBranchExists("development")
			Expect(fake.commandLines()).To(ContainElement("branch --quiet development"))
		})

		It("creates a missing branch only once", func() {
			fake.on("show-ref --quiet --verify refs/heads/development", reply{err: errExit})
			gateway.EnsureBranchExists("development")
			fake.on("show-ref --quiet --verify refs/heads/development", reply{})
			gateway.EnsureBranchExists("development")

			created := 0
			for _, line := range fake.commandLines() {
				if line == "branch --quiet development" {
					created++
				}
			}
			Expect(created).To(Equal(1))
		})

		It("never recreates the current branch", func() {
			fake.on("show-ref --quiet --verify refs/heads/feature/42-login", reply{err: errExit})
			gateway.EnsureBranchExists("feature/42-login")
			gateway.EnsureBranchExists("feature/42-login")
			Expect(fake.commandLines()).NotTo(ContainElement(HavePrefix("branch --quiet")))
		})
	})

	Describe("Remote", func() {

		It("prefers the branch remote", func() {
			fake.on("config --local --get branch.feature/42-login.remote", reply{stdout: "upstream\n"})
			Expect(gateway.Remote()).To(Equal("upstream"))
		})

		It("falls back to the only remote", func() {
			fake.on("config --local --get branch.feature/42-login.remote", reply{err: errExit})
			fake.on("remote", reply{stdout: "fork\n"})
			Expect(gateway.Remote()).To(Equal("fork"))
		})

		It("picks origin out of several remotes", func() {
			fake.on("config --local --get branch.feature/42-login.remote", reply{err: errExit})
			fake.on("remote", reply{stdout: "fork\norigin\n"})
			Expect(gateway.Remote()).To(Equal("origin"))
		})

		It("returns nothing without remotes", func() {
			Expect(gateway.Remote()).To(Equal(""))
		})
	})

	Describe("PullRemote", func() {

		BeforeEach(func() {
			fake.on("remote", reply{stdout: "origin\n"})
		})

		It("pulls the branch and restores the current branch", func() {
			Expect(gateway.PullRemote("development")).To(Succeed())
			Expect(fake.commandLines()).To(ContainElement(
				"pull --quiet --ff-only origin development"))
			Expect(fake.current).To(Equal("feature/42-login"))
		})

		It("restores the current branch when the pull fails", func() {
			fake.on("pull --quiet --ff-only origin development",
				reply{stderr: "fatal: Not possible to fast-forward", err: errExit})
			Expect(gateway.PullRemote("development")).ToNot(Succeed())
			Expect(fake.current).To(Equal("feature/42-login"))
		})

		It("skips the pull without a remote", func() {
			fake.on("remote", reply{})
			Expect(gateway.PullRemote("")).To(Succeed())
			for _, line := range fake.commandLines() {
				Expect(line).ToNot(HavePrefix("pull"))
			}
		})
	})

	Describe("pushing", func() {

		BeforeEach(func() {
			fake.on("remote", reply{stdout: "origin\n"})
		})

		It("sets the upstream when asked to", func() {
			Expect(gateway.Push(&PushOptions{SetUpstream: true}, "feature/42-login")).To(Succeed())
			Expect(fake.commandLines()).To(ContainElement("push --quiet -u origin feature/42-login"))
		})

		It("pushes tags", func() {
			Expect(gateway.PushTags()).To(Succeed())
			Expect(fake.commandLines()).To(ContainElement("push --quiet --tags origin"))
		})

		It("deletes remote branches", func() {
			Expect(gateway.DeleteRemoteBranch("feature/42-login")).To(Succeed())
			Expect(fake.commandLines()).To(ContainElement("push --quiet origin --delete feature/42-login"))
		})

		It("fails without a remote", func() {
			fake.on("remote", reply{})
			Expect(gateway.PushTags()).To(MatchError(ErrNoRemote))
		})
	})

	Describe("Merge", func() {

		It("passes the options as separate arguments", func() {
			err := gateway.Merge("feature/42-login", &MergeOptions{
				NoFF:          true,
				CommitMessage: "Merge feature/42-login to development\n\n[Completes #42]",
			})
			Expect(err).To(BeNil())
			Expect(fake.calls).To(ContainElement([]string{
				"merge", "--quiet", "--no-ff", "-m",
				"Merge feature/42-login to development\n\n[Completes #42]",
				"feature/42-login",
			}))
		})

		It("reports conflicts", func() {
			fake.on("merge --quiet --ff master", reply{stdout: "CONFLICT (content)", err: errExit})
			Expect(gateway.Merge("master", &MergeOptions{FF: true})).ToNot(Succeed())
		})
	})

	Describe("Commit", func() {

		It("creates an empty commit", func() {
			Expect(gateway.Commit(&CommitOptions{Message: "Start story", AllowEmpty: true})).To(Succeed())
			Expect(fake.calls).To(ContainElement([]string{
				"commit", "--quiet", "--allow-empty", "-m", "Start story"}))
		})

		It("leaves the message to git when there is none", func() {
			Expect(gateway.Commit(nil)).To(Succeed())
			Expect(gateway.Commit(&CommitOptions{})).To(Succeed())
			Expect(fake.commandLines()).To(Equal([]string{"commit --quiet", "commit --quiet"}))
		})
	})

	Describe("Tag", func() {

		It("creates an annotated tag", func() {
			Expect(gateway.Tag("5.0", &TagOptions{Annotated: true, Message: "Release 5.0"})).To(Succeed())
			Expect(fake.calls).To(ContainElement([]string{"tag", "-a", "-m", "Release 5.0", "5.0"}))
		})
	})

	Describe("config", func() {

		It("reads a missing key as empty", func() {
			fake.on("config --global --get pivotal.api-token", reply{err: errExit})
			value, err := gateway.GetConfig("pivotal.api-token", ScopeGlobal)
			Expect(err).To(BeNil())
			Expect(value).To(BeEmpty())
		})

		It("fails on a broken config file", func() {
			fake.on("config --local --get pivotal.project-id",
				reply{stderr: "fatal: bad config line 3", err: errExit})
			_, err := gateway.GetConfig("pivotal.project-id", ScopeLocal)
			Expect(err).To(HaveOccurred())
		})

		It("stores branch keys under the current branch", func() {
			Expect(gateway.SetConfig("pivotal-story-id", "42", ScopeBranch)).To(Succeed())
			Expect(fake.calls).To(ContainElement([]string{
				"config", "--local", "branch.feature/42-login.pivotal-story-id", "42",
			}))
		})

		It("writes inherited keys locally", func() {
			Expect(gateway.SetConfig("gitflow.branch.master", "main", ScopeInherited)).To(Succeed())
			Expect(fake.commandLines()).To(ContainElement("config --local gitflow.branch.master main"))
		})

		It("rejects unknown scopes", func() {
			_, err := gateway.GetConfig("user.name", Scope(42))
			Expect(err).To(MatchError(ErrUnknownScope))
		})
	})

	Describe("CleanWorkingTree", func() {

		It("detects unstaged changes", func() {
			fake.on("diff --no-ext-diff --ignore-submodules --quiet --exit-code", reply{err: errExit})
			Expect(gateway.CleanWorkingTree()).To(MatchError(ErrUnstagedChanges))
		})

		It("detects uncommitted changes", func() {
			fake.on("diff-index --cached --quiet --ignore-submodules HEAD --", reply{err: errExit})
			Expect(gateway.CleanWorkingTree()).To(MatchError(ErrUncommittedChanges))
		})

		It("accepts a clean tree", func() {
			Expect(gateway.CleanWorkingTree()).To(Succeed())
		})
	})

	Describe("repository files", func() {

		var root, source string

		BeforeEach(func() {
			var err error
			root, err = ioutil.TempDir("", "gateway")
			Expect(err).To(BeNil())

			Expect(os.Mkdir(filepath.Join(root, ".git"), 0755)).To(Succeed())
			Expect(os.MkdirAll(filepath.Join(root, "src", "pkg"), 0755)).To(Succeed())

			source = filepath.Join(root, "hook.sh")
			Expect(ioutil.WriteFile(source, []byte("#!/bin/sh\n"), 0644)).To(Succeed())

			gateway.Dir = filepath.Join(root, "src", "pkg")
		})

		AfterEach(func() {
			os.RemoveAll(root)
		})

		It("finds the repository root", func() {
			Expect(gateway.RepositoryRoot()).To(Equal(root))
		})

		It("fails outside of a repository", func() {
			_, err := RepositoryRootFrom(string(filepath.Separator))
			Expect(err).To(MatchError(ErrNotRepository))
		})

		It("installs an executable hook", func() {
			_, err := gateway.AddHook("prepare-commit-msg", source, false)
			Expect(err).To(BeNil())

			info, err := os.Stat(filepath.Join(root, ".git", "hooks", "prepare-commit-msg"))
			Expect(err).To(BeNil())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0755)))
		})

		It("keeps an existing hook", func() {
			hook := filepath.Join(root, ".git", "hooks", "prepare-commit-msg")
			Expect(os.MkdirAll(filepath.Dir(hook), 0755)).To(Succeed())
			Expect(ioutil.WriteFile(hook, []byte("custom"), 0755)).To(Succeed())

			_, err := gateway.AddHook("prepare-commit-msg", source, false)
			Expect(err).To(BeNil())
			Expect(ioutil.ReadFile(hook)).To(Equal([]byte("custom")))

			_, err = gateway.AddHook("prepare-commit-msg", source, true)
			Expect(err).To(BeNil())
			Expect(ioutil.ReadFile(hook)).To(Equal([]byte("#!/bin/sh\n")))
		})

		It("removes the hook on rollback", func() {
			act, err := gateway.AddHook("prepare-commit-msg", source, false)
			Expect(err).To(BeNil())
			Expect(act.Rollback()).To(Succeed())
			_, err = os.Stat(filepath.Join(root, ".git", "hooks"))
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})
})
