package hooks

import (
	// Stdlib
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/action"
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/log"
	"github.com/donaldpiret/github-pivotal-flow/shell"
	"github.com/donaldpiret/github-pivotal-flow/version"

	// Vendor
	"github.com/kardianos/osext"
)

const (
	// HookName is the git hook the story reference is added by.
	HookName = "prepare-commit-msg"

	// BinaryName is the hook executable shipped next to the main binary.
	BinaryName = "github-pivotal-flow-prepare-commit-msg"
)

// Repository is where the hook is installed.
type Repository interface {
	RepositoryRoot() (string, error)
	AddHook(name, source string, overwrite bool) (action.Action, error)
}

// hookBinary returns the path of the hook executable.
// It is expected in the same directory as the running executable.
var hookBinary = func() (string, error) {
	binDir, err := osext.ExecutableFolder()
	if err != nil {
		return "", err
	}
	name := BinaryName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(binDir, name), nil
}

// Install copies the hook executable into the repository.
// A hook of an older version is replaced, a foreign hook is never touched.
// The returned action removes what was installed.
func Install(repo Repository) (action.Action, error) {
	task := fmt.Sprintf("Install the git %v hook", HookName)
	root, err := repo.RepositoryRoot()
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	hookPath := filepath.Join(root, ".git", "hooks", HookName)

	overwrite := false
	if _, err := os.Stat(hookPath); err == nil {
		installed, ours := installedVersion(hookPath)
		switch {
		case installed == version.Current:
			log.V(log.Verbose).Skip(fmt.Sprintf("Git %v hook is up to date", HookName))
			return action.Noop, nil
		case ours:
			overwrite = true
		default:
			log.Warn(fmt.Sprintf("Git %v hook exists already and is kept", HookName))
			log.NewLine("Story references will not be added to commit messages.")
			return action.Noop, nil
		}
	}

	bin, err := hookBinary()
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	if _, err := os.Stat(bin); err != nil {
		hint := fmt.Sprintf("\nMake sure %v is installed next to the main executable.\n\n", BinaryName)
		return nil, errs.NewErrorWithHint(task, err, hint)
	}

	act, err := repo.AddHook(HookName, bin, overwrite)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	log.V(log.Verbose).Log(fmt.Sprintf("Git %v hook installed", HookName))
	return act, nil
}

// installedVersion asks the installed hook for its version.
// Hooks not answering with a version are not ours.
func installedVersion(hookPath string) (string, bool) {
	stdout, _, err := shell.Run(hookPath, "--"+VersionFlag)
	if err != nil {
		return "", false
	}
	installed := strings.TrimSpace(stdout.String())
	return installed, version.IsVersion(installed)
}
