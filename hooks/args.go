package hooks

import (
	// Stdlib
	"fmt"
	"os"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/version"

	// Vendor
	"github.com/spf13/pflag"
)

// VersionFlag makes the hook print its version, so that an outdated hook
// can be told apart from a hook installed by somebody else.
const VersionFlag = "github-pivotal-flow-version"

// Args are the arguments git passes to the prepare-commit-msg hook.
type Args struct {
	MessageFile string

	// Source is one of message, template, merge, squash or commit.
	// It is empty for a plain git commit.
	Source string

	Commit string
}

// ParseArgs parses the hook command line. The version is printed
// and the process exits when the version flag is set.
func ParseArgs(args []string) (*Args, error) {
	flags := pflag.NewFlagSet(BinaryName, pflag.ContinueOnError)
	identify := flags.Bool(VersionFlag, false, "print the version and exit")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if *identify {
		fmt.Println(version.Current)
		os.Exit(0)
	}

	rest := flags.Args()
	if len(rest) < 1 || len(rest) > 3 {
		return nil, fmt.Errorf("usage: %v <message-file> [<source> [<commit>]]", BinaryName)
	}
	parsed := &Args{MessageFile: rest[0]}
	if len(rest) > 1 {
		parsed.Source = rest[1]
	}
	if len(rest) > 2 {
		parsed.Commit = rest[2]
	}
	return parsed, nil
}

// Skip returns true when git is reusing an existing message.
func (args *Args) Skip() bool {
	return args.Source == "commit" || args.Source == "merge"
}
