package main

import (
	// Stdlib
	"os"
	"os/signal"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/app/appflags"
	"github.com/donaldpiret/github-pivotal-flow/commands/finish"
	"github.com/donaldpiret/github-pivotal-flow/commands/info"
	"github.com/donaldpiret/github-pivotal-flow/commands/open"
	"github.com/donaldpiret/github-pivotal-flow/commands/publish"
	"github.com/donaldpiret/github-pivotal-flow/commands/start"
	"github.com/donaldpiret/github-pivotal-flow/commands/version"
	"github.com/donaldpiret/github-pivotal-flow/prompt"
	"github.com/donaldpiret/github-pivotal-flow/version"

	// Vendor
	"github.com/spf13/cobra"
)

func main() {
	// Initialise the application.
	flow := &cobra.Command{
		Use:     "github-pivotal-flow",
		Short:   "Pivotal Tracker stories meet GitHub pull requests",
		Version: version.Current,
		Long: `
  github-pivotal-flow is a git plugin taking care of the story branches
  of a git-flow repository. It starts Pivotal Tracker stories on their own
  branches, publishes them as GitHub pull requests and merges them back
  once finished.`,
		SilenceUsage: true,
	}

	// Register global flags.
	appflags.RegisterGlobalFlags(flow.PersistentFlags())

	// Register subcommands.
	flow.AddCommand(
		startCmd.Command,
		publishCmd.Command,
		finishCmd.Command,
		openCmd.Command,
		infoCmd.Command,
		versionCmd.Command,
	)

	// Start processing signals.
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt)
	go catchSignals(signalCh)

	// Run the application.
	if err := flow.Execute(); err != nil {
		os.Exit(2)
	}
}

// catchSignals treats Ctrl-C as canceling the operation in progress.
func catchSignals(ch chan os.Signal) {
	<-ch
	signal.Stop(ch)
	prompt.Canceled()
}
