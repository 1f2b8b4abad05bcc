package appflags

import (
	// Internal
	"github.com/donaldpiret/github-pivotal-flow/flag"
	"github.com/donaldpiret/github-pivotal-flow/log"

	// Vendor
	"github.com/spf13/pflag"
)

var (
	FlagLog = flag.NewStringEnum(log.LevelStrings(), log.Info.String())

	// Pivotal Tracker overrides. These are used as given, never saved.
	FlagToken     string
	FlagProjectId int
)

func RegisterGlobalFlags(flags *pflag.FlagSet) {
	flags.Var(FlagLog, "log", "set logging verbosity")
}

func RegisterTrackerFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&FlagToken, "api-token", "t", FlagToken, "Pivotal Tracker API token")
	flags.IntVarP(&FlagProjectId, "project-id", "p", FlagProjectId, "Pivotal Tracker project ID")
}
