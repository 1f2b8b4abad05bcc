package versionCmd

import (
	// Stdlib
	"fmt"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/version"

	// Vendor
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "version",
	Short: "print the version of github-pivotal-flow",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Current)
	},
}
