package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the vettore-cli command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vettore-cli",
		Short:         "Exercise the vettore in-memory vector search engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newCreateCollectionCmd(),
		newInsertCmd(),
		newSearchCmd(),
		newMMRCmd(),
		newStatsCmd(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
