package cmd

import (
	"github.com/spf13/cobra"
)

// Version is overridden at startup from the embedded VERSION file.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "ordna",
	Short:   "Ordna sorts image files into a date-based library",
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

// ApplyVersion pushes the current Version value onto the root command.
func ApplyVersion() {
	rootCmd.Version = Version
}
