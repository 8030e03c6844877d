package main

import (
	"github.com/spf13/cobra"
)

var verbose int

var rootCmd = &cobra.Command{
	Use:           "nosh",
	Short:         "Nosh: a small expression-oriented language compiled through LLVM",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v",
		"increase diagnostic detail (repeatable); dumps the AST when set")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = false
}

// Execute runs the root command with os.Args.
func Execute() error {
	return rootCmd.Execute()
}
