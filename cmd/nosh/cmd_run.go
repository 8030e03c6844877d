package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nosh-lang/nosh/internal/driver"
	"github.com/nosh-lang/nosh/internal/printer"
)

var runEntryFlag string

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and immediately execute a Nosh source file's entry function",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runEntryFlag, "entry", "main", "name of the function to execute")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	res := driver.Compile(path, string(src))
	reportErrors(res.Errors)

	if res.Module != nil && verbose > 0 {
		printer.New(os.Stderr).PrintModule(res.Module)
	}

	if !res.Ok() {
		return fmt.Errorf("run failed: %d error(s)", len(res.Errors))
	}

	result, err := driver.Run(res.IR, runEntryFlag)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}
