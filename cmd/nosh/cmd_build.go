package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nosh-lang/nosh/internal/driver"
	"github.com/nosh-lang/nosh/internal/printer"
)

var (
	emitFlag     string
	optLevelFlag int
	outputFlag   string
)

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Compile a Nosh source file to an object file, assembly, or LLVM IR",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&emitFlag, "emit", "object", "what to emit: object, asm, llvm, or ast")
	buildCmd.Flags().IntVar(&optLevelFlag, "opt-level", 0, "optimization level passed to clang/llc (0-3)")
	buildCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output path (defaults to stdout, or <file> with a derived extension)")
}

func runBuild(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("build failed: %d error(s)", len(res.Errors))
	}

	emit := driver.Emit(strings.ToLower(emitFlag))

	out, closeOut, err := openOutput(path, emit)
	if err != nil {
		return err
	}
	defer closeOut()

	if emit == driver.EmitAST {
		printer.New(out).PrintModule(res.Module)
		return nil
	}

	opts := driver.Options{
		Target:   driver.HostTarget,
		OptLevel: optLevelFlag,
		Emit:     emit,
		Verbose:  verbose > 0,
	}
	return driver.Build(res.IR, opts, out)
}

func openOutput(srcPath string, emit driver.Emit) (*os.File, func(), error) {
	if outputFlag == "" {
		if emit == driver.EmitLLVM || emit == driver.EmitAST {
			return os.Stdout, func() {}, nil
		}
		outputFlag = defaultOutputPath(srcPath, emit)
	}
	f, err := os.Create(outputFlag)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func defaultOutputPath(srcPath string, emit driver.Emit) string {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	switch emit {
	case driver.EmitAsm:
		return base + ".s"
	default:
		return base + ".o"
	}
}

func reportErrors(errs []error) {
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
}
