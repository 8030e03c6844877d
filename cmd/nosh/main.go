// Command nosh is the Nosh compiler driver: lex, parse, resolve, and
// either emit an artifact (build), JIT-execute it (run), explore it
// interactively (repl). The check subcommand is reserved and reports
// that it is not implemented.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
