package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nosh-lang/nosh/internal/ast"
	"github.com/nosh-lang/nosh/internal/driver"
	"github.com/nosh-lang/nosh/internal/irgen"
	"github.com/nosh-lang/nosh/internal/parser"
	"github.com/nosh-lang/nosh/internal/printer"
	"github.com/nosh-lang/nosh/internal/resolve"
)

const replEntryName = "__repl_line__"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Nosh session",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

// replLine accumulates source across Readline calls while a construct
// is left open (e.g. an unterminated `do ... end`), mirroring
// original_source's cli/repl.rs ReplState.
type replLine struct {
	buf        strings.Builder
	collecting bool
}

func (s *replLine) append(line string) {
	if s.buf.Len() > 0 {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(line)
}

func (s *replLine) reset() {
	s.buf.Reset()
	s.collecting = false
}

func runRepl(cmd *cobra.Command, args []string) error {
	historyPath := ".nosh_history"
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, ".nosh_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "nosh> ",
		HistoryFile:     historyPath,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	printBanner()

	var state replLine
	for {
		rl.SetPrompt(promptFor(state.collecting))
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			state.reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if !state.collecting && strings.TrimSpace(line) == ".exit" {
			return nil
		}

		state.append(line)
		evalLine(&state)
	}
}

func promptFor(collecting bool) string {
	if collecting {
		return "...> "
	}
	return "nosh> "
}

func printBanner() {
	banner := color.New(color.FgCyan, color.Bold)
	banner.Println("nosh — interactive session. Type .exit to quit.")
}

func evalLine(state *replLine) {
	src := state.buf.String()
	expr, nextID, err := parser.ParseLine(src)
	if errors.Is(err, parser.ErrIncomplete) {
		state.collecting = true
		return
	}
	state.reset()

	if err != nil {
		color.Red("error: %s", err)
		return
	}
	if expr == nil {
		return
	}

	mod := wrapAsModule(expr, nextID)

	if verbose > 0 {
		printer.New(os.Stderr).PrintModule(mod)
	}

	result, err := evalModule(mod)
	if err != nil {
		color.Red("error: %s", err)
		return
	}
	color.New(color.FgGreen).Printf("=> %v\n", result)
}

// evalModule runs the same pipeline a file would over a single-item
// module, grounded on original_source's build_anon_func/AnonFunction,
// which wraps a REPL line as an anonymous function body so the
// resolver and IR builder never need a REPL-specific code path.
func evalModule(mod *ast.Module) (float64, error) {
	resolved, rerrs := resolve.Resolve(mod)
	if len(rerrs) > 0 {
		return 0, fmt.Errorf("%s", joinErrors(rerrs))
	}

	irMod, ierrs := irgen.Generate(mod, resolved)
	if len(ierrs) > 0 {
		return 0, fmt.Errorf("%s", joinErrors(ierrs))
	}

	return driver.Run(irMod, replEntryName)
}

// wrapAsModule wraps expr as the body of an anonymous entry function.
// ids is seeded with nextID so the wrapper's own NodeIds never collide
// with IDs already assigned inside expr by the parser.
func wrapAsModule(expr ast.Expr, nextID ast.NodeId) *ast.Module {
	var ids ast.IdGen
	ids.Seed(nextID)

	body, ok := expr.(*ast.BlockExpr)
	if !ok {
		body = ast.NewBlock(ids.Next(), []ast.Expr{expr})
	}
	return &ast.Module{
		Items: []ast.Item{{
			Id: ids.Next(),
			Func: &ast.Function{
				Proto: ast.FuncProto{Name: replEntryName},
				Body:  body,
			},
		}},
	}
}

func joinErrors(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}
