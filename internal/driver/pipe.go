package driver

import (
	"io"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// pipeThrough runs name(args...), writing input to its stdin and
// copying its stdout to out, writer and subprocess running
// concurrently via errgroup so a large input can't deadlock against
// a subprocess that starts producing output before it has read
// everything. Grounded directly on the teacher's pkg/compiler.go
// build method, which uses io.Pipe plus golang.org/x/sync/errgroup
// for exactly this reason; here cmd.StdinPipe() plays the io.Pipe's
// writer-side role.
func pipeThrough(input string, out io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	cmd.Stdout = out
	cmd.Stderr = os.Stderr

	var g errgroup.Group
	g.Go(func() error {
		defer stdin.Close()
		_, err := io.WriteString(stdin, input)
		return err
	})
	g.Go(cmd.Run)
	return g.Wait()
}
