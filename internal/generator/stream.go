package generator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"
)

const maxLineSize = 1024 * 1024

// runPipes attaches line readers to stdout and stderr. Both readers are
// drained before Wait so no output is lost and the pipes are closed on
// every path.
func runPipes(cmd *exec.Cmd, sink Sink) error {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("attach stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("attach stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error { return scanLines(stdout, sink.Stdout) })
	g.Go(func() error { return scanLines(stderr, sink.Stderr) })
	streamErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		return err
	}
	return streamErr
}

// runPTY runs the command on a pseudo-terminal. The terminal is closed when
// the process exits.
func runPTY(cmd *exec.Cmd, sink Sink) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer ptmx.Close()

	streamErr := scanLines(ptmx, sink.Stdout)
	// Linux reports EIO on the master once the child side closes.
	if errors.Is(streamErr, syscall.EIO) {
		streamErr = nil
	}

	if err := cmd.Wait(); err != nil {
		return err
	}
	return streamErr
}

// scanLines emits every non-blank line read from r. On a read error the rest
// of r is discarded so the writer never blocks on a full pipe.
func scanLines(r io.Reader, emit func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) != "" {
			emit(line)
		}
	}
	if err := scanner.Err(); err != nil {
		io.Copy(io.Discard, r)
		return err
	}
	return nil
}
