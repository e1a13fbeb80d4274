package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/barisgit/ngx-electron/internal/project"
)

// DefaultCommand is the Angular CLI executable.
const DefaultCommand = "ng"

// ProcessSpawnError reports a generator that could not be started or that
// exited unsuccessfully.
type ProcessSpawnError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ProcessSpawnError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *ProcessSpawnError) Unwrap() error {
	return e.Err
}

// Sink receives the generator's output one line at a time.
type Sink interface {
	Stdout(line string)
	Stderr(line string)
}

// Generator produces the stock project tree for a descriptor.
type Generator interface {
	Generate(ctx context.Context, desc project.Descriptor) error
}

// NewArgs returns the fixed argument list passed to `ng new`: no prompts, no
// install, no git, no tests, and pinned style/strict/routing options.
func NewArgs(projectName string, extra ...string) []string {
	args := []string{
		"new",
		projectName,
		"--interactive=false",
		"--skip-install=true",
		"--commit=false",
		"--style=scss",
		"--strict=true",
		"--routing=true",
		"--minimal=true",
		"--force=true",
		"--inline-template=false",
		"--inline-style=false",
		"--skip-git=true",
		"--skip-tests=true",
	}
	return append(args, extra...)
}

// AngularCLI runs `ng new` in the descriptor's working directory.
type AngularCLI struct {
	Command   string
	ExtraArgs []string
	Env       []string
	PTY       bool
	Sink      Sink
}

// Spec returns the process Generate runs for desc.
func (g *AngularCLI) Spec(desc project.Descriptor) Spec {
	command := g.Command
	if command == "" {
		command = DefaultCommand
	}
	return Spec{
		Command: command,
		Args:    NewArgs(desc.Name, g.ExtraArgs...),
		Dir:     desc.WorkingDirectory,
		Env:     g.Env,
		PTY:     g.PTY,
	}
}

// Generate invokes the Angular CLI and waits for it to exit.
func (g *AngularCLI) Generate(ctx context.Context, desc project.Descriptor) error {
	return Invoke(ctx, g.Spec(desc), g.Sink)
}

// Spec describes a single generator process.
type Spec struct {
	Command string
	Args    []string
	Dir     string
	// Env is appended to the current process environment.
	Env []string
	// PTY runs the process on a pseudo-terminal so it keeps its own colors.
	// stdout and stderr are merged in this mode.
	PTY bool
}

func (s Spec) String() string {
	return strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
}

// Invoke runs spec to completion, streaming output lines to sink as they
// arrive. It succeeds only when the process exits with code 0. There is no
// timeout: a hung process blocks until ctx is cancelled.
func Invoke(ctx context.Context, spec Spec, sink Sink) error {
	if sink == nil {
		sink = discard{}
	}

	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	var err error
	if spec.PTY {
		err = runPTY(cmd, sink)
	} else {
		err = runPipes(cmd, sink)
	}
	if err != nil {
		return spawnError(spec.Command, err)
	}
	return nil
}

func spawnError(command string, err error) error {
	var spawnErr *ProcessSpawnError
	if errors.As(err, &spawnErr) {
		return err
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ProcessSpawnError{Command: command, ExitCode: exitErr.ExitCode(), Err: err}
	}
	return &ProcessSpawnError{Command: command, ExitCode: -1, Err: err}
}

type discard struct{}

func (discard) Stdout(string) {}
func (discard) Stderr(string) {}
