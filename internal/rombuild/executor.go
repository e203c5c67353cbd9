package rombuild

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// CommandResult carries the observable outcome of one external command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner is the subprocess seam. Commands are always argv vectors with an
// explicit working directory; nothing is ever passed through a shell.
type Runner interface {
	// Run streams the command's output to the process stdio (and the
	// attached log writer) and returns an error on non-zero exit.
	Run(name string, args []string, dir string) error
	// Capture runs the command silently and returns exit code and output.
	Capture(name string, args []string, dir string) (CommandResult, error)
}

// Executor provides a consistent interface for executing commands with
// context cancellation and process-group cleanup.
type Executor struct {
	Context context.Context // The context to use for cancellation
	Output  io.Writer       // Optional: mirror streamed output here (run log)
}

func NewExecutor(ctx context.Context) *Executor {
	return &Executor{Context: ctx}
}

// Run executes the given argv, streaming output to stdout/stderr and the
// attached log writer. The child runs in its own process group so a
// cancelled context can kill the whole tree.
func (e *Executor) Run(name string, args []string, dir string) error {
	cmd := exec.CommandContext(e.Context, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	if e.Output != nil {
		cmd.Stdout = io.MultiWriter(os.Stdout, e.Output)
		cmd.Stderr = io.MultiWriter(os.Stderr, e.Output)
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	cmd.Env = os.Environ()

	// isolate process-group so we can clean up on cancel
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	pgid := cmd.Process.Pid

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-e.Context.Done():
			syscall.Kill(-pgid, syscall.SIGKILL)
		case <-done:
		}
	}()

	if waitErr := cmd.Wait(); waitErr != nil {
		if e.Context.Err() != nil {
			time.Sleep(100 * time.Millisecond)
			return fmt.Errorf("command aborted: %v", e.Context.Err())
		}
		return waitErr
	}
	return nil
}

// Capture executes the given argv and returns its exit code and output
// without touching the process stdio.
func (e *Executor) Capture(name string, args []string, dir string) (CommandResult, error) {
	cmd := exec.CommandContext(e.Context, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = os.Environ()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	err := cmd.Run()
	res := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		if e.Context.Err() != nil {
			return res, fmt.Errorf("command aborted: %v", e.Context.Err())
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}
