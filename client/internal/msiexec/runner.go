package msiexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// LaunchError means the installer engine could not be started at all
type LaunchError struct {
	Engine string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Engine, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Runner starts the engine with args and waits for it to exit
type Runner interface {
	Run(ctx context.Context, engine string, args []string) (int, error)
}

// ExecRunner runs the engine as a child process. The child's output goes to
// Output, which defaults to stderr so stdout stays reserved for the launcher.
type ExecRunner struct {
	Output io.Writer
}

func (r ExecRunner) Run(ctx context.Context, engine string, args []string) (int, error) {
	cmd := newCommand(ctx, engine, args)

	out := r.Output
	if out == nil {
		out = os.Stderr
	}
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		return 0, &LaunchError{Engine: engine, Err: err}
	}

	log.Infof("installer started with PID %d", cmd.Process.Pid)
	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if cmd.ProcessState != nil {
		log.Warnf("installer finished with error: %v", err)
		return cmd.ProcessState.ExitCode(), nil
	}
	return 0, &LaunchError{Engine: engine, Err: err}
}
