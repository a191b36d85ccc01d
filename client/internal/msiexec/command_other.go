//go:build !windows

package msiexec

import (
	"context"
	"os/exec"
)

func DefaultEngine() string {
	return "msiexec.exe"
}

func newCommand(ctx context.Context, engine string, args []string) *exec.Cmd {
	return exec.CommandContext(ctx, engine, args...)
}
