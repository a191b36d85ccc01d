package msiexec

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
)

// DefaultEngine locates msiexec.exe in the system directory
func DefaultEngine() string {
	if winDir := os.Getenv("WINDIR"); winDir != "" {
		return filepath.Join(winDir, "System32", "msiexec.exe")
	}
	return "msiexec.exe"
}

// newCommand hands the command line to CreateProcess verbatim. The default
// argv escaping of os/exec would turn KEY="a b" into "KEY=\"a b\"", which
// msiexec does not understand.
func newCommand(ctx context.Context, engine string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, engine)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: CommandLine(engine, args),
	}
	return cmd
}
