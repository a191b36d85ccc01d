//go:build !windows

package msiexec

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Run(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var out bytes.Buffer
	r := ExecRunner{Output: &out}

	code, err := r.Run(context.Background(), "sh", []string{"-c", "echo installing; exit 0"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "installing\n", out.String())

	code, err = r.Run(context.Background(), "sh", []string{"-c", "exit 67"})
	require.NoError(t, err)
	assert.Equal(t, 67, code)
}

func TestExecRunner_RunMissingEngine(t *testing.T) {
	r := ExecRunner{Output: &bytes.Buffer{}}

	_, err := r.Run(context.Background(), "/nonexistent/msiexec.exe", nil)

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "/nonexistent/msiexec.exe", launchErr.Engine)
}
