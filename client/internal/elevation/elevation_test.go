package elevation

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	checker, err := New()
	if runtime.GOOS != "windows" {
		require.ErrorIs(t, err, ErrPlatformUnsupported)
		assert.Nil(t, checker)
		return
	}

	require.NoError(t, err)
	// the result depends on how the test runner was started, it only must not panic
	_ = checker.IsElevated()
}

func TestCheckerFunc(t *testing.T) {
	assert.True(t, CheckerFunc(func() bool { return true }).IsElevated())
	assert.False(t, CheckerFunc(func() bool { return false }).IsElevated())
}
