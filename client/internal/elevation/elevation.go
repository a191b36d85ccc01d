package elevation

import "errors"

// ErrPlatformUnsupported is returned by New on platforms without a Windows
// security token to inspect
var ErrPlatformUnsupported = errors.New("this installer is intended to run on Windows")

// Checker reports whether the current process runs with administrative rights.
// An inconclusive query must report false.
type Checker interface {
	IsElevated() bool
}

// CheckerFunc adapts a function to the Checker interface
type CheckerFunc func() bool

func (f CheckerFunc) IsElevated() bool {
	return f()
}
