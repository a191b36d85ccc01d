package elevation

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

type tokenChecker struct{}

// New returns the process token based Checker
func New() (Checker, error) {
	return tokenChecker{}, nil
}

// IsElevated queries TokenElevation on the current process token. Any
// failure on the way is reported as not elevated.
func (tokenChecker) IsElevated() bool {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		log.Warnf("failed to open process token: %v", err)
		return false
	}
	defer func() {
		if err := token.Close(); err != nil {
			log.Warnf("failed to close process token: %v", err)
		}
	}()

	return token.IsElevated()
}
