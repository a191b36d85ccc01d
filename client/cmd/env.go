package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

var ErrFailedToParseEnv = errors.New("failed to parse launcher environment")

// setupEnv holds the settings operators can change without rebuilding
type setupEnv struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `env:"MSI_SETUP_LOG_LEVEL" envDefault:"warn"`

	// LogFile is a path for the launcher log, console keeps it on stderr
	LogFile string `env:"MSI_SETUP_LOG_FILE" envDefault:"console"`

	// Engine overrides the msiexec location
	Engine string `env:"MSI_SETUP_ENGINE"`

	// IdentityWait is how long a silent install waits for the identity file
	IdentityWait time.Duration `env:"MSI_SETUP_ID_WAIT" envDefault:"0s"`

	// DefaultIDRelay replaces the built-in --id-relay default
	DefaultIDRelay string `env:"MSI_SETUP_DEFAULT_ID_RELAY"`

	// DefaultAccessPass replaces the built-in --access-pass default
	DefaultAccessPass string `env:"MSI_SETUP_DEFAULT_ACCESS_PASS"`
}

func parseEnv() (setupEnv, error) {
	var cfg setupEnv
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s", ErrFailedToParseEnv, err)
	}
	if cfg.IdentityWait < 0 {
		return cfg, fmt.Errorf("%w: MSI_SETUP_ID_WAIT must not be negative", ErrFailedToParseEnv)
	}
	return cfg, nil
}
