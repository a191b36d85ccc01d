package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/netbirdio/msi-setup/client/internal/identity"
	"github.com/netbirdio/msi-setup/client/internal/launchconfig"
	"github.com/netbirdio/msi-setup/client/internal/tempfile"
)

// ErrNotElevated is reported when the process lacks administrative rights
var ErrNotElevated = errors.New("administrator privileges are required")

// Deps wires the launcher to its collaborators
type Deps struct {
	Resolver *launchconfig.Resolver
	// Checker is nil when the platform can not be checked for elevation
	Checker   PrivilegeChecker
	Payload   PayloadStore
	Installer Installer
	Identity  IdentityReader
	Cleaner   Cleaner
	// IdentityWait bounds the wait for the identity file after a silent install
	IdentityWait time.Duration
	// Usage prints the help text
	Usage  func(w io.Writer)
	Stdout io.Writer
	Stderr io.Writer
}

// Launcher runs the install flow once per process
type Launcher struct {
	deps Deps
}

func New(deps Deps) *Launcher {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	return &Launcher{deps: deps}
}

// Run executes the flow for the raw command line arguments and returns the
// process exit code. Stdout only ever carries the usage text or, in silent
// mode, the installed identity.
func (l *Launcher) Run(ctx context.Context, args []string) int {
	cfg, help := l.deps.Resolver.Resolve(args)
	if help {
		if l.deps.Usage != nil {
			l.deps.Usage(l.deps.Stdout)
		}
		return ExitOK
	}

	if l.deps.Checker == nil {
		l.errorf("This installer is intended to be built and run on Windows.")
		return ExitPlatformUnsupported
	}

	if !l.deps.Checker.IsElevated() {
		log.Debug(ErrNotElevated)
		l.errorf("Administrator privileges are required. Re-run this installer from an elevated console (Run as administrator).")
		return ExitElevationRequired
	}

	log.Infof("launching install, silent=%t keep-msi=%t endpoint=%s", cfg.Silent, cfg.KeepPayload, cfg.Endpoint)

	payloadPath, err := l.deps.Payload.Materialize()
	if err != nil {
		l.errorf("Failed to write MSI payload: %v", err)
		return ExitPayloadWrite
	}
	payload := tempfile.Artifact{Path: payloadPath, Kind: tempfile.KindPayload}

	result, err := l.deps.Installer.Run(ctx, payloadPath, cfg)
	if err != nil {
		l.releasePayload(payload, cfg.KeepPayload)
		l.errorf("%v", err)
		return ExitLaunch
	}

	l.releasePayload(payload, cfg.KeepPayload)

	installLog := tempfile.Artifact{Path: result.LogPath, Kind: tempfile.KindLog}
	if result.ExitCode != 0 {
		l.errorf("msiexec failed with exit code %d", result.ExitCode)
		if installLog.Path != "" {
			l.errorf("MSI log: %s", installLog.Path)
		}
		return result.ExitCode
	}

	l.cleanup(installLog)

	if !cfg.Silent {
		return ExitOK
	}
	return l.reportIdentity(ctx)
}

func (l *Launcher) reportIdentity(ctx context.Context) int {
	id, err := l.deps.Identity.Wait(ctx, l.deps.IdentityWait)
	if err != nil {
		var readErr *identity.ReadError
		switch {
		case errors.Is(err, identity.ErrNotFound):
			l.errorf("Installed, but ID file was not found.")
			return ExitIdentityNotFound
		case errors.As(err, &readErr):
			l.errorf("Installed, but failed to read ID: %v", readErr.Err)
			return ExitIdentityRead
		default:
			l.errorf("Installed, but failed to read ID: %v", err)
			return ExitIdentityRead
		}
	}

	// only the ID goes to stdout so scripts can capture it
	if _, err := fmt.Fprintln(l.deps.Stdout, id.ID); err != nil {
		log.Errorf("failed to write ID to stdout: %v", err)
		return ExitIdentityRead
	}
	return ExitOK
}

func (l *Launcher) releasePayload(payload tempfile.Artifact, keep bool) {
	if keep {
		l.errorf("MSI kept at: %s", payload.Path)
		return
	}
	l.cleanup(payload)
}

// cleanup is best effort, failures never change the exit code
func (l *Launcher) cleanup(artifacts ...tempfile.Artifact) {
	if err := l.deps.Cleaner.Remove(artifacts...); err != nil {
		log.Warnf("cleanup: %v", err)
	}
}

func (l *Launcher) errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.deps.Stderr, format+"\n", args...)
}
