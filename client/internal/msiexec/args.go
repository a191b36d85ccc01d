package msiexec

import (
	"strings"

	"github.com/netbirdio/msi-setup/client/internal/launchconfig"
)

// MSI property names understood by the package
const (
	PropEndpoint        = "ID_RELAY"
	PropAccessSecret    = "ACCESS_PASS"
	PropSecondarySecret = "CONF_PASS"
)

const redacted = "***"

// minimalFootprint keeps the install service-only: no shortcuts, no UI
// launched after install, no virtual printer
var minimalFootprint = []string{
	"LAUNCH_APP=0",
	"LAUNCH_TRAY_APP=0",
	"STARTUPSHORTCUTS=0",
	"CREATESTARTMENUSHORTCUTS=0",
	"CREATEDESKTOPSHORTCUTS=0",
	"INSTALLPRINTER=0",
}

var secretProps = []string{PropAccessSecret, PropSecondarySecret}

// BuildArgs returns the msiexec argument list for installing payloadPath
// with cfg. logPath receives the verbose installer log.
func BuildArgs(payloadPath, logPath string, cfg launchconfig.Config) []string {
	args := []string{"/i", payloadPath}
	if cfg.Silent {
		args = append(args, "/qn")
	}
	args = append(args,
		"/norestart",
		"REBOOT=ReallySuppress",
		"/l*v", logPath,
		Property(PropEndpoint, cfg.Endpoint),
		Property(PropAccessSecret, cfg.AccessSecret),
	)
	if cfg.SecondarySecret != "" {
		args = append(args, Property(PropSecondarySecret, cfg.SecondarySecret))
	}
	return append(args, minimalFootprint...)
}

// CommandLine joins engine and args into a single Windows command line.
// Property assignments are already quoted by Property and are kept verbatim,
// everything else is quoted as a plain argument.
func CommandLine(engine string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(engine))
	for _, a := range args {
		if isProperty(a) {
			parts = append(parts, a)
			continue
		}
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

// Redact masks secret property values so the command line can be logged
func Redact(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a
		for _, p := range secretProps {
			if strings.HasPrefix(a, p+"=") {
				out[i] = p + "=" + redacted
				break
			}
		}
	}
	return out
}

// isProperty reports whether a is a KEY=value token. Switches start with a
// slash and paths contain a separator before any '='.
func isProperty(a string) bool {
	eq := strings.IndexByte(a, '=')
	if eq <= 0 {
		return false
	}
	return !strings.ContainsAny(a[:eq], `/\: "`)
}
