package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/netbirdio/msi-setup/client/internal/buildprofile"
	"github.com/netbirdio/msi-setup/version"
)

func printUsage(w io.Writer, profile buildprofile.Profile) {
	exe := filepath.Base(os.Args[0])
	_, _ = fmt.Fprintf(w, `%s setup (service-only) %s

Usage:
  %s [--silent] [--id-relay host:port] [--access-pass pass] [--conf-pass pin] [--keep-msi]

Options:
  --silent, --quiet, /S, /silent, /verysilent, /qn
                 install without UI and print the generated ID to stdout
  --id-relay     ID server as host:port (relay will be host:(port+3))
  --access-pass  permanent access password
  --conf-pass    password protecting the settings, omitted when empty
  --keep-msi     keep the extracted MSI in the temp directory
  --help, -h, /? show this help

Defaults:
  --id-relay     %s
  --access-pass  set at build time

Silent mode:
  Installs as Windows service and prints the generated ID to stdout.
`, profile.Product.Name, version.Version(), exe, profile.Defaults.IDRelay)
}
