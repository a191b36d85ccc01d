package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/netbirdio/msi-setup/client/internal/buildprofile"
	"github.com/netbirdio/msi-setup/client/internal/elevation"
	"github.com/netbirdio/msi-setup/client/internal/identity"
	"github.com/netbirdio/msi-setup/client/internal/launchconfig"
	"github.com/netbirdio/msi-setup/client/internal/launcher"
	"github.com/netbirdio/msi-setup/client/internal/msiexec"
	"github.com/netbirdio/msi-setup/client/internal/payload"
	"github.com/netbirdio/msi-setup/client/internal/tempfile"
	"github.com/netbirdio/msi-setup/util"
	"github.com/netbirdio/msi-setup/version"
)

// ExitError carries the process exit code out of the command
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// options are the build time inputs of the launcher, replaced in tests
type options struct {
	source     payload.Source
	newChecker func() (elevation.Checker, error)
	tempDir    string
	runner     msiexec.Runner
}

func defaultOptions() options {
	return options{
		source:     payload.Embedded(),
		newChecker: elevation.New,
		runner:     msiexec.ExecRunner{},
	}
}

func init() {
	// the launcher is meant to be started by double click as well
	cobra.MousetrapHelpText = ""
}

func newRootCmd(opts options) *cobra.Command {
	return &cobra.Command{
		Use:     "msi-setup",
		Short:   "Installs the embedded MSI package as a service",
		Version: version.Version(),
		// the launcher accepts Windows style switches and ignores unknown
		// tokens, so arguments are handed over unparsed
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code := runSetup(cmd, args, opts)
			if code != launcher.ExitOK {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
}

// Execute runs the launcher and returns the process exit code
func Execute() int {
	return execute(newRootCmd(defaultOptions()))
}

func execute(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err == nil {
		return launcher.ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	rootCmd.PrintErrln(err)
	return launcher.ExitConfig
}

func runSetup(cmd *cobra.Command, args []string, opts options) int {
	setupEnv, err := parseEnv()
	if err != nil {
		cmd.PrintErrln(err)
		return launcher.ExitConfig
	}

	if err := util.InitLog(setupEnv.LogLevel, setupEnv.LogFile); err != nil {
		cmd.PrintErrf("failed to initialize log: %v\n", err)
		return launcher.ExitConfig
	}

	profile, err := buildprofile.Load()
	if err != nil {
		cmd.PrintErrln(err)
		return launcher.ExitConfig
	}
	profile = profile.WithOverrides(setupEnv.DefaultIDRelay, setupEnv.DefaultAccessPass)
	if profile.UsesPlaceholderSecret() {
		log.Warn("the default access password was not replaced for this build, pass --access-pass or set MSI_SETUP_DEFAULT_ACCESS_PASS")
	}

	l := launcher.New(newDeps(cmd, opts, profile, setupEnv))
	return l.Run(context.Background(), args)
}

func newDeps(cmd *cobra.Command, opts options, profile buildprofile.Profile, setupEnv setupEnv) launcher.Deps {
	namer := tempfile.NewNamer(opts.tempDir)

	deps := launcher.Deps{
		Resolver: launchconfig.NewResolver(launchconfig.Defaults{
			Endpoint:     profile.Defaults.IDRelay,
			AccessSecret: profile.Defaults.AccessPass,
		}),
		Payload:      payload.NewStore(opts.source, namer, profile.Temp.PayloadPrefix),
		Installer:    msiexec.NewInvoker(setupEnv.Engine, namer, profile.Temp.LogPrefix, opts.runner),
		Identity:     identity.NewReader("", profile.Product.InstallDir, profile.Product.IdentityFile),
		Cleaner:      tempfile.NewCleaner(),
		IdentityWait: setupEnv.IdentityWait,
		Usage: func(w io.Writer) {
			printUsage(w, profile)
		},
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	checker, err := opts.newChecker()
	if err != nil {
		log.Debugf("elevation check unavailable: %v", err)
		return deps
	}
	deps.Checker = checker
	return deps
}
