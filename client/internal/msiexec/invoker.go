package msiexec

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/netbirdio/msi-setup/client/internal/launchconfig"
	"github.com/netbirdio/msi-setup/client/internal/tempfile"
)

const logExt = "log"

// Result is the outcome of one installer run
type Result struct {
	ExitCode int
	LogPath  string
}

// Invoker drives msiexec for a single package install
type Invoker struct {
	engine    string
	namer     *tempfile.Namer
	logPrefix string
	runner    Runner
}

// NewInvoker returns an Invoker that runs engine through runner. Verbose logs
// are placed by namer using logPrefix.
func NewInvoker(engine string, namer *tempfile.Namer, logPrefix string, runner Runner) *Invoker {
	if engine == "" {
		engine = DefaultEngine()
	}
	return &Invoker{
		engine:    engine,
		namer:     namer,
		logPrefix: logPrefix,
		runner:    runner,
	}
}

// Run installs payloadPath and blocks until msiexec exits. A non-zero exit
// code is reported in the Result, the error is reserved for start failures.
func (i *Invoker) Run(ctx context.Context, payloadPath string, cfg launchconfig.Config) (Result, error) {
	logPath := i.namer.Path(i.logPrefix, logExt)
	args := BuildArgs(payloadPath, logPath, cfg)

	log.Infof("run msi installer: %s %s", i.engine, strings.Join(Redact(args), " "))
	code, err := i.runner.Run(ctx, i.engine, args)
	if err != nil {
		return Result{}, err
	}

	log.Infof("msi installer exited with code %d", code)
	return Result{ExitCode: code, LogPath: logPath}, nil
}
