package launcher

//go:generate go run go.uber.org/mock/mockgen -package launcher -destination=interfaces_mock.go -source=./interfaces.go -build_flags=-mod=mod

import (
	"context"
	"time"

	"github.com/netbirdio/msi-setup/client/internal/identity"
	"github.com/netbirdio/msi-setup/client/internal/launchconfig"
	"github.com/netbirdio/msi-setup/client/internal/msiexec"
	"github.com/netbirdio/msi-setup/client/internal/tempfile"
)

type PrivilegeChecker interface {
	IsElevated() bool
}

type PayloadStore interface {
	Materialize() (string, error)
}

type Installer interface {
	Run(ctx context.Context, payloadPath string, cfg launchconfig.Config) (msiexec.Result, error)
}

type IdentityReader interface {
	Wait(ctx context.Context, timeout time.Duration) (identity.Identity, error)
}

type Cleaner interface {
	Remove(artifacts ...tempfile.Artifact) error
}
