package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/netbirdio/msi-setup/client/internal/identity"
	"github.com/netbirdio/msi-setup/client/internal/launchconfig"
	"github.com/netbirdio/msi-setup/client/internal/msiexec"
	"github.com/netbirdio/msi-setup/client/internal/tempfile"
)

const (
	testPayload = "/tmp/rustdesk-setup-1-1.msi"
	testLog     = "/tmp/rustdesk-setup-msi-1-1.log"
)

var (
	payloadArtifact = tempfile.Artifact{Path: testPayload, Kind: tempfile.KindPayload}
	logArtifact     = tempfile.Artifact{Path: testLog, Kind: tempfile.KindLog}
)

type mocks struct {
	checker   *MockPrivilegeChecker
	payload   *MockPayloadStore
	installer *MockInstaller
	identity  *MockIdentityReader
	cleaner   *MockCleaner
}

type harness struct {
	mocks
	launcher *Launcher
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	ctrl := gomock.NewController(t)
	h := &harness{
		mocks: mocks{
			checker:   NewMockPrivilegeChecker(ctrl),
			payload:   NewMockPayloadStore(ctrl),
			installer: NewMockInstaller(ctrl),
			identity:  NewMockIdentityReader(ctrl),
			cleaner:   NewMockCleaner(ctrl),
		},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	h.launcher = New(Deps{
		Resolver: launchconfig.NewResolver(launchconfig.Defaults{
			Endpoint:     "aup.tatnefturs.ru:10201",
			AccessSecret: "default-access",
		}),
		Checker:      h.checker,
		Payload:      h.payload,
		Installer:    h.installer,
		Identity:     h.identity,
		Cleaner:      h.cleaner,
		IdentityWait: 2 * time.Second,
		Usage: func(w io.Writer) {
			_, _ = fmt.Fprint(w, "usage text\n")
		},
		Stdout: h.stdout,
		Stderr: h.stderr,
	})
	return h
}

func TestLauncher_Help(t *testing.T) {
	h := newHarness(t)

	code := h.launcher.Run(context.Background(), []string{"--silent", "/?", "--id-relay", "h:1"})

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "usage text\n", h.stdout.String())
	assert.Empty(t, h.stderr.String())
}

func TestLauncher_PlatformUnsupported(t *testing.T) {
	h := newHarness(t)
	h.launcher.deps.Checker = nil

	code := h.launcher.Run(context.Background(), nil)

	assert.Equal(t, ExitPlatformUnsupported, code)
	assert.Contains(t, h.stderr.String(), "Windows")
}

func TestLauncher_NotElevated(t *testing.T) {
	h := newHarness(t)
	// no payload, installer or cleaner expectations: any call fails the test
	h.checker.EXPECT().IsElevated().Return(false)

	code := h.launcher.Run(context.Background(), []string{"--silent"})

	assert.Equal(t, ExitElevationRequired, code)
	assert.Contains(t, h.stderr.String(), "Administrator privileges are required")
	assert.Empty(t, h.stdout.String())
}

func TestLauncher_PayloadWriteFailure(t *testing.T) {
	h := newHarness(t)
	h.checker.EXPECT().IsElevated().Return(true)
	h.payload.EXPECT().Materialize().Return("", errors.New("disk full"))

	code := h.launcher.Run(context.Background(), nil)

	assert.Equal(t, ExitPayloadWrite, code)
	assert.Contains(t, h.stderr.String(), "Failed to write MSI payload: disk full")
}

func TestLauncher_LaunchFailure(t *testing.T) {
	launchErr := &msiexec.LaunchError{Engine: "msiexec.exe", Err: errors.New("access denied")}

	t.Run("payload removed", func(t *testing.T) {
		h := newHarness(t)
		gomock.InOrder(
			h.checker.EXPECT().IsElevated().Return(true),
			h.payload.EXPECT().Materialize().Return(testPayload, nil),
			h.installer.EXPECT().Run(gomock.Any(), testPayload, gomock.Any()).Return(msiexec.Result{}, launchErr),
			h.cleaner.EXPECT().Remove(payloadArtifact).Return(nil),
		)

		code := h.launcher.Run(context.Background(), nil)

		assert.Equal(t, ExitLaunch, code)
		assert.Contains(t, h.stderr.String(), "failed to start msiexec.exe: access denied")
	})

	t.Run("payload kept", func(t *testing.T) {
		h := newHarness(t)
		h.checker.EXPECT().IsElevated().Return(true)
		h.payload.EXPECT().Materialize().Return(testPayload, nil)
		h.installer.EXPECT().Run(gomock.Any(), testPayload, gomock.Any()).Return(msiexec.Result{}, launchErr)

		code := h.launcher.Run(context.Background(), []string{"--keep-msi"})

		assert.Equal(t, ExitLaunch, code)
		assert.Contains(t, h.stderr.String(), "MSI kept at: "+testPayload)
	})
}

func TestLauncher_InstallerFailure(t *testing.T) {
	h := newHarness(t)
	h.checker.EXPECT().IsElevated().Return(true)
	h.payload.EXPECT().Materialize().Return(testPayload, nil)
	h.installer.EXPECT().
		Run(gomock.Any(), testPayload, gomock.Any()).
		Return(msiexec.Result{ExitCode: 1603, LogPath: testLog}, nil)
	// only the payload goes away, the log stays for diagnosis
	h.cleaner.EXPECT().Remove(payloadArtifact).Return(nil)

	code := h.launcher.Run(context.Background(), []string{"--silent"})

	assert.Equal(t, 1603, code)
	assert.Contains(t, h.stderr.String(), "msiexec failed with exit code 1603")
	assert.Contains(t, h.stderr.String(), "MSI log: "+testLog)
	assert.Empty(t, h.stdout.String())
}

func TestLauncher_InteractiveSuccess(t *testing.T) {
	h := newHarness(t)
	expectedCfg := launchconfig.Config{
		Endpoint:        "relay:21116",
		AccessSecret:    "default-access",
		SecondarySecret: "pin",
	}
	gomock.InOrder(
		h.checker.EXPECT().IsElevated().Return(true),
		h.payload.EXPECT().Materialize().Return(testPayload, nil),
		h.installer.EXPECT().Run(gomock.Any(), testPayload, expectedCfg).Return(msiexec.Result{LogPath: testLog}, nil),
		h.cleaner.EXPECT().Remove(payloadArtifact).Return(nil),
		h.cleaner.EXPECT().Remove(logArtifact).Return(nil),
	)

	code := h.launcher.Run(context.Background(), []string{"--id-relay", "relay:21116", "--conf-pass", "pin"})

	assert.Equal(t, ExitOK, code)
	assert.Empty(t, h.stdout.String())
}

func TestLauncher_SilentSuccess(t *testing.T) {
	h := newHarness(t)
	expectedCfg := launchconfig.Config{
		Silent:       true,
		Endpoint:     "host:1234",
		AccessSecret: "default-access",
	}
	gomock.InOrder(
		h.checker.EXPECT().IsElevated().Return(true),
		h.payload.EXPECT().Materialize().Return(testPayload, nil),
		h.installer.EXPECT().Run(gomock.Any(), testPayload, expectedCfg).Return(msiexec.Result{LogPath: testLog}, nil),
		h.cleaner.EXPECT().Remove(payloadArtifact).Return(nil),
		h.cleaner.EXPECT().Remove(logArtifact).Return(nil),
		h.identity.EXPECT().Wait(gomock.Any(), 2*time.Second).Return(identity.Identity{ID: "abc123"}, nil),
	)

	code := h.launcher.Run(context.Background(), []string{"--silent", "--id-relay", "host:1234"})

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "abc123\n", h.stdout.String())
}

func TestLauncher_SilentIdentityFailures(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "not found",
			err:          identity.ErrNotFound,
			expectedCode: ExitIdentityNotFound,
			expectedMsg:  "Installed, but ID file was not found.",
		},
		{
			name:         "read error",
			err:          &identity.ReadError{Path: "install_id.txt", Err: errors.New("permission denied")},
			expectedCode: ExitIdentityRead,
			expectedMsg:  "Installed, but failed to read ID: permission denied",
		},
		{
			name:         "unexpected error",
			err:          errors.New("boom"),
			expectedCode: ExitIdentityRead,
			expectedMsg:  "Installed, but failed to read ID: boom",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.checker.EXPECT().IsElevated().Return(true)
			h.payload.EXPECT().Materialize().Return(testPayload, nil)
			h.installer.EXPECT().Run(gomock.Any(), testPayload, gomock.Any()).Return(msiexec.Result{LogPath: testLog}, nil)
			h.cleaner.EXPECT().Remove(gomock.Any()).Return(nil).Times(2)
			h.identity.EXPECT().Wait(gomock.Any(), gomock.Any()).Return(identity.Identity{}, tc.err)

			code := h.launcher.Run(context.Background(), []string{"--silent"})

			assert.Equal(t, tc.expectedCode, code)
			assert.Contains(t, h.stderr.String(), tc.expectedMsg)
			assert.Empty(t, h.stdout.String())
		})
	}
}

func TestLauncher_CleanupFailureKeepsExitCode(t *testing.T) {
	h := newHarness(t)
	h.checker.EXPECT().IsElevated().Return(true)
	h.payload.EXPECT().Materialize().Return(testPayload, nil)
	h.installer.EXPECT().Run(gomock.Any(), testPayload, gomock.Any()).Return(msiexec.Result{LogPath: testLog}, nil)
	h.cleaner.EXPECT().Remove(gomock.Any()).Return(errors.New("file in use")).Times(2)

	code := h.launcher.Run(context.Background(), nil)

	assert.Equal(t, ExitOK, code)
}
