package launcher

// Process exit codes. Installer failures pass msiexec's own code through.
const (
	ExitOK                  = 0
	ExitPlatformUnsupported = 1
	ExitPayloadWrite        = 2
	ExitLaunch              = 3
	ExitIdentityNotFound    = 4
	ExitIdentityRead        = 5
	ExitConfig              = 6
	// ERROR_ELEVATION_REQUIRED
	ExitElevationRequired = 740
)
