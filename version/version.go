package version

// will be replaced with the release version when using goreleaser
var version = "development"

// Version returns the launcher release version
func Version() string {
	return version
}
