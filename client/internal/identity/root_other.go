//go:build !windows

package identity

import "os"

const fallbackProgramFiles = "/opt"

// ProgramFilesDir honours %ProgramFiles% so the layout can be reproduced off
// Windows, e.g. in tests
func ProgramFilesDir() string {
	if dir := os.Getenv("ProgramFiles"); dir != "" {
		return dir
	}
	return fallbackProgramFiles
}
