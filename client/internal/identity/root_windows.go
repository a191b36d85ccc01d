package identity

import (
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

const fallbackProgramFiles = `C:\Program Files`

// ProgramFilesDir returns %ProgramFiles%, the ProgramFiles known folder when
// the variable is unset, and C:\Program Files as the last resort
func ProgramFilesDir() string {
	if dir := os.Getenv("ProgramFiles"); dir != "" {
		return dir
	}

	dir, err := windows.KnownFolderPath(windows.FOLDERID_ProgramFiles, windows.KF_FLAG_DEFAULT)
	if err != nil {
		log.Debugf("failed to resolve ProgramFiles known folder: %v", err)
		return fallbackProgramFiles
	}
	return dir
}
