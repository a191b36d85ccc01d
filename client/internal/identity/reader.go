package identity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrNotFound means the identity file is absent or holds only whitespace
var ErrNotFound = errors.New("identity file not found")

// ReadError means the identity file exists but could not be read
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read identity file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Identity is the identifier generated by the installed package
type Identity struct {
	ID string
}

// Reader reads the identity file the installed package writes into its
// install directory. It never writes to it.
type Reader struct {
	path string
}

// NewReader returns a Reader for <root>/<installDir>/<fileName>. An empty
// root resolves to the Program Files directory.
func NewReader(root, installDir, fileName string) *Reader {
	if root == "" {
		root = ProgramFilesDir()
	}
	return &Reader{path: filepath.Join(root, installDir, fileName)}
}

func (r *Reader) Path() string {
	return r.path
}

// Read returns the trimmed file content
func (r *Reader) Read() (Identity, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("identity file %s does not exist", r.path)
			return Identity{}, ErrNotFound
		}
		return Identity{}, &ReadError{Path: r.path, Err: err}
	}

	id := strings.TrimSpace(string(data))
	if id == "" {
		log.Debugf("identity file %s is empty", r.path)
		return Identity{}, ErrNotFound
	}
	return Identity{ID: id}, nil
}
