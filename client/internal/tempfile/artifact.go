package tempfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Kind tells what a temporary artifact holds
type Kind string

const (
	KindPayload Kind = "payload"
	KindLog     Kind = "log"
)

const createAttempts = 16

// Artifact is a file created in the temp dir for the duration of one launcher run
type Artifact struct {
	Path string
	Kind Kind
}

func (a Artifact) String() string {
	return fmt.Sprintf("%s %s", a.Kind, a.Path)
}

// Namer produces temp paths of the form <prefix>-<pid>-<unix millis>.<ext>
type Namer struct {
	dir string
	pid int
	now func() time.Time
}

// NewNamer returns a Namer rooted at dir. An empty dir means os.TempDir()
func NewNamer(dir string) *Namer {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Namer{
		dir: dir,
		pid: os.Getpid(),
		now: time.Now,
	}
}

func (n *Namer) Dir() string {
	return n.dir
}

// Path builds a path for prefix and ext without touching the filesystem
func (n *Namer) Path(prefix, ext string) string {
	return n.pathAt(prefix, ext, n.now())
}

func (n *Namer) pathAt(prefix, ext string, ts time.Time) string {
	name := fmt.Sprintf("%s-%d-%d.%s", prefix, n.pid, ts.UnixMilli(), ext)
	return filepath.Join(n.dir, name)
}

// Create exclusively creates a new file named after prefix and ext. When the
// name is taken the timestamp component is moved forward and creation retried.
func (n *Namer) Create(prefix, ext string) (*os.File, error) {
	ts := n.now()
	var lastErr error
	for i := 0; i < createAttempts; i++ {
		p := n.pathAt(prefix, ext, ts)
		f, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create temp file %s: %w", p, err)
		}
		lastErr = err
		ts = ts.Add(time.Millisecond)
	}
	return nil, fmt.Errorf("create temp file for %s: %w", prefix, lastErr)
}
