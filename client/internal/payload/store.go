package payload

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/netbirdio/msi-setup/client/internal/tempfile"
)

const packageExt = "msi"

// Store writes the installer package to a temp file on demand
type Store struct {
	source Source
	namer  *tempfile.Namer
	prefix string
}

func NewStore(source Source, namer *tempfile.Namer, prefix string) *Store {
	return &Store{
		source: source,
		namer:  namer,
		prefix: prefix,
	}
}

// Materialize writes the package to a new temp file and returns its path. The
// caller owns the file afterwards. On failure nothing is left on disk.
func (s *Store) Materialize() (path string, err error) {
	data := s.source.Bytes()
	if len(data) == 0 {
		return "", ErrEmptyPayload
	}

	f, err := s.namer.Create(s.prefix, packageExt)
	if err != nil {
		return "", err
	}
	path = f.Name()

	defer func() {
		if err == nil {
			return
		}
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warnf("failed to remove partial payload %s: %v", path, rmErr)
		}
	}()

	if err := writeAll(f, data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write payload to %s: %w", path, err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("sync payload %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close payload %s: %w", path, err)
	}

	sum := sha256.Sum256(data)
	log.Debugf("payload written to %s, size %d, sha256 %s", path, len(data), hex.EncodeToString(sum[:]))
	return path, nil
}

func writeAll(w io.Writer, data []byte) error {
	n, err := w.Write(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}
