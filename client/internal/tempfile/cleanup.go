package tempfile

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
)

const (
	removeRetries      = 5
	removeInitialDelay = 100 * time.Millisecond
	removeMaxDelay     = 2 * time.Second
)

// Cleaner removes temporary artifacts. The Windows Installer service can keep
// a handle on the package for a moment after msiexec has exited, so removal
// is retried a few times before giving up.
type Cleaner struct {
	newBackOff func() backoff.BackOff
}

func NewCleaner() *Cleaner {
	return &Cleaner{newBackOff: defaultBackOff}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(removeInitialDelay),
		backoff.WithMaxInterval(removeMaxDelay),
	)
	return backoff.WithMaxRetries(b, removeRetries)
}

// Remove deletes every artifact. A missing file counts as removed. All
// failures are collected and returned together.
func (c *Cleaner) Remove(artifacts ...Artifact) error {
	var merr *multierror.Error
	for _, a := range artifacts {
		if a.Path == "" {
			continue
		}
		if err := c.remove(a); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("failed to remove %s: %w", a, err))
			continue
		}
		log.Debugf("removed %s", a)
	}
	return merr.ErrorOrNil()
}

func (c *Cleaner) remove(a Artifact) error {
	operation := func() error {
		err := os.Remove(a.Path)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		log.Debugf("remove %s: %v", a, err)
		return err
	}
	return backoff.Retry(operation, c.newBackOff())
}
