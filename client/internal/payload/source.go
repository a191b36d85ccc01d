package payload

import "errors"

var ErrEmptyPayload = errors.New("payload is empty")

// Source supplies the installer package bytes
type Source interface {
	Bytes() []byte
}

// Bytes is a Source backed by an in-memory buffer
type Bytes []byte

func (b Bytes) Bytes() []byte {
	return b
}

// Embedded returns the package compiled into the binary. Builds without the
// embedmsi tag carry no package and Embedded returns an empty Source.
func Embedded() Source {
	return Bytes(embeddedMSI)
}
