//go:build !windows

package elevation

// New fails closed: there is no elevation concept this launcher can verify
func New() (Checker, error) {
	return nil, ErrPlatformUnsupported
}
