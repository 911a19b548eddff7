//go:build !windows

package automation

// COM automation only exists on Windows. Everything here reports the host
// application as unavailable so callers surface the right error.

func availablePlatform() bool {
	return false
}

func openPlatform(path string, opts Options) (Session, error) {
	return nil, ErrUnavailable
}

func convertPlatform(in, out string) error {
	return ErrUnavailable
}
