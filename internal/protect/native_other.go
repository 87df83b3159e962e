//go:build !windows

package protect

import "github.com/petems/lift/internal/oserr"

type unsupported struct{}

// Native returns the platform Service. Only Windows has one; elsewhere every
// call fails with ErrUnsupported.
func Native() Service {
	return unsupported{}
}

func (unsupported) Protect([]byte) ([]byte, error) {
	return nil, oserr.New(oserr.KindProtect, "CryptProtectData", ErrUnsupported)
}

func (unsupported) Unprotect([]byte) ([]byte, error) {
	return nil, oserr.New(oserr.KindUnprotect, "CryptUnprotectData", ErrUnsupported)
}
