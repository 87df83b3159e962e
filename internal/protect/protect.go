// Package protect transforms secrets with the platform's per-user data
// protection service. Nothing here encrypts on its own; on Windows the bytes
// go through DPAPI and come back as an opaque blob that only the same user
// can unprotect.
package protect

import (
	"errors"
	"fmt"

	"github.com/petems/lift/internal/oserr"
)

// Direction selects protect or unprotect.
type Direction int

const (
	Protect Direction = iota
	Unprotect
)

func (d Direction) String() string {
	switch d {
	case Protect:
		return "protect"
	case Unprotect:
		return "unprotect"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Service is a reversible transform keyed to the current user.
type Service interface {
	Protect(data []byte) ([]byte, error)
	Unprotect(data []byte) ([]byte, error)
}

// ErrUnsupported is returned where no data protection service exists.
var ErrUnsupported = errors.New("data protection is not available on this platform")

// Transform runs data through svc in direction dir. On failure the output is
// nil and the error is an *oserr.Error naming the failed direction.
func Transform(svc Service, data []byte, dir Direction) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch dir {
	case Protect:
		out, err = svc.Protect(data)
	case Unprotect:
		out, err = svc.Unprotect(data)
	default:
		return nil, fmt.Errorf("unknown protection direction %v", dir)
	}
	if err != nil {
		return nil, wrap(dir, err)
	}
	return out, nil
}

func wrap(dir Direction, err error) error {
	var e *oserr.Error
	if errors.As(err, &e) {
		return err
	}
	if dir == Protect {
		return oserr.New(oserr.KindProtect, "CryptProtectData", err)
	}
	return oserr.New(oserr.KindUnprotect, "CryptUnprotectData", err)
}
