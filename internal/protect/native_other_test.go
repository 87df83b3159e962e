//go:build !windows

package protect

import (
	"errors"
	"testing"

	"github.com/petems/lift/internal/oserr"
)

func TestNativeUnsupported(t *testing.T) {
	svc := Native()

	if _, err := Transform(svc, []byte("secret"), Protect); !errors.Is(err, ErrUnsupported) || !oserr.Is(err, oserr.KindProtect) {
		t.Errorf("protect: expected ErrUnsupported, got %v", err)
	}
	if _, err := Transform(svc, []byte("secret"), Unprotect); !errors.Is(err, ErrUnsupported) || !oserr.Is(err, oserr.KindUnprotect) {
		t.Errorf("unprotect: expected ErrUnsupported, got %v", err)
	}
}
