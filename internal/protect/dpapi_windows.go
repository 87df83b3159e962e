//go:build windows

package protect

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/petems/lift/internal/oserr"
)

// DPAPI protects data with CryptProtectData in the current user's scope.
type DPAPI struct {
	// Description is stored in the blob in clear text. Optional.
	Description string
}

// Native returns the platform Service.
func Native() Service {
	return DPAPI{Description: "airlift"}
}

func (d DPAPI) Protect(data []byte) ([]byte, error) {
	var desc *uint16
	if d.Description != "" {
		p, err := windows.UTF16PtrFromString(d.Description)
		if err != nil {
			return nil, oserr.New(oserr.KindProtect, "CryptProtectData", err)
		}
		desc = p
	}

	in := toBlob(data)
	var out windows.DataBlob
	if err := windows.CryptProtectData(&in, desc, nil, 0, nil, windows.CRYPTPROTECT_UI_FORBIDDEN, &out); err != nil {
		return nil, oserr.New(oserr.KindProtect, "CryptProtectData", err)
	}
	return fromBlob(out), nil
}

func (DPAPI) Unprotect(data []byte) ([]byte, error) {
	in := toBlob(data)
	var out windows.DataBlob
	if err := windows.CryptUnprotectData(&in, nil, nil, 0, nil, windows.CRYPTPROTECT_UI_FORBIDDEN, &out); err != nil {
		return nil, oserr.New(oserr.KindUnprotect, "CryptUnprotectData", err)
	}
	return fromBlob(out), nil
}

func toBlob(b []byte) windows.DataBlob {
	if len(b) == 0 {
		return windows.DataBlob{}
	}
	return windows.DataBlob{Size: uint32(len(b)), Data: &b[0]}
}

// fromBlob copies the LocalAlloc'd output into Go memory and frees it.
func fromBlob(b windows.DataBlob) []byte {
	if b.Data == nil {
		return []byte{}
	}
	defer windows.LocalFree(windows.Handle(unsafe.Pointer(b.Data)))

	out := make([]byte, b.Size)
	copy(out, unsafe.Slice(b.Data, b.Size))
	return out
}
