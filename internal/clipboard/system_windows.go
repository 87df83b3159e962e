//go:build windows

package clipboard

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	cfUnicodeText = 13

	gmemMoveable = 0x0002
	gmemShare    = 0x2000
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard    = user32.NewProc("OpenClipboard")
	procCloseClipboard   = user32.NewProc("CloseClipboard")
	procSetClipboardData = user32.NewProc("SetClipboardData")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
)

type win32 struct{}

// Win32 returns the System backed by user32 and kernel32.
func Win32() System {
	return win32{}
}

// Native returns the platform Copier.
func Native(opts ...Option) Copier {
	return New(Win32(), opts...)
}

func (win32) Open() error {
	if r, _, err := procOpenClipboard.Call(0); r == 0 {
		return err
	}
	return nil
}

func (win32) Close() error {
	if r, _, err := procCloseClipboard.Call(); r == 0 {
		return err
	}
	return nil
}

func (win32) Alloc(units int) (Handle, error) {
	r, _, err := procGlobalAlloc.Call(gmemMoveable|gmemShare, uintptr(units)*2)
	if r == 0 {
		return 0, err
	}
	return Handle(r), nil
}

func (win32) Fill(h Handle, text []uint16) error {
	p, _, err := procGlobalLock.Call(uintptr(h))
	if p == 0 {
		return err
	}
	defer procGlobalUnlock.Call(uintptr(h))

	dst := unsafe.Slice((*uint16)(unsafe.Add(nil, p)), len(text))
	copy(dst, text)
	return nil
}

func (win32) SetUnicodeText(h Handle) error {
	if r, _, err := procSetClipboardData.Call(cfUnicodeText, uintptr(h)); r == 0 {
		return err
	}
	return nil
}

// GlobalFree returns NULL on success.
func (win32) Free(h Handle) error {
	if r, _, err := procGlobalFree.Call(uintptr(h)); r != 0 {
		return err
	}
	return nil
}
