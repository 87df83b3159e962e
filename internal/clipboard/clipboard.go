package clipboard

import "errors"

// Copier places plain text on the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Handle refers to a block of OS-shared movable memory.
type Handle uintptr

// System is the set of clipboard and shared memory calls a Writer needs.
// Open and Close bracket every other call. Units are UTF-16 code units.
type System interface {
	Open() error
	Close() error
	Alloc(units int) (Handle, error)
	Fill(h Handle, text []uint16) error
	SetUnicodeText(h Handle) error
	Free(h Handle) error
}

// ErrUnavailable is returned when the platform has no usable clipboard.
var ErrUnavailable = errors.New("clipboard unavailable on this system")
