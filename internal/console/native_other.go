//go:build !windows

package console

import "os"

// Native returns the platform Screen: escape sequences on stderr.
func Native() Screen {
	return NewANSI(os.Stderr)
}
