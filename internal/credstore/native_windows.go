//go:build windows

package credstore

import (
	"github.com/petems/lift/internal/config"
	"github.com/petems/lift/internal/protect"
)

// Mechanism describes where Native keeps the password.
const Mechanism = "the configuration file, encrypted with your user info"

// Native returns the platform Store.
func Native(cfg *config.Config) Store {
	return NewProtected(cfg, protect.Native())
}
