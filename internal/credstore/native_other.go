//go:build !windows

package credstore

import "github.com/petems/lift/internal/config"

// Mechanism describes where Native keeps the password.
const Mechanism = "the system keyring"

// Native returns the platform Store.
func Native(cfg *config.Config) Store {
	return Keyring{Service: "airlift"}
}
