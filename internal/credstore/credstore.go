// Package credstore persists the upload password between runs.
package credstore

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/petems/lift/internal/config"
	"github.com/petems/lift/internal/protect"
	"github.com/zalando/go-keyring"
)

// ErrNotFound is returned when no password is stored for a host.
var ErrNotFound = errors.New("password not found")

// Store keeps one password per server host.
type Store interface {
	Get(host string) (string, error)
	Set(host, pass string) error
	Delete(host string) error
}

// Protected keeps a protected blob in the config file. The config holds a
// single server, so the host argument is not used.
type Protected struct {
	cfg *config.Config
	svc protect.Service
}

func NewProtected(cfg *config.Config, svc protect.Service) *Protected {
	return &Protected{cfg: cfg, svc: svc}
}

func (p *Protected) Get(host string) (string, error) {
	if len(p.cfg.Pass) == 0 {
		return "", ErrNotFound
	}
	b, err := protect.Transform(p.svc, p.cfg.Pass, protect.Unprotect)
	if err != nil {
		return "", err
	}
	// Older clients protected the terminating NUL along with the password.
	return string(bytes.TrimSuffix(b, []byte{0})), nil
}

func (p *Protected) Set(host, pass string) error {
	blob, err := protect.Transform(p.svc, []byte(pass), protect.Protect)
	if err != nil {
		return err
	}
	p.cfg.Pass = blob
	if err := p.cfg.Save(); err != nil {
		return fmt.Errorf("failed to save password: %w", err)
	}
	return nil
}

func (p *Protected) Delete(host string) error {
	if len(p.cfg.Pass) == 0 {
		return ErrNotFound
	}
	p.cfg.Pass = nil
	return p.cfg.Save()
}

// Keyring keeps passwords in the OS keyring (Keychain, Secret Service or
// Credential Manager) under Service, with the host as the account.
type Keyring struct {
	Service string
}

func (k Keyring) Get(host string) (string, error) {
	pass, err := keyring.Get(k.Service, host)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	return pass, nil
}

func (k Keyring) Set(host, pass string) error {
	if err := keyring.Set(k.Service, host, pass); err != nil {
		return fmt.Errorf("failed to write keyring: %w", err)
	}
	return nil
}

func (k Keyring) Delete(host string) error {
	err := keyring.Delete(k.Service, host)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
