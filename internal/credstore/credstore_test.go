package credstore

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/petems/lift/internal/config"
	"github.com/petems/lift/internal/oserr"
	"github.com/zalando/go-keyring"
)

// xorService is a reversible stand-in for DPAPI.
type xorService struct {
	fail bool
}

func (x xorService) Protect(data []byte) ([]byte, error) {
	if x.fail {
		return nil, errors.New("Key not valid for use in specified state.")
	}
	return xor(data), nil
}

func (x xorService) Unprotect(data []byte) ([]byte, error) {
	if x.fail {
		return nil, errors.New("The data is invalid.")
	}
	return xor(data), nil
}

func xor(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[i] ^ 0x5a
	}
	return out
}

func loadConfig(t *testing.T) *config.Config {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "airlift_config"))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestProtectedRoundTrip(t *testing.T) {
	cfg := loadConfig(t)
	store := NewProtected(cfg, xorService{})

	if _, err := store.Get("host"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before Set, got %v", err)
	}
	if err := store.Set("host", "hunter2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if bytes.Equal(cfg.Pass, []byte("hunter2")) {
		t.Fatal("password stored unprotected")
	}

	reloaded, err := config.LoadFrom(cfg.File())
	if err != nil {
		t.Fatal(err)
	}
	got, err := NewProtected(reloaded, xorService{}).Get("host")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "hunter2" {
		t.Errorf("Get = %q, want hunter2", got)
	}

	if err := store.Delete("host"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get("host"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Delete, got %v", err)
	}
}

func TestProtectedStripsLegacyTerminator(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Pass = xor([]byte("hunter2\x00"))

	got, err := NewProtected(cfg, xorService{}).Get("host")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "hunter2" {
		t.Errorf("Get = %q, want hunter2", got)
	}
}

func TestProtectedFailures(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Pass = []byte("garbage")
	store := NewProtected(cfg, xorService{fail: true})

	if _, err := store.Get("host"); !oserr.Is(err, oserr.KindUnprotect) {
		t.Errorf("Get: expected unprotect error, got %v", err)
	}
	if err := store.Set("host", "x"); !oserr.Is(err, oserr.KindProtect) {
		t.Errorf("Set: expected protect error, got %v", err)
	}
	if string(cfg.Pass) != "garbage" {
		t.Error("failed Set must not touch the stored blob")
	}
}

func TestKeyring(t *testing.T) {
	keyring.MockInit()
	store := Keyring{Service: "airlift-test"}

	if _, err := store.Get("example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Set("example.com", "hunter2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get("example.com")
	if err != nil || got != "hunter2" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if err := store.Delete("example.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete("example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}
