package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

type Config struct {
	Scheme    string          `json:"scheme"`
	Host      string          `json:"host"`
	Port      string          `json:"port"`
	Pass      []byte          `json:"pass,omitempty"` // DPAPI blob, Windows only
	LogLevel  string          `json:"log_level"`
	Clipboard ClipboardConfig `json:"clipboard"`
	Progress  bool            `json:"progress"`

	path string
}

type ClipboardConfig struct {
	Enabled bool   `json:"enabled"`
	Sizing  string `json:"sizing"` // "exact" or "upper-bound"
}

// Load reads the config from disk or returns defaults
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at p, falling back to defaults if p does not exist
func LoadFrom(p string) (*Config, error) {
	cfg := &Config{
		Scheme:   "http",
		Port:     "80",
		LogLevel: "warn",
		Clipboard: ClipboardConfig{
			Enabled: true,
			Sizing:  "exact",
		},
		Progress: true,
		path:     p,
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "http"
	}
	return cfg, nil
}

// Save writes the config to disk. The file holds the protected password, so
// it is only readable by the owner.
func (c *Config) Save() error {
	p := c.path
	if p == "" {
		p = Path()
	}

	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(p, data, 0600)
}

// File returns the path the config was loaded from
func (c *Config) File() string {
	if c.path == "" {
		return Path()
	}
	return c.path
}

// UploadURL returns the endpoint files are posted to
func (c *Config) UploadURL() string {
	return c.Scheme + "://" + c.Host + ":" + c.Port + "/upload/file"
}

// SetAddr sets scheme, host and port from a whole server address such as
// "https://example.com:8080". A missing scheme means http, a missing port 80.
func (c *Config) SetAddr(addr string) error {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return fmt.Errorf("parsing address: %w", err)
	}

	c.Scheme = u.Scheme
	if host, port, err := net.SplitHostPort(u.Host); err == nil {
		c.Host, c.Port = host, port
	} else {
		c.Host = path.Join(u.Host, u.Path)
		c.Port = ""
	}
	if c.Port == "" {
		c.Port = "80"
	}
	return nil
}

// Path returns the platform-specific config file path. LIFT_CONFIG overrides it.
func Path() string {
	if p := os.Getenv("LIFT_CONFIG"); p != "" {
		return p
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "airlift", "airlift_config")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".airlift")
	}
}
