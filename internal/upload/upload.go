// Package upload posts files to an airlift server.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ErrWrongPassword is returned when the server rejects the password.
var ErrWrongPassword = errors.New("wrong password")

type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type response struct {
	URL string
	Err string
}

type Config struct {
	URL         string // upload endpoint
	Scheme      string // prefixed to the returned link
	IncludeName bool   // append the file name to the returned link
	HTTPClient  *http.Client
	Logger      zerolog.Logger
}

type Client struct {
	cfg Config
}

func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{cfg: cfg}
}

// Post uploads body under name and returns the link to it. An empty
// password sends no password header.
func (c *Client) Post(ctx context.Context, name string, body io.Reader, pass string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, body)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	base := filepath.Base(name)
	req.Header.Set("X-Airlift-Filename", base)
	if pass != "" {
		req.Header.Set("X-Airlift-Password", pass)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return "", ErrWrongPassword
	}

	var msg response
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return "", fmt.Errorf("invalid server response (%s): %w", resp.Status, err)
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		u := msg.URL
		if c.cfg.IncludeName {
			u = path.Join(u, base)
		}
		link := c.cfg.Scheme + "://" + u
		c.cfg.Logger.Info().Str("file", base).Str("url", link).Msg("Uploaded")
		return link, nil
	default:
		return "", &ServerError{Status: resp.StatusCode, Message: msg.Err}
	}
}
