package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/petems/lift/internal/clipboard"
	"github.com/petems/lift/internal/config"
	"github.com/petems/lift/internal/console"
	"github.com/petems/lift/internal/credstore"
	"github.com/petems/lift/internal/progress"
	"github.com/petems/lift/internal/protect"
	"github.com/petems/lift/internal/upload"
	"github.com/rs/zerolog"
)

// ErrClipboardDisabled is returned by CopyToClipboard when copying is
// turned off in the config.
var ErrClipboardDisabled = errors.New("clipboard copying is disabled")

const spinInterval = 100 * time.Millisecond

// Uploader posts one file and returns its link.
type Uploader interface {
	Post(ctx context.Context, name string, body io.Reader, pass string) (string, error)
}

// PasswordPrompter asks the user for a new password. retry is true when a
// password entered in this run was already rejected.
type PasswordPrompter func(retry bool) (string, error)

type Config struct {
	Clipboard clipboard.Copier
	Protector protect.Service
	Screen    console.Screen
	Creds     credstore.Store
	Uploader  Uploader
	Prompt    PasswordPrompter // Optional - without it a rejected password is an error
	Output    io.Writer        // progress output, usually stderr
	Config    *config.Config
	Logger    zerolog.Logger
}

type App struct {
	clip     clipboard.Copier
	svc      protect.Service
	screen   console.Screen
	creds    credstore.Store
	uploader Uploader
	prompt   PasswordPrompter
	out      io.Writer
	cfg      *config.Config
	log      zerolog.Logger
}

func New(cfg Config) *App {
	out := cfg.Output
	if out == nil {
		out = io.Discard
	}
	return &App{
		clip:     cfg.Clipboard,
		svc:      cfg.Protector,
		screen:   cfg.Screen,
		creds:    cfg.Creds,
		uploader: cfg.Uploader,
		prompt:   cfg.Prompt,
		out:      out,
		cfg:      cfg.Config,
		log:      cfg.Logger,
	}
}

// CopyToClipboard places text on the system clipboard.
func (a *App) CopyToClipboard(text string) error {
	if !a.cfg.Clipboard.Enabled {
		return ErrClipboardDisabled
	}
	if err := a.clip.Copy(text); err != nil {
		a.log.Error().Err(err).Msg("Clipboard copy failed")
		return err
	}
	a.log.Debug().Int("bytes", len(text)).Msg("Copied to clipboard")
	return nil
}

// ProtectBytes protects or unprotects data for the current user.
func (a *App) ProtectBytes(data []byte, dir protect.Direction) ([]byte, error) {
	out, err := protect.Transform(a.svc, data, dir)
	if err != nil {
		a.log.Error().Err(err).Str("direction", dir.String()).Msg("Protection failed")
		return nil, err
	}
	return out, nil
}

// ClearCurrentLine blanks the cursor row.
func (a *App) ClearCurrentLine() {
	console.ClearLine(a.screen)
}

// MoveCursorUp moves the cursor two rows up to column zero.
func (a *App) MoveCursorUp() {
	console.MoveUp(a.screen)
}

// TermWidth returns the console width in cells.
func (a *App) TermWidth() int {
	return console.Width(a.screen)
}

// SetPassword stores the upload password for the configured host.
func (a *App) SetPassword(pass string) error {
	if err := a.creds.Set(a.cfg.Host, pass); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}
	a.log.Info().Str("host", a.cfg.Host).Msg("Password updated")
	return nil
}

// File is one upload. Size enables the progress bar; Content must be an
// io.Seeker for a retry after a rejected password.
type File struct {
	Name    string
	Content io.Reader
	Size    int64
}

// Push uploads files in order and returns their links. It stops at the
// first failure and returns the links collected so far.
func (a *App) Push(ctx context.Context, files []File) ([]string, error) {
	if a.cfg.Host == "" {
		return nil, errors.New("host not configured")
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		u, err := a.tryPost(ctx, f)
		if err != nil {
			return urls, fmt.Errorf("%s: %w", f.Name, err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// PushAndCopy uploads files and copies the joined links to the clipboard.
// A failed copy is logged and reported through copyErr, not err.
func (a *App) PushAndCopy(ctx context.Context, files []File) (urls []string, copyErr, err error) {
	urls, err = a.Push(ctx, files)
	if err != nil {
		return urls, nil, err
	}
	return urls, a.CopyToClipboard(strings.Join(urls, "\n")), nil
}

// tryPost keeps asking for a new password while the server rejects it.
func (a *App) tryPost(ctx context.Context, f File) (string, error) {
	var retry bool
	for {
		pass, err := a.creds.Get(a.cfg.Host)
		if err != nil && !errors.Is(err, credstore.ErrNotFound) {
			return "", err
		}

		link, err := a.post(ctx, f, pass)
		if !errors.Is(err, upload.ErrWrongPassword) {
			return link, err
		}

		a.log.Warn().Bool("retry", retry).Msg("Server rejected password")
		if a.prompt == nil {
			return "", err
		}
		newPass, perr := a.prompt(retry)
		if perr != nil {
			return "", perr
		}
		retry = true
		if err := a.SetPassword(newPass); err != nil {
			return "", err
		}
		if err := rewind(f.Content); err != nil {
			return "", err
		}
	}
}

func (a *App) post(ctx context.Context, f File, pass string) (string, error) {
	body := f.Content
	switch {
	case !a.cfg.Progress:
	case f.Size > progress.MinSize:
		bar := progress.NewBar(a.screen, a.out, f.Size)
		r := progress.NewReader(io.NopCloser(f.Content), bar)
		defer r.Close()
		body = r
	case f.Size <= 0:
		// unknown length, usually stdin
		stop := progress.Spin(ctx, a.screen, a.out, spinInterval)
		defer stop()
	}
	return a.uploader.Post(ctx, f.Name, body, pass)
}

func rewind(r io.Reader) error {
	s, ok := r.(io.Seeker)
	if !ok {
		return errors.New("cannot resend a stream after a rejected password")
	}
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind upload: %w", err)
	}
	return nil
}
