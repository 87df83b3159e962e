package clipboard

import (
	"fmt"
	"unicode/utf16"

	"github.com/petems/lift/internal/oserr"
	"github.com/rs/zerolog"
)

// Sizing selects how many UTF-16 units are allocated for a payload.
type Sizing int

const (
	// SizeExact allocates exactly the transcoded length plus the terminator.
	SizeExact Sizing = iota
	// SizeUpperBound allocates one unit per input byte plus the terminator.
	// UTF-8 never needs more UTF-16 units than it has bytes.
	SizeUpperBound
)

func (s Sizing) String() string {
	switch s {
	case SizeExact:
		return "exact"
	case SizeUpperBound:
		return "upper-bound"
	default:
		return fmt.Sprintf("Sizing(%d)", int(s))
	}
}

// ParseSizing maps a config value to a Sizing. Empty means SizeExact.
func ParseSizing(s string) (Sizing, error) {
	switch s {
	case "", "exact":
		return SizeExact, nil
	case "upper-bound":
		return SizeUpperBound, nil
	default:
		return SizeExact, fmt.Errorf("unknown clipboard sizing %q", s)
	}
}

type Option func(*Writer)

func WithSizing(s Sizing) Option {
	return func(w *Writer) { w.sizing = s }
}

func WithLogger(log zerolog.Logger) Option {
	return func(w *Writer) { w.log = log }
}

// Writer copies text through a System as CF_UNICODETEXT.
type Writer struct {
	sys    System
	sizing Sizing
	log    zerolog.Logger
}

// New creates a Writer over sys. The default sizing is SizeExact.
func New(sys System, opts ...Option) *Writer {
	w := &Writer{
		sys:    sys,
		sizing: SizeExact,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Copy replaces the clipboard contents with text.
//
// The clipboard is closed on every path after a successful open, and the
// memory block is freed unless the clipboard took ownership of it.
func (w *Writer) Copy(text string) (err error) {
	if err := w.sys.Open(); err != nil {
		return oserr.New(oserr.KindClipboardAcquire, "CopyString", err)
	}
	defer func() {
		if cerr := w.sys.Close(); cerr != nil && err == nil {
			err = oserr.New(oserr.KindClipboardRelease, "CloseClipboard", cerr)
		}
	}()

	units := Encode(text)
	size := w.Size(text, units)

	h, err := w.sys.Alloc(size)
	if err != nil {
		return oserr.New(oserr.KindClipboardAlloc, "GlobalAlloc", err)
	}

	if err := w.publish(h, units); err != nil {
		if ferr := w.sys.Free(h); ferr != nil {
			w.log.Warn().Err(ferr).Msg("Failed to free clipboard block")
		}
		return err
	}

	w.log.Debug().
		Int("units", len(units)).
		Int("allocated", size).
		Str("sizing", w.sizing.String()).
		Msg("Copied to clipboard")
	return nil
}

func (w *Writer) publish(h Handle, units []uint16) error {
	if err := w.sys.Fill(h, units); err != nil {
		return oserr.New(oserr.KindClipboardAlloc, "GlobalLock", err)
	}
	if err := w.sys.SetUnicodeText(h); err != nil {
		return oserr.New(oserr.KindClipboardRegister, "SetClipboardData", err)
	}
	return nil
}

// Size returns the number of units to allocate for text, whose NUL
// terminated transcoding is units.
func (w *Writer) Size(text string, units []uint16) int {
	if w.sizing == SizeUpperBound {
		return len(text) + 1
	}
	return len(units)
}

// Encode transcodes UTF-8 text to NUL terminated UTF-16. Invalid bytes
// become U+FFFD.
func Encode(text string) []uint16 {
	return append(utf16.Encode([]rune(text)), 0)
}
