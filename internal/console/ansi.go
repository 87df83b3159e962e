package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ANSI drives a VT terminal with escape sequences. The terminal cannot be
// asked for the cursor row, so ANSI tracks it from its own moves starting
// at row 0.
type ANSI struct {
	w    io.Writer
	tty  bool
	size func() (width, height int, err error)
	cur  Coord
}

// NewANSI returns an ANSI screen on f. Nothing is written unless f is a
// terminal.
func NewANSI(f *os.File) *ANSI {
	fd := f.Fd()
	return &ANSI{
		w:   f,
		tty: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		size: func() (int, int, error) {
			return term.GetSize(int(fd))
		},
	}
}

func (a *ANSI) Info() Info {
	info := Info{Cursor: a.cur}
	if !a.tty {
		return info
	}
	if w, h, err := a.size(); err == nil {
		info.Size = Coord{X: w, Y: h}
	}
	return info
}

func (a *ANSI) Fill(ch rune, n int, at Coord) {
	if !a.tty || n <= 0 {
		return
	}
	var b strings.Builder
	b.WriteString("\x1b7")
	b.WriteString(move(a.cur, at))
	b.WriteString(strings.Repeat(string(ch), n))
	b.WriteString("\x1b8")
	io.WriteString(a.w, b.String())
}

func (a *ANSI) SetCursor(at Coord) {
	if !a.tty {
		return
	}
	io.WriteString(a.w, move(a.cur, at))
	a.cur = at
}

// move returns the sequence that takes the cursor from "from" to "to".
func move(from, to Coord) string {
	var b strings.Builder
	switch dy := to.Y - from.Y; {
	case dy < 0:
		fmt.Fprintf(&b, "\x1b[%dA", -dy)
	case dy > 0:
		fmt.Fprintf(&b, "\x1b[%dB", dy)
	}
	b.WriteByte('\r')
	if to.X > 0 {
		fmt.Fprintf(&b, "\x1b[%dC", to.X)
	}
	return b.String()
}
