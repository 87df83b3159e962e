// Package progress draws a one-line progress bar and a spinner on the
// console, returning the cursor to column zero after every frame.
package progress

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/petems/lift/internal/console"
)

// MinSize is the smallest upload worth drawing a bar for.
const MinSize = 512 * 1024

var barChars = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// Bar renders current/total as "[" + cells + "]" across the console width.
type Bar struct {
	screen console.Screen
	w      io.Writer

	mu      sync.Mutex
	total   int64
	current int64
	buf     []rune
}

// NewBar sizes the bar from the console. Consoles narrower than three
// columns get a bar that draws nothing.
func NewBar(s console.Screen, w io.Writer, total int64) *Bar {
	b := &Bar{screen: s, w: w, total: total}
	if width := console.Width(s); width >= 3 {
		b.buf = make([]rune, width-2)
	}
	return b
}

// Add advances the bar by n and redraws it.
func (b *Bar) Add(n int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current += n
	b.draw()
}

// Finish clears the bar's line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.buf == nil {
		return
	}
	console.ClearLine(b.screen)
}

// Frame returns the current bar text, or "" if the bar is disabled.
func (b *Bar) Frame() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.buf == nil {
		return ""
	}
	b.fill()
	return "[" + string(b.buf) + "]"
}

func (b *Bar) draw() {
	if b.buf == nil {
		return
	}
	b.fill()
	io.WriteString(b.w, "["+string(b.buf)+"]")
	console.Return(b.screen)
}

func (b *Bar) fill() {
	ratio := 1.0
	if b.total > 0 {
		ratio = float64(b.current) / float64(b.total)
	}
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}

	q := float64(len(b.buf)) * ratio
	x := int(q)
	frac := barChars[int((q-float64(x))*float64(len(barChars)))]

	ch := barChars[len(barChars)-1]
	for i := range b.buf {
		if i == x {
			b.buf[i] = frac
			ch = ' '
		} else {
			b.buf[i] = ch
		}
	}
}

// Reader advances a Bar as the wrapped reader is consumed.
type Reader struct {
	io.ReadCloser
	bar *Bar
}

func NewReader(r io.ReadCloser, bar *Bar) *Reader {
	return &Reader{ReadCloser: r, bar: bar}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.ReadCloser.Read(p)
	if n > 0 {
		r.bar.Add(int64(n))
	}
	return n, err
}

// Close clears the bar and closes the wrapped reader.
func (r *Reader) Close() error {
	r.bar.Finish()
	return r.ReadCloser.Close()
}

var spinChars = []rune("▖▙▚▜▝▘▛▞▟▗")

// Spin draws a spinner every interval until the returned stop function is
// called. stop clears the line and waits for the spinner to exit.
func Spin(ctx context.Context, s console.Screen, w io.Writer, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for i := 0; ; i = (i + 1) % len(spinChars) {
			select {
			case <-ctx.Done():
				console.ClearLine(s)
				return
			case <-t.C:
				io.WriteString(w, " "+string(spinChars[i]))
				console.Return(s)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
