// Package oserr describes failures of single platform calls.
//
// An Error carries the label of the failing call and the platform error it
// returned, and renders as "<label>: <description>" where the description
// is the OS message text for the error code.
package oserr

import (
	"errors"
	"strings"
	"syscall"
)

// Kind identifies which step of a helper failed.
type Kind string

const (
	KindClipboardAcquire  Kind = "clipboard-acquire"
	KindClipboardAlloc    Kind = "clipboard-alloc"
	KindClipboardRegister Kind = "clipboard-register"
	KindClipboardRelease  Kind = "clipboard-release"
	KindProtect           Kind = "protect"
	KindUnprotect         Kind = "unprotect"
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// New returns an *Error for a failed platform call labelled op.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Op + ": " + describe(e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Code returns the platform error code when the cause is an errno.
func (e *Error) Code() (uintptr, bool) {
	if e == nil {
		return 0, false
	}
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return uintptr(errno), true
	}
	return 0, false
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// describe is best effort: FormatMessage text carries a trailing CRLF,
// otherwise the system text is kept as is.
func describe(err error) string {
	if err == nil {
		return "unknown error"
	}
	msg := strings.TrimRight(err.Error(), "\r\n")
	if msg == "" {
		return "unknown error"
	}
	return msg
}
