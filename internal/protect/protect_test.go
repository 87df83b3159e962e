package protect

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/petems/lift/internal/oserr"
)

var fakeMagic = []byte("blob:")

// fakeService reverses the input behind a header so unknown bytes are
// rejected the way DPAPI rejects them.
type fakeService struct {
	err error
}

func (f *fakeService) Protect(data []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := append([]byte{}, fakeMagic...)
	for i := len(data) - 1; i >= 0; i-- {
		out = append(out, data[i])
	}
	return out, nil
}

func (f *fakeService) Unprotect(data []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !bytes.HasPrefix(data, fakeMagic) {
		return nil, errors.New("The data is invalid.")
	}
	body := data[len(fakeMagic):]
	out := make([]byte, len(body))
	for i := range body {
		out[len(body)-1-i] = body[i]
	}
	return out, nil
}

func TestTransformRoundTrip(t *testing.T) {
	inputs := []string{"", "hunter2", "pässwörd", "日本語のパスワード", strings.Repeat("x", 4096)}
	svc := &fakeService{}

	for _, in := range inputs {
		blob, err := Transform(svc, []byte(in), Protect)
		if err != nil {
			t.Fatalf("protect %q: %v", in, err)
		}
		out, err := Transform(svc, blob, Unprotect)
		if err != nil {
			t.Fatalf("unprotect %q: %v", in, err)
		}
		if string(out) != in {
			t.Errorf("round trip: got %q, want %q", out, in)
		}
	}
}

func TestTransformFailure(t *testing.T) {
	tests := []struct {
		name  string
		dir   Direction
		kind  oserr.Kind
		label string
	}{
		{"protect", Protect, oserr.KindProtect, "CryptProtectData"},
		{"unprotect", Unprotect, oserr.KindUnprotect, "CryptUnprotectData"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: errors.New("Key not valid for use in specified state.")}
			out, err := Transform(svc, []byte("secret"), tt.dir)
			if err == nil {
				t.Fatal("expected an error")
			}
			if out != nil {
				t.Errorf("expected nil output on failure, got %v", out)
			}
			if !oserr.Is(err, tt.kind) {
				t.Errorf("expected kind %s, got %v", tt.kind, err)
			}
			if !strings.HasPrefix(err.Error(), tt.label+": ") {
				t.Errorf("diagnostic %q does not start with %s", err.Error(), tt.label)
			}
		})
	}
}

func TestTransformRejectsForeignBlob(t *testing.T) {
	out, err := Transform(&fakeService{}, []byte("never protected"), Unprotect)
	if err == nil {
		t.Fatal("expected unprotect of foreign bytes to fail")
	}
	if out != nil {
		t.Error("expected nil output")
	}
}

func TestTransformKeepsServiceError(t *testing.T) {
	inner := oserr.New(oserr.KindUnprotect, "CryptUnprotectData", errors.New("bad data"))
	_, err := Transform(&fakeService{err: inner}, nil, Unprotect)
	if err != inner {
		t.Errorf("expected the service error to pass through, got %v", err)
	}
}

func TestTransformUnknownDirection(t *testing.T) {
	if _, err := Transform(&fakeService{}, []byte("x"), Direction(7)); err == nil {
		t.Error("expected an error for an unknown direction")
	}
}

func TestDirectionString(t *testing.T) {
	if Protect.String() != "protect" || Unprotect.String() != "unprotect" {
		t.Errorf("unexpected names %q %q", Protect, Unprotect)
	}
}
