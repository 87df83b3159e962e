package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petems/lift/internal/app"
	"github.com/petems/lift/internal/config"
	"github.com/petems/lift/internal/credstore"
	"github.com/petems/lift/internal/upload"
	"github.com/rs/zerolog"
)

// Mock implementations for testing
type mockStore struct {
	pass string
}

func (m *mockStore) Get(host string) (string, error) {
	if m.pass == "" {
		return "", credstore.ErrNotFound
	}
	return m.pass, nil
}

func (m *mockStore) Set(host, pass string) error {
	m.pass = pass
	return nil
}

func (m *mockStore) Delete(host string) error {
	m.pass = ""
	return nil
}

// mockUploader rejects every password but pass.
type mockUploader struct {
	pass   string
	bodies []string
	names  []string
}

func (m *mockUploader) Post(ctx context.Context, name string, body io.Reader, pass string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.bodies = append(m.bodies, string(b))
	m.names = append(m.names, name)
	if pass != m.pass {
		return "", upload.ErrWrongPassword
	}
	return "http://example.com/" + name, nil
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in   string
		want bool
		err  bool
	}{
		{"on", true, false},
		{"OFF", false, false},
		{"yes", true, false},
		{"0", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		got, err := parseSwitch(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("parseSwitch(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSwitch(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOpenFiles(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(p, []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}

	files, closeAll, err := openFiles([]string{p, "-"}, strings.NewReader("from stdin"), "", "")
	if err != nil {
		t.Fatalf("openFiles: %v", err)
	}
	defer closeAll()

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Size != 5 || files[0].Name != p {
		t.Errorf("unexpected file %+v", files[0])
	}
	if files[1].Name != "stdin" || files[1].Size != int64(len("from stdin")) {
		t.Errorf("unexpected stdin entry %+v", files[1])
	}
	b, err := io.ReadAll(files[1].Content)
	if err != nil || string(b) != "from stdin" {
		t.Errorf("buffered stdin = %q, %v", b, err)
	}
}

func TestOpenFilesNames(t *testing.T) {
	files, closeAll, err := openFiles([]string{"-"}, strings.NewReader("x"), "notes.txt", "")
	if err != nil {
		t.Fatalf("openFiles: %v", err)
	}
	defer closeAll()
	if files[0].Name != "notes.txt" {
		t.Errorf("stdin name = %q", files[0].Name)
	}

	p := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(p, []byte("a"), 0600); err != nil {
		t.Fatal(err)
	}
	files, closeAll2, err := openFiles([]string{p, "-"}, strings.NewReader("x"), "", "renamed.bin")
	if err != nil {
		t.Fatalf("openFiles: %v", err)
	}
	defer closeAll2()
	if files[0].Name != "renamed.bin" || files[1].Name != "stdin" {
		t.Errorf("only the first upload should be renamed: %q, %q", files[0].Name, files[1].Name)
	}
}

func TestOpenFilesRejectsDirectory(t *testing.T) {
	if _, _, err := openFiles([]string{t.TempDir()}, strings.NewReader(""), "", ""); err == nil {
		t.Error("expected an error for a directory")
	}
}

func TestOpenFilesRemovesStdinBuffer(t *testing.T) {
	files, closeAll, err := openFiles(nil, strings.NewReader("x"), "", "")
	if err != nil {
		t.Fatalf("openFiles: %v", err)
	}
	f, ok := files[0].Content.(*os.File)
	if !ok {
		t.Fatalf("expected stdin buffered to a file, got %T", files[0].Content)
	}

	closeAll()
	if _, err := os.Stat(f.Name()); !os.IsNotExist(err) {
		t.Errorf("temp file %s still exists: %v", f.Name(), err)
	}
}

func TestPipedStdinResentAfterRejectedPassword(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		io.WriteString(w, "piped payload")
		w.Close()
	}()
	defer r.Close()

	files, closeAll, err := openFiles([]string{"-"}, r, "", "")
	if err != nil {
		t.Fatalf("openFiles: %v", err)
	}
	defer closeAll()

	uploader := &mockUploader{pass: "hunter2"}
	store := &mockStore{}
	a := app.New(app.Config{
		Creds:    store,
		Uploader: uploader,
		Prompt:   func(bool) (string, error) { return "hunter2", nil },
		Config:   &config.Config{Scheme: "http", Host: "example.com", Port: "80"},
		Logger:   zerolog.Nop(),
	})

	urls, err := a.Push(context.Background(), files)
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if len(urls) != 1 || urls[0] != "http://example.com/stdin" {
		t.Errorf("unexpected links %v", urls)
	}
	if len(uploader.bodies) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(uploader.bodies))
	}
	for i, b := range uploader.bodies {
		if b != "piped payload" {
			t.Errorf("attempt %d sent %q", i, b)
		}
	}
	if store.pass != "hunter2" {
		t.Errorf("store holds %q", store.pass)
	}
}
