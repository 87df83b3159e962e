package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/petems/lift/internal/app"
	"github.com/petems/lift/internal/clipboard"
	"github.com/petems/lift/internal/protect"
	"github.com/petems/lift/internal/upload"
	"github.com/spf13/cobra"
)

func newPushCmd(e *env) *cobra.Command {
	var includeName, noCopy, noProgress bool
	var stdinName, firstName string

	cmd := &cobra.Command{
		Use:   "push [file...]",
		Short: "Upload files and copy their links to the clipboard",
		Long:  "Upload files and copy their links to the clipboard. With no files, or \"-\", stdin is uploaded.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if noCopy {
				e.cfg.Clipboard.Enabled = false
			}
			if noProgress {
				e.cfg.Progress = false
			}
			a := e.newApp(upload.Config{IncludeName: includeName})

			files, closeAll, err := openFiles(args, cmd.InOrStdin(), stdinName, firstName)
			if err != nil {
				return err
			}
			defer closeAll()

			urls, copyErr, err := a.PushAndCopy(cmd.Context(), files)
			for _, u := range urls {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			if err != nil {
				return err
			}
			switch {
			case copyErr == nil:
				fmt.Fprintln(cmd.ErrOrStderr(), "(Copied to clipboard)")
			case !errors.Is(copyErr, app.ErrClipboardDisabled):
				fmt.Fprintln(cmd.ErrOrStderr(), "Copying to the clipboard failed:", copyErr)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&includeName, "name", "n", false, "include the file name in the link")
	cmd.Flags().BoolVarP(&noCopy, "no-copy", "C", false, "do not copy the links to the clipboard")
	cmd.Flags().BoolVarP(&noProgress, "no-progress", "P", false, "do not show upload progress")
	cmd.Flags().StringVarP(&stdinName, "stdin-name", "s", "", "file name for the stdin upload")
	cmd.Flags().StringVarP(&firstName, "filename", "f", "", "upload the first file under this name")
	return cmd
}

// openFiles opens the uploads named by args. "-" buffers stdin into a temp
// file so it can be resent and sized for the progress bar. firstName, when
// set, renames the first upload.
func openFiles(args []string, stdin io.Reader, stdinName, firstName string) ([]app.File, func(), error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	if stdinName == "" {
		stdinName = "stdin"
	}

	var files []app.File
	var opened, temps []*os.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
		for _, f := range temps {
			f.Close()
			os.Remove(f.Name())
		}
	}
	fail := func(err error) ([]app.File, func(), error) {
		closeAll()
		return nil, nil, err
	}

	for _, name := range args {
		if name == "-" {
			tmp, err := os.CreateTemp("", "airlift-upload")
			if err != nil {
				return fail(fmt.Errorf("failed to buffer stdin: %w", err))
			}
			temps = append(temps, tmp)
			n, err := io.Copy(tmp, stdin)
			if err != nil {
				return fail(fmt.Errorf("failed to buffer stdin: %w", err))
			}
			if _, err := tmp.Seek(0, io.SeekStart); err != nil {
				return fail(fmt.Errorf("failed to buffer stdin: %w", err))
			}
			files = append(files, app.File{Name: stdinName, Content: tmp, Size: n})
			continue
		}
		f, err := os.Open(name)
		if err != nil {
			return fail(err)
		}
		opened = append(opened, f)
		info, err := f.Stat()
		if err != nil {
			return fail(err)
		}
		if info.IsDir() {
			return fail(fmt.Errorf("%s is a directory", name))
		}
		files = append(files, app.File{Name: name, Content: f, Size: info.Size()})
	}

	if firstName != "" {
		files[0].Name = firstName
	}
	return files, closeAll, nil
}

func newCopyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "copy [text...]",
		Short: "Copy text to the clipboard, reading stdin when no text is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 || text == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(b)
			}
			return e.newApp(upload.Config{}).CopyToClipboard(text)
		},
	}
}

func newProtectCmd(e *env, dir protect.Direction) *cobra.Command {
	var b64 bool

	cmd := &cobra.Command{
		Use:   dir.String(),
		Short: "Read stdin and write it " + dir.String() + "ed for the current user to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if b64 && dir == protect.Unprotect {
				if in, err = base64.StdEncoding.DecodeString(strings.TrimSpace(string(in))); err != nil {
					return fmt.Errorf("decoding input: %w", err)
				}
			}

			out, err := e.newApp(upload.Config{}).ProtectBytes(in, dir)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if b64 && dir == protect.Protect {
				_, err = fmt.Fprintln(w, base64.StdEncoding.EncodeToString(out))
				return err
			}
			_, err = w.Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&b64, "base64", false, "protected data is base64 text")
	return cmd
}

func newClearLineCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-line",
		Short: "Blank the console line under the cursor",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			e.newApp(upload.Config{}).ClearCurrentLine()
		},
	}
}

func newUpCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Move the cursor two rows up to the first column",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			e.newApp(upload.Config{}).MoveCursorUp()
		},
	}
}

func newWidthCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "width",
		Short: "Print the console width",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), e.newApp(upload.Config{}).TermWidth())
		},
	}
}

func newPasswdCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Set the server password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.cfg.Host == "" {
				return errors.New("host not configured")
			}
			pass, err := promptPassword(false)
			if err != nil {
				return err
			}
			return e.newApp(upload.Config{}).SetPassword(pass)
		},
	}
}

func newConfigCmd(e *env) *cobra.Command {
	var host, port, addr, sizing string
	var clip, prog string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the server settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := e.cfg
			changed := false

			if addr != "" {
				if err := cfg.SetAddr(addr); err != nil {
					return err
				}
				changed = true
			}
			if host != "" {
				cfg.Host = host
				changed = true
			}
			if port != "" {
				cfg.Port = port
				changed = true
			}
			if sizing != "" {
				if _, err := clipboard.ParseSizing(sizing); err != nil {
					return err
				}
				cfg.Clipboard.Sizing = sizing
				changed = true
			}
			for _, b := range []struct {
				val string
				dst *bool
			}{{clip, &cfg.Clipboard.Enabled}, {prog, &cfg.Progress}} {
				if b.val == "" {
					continue
				}
				v, err := parseSwitch(b.val)
				if err != nil {
					return err
				}
				*b.dst = v
				changed = true
			}

			if changed {
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("saving config: %w", err)
				}
				e.log.Info().Str("path", cfg.File()).Msg("Config saved")
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Server:    %s://%s:%s\n", cfg.Scheme, cfg.Host, cfg.Port)
			fmt.Fprintf(w, "Clipboard: %v (%s)\n", cfg.Clipboard.Enabled, cfg.Clipboard.Sizing)
			fmt.Fprintf(w, "Progress:  %v\n", cfg.Progress)
			fmt.Fprintf(w, "Config:    %s\n", cfg.File())
			return nil
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address, e.g. https://example.com:443")
	cmd.Flags().StringVarP(&host, "host", "s", "", "server host")
	cmd.Flags().StringVarP(&port, "port", "p", "", "server port")
	cmd.Flags().StringVar(&sizing, "sizing", "", "clipboard buffer sizing: exact or upper-bound")
	cmd.Flags().StringVar(&clip, "clipboard", "", "copy links after upload: on or off")
	cmd.Flags().StringVar(&prog, "progress", "", "show upload progress: on or off")
	return cmd
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
