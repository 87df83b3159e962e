package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/petems/lift/internal/app"
	"github.com/petems/lift/internal/clipboard"
	"github.com/petems/lift/internal/config"
	"github.com/petems/lift/internal/console"
	"github.com/petems/lift/internal/credstore"
	"github.com/petems/lift/internal/logging"
	"github.com/petems/lift/internal/protect"
	"github.com/petems/lift/internal/upload"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

// env is filled in before any subcommand runs
type env struct {
	cfg *config.Config
	log zerolog.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	e := &env{}
	root := newRootCmd(e)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "lift:", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd(e *env) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "lift",
		Short:         "Upload files to an airlift server and copy the links",
		Version:       Version + " (" + Commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				// Use default logger if config fails to load
				log := logging.New()
				log.Error().Err(err).Msg("Failed to load config")
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			e.cfg = cfg
			e.log = logging.NewWithLevel(cfg.LogLevel)
			e.log.Debug().Str("config", cfg.File()).Msg("Loaded config")
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newPushCmd(e),
		newCopyCmd(e),
		newProtectCmd(e, protect.Protect),
		newProtectCmd(e, protect.Unprotect),
		newClearLineCmd(e),
		newUpCmd(e),
		newWidthCmd(e),
		newPasswdCmd(e),
		newConfigCmd(e),
	)
	return root
}

// newApp wires the native platform helpers into an App.
func (e *env) newApp(up upload.Config) *app.App {
	sizing, err := clipboard.ParseSizing(e.cfg.Clipboard.Sizing)
	if err != nil {
		e.log.Warn().Err(err).Msg("Using exact clipboard sizing")
		sizing = clipboard.SizeExact
	}

	up.URL = e.cfg.UploadURL()
	up.Scheme = e.cfg.Scheme
	up.Logger = e.log

	return app.New(app.Config{
		Clipboard: clipboard.Native(clipboard.WithSizing(sizing), clipboard.WithLogger(e.log)),
		Protector: protect.Native(),
		Screen:    console.Native(),
		Creds:     credstore.Native(e.cfg),
		Uploader:  upload.New(up),
		Prompt:    promptPassword,
		Output:    os.Stderr,
		Config:    e.cfg,
		Logger:    e.log,
	})
}

func promptPassword(retry bool) (string, error) {
	if retry {
		fmt.Fprintln(os.Stderr, "Wrong password, try again.")
	} else {
		fmt.Fprintf(os.Stderr, "Server password required. It will be saved in %s.\n", credstore.Mechanism)
	}
	return console.ReadPassword("Password: ", os.Stderr)
}
