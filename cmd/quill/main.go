// Command quill is a small terminal text editor with keyword, string and
// comment highlighting, find and replace, and periodic autosave.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"example.com/quill/internal/app"
	"example.com/quill/pkg/config"
	"example.com/quill/pkg/editor"
	"example.com/quill/pkg/logs"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	logger := logs.NewFromEnv()
	defer logger.Close()

	r, err := setup(args, logger, os.Stderr)
	if err != nil {
		return err
	}
	runErr := r.Run()
	if err := r.Session.Close(); err != nil {
		logger.Error("settings.error", err, map[string]any{"file": r.Session.SettingsPath})
	}
	return runErr
}

// setup parses the command line, loads configuration and settings, and
// opens the requested file. A file that does not exist yet becomes the
// save target of an empty document.
func setup(args []string, logger *logs.Logger, stderr io.Writer) (*app.Runner, error) {
	fs := flag.NewFlagSet("quill", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "editor config file (default ~/.quill/config.toml)")
	settingsPath := fs.String("settings", config.DefaultSettingsPath(), "settings file holding the font choice")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: quill [flags] [file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, errors.New("at most one file may be given")
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		logger.Error("settings.fallback", err, map[string]any{"file": *settingsPath})
	}

	sess := editor.New(settings, *settingsPath, cfg.Keywords)
	r := app.New(sess, cfg)
	r.Logger = logger
	if path := fs.Arg(0); path != "" {
		if err := r.OpenFile(path); err != nil {
			if !errors.Is(err, editor.ErrFileNotFound) {
				return nil, err
			}
			sess.FilePath = path
		}
	}
	return r, nil
}
