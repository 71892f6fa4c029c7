package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/postcardcloud/postcard-go"
	"github.com/postcardcloud/postcard-go/internal/config"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the config named by --config and applies --debug.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.Bool("debug") {
		cfg.Debug = true
	}
	return cfg, nil
}

// newClient builds a client from the configuration. When the client
// secret is missing and stdin is a terminal, it is prompted for.
func newClient(cmd *cli.Command) (*postcard.Client, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	if cfg.ClientID != "" && cfg.ClientSecret == "" && isTerminal(int(os.Stdin.Fd())) {
		secret, err := promptSecret(errWriter(cmd))
		if err != nil {
			return nil, nil, err
		}
		cfg.ClientSecret = secret
	}
	if !cfg.HasCredentials() {
		return nil, nil, fmt.Errorf("%w: set %sCLIENT_ID and %sCLIENT_SECRET",
			postcard.ErrMissingCredentials, config.EnvPrefix, config.EnvPrefix)
	}

	logger := newLogger(errWriter(cmd), cfg.Debug)
	opts, closeCache, err := cfg.Options(logger)
	if err != nil {
		return nil, nil, err
	}

	client, err := postcard.New(cfg.ClientID, cfg.ClientSecret, opts...)
	if err != nil {
		_ = closeCache()
		return nil, nil, err
	}
	cleanup := func() {
		if err := closeCache(); err != nil {
			logger.Debug("closing token cache failed", "error", err)
		}
	}
	return client, cleanup, nil
}

func promptSecret(w io.Writer) (string, error) {
	fmt.Fprint(w, "Client secret: ")
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read client secret: %w", err)
	}
	s := strings.TrimSpace(string(secret))
	if s == "" {
		return "", errors.New("client secret cannot be empty")
	}
	return s, nil
}

func out(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
