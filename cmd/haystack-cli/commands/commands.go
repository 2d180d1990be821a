// Package commands implements the haystack-cli subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/haystack-rest/haystack-go/pkg/client"
	"github.com/haystack-rest/haystack-go/pkg/config"
	"github.com/haystack-rest/haystack-go/pkg/log"
	"github.com/haystack-rest/haystack-go/pkg/session"
	"github.com/haystack-rest/haystack-go/pkg/transport"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitCallError    = 2
)

// newSender builds the transport for a loaded configuration. Tests
// swap this for an in-memory server.
var newSender = func(cfg *config.Config) transport.Sender {
	return transport.NewHTTPSender(transport.Config{
		Timeout:   time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		UserAgent: cfg.HTTP.UserAgent,
	})
}

// commonOptions holds flags shared by every subcommand.
type commonOptions struct {
	ConfigPath string
	JSON       bool
	CSV        bool
}

// env bundles everything a command needs to talk to a server.
type env struct {
	client *client.Client
	closer func()
}

// buildEnv loads configuration and constructs a connected client
// environment. The returned closer flushes the capture log.
func buildEnv(opts commonOptions, stderr io.Writer) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger, closer, err := buildLogger(cfg, stderr)
	if err != nil {
		return nil, err
	}

	c, err := client.New(session.Config{
		URL:      cfg.Project.URL,
		Username: cfg.Project.Username,
		Password: cfg.Project.Password,
		Sender:   newSender(cfg),
		Logger:   logger,
	})
	if err != nil {
		closer()
		return nil, err
	}

	return &env{client: c, closer: closer}, nil
}

// buildLogger assembles the event logger from the capture and logging
// sections of the configuration.
func buildLogger(cfg *config.Config, stderr io.Writer) (log.Logger, func(), error) {
	level := slogLevel(cfg.Logging.Level)
	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	loggers := []log.Logger{log.NewSlogAdapter(slog.New(handler))}

	closer := func() {}
	if cfg.Capture.Enabled {
		fl, err := log.NewFileLogger(cfg.Capture.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening capture file: %w", err)
		}
		loggers = append(loggers, fl)
		closer = func() { _ = fl.Close() }
	}

	if len(loggers) == 1 {
		return loggers[0], closer, nil
	}
	return log.NewMultiLogger(loggers...), closer, nil
}

func slogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
