// Package logging builds the logger shared by the server and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"playfair-backend/config"
)

// New configures a logger from cfg. Output goes to cfg.Log.FilePath when set,
// stdout otherwise. The returned close func releases the log file and is a
// no-op for stdout.
func New(cfg *config.Config) (*logrus.Logger, func() error, error) {
	if cfg.Log.FilePath == "" {
		log, err := NewWithWriter(os.Stdout, cfg.Log.Level, cfg.Log.Format)
		return log, func() error { return nil }, err
	}

	f, err := os.OpenFile(cfg.Log.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.Log.FilePath, err)
	}

	log, err := NewWithWriter(f, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return log, f.Close, nil
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level, format string) (*logrus.Logger, error) {
	logLvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	var formatter logrus.Formatter
	switch format {
	case "", "text":
		formatter = &logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			DisableSorting:  true,
		}
	case "json":
		formatter = &logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"}
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return &logrus.Logger{
		Out:       w,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     logLvl,
	}, nil
}
