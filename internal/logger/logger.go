package logger

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/safar/northwind-store/internal/config"
)

// New builds the process logger from config. An unknown level is an error
// rather than a silent fallback.
func New(cfg config.LogConfig) (*log.Logger, error) {
	return newWithOutput(cfg, os.Stdout)
}

func newWithOutput(cfg config.LogConfig, out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	l := log.New()
	l.SetOutput(out)
	l.SetLevel(level)

	switch cfg.Format {
	case "json":
		l.SetFormatter(&log.JSONFormatter{})
	default:
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return l, nil
}
