// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Level  string // panic, fatal, error, warn, info, debug, trace
	Format string // text or json
	Output io.Writer
}

var (
	mu     sync.RWMutex
	global = discard()
)

// Setup builds a logger from cfg and installs it as the process logger.
// On error the previous logger stays in place.
func Setup(cfg Config) (*logrus.Logger, error) {
	l := logrus.New()

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)

	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q (available: text, json)", cfg.Format)
	}

	mu.Lock()
	global = l
	mu.Unlock()
	return l, nil
}

func L() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
