package util

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Logger is the process logger. It writes text records to stderr until
// InitLogger reconfigures it.
var Logger = logrus.New()

// InitLogger sets the level and format ("text" or "json") of Logger.
func InitLogger(level, format string) error {
	return configure(Logger, os.Stderr, level, format)
}

func configure(l *logrus.Logger, w io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	l.SetLevel(lvl)
	l.SetOutput(w)

	switch strings.ToLower(format) {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("unknown log format %q", format)
	}
	return nil
}

func Debug[T any](s T) {
	Logger.Debug(s)
}
