package common

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. format is "json" or "text".
func NewLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if err != nil && level != "" {
		logger.WithField("level", level).Warn("unknown log level, falling back to info")
	}
	return logger
}
