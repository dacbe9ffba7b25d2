// Package logger holds the process-wide loggers. InfoLogger carries request and
// lifecycle messages, ErrorLogger carries failures; both emit JSON.
package logger

import (
	"io"
	"os"

	"github.com/Domenick1991/airsales/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// Init configures both loggers. It is safe to skip in tests; the zero setup logs text to stderr.
func Init(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	for _, l := range []*logrus.Logger{InfoLogger, ErrorLogger} {
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetOutput(out)
		l.SetLevel(level)
	}
}
