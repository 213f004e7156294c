// Package logger configures the process-wide logrus logger
// The terminal runs in raw mode, so output goes to a file or nowhere
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	LogDir   = "logs"
	FileName = "echoji.log"
	MaxSize  = 10 * 1024 * 1024 // rotate above 10MB
)

// Options selects destination, level and format
type Options struct {
	Debug  bool
	Dir    string // defaults to LogDir
	Level  string // logrus level name, invalid or empty means info
	Format string // "json" or text
}

// Setup builds the logger; with Debug off everything is discarded and the file is nil
// The standard library logger is redirected to the same destination
func Setup(opts Options) (*logrus.Logger, *os.File, error) {
	l := logrus.New()
	l.SetLevel(ParseLevel(opts.Level))
	l.SetFormatter(Formatter(opts.Format))

	if !opts.Debug {
		l.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return l, nil, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = LogDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := rotate(path); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l.SetOutput(f)
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return l, f, nil
}

// rotate moves an oversized log aside with a timestamp suffix
func rotate(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= MaxSize {
		return nil
	}
	ext := filepath.Ext(path)
	rotated := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	return nil
}

// ParseLevel maps a level name, falling back to info
func ParseLevel(s string) logrus.Level {
	if s == "" {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Formatter returns the JSON formatter for "json" and a plain text one otherwise
func Formatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "15:04:05.000",
	}
}
