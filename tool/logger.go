package tool

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var DefaultLogger = log.Default()

const (
	logFilePrefix = "rimmich-"
	logFileSuffix = ".log"
	logDateFormat = "2006-01-02"
	// LogRetentionDays is how many daily log files are kept in the log directory.
	LogRetentionDays = 7
)

// InitLogger sets the log level and, when logDir is not empty, tees output into
// a per-day log file under logDir. Files older than LogRetentionDays are removed.
func InitLogger(level string, logDir string) error {
	DefaultLogger.SetTimeFormat("2006-01-02 15:04:05")
	DefaultLogger.SetReportCaller(true)
	SetLogLevel(level)

	if logDir == "" {
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	now := time.Now()
	f, err := os.OpenFile(logFileName(logDir, now), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	DefaultLogger.SetOutput(io.MultiWriter(os.Stderr, f))
	PruneLogFiles(logDir, now, LogRetentionDays)
	return nil
}

// SetLogLevel maps the config level names onto the logger, unknown names fall back to info.
func SetLogLevel(level string) {
	if level == "" {
		DefaultLogger.SetLevel(log.InfoLevel)
		return
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		DefaultLogger.Warnf("Unknown log level %q, using info level", level)
		lvl = log.InfoLevel
	}
	DefaultLogger.SetLevel(lvl)
}

func logFileName(dir string, day time.Time) string {
	return filepath.Join(dir, logFilePrefix+day.Format(logDateFormat)+logFileSuffix)
}

// PruneLogFiles deletes daily log files in dir that are older than keepDays relative to now.
func PruneLogFiles(dir string, now time.Time, keepDays int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	today, _ := time.ParseInLocation(logDateFormat, now.Format(logDateFormat), now.Location())
	cutoff := today.AddDate(0, 0, -(keepDays - 1))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, logFileSuffix) {
			continue
		}
		day, err := time.ParseInLocation(logDateFormat, strings.TrimSuffix(strings.TrimPrefix(name, logFilePrefix), logFileSuffix), now.Location())
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				DefaultLogger.Debugf("Failed to remove old log file %s: %v", name, err)
			}
		}
	}
}
