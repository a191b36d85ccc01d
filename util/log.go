package util

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConsole keeps the log on stderr
const LogConsole = "console"

// InitLog parses and sets log-level input
func InitLog(logLevel string, logPath string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Errorf("Failed parsing log-level %s: %s", logLevel, err)
		return err
	}

	var out io.Writer = os.Stderr
	if logPath != "" && logPath != LogConsole {
		out = &lumberjack.Logger{
			// Log file absolute path, os agnostic
			Filename:   filepath.ToSlash(logPath),
			MaxSize:    5, // MB
			MaxBackups: 10,
			MaxAge:     30, // days
			Compress:   true,
		}
	}

	log.SetOutput(out)
	log.SetFormatter(&CustomFormatter{TextFormatter: log.TextFormatter{FullTimestamp: true}})
	log.SetLevel(level)
	return nil
}

// CustomFormatter formats the log message as required
type CustomFormatter struct {
	log.TextFormatter
}

// Format tags every entry with the launcher pid, so several concurrent
// launchers writing to one log file can be told apart
func (f *CustomFormatter) Format(entry *log.Entry) ([]byte, error) {
	if _, ok := entry.Data["pid"]; !ok {
		entry.Data["pid"] = os.Getpid()
	}
	return f.TextFormatter.Format(entry)
}
