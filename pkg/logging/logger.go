package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogDirEnv overrides the directory log files are written to.
const LogDirEnv = "BROWSERKIT_LOG_DIR"

const timestampLayout = "2006-01-02 15:04:05.000"

type level string

const (
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
	levelError level = "ERROR"
)

// Logger writes component-tagged lines of the form
// "[timestamp] [component] [LEVEL] message". File loggers created in the same
// process append to one file named after the process session ID.
type Logger struct {
	component string
	session   string
	path      string

	mu  sync.Mutex
	out *log.Logger

	file      *os.File
	closeOnce sync.Once
}

var (
	session     string
	sessionOnce sync.Once

	dir     string
	dirErr  error
	dirOnce sync.Once
)

func processSession() string {
	sessionOnce.Do(func() {
		session = uuid.New().String()
	})
	return session
}

// logDirectory resolves BROWSERKIT_LOG_DIR, or ~/.browserkit/logs, and makes
// sure it exists. The result is fixed for the life of the process.
func logDirectory() (string, error) {
	dirOnce.Do(func() {
		d := os.Getenv(LogDirEnv)
		if d == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				dirErr = fmt.Errorf("failed to get home directory: %w", err)
				return
			}
			d = filepath.Join(home, ".browserkit", "logs")
		}
		if err := os.MkdirAll(d, 0750); err != nil {
			dirErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}
		dir = d
	})
	return dir, dirErr
}

// NewLogger opens the session log file for component.
//
// When the file cannot be opened the returned logger writes to stderr and the
// error explains why, so callers can warn about the fallback.
func NewLogger(component string) (*Logger, error) {
	d, err := logDirectory()
	if err != nil {
		return stderrFallback(component, err), err
	}

	path := filepath.Join(d, processSession()+"-browserkit.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		err = fmt.Errorf("failed to open log file: %w", err)
		return stderrFallback(component, err), err
	}

	l := NewWriterLogger(component, f)
	l.file = f
	l.path = path
	return l, nil
}

// NewWriterLogger returns a logger that writes to w. It owns no file.
func NewWriterLogger(component string, w io.Writer) *Logger {
	return &Logger{
		component: component,
		session:   processSession(),
		out:       log.New(w, "", 0),
	}
}

func stderrFallback(component string, cause error) *Logger {
	l := NewWriterLogger(component, os.Stderr)
	l.Warnf("file logging unavailable, writing to stderr: %v", cause)
	return l
}

func (l *Logger) logf(lvl level, format string, v ...interface{}) {
	line := fmt.Sprintf("[%s] [%s] [%s] %s",
		time.Now().Format(timestampLayout), l.component, lvl, fmt.Sprintf(format, v...))

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Println(line)
}

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...interface{}) { l.logf(levelInfo, format, v...) }

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) { l.logf(levelWarn, format, v...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) { l.logf(levelError, format, v...) }

// SessionID returns the ID shared by all loggers in this process.
func (l *Logger) SessionID() string {
	return l.session
}

// LogPath returns the log file path, or "" when not writing to a file.
func (l *Logger) LogPath() string {
	return l.path
}

// Close closes the log file, if any. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
