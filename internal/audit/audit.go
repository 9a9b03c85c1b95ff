// Package audit provides an append-only log of command gate decisions.
//
// The log is disabled by default so attempted command strings never leak
// into normal output; it activates only via the debug flag or env var and
// always writes under the user state directory, never the scanned tree.
package audit

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/envdoctor/envdoctor/internal/constants"
	"github.com/envdoctor/envdoctor/internal/logger"
	"github.com/klauspost/compress/gzip"
)

// TimestampFormat is the format used for audit log timestamps.
const TimestampFormat = "2006-01-02T15:04:05.0Z07:00"

// maxLogSize is the rotation threshold for the audit log.
const maxLogSize = 5 << 20

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp  string  `json:"timestamp"`
	Command    string  `json:"command"`
	Safe       bool    `json:"safe"`
	Blocked    bool    `json:"blocked"`
	Reason     string  `json:"reason"`
	Rule       string  `json:"rule,omitempty"`
	ExitCode   int     `json:"exit_code"`
	DurationMs float64 `json:"duration_ms"`
	Cwd        string  `json:"cwd,omitempty"`
}

var (
	auditFile *os.File
	auditPath string
	mu        sync.Mutex
	enabled   bool
)

// DefaultLogPath returns the default audit log path
// (~/.local/share/envdoctor/audit.log).
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", constants.AppName, constants.AuditFileName), nil
}

// Init opens the audit log for appending. If path is empty, the default
// path is used. When enable is false the audit log stays off and Record is
// a no-op.
func Init(path string, enable bool) error {
	mu.Lock()
	defer mu.Unlock()

	if !enable {
		enabled = false
		return nil
	}

	if path == "" {
		var err error
		path, err = DefaultLogPath()
		if err != nil {
			logger.Debug("failed to get default audit log path", "error", err)
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.DirMode); err != nil {
		logger.Debug("failed to create audit log directory", "error", err)
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FileMode)
	if err != nil {
		logger.Debug("failed to open audit log file", "error", err)
		return err
	}

	auditFile = f
	auditPath = path
	enabled = true
	logger.Debug("audit logging initialized", "path", path)
	return nil
}

// Close closes the audit log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if auditFile != nil {
		err := auditFile.Close()
		auditFile = nil
		enabled = false
		return err
	}
	return nil
}

// Record writes an entry to the audit log, rotating first if the log has
// grown past the size threshold. No-op when audit logging is disabled.
func Record(entry Entry) error {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || auditFile == nil {
		return nil
	}

	if info, err := auditFile.Stat(); err == nil && info.Size() > maxLogSize {
		if err := rotateLocked(); err != nil {
			logger.Debug("audit log rotation failed", "error", err)
		}
	}

	entry.Timestamp = time.Now().UTC().Format(TimestampFormat)

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Debug("failed to marshal audit entry", "error", err)
		return err
	}

	if _, err := auditFile.Write(append(data, '\n')); err != nil {
		logger.Debug("failed to write audit entry", "error", err)
		return err
	}

	return nil
}

// rotateLocked moves the current log aside, gzip-compresses it, and reopens
// a fresh log at the same path. Caller holds mu.
func rotateLocked() error {
	if err := auditFile.Close(); err != nil {
		return err
	}
	auditFile = nil

	rotated := auditPath + ".1"
	if err := os.Rename(auditPath, rotated); err != nil {
		return reopenLocked()
	}
	if err := compressFile(rotated, rotated+".gz"); err == nil {
		os.Remove(rotated)
	}
	return reopenLocked()
}

func reopenLocked() error {
	f, err := os.OpenFile(auditPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FileMode)
	if err != nil {
		enabled = false
		return err
	}
	auditFile = f
	return nil
}

func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FileMode)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// IsEnabled returns whether audit logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Reset resets the audit state. Used for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	if auditFile != nil {
		auditFile.Close()
	}
	auditFile = nil
	auditPath = ""
	enabled = false
}
