package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// LockedError reports that another live process holds the lock
type LockedError struct {
	Path string
	PID  int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s is locked by running process %d", e.Path, e.PID)
}

// PIDFile guards a file-backed artifact store against concurrent passes.
// The lock file holds the owner's process ID; a lock left behind by a dead
// process is taken over.
type PIDFile struct {
	path string
}

// New creates a lock at path
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// ForStore returns the lock guarding the store file at storePath
func ForStore(storePath string) *PIDFile {
	return New(storePath + ".pid")
}

// Path returns the lock file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire takes the lock. It fails with *LockedError while another live
// process owns it.
func (p *PIDFile) Acquire() error {
	data, err := os.ReadFile(p.path)
	switch {
	case err == nil:
		pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if parseErr == nil && (pid == os.Getpid() || isProcessRunning(pid)) {
			return &LockedError{Path: p.path, PID: pid}
		}
		// stale or unreadable owner
		_ = os.Remove(p.path)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	if err := os.WriteFile(p.path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644); err != nil {
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	return nil
}

// Release removes the lock. Releasing a lock that is not held is a no-op.
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// isProcessRunning probes the process with signal 0
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		return true
	default:
		return false
	}
}
