package power

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

const (
	// inhibitorName is shown by the OS as the owner of the inhibitor.
	inhibitorName = "tickstack"
	// inhibitorReason is shown by the OS next to inhibitorName.
	inhibitorReason = "Routine in progress"
)

var (
	// ErrUnsupportedOS indicates the current OS has no known screen-wake mechanism.
	ErrUnsupportedOS = errors.New("unsupported operating system")
	// errNoHolder is returned when a lock has nothing to release.
	errNoHolder = errors.New("screen lock has no holder")
)

// ScreenLock is a held screen-wake inhibitor.
type ScreenLock struct {
	// Method names the mechanism holding the lock.
	Method string

	once    sync.Once
	release func() error
	err     error
}

// Release gives the inhibitor back. Only the first call has an effect.
func (l *ScreenLock) Release() error {
	if l == nil {
		return nil
	}

	l.once.Do(func() {
		if l.release == nil {
			l.err = errNoHolder
			return
		}

		l.err = l.release()
	})

	return l.err
}

// AcquireScreenLock keeps the display awake until Release is called.
func AcquireScreenLock(ctx context.Context) (*ScreenLock, error) {
	lock, err := acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire screen lock on %s: %w", runtime.GOOS, err)
	}

	return lock, nil
}

// holdProcess keeps a helper process alive for the lifetime of the lock.
func holdProcess(name string, args ...string) (*ScreenLock, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", name, err)
	}

	// The helper outlives ctx; only Release ends it.
	cmd := exec.Command(path, args...) //nolint:gosec,noctx // Fixed helper and arguments.
	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}

	return &ScreenLock{
		Method: name,
		release: func() error {
			if killErr := cmd.Process.Kill(); killErr != nil && !errors.Is(killErr, os.ErrProcessDone) {
				return fmt.Errorf("stop %s: %w", name, killErr)
			}

			// The exit status of a killed helper carries no information.
			_ = cmd.Wait()

			return nil
		},
	}, nil
}
