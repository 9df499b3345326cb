package power

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

// acquire pins a goroutine to an OS thread and sets the execution state on it.
// The state belongs to the thread, so the same thread must clear it.
func acquire(ctx context.Context) (*ScreenLock, error) {
	setState := windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadExecutionState")
	if err := setState.Find(); err != nil {
		return nil, fmt.Errorf("find SetThreadExecutionState: %w", err)
	}

	var (
		started = make(chan error, 1)
		release = make(chan struct{})
		done    = make(chan error, 1)
	)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		previous, _, callErr := setState.Call(uintptr(esContinuous | esSystemRequired | esDisplayRequired))
		if previous == 0 {
			started <- fmt.Errorf("set thread execution state: %w", callErr)
			return
		}

		started <- nil

		<-release

		if cleared, _, clearErr := setState.Call(uintptr(esContinuous)); cleared == 0 {
			done <- fmt.Errorf("clear thread execution state: %w", clearErr)
			return
		}

		done <- nil
	}()

	select {
	case err := <-started:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		close(release)
		return nil, ctx.Err()
	}

	return &ScreenLock{
		Method: "SetThreadExecutionState",
		release: func() error {
			close(release)
			return <-done
		},
	}, nil
}
