//go:build !linux && !darwin && !windows

package power

import "context"

func acquire(context.Context) (*ScreenLock, error) {
	return nil, ErrUnsupportedOS
}
