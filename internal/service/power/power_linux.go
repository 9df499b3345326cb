package power

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverService   = "org.freedesktop.ScreenSaver"
	screenSaverPath      = dbus.ObjectPath("/org/freedesktop/ScreenSaver")
	screenSaverInhibit   = screenSaverService + ".Inhibit"
	screenSaverUnInhibit = screenSaverService + ".UnInhibit"
)

// acquire asks the desktop session first and falls back to systemd-inhibit.
func acquire(ctx context.Context) (*ScreenLock, error) {
	lock, err := inhibitScreenSaver(ctx)
	if err == nil {
		return lock, nil
	}

	lock, fallbackErr := holdProcess("systemd-inhibit",
		"--what=idle:sleep",
		"--who="+inhibitorName,
		"--why="+inhibitorReason,
		"--mode=block",
		"sleep", "infinity",
	)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w; %w", err, fallbackErr)
	}

	return lock, nil
}

// inhibitScreenSaver holds a freedesktop ScreenSaver inhibit cookie.
// The session bus drops the inhibitor when the connection closes.
func inhibitScreenSaver(ctx context.Context) (*ScreenLock, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	obj := conn.Object(screenSaverService, screenSaverPath)

	var cookie uint32
	if err = obj.CallWithContext(ctx, screenSaverInhibit, 0, inhibitorName, inhibitorReason).Store(&cookie); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("inhibit screen saver: %w", err)
	}

	return &ScreenLock{
		Method: screenSaverService,
		release: func() error {
			defer conn.Close()

			if err := obj.Call(screenSaverUnInhibit, 0, cookie).Err; err != nil {
				return fmt.Errorf("uninhibit screen saver: %w", err)
			}

			return nil
		},
	}, nil
}
