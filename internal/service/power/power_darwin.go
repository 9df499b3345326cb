package power

import "context"

// acquire runs caffeinate, which prevents display and idle sleep until killed.
func acquire(context.Context) (*ScreenLock, error) {
	return holdProcess("caffeinate", "-d", "-i")
}
