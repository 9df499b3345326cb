// Package power keeps the display awake while a routine runs.
//
// Each platform uses what it ships with: the freedesktop ScreenSaver D-Bus
// service or systemd-inhibit on Linux, caffeinate on macOS and
// SetThreadExecutionState on Windows. Callers treat every error as
// "no wake lock" and carry on.
package power
