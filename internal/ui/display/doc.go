// Package display renders a running routine.
//
// The terminal UI draws the current step, a big readout and a progress bar with
// bubbletea and lipgloss, and forwards the next key to the runner. When stdout
// is not a terminal the Plain renderer writes the same information as log lines.
package display
