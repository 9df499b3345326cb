// Package runner implements the `tickstack run` command.
//
// It loads a routine, builds its timeline with speech, screen wake lock and
// clock frames, serves the control endpoint for remote next requests, drives
// the display, and records the finished run in the journal.
package runner
