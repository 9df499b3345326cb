// Package clock turns a stream of frame timestamps into a drift-corrected
// once-per-second tick plus the raw frame signal.
//
// Elapsed time is always computed as frame timestamp minus the origin captured
// on the first frame of a run, so irregular frame delivery never accumulates
// error. A Clock is owned by a single step and may be run again after it
// stops.
package clock
