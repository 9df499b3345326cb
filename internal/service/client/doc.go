// Package client implements the `tickstack next` and `tickstack status` commands.
//
// Both connect to the control endpoint of a running routine: next skips the
// current step, status prints the run once or keeps watching it until it ends.
package client
