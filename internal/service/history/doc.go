// Package history implements the `tickstack history` command.
//
// It prints the most recent records of the run journal.
package history
