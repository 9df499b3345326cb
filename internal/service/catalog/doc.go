// Package catalog implements the `tickstack list` command.
//
// It prints the built-in routines merged with the routines of the configured
// directory, or the expanded steps of a single routine.
package catalog
