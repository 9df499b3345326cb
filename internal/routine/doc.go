// Package routine loads routine definitions and builds timelines from them.
//
// A routine is a YAML document with a title, optional reusable blocks and an
// ordered list of steps. Built-in routines are embedded in the binary; a
// user directory may add routines or replace built-in ones with the same slug.
package routine
