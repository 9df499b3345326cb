// Package workout contains the domain types shared by the sequencing engine,
// the displays and the control transport.
//
// State is the observable timer state of the active step. Status is a
// point-in-time snapshot of a whole run, cloned before it leaves the engine.
package workout
