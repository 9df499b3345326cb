// Package timeline runs an ordered list of spoken, timed steps.
//
// A Step is one of three variants: Countdown runs for a fixed number of
// seconds, Stopwatch counts up until it is stopped, and Phrase only speaks.
// A Timeline runs its steps strictly one at a time and forwards every state
// they emit to a single replaceable observer. Next stops the current step,
// which is the only way to end a step early.
package timeline
