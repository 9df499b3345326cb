package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnavailable is returned by Detect when no synthesizer is installed.
var ErrUnavailable = errors.New("no speech synthesizer available")

// Speaker speaks a phrase and blocks until the utterance ends or ctx is done.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Silent is a Speaker that returns at once.
type Silent struct{}

// Speak implements Speaker.
func (Silent) Speak(context.Context, string) error {
	return nil
}

// CommandSpeaker runs a synthesizer process per phrase.
type CommandSpeaker struct {
	// Path is the synthesizer executable.
	Path string
	// Args precede the phrase on the command line.
	Args []string
	// Stdin feeds the phrase on standard input instead of as the last argument.
	Stdin bool
}

// Speak implements Speaker. Cancelling ctx kills the synthesizer.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	args := append([]string(nil), s.Args...)
	if !s.Stdin {
		args = append(args, text)
	}

	cmd := exec.CommandContext(ctx, s.Path, args...) //nolint:gosec // Synthesizer comes from detection or user config.
	if s.Stdin {
		cmd.Stdin = strings.NewReader(text)
	}

	output, err := cmd.CombinedOutput()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		return fmt.Errorf("run %s: %w: %s", s.Path, err, strings.TrimSpace(string(output)))
	}

	return nil
}

// String returns the command line without the phrase.
func (s *CommandSpeaker) String() string {
	return strings.TrimSpace(s.Path + " " + strings.Join(s.Args, " "))
}
