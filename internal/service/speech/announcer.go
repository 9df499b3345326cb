package speech

import (
	"context"
	"errors"
	"time"

	"github.com/oshokin/tickstack/internal/logger"
)

// Announcer bounds every utterance and turns failures into log lines.
type Announcer struct {
	speaker Speaker
	timeout time.Duration
}

// NewAnnouncer wraps speaker. A non-positive timeout leaves utterances unbounded.
func NewAnnouncer(speaker Speaker, timeout time.Duration) *Announcer {
	if speaker == nil {
		speaker = Silent{}
	}

	return &Announcer{
		speaker: speaker,
		timeout: timeout,
	}
}

// Speak says text. It only returns an error when ctx itself is done, so a
// broken synthesizer never stalls or fails a routine.
func (a *Announcer) Speak(ctx context.Context, text string) error {
	speakCtx := ctx

	if a.timeout > 0 {
		var cancel context.CancelFunc

		speakCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	err := a.speaker.Speak(speakCtx, text)

	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(speakCtx.Err(), context.DeadlineExceeded):
		logger.WarnKV(ctx, "Speech timed out", "text", text, "timeout", a.timeout)
	case err != nil:
		logger.WarnKV(ctx, "Speech failed", "text", text, "error", err)
	}

	return nil
}
