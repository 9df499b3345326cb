package timeline

import (
	"context"
	"time"

	"github.com/oshokin/tickstack/internal/domain/workout"
)

// Phrase is an announcement step: it speaks once and is done.
type Phrase struct {
	lifecycle

	text string
}

// NewPhrase returns an announcement of text.
func NewPhrase(text string) *Phrase {
	return &Phrase{text: text}
}

// Duration implements Step. Phrases report 0.
func (p *Phrase) Duration() time.Duration {
	return 0
}

// Text returns the spoken text.
func (p *Phrase) Text() string {
	return p.text
}

// Run implements Step. Stop cancels the utterance in flight.
func (p *Phrase) Run(ctx context.Context) error {
	stopped, env, err := p.start()
	if err != nil {
		return err
	}

	defer p.finish()

	p.emit(workout.Speech{DisplayText: p.text})
	speakUntilStopped(ctx, env.speaker, p.text, stopped)

	return ctx.Err()
}
