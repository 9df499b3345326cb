package routine

import (
	"fmt"
	"time"

	"github.com/oshokin/tickstack/internal/timeline"
)

// Build turns a routine into a timeline. A stopwatch end phrase becomes a
// phrase step of its own since stopwatches do not speak when they stop.
func Build(r *Routine, opts ...timeline.Option) (*timeline.Timeline, error) {
	defs, err := Expand(r)
	if err != nil {
		return nil, err
	}

	steps := make([]timeline.Step, 0, len(defs))

	for i, def := range defs {
		switch def.Type {
		case StepCountdown:
			var countdownOpts []timeline.CountdownOption
			if def.End != "" {
				countdownOpts = append(countdownOpts, timeline.WithEndPhrase(def.End))
			}

			countdown, err := timeline.NewCountdown(time.Duration(def.Seconds)*time.Second, def.Say, countdownOpts...)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}

			steps = append(steps, countdown)
		case StepStopwatch:
			steps = append(steps, timeline.NewStopwatch(def.Say))
			if def.End != "" {
				steps = append(steps, timeline.NewPhrase(def.End))
			}
		case StepPhrase:
			steps = append(steps, timeline.NewPhrase(def.Say))
		default:
			return nil, fmt.Errorf("step %d: unexpected step type %q", i+1, def.Type)
		}
	}

	return timeline.New(r.Title, steps, opts...), nil
}
