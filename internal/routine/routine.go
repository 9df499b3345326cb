package routine

import (
	"strings"
	"time"
	"unicode"
)

// Routine is a titled list of steps.
type Routine struct {
	Title       string                `yaml:"title"`
	Description string                `yaml:"description,omitempty"`
	Blocks      map[string][]StepSpec `yaml:"blocks,omitempty"`
	Steps       []StepSpec            `yaml:"steps"`

	// Slug identifies the routine on the command line.
	Slug string `yaml:"-"`
	// Source is the file the routine came from, or "builtin".
	Source string `yaml:"-"`
	// Warnings lists problems that do not prevent the routine from running.
	Warnings []string `yaml:"-"`
}

// StepSpec describes one step of a routine.
type StepSpec struct {
	Type    StepType `yaml:"type"`
	Seconds int      `yaml:"seconds,omitempty"`
	Say     string   `yaml:"say,omitempty"`
	End     string   `yaml:"end,omitempty"`
	Block   string   `yaml:"block,omitempty"`
}

// StepType defines the kind of routine step.
type StepType string

// Step types.
const (
	StepCountdown StepType = "countdown"
	StepStopwatch StepType = "stopwatch"
	StepPhrase    StepType = "phrase"
	StepInclude   StepType = "include"
)

// SourceBuiltin marks routines embedded in the binary.
const SourceBuiltin = "builtin"

// TotalDuration returns the sum of countdown durations after expanding blocks.
func (r *Routine) TotalDuration() time.Duration {
	steps, err := Expand(r)
	if err != nil {
		return 0
	}

	var total time.Duration

	for _, step := range steps {
		if step.Type == StepCountdown {
			total += time.Duration(step.Seconds) * time.Second
		}
	}

	return total
}

// Slugify turns a title into a lowercase, dash-separated identifier.
func Slugify(title string) string {
	var (
		b    strings.Builder
		dash bool
	)

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}

			b.WriteRune(r)
			dash = false

			continue
		}

		dash = true
	}

	return b.String()
}
