package runner

import (
	"context"
	"sync"

	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/timeline"
)

// fakeScreen records shown states and closes on Finish or quit.
type fakeScreen struct {
	mu       sync.Mutex
	texts    []string
	finished []bool

	once sync.Once
	done chan struct{}
	quit chan struct{}
}

func newFakeScreen() *fakeScreen {
	return &fakeScreen{
		done: make(chan struct{}),
		quit: make(chan struct{}),
	}
}

func (f *fakeScreen) Show(status *workout.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if status.State != nil {
		f.texts = append(f.texts, status.State.Text())
	}
}

func (f *fakeScreen) Finish(completed bool) {
	f.mu.Lock()
	f.finished = append(f.finished, completed)
	f.mu.Unlock()

	f.once.Do(func() { close(f.done) })
}

func (f *fakeScreen) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
	case <-f.done:
	case <-f.quit:
	}

	return nil
}

// shown reports whether text was rendered.
func (f *fakeScreen) shown(text string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.texts {
		if t == text {
			return true
		}
	}

	return false
}

// memoryJournal keeps appended records in memory.
type memoryJournal struct {
	mu      sync.Mutex
	records []*workout.Record
}

func (m *memoryJournal) Load(context.Context) ([]*workout.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*workout.Record(nil), m.records...), nil
}

func (m *memoryJournal) Append(_ context.Context, record *workout.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, record.Clone())

	return nil
}

// holdingSpeaker keeps talking until the utterance is canceled.
func holdingSpeaker() timeline.Speaker {
	return timeline.SpeakerFunc(func(ctx context.Context, _ string) error {
		<-ctx.Done()
		return ctx.Err()
	})
}

// phraseTimeline builds a timeline whose steps only end on next.
func phraseTimeline(texts ...string) *timeline.Timeline {
	steps := make([]timeline.Step, 0, len(texts))
	for _, text := range texts {
		steps = append(steps, timeline.NewPhrase(text))
	}

	return timeline.New("Phrases", steps, timeline.WithSpeaker(holdingSpeaker()), timeline.WithRunID("run-1"))
}
