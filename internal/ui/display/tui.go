package display

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/tickstack/internal/domain/workout"
)

// TUI runs the bubbletea program of a routine.
// Show and Finish never block the caller; the newest status wins.
type TUI struct {
	program *tea.Program

	mu       sync.Mutex
	pending  *workout.Status
	finished *FinishedMsg
	notify   chan struct{}
}

// NewTUI creates the terminal UI. onNext is called when a next key is pressed.
func NewTUI(status *workout.Status, onNext func(), opts ...tea.ProgramOption) *TUI {
	return &TUI{
		program: tea.NewProgram(NewModel(status, onNext), opts...),
		notify:  make(chan struct{}, 1),
	}
}

// Show queues a status snapshot for rendering.
func (t *TUI) Show(status *workout.Status) {
	t.mu.Lock()
	t.pending = status.Clone()
	t.mu.Unlock()

	t.wake()
}

// Finish tells the UI the run is over. The program exits after drawing it.
func (t *TUI) Finish(completed bool) {
	t.mu.Lock()
	t.finished = &FinishedMsg{Completed: completed}
	t.mu.Unlock()

	t.wake()
}

// Run blocks until the user quits, Finish is processed or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go t.pump(ctx)

	go func() {
		<-ctx.Done()
		t.program.Quit()
	}()

	_, err := t.program.Run()

	return err
}

func (t *TUI) wake() {
	select {
	case t.notify <- struct{}{}:
	default:
	}
}

// pump hands queued messages to the program one at a time.
func (t *TUI) pump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.notify:
		}

		t.mu.Lock()
		status, finished := t.pending, t.finished
		t.pending = nil
		t.mu.Unlock()

		if status != nil {
			t.program.Send(StatusMsg{Status: status})
		}

		if finished != nil {
			t.program.Send(*finished)
			return
		}
	}
}
