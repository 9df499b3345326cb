package display

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/tickstack/internal/domain/workout"
)

// StatusMsg carries a fresh run snapshot into the model.
type StatusMsg struct {
	Status *workout.Status
}

// FinishedMsg tells the model the run is over.
type FinishedMsg struct {
	// Completed is false when the run was aborted.
	Completed bool
}

const (
	defaultWidth = 60
	minBarWidth  = 10
	maxBarWidth  = 72
)

// Model is the bubbletea model of a running routine.
type Model struct {
	styles    Styles
	status    *workout.Status
	onNext    func()
	width     int
	finished  bool
	completed bool
}

// NewModel returns a model showing status. onNext is called for the next keys.
func NewModel(status *workout.Status, onNext func()) Model {
	return Model{
		styles: DefaultStyles(),
		status: status.Clone(),
		onNext: onNext,
		width:  defaultWidth,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "n", "enter":
			if !m.finished && m.onNext != nil {
				m.onNext()
			}
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case StatusMsg:
		if msg.Status != nil {
			m.status = msg.Status
		}
	case FinishedMsg:
		m.finished = true
		m.completed = msg.Completed

		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	status := m.status
	if status == nil {
		status = new(workout.Status)
	}

	lines := []string{
		m.styles.Title.Render(status.Title),
		m.styles.Muted.Render(fmt.Sprintf(
			"Step %d/%d · total %s", status.StepNumber(), status.StepCount, workout.FormatTotal(status.TotalDuration),
		)),
		"",
	}

	lines = append(lines, m.stateLines(status.State)...)

	switch {
	case m.finished && m.completed:
		lines = append(lines, "", m.styles.Done.Render("Routine complete."))
	case m.finished:
		lines = append(lines, "", m.styles.Muted.Render("Routine stopped."))
	default:
		lines = append(lines, "", m.styles.Muted.Render("space/n/enter next · q quit"))
	}

	return strings.Join(lines, "\n") + "\n"
}

func (m Model) stateLines(state workout.State) []string {
	switch s := state.(type) {
	case workout.Countdown:
		return []string{
			m.styles.Text.Render(s.Text()),
			m.styles.Readout.Render(strconv.Itoa(s.RemainingSeconds())),
			m.progressBar(s.ProgressRatio),
		}
	case workout.Stopwatch:
		return []string{
			m.styles.Text.Render(s.Text()),
			m.styles.Readout.Render(s.Clock()),
		}
	case workout.Speech:
		return []string{
			m.styles.Speech.Render(s.Text()),
		}
	default:
		return []string{m.styles.Muted.Render("Getting ready...")}
	}
}

// progressBar renders ratio as a bar scaled to the window width.
func (m Model) progressBar(ratio float64) string {
	width := min(max(m.width-4, minBarWidth), maxBarWidth)
	ratio = min(max(ratio, 0), 1)
	filled := int(ratio * float64(width))

	return m.styles.Filled.Render(strings.Repeat("█", filled)) +
		m.styles.Track.Render(strings.Repeat("░", width-filled))
}
