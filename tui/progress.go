// Package tui renders clipper's interactive terminal output.
package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/clipper/clip"
	"github.com/user/clipper/job"
	"github.com/user/clipper/tui/components"
)

const defaultWidth = 60

// clipStartedMsg is sent when the engine starts cutting a clip.
type clipStartedMsg struct {
	label       string
	destination string
}

// clipFinishedMsg is sent when a clip reaches a final status.
type clipFinishedMsg struct {
	outcome clip.Outcome
}

// runDoneMsg is the last message sent before the channel closes.
type runDoneMsg struct {
	report *clip.Report
	err    error
}

// channelObserver forwards runner notifications to the progress program.
type channelObserver struct {
	ch chan<- tea.Msg
}

func (o channelObserver) ClipStarted(c job.Clip, destination string) {
	o.ch <- clipStartedMsg{label: c.Label, destination: destination}
}

func (o channelObserver) ClipFinished(out clip.Outcome) {
	o.ch <- clipFinishedMsg{outcome: out}
}

// waitForMsg returns a tea.Cmd that waits for the next message on the channel.
func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// progressModel is the Bubbletea model shown while a job runs.
type progressModel struct {
	ch     <-chan tea.Msg
	cancel context.CancelFunc
	state  components.RunProgressState
	width  int
	done   *runDoneMsg
}

func newProgressModel(ch <-chan tea.Msg, cancel context.CancelFunc, total int) progressModel {
	return progressModel{
		ch:     ch,
		cancel: cancel,
		state:  components.RunProgressState{Total: total},
		width:  defaultWidth,
	}
}

func (m progressModel) Init() tea.Cmd {
	return waitForMsg(m.ch)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 100)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// The run finishes its current clip bookkeeping and reports
			// back through runDoneMsg.
			m.state.Cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case clipStartedMsg:
		m.state.Current = msg.label
		return m, waitForMsg(m.ch)

	case clipFinishedMsg:
		m.state.Done++
		switch msg.outcome.Status {
		case clip.StatusSkipped:
			m.state.Skipped++
		case clip.StatusFailed:
			m.state.Failed++
		}
		m.state.Current = ""
		return m, tea.Sequence(tea.Println(OutcomeLine(msg.outcome)), waitForMsg(m.ch))

	case runDoneMsg:
		m.done = &msg
		m.state.Finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	return components.RunProgress(m.state, m.width) + "\n"
}

// RunFunc executes a job, reporting each clip to obs.
type RunFunc func(ctx context.Context, obs clip.Observer) (*clip.Report, error)

// RunWithProgress executes run in the background while a progress box is
// drawn on out. Pressing ctrl+c cancels the run's context. It returns once
// run has returned.
func RunWithProgress(ctx context.Context, out io.Writer, total int, run RunFunc) (*clip.Report, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan tea.Msg)
	go func() {
		defer close(ch)
		report, err := run(runCtx, channelObserver{ch: ch})
		ch <- runDoneMsg{report: report, err: err}
	}()

	p := tea.NewProgram(
		newProgressModel(ch, cancel, total),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)
	final, progErr := p.Run()

	result, _ := final.(progressModel)
	if result.done == nil {
		// The program stopped early; keep draining so the runner never
		// blocks on a send.
		cancel()
		for msg := range ch {
			if d, ok := msg.(runDoneMsg); ok {
				result.done = &d
			}
		}
	}
	if result.done == nil {
		return nil, fmt.Errorf("progress display: %w", progErr)
	}
	return result.done.report, result.done.err
}
