package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spin runs fn while animating a spinner with the given message. The
// animation is replaced by a check or cross line when fn returns. Pressing
// q or ctrl+c abandons the wait and returns an error; fn keeps running in
// the background in that case and its result is discarded.
func Spin(message string, fn func() error) error {
	styles := NewStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Theme().Primary)

	m := spinModel{spinner: sp, message: message, styles: styles}
	p := tea.NewProgram(m)

	go func() {
		err := fn()
		// Let at least one frame render before the result replaces it.
		time.Sleep(100 * time.Millisecond)
		p.Send(spinDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := final.(spinModel)
	if !ok {
		return fmt.Errorf("unexpected spinner model %T", final)
	}
	if fm.canceled {
		return errors.New("canceled")
	}
	return fm.err
}

type spinDoneMsg struct {
	err error
}

type spinModel struct {
	spinner  spinner.Model
	message  string
	styles   *Styles
	err      error
	finished bool
	canceled bool
}

func (m spinModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s := msg.String(); s == "q" || s == "ctrl+c" {
			m.canceled = true
			return m, tea.Quit
		}
		return m, nil
	case spinDoneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinModel) View() string {
	switch {
	case m.canceled:
		return ""
	case m.finished && m.err != nil:
		return m.styles.Error.Render("✗ "+m.err.Error()) + "\n"
	case m.finished:
		return m.styles.Success.Render("✓ "+m.message) + "\n"
	}
	return m.spinner.View() + " " + m.message + "\n"
}
