package main

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// Minimum time before showing the loading screen
	loadingDelay = 200 * time.Millisecond
)

// loadResult holds what Store.Load produced
type loadResult struct {
	root *Folder
	err  error
}

// loadCompleteMsg is sent when loading is complete
type loadCompleteMsg struct{}

// loaderModel handles the loading screen
type loaderModel struct {
	spinner      spinner.Model
	path         string
	windowWidth  int
	windowHeight int
	startTime    time.Time
	showLoader   bool
	aborted      bool
}

func newLoaderModel(path string) loaderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cursorStyle

	return loaderModel{
		spinner:   s,
		path:      path,
		startTime: time.Now(),
	}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tea.WindowSize(),
	)
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, forceQuitKey) {
			m.aborted = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if !m.showLoader && time.Since(m.startTime) > loadingDelay {
			m.showLoader = true
		}
		return m, cmd

	case loadCompleteMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m loaderModel) View() string {
	if !m.showLoader {
		return ""
	}

	content := titleStyle.Render(" rtasks ") + " " + m.spinner.View() + " Loading tasks..." +
		"\n" + dimTextStyle.Render(m.path)

	return lipgloss.Place(m.windowWidth, m.windowHeight, lipgloss.Center, lipgloss.Center, content)
}

// LoadWithSpinner loads the store in the background and shows a loading
// screen only when that takes longer than loadingDelay. The returned bool is
// false when the user aborted the wait.
func LoadWithSpinner(store *Store) (*Folder, bool, error) {
	done := make(chan loadResult, 1)

	go func() {
		root, err := store.Load()
		done <- loadResult{root: root, err: err}
	}()

	select {
	case res := <-done:
		return res.root, true, res.err
	case <-time.After(loadingDelay):
	}

	p := tea.NewProgram(newLoaderModel(store.Path()), tea.WithAltScreen())

	result := make(chan loadResult, 1)
	go func() {
		res := <-done
		result <- res
		p.Send(loadCompleteMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	if lm, ok := final.(loaderModel); ok && lm.aborted {
		return nil, false, nil
	}

	res := <-result
	return res.root, true, res.err
}
