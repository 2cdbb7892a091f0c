package main

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWindowHeight = 24
	defaultWindowWidth  = 80
	minVisibleHeight    = 3
	minPaneWidth        = 12
	maxInputWidth       = 70
	minInputWidth       = 30
	externalChangeNote  = "tasks.json changed on disk; saving will overwrite it"
)

// redrawMsg repaints the screen on a fixed cadence even without input
type redrawMsg time.Time

func redrawTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return redrawMsg(t)
	})
}

// model is the BubbleTea model. It owns the tree, the navigation path and
// the wizard; nothing else mutates them.
type model struct {
	store *Store
	root  *Folder
	path  []string
	tab   int

	wizard   Wizard
	help     help.Model
	viewport viewport.Model

	redrawInterval time.Duration
	watcher        *Watcher
	debouncer      *Debouncer
	notice         string

	windowHeight int
	windowWidth  int
	quitting     bool
	err          error
}

func newModel(store *Store, root *Folder, redrawInterval time.Duration, watcher *Watcher, debouncer *Debouncer) model {
	if root == nil {
		root = NewFolder("")
	}

	if redrawInterval <= 0 {
		redrawInterval = defaultRedrawInterval
	}

	return model{
		store:          store,
		root:           root,
		wizard:         NewWizard(),
		help:           help.New(),
		viewport:       viewport.New(defaultWindowWidth, defaultWindowHeight),
		redrawInterval: redrawInterval,
		watcher:        watcher,
		debouncer:      debouncer,
		windowHeight:   defaultWindowHeight,
		windowWidth:    defaultWindowWidth,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.WindowSize(), redrawTick(m.redrawInterval)}

	if m.watcher != nil {
		cmds = append(cmds, m.watcher.WatchCmd())
	}

	return tea.Batch(cmds...)
}

// current resolves the folder the session is looking at. A path that no
// longer resolves is cut back to its longest valid prefix.
func (m *model) current() *Folder {
	for {
		folder, err := m.root.Resolve(m.path)
		if err == nil {
			return folder
		}

		logger.Warn().Err(err).Strs("path", m.path).Msg("trimming unresolvable path")
		m.path = m.path[:len(m.path)-1]
	}
}

func (m *model) inputWidth() int {
	return max(minInputWidth, min(maxInputWidth, m.windowWidth-10))
}

// fail records a fatal error and ends the session
func (m model) fail(err error) (tea.Model, tea.Cmd) {
	logger.Error().Err(err).Msg("fatal")
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height
		m.windowWidth = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		m.help.Width = msg.Width
		m.wizard.SetInputWidth(m.inputWidth())
		return m, nil

	case redrawMsg:
		return m, redrawTick(m.redrawInterval)

	case FileChangeMsg:
		if m.debouncer != nil {
			m.debouncer.Trigger()
		}
		if m.watcher != nil {
			return m, m.watcher.WatchCmd()
		}
		return m, nil

	case DebouncedRefreshMsg:
		if m.store != nil && m.store.ChangedOnDisk() {
			logger.Warn().Str("path", m.store.Path()).Msg("store modified outside this session")
			m.notice = externalChangeNote
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.wizard.UpdateInput(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := m.current()

	effect, cmd := m.wizard.HandleKey(msg, cur)
	m.wizard.SetInputWidth(m.inputWidth())

	switch effect {
	case EffectQuit:
		m.quitting = true
		return m, tea.Quit

	case EffectSave:
		if m.store != nil {
			if err := m.store.Save(m.root); err != nil {
				return m.fail(err)
			}
		}
		m.notice = ""

	case EffectEnter:
		if folder := cur.SelectedFolder(); folder != nil {
			m.path = append(slices.Clip(m.path), folder.Name)
		}

	case EffectLeave:
		if len(m.path) > 0 {
			m.path = m.path[:len(m.path)-1]
		}

	case EffectNextTab:
		m.tab = (m.tab + 1) % len(viewTabs)
	}

	return m, cmd
}
