package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Effect is work the wizard hands back to the session because it lives
// outside the current folder: navigation, view tabs, persistence and exit.
type Effect int

const (
	EffectNone Effect = iota
	EffectQuit
	EffectSave
	EffectEnter
	EffectLeave
	EffectNextTab
)

// Mode names the wizard state for the renderer
type Mode int

const (
	ModeIdle Mode = iota
	ModeHelp
	ModeNewMenu
	ModeEditMenu
	ModeAwaitingField
)

type taskStep int

const (
	stepTitle taskStep = iota
	stepDetails
	stepStatus
	stepStatusColor
)

func (s taskStep) label() string {
	switch s {
	case stepTitle:
		return "title"
	case stepDetails:
		return "details"
	case stepStatus:
		return "status"
	case stepStatusColor:
		return "status color (0-255)"
	}

	return ""
}

type requestKind int

const (
	requestNewFolder requestKind = iota
	requestRenameFolder
	requestNewTask
	requestEditTask
	requestConfirmDelete
)

// inputRequest is what an open prompt will do with its buffer on commit
type inputRequest struct {
	kind requestKind
	step taskStep
}

// Prompt is the title shown above the text input
func (r inputRequest) Prompt() string {
	switch r.kind {
	case requestNewFolder:
		return "New folder name"
	case requestRenameFolder:
		return "Rename folder"
	case requestNewTask:
		return "New task: " + r.step.label()
	case requestEditTask:
		return "Edit task: " + r.step.label()
	case requestConfirmDelete:
		return "Delete selected? (y/N)"
	}

	return ""
}

// state is one of the closed set of wizard states below
type state interface {
	Mode() Mode
}

type idleState struct{}

type helpState struct{}

type newMenuState struct{}

type editMenuState struct{}

// awaitingField owns the text buffer, so leaving the state always drops it
type awaitingField struct {
	request inputRequest
	input   textinput.Model
}

func (idleState) Mode() Mode     { return ModeIdle }
func (helpState) Mode() Mode     { return ModeHelp }
func (newMenuState) Mode() Mode  { return ModeNewMenu }
func (editMenuState) Mode() Mode { return ModeEditMenu }
func (awaitingField) Mode() Mode { return ModeAwaitingField }

func newField(request inputRequest) (awaitingField, tea.Cmd) {
	ti := textinput.New()
	ti.CharLimit = 0

	switch {
	case request.kind == requestConfirmDelete:
		ti.CharLimit = 3
		ti.Placeholder = "y/N"
	case request.step == stepStatusColor && request.kind == requestEditTask:
		ti.CharLimit = 4
		ti.Placeholder = "0-255"
	}

	cmd := ti.Focus()

	return awaitingField{request: request, input: ti}, tea.Batch(cmd, textinput.Blink)
}

// Wizard turns raw keys into edits of the current folder. It keeps a single
// scratch task that collects fields across the new-task chain.
type Wizard struct {
	state   state
	pending Task
}

func NewWizard() Wizard {
	return Wizard{state: idleState{}, pending: NewTask()}
}

func (w *Wizard) Mode() Mode {
	return w.state.Mode()
}

// Request returns the open prompt's request, if any
func (w *Wizard) Request() (inputRequest, bool) {
	field, ok := w.state.(awaitingField)
	return field.request, ok
}

// Input returns the open prompt's text input, if any
func (w *Wizard) Input() (textinput.Model, bool) {
	field, ok := w.state.(awaitingField)
	return field.input, ok
}

// Pending returns the task being assembled by the new-task chain
func (w *Wizard) Pending() Task {
	return w.pending
}

// SetInputWidth resizes the open prompt, if any
func (w *Wizard) SetInputWidth(width int) {
	if field, ok := w.state.(awaitingField); ok {
		field.input.Width = width
		w.state = field
	}
}

// UpdateInput forwards non-key messages, such as cursor blinks, to the open prompt
func (w *Wizard) UpdateInput(msg tea.Msg) tea.Cmd {
	field, ok := w.state.(awaitingField)
	if !ok {
		return nil
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	w.state = field

	return cmd
}

// HandleKey feeds one key into the state machine. cur is the folder the
// session is looking at.
func (w *Wizard) HandleKey(msg tea.KeyMsg, cur *Folder) (Effect, tea.Cmd) {
	if key.Matches(msg, forceQuitKey) {
		return EffectQuit, nil
	}

	next, effect, cmd := step(w.state, msg, cur, &w.pending)
	w.state = next

	return effect, cmd
}

// step is the transition function of the wizard
func step(s state, msg tea.KeyMsg, cur *Folder, pending *Task) (state, Effect, tea.Cmd) {
	switch s := s.(type) {
	case idleState:
		return stepIdle(msg, cur)
	case helpState:
		return stepHelp(msg, cur)
	case newMenuState:
		return stepNewMenu(msg)
	case editMenuState:
		return stepEditMenu(msg)
	case awaitingField:
		return stepField(s, msg, cur, pending)
	}

	return idleState{}, EffectNone, nil
}

func stepIdle(msg tea.KeyMsg, cur *Folder) (state, Effect, tea.Cmd) {
	switch {
	case key.Matches(msg, idleKeyMap.Up):
		cur.MoveSelection(-1)
	case key.Matches(msg, idleKeyMap.Down):
		cur.MoveSelection(1)
	case key.Matches(msg, idleKeyMap.Enter):
		return idleState{}, EffectEnter, nil
	case key.Matches(msg, idleKeyMap.Leave):
		return idleState{}, EffectLeave, nil
	case key.Matches(msg, idleKeyMap.Tab):
		return idleState{}, EffectNextTab, nil
	case key.Matches(msg, idleKeyMap.Help):
		return helpState{}, EffectNone, nil
	}

	return idleState{}, EffectNone, nil
}

func stepHelp(msg tea.KeyMsg, cur *Folder) (state, Effect, tea.Cmd) {
	switch {
	case key.Matches(msg, commandKeyMap.Quit):
		return idleState{}, EffectQuit, nil
	case key.Matches(msg, commandKeyMap.New):
		return newMenuState{}, EffectNone, nil
	case key.Matches(msg, commandKeyMap.Edit):
		if cur.SelectedFolder() != nil {
			field, cmd := newField(inputRequest{kind: requestRenameFolder})
			return field, EffectNone, cmd
		}
		return editMenuState{}, EffectNone, nil
	case key.Matches(msg, commandKeyMap.Save):
		return idleState{}, EffectSave, nil
	case key.Matches(msg, commandKeyMap.Delete):
		field, cmd := newField(inputRequest{kind: requestConfirmDelete})
		return field, EffectNone, cmd
	}

	return idleState{}, EffectNone, nil
}

func stepNewMenu(msg tea.KeyMsg) (state, Effect, tea.Cmd) {
	var request inputRequest

	switch {
	case key.Matches(msg, commandKeyMap.NewFolder):
		request = inputRequest{kind: requestNewFolder}
	case key.Matches(msg, commandKeyMap.NewTask):
		request = inputRequest{kind: requestNewTask, step: stepTitle}
	default:
		return idleState{}, EffectNone, nil
	}

	field, cmd := newField(request)
	return field, EffectNone, cmd
}

func stepEditMenu(msg tea.KeyMsg) (state, Effect, tea.Cmd) {
	request := inputRequest{kind: requestEditTask}

	switch {
	case key.Matches(msg, commandKeyMap.EditTitle):
		request.step = stepTitle
	case key.Matches(msg, commandKeyMap.EditDetails):
		request.step = stepDetails
	case key.Matches(msg, commandKeyMap.EditStatus):
		request.step = stepStatus
	default:
		return idleState{}, EffectNone, nil
	}

	field, cmd := newField(request)
	return field, EffectNone, cmd
}

func stepField(s awaitingField, msg tea.KeyMsg, cur *Folder, pending *Task) (state, Effect, tea.Cmd) {
	switch {
	case key.Matches(msg, promptKeyMap.Abort):
		*pending = NewTask()
		return idleState{}, EffectNone, nil

	case key.Matches(msg, promptKeyMap.Commit):
		next := commit(s.request, s.input.Value(), cur, pending)
		if next == nil {
			return idleState{}, EffectNone, nil
		}

		field, cmd := newField(*next)
		return field, EffectNone, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	return s, EffectNone, cmd
}

// commit applies value according to request and returns the chained request,
// or nil when the flow is finished.
func commit(request inputRequest, value string, cur *Folder, pending *Task) *inputRequest {
	switch request.kind {
	case requestNewFolder:
		cur.AddFolder(value)
		logger.Debug().Str("name", value).Msg("added folder")

	case requestRenameFolder:
		if folder := cur.SelectedFolder(); folder != nil {
			logger.Debug().Str("from", folder.Name).Str("to", value).Msg("renamed folder")
			folder.Name = value
		}

	case requestNewTask:
		switch request.step {
		case stepTitle:
			pending.Title = value
			return &inputRequest{kind: requestNewTask, step: stepDetails}
		case stepDetails:
			pending.Body = value
			cur.AddTask(*pending)
			logger.Debug().Str("title", pending.Title).Msg("added task")
			*pending = NewTask()
		}

	case requestEditTask:
		return commitEdit(request.step, value, cur.SelectedTask())

	case requestConfirmDelete:
		if strings.EqualFold(value, "y") {
			cur.DeleteSelected()
			logger.Debug().Int("cursor", cur.Cursor()).Msg("deleted selection")
		}
	}

	return nil
}

func commitEdit(step taskStep, value string, task *Task) *inputRequest {
	switch step {
	case stepTitle:
		if task != nil {
			task.Title = value
		}

	case stepDetails:
		if task != nil {
			task.Body = value
		}

	case stepStatus:
		if task != nil {
			task.Status.Label = value
		}
		return &inputRequest{kind: requestEditTask, step: stepStatusColor}

	case stepStatusColor:
		color, ok := parseColor(value)
		if !ok {
			// Invalid input keeps the previous color and is not reported.
			logger.Debug().Str("input", value).Msg("discarded status color")
			return nil
		}
		if task != nil {
			task.Status.Color = color
		}
	}

	return nil
}
