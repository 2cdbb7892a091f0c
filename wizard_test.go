package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlCKey = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// press feeds keys one by one and returns the last effect
func press(t *testing.T, w *Wizard, cur *Folder, keys ...tea.KeyMsg) Effect {
	t.Helper()

	effect := EffectNone
	for _, k := range keys {
		effect, _ = w.HandleKey(k, cur)
	}
	return effect
}

// typeText types s into the open prompt and commits it
func typeText(t *testing.T, w *Wizard, cur *Folder, s string) {
	t.Helper()

	if w.Mode() != ModeAwaitingField {
		t.Fatalf("typeText: mode = %v, want ModeAwaitingField", w.Mode())
	}
	for _, r := range s {
		press(t, w, cur, runeKey(string(r)))
	}
	press(t, w, cur, enterKey)
}

func TestWizardNewTaskFlow(t *testing.T) {
	cur := NewFolder("")
	w := NewWizard()

	press(t, &w, cur, runeKey(" "), runeKey("n"), runeKey("t"))
	request, ok := w.Request()
	if !ok || request.kind != requestNewTask || request.step != stepTitle {
		t.Fatalf("Request() = %+v, %v, want new task title", request, ok)
	}

	typeText(t, &w, cur, "Buy milk")

	request, _ = w.Request()
	if request.step != stepDetails {
		t.Errorf("step after title = %v, want stepDetails", request.step)
	}
	if cur.Total() != 0 {
		t.Fatalf("task added before details were committed")
	}
	if input, _ := w.Input(); input.Value() != "" {
		t.Errorf("details buffer = %q, want empty", input.Value())
	}

	typeText(t, &w, cur, "2% milk")

	if w.Mode() != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle", w.Mode())
	}
	if cur.Total() != 1 {
		t.Fatalf("Total() = %d, want 1", cur.Total())
	}

	want := Task{Title: "Buy milk", Body: "2% milk", Status: Status{Label: "Incomplete", Color: 5}}
	if got := cur.Tasks()[0]; got != want {
		t.Errorf("task = %+v, want %+v", got, want)
	}
	if w.Pending() != NewTask() {
		t.Errorf("pending task not reset: %+v", w.Pending())
	}
}

func TestWizardEditStatusFlow(t *testing.T) {
	cur := NewFolder("")
	cur.AddTask(NewTask())
	w := NewWizard()

	press(t, &w, cur, runeKey(" "), runeKey("e"))
	if w.Mode() != ModeEditMenu {
		t.Fatalf("mode = %v, want ModeEditMenu", w.Mode())
	}

	press(t, &w, cur, runeKey("s"))
	typeText(t, &w, cur, "Done")

	if got := cur.SelectedTask().Status.Label; got != "Done" {
		t.Errorf("status label = %q, want Done", got)
	}
	request, _ := w.Request()
	if request.step != stepStatusColor {
		t.Fatalf("step = %v, want stepStatusColor", request.step)
	}

	typeText(t, &w, cur, "9")
	if got := cur.SelectedTask().Status.Color; got != 9 {
		t.Errorf("color = %d, want 9", got)
	}
	if w.Mode() != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle", w.Mode())
	}

	press(t, &w, cur, runeKey(" "), runeKey("e"), runeKey("s"))
	typeText(t, &w, cur, "Done")
	typeText(t, &w, cur, "abc")

	if got := cur.SelectedTask().Status.Color; got != 9 {
		t.Errorf("color after bad input = %d, want 9", got)
	}
	if w.Mode() != ModeIdle {
		t.Errorf("mode after bad input = %v, want ModeIdle", w.Mode())
	}
}

func TestWizardEditTaskFields(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(Task) string
	}{
		{name: "title", key: "t", value: "New title", check: func(t Task) string { return t.Title }},
		{name: "details", key: "d", value: "some body", check: func(t Task) string { return t.Body }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewFolder("")
			cur.AddTask(Task{Title: "old", Body: "old", Status: DefaultStatus()})
			w := NewWizard()

			press(t, &w, cur, runeKey(" "), runeKey("e"), runeKey(tt.key))
			typeText(t, &w, cur, tt.value)

			if got := tt.check(cur.Tasks()[0]); got != tt.value {
				t.Errorf("field = %q, want %q", got, tt.value)
			}
			if w.Mode() != ModeIdle {
				t.Errorf("mode = %v, want ModeIdle", w.Mode())
			}
		})
	}
}

func TestWizardEditWithoutSelectionIsNoop(t *testing.T) {
	cur := NewFolder("")
	w := NewWizard()

	press(t, &w, cur, runeKey(" "), runeKey("e"), runeKey("t"))
	typeText(t, &w, cur, "ghost")

	if cur.Total() != 0 {
		t.Errorf("Total() = %d, want 0", cur.Total())
	}
	if w.Mode() != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle", w.Mode())
	}
}

func TestWizardRenameFolder(t *testing.T) {
	cur := NewFolder("")
	cur.AddFolder("old")
	w := NewWizard()

	press(t, &w, cur, runeKey(" "), runeKey("e"))
	request, ok := w.Request()
	if !ok || request.kind != requestRenameFolder {
		t.Fatalf("Request() = %+v, %v, want rename folder", request, ok)
	}

	typeText(t, &w, cur, "new")
	if got := cur.Folders()[0].Name; got != "new" {
		t.Errorf("folder name = %q, want new", got)
	}
}

func TestWizardNewFolder(t *testing.T) {
	cur := NewFolder("")
	w := NewWizard()

	press(t, &w, cur, runeKey(" "), runeKey("n"), runeKey("f"))
	typeText(t, &w, cur, "work")

	if cur.Total() != 1 || cur.Folders()[0].Name != "work" {
		t.Errorf("folders = %v, want [work]", cur.Folders())
	}
}

func TestWizardConfirmDelete(t *testing.T) {
	tests := []struct {
		answer    string
		wantTotal int
	}{
		{answer: "y", wantTotal: 0},
		{answer: "Y", wantTotal: 0},
		{answer: "n", wantTotal: 1},
		{answer: "no", wantTotal: 1},
		{answer: "", wantTotal: 1},
		{answer: "yes", wantTotal: 1},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			cur := NewFolder("")
			cur.AddTask(Task{Title: "victim"})
			w := NewWizard()

			press(t, &w, cur, runeKey(" "), runeKey("d"))
			typeText(t, &w, cur, tt.answer)

			if cur.Total() != tt.wantTotal {
				t.Errorf("Total() = %d, want %d", cur.Total(), tt.wantTotal)
			}
			if w.Mode() != ModeIdle {
				t.Errorf("mode = %v, want ModeIdle", w.Mode())
			}
		})
	}
}

func TestWizardAbortDiscardsInput(t *testing.T) {
	cur := NewFolder("")
	w := NewWizard()

	press(t, &w, cur, runeKey(" "), runeKey("n"), runeKey("t"))
	typeText(t, &w, cur, "half done")
	press(t, &w, cur, runeKey("x"), escKey)

	if w.Mode() != ModeIdle {
		t.Errorf("mode = %v, want ModeIdle", w.Mode())
	}
	if cur.Total() != 0 {
		t.Errorf("Total() = %d, want 0", cur.Total())
	}
	if w.Pending() != NewTask() {
		t.Errorf("pending task = %+v, want reset", w.Pending())
	}

	// A fresh prompt starts with an empty buffer
	press(t, &w, cur, runeKey(" "), runeKey("n"), runeKey("f"))
	if input, _ := w.Input(); input.Value() != "" {
		t.Errorf("buffer = %q, want empty", input.Value())
	}
}

func TestWizardMenusCloseOnOtherKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
	}{
		{name: "help", keys: []tea.KeyMsg{runeKey(" "), runeKey("z")}},
		{name: "new menu", keys: []tea.KeyMsg{runeKey(" "), runeKey("n"), runeKey("z")}},
		{name: "edit menu", keys: []tea.KeyMsg{runeKey(" "), runeKey("e"), runeKey("z")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewFolder("")
			w := NewWizard()

			effect := press(t, &w, cur, tt.keys...)
			if effect != EffectNone {
				t.Errorf("effect = %v, want EffectNone", effect)
			}
			if w.Mode() != ModeIdle {
				t.Errorf("mode = %v, want ModeIdle", w.Mode())
			}
		})
	}
}

func TestWizardEffects(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want Effect
	}{
		{name: "quit", keys: []tea.KeyMsg{runeKey(" "), runeKey("q")}, want: EffectQuit},
		{name: "save", keys: []tea.KeyMsg{runeKey(" "), runeKey("w")}, want: EffectSave},
		{name: "enter", keys: []tea.KeyMsg{runeKey("l")}, want: EffectEnter},
		{name: "enter arrow", keys: []tea.KeyMsg{{Type: tea.KeyRight}}, want: EffectEnter},
		{name: "leave", keys: []tea.KeyMsg{runeKey("h")}, want: EffectLeave},
		{name: "tab", keys: []tea.KeyMsg{{Type: tea.KeyTab}}, want: EffectNextTab},
		{name: "ctrl+c idle", keys: []tea.KeyMsg{ctrlCKey}, want: EffectQuit},
		{name: "ctrl+c in prompt", keys: []tea.KeyMsg{runeKey(" "), runeKey("n"), runeKey("f"), ctrlCKey}, want: EffectQuit},
		{name: "q in prompt is text", keys: []tea.KeyMsg{runeKey(" "), runeKey("n"), runeKey("f"), runeKey("q")}, want: EffectNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewFolder("")
			w := NewWizard()

			if got := press(t, &w, cur, tt.keys...); got != tt.want {
				t.Errorf("effect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWizardIdleMovesSelection(t *testing.T) {
	cur := NewFolder("")
	cur.AddFolder("a")
	cur.AddTask(Task{Title: "b"})
	w := NewWizard()

	press(t, &w, cur, runeKey("j"))
	if cur.Cursor() != 1 {
		t.Errorf("cursor after j = %d, want 1", cur.Cursor())
	}

	press(t, &w, cur, tea.KeyMsg{Type: tea.KeyDown})
	if cur.Cursor() != 1 {
		t.Errorf("cursor after down at end = %d, want 1", cur.Cursor())
	}

	press(t, &w, cur, runeKey("k"))
	if cur.Cursor() != 0 {
		t.Errorf("cursor after k = %d, want 0", cur.Cursor())
	}
}

func TestWizardLongInputIsKept(t *testing.T) {
	cur := NewFolder("")
	w := NewWizard()
	body := strings.Repeat("pasted text ", 70)

	press(t, &w, cur, runeKey(" "), runeKey("n"), runeKey("t"))
	typeText(t, &w, cur, "Long one")
	press(t, &w, cur, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(body), Paste: true}, enterKey)

	if cur.Total() != 1 {
		t.Fatalf("Total() = %d, want 1", cur.Total())
	}
	if got := cur.Tasks()[0].Body; got != body {
		t.Errorf("body length = %d, want %d", len(got), len(body))
	}
}
