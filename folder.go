package main

import (
	"errors"
	"fmt"
	"slices"
)

var ErrFolderNotFound = errors.New("folder not found")

// NotFoundError reports the first path segment that matched no subfolder
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("folder %q doesn't exist", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrFolderNotFound
}

// Folder is a named node of the task tree. It owns its subfolders and tasks.
//
// The unified listing of a folder is every subfolder followed by every task,
// both in storage order. The cursor indexes that listing and is never persisted.
type Folder struct {
	Name string

	tasks   []Task
	folders []*Folder
	cursor  int
}

// NewFolder creates an empty folder
func NewFolder(name string) *Folder {
	return &Folder{Name: name}
}

// Total returns the length of the unified listing
func (f *Folder) Total() int {
	return len(f.folders) + len(f.tasks)
}

func (f *Folder) Cursor() int {
	return f.cursor
}

func (f *Folder) Folders() []*Folder {
	return f.folders
}

func (f *Folder) Tasks() []Task {
	return f.tasks
}

// Resolve walks path one name at a time from f. When siblings share a name the
// first one in storage order wins. An empty path resolves to f itself.
func (f *Folder) Resolve(path []string) (*Folder, error) {
	current := f

	for _, name := range path {
		next := current.child(name)
		if next == nil {
			return nil, &NotFoundError{Name: name}
		}

		current = next
	}

	return current, nil
}

// child returns the first subfolder called name
func (f *Folder) child(name string) *Folder {
	for _, sub := range f.folders {
		if sub.Name == name {
			return sub
		}
	}

	return nil
}

// AddTask appends task and returns the stored copy. The cursor is left alone.
func (f *Folder) AddTask(task Task) *Task {
	f.tasks = append(f.tasks, task)
	return &f.tasks[len(f.tasks)-1]
}

// AddFolder appends an empty subfolder called name
func (f *Folder) AddFolder(name string) *Folder {
	sub := NewFolder(name)
	f.folders = append(f.folders, sub)
	return sub
}

// MoveSelection shifts the cursor by delta, clamped to the unified listing
func (f *Folder) MoveSelection(delta int) {
	f.cursor = f.clamp(f.cursor + delta)
}

func (f *Folder) clamp(cursor int) int {
	return max(0, min(cursor, f.Total()-1))
}

// SelectedFolder returns the subfolder under the cursor, or nil when the
// cursor is on a task or the folder is empty.
func (f *Folder) SelectedFolder() *Folder {
	if f.cursor < 0 || f.cursor >= len(f.folders) {
		return nil
	}

	return f.folders[f.cursor]
}

// SelectedTask returns the task under the cursor, or nil when the cursor is on
// a subfolder or the folder is empty.
func (f *Folder) SelectedTask() *Task {
	idx := f.cursor - len(f.folders)
	if idx < 0 || idx >= len(f.tasks) {
		return nil
	}

	return &f.tasks[idx]
}

// DeleteSelected removes the entry under the cursor, subtree included. The
// cursor then steps back by one and is clamped to the shrunken listing.
func (f *Folder) DeleteSelected() {
	if f.Total() == 0 {
		return
	}

	if f.cursor < len(f.folders) {
		f.folders = slices.Delete(f.folders, f.cursor, f.cursor+1)
	} else if idx := f.cursor - len(f.folders); idx < len(f.tasks) {
		f.tasks = slices.Delete(f.tasks, idx, idx+1)
	} else {
		f.cursor = f.clamp(f.cursor)
		return
	}

	if f.cursor > 0 {
		f.cursor--
	}
	f.cursor = f.clamp(f.cursor)
}

// EntryKind tells folders and tasks apart in the unified listing
type EntryKind int

const (
	EntryFolder EntryKind = iota
	EntryTask
)

// Entry is one row of the unified listing
type Entry struct {
	Kind     EntryKind
	Label    string
	Selected bool
}

// Entries returns the unified listing: folders first, then tasks
func (f *Folder) Entries() []Entry {
	entries := make([]Entry, 0, f.Total())

	for _, sub := range f.folders {
		entries = append(entries, Entry{Kind: EntryFolder, Label: sub.Name, Selected: len(entries) == f.cursor})
	}

	for _, task := range f.tasks {
		entries = append(entries, Entry{Kind: EntryTask, Label: task.Title, Selected: len(entries) == f.cursor})
	}

	return entries
}
